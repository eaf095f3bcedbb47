package ports

// LineSource yields the lines of a log one at a time, in order. ReadLine
// returns io.EOF once the log is exhausted.
type LineSource interface {
	Name() string
	ReadLine() (string, error)
	Close() error
}
