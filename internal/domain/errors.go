package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedLogLine = errors.New("malformed log line")
	ErrLogNotFound      = errors.New("unable to locate log file, please check the name")
	ErrPathResolution   = errors.New("resolve log file path")
	ErrStreamRead       = errors.New("read log file")
	ErrConfig           = errors.New("load configuration")
)

// MalformedLineError reports a recognized trace line whose bracket or comma
// structure is missing. It unwraps to ErrMalformedLogLine.
type MalformedLineError struct {
	LineNumber int
	Line       string
	Reason     string
}

func newMalformedLineError(line, reason string) *MalformedLineError {
	return &MalformedLineError{Line: line, Reason: reason}
}

func (e *MalformedLineError) Error() string {
	if e.LineNumber > 0 {
		return fmt.Sprintf("%s at line %d: %s", ErrMalformedLogLine, e.LineNumber, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedLogLine, e.Reason)
}

func (e *MalformedLineError) Unwrap() error {
	return ErrMalformedLogLine
}
