package file

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/kahadb-trace/internal/domain"
	"github.com/bnema/kahadb-trace/internal/ports"
)

// StdinName selects standard input instead of a file.
const StdinName = "-"

type Source struct {
	name   string
	closer io.Closer
	reader *bufio.Reader
}

var _ ports.LineSource = (*Source)(nil)

// NewSource wraps an already open stream. Lines are not length limited.
func NewSource(name string, rc io.ReadCloser) *Source {
	return &Source{
		name:   name,
		closer: rc,
		reader: bufio.NewReader(rc),
	}
}

func Open(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrLogNotFound, path)
		}
		return nil, fmt.Errorf("%w %s: %w", domain.ErrStreamRead, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrLogNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrStreamRead, path, err)
	}

	return NewSource(path, f), nil
}

// ResolvePath picks the log to analyze: the explicit argument when given,
// otherwise defaultName inside dir. The result is absolute unless it is
// StdinName.
func ResolvePath(arg, dir, defaultName string) (string, error) {
	if arg == StdinName {
		return StdinName, nil
	}

	path := arg
	if path == "" {
		if strings.TrimSpace(defaultName) == "" {
			return "", fmt.Errorf("%w: no log file name configured", domain.ErrPathResolution)
		}
		path = filepath.Join(dir, defaultName)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", domain.ErrPathResolution, path, err)
	}

	return abs, nil
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) ReadLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimLineEnding(line), nil
		}
		return "", err
	}

	return trimLineEnding(line), nil
}

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}

	err := s.closer.Close()
	s.closer = nil
	return err
}

func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
