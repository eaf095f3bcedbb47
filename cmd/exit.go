package cmd

import (
	"errors"

	"github.com/bnema/kahadb-trace/internal/domain"
)

const (
	exitOK             = 0
	exitFailure        = 1
	exitPathResolution = 2
	exitLogNotFound    = 3
	exitConfig         = 4
)

// ExitCode maps an Execute error to the process exit status. Read failures
// and anything unclassified share exitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrLogNotFound):
		return exitLogNotFound
	case errors.Is(err, domain.ErrPathResolution):
		return exitPathResolution
	case errors.Is(err, domain.ErrConfig):
		return exitConfig
	default:
		return exitFailure
	}
}
