// Package cataloguecli provides the library entry points behind the CLI
// surface of §6: one function per command, each taking an already-parsed
// parameter struct and returning a result alongside an error, rather than
// printing directly; ExitCode maps that error to the process exit code.
// Argument parsing itself stays out of scope — that's `cmd/cataloguer`'s
// job.
package cataloguecli

import (
	"errors"

	"github.com/llehouerou/waves/internal/errs"
)

// Exit codes shared by every entry point.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitValidation = 2
	ExitCancelled  = 130
)

// ExitCode maps an error returned by an entry point to the process exit
// code §6 and §7 specify: validation errors are 2, cancellation is 130,
// anything else is 1. A nil error is 0.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errs.ErrCancelled):
		return ExitCancelled
	case errors.Is(err, errs.ErrValidation):
		return ExitValidation
	default:
		return ExitError
	}
}
