package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidation      = "COMMAND_VALIDATION_FAILED"
	codeContextCanceled = "COMMAND_CONTEXT_CANCELED"
	codeContextTimeout  = "COMMAND_CONTEXT_TIMEOUT"
	codeExecuteFailed   = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	return wrap(err, goerrors.CategoryValidation, codeValidation, "command validation failed")
}

func wrapContextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return wrap(err, goerrors.CategoryCommand, codeContextTimeout, "command deadline exceeded")
	}
	return wrap(err, goerrors.CategoryCommand, codeContextCanceled, "command cancelled")
}

func wrapExecuteError(err error) error {
	return wrap(err, goerrors.CategoryCommand, codeExecuteFailed, "command execution failed")
}

// wrap leaves errors that already carry a go-errors category untouched.
func wrap(err error, category goerrors.Category, code, message string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}
