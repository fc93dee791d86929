// Package apperror defines the typed error kinds shared across the
// scheduler, grounded on the teacher's AppError pattern
// (backend.deprecated/pkg/utils/errors.go): a small set of sentinel
// errors plus a details-carrying struct that satisfies errors.Is/As.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Wrap one of these with fmt.Errorf("...: %w", ...) or
// construct a *Error with New to attach structured details.
var (
	ErrInputParse        = errors.New("input parse error")
	ErrInputConsistency  = errors.New("input consistency error")
	ErrModelInfeasible   = errors.New("model infeasible")
	ErrSolver            = errors.New("solver error")
)

// Code identifies which of spec.md §7's error kinds an Error carries.
type Code string

const (
	CodeInputParse       Code = "INPUT_PARSE"
	CodeInputConsistency Code = "INPUT_CONSISTENCY"
	CodeModelInfeasible  Code = "MODEL_INFEASIBLE"
	CodeSolver           Code = "SOLVER_ERROR"
)

// Error is a structured error carrying a code, a human-readable
// message, and optional details (e.g. the offending file path, or a
// per-session infeasibility diagnosis).
type Error struct {
	Code    Code
	Message string
	Details string
	sentinel error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap lets errors.Is(err, apperror.ErrModelInfeasible) etc. work.
func (e *Error) Unwrap() error {
	return e.sentinel
}

func newError(code Code, sentinel error, message, details string) *Error {
	return &Error{Code: code, Message: message, Details: details, sentinel: sentinel}
}

// InputParse builds an InputParseError for a malformed or
// missing-key input file.
func InputParse(path string, cause error) *Error {
	return newError(CodeInputParse, ErrInputParse, "failed to parse "+path, cause.Error())
}

// InputConsistency builds a (non-fatal, warning-grade) input
// consistency problem, e.g. an out-of-range session index.
func InputConsistency(message, details string) *Error {
	return newError(CodeInputConsistency, ErrInputConsistency, message, details)
}

// Infeasible builds a ModelInfeasible error carrying a human-readable
// diagnosis of which constraint classes likely caused it.
func Infeasible(diagnosis string) *Error {
	return newError(CodeModelInfeasible, ErrModelInfeasible, "no feasible schedule exists", diagnosis)
}

// Solver wraps an underlying solver failure (time limit, numerical
// trouble) verbatim, per spec.md §7.
func Solver(cause error) *Error {
	return newError(CodeSolver, ErrSolver, "integer programming solver failed", cause.Error())
}
