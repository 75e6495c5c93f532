package dsss

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrDegenerate    = errors.New("degenerate input")
	ErrArithmetic    = errors.New("arithmetic failure")
)

// Error reports which stage rejected its input and which invariant was broken.
// Kind is one of ErrConfiguration, ErrDegenerate or ErrArithmetic.
type Error struct {
	Kind      error
	Stage     string
	Invariant string
	Detail    string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v: %s", e.Stage, e.Kind, e.Invariant)
	}
	return fmt.Sprintf("%s: %v: %s (%s)", e.Stage, e.Kind, e.Invariant, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func ConfigError(stage, invariant string, format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Stage: stage, Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}

func DegenerateError(stage, invariant string, format string, args ...any) error {
	return &Error{Kind: ErrDegenerate, Stage: stage, Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}

func ArithmeticError(stage, invariant string, format string, args ...any) error {
	return &Error{Kind: ErrArithmetic, Stage: stage, Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}
