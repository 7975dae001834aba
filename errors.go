package lsystem

import "github.com/pkg/errors"

var (
	// ErrParse is returned when a successor expression is malformed.
	ErrParse = errors.New("parse error")

	ErrEndOfInput        = errors.New("end of input")
	ErrNoArguments       = errors.New("no arguments")
	ErrMalformedArgument = errors.New("malformed argument")
	ErrEmptyArgumentList = errors.New("empty argument list")

	// ErrArgumentCountMismatch is returned by Production.Evaluate when the
	// number of actual arguments differs from the number of formal ones.
	ErrArgumentCountMismatch = errors.New("argument count mismatch")
	ErrUnboundVariable       = errors.New("unbound variable")
	ErrArgumentConversion    = errors.New("argument conversion failure")
)
