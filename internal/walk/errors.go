package walk

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownWalk indicates a walk kind that is not registered.
	ErrUnknownWalk = errors.New("walk: unknown walk type")

	// ErrUnknownCoin indicates an unrecognized initial coin state.
	ErrUnknownCoin = errors.New("walk: unknown coin")

	// ErrParameterBounds indicates a parameter outside its valid range.
	ErrParameterBounds = errors.New("walk: parameter out of valid bounds")
)

// ParamError wraps ErrParameterBounds with the offending parameter.
type ParamError struct {
	Kind  Kind
	Param string
	Value any
	Min   any
	Max   any
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("walk: %s %s=%v out of range [%v, %v]", e.Kind, e.Param, e.Value, e.Min, e.Max)
}

func (e *ParamError) Unwrap() error {
	return ErrParameterBounds
}
