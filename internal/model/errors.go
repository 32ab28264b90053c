package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition    = errors.New("invalid position")
	ErrInvalidLayout      = errors.New("invalid board layout")
	ErrMoveFormat         = errors.New("unrecognized play")
	ErrIllegalMove        = errors.New("illegal move")
	ErrAmbiguousMove      = errors.New("ambiguous move")
	ErrInvariantViolation = errors.New("board invariant violated")
	ErrGameOver           = errors.New("game is over")
)

// MoveError reports a move string that was rejected, either because it does
// not follow the notation or because no single legal move matches it.
type MoveError struct {
	Move   string
	Reason string
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Move, e.Reason)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
