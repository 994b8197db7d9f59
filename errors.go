package lifelike

import (
	"errors"
	"fmt"
)

var (
	// ErrInputFormat reports a pixel buffer that is not RGBA8 of the declared size.
	ErrInputFormat = errors.New("lifelike: pixel buffer is not 4-channel RGBA8")
	// ErrEmptyImage reports a zero width or height. Wrapping needs both to be at least 1.
	ErrEmptyImage          = errors.New("lifelike: image has zero width or height")
	ErrStateLength         = errors.New("lifelike: state length does not match cell count")
	ErrAsymmetricAdjacency = errors.New("lifelike: cell adjacency is not symmetric")
	ErrSurfaceSize         = errors.New("lifelike: surface size does not match world")
)

// OutOfBoundsError is the panic value of a surface access outside its bounds.
// Segment recovers it and returns it as an error.
type OutOfBoundsError struct {
	Point         Point
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("lifelike: point (%d, %d) outside %dx%d surface", e.Point.X, e.Point.Y, e.Width, e.Height)
}

// Stage names used in StageError.
const (
	StageConfig   = "config"
	StageDecode   = "decode"
	StageQuantize = "quantize"
	StageSegment  = "segment"
	StageSeed     = "seed"
	StageRender   = "render"
	StageWrite    = "write"
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }
