// Package editor implements the interactive polygon-editing engine for
// segmentation results: vertex-level edits, path splicing, polygon
// slicing and the pointer-driven mode state machine. All committing
// operations are atomic: they either replace the engine's segmentation
// result with a fully validated new value or leave it untouched.
package editor

import "github.com/michalprusek/segedit/pkg/segmentation"

// Tuning constants for the editing interaction. Thresholds are in image
// units at zoom 1; Transform.HitThreshold widens them when zoomed out.
const (
	// VertexHitThreshold is the radius for vertex hover and selection
	VertexHitThreshold = 15.0
	// EdgeHitThreshold is the maximum distance for inserting a point on an edge
	EdgeHitThreshold = 10.0
	// AutoPointDistance is the cursor travel after which Shift-drag tracing
	// drops another point
	AutoPointDistance = 20.0
	// CloseRingThreshold is how close a click must be to the first vertex of
	// an in-progress ring to close it
	CloseRingThreshold = 15.0
	// MinSliceLength rejects accidental click-twitch slice lines
	MinSliceLength = 5.0
	// DuplicateOffset is applied to both axes of a duplicated vertex
	DuplicateOffset = 5.0
	// DefaultSimplifyTolerance is the RDP tolerance when none is given
	DefaultSimplifyTolerance = 1.0
)

// Outcome reports whether a committing operation was applied, with a
// human-readable reason when it was not. Rejections are expected
// user-input results, not errors; the prior segmentation result is
// always left untouched on a rejection.
type Outcome struct {
	OK      bool
	Message string
}

func accepted() Outcome {
	return Outcome{OK: true}
}

func acceptedMsg(msg string) Outcome {
	return Outcome{OK: true, Message: msg}
}

func rejected(msg string) Outcome {
	return Outcome{Message: msg}
}

// Engine owns the current segmentation result and applies edits to it.
// Every mutation is prepared on a clone and swapped in only after
// validation, so Result always returns a fully consistent value.
type Engine struct {
	result *segmentation.Result
}

// NewEngine creates an engine editing the given segmentation result.
// The engine takes ownership; callers should not mutate the value after
// handing it over.
func NewEngine(result *segmentation.Result) *Engine {
	return &Engine{result: result}
}

// Result returns the current segmentation result
func (e *Engine) Result() *segmentation.Result {
	return e.result
}

// Replace swaps in a new segmentation result, discarding the current one.
// Used when the underlying file is reloaded.
func (e *Engine) Replace(result *segmentation.Result) {
	e.result = result
}
