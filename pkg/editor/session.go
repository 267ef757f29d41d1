package editor

import (
	"time"

	"github.com/michalprusek/segedit/pkg/geometry"
)

// Mode is the active interaction mode. Modes are mutually exclusive;
// entering one exits the others and clears any uncommitted state.
type Mode int

const (
	// ModeIdle is the default mode: drag vertices, select polygons, pan
	ModeIdle Mode = iota
	// ModeVertexEdit collects points for a brand-new polygon
	ModeVertexEdit
	// ModePointAdding splices a new sub-path between two vertices
	ModePointAdding
	// ModeSlicing cuts a polygon along a user-drawn line
	ModeSlicing
)

func (m Mode) String() string {
	switch m {
	case ModeVertexEdit:
		return "vertex edit"
	case ModePointAdding:
		return "point adding"
	case ModeSlicing:
		return "slicing"
	default:
		return "idle"
	}
}

// VertexRef identifies one vertex of one polygon
type VertexRef struct {
	PolygonID string
	Index     int
}

// SegmentRef identifies one edge of one polygon together with the
// projected cursor position on it
type SegmentRef struct {
	PolygonID string
	Index     int
	Projected geometry.Point
}

// Session is the ephemeral editing state between committed operations.
// It is never persisted; resetting it must not touch polygon data.
type Session struct {
	Mode Mode

	// Selection
	SelectedPolygonID   string
	SelectedVertexIndex int    // Anchor vertex for path splicing; -1 when none
	SourcePolygonID     string // Polygon owning the anchor vertex

	// Uncommitted point sequence being built in vertex-edit or
	// point-adding mode
	TempPoints []geometry.Point

	// Pointer-proximity results, cosmetic only
	HoveredVertex  *VertexRef
	HoveredSegment *SegmentRef

	// Slicing
	SliceStart    *geometry.Point
	SliceKeepBoth bool // true: keep both regions; false: keep the larger one

	// Cursor in image space and modifier state
	Cursor       geometry.Point
	ShiftPressed bool

	// Drag state
	DraggingVertex *VertexRef
	DraggingCanvas bool
	dragOrigin     geometry.Point // Vertex position when the drag started

	// Shift-trace bookkeeping
	lastAutoPoint  *geometry.Point
	lastHoverCheck time.Time
}

// NewSession returns a fresh session in idle mode
func NewSession() Session {
	return Session{SelectedVertexIndex: -1}
}

// EnterMode switches the interaction mode, clearing all uncommitted
// state. Entering the current mode toggles back to idle.
func (s Session) EnterMode(mode Mode) Session {
	if mode == s.Mode {
		mode = ModeIdle
	}

	keepBoth := s.SliceKeepBoth
	selected := s.SelectedPolygonID
	cursor := s.Cursor
	shift := s.ShiftPressed

	next := NewSession()
	next.Mode = mode
	next.SliceKeepBoth = keepBoth
	next.SelectedPolygonID = selected
	next.Cursor = cursor
	next.ShiftPressed = shift
	return next
}

// Reset discards all uncommitted state but keeps the current mode.
// Bound to Escape in the UI layer.
func (s Session) Reset() Session {
	mode := s.Mode
	next := s.EnterMode(ModeIdle)
	next.Mode = mode
	return next
}

// Editing reports whether an interaction is in flight: a vertex drag,
// an uncommitted point sequence, or an armed slice line
func (s Session) Editing() bool {
	return s.DraggingVertex != nil || len(s.TempPoints) > 0 || s.SliceStart != nil
}

// clearTemp drops the temp path and anchor after a commit or rejection
func (s Session) clearTemp() Session {
	s.TempPoints = nil
	s.SelectedVertexIndex = -1
	s.SourcePolygonID = ""
	s.lastAutoPoint = nil
	return s
}
