package editor

import (
	"time"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

// hoverThrottle limits hover hit-testing on pointer moves to roughly one
// pass per animation frame. Drags bypass the throttle.
const hoverThrottle = 16 * time.Millisecond

// PointerKind classifies a pointer event
type PointerKind int

const (
	// PointerDown is a press of the primary button
	PointerDown PointerKind = iota
	// PointerMove is any cursor motion
	PointerMove
	// PointerUp is the release of the primary button
	PointerUp
)

// PointerEvent carries one pointer interaction in screen coordinates
type PointerEvent struct {
	Kind   PointerKind
	Screen geometry.Point
	Shift  bool
}

// Machine routes pointer events to the active mode's handler and applies
// committing operations through the engine. Handlers take a session value
// and return the next one; the engine's result is only replaced by
// committed operations, so a rejected commit leaves polygon data as it
// was.
type Machine struct {
	engine    *Engine
	transform Transform

	// now is the clock for hover throttling, injectable in tests
	now func() time.Time
}

// NewMachine creates a state machine over the given engine
func NewMachine(engine *Engine) *Machine {
	return &Machine{
		engine:    engine,
		transform: NewTransform(),
		now:       time.Now,
	}
}

// Engine returns the engine this machine drives
func (m *Machine) Engine() *Engine {
	return m.engine
}

// Transform returns the current screen-to-image transform
func (m *Machine) Transform() Transform {
	return m.transform
}

// SetTransform installs the zoom/pan transform supplied by the UI layer
func (m *Machine) SetTransform(t Transform) {
	if t.Zoom <= 0 {
		t.Zoom = 1
	}
	m.transform = t
}

// HandlePointerDown processes a press of the primary pointer button
func (m *Machine) HandlePointerDown(ev PointerEvent, s Session) (Session, Outcome) {
	s.Cursor = m.transform.ToImage(ev.Screen)
	s.ShiftPressed = ev.Shift

	switch s.Mode {
	case ModeVertexEdit:
		return m.vertexEditDown(s)
	case ModePointAdding:
		return m.pointAddingDown(s)
	case ModeSlicing:
		return m.slicingDown(s)
	default:
		return m.idleDown(s)
	}
}

// HandlePointerMove processes cursor motion. Hover detection is throttled
// to one pass per frame; vertex drags update on every event.
func (m *Machine) HandlePointerMove(ev PointerEvent, s Session) (Session, Outcome) {
	s.Cursor = m.transform.ToImage(ev.Screen)
	s.ShiftPressed = ev.Shift

	if s.DraggingVertex != nil {
		m.engine.MovePoint(s.DraggingVertex.PolygonID, s.DraggingVertex.Index, s.Cursor)
		return s, accepted()
	}

	if s.Mode == ModeVertexEdit && s.ShiftPressed {
		s = m.autoTrace(s)
	}

	if m.now().Sub(s.lastHoverCheck) >= hoverThrottle {
		s.lastHoverCheck = m.now()
		s = m.updateHover(s)
	}

	return s, accepted()
}

// HandlePointerUp processes the release of the primary pointer button
func (m *Machine) HandlePointerUp(ev PointerEvent, s Session) (Session, Outcome) {
	s.Cursor = m.transform.ToImage(ev.Screen)
	s.ShiftPressed = ev.Shift

	if s.DraggingVertex != nil {
		return m.endVertexDrag(s)
	}

	s.DraggingCanvas = false
	return s, accepted()
}

// idleDown handles the default mode: vertex drag, edge insert, polygon
// selection, canvas pan
func (m *Machine) idleDown(s Session) (Session, Outcome) {
	if ref := m.DetectVertexUnderCursor(s.Cursor); ref != nil {
		poly := m.polygonByID(ref.PolygonID)
		s.DraggingVertex = ref
		s.dragOrigin = poly.Points[ref.Index]
		s.SelectedPolygonID = ref.PolygonID
		return s, accepted()
	}

	// Clicking near an edge of the selected polygon inserts a vertex at
	// the projected position
	if s.SelectedPolygonID != "" {
		if poly := m.polygonByID(s.SelectedPolygonID); poly != nil {
			threshold := m.transform.HitThreshold(EdgeHitThreshold)
			if hit := FindClosestSegment(s.Cursor, poly.Points, threshold); hit != nil {
				outcome := m.engine.AddPoint(s.SelectedPolygonID, hit.Index, hit.Projected)
				return s, outcome
			}
		}
	}

	if id := m.polygonAt(s.Cursor); id != "" {
		s.SelectedPolygonID = id
		return s, accepted()
	}

	s.DraggingCanvas = true
	return s, accepted()
}

// vertexEditDown collects points for a new polygon; a click near the
// ring's first point closes the shape
func (m *Machine) vertexEditDown(s Session) (Session, Outcome) {
	threshold := m.transform.HitThreshold(CloseRingThreshold)

	if len(s.TempPoints) >= 3 && s.Cursor.Distance(s.TempPoints[0]) <= threshold {
		outcome, id := m.engine.AddPolygon(s.TempPoints, segmentation.External)
		if !outcome.OK {
			// Keep the in-progress ring so it can be fixed or abandoned
			return s, outcome
		}
		s = s.clearTemp()
		s.SelectedPolygonID = id
		return s, outcome
	}

	s.TempPoints = append(s.TempPoints, s.Cursor)
	auto := s.Cursor
	s.lastAutoPoint = &auto
	return s, accepted()
}

// pointAddingDown drives the anchor/temp-path/commit flow of path
// splicing
func (m *Machine) pointAddingDown(s Session) (Session, Outcome) {
	ref := m.DetectVertexUnderCursor(s.Cursor)

	// No anchor yet: the first click must land on a vertex
	if s.SelectedVertexIndex < 0 {
		if ref == nil {
			return s, rejected("select a vertex to start the new path from")
		}
		s.SourcePolygonID = ref.PolygonID
		s.SelectedVertexIndex = ref.Index
		s.SelectedPolygonID = ref.PolygonID
		return s, accepted()
	}

	// A click on another vertex of the source polygon commits the splice
	if ref != nil && ref.PolygonID == s.SourcePolygonID {
		if ref.Index == s.SelectedVertexIndex {
			return s, rejected("start and end vertex are the same")
		}

		outcome := m.engine.ModifyPolygonPath(s.SourcePolygonID, s.SelectedVertexIndex, ref.Index, s.TempPoints)
		if !outcome.OK {
			// Keep anchor and temp path so the user can retry
			return s, outcome
		}

		s = s.clearTemp()
		s.Mode = ModeIdle
		return s, acceptedMsg("path replaced")
	}

	// Anything else extends the temp path
	s.TempPoints = append(s.TempPoints, s.Cursor)
	return s, accepted()
}

// AnchorPoint resolves the point-adding anchor vertex, or nil when no
// anchor is set or the source ring shrank below the anchored index
// behind the session's back
func (m *Machine) AnchorPoint(s Session) *geometry.Point {
	if s.SourcePolygonID == "" || s.SelectedVertexIndex < 0 {
		return nil
	}
	poly := m.polygonByID(s.SourcePolygonID)
	if poly == nil || s.SelectedVertexIndex >= len(poly.Points) {
		return nil
	}
	p := poly.Points[s.SelectedVertexIndex]
	return &p
}

// slicingDown drives the two-click slice flow
func (m *Machine) slicingDown(s Session) (Session, Outcome) {
	if s.SelectedPolygonID == "" {
		if id := m.polygonAt(s.Cursor); id != "" {
			s.SelectedPolygonID = id
		} else {
			return s, rejected("select a polygon to slice")
		}
	}

	if s.SliceStart == nil {
		start := s.Cursor
		s.SliceStart = &start
		return s, accepted()
	}

	var outcome Outcome
	if s.SliceKeepBoth {
		outcome = m.engine.SplitIntoTwoPolygons(s.SelectedPolygonID, *s.SliceStart, s.Cursor)
	} else {
		outcome = m.engine.SplitPolygon(s.SelectedPolygonID, *s.SliceStart, s.Cursor)
	}

	if !outcome.OK {
		// Stay in awaiting-end so the user can pick a different endpoint
		return s, outcome
	}

	s.SliceStart = nil
	s.Mode = ModeIdle
	return s, outcome
}

// endVertexDrag commits or reverts a live vertex drag. The dragged ring
// was updated on every move event, so the final position is already in
// place; it only remains to verify the ring is still simple.
func (m *Machine) endVertexDrag(s Session) (Session, Outcome) {
	ref := *s.DraggingVertex
	s.DraggingVertex = nil

	poly := m.polygonByID(ref.PolygonID)
	if poly == nil {
		return s, rejected("polygon disappeared during drag")
	}

	if geometry.IsSelfIntersecting(poly.Points) {
		m.engine.MovePoint(ref.PolygonID, ref.Index, s.dragOrigin)
		return s, rejected("move would make the polygon self-intersect")
	}

	return s, accepted()
}

// autoTrace appends a temp point whenever the cursor has travelled far
// enough since the last one, enabling drag-to-trace input while Shift is
// held
func (m *Machine) autoTrace(s Session) Session {
	if s.lastAutoPoint != nil && s.Cursor.Distance(*s.lastAutoPoint) < AutoPointDistance {
		return s
	}
	if s.lastAutoPoint == nil && len(s.TempPoints) == 0 {
		// Tracing starts from a click, not from bare cursor motion
		return s
	}

	s.TempPoints = append(s.TempPoints, s.Cursor)
	auto := s.Cursor
	s.lastAutoPoint = &auto
	return s
}

// updateHover refreshes the cosmetic vertex/segment highlight state
func (m *Machine) updateHover(s Session) Session {
	s.HoveredVertex = m.DetectVertexUnderCursor(s.Cursor)
	s.HoveredSegment = nil

	if s.HoveredVertex == nil {
		s.HoveredSegment = m.DetectSegmentUnderCursor(s.Cursor)
	}
	return s
}

// DetectVertexUnderCursor returns the closest polygon vertex within the
// hit threshold of the image-space cursor position, or nil
func (m *Machine) DetectVertexUnderCursor(cursor geometry.Point) *VertexRef {
	threshold := m.transform.HitThreshold(VertexHitThreshold)

	var best *VertexRef
	bestDist := threshold
	for pi := range m.engine.result.Polygons {
		poly := &m.engine.result.Polygons[pi]
		for vi, p := range poly.Points {
			d := cursor.Distance(p)
			if d <= bestDist {
				best = &VertexRef{PolygonID: poly.ID, Index: vi}
				bestDist = d
			}
		}
	}
	return best
}

// DetectSegmentUnderCursor returns the closest polygon edge within the
// edge hit threshold of the cursor, or nil
func (m *Machine) DetectSegmentUnderCursor(cursor geometry.Point) *SegmentRef {
	threshold := m.transform.HitThreshold(EdgeHitThreshold)

	var best *SegmentRef
	bestDist := threshold
	for pi := range m.engine.result.Polygons {
		poly := &m.engine.result.Polygons[pi]
		if hit := FindClosestSegment(cursor, poly.Points, bestDist); hit != nil {
			if best == nil || hit.Distance < bestDist {
				best = &SegmentRef{PolygonID: poly.ID, Index: hit.Index, Projected: hit.Projected}
				bestDist = hit.Distance
			}
		}
	}
	return best
}

// polygonAt returns the id of the first polygon containing the point
func (m *Machine) polygonAt(p geometry.Point) string {
	for i := range m.engine.result.Polygons {
		if geometry.ContainsPoint(m.engine.result.Polygons[i].Points, p) {
			return m.engine.result.Polygons[i].ID
		}
	}
	return ""
}

func (m *Machine) polygonByID(id string) *segmentation.Polygon {
	idx := m.engine.result.FindPolygon(id)
	if idx < 0 {
		return nil
	}
	return &m.engine.result.Polygons[idx]
}
