package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

// newSquareMachine builds a machine over the small 10x10 square with an
// identity transform and a clock that advances past the hover throttle
// on every read
func newSquareMachine(t *testing.T) (*Machine, string) {
	t.Helper()
	engine, id := newSquareEngine(t)
	return withFastClock(NewMachine(engine)), id
}

// newLargeMachine builds a machine over a 100x100 square. The larger
// ring keeps interior points clear of the vertex and edge hit
// thresholds, which a 10x10 ring cannot.
func newLargeMachine(t *testing.T) (*Machine, string) {
	t.Helper()
	ring := []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(100, 0),
		geometry.NewPoint(100, 100),
		geometry.NewPoint(0, 100),
	}
	poly := segmentation.NewPolygon(ring, segmentation.External)
	engine := NewEngine(&segmentation.Result{
		ImageWidth:  200,
		ImageHeight: 200,
		Polygons:    []segmentation.Polygon{poly},
	})
	return withFastClock(NewMachine(engine)), poly.ID
}

func withFastClock(m *Machine) *Machine {
	clock := time.Unix(0, 0)
	m.now = func() time.Time {
		clock = clock.Add(hoverThrottle)
		return clock
	}
	return m
}

func down(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerDown, Screen: geometry.NewPoint(x, y)}
}

func move(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMove, Screen: geometry.NewPoint(x, y)}
}

func up(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerUp, Screen: geometry.NewPoint(x, y)}
}

func shiftMove(x, y float64) PointerEvent {
	ev := move(x, y)
	ev.Shift = true
	return ev
}

func TestEnterModeIsExclusive(t *testing.T) {
	s := NewSession()
	s.TempPoints = []geometry.Point{geometry.NewPoint(1, 1)}
	s.SelectedVertexIndex = 2
	s.SourcePolygonID = "p"

	s = s.EnterMode(ModeSlicing)

	assert.Equal(t, ModeSlicing, s.Mode)
	assert.Empty(t, s.TempPoints, "uncommitted points cleared on mode switch")
	assert.Equal(t, -1, s.SelectedVertexIndex)
	assert.Empty(t, s.SourcePolygonID)
}

func TestEnterModeTogglesOff(t *testing.T) {
	s := NewSession().EnterMode(ModeVertexEdit)
	s = s.EnterMode(ModeVertexEdit)
	assert.Equal(t, ModeIdle, s.Mode)
}

func TestIdleSelectsPolygonAndPans(t *testing.T) {
	m, id := newLargeMachine(t)
	s := NewSession()

	// Click in the polygon body, clear of every vertex and edge
	s, _ = m.HandlePointerDown(down(50, 50), s)
	assert.Equal(t, id, s.SelectedPolygonID)
	assert.Nil(t, s.DraggingVertex)

	// Click on empty canvas pans
	s.SelectedPolygonID = ""
	s, _ = m.HandlePointerDown(down(300, 300), s)
	assert.True(t, s.DraggingCanvas)

	s, _ = m.HandlePointerUp(up(310, 310), s)
	assert.False(t, s.DraggingCanvas)
}

func TestIdleVertexDragCommits(t *testing.T) {
	m, id := newSquareMachine(t)
	s := NewSession()

	// Press on vertex 0 at (0,0)
	s, _ = m.HandlePointerDown(down(0, 0), s)
	require.NotNil(t, s.DraggingVertex)
	assert.Equal(t, 0, s.DraggingVertex.Index)

	// Drag it outward; the ring updates live
	s, _ = m.HandlePointerMove(move(-5, -5), s)
	assert.Equal(t, geometry.NewPoint(-5, -5), ringOf(t, m.Engine(), id)[0])

	s, outcome := m.HandlePointerUp(up(-5, -5), s)
	assert.True(t, outcome.OK)
	assert.Nil(t, s.DraggingVertex)
	assert.Equal(t, geometry.NewPoint(-5, -5), ringOf(t, m.Engine(), id)[0])
}

func TestIdleVertexDragRevertsOnSelfIntersection(t *testing.T) {
	m, id := newSquareMachine(t)
	s := NewSession()

	s, _ = m.HandlePointerDown(down(0, 0), s)
	require.NotNil(t, s.DraggingVertex)

	// (5,20) puts the edge to (10,0) across the top edge of the ring
	s, _ = m.HandlePointerMove(move(5, 20), s)
	require.True(t, geometry.IsSelfIntersecting(ringOf(t, m.Engine(), id)))

	s, outcome := m.HandlePointerUp(up(5, 20), s)

	assert.False(t, outcome.OK)
	assert.Nil(t, s.DraggingVertex)
	assert.Equal(t, geometry.NewPoint(0, 0), ringOf(t, m.Engine(), id)[0], "drag reverted")
	assert.False(t, geometry.IsSelfIntersecting(ringOf(t, m.Engine(), id)))
}

func TestIdleEdgeClickInsertsVertex(t *testing.T) {
	m, id := newLargeMachine(t)
	s := NewSession()
	s.SelectedPolygonID = id

	// Midpoint of the bottom edge: too far from either endpoint to count
	// as a vertex hit, on the edge itself
	s, outcome := m.HandlePointerDown(down(50, 0), s)
	require.True(t, outcome.OK, outcome.Message)
	assert.Nil(t, s.DraggingVertex)

	ring := ringOf(t, m.Engine(), id)
	require.Len(t, ring, 5)
	assert.Equal(t, geometry.NewPoint(50, 0), ring[1])
}

func TestVertexEditBuildsAndClosesPolygon(t *testing.T) {
	m, _ := newSquareMachine(t)
	s := NewSession().EnterMode(ModeVertexEdit)

	s, _ = m.HandlePointerDown(down(50, 50), s)
	s, _ = m.HandlePointerDown(down(80, 50), s)
	s, _ = m.HandlePointerDown(down(65, 80), s)
	require.Len(t, s.TempPoints, 3)

	// Clicking near the first point closes the ring
	s, outcome := m.HandlePointerDown(down(52, 51), s)
	require.True(t, outcome.OK, outcome.Message)
	assert.Empty(t, s.TempPoints)
	assert.Equal(t, ModeVertexEdit, s.Mode, "mode stays active for the next polygon")

	result := m.Engine().Result()
	require.Len(t, result.Polygons, 2)
	created := result.Polygons[1]
	assert.Len(t, created.Points, 3)
	assert.Equal(t, created.ID, s.SelectedPolygonID)
}

func TestVertexEditShiftTrace(t *testing.T) {
	m, _ := newSquareMachine(t)
	s := NewSession().EnterMode(ModeVertexEdit)

	// Tracing starts from a clicked point
	s, _ = m.HandlePointerDown(down(100, 100), s)
	require.Len(t, s.TempPoints, 1)

	// Movement under the auto-point distance adds nothing
	s, _ = m.HandlePointerMove(shiftMove(105, 100), s)
	assert.Len(t, s.TempPoints, 1)

	// Crossing the distance threshold drops a point
	s, _ = m.HandlePointerMove(shiftMove(125, 100), s)
	assert.Len(t, s.TempPoints, 2)

	// Without Shift nothing is added regardless of distance
	s, _ = m.HandlePointerMove(move(200, 100), s)
	assert.Len(t, s.TempPoints, 2)
}

func TestPointAddingAnchorAfterRingShrink(t *testing.T) {
	m, id := newLargeMachine(t)
	s := NewSession().EnterMode(ModePointAdding)

	// Anchor on the last vertex of the 4-point ring
	s, _ = m.HandlePointerDown(down(0, 100), s)
	require.Equal(t, 3, s.SelectedVertexIndex)

	anchor := m.AnchorPoint(s)
	require.NotNil(t, anchor)
	assert.Equal(t, geometry.NewPoint(0, 100), *anchor)

	// The ring shrinks behind the session's back, for example via the
	// remove-vertex shortcut, leaving the anchored index out of range
	outcome := m.Engine().RemovePoint(id, 0)
	require.True(t, outcome.OK, outcome.Message)
	require.Len(t, ringOf(t, m.Engine(), id), 3)

	assert.Nil(t, m.AnchorPoint(s), "stale anchor must resolve to nil, not panic")

	// Committing against the stale anchor is rejected, not applied
	s, outcome = m.HandlePointerDown(down(100, 0), s)
	assert.False(t, outcome.OK)
	assert.Equal(t, ModePointAdding, s.Mode)
	assert.Len(t, ringOf(t, m.Engine(), id), 3)
}

func TestPointAddingSpliceFlow(t *testing.T) {
	m, id := newSquareMachine(t)
	s := NewSession().EnterMode(ModePointAdding)

	// Anchor on vertex 3 at (0,10)
	s, _ = m.HandlePointerDown(down(0, 10), s)
	assert.Equal(t, 3, s.SelectedVertexIndex)
	assert.Equal(t, id, s.SourcePolygonID)

	// A click away from any vertex extends the temp path
	s, _ = m.HandlePointerDown(down(-20, 5), s)
	require.Len(t, s.TempPoints, 1)

	// Clicking vertex 0 of the same polygon commits the splice
	s, outcome := m.HandlePointerDown(down(0, 0), s)
	require.True(t, outcome.OK, outcome.Message)
	assert.Equal(t, ModeIdle, s.Mode, "mode exits on successful commit")
	assert.Empty(t, s.TempPoints)

	ring := ringOf(t, m.Engine(), id)
	assert.Contains(t, ring, geometry.NewPoint(-20, 5))
	assert.False(t, geometry.IsSelfIntersecting(ring))
}

func TestPointAddingRequiresVertexAnchor(t *testing.T) {
	m, _ := newSquareMachine(t)
	s := NewSession().EnterMode(ModePointAdding)

	s, outcome := m.HandlePointerDown(down(50, 50), s)
	assert.False(t, outcome.OK)
	assert.Equal(t, -1, s.SelectedVertexIndex)
}

func TestPointAddingSameVertexRejected(t *testing.T) {
	m, _ := newSquareMachine(t)
	s := NewSession().EnterMode(ModePointAdding)

	s, _ = m.HandlePointerDown(down(0, 0), s)
	s, outcome := m.HandlePointerDown(down(0, 0), s)

	assert.False(t, outcome.OK)
	assert.Equal(t, ModePointAdding, s.Mode, "session stays recoverable")
	assert.Equal(t, 0, s.SelectedVertexIndex)
}

func TestSlicingTwoClickFlow(t *testing.T) {
	m, id := newSquareMachine(t)
	s := NewSession().EnterMode(ModeSlicing)
	s.SelectedPolygonID = id
	s.SliceKeepBoth = true

	s, _ = m.HandlePointerDown(down(-5, 5), s)
	require.NotNil(t, s.SliceStart)

	s, outcome := m.HandlePointerDown(down(15, 5), s)
	require.True(t, outcome.OK, outcome.Message)
	assert.Nil(t, s.SliceStart)
	assert.Equal(t, ModeIdle, s.Mode)
	assert.Len(t, m.Engine().Result().Polygons, 2)
}

func TestSlicingInvalidCutStaysArmed(t *testing.T) {
	m, id := newSquareMachine(t)
	s := NewSession().EnterMode(ModeSlicing)
	s.SelectedPolygonID = id

	s, _ = m.HandlePointerDown(down(-5, 5), s)
	require.NotNil(t, s.SliceStart)

	// Endpoint inside the polygon: only one boundary crossing
	s, outcome := m.HandlePointerDown(down(5, 5), s)
	assert.False(t, outcome.OK)
	assert.NotNil(t, s.SliceStart, "slice anchor survives an invalid cut")
	assert.Equal(t, ModeSlicing, s.Mode)
	assert.Len(t, m.Engine().Result().Polygons, 1)
}

func TestSlicingKeepLargerRegion(t *testing.T) {
	m, id := newSquareMachine(t)
	s := NewSession().EnterMode(ModeSlicing)
	s.SelectedPolygonID = id
	s.SliceKeepBoth = false

	s, _ = m.HandlePointerDown(down(-5, 1), s)
	s, outcome := m.HandlePointerDown(down(15, 1), s)
	require.True(t, outcome.OK, outcome.Message)

	require.Len(t, m.Engine().Result().Polygons, 1)
	assert.InDelta(t, 90.0, geometry.Area(ringOf(t, m.Engine(), id)), 1e-6)
}

func TestHoverDetection(t *testing.T) {
	m, id := newLargeMachine(t)
	s := NewSession()

	// Near vertex 0
	s, _ = m.HandlePointerMove(move(2, 2), s)
	require.NotNil(t, s.HoveredVertex)
	assert.Equal(t, id, s.HoveredVertex.PolygonID)
	assert.Equal(t, 0, s.HoveredVertex.Index)

	// Middle of the bottom edge, away from both vertices
	s, _ = m.HandlePointerMove(move(50, -1), s)
	assert.Nil(t, s.HoveredVertex)
	require.NotNil(t, s.HoveredSegment)
	assert.Equal(t, 0, s.HoveredSegment.Index)

	// Far away from everything
	s, _ = m.HandlePointerMove(move(500, 500), s)
	assert.Nil(t, s.HoveredVertex)
	assert.Nil(t, s.HoveredSegment)
}

func TestHoverThrottling(t *testing.T) {
	engine, _ := newSquareEngine(t)
	m := NewMachine(engine)

	// Frozen clock: after the first hover pass, moves within the same
	// frame must not re-run hit testing
	clock := time.Unix(100, 0)
	m.now = func() time.Time { return clock }

	s := NewSession()
	s, _ = m.HandlePointerMove(move(11, 11), s)
	require.NotNil(t, s.HoveredVertex)

	s, _ = m.HandlePointerMove(move(500, 500), s)
	assert.NotNil(t, s.HoveredVertex, "hover state is stale within the throttle window")

	clock = clock.Add(2 * hoverThrottle)
	s, _ = m.HandlePointerMove(move(500, 500), s)
	assert.Nil(t, s.HoveredVertex)
}

func TestTransformAppliesToPointerEvents(t *testing.T) {
	m, id := newLargeMachine(t)
	m.SetTransform(Transform{Zoom: 2, Offset: geometry.NewPoint(0, 0)})

	s := NewSession()
	// Screen (100,100) maps to image (50,50), inside the polygon body
	s, _ = m.HandlePointerDown(down(100, 100), s)
	assert.Equal(t, id, s.SelectedPolygonID)
	assert.Equal(t, geometry.NewPoint(50, 50), s.Cursor)
}
