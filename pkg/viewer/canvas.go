package viewer

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/michalprusek/segedit/pkg/editor"
	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

var (
	externalColor = color.RGBA{R: 80, G: 220, B: 120, A: 255}
	internalColor = color.RGBA{R: 255, G: 170, B: 60, A: 255}
	selectedColor = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	tempColor     = color.RGBA{R: 255, G: 230, B: 80, A: 255}
	sliceColor    = color.RGBA{R: 255, G: 90, B: 90, A: 255}
)

// SegmentationCanvas renders a segmentation's polygons over the
// microscopy image and feeds pointer input into the editing state
// machine
type SegmentationCanvas struct {
	widget.BaseWidget

	machine *editor.Machine
	session editor.Session

	background *canvas.Image
	lines      []*canvas.Line
	markers    []*canvas.Circle

	width      float64
	height     float64
	fitted     bool
	dragging   bool
	lastScreen geometry.Point

	onOutcome func(editor.Outcome)
	onChange  func()
}

// NewSegmentationCanvas creates a canvas over the given engine. img may
// be nil when the document's image is unavailable.
func NewSegmentationCanvas(engine *editor.Engine, img image.Image) *SegmentationCanvas {
	c := &SegmentationCanvas{
		machine: editor.NewMachine(engine),
		session: editor.NewSession(),
	}
	if img != nil {
		c.background = canvas.NewImageFromImage(img)
		c.background.FillMode = canvas.ImageFillStretch
	}
	c.ExtendBaseWidget(c)
	return c
}

// SetOnOutcome sets the callback invoked with every operation outcome
func (c *SegmentationCanvas) SetOnOutcome(callback func(editor.Outcome)) {
	c.onOutcome = callback
}

// SetOnChange sets the callback invoked after any committed edit
func (c *SegmentationCanvas) SetOnChange(callback func()) {
	c.onChange = callback
}

// Machine exposes the underlying state machine
func (c *SegmentationCanvas) Machine() *editor.Machine {
	return c.machine
}

// Session returns the current interaction state
func (c *SegmentationCanvas) Session() editor.Session {
	return c.session
}

// EnterMode switches the interaction mode
func (c *SegmentationCanvas) EnterMode(mode editor.Mode) {
	c.session = c.session.EnterMode(mode)
	c.Rebuild()
}

// SetKeepBoth switches between keep-both and keep-larger slicing
func (c *SegmentationCanvas) SetKeepBoth(keep bool) {
	c.session.SliceKeepBoth = keep
}

// ClearSession discards uncommitted editing state
func (c *SegmentationCanvas) ClearSession() {
	c.session = c.session.Reset()
	c.Rebuild()
}

// SimplifySelected runs polygon simplification on the selection
func (c *SegmentationCanvas) SimplifySelected(tolerance float64) editor.Outcome {
	if c.session.SelectedPolygonID == "" {
		return editor.Outcome{OK: false, Message: "no polygon selected"}
	}
	outcome := c.machine.Engine().SimplifyPolygon(c.session.SelectedPolygonID, tolerance)
	c.afterEdit(outcome)
	return outcome
}

// DeleteSelected removes the selected polygon
func (c *SegmentationCanvas) DeleteSelected() editor.Outcome {
	if c.session.SelectedPolygonID == "" {
		return editor.Outcome{OK: false, Message: "no polygon selected"}
	}
	outcome := c.machine.Engine().DeletePolygon(c.session.SelectedPolygonID)
	if outcome.OK {
		c.session.SelectedPolygonID = ""
	}
	c.afterEdit(outcome)
	return outcome
}

// CreateRenderer creates the renderer for the widget
func (c *SegmentationCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &segmentationCanvasRenderer{
		canvas:  c,
		objects: []fyne.CanvasObject{},
	}
}

// Tapped handles tap events as a press and release at the same point
func (c *SegmentationCanvas) Tapped(event *fyne.PointEvent) {
	screen := geometry.NewPoint(float64(event.Position.X), float64(event.Position.Y))
	c.dispatch(editor.PointerEvent{Kind: editor.PointerDown, Screen: screen})
	c.dispatch(editor.PointerEvent{Kind: editor.PointerUp, Screen: screen})
}

// Dragged handles drag events: the first one acts as the press
func (c *SegmentationCanvas) Dragged(event *fyne.DragEvent) {
	screen := geometry.NewPoint(float64(event.Position.X), float64(event.Position.Y))

	if !c.dragging {
		start := geometry.NewPoint(
			float64(event.Position.X-event.Dragged.DX),
			float64(event.Position.Y-event.Dragged.DY),
		)
		c.dispatch(editor.PointerEvent{Kind: editor.PointerDown, Screen: start})
		c.dragging = true
	}

	// Left-drag on empty canvas pans the view
	if c.session.DraggingCanvas {
		t := c.machine.Transform()
		t.Offset = t.Offset.Add(geometry.NewPoint(
			float64(event.Dragged.DX)/t.Zoom,
			float64(event.Dragged.DY)/t.Zoom,
		))
		c.machine.SetTransform(t)
	}

	c.lastScreen = screen
	c.dispatch(editor.PointerEvent{Kind: editor.PointerMove, Screen: screen})
}

// DragEnd handles the end of a drag event
func (c *SegmentationCanvas) DragEnd() {
	if c.dragging {
		c.dispatch(editor.PointerEvent{Kind: editor.PointerUp, Screen: c.lastScreen})
		c.dragging = false
	}
}

// MouseMoved satisfies desktop.Hoverable so vertex highlights track the
// cursor without a button held
func (c *SegmentationCanvas) MouseMoved(event *desktop.MouseEvent) {
	screen := geometry.NewPoint(float64(event.Position.X), float64(event.Position.Y))
	c.dispatch(editor.PointerEvent{Kind: editor.PointerMove, Screen: screen})
}

// MouseIn satisfies desktop.Hoverable
func (c *SegmentationCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseOut satisfies desktop.Hoverable
func (c *SegmentationCanvas) MouseOut() {
	c.session.HoveredVertex = nil
	c.session.HoveredSegment = nil
	c.Rebuild()
}

// Scrolled handles scroll events for zooming around the cursor
func (c *SegmentationCanvas) Scrolled(event *fyne.ScrollEvent) {
	factor := 1.0 + float64(event.Scrolled.DY)*0.002
	if factor <= 0 {
		return
	}

	t := c.machine.Transform()
	screen := geometry.NewPoint(float64(event.Position.X), float64(event.Position.Y))
	anchor := t.ToImage(screen)

	t.Zoom *= factor
	if t.Zoom < 0.05 {
		t.Zoom = 0.05
	}
	if t.Zoom > 50 {
		t.Zoom = 50
	}
	t.Offset = geometry.NewPoint(screen.X/t.Zoom-anchor.X, screen.Y/t.Zoom-anchor.Y)
	c.machine.SetTransform(t)
	c.Rebuild()
}

func (c *SegmentationCanvas) dispatch(ev editor.PointerEvent) {
	before := c.machine.Engine().Result()

	var outcome editor.Outcome
	switch ev.Kind {
	case editor.PointerDown:
		c.session, outcome = c.machine.HandlePointerDown(ev, c.session)
	case editor.PointerUp:
		c.session, outcome = c.machine.HandlePointerUp(ev, c.session)
	default:
		c.session, outcome = c.machine.HandlePointerMove(ev, c.session)
	}

	if c.machine.Engine().Result() != before && c.onChange != nil {
		c.onChange()
	}
	if c.onOutcome != nil && outcome.Message != "" {
		c.onOutcome(outcome)
	}
	c.Rebuild()
}

func (c *SegmentationCanvas) afterEdit(outcome editor.Outcome) {
	if outcome.OK && c.onChange != nil {
		c.onChange()
	}
	if c.onOutcome != nil && outcome.Message != "" {
		c.onOutcome(outcome)
	}
	c.Rebuild()
}

// fitView scales the image to the widget at first layout
func (c *SegmentationCanvas) fitView() {
	result := c.machine.Engine().Result()
	imgW := float64(result.ImageWidth)
	imgH := float64(result.ImageHeight)
	if imgW <= 0 || imgH <= 0 || c.width <= 0 || c.height <= 0 {
		return
	}

	zoom := c.width / imgW
	if c.height/imgH < zoom {
		zoom = c.height / imgH
	}
	zoom *= 0.95

	c.machine.SetTransform(editor.Transform{
		Zoom: zoom,
		Offset: geometry.NewPoint(
			(c.width-imgW*zoom)/2/zoom,
			(c.height-imgH*zoom)/2/zoom,
		),
	})
	c.fitted = true
}

// Rebuild regenerates the canvas primitives from the current result and
// session
func (c *SegmentationCanvas) Rebuild() {
	c.lines = c.lines[:0]
	c.markers = c.markers[:0]

	t := c.machine.Transform()
	result := c.machine.Engine().Result()

	if c.background != nil {
		origin := t.ToScreen(geometry.NewPoint(0, 0))
		size := t.ToScreen(geometry.NewPoint(float64(result.ImageWidth), float64(result.ImageHeight)))
		c.background.Move(fyne.NewPos(float32(origin.X), float32(origin.Y)))
		c.background.Resize(fyne.NewSize(float32(size.X-origin.X), float32(size.Y-origin.Y)))
	}

	for i := range result.Polygons {
		c.buildPolygon(&result.Polygons[i], t)
	}
	c.buildTempPath(t)
	c.buildSliceLine(t)
	c.buildHover(t)

	c.Refresh()
}

func (c *SegmentationCanvas) buildPolygon(poly *segmentation.Polygon, t editor.Transform) {
	n := len(poly.Points)
	if n < 2 {
		return
	}

	selected := poly.ID == c.session.SelectedPolygonID
	clr := color.Color(externalColor)
	if poly.Type == segmentation.Internal {
		clr = internalColor
	}
	if selected {
		clr = selectedColor
	}

	for i := 0; i < n; i++ {
		c.addLine(t, poly.Points[i], poly.Points[(i+1)%n], clr, 1.5)
	}

	if selected {
		for i := 0; i < n; i++ {
			c.addMarker(t, poly.Points[i], clr, 7)
		}
	}
}

func (c *SegmentationCanvas) buildTempPath(t editor.Transform) {
	temp := c.session.TempPoints
	if len(temp) == 0 {
		return
	}

	for i := 0; i < len(temp)-1; i++ {
		c.addLine(t, temp[i], temp[i+1], tempColor, 2)
	}
	for _, p := range temp {
		c.addMarker(t, p, tempColor, 6)
	}
}

func (c *SegmentationCanvas) buildSliceLine(t editor.Transform) {
	if c.session.SliceStart == nil {
		return
	}
	c.addLine(t, *c.session.SliceStart, c.session.Cursor, sliceColor, 2)
	c.addMarker(t, *c.session.SliceStart, sliceColor, 8)
}

func (c *SegmentationCanvas) buildHover(t editor.Transform) {
	if c.session.HoveredVertex != nil {
		result := c.machine.Engine().Result()
		idx := result.FindPolygon(c.session.HoveredVertex.PolygonID)
		if idx >= 0 && c.session.HoveredVertex.Index < len(result.Polygons[idx].Points) {
			c.addMarker(t, result.Polygons[idx].Points[c.session.HoveredVertex.Index], color.White, 10)
		}
		return
	}
	if c.session.HoveredSegment != nil {
		c.addMarker(t, c.session.HoveredSegment.Projected, color.White, 6)
	}
}

func (c *SegmentationCanvas) addLine(t editor.Transform, a, b geometry.Point, clr color.Color, stroke float32) {
	sa := t.ToScreen(a)
	sb := t.ToScreen(b)

	line := canvas.NewLine(clr)
	line.StrokeWidth = stroke
	line.Position1 = fyne.NewPos(float32(sa.X), float32(sa.Y))
	line.Position2 = fyne.NewPos(float32(sb.X), float32(sb.Y))
	c.lines = append(c.lines, line)
}

func (c *SegmentationCanvas) addMarker(t editor.Transform, p geometry.Point, clr color.Color, size float32) {
	s := t.ToScreen(p)

	marker := canvas.NewCircle(clr)
	marker.StrokeColor = color.White
	marker.StrokeWidth = 1
	marker.Resize(fyne.NewSize(size, size))
	marker.Move(fyne.NewPos(float32(s.X)-size/2, float32(s.Y)-size/2))
	c.markers = append(c.markers, marker)
}

// segmentationCanvasRenderer implements fyne.WidgetRenderer
type segmentationCanvasRenderer struct {
	canvas  *SegmentationCanvas
	objects []fyne.CanvasObject
}

func (r *segmentationCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.width = float64(size.Width)
	r.canvas.height = float64(size.Height)
	if !r.canvas.fitted {
		r.canvas.fitView()
	}
	r.canvas.Rebuild()
}

func (r *segmentationCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *segmentationCanvasRenderer) Refresh() {
	r.objects = make([]fyne.CanvasObject, 0, 1+len(r.canvas.lines)+len(r.canvas.markers))

	if r.canvas.background != nil {
		r.objects = append(r.objects, r.canvas.background)
	}
	for _, line := range r.canvas.lines {
		r.objects = append(r.objects, line)
	}
	for _, marker := range r.canvas.markers {
		r.objects = append(r.objects, marker)
	}

	canvas.Refresh(r.canvas)
}

func (r *segmentationCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *segmentationCanvasRenderer) Destroy() {}
