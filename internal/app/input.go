package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/michalprusek/segedit/pkg/editor"
	"github.com/michalprusek/segedit/pkg/geometry"
)

// handleInput processes user input for one frame
func (app *App) handleInput() {
	mousePos := rl.GetMousePosition()
	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)

	// Zoom with mouse wheel, anchored on the cursor
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		app.zoomAt(mousePos, 1.0+float64(wheel)*0.1)
	}

	// Middle mouse drag pans regardless of mode
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.doPan(delta)
		}
	}

	// Left-drag on empty canvas pans too; the state machine flags it
	if app.session.DraggingCanvas && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.doPan(delta)
		}
	}

	// Mode shortcuts
	if rl.IsKeyPressed(rl.KeyV) {
		app.enterMode(editor.ModeVertexEdit)
	}
	if rl.IsKeyPressed(rl.KeyA) {
		app.enterMode(editor.ModePointAdding)
	}
	if rl.IsKeyPressed(rl.KeyS) && !ctrlPressed {
		app.enterMode(editor.ModeSlicing)
	}
	if rl.IsKeyPressed(rl.KeyK) {
		app.session.SliceKeepBoth = !app.session.SliceKeepBoth
		if app.session.SliceKeepBoth {
			app.setStatus("Slice keeps both regions", rl.SkyBlue)
		} else {
			app.setStatus("Slice keeps the larger region", rl.SkyBlue)
		}
	}

	// Edit shortcuts
	if ctrlPressed && rl.IsKeyPressed(rl.KeyS) {
		app.saveDocument()
	}
	if rl.IsKeyPressed(rl.KeyQ) && !ctrlPressed {
		app.simplifySelected()
	}
	if rl.IsKeyPressed(rl.KeyD) {
		app.duplicateHoveredVertex()
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		app.removeHoveredVertex()
	}
	if rl.IsKeyPressed(rl.KeyX) || rl.IsKeyPressed(rl.KeyDelete) {
		app.deleteSelectedPolygon()
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		app.session = app.session.Reset()
	}

	// View shortcuts
	if rl.IsKeyPressed(rl.KeyI) {
		app.View.showImage = !app.View.showImage
	}
	if rl.IsKeyPressed(rl.KeyP) {
		app.View.showVertices = !app.View.showVertices
	}
	if rl.IsKeyPressed(rl.KeyO) {
		app.View.showInternal = !app.View.showInternal
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		app.Canvas.zoom = app.Canvas.defaultZoom
		app.Canvas.offset = app.Canvas.defaultOffset
		app.syncTransform()
	}

	// Pointer events feed the state machine
	screen := geometry.NewPoint(float64(mousePos.X), float64(mousePos.Y))

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.dispatch(editor.PointerEvent{Kind: editor.PointerDown, Screen: screen, Shift: shiftPressed})
	}

	app.dispatch(editor.PointerEvent{Kind: editor.PointerMove, Screen: screen, Shift: shiftPressed})

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.dispatch(editor.PointerEvent{Kind: editor.PointerUp, Screen: screen, Shift: shiftPressed})
	}
}

// dispatch routes one pointer event through the state machine and
// surfaces the outcome. A swapped result pointer means a committed edit.
func (app *App) dispatch(ev editor.PointerEvent) {
	before := app.machine.Engine().Result()

	var outcome editor.Outcome
	switch ev.Kind {
	case editor.PointerDown:
		app.session, outcome = app.machine.HandlePointerDown(ev, app.session)
	case editor.PointerUp:
		app.session, outcome = app.machine.HandlePointerUp(ev, app.session)
	default:
		app.session, outcome = app.machine.HandlePointerMove(ev, app.session)
	}

	if app.machine.Engine().Result() != before {
		app.Document.dirty = true
	}
	app.reportOutcome(outcome)
}

// reportOutcome turns a rejection or a described success into a status
// message. Silent successes stay silent.
func (app *App) reportOutcome(outcome editor.Outcome) {
	if outcome.Message == "" {
		return
	}
	if outcome.OK {
		app.setStatus(outcome.Message, rl.Green)
	} else {
		app.setStatus(outcome.Message, rl.Red)
	}
}

func (app *App) enterMode(mode editor.Mode) {
	app.session = app.session.EnterMode(mode)
	app.setStatus(fmt.Sprintf("Mode: %s", app.session.Mode), rl.SkyBlue)
}

func (app *App) simplifySelected() {
	if app.session.SelectedPolygonID == "" {
		app.setStatus("Select a polygon to simplify", rl.Orange)
		return
	}

	before := app.machine.Engine().Result()
	outcome := app.machine.Engine().SimplifyPolygon(app.session.SelectedPolygonID, editor.DefaultSimplifyTolerance)
	if app.machine.Engine().Result() != before {
		app.Document.dirty = true
	}
	app.reportOutcome(outcome)
}

func (app *App) duplicateHoveredVertex() {
	if app.session.HoveredVertex == nil {
		app.setStatus("Hover a vertex to duplicate", rl.Orange)
		return
	}

	ref := app.session.HoveredVertex
	outcome := app.machine.Engine().DuplicatePoint(ref.PolygonID, ref.Index)
	if outcome.OK {
		app.Document.dirty = true
	}
	app.reportOutcome(outcome)
}

func (app *App) removeHoveredVertex() {
	if app.session.HoveredVertex == nil {
		app.setStatus("Hover a vertex to remove", rl.Orange)
		return
	}

	ref := app.session.HoveredVertex
	outcome := app.machine.Engine().RemovePoint(ref.PolygonID, ref.Index)
	if outcome.OK {
		app.Document.dirty = true
		app.session.HoveredVertex = nil
	}
	app.reportOutcome(outcome)
}

func (app *App) deleteSelectedPolygon() {
	if app.session.SelectedPolygonID == "" {
		app.setStatus("Select a polygon to delete", rl.Orange)
		return
	}

	outcome := app.machine.Engine().DeletePolygon(app.session.SelectedPolygonID)
	if outcome.OK {
		app.Document.dirty = true
		app.session.SelectedPolygonID = ""
		app.setStatus("Polygon deleted", rl.Green)
		return
	}
	app.reportOutcome(outcome)
}

// zoomAt changes the zoom while keeping the image point under the
// cursor fixed on screen
func (app *App) zoomAt(mousePos rl.Vector2, factor float64) {
	newZoom := app.Canvas.zoom * factor
	if newZoom < 0.05 {
		newZoom = 0.05
	}
	if newZoom > 50 {
		newZoom = 50
	}

	screen := geometry.NewPoint(float64(mousePos.X), float64(mousePos.Y))
	anchor := app.machine.Transform().ToImage(screen)

	// Solve offset so that anchor maps back to the same screen point
	app.Canvas.zoom = newZoom
	app.Canvas.offset = geometry.NewPoint(
		screen.X/newZoom-anchor.X,
		screen.Y/newZoom-anchor.Y,
	)
	app.syncTransform()
}

// doPan shifts the view by a screen-space mouse delta
func (app *App) doPan(delta rl.Vector2) {
	app.Canvas.offset = app.Canvas.offset.Add(geometry.NewPoint(
		float64(delta.X)/app.Canvas.zoom,
		float64(delta.Y)/app.Canvas.zoom,
	))
	app.syncTransform()
}
