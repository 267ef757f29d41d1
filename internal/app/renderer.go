package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/michalprusek/segedit/pkg/editor"
	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

var (
	externalColor = rl.NewColor(80, 220, 120, 255)
	internalColor = rl.NewColor(255, 170, 60, 255)
	selectedColor = rl.NewColor(120, 200, 255, 255)
	tempColor     = rl.NewColor(255, 230, 80, 255)
	sliceColor    = rl.NewColor(255, 90, 90, 255)
)

// drawCanvas renders the image and all polygon overlays
func (app *App) drawCanvas() {
	if app.View.showImage && app.Image.hasTexture {
		origin := app.toScreen(geometry.NewPoint(0, 0))
		rl.DrawTextureEx(app.Image.texture, origin, 0, float32(app.Canvas.zoom), rl.White)
	}

	result := app.machine.Engine().Result()
	for i := range result.Polygons {
		app.drawPolygon(&result.Polygons[i])
	}

	app.drawTempPath()
	app.drawSliceLine()
	app.drawHover()
}

// drawPolygon draws one polygon ring with its vertices
func (app *App) drawPolygon(poly *segmentation.Polygon) {
	if poly.Type == segmentation.Internal && !app.View.showInternal {
		return
	}

	n := len(poly.Points)
	if n < 2 {
		return
	}

	selected := poly.ID == app.session.SelectedPolygonID
	color := externalColor
	if poly.Type == segmentation.Internal {
		color = internalColor
	}
	if selected {
		color = selectedColor
	}

	for i := 0; i < n; i++ {
		a := app.toScreen(poly.Points[i])
		b := app.toScreen(poly.Points[(i+1)%n])
		rl.DrawLineEx(a, b, app.lineThickness(selected), color)
	}

	if app.View.showVertices || selected {
		radius := app.vertexRadius(selected)
		for i := 0; i < n; i++ {
			p := app.toScreen(poly.Points[i])
			rl.DrawCircleV(p, radius, color)
		}
	}
}

// drawTempPath draws the uncommitted point sequence together with a
// preview line to the cursor
func (app *App) drawTempPath() {
	temp := app.session.TempPoints

	// In point-adding mode the path visually starts at the anchor vertex
	var anchor *geometry.Point
	if app.session.Mode == editor.ModePointAdding {
		anchor = app.machine.AnchorPoint(app.session)
	}

	if anchor == nil && len(temp) == 0 {
		return
	}

	var prev rl.Vector2
	hasPrev := false
	if anchor != nil {
		prev = app.toScreen(*anchor)
		rl.DrawCircleV(prev, app.vertexRadius(true), tempColor)
		hasPrev = true
	}

	for _, p := range temp {
		s := app.toScreen(p)
		if hasPrev {
			rl.DrawLineEx(prev, s, app.lineThickness(true), tempColor)
		}
		rl.DrawCircleV(s, app.vertexRadius(false), tempColor)
		prev = s
		hasPrev = true
	}

	// Preview segment from the last placed point to the cursor
	if hasPrev && (app.session.Mode == editor.ModeVertexEdit || app.session.Mode == editor.ModePointAdding) {
		cursor := app.toScreen(app.session.Cursor)
		rl.DrawLineEx(prev, cursor, 1, rl.Fade(tempColor, 0.6))
	}

	// Closing hint once the ring can be completed
	if app.session.Mode == editor.ModeVertexEdit && len(temp) >= 3 {
		first := app.toScreen(temp[0])
		rl.DrawCircleLines(int32(first.X), int32(first.Y), float32(editor.CloseRingThreshold*app.Canvas.zoom), tempColor)
	}
}

// drawSliceLine draws the in-progress cut line
func (app *App) drawSliceLine() {
	if app.session.Mode != editor.ModeSlicing || app.session.SliceStart == nil {
		return
	}

	start := app.toScreen(*app.session.SliceStart)
	end := app.toScreen(app.session.Cursor)
	rl.DrawLineEx(start, end, 2, sliceColor)
	rl.DrawCircleV(start, 4, sliceColor)
}

// drawHover highlights the vertex or edge under the cursor
func (app *App) drawHover() {
	if app.session.HoveredVertex != nil {
		result := app.machine.Engine().Result()
		idx := result.FindPolygon(app.session.HoveredVertex.PolygonID)
		if idx >= 0 && app.session.HoveredVertex.Index < len(result.Polygons[idx].Points) {
			p := app.toScreen(result.Polygons[idx].Points[app.session.HoveredVertex.Index])
			rl.DrawCircleLines(int32(p.X), int32(p.Y), app.vertexRadius(true)+3, rl.White)
		}
		return
	}

	if app.session.HoveredSegment != nil {
		p := app.toScreen(app.session.HoveredSegment.Projected)
		rl.DrawCircleV(p, app.vertexRadius(false), rl.Fade(rl.White, 0.7))
	}
}

func (app *App) toScreen(p geometry.Point) rl.Vector2 {
	s := app.machine.Transform().ToScreen(p)
	return rl.Vector2{X: float32(s.X), Y: float32(s.Y)}
}

// vertexRadius scales vertex markers mildly with zoom so they stay
// clickable without covering the cell at high magnification
func (app *App) vertexRadius(emphasized bool) float32 {
	base := 3.0 + app.Canvas.zoom
	if base > 7 {
		base = 7
	}
	if base < 2.5 {
		base = 2.5
	}
	if emphasized {
		base += 1.5
	}
	return float32(base)
}

func (app *App) lineThickness(emphasized bool) float32 {
	if emphasized {
		return 2
	}
	return 1.5
}
