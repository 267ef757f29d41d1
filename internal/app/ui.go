package app

import (
	"fmt"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/michalprusek/segedit/pkg/analysis"
	"github.com/michalprusek/segedit/pkg/editor"
	"github.com/michalprusek/segedit/version"
)

// panelWidth is the reserved width of the info panel on the left
const panelWidth = 270.0

// drawUI draws the user interface
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	// Panel background
	rl.DrawRectangle(0, 0, int32(panelWidth), int32(screenHeight), rl.NewColor(10, 12, 18, 230))

	stats := analysis.AnalyzeResult(app.machine.Engine().Result())

	// === DOCUMENT ===
	rl.DrawTextEx(app.UI.font, "Document:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	name := filepath.Base(app.Document.path)
	if app.Document.dirty {
		name += " *"
	}
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  %s", name), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Image: %d x %d px", app.Image.width, app.Image.height), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Polygons: %d (%d holes)", stats.PolygonCount, stats.InternalCount), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight
	if stats.PolygonCount > 0 {
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Avg area: %s", analysis.FormatMeasurement(stats.AvgArea, "px²")), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
	}
	y += lineHeight

	// === MODE ===
	rl.DrawTextEx(app.UI.font, "Mode:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  %s", app.session.Mode), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Green)
	y += lineHeight
	if app.session.Mode == editor.ModeSlicing {
		keep := "larger region"
		if app.session.SliceKeepBoth {
			keep = "both regions"
		}
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Keep: %s (K)", keep), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight
	}
	y += lineHeight

	// === SELECTION ===
	if app.session.SelectedPolygonID != "" {
		if info := app.selectedInfo(stats); info != nil {
			rl.DrawTextEx(app.UI.font, "Selected:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
			y += lineHeight
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Points: %d", info.PointCount), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
			y += lineHeight
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Area: %s", analysis.FormatMeasurement(info.Area, "px²")), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
			y += lineHeight
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Perimeter: %s", analysis.FormatMeasurement(info.Perimeter, "px")), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
			y += lineHeight
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Centroid: %s", analysis.FormatPoint(info.Centroid)), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
			y += lineHeight
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Circularity: %.3f", info.Metrics.Circularity), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
			y += lineHeight
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Solidity: %.3f", info.Metrics.Solidity), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
			y += lineHeight
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Feret: %s x %s", analysis.FormatMeasurement(info.Metrics.FeretMax, "px"), analysis.FormatMeasurement(info.Metrics.FeretMin, "px")), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
			y += lineHeight * 2
		}
	}

	// === KEYS ===
	rl.DrawTextEx(app.UI.font, "Modes:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  V: Draw | A: Add points | S: Slice", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  ESC: Cancel mode state", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight * 2

	rl.DrawTextEx(app.UI.font, "Edit:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  Drag vertex: Move", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  Click edge: Insert vertex", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  Backspace: Remove vertex", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  D: Duplicate vertex | Q: Simplify", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  X: Delete polygon | Ctrl+S: Save", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight * 2

	// Context-specific hints
	switch app.session.Mode {
	case editor.ModeVertexEdit:
		rl.DrawTextEx(app.UI.font, "Draw:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  Click: Place point", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  Shift+Move: Trace freehand", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  Click first point: Close ring", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	case editor.ModePointAdding:
		rl.DrawTextEx(app.UI.font, "Add points:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		if app.session.SelectedVertexIndex < 0 {
			rl.DrawTextEx(app.UI.font, "  Click a vertex to start", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		} else {
			rl.DrawTextEx(app.UI.font, "  Click to extend the path", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
			y += lineHeight
			rl.DrawTextEx(app.UI.font, "  Click another vertex to finish", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		}
	case editor.ModeSlicing:
		rl.DrawTextEx(app.UI.font, "Slice:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		if app.session.SliceStart == nil {
			rl.DrawTextEx(app.UI.font, "  Click: Set cut start", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		} else {
			rl.DrawTextEx(app.UI.font, "  Click: Set cut end", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		}
	}

	// View shortcuts at the panel bottom
	viewY := screenHeight - 90
	rl.DrawTextEx(app.UI.font, "View:", rl.Vector2{X: 10, Y: viewY}, fontSize16, 1, rl.Yellow)
	viewY += lineHeight
	rl.DrawTextEx(app.UI.font, "  I: Image | P: Points | O: Holes", rl.Vector2{X: 10, Y: viewY}, fontSize14, 1, rl.LightGray)
	viewY += lineHeight
	rl.DrawTextEx(app.UI.font, "  Wheel: Zoom | Home: Fit", rl.Vector2{X: 10, Y: viewY}, fontSize14, 1, rl.LightGray)

	// Status line (bottom-center of the canvas)
	if app.UI.statusMessage != "" && time.Now().Before(app.UI.statusDeadline) {
		textSize := rl.MeasureTextEx(app.UI.font, app.UI.statusMessage, fontSize16, 1)
		boxPadding := float32(10)
		boxWidth := textSize.X + boxPadding*2
		boxHeight := textSize.Y + boxPadding*2
		boxX := panelWidth + (screenWidth-panelWidth-boxWidth)/2
		boxY := screenHeight - boxHeight - 20

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), app.UI.statusColor)
		rl.DrawTextEx(app.UI.font, app.UI.statusMessage, rl.Vector2{X: boxX + boxPadding, Y: boxY + boxPadding}, fontSize16, 1, app.UI.statusColor)
	}

	// Version and FPS in the bottom-left corner
	bottomY := screenHeight - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: 10, Y: bottomY}, fontSize12, 1, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1).X
	rl.DrawTextEx(app.UI.font, fpsText, rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, fontSize12, 1, rl.Lime)
}

// selectedInfo finds the analysis entry for the selected polygon
func (app *App) selectedInfo(stats *analysis.MeasurementResult) *analysis.PolygonInfo {
	for i := range stats.AllPolygons {
		if stats.AllPolygons[i].ID == app.session.SelectedPolygonID {
			return &stats.AllPolygons[i]
		}
	}
	return nil
}
