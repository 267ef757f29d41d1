package app

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/michalprusek/segedit/pkg/editor"
	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

type App struct {
	Canvas   CanvasState
	Image    ImageData
	View     ViewSettings
	Document DocumentState
	UI       UIState

	machine *editor.Machine
	session editor.Session
}

// Run starts the interactive editor on the given segmentation document
func Run(docPath string) error {
	result, err := segmentation.Load(docPath)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	app := &App{
		View: ViewSettings{
			showImage:    true,
			showVertices: true,
			showInternal: true,
		},
		Document: DocumentState{path: docPath},
		machine:  editor.NewMachine(editor.NewEngine(result)),
		session:  editor.NewSession(),
	}

	// Initialize window
	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, "SegEdit")
	rl.SetTargetFPS(60)

	app.UI.font = rl.GetFontDefault()

	// Load the referenced microscopy image; editing works without it
	if result.ImageSrc != "" {
		texture, err := loadImageTexture(docPath, result.ImageSrc)
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
			fmt.Println("Editing without a background image")
		} else {
			app.Image.texture = texture
			app.Image.hasTexture = true
		}
	}
	app.Image.width = result.ImageWidth
	app.Image.height = result.ImageHeight
	if app.Image.hasTexture {
		app.Image.width = int(app.Image.texture.Width)
		app.Image.height = int(app.Image.texture.Height)
	}

	// Set up document watching
	if err := app.setupDocumentWatcher(); err != nil {
		fmt.Printf("Warning: Failed to set up document watching: %v\n", err)
		fmt.Println("Auto-reload will not be available")
	} else {
		defer app.Document.watcher.Close()
	}

	app.fitView()
	app.setStatus(fmt.Sprintf("Loaded %d polygon(s)", len(result.Polygons)), rl.Green)

	// Main loop
	for {
		// Check for window close (but ESC is handled separately for clearing state)
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}

		// Check for Ctrl+Q to exit
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		// Apply a pipeline-written document if ready (must be on main thread)
		app.applyReloadedDocument()

		app.handleInput()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		app.drawCanvas()
		app.drawUI()

		rl.EndDrawing()
	}

	// Cleanup
	if app.Image.hasTexture {
		rl.UnloadTexture(app.Image.texture)
	}
	rl.CloseWindow()

	return nil
}

// fitView centers the image in the window at the largest zoom that
// shows all of it
func (app *App) fitView() {
	imgW := float64(app.Image.width)
	imgH := float64(app.Image.height)
	if imgW <= 0 || imgH <= 0 {
		// No image dimensions to fit; fall back to 1:1
		app.Canvas.zoom = 1
		app.Canvas.offset = geometry.NewPoint(0, 0)
	} else {
		screenW := float64(rl.GetScreenWidth()) - panelWidth
		screenH := float64(rl.GetScreenHeight())

		zoom := math.Min(screenW/imgW, screenH/imgH) * 0.95
		app.Canvas.zoom = zoom
		app.Canvas.offset = geometry.NewPoint(
			(panelWidth+(screenW-imgW*zoom)/2)/zoom,
			(screenH-imgH*zoom)/2/zoom,
		)
	}

	app.Canvas.defaultZoom = app.Canvas.zoom
	app.Canvas.defaultOffset = app.Canvas.offset
	app.syncTransform()
}

// syncTransform pushes the canvas zoom and pan into the state machine
func (app *App) syncTransform() {
	app.machine.SetTransform(editor.Transform{
		Zoom:   app.Canvas.zoom,
		Offset: app.Canvas.offset,
	})
}

// saveDocument writes the current polygons back to the document path
func (app *App) saveDocument() {
	if err := segmentation.Save(app.Document.path, app.machine.Engine().Result()); err != nil {
		app.setStatus(fmt.Sprintf("Save failed: %v", err), rl.Red)
		return
	}
	app.Document.dirty = false
	app.setStatus("Saved", rl.Green)
	fmt.Printf("Saved %s\n", app.Document.path)
}

// setStatus shows a transient message in the status line
func (app *App) setStatus(message string, color rl.Color) {
	app.UI.statusMessage = message
	app.UI.statusColor = color
	app.UI.statusDeadline = time.Now().Add(4 * time.Second)
}
