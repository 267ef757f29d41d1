package app

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/michalprusek/segedit/pkg/segmentation"
	"github.com/michalprusek/segedit/pkg/watcher"
)

// loadImageTexture decodes the microscopy image referenced by the
// document and uploads it as a GPU texture. Must be called on the main
// thread. TIFF and BMP are common outputs of microscope software, so
// they are supported alongside PNG and JPEG.
func loadImageTexture(docPath, imageSrc string) (rl.Texture2D, error) {
	imagePath := imageSrc
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(docPath), imageSrc)
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return rl.Texture2D{}, fmt.Errorf("failed to open image %s: %w", imagePath, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return rl.Texture2D{}, fmt.Errorf("failed to decode image %s: %w", imagePath, err)
	}

	fmt.Printf("Loaded %s image: %s\n", format, imagePath)

	rlImage := rl.NewImageFromImage(img)
	texture := rl.LoadTextureFromImage(rlImage)
	rl.UnloadImage(rlImage)

	return texture, nil
}

// setupDocumentWatcher sets up auto-reload for the segmentation
// document, so rerunning the inference pipeline refreshes the editor
func (app *App) setupDocumentWatcher() error {
	dw, err := watcher.NewDocumentWatcher(
		app.Document.path,
		500*time.Millisecond,
		app.onDocumentReloaded,
		func(err error) {
			fmt.Printf("Watcher error: %v\n", err)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create document watcher: %w", err)
	}

	dw.Start()
	app.Document.watcher = dw
	fmt.Printf("Watching document for changes: %s\n", dw.Path())

	return nil
}

// onDocumentReloaded runs on the watcher goroutine; the result is
// stashed and applied on the main thread
func (app *App) onDocumentReloaded(result *segmentation.Result) {
	app.Document.mu.Lock()
	app.Document.reloaded = result
	app.Document.mu.Unlock()
}

// applyReloadedDocument swaps in a document reloaded from disk. Unsaved
// edits lose to the pipeline's version; the status line says so. While
// an interaction is in flight the reload stays stashed until it ends.
func (app *App) applyReloadedDocument() {
	if app.session.Editing() {
		return
	}

	app.Document.mu.Lock()
	result := app.Document.reloaded
	app.Document.reloaded = nil
	app.Document.mu.Unlock()

	if result == nil {
		return
	}

	app.machine.Engine().Replace(result)
	app.session = app.session.Reset()
	app.session.SelectedPolygonID = ""

	if app.Document.dirty {
		app.Document.dirty = false
		app.setStatus("Document reloaded from disk, unsaved edits discarded", rl.Orange)
	} else {
		app.setStatus("Document reloaded from disk", rl.Green)
	}
	fmt.Printf("Document reloaded: %d polygon(s)\n", len(result.Polygons))
}
