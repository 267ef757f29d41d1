package app

import (
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
	"github.com/michalprusek/segedit/pkg/watcher"
)

// CanvasState holds zoom and pan state for the image canvas
type CanvasState struct {
	zoom          float64
	offset        geometry.Point // Pan offset in image units
	defaultZoom   float64        // Fit-to-window zoom (for reset)
	defaultOffset geometry.Point // Fit-to-window offset (for reset)
}

// ImageData holds the loaded microscopy image
type ImageData struct {
	texture    rl.Texture2D
	hasTexture bool
	width      int
	height     int
}

// ViewSettings holds display settings
type ViewSettings struct {
	showImage    bool
	showVertices bool
	showInternal bool
}

// DocumentState holds the document path, save state and auto-reload
// machinery. reloaded is written by the watcher goroutine and consumed
// on the main thread.
type DocumentState struct {
	path    string
	dirty   bool
	watcher *watcher.DocumentWatcher

	mu       sync.Mutex
	reloaded *segmentation.Result
}

// UIState holds UI-related state
type UIState struct {
	font           rl.Font
	statusMessage  string
	statusColor    rl.Color
	statusDeadline time.Time
}
