package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/michalprusek/segedit/pkg/analysis"
	"github.com/michalprusek/segedit/pkg/editor"
	"github.com/michalprusek/segedit/pkg/segmentation"
	"github.com/michalprusek/segedit/pkg/viewer"
)

type App struct {
	window   fyne.Window
	docPath  string
	canvas   *viewer.SegmentationCanvas
	editInfo *EditInfo
}

type EditInfo struct {
	docLabel    *widget.Label
	statsLabel  *widget.Label
	statusLabel *widget.Label
}

func main() {
	a := fyneapp.New()
	w := a.NewWindow("SegEdit - Cell Segmentation Editor")

	appInstance := &App{
		window: w,
	}

	// Check if file was provided as argument
	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to SegEdit")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open Segmentation' to load a document")

	openButton := widget.NewButton("Open Segmentation", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	result, err := segmentation.Load(filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load document: %w", err), a.window)
		return
	}

	a.docPath = filename
	a.setupMainUI(result)
}

// loadBackgroundImage decodes the document's image, or returns nil when
// it cannot be read
func loadBackgroundImage(docPath string, result *segmentation.Result) image.Image {
	if result.ImageSrc == "" {
		return nil
	}

	imagePath := result.ImageSrc
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(docPath), imagePath)
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil
	}
	return img
}

func (a *App) setupMainUI(result *segmentation.Result) {
	a.editInfo = &EditInfo{
		docLabel:    widget.NewLabel(""),
		statsLabel:  widget.NewLabel(""),
		statusLabel: widget.NewLabel(""),
	}
	a.editInfo.statusLabel.Wrapping = fyne.TextWrapWord

	engine := editor.NewEngine(result)
	a.canvas = viewer.NewSegmentationCanvas(engine, loadBackgroundImage(a.docPath, result))
	a.canvas.SetOnChange(func() {
		a.updateStats()
	})
	a.canvas.SetOnOutcome(func(outcome editor.Outcome) {
		a.editInfo.statusLabel.SetText(outcome.Message)
	})

	// Mode selection
	modeSelect := widget.NewRadioGroup(
		[]string{"Edit", "Draw polygon", "Add points", "Slice"},
		func(selected string) {
			switch selected {
			case "Draw polygon":
				a.canvas.EnterMode(editor.ModeVertexEdit)
			case "Add points":
				a.canvas.EnterMode(editor.ModePointAdding)
			case "Slice":
				a.canvas.EnterMode(editor.ModeSlicing)
			default:
				a.canvas.EnterMode(editor.ModeIdle)
			}
		},
	)
	modeSelect.SetSelected("Edit")

	keepBothCheck := widget.NewCheck("Slice keeps both regions", func(checked bool) {
		a.canvas.SetKeepBoth(checked)
	})

	// Control buttons
	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	saveButton := widget.NewButton("Save", func() {
		if err := segmentation.Save(a.docPath, a.canvas.Machine().Engine().Result()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.editInfo.statusLabel.SetText("Saved")
	})

	simplifyButton := widget.NewButton("Simplify Selected", func() {
		a.canvas.SimplifySelected(editor.DefaultSimplifyTolerance)
	})

	deleteButton := widget.NewButton("Delete Selected", func() {
		a.canvas.DeleteSelected()
	})

	clearButton := widget.NewButton("Cancel Edit", func() {
		a.canvas.ClearSession()
	})

	// Instructions
	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag vertices to move them\n" +
			"• Click near an edge of the selected polygon to insert a vertex\n" +
			"• Draw polygon: click points, click the first point to close\n" +
			"• Add points: click a vertex, place points, click another vertex\n" +
			"• Slice: click the cut start and end\n" +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Document:"),
		widget.NewSeparator(),
		a.editInfo.docLabel,
		a.editInfo.statsLabel,
		widget.NewSeparator(),
		widget.NewLabel("Mode:"),
		modeSelect,
		keepBothCheck,
		widget.NewSeparator(),
		simplifyButton,
		deleteButton,
		clearButton,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		a.editInfo.statusLabel,
		widget.NewSeparator(),
		openButton,
		saveButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.canvas,   // center
	)

	a.window.SetContent(content)
	a.updateStats()
}

func (a *App) updateStats() {
	result := a.canvas.Machine().Engine().Result()
	stats := analysis.AnalyzeResult(result)

	a.editInfo.docLabel.SetText(filepath.Base(a.docPath))
	a.editInfo.statsLabel.SetText(fmt.Sprintf(
		"Image: %d x %d px\nPolygons: %d (%d holes)\nTotal area: %s",
		stats.ImageWidth,
		stats.ImageHeight,
		stats.PolygonCount,
		stats.InternalCount,
		analysis.FormatMeasurement(stats.TotalArea, "px²"),
	))
}
