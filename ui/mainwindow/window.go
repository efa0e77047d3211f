// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"snyfter/internal/app"
	"snyfter/internal/extract"
	"snyfter/internal/render"
	"snyfter/internal/version"
	"snyfter/ui/canvas"
	"snyfter/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const pollInterval = 250 * time.Millisecond

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	canvas *canvas.DocumentCanvas

	provider  render.Provider
	pageImage *fynecanvas.Image

	searchEntry *widget.Entry
	matchLabel  *widget.Label
	pageLabel   *widget.Label
	zoomLabel   *widget.Label
	editCheck   *widget.Check
	statusBar   *widget.Label

	watcher *app.DocumentWatcher
	stopCh  chan struct{}
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Snyfter")

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		prefs:    p,
		provider: render.BlankProvider{},
		stopCh:   make(chan struct{}),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()
	mw.startPolling()

	win.SetOnClosed(mw.onClosed)
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	fonts := canvas.NewFontCache()
	mw.canvas = canvas.NewDocumentCanvas(fonts, mw.Clipboard())

	mw.wireCanvas()

	mw.statusBar = widget.NewLabel("Ready")
	mw.pageLabel = widget.NewLabel("Page -/-")
	mw.zoomLabel = widget.NewLabel("100%")
	mw.matchLabel = widget.NewLabel("")

	// Rasterized page beside the overlay. The BlankProvider keeps the pane
	// white until a real rasterizer is configured.
	mw.pageImage = fynecanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	mw.pageImage.FillMode = fynecanvas.ImageFillContain
	mw.updatePageImage()

	toolbar := mw.createToolbar()
	searchBar := mw.createSearchBar()

	split := container.NewHSplit(mw.pageImage, mw.canvas)
	split.SetOffset(0.3)

	content := container.NewBorder(
		container.NewVBox(toolbar, searchBar), // top
		container.NewPadded(mw.statusBar),     // bottom
		nil,                                   // left
		nil,                                   // right
		split,                                 // center
	)
	mw.SetContent(content)

	w := mw.prefs.FloatWithFallback(prefs.KeyWindowWidth, 1200)
	h := mw.prefs.FloatWithFallback(prefs.KeyWindowHeight, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
}

// createToolbar creates the toolbar with document and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	openBtn := widget.NewButton("Open PDF...", mw.onOpenPDF)
	openJSONBtn := widget.NewButton("Open JSON...", mw.onOpenJSON)

	prevBtn := widget.NewButton("<", func() { mw.state.PrevPage() })
	nextBtn := widget.NewButton(">", func() { mw.state.NextPage() })

	zoomOutBtn := widget.NewButton("-", func() { mw.canvas.ZoomOut() })
	zoomInBtn := widget.NewButton("+", func() { mw.canvas.ZoomIn() })
	resetBtn := widget.NewButton("Reset", func() { mw.canvas.ResetView() })

	mw.editCheck = widget.NewCheck("Edit", func(on bool) {
		mw.state.SetEditMode(on)
		mw.prefs.SetBool(prefs.KeyEditMode, on)
		mw.refreshCanvas()
	})
	mw.editCheck.SetChecked(mw.prefs.Bool(prefs.KeyEditMode, false))

	helpBtn := widget.NewButton("?", mw.onHelp)

	return container.NewHBox(
		openBtn,
		openJSONBtn,
		widget.NewSeparator(),
		prevBtn,
		mw.pageLabel,
		nextBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		mw.zoomLabel,
		zoomInBtn,
		resetBtn,
		widget.NewSeparator(),
		mw.editCheck,
		helpBtn,
	)
}

// createSearchBar creates the search entry with clear button and match
// count.
func (mw *MainWindow) createSearchBar() fyne.CanvasObject {
	mw.searchEntry = widget.NewEntry()
	mw.searchEntry.SetPlaceHolder("Search document text...")
	mw.searchEntry.OnChanged = func(q string) {
		mw.state.SetSearchQuery(q)
	}

	clearBtn := widget.NewButton("x", func() {
		mw.searchEntry.SetText("")
	})

	return container.NewBorder(nil, nil,
		widget.NewLabel("Find:"),
		container.NewHBox(mw.matchLabel, clearBtn),
		mw.searchEntry,
	)
}

// wireCanvas connects canvas callbacks to application state.
func (mw *MainWindow) wireCanvas() {
	mw.canvas.OnViewChanged = mw.state.SetView
	mw.canvas.OnItemMoved = mw.state.NudgeItem
	mw.canvas.OnCopied = func(text string) {
		mw.state.Emit(app.EventTextCopied, text)
		mw.updateStatus("Copied to clipboard")
	}
	mw.canvas.OnItemContext = func(id, text string) {
		entry := widget.NewEntry()
		entry.SetText(text)
		items := []*widget.FormItem{widget.NewFormItem("Text", entry)}
		dialog.ShowForm("Edit Item Text", "Save", "Cancel", items, func(ok bool) {
			if !ok {
				return
			}
			mw.state.SetItemText(id, entry.Text)
			mw.refreshCanvas()
		}, mw.Window)
	}
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open PDF...", mw.onOpenPDF),
		fyne.NewMenuItem("Open Extraction JSON...", mw.onOpenJSON),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Find", mw.focusSearch),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Item Edits", func() {
			mw.state.ClearEdits()
			mw.refreshCanvas()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.canvas.ZoomIn() }),
		fyne.NewMenuItem("Zoom Out", func() { mw.canvas.ZoomOut() }),
		fyne.NewMenuItem("Reset View", func() { mw.canvas.ResetView() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Next Page", func() { mw.state.NextPage() }),
		fyne.NewMenuItem("Previous Page", func() { mw.state.PrevPage() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Shortcuts", mw.onHelp),
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupShortcuts registers keyboard shortcuts and tracks the zoom chord
// key for the canvas.
func (mw *MainWindow) setupShortcuts() {
	mw.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyF,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) {
		mw.focusSearch()
	})

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			mw.searchEntry.SetText("")
			mw.Canvas().Unfocus()
		}
	})

	if deskCanvas, ok := mw.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if isZoomChord(ev.Name) {
				mw.canvas.SetZoomModifier(true)
			}
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if isZoomChord(ev.Name) {
				mw.canvas.SetZoomModifier(false)
			}
		})
	}
}

func isZoomChord(name fyne.KeyName) bool {
	switch name {
	case desktop.KeyControlLeft, desktop.KeyControlRight,
		desktop.KeySuperLeft, desktop.KeySuperRight:
		return true
	}
	return false
}

func (mw *MainWindow) focusSearch() {
	mw.Canvas().Focus(mw.searchEntry)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventExtractionStarted, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Extracting " + filepath.Base(path) + "...")
		}
	})

	mw.state.On(app.EventExtractionComplete, func(data interface{}) {
		if d, ok := data.(*extract.Document); ok {
			mw.SetTitle("Snyfter - " + filepath.Base(mw.state.SourcePath))
			mw.updateStatus(fmt.Sprintf("Loaded %d items on %d pages",
				d.ItemCount(), d.PageCount()))
		}
		mw.refreshCanvas()
	})

	mw.state.On(app.EventExtractionFailed, func(data interface{}) {
		msg := "extraction failed"
		if res, ok := data.(*extract.Result); ok && res.Message != "" {
			msg = res.Message
		}
		mw.updateStatus("Extraction failed: " + msg)
	})

	mw.state.On(app.EventPageChanged, func(data interface{}) {
		mw.updatePageLabel()
		mw.updatePageImage()
		mw.refreshCanvas()
	})

	mw.state.On(app.EventViewChanged, func(data interface{}) {
		if zoom, ok := data.(float64); ok {
			mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
		}
	})

	mw.state.On(app.EventSearchChanged, func(data interface{}) {
		mw.updateMatchLabel()
		mw.refreshCanvas()
	})

	mw.state.On(app.EventItemEdited, func(data interface{}) {
		mw.refreshCanvas()
	})
}

// startPolling drains the extraction mailbox on a timer. All document
// swaps happen through PollExtraction so results land between frames.
func (mw *MainWindow) startPolling() {
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-mw.stopCh:
				return
			case <-ticker.C:
				mw.state.PollExtraction()
			}
		}
	}()
}

// refreshCanvas pushes a fresh state snapshot to the canvas.
func (mw *MainWindow) refreshCanvas() {
	mw.canvas.SetState(mw.state.Frame())
}

func (mw *MainWindow) updatePageLabel() {
	count := mw.state.PageCount()
	if count == 0 {
		mw.pageLabel.SetText("Page -/-")
		return
	}
	mw.pageLabel.SetText(fmt.Sprintf("Page %d/%d", mw.state.CurrentPage, count))
}

// updatePageImage re-rasterizes the background page pane for the current
// page.
func (mw *MainWindow) updatePageImage() {
	img, err := mw.provider.RenderPage(context.Background(), mw.state.CurrentPage,
		image.Point{X: 612, Y: 792})
	if err != nil {
		mw.updateStatus("Page render failed: " + err.Error())
		return
	}
	mw.pageImage.Image = img
	mw.pageImage.Refresh()
}

func (mw *MainWindow) updateMatchLabel() {
	if mw.state.SearchQuery() == "" {
		mw.matchLabel.SetText("")
		return
	}
	mw.matchLabel.SetText(fmt.Sprintf("%d matches", mw.state.MatchCount()))
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastOpenDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastOpenDir, filepath.Dir(filePath))
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Could not save preferences: " + err.Error())
	}
}

// onOpenPDF launches extraction of a PDF through the external extractor.
func (mw *MainWindow) onOpenPDF() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		mw.stopWatcher()
		if err := mw.state.Extract(context.Background(), path); err != nil {
			if err == extract.ErrBusy {
				mw.updateStatus("Extraction already running")
				return
			}
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// onOpenJSON loads an already-extracted JSON document and watches it for
// rewrites.
func (mw *MainWindow) onOpenJSON() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.watchDocument(path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// watchDocument reloads the open JSON document when it changes on disk.
func (mw *MainWindow) watchDocument(path string) {
	mw.stopWatcher()
	mw.watcher = app.NewDocumentWatcher(path, 2*time.Second)
	if mw.watcher == nil {
		return
	}
	mw.watcher.OnChanged(func(p string) {
		if err := mw.state.LoadDocument(p); err != nil {
			mw.updateStatus("Reload failed: " + err.Error())
			return
		}
		mw.updateStatus("Document reloaded: " + filepath.Base(p))
	})
	mw.watcher.Start()
}

func (mw *MainWindow) stopWatcher() {
	if mw.watcher != nil {
		mw.watcher.Stop()
		mw.watcher = nil
	}
}

// onHelp opens a window listing the canvas interactions.
func (mw *MainWindow) onHelp() {
	help := widget.NewLabel(
		"Click an item to copy its text\n" +
			"Right-click an item to edit its text\n" +
			"Drag to pan the page\n" +
			"Ctrl/Cmd + scroll to zoom\n" +
			"Edit mode: drag items to nudge their position\n" +
			"Ctrl/Cmd+F to search, Escape to clear")
	win := mw.app.NewWindow("Snyfter Help")
	win.SetContent(container.NewPadded(help))
	win.Resize(fyne.NewSize(380, 220))
	win.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Snyfter",
		fmt.Sprintf("Snyfter v%s\n\n"+
			"A document overlay viewer for PDF extraction output.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// onClosed persists window geometry and stops background work.
func (mw *MainWindow) onClosed() {
	close(mw.stopCh)
	mw.stopWatcher()

	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		fmt.Println("save preferences:", err)
	}
}
