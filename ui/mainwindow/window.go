// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"vessel-studio/internal/app"
	"vessel-studio/internal/drawing"
	"vessel-studio/internal/version"
	"vessel-studio/ui/importview"
	"vessel-studio/ui/panels"
	"vessel-studio/ui/viewport"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const prefKeyLastDir = "lastDirectory"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app        fyne.App
	state      *app.State
	viewport   *viewport.VesselViewport
	sidePanel  *panels.SidePanel
	importView *importview.ImportView
	statusBar  *widget.Label

	tabs *container.AppTabs
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, pipeline *drawing.Pipeline) *MainWindow {
	win := fyneApp.NewWindow(version.Name)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
	}

	mw.setupUI(pipeline)
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main layout.
func (mw *MainWindow) setupUI(pipeline *drawing.Pipeline) {
	mw.viewport = viewport.New(mw.state)
	mw.viewport.SetOnStatus(mw.updateStatus)

	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.sidePanel.SetWindow(mw.Window)

	mw.importView = importview.New(mw.state, pipeline)
	mw.importView.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")

	modelSplit := container.NewHSplit(
		mw.sidePanel.Container(),
		mw.viewport,
	)
	modelSplit.SetOffset(0.25)

	mw.tabs = container.NewAppTabs(
		container.NewTabItem("Model", modelSplit),
		container.NewTabItem("Import Drawing", mw.importView.Container()),
	)
	// Leaving the import tab discards the in-progress import.
	mw.tabs.OnUnselected = func(item *container.TabItem) {
		if item.Text == "Import Drawing" {
			pipeline.Reset()
		}
	}

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		mw.tabs,
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", mw.onNewProject),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Isometric", func() { mw.viewport.SetView("iso") }),
		fyne.NewMenuItem("Front", func() { mw.viewport.SetView("front") }),
		fyne.NewMenuItem("Top", func() { mw.viewport.SetView("top") }),
		fyne.NewMenuItem("End", func() { mw.viewport.SetView("end") }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if path, ok := data.(string); ok && path != "" {
			mw.SetTitle(version.Name + " - " + filepath.Base(path))
			mw.updateStatus("Project loaded: " + path)
		} else {
			mw.SetTitle(version.Name)
			mw.updateStatus("New project")
		}
	})

	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle(version.Name + " - " + filepath.Base(path))
			mw.updateStatus("Saved: " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	if text == "" {
		text = "Ready"
	}
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

func (mw *MainWindow) onNewProject() {
	mw.state.NewProject()
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".vslproj"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.ProjectPath == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".vslproj" {
			path += ".vslproj"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("vessel.vslproj")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+version.Name,
		fmt.Sprintf("%s v%s\n\nParametric pressure vessel modeling with\ndrawing import and direct manipulation.",
			version.Name, version.Version),
		mw.Window)
}
