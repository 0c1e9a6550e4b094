// Package importview provides the drawing import workflow UI: upload a
// drawing, select the side/end/table regions on a pan-zoom canvas, run
// extraction, and review the result before applying it to the vessel.
package importview

import (
	"fmt"
	"io"

	"vessel-studio/internal/app"
	"vessel-studio/internal/drawing"
	"vessel-studio/internal/extract"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// ImportView is the drawing import workflow panel.
type ImportView struct {
	state    *app.State
	pipeline *drawing.Pipeline
	win      fyne.Window

	canvas      *drawingCanvas
	phaseLabel  *widget.Label
	errorLabel  *widget.Label
	regionLabel *widget.Label
	resultLabel *widget.Label

	uploadBtn  *widget.Button
	sideBtn    *widget.Button
	endBtn     *widget.Button
	tableBtn   *widget.Button
	extractBtn *widget.Button
	applyBtn   *widget.Button
	backBtn    *widget.Button
	resetBtn   *widget.Button

	content fyne.CanvasObject
}

// New creates the import view around a pipeline.
func New(state *app.State, pipeline *drawing.Pipeline) *ImportView {
	iv := &ImportView{
		state:    state,
		pipeline: pipeline,
	}

	iv.canvas = newDrawingCanvas(pipeline)
	iv.canvas.onRegionSet = func(kind extract.RegionKind, ok bool) {
		if !ok {
			iv.regionLabel.SetText(fmt.Sprintf("Region %s too small, try again", kind))
			return
		}
		iv.updateRegionLabel()
	}

	iv.phaseLabel = widget.NewLabel("")
	iv.errorLabel = widget.NewLabel("")
	iv.errorLabel.Wrapping = fyne.TextWrapWord
	iv.regionLabel = widget.NewLabel("No regions selected")
	iv.resultLabel = widget.NewLabel("")
	iv.resultLabel.Wrapping = fyne.TextWrapWord

	iv.uploadBtn = widget.NewButton("Upload Drawing...", iv.onUpload)
	iv.sideBtn = widget.NewButton("Select Side View", func() { iv.armRegion(extract.RegionSide) })
	iv.endBtn = widget.NewButton("Select End View", func() { iv.armRegion(extract.RegionEnd) })
	iv.tableBtn = widget.NewButton("Select Nozzle Table", func() { iv.armRegion(extract.RegionTable) })
	iv.extractBtn = widget.NewButton("Extract", iv.onExtract)
	iv.applyBtn = widget.NewButton("Apply to Vessel", iv.onApply)
	iv.backBtn = widget.NewButton("Back", func() { iv.pipeline.Back() })
	iv.resetBtn = widget.NewButton("Start Over", func() { iv.pipeline.Reset() })

	controls := container.NewVBox(
		iv.phaseLabel,
		iv.uploadBtn,
		widget.NewSeparator(),
		iv.sideBtn,
		iv.endBtn,
		iv.tableBtn,
		iv.regionLabel,
		iv.extractBtn,
		widget.NewSeparator(),
		iv.resultLabel,
		iv.applyBtn,
		iv.backBtn,
		widget.NewSeparator(),
		iv.errorLabel,
		iv.resetBtn,
	)

	iv.content = container.NewHSplit(controls, iv.canvas)

	pipeline.SetOnChange(iv.refresh)
	iv.refresh()
	return iv
}

// SetWindow sets the parent window for dialogs.
func (iv *ImportView) SetWindow(win fyne.Window) {
	iv.win = win
}

// Container returns the view's root object.
func (iv *ImportView) Container() fyne.CanvasObject {
	return iv.content
}

func (iv *ImportView) armRegion(kind extract.RegionKind) {
	iv.canvas.ArmRegion(kind)
	iv.regionLabel.SetText(fmt.Sprintf("Drag to mark the %s region", kind))
}

func (iv *ImportView) onUpload() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(err, iv.win)
			return
		}
		// Upload reports failures through the pipeline's inline error.
		_ = iv.pipeline.Upload(data, reader.URI().Name())
	}, iv.win)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".pdf", ".png", ".jpg", ".jpeg", ".tiff", ".tif"}))
	fd.Show()
}

func (iv *ImportView) onExtract() {
	// Validation failures surface through the pipeline's inline error.
	_ = iv.pipeline.BeginExtract()
}

func (iv *ImportView) onApply() {
	result, ok := iv.pipeline.Apply()
	if !ok {
		return
	}
	iv.state.ApplyExtraction(result)
	iv.pipeline.Reset()
}

// refresh syncs every control to the pipeline phase.
func (iv *ImportView) refresh() {
	phase := iv.pipeline.Phase()
	iv.phaseLabel.SetText("Step: " + phase.String())
	iv.errorLabel.SetText(iv.pipeline.Error())

	inSelect := phase == drawing.PhaseSelect
	setEnabled(iv.uploadBtn, phase == drawing.PhaseUpload)
	setEnabled(iv.sideBtn, inSelect)
	setEnabled(iv.endBtn, inSelect)
	setEnabled(iv.tableBtn, inSelect)
	setEnabled(iv.extractBtn, inSelect && iv.pipeline.Regions().HasSide())
	setEnabled(iv.applyBtn, phase == drawing.PhaseResult)
	setEnabled(iv.backBtn, phase == drawing.PhaseResult)
	setEnabled(iv.resetBtn, phase != drawing.PhaseUpload)

	iv.updateRegionLabel()
	iv.updateResultLabel()
	iv.canvas.Refresh()
}

func (iv *ImportView) updateRegionLabel() {
	regions := iv.pipeline.Regions()
	if regions.Count() == 0 {
		iv.regionLabel.SetText("No regions selected")
		return
	}
	text := fmt.Sprintf("%d region(s) selected", regions.Count())
	if !regions.HasSide() {
		text += ", side view still required"
	}
	iv.regionLabel.SetText(text)
}

func (iv *ImportView) updateResultLabel() {
	result := iv.pipeline.Result()
	if result == nil {
		iv.resultLabel.SetText("")
		return
	}
	iv.resultLabel.SetText(fmt.Sprintf(
		"Extracted: length %.0f mm, head ratio %.1f, %s, %d nozzle(s), %d saddle(s)",
		result.Length, result.HeadRatio, result.Orientation,
		len(result.Nozzles), len(result.Saddles)))
}

func setEnabled(btn *widget.Button, enabled bool) {
	if enabled {
		btn.Enable()
	} else {
		btn.Disable()
	}
}
