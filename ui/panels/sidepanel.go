// Package panels provides the parameter side panel: vessel dimensions,
// component lists, texture transforms, drag locks, and appearance presets.
package panels

import (
	"fmt"
	"image"
	"strconv"

	"vessel-studio/internal/app"
	"vessel-studio/internal/interaction"
	"vessel-studio/internal/scene"
	"vessel-studio/internal/sizes"
	"vessel-studio/internal/vessel"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	_ "image/jpeg"
	_ "image/png"
)

// SidePanel is the tabbed parameter panel.
type SidePanel struct {
	state *app.State
	win   fyne.Window

	tabs           *container.AppTabs
	selectionLabel *widget.Label

	content fyne.CanvasObject
}

// NewSidePanel creates the side panel bound to the application state.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{state: state}

	sp.selectionLabel = widget.NewLabel("Nothing selected")

	sp.tabs = container.NewAppTabs(
		container.NewTabItem("Vessel", sp.buildVesselTab()),
		container.NewTabItem("Nozzles", sp.buildNozzleTab()),
		container.NewTabItem("Supports", sp.buildSupportTab()),
		container.NewTabItem("Textures", sp.buildTextureTab()),
		container.NewTabItem("View", sp.buildViewTab()),
	)

	sp.content = container.NewBorder(nil, sp.selectionLabel, nil, nil, sp.tabs)

	state.On(app.EventSelectionChanged, func(data interface{}) {
		if sel, ok := data.(app.Selection); ok {
			sp.selectionLabel.SetText(fmt.Sprintf("Selected: %s %d", sel.Kind, sel.Index+1))
		} else {
			sp.selectionLabel.SetText("Nothing selected")
		}
	})

	return sp
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(win fyne.Window) {
	sp.win = win
}

// Container returns the panel's root object.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.content
}

func (sp *SidePanel) buildVesselTab() fyne.CanvasObject {
	vs := sp.state.Vessel

	diameter := widget.NewEntry()
	diameter.SetText(formatMM(vs.Diameter))
	length := widget.NewEntry()
	length.SetText(formatMM(vs.Length))

	ratioOptions := make([]string, len(vessel.HeadRatios))
	for i, r := range vessel.HeadRatios {
		ratioOptions[i] = fmt.Sprintf("%.1f : 1", r)
	}
	ratio := widget.NewSelect(ratioOptions, nil)
	ratio.SetSelectedIndex(indexOfRatio(vs.HeadRatio))

	orientation := widget.NewRadioGroup([]string{"Horizontal", "Vertical"}, nil)
	if vs.Orientation == vessel.Vertical {
		orientation.SetSelected("Vertical")
	} else {
		orientation.SetSelected("Horizontal")
	}

	apply := widget.NewButton("Apply", func() {
		d := parseMM(diameter.Text)
		l := parseMM(length.Text)
		r := vessel.DefaultHeadRatio
		if i := ratio.SelectedIndex(); i >= 0 && i < len(vessel.HeadRatios) {
			r = vessel.HeadRatios[i]
		}
		o := vessel.Horizontal
		if orientation.Selected == "Vertical" {
			o = vessel.Vertical
		}
		sp.state.SetShell(d, l, r, o)
	})

	form := widget.NewForm(
		widget.NewFormItem("Diameter (mm)", diameter),
		widget.NewFormItem("Tan-tan length (mm)", length),
		widget.NewFormItem("Head ratio", ratio),
		widget.NewFormItem("Orientation", orientation),
	)

	sp.state.On(app.EventProjectLoaded, func(interface{}) {
		cur := sp.state.Vessel
		diameter.SetText(formatMM(cur.Diameter))
		length.SetText(formatMM(cur.Length))
		ratio.SetSelectedIndex(indexOfRatio(cur.HeadRatio))
		if cur.Orientation == vessel.Vertical {
			orientation.SetSelected("Vertical")
		} else {
			orientation.SetSelected("Horizontal")
		}
	})

	return container.NewVBox(form, apply)
}

func (sp *SidePanel) buildNozzleTab() fyne.CanvasObject {
	list := widget.NewList(
		func() int { return len(sp.state.Vessel.Nozzles) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			n := sp.state.Vessel.Nozzles[i]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  %s @ %.0f mm / %.0f°",
				n.Name, sizes.NearestPipe(n.Bore).NPS, n.Position, n.Angle))
		},
	)
	list.OnSelected = func(i widget.ListItemID) {
		sp.state.Select(scene.KindNozzle, i)
	}

	name := widget.NewEntry()
	name.SetPlaceHolder("N1")

	pipes := sizes.ListPipes()
	npsOptions := make([]string, len(pipes))
	for i, p := range pipes {
		npsOptions[i] = p.NPS
	}
	nps := widget.NewSelect(npsOptions, nil)
	nps.SetSelected("4\"")

	addBtn := widget.NewButton("Add Nozzle", func() {
		pipe, ok := sizes.GetPipe(nps.Selected)
		if !ok {
			return
		}
		n := name.Text
		if n == "" {
			n = fmt.Sprintf("N%d", len(sp.state.Vessel.Nozzles)+1)
		}
		sp.state.AddNozzleFromPipe(n, pipe.ID)
		list.Refresh()
	})

	removeBtn := widget.NewButton("Remove Selected", func() {
		if sel, ok := sp.state.Selected(); ok && sel.Kind == scene.KindNozzle {
			sp.state.RemoveNozzle(sel.Index)
			list.Refresh()
		}
	})

	sp.state.On(app.EventVesselChanged, func(interface{}) { list.Refresh() })
	sp.state.On(app.EventProjectLoaded, func(interface{}) { list.Refresh() })

	controls := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Name", name),
			widget.NewFormItem("Size", nps),
		),
		addBtn, removeBtn,
	)
	return container.NewBorder(nil, controls, nil, nil, list)
}

func (sp *SidePanel) buildSupportTab() fyne.CanvasObject {
	saddleList := widget.NewList(
		func() int { return len(sp.state.Vessel.Saddles) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(fmt.Sprintf("Saddle @ %.0f mm", sp.state.Vessel.Saddles[i].Position))
		},
	)
	saddleList.OnSelected = func(i widget.ListItemID) {
		sp.state.Select(scene.KindSaddle, i)
	}

	addSaddle := widget.NewButton("Add Saddle", func() {
		vs := sp.state.Vessel
		pos := vs.Length * 0.2
		if len(vs.Saddles)%2 == 1 {
			pos = vs.Length * 0.8
		}
		sp.state.AddSaddle(pos)
	})

	lugList := widget.NewList(
		func() int { return len(sp.state.Vessel.Lugs) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			l := sp.state.Vessel.Lugs[i]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s (%s %s) @ %.0f mm", l.Name, l.Style, l.SWL, l.Position))
		},
	)
	lugList.OnSelected = func(i widget.ListItemID) {
		sp.state.Select(scene.KindLug, i)
	}

	style := widget.NewSelect([]string{string(vessel.LugPadEye), string(vessel.LugTrunnion)}, nil)
	style.SetSelected(string(vessel.LugPadEye))
	swl := widget.NewSelect(sizes.ListLugClasses(), nil)
	swl.SetSelected("5T")

	addLug := widget.NewButton("Add Lug", func() {
		name := fmt.Sprintf("L%d", len(sp.state.Vessel.Lugs)+1)
		sp.state.AddLug(name, vessel.LugStyle(style.Selected), swl.Selected)
	})

	removeBtn := widget.NewButton("Remove Selected", func() {
		sel, ok := sp.state.Selected()
		if !ok {
			return
		}
		switch sel.Kind {
		case scene.KindSaddle:
			sp.state.RemoveSaddle(sel.Index)
		case scene.KindLug:
			sp.state.RemoveLug(sel.Index)
		}
	})

	refresh := func(interface{}) {
		saddleList.Refresh()
		lugList.Refresh()
	}
	sp.state.On(app.EventVesselChanged, refresh)
	sp.state.On(app.EventProjectLoaded, refresh)

	return container.NewVBox(
		widget.NewLabel("Saddles"),
		saddleList,
		addSaddle,
		widget.NewSeparator(),
		widget.NewLabel("Lifting Lugs"),
		lugList,
		widget.NewForm(
			widget.NewFormItem("Style", style),
			widget.NewFormItem("Class", swl),
		),
		addLug,
		widget.NewSeparator(),
		removeBtn,
	)
}

func (sp *SidePanel) buildTextureTab() fyne.CanvasObject {
	list := widget.NewList(
		func() int { return len(sp.state.Vessel.Textures) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			t := sp.state.Vessel.Textures[i]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s @ %.0f mm / %.0f°", t.Name, t.Position, t.Angle))
		},
	)
	list.OnSelected = func(i widget.ListItemID) {
		sp.state.Select(scene.KindTexture, i)
	}

	importBtn := widget.NewButton("Import Image...", func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			img, _, err := image.Decode(reader)
			if err != nil {
				dialog.ShowError(err, sp.win)
				return
			}
			sp.state.AddTexture(reader.URI().Name(), img)
		}, sp.win)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
		fd.Show()
	})

	rotateBtn := widget.NewButton("Rotate 90°", func() {
		sp.withSelectedTexture(func(i int, cfg vessel.TextureConfig) {
			cfg.Rotation = (cfg.Rotation + 1) % 4
			sp.state.UpdateTexture(i, cfg)
		})
	})
	flipHBtn := widget.NewButton("Flip Horizontal", func() {
		sp.withSelectedTexture(func(i int, cfg vessel.TextureConfig) {
			cfg.FlipH = !cfg.FlipH
			sp.state.UpdateTexture(i, cfg)
		})
	})
	flipVBtn := widget.NewButton("Flip Vertical", func() {
		sp.withSelectedTexture(func(i int, cfg vessel.TextureConfig) {
			cfg.FlipV = !cfg.FlipV
			sp.state.UpdateTexture(i, cfg)
		})
	})

	scaleX := widget.NewSlider(0.2, 5)
	scaleX.Value = 1
	scaleX.Step = 0.1
	scaleX.OnChanged = func(v float64) {
		sp.withSelectedTexture(func(i int, cfg vessel.TextureConfig) {
			cfg.ScaleX = v
			sp.state.UpdateTexture(i, cfg)
		})
	}
	scaleY := widget.NewSlider(0.2, 5)
	scaleY.Value = 1
	scaleY.Step = 0.1
	scaleY.OnChanged = func(v float64) {
		sp.withSelectedTexture(func(i int, cfg vessel.TextureConfig) {
			cfg.ScaleY = v
			sp.state.UpdateTexture(i, cfg)
		})
	}

	removeBtn := widget.NewButton("Remove Selected", func() {
		if sel, ok := sp.state.Selected(); ok && sel.Kind == scene.KindTexture {
			sp.state.RemoveTexture(sel.Index)
		}
	})

	sp.state.On(app.EventVesselChanged, func(interface{}) { list.Refresh() })
	sp.state.On(app.EventProjectLoaded, func(interface{}) { list.Refresh() })

	controls := container.NewVBox(
		importBtn,
		container.NewHBox(rotateBtn, flipHBtn, flipVBtn),
		widget.NewForm(
			widget.NewFormItem("Width scale", scaleX),
			widget.NewFormItem("Height scale", scaleY),
		),
		removeBtn,
	)
	return container.NewBorder(nil, controls, nil, nil, list)
}

func (sp *SidePanel) withSelectedTexture(fn func(index int, cfg vessel.TextureConfig)) {
	sel, ok := sp.state.Selected()
	if !ok || sel.Kind != scene.KindTexture {
		return
	}
	if sel.Index < 0 || sel.Index >= len(sp.state.Vessel.Textures) {
		return
	}
	fn(sel.Index, sp.state.Vessel.Textures[sel.Index])
}

func (sp *SidePanel) buildViewTab() fyne.CanvasObject {
	materials := sizes.ListMaterials()
	matOptions := make([]string, len(materials))
	for i, m := range materials {
		matOptions[i] = m.Label
	}
	material := widget.NewSelect(matOptions, func(label string) {
		for _, m := range materials {
			if m.Label == label {
				visual := sp.state.Vessel.Visual
				visual.MaterialKey = m.Key
				sp.state.SetVisual(visual)
				return
			}
		}
	})
	material.SetSelected(sizes.GetMaterial(sp.state.Vessel.Visual.MaterialKey).Label)

	lighting := widget.NewSelect([]string{"workshop", "overhead", "flat"}, func(key string) {
		visual := sp.state.Vessel.Visual
		visual.LightingKey = key
		sp.state.SetVisual(visual)
	})
	lighting.SetSelected(sp.state.Vessel.Visual.LightingKey)

	shellOpacity := widget.NewSlider(0.05, 1)
	shellOpacity.Value = sp.state.Vessel.Visual.ShellOpacity
	shellOpacity.Step = 0.05
	shellOpacity.OnChanged = func(v float64) {
		visual := sp.state.Vessel.Visual
		visual.ShellOpacity = v
		sp.state.SetVisual(visual)
	}

	lockNozzles := widget.NewCheck("Lock nozzles", nil)
	lockSaddles := widget.NewCheck("Lock saddles", nil)
	lockLugs := widget.NewCheck("Lock lugs", nil)
	lockTextures := widget.NewCheck("Lock textures", nil)
	onLock := func(bool) {
		sp.state.SetLocks(interaction.Locks{
			Nozzles:  lockNozzles.Checked,
			Saddles:  lockSaddles.Checked,
			Lugs:     lockLugs.Checked,
			Textures: lockTextures.Checked,
		})
	}
	lockNozzles.OnChanged = onLock
	lockSaddles.OnChanged = onLock
	lockLugs.OnChanged = onLock
	lockTextures.OnChanged = onLock

	return container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Material", material),
			widget.NewFormItem("Lighting", lighting),
			widget.NewFormItem("Shell opacity", shellOpacity),
		),
		widget.NewSeparator(),
		widget.NewLabel("Drag Locks"),
		lockNozzles, lockSaddles, lockLugs, lockTextures,
	)
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func parseMM(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func indexOfRatio(r float64) int {
	for i, v := range vessel.HeadRatios {
		if v == r {
			return i
		}
	}
	return 1
}
