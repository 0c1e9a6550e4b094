package app

import (
	"image"
	"path/filepath"
	"testing"

	"vessel-studio/internal/extract"
	"vessel-studio/internal/interaction"
	"vessel-studio/internal/scene"
	"vessel-studio/internal/vessel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateBuildsScene(t *testing.T) {
	s := NewState()

	node, ok := s.Scene.Get(scene.Key{Kind: scene.KindShell})
	require.True(t, ok)
	assert.False(t, node.Pickable)
	assert.Equal(t, 1, s.Scene.Len())
	assert.False(t, s.Modified)
}

func TestSelectionEventsAndHighlight(t *testing.T) {
	s := NewState()
	s.AddNozzleFromPipe("N1", 100)

	var events int
	s.On(EventSelectionChanged, func(data interface{}) { events++ })

	s.Select(scene.KindNozzle, 0)
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, scene.KindNozzle, sel.Kind)
	assert.Equal(t, 0, sel.Index)
	assert.Equal(t, 1, events)

	// The selected nozzle renders with the highlight material.
	node, ok := s.Scene.Get(scene.Key{Kind: scene.KindNozzle, ID: 0})
	require.True(t, ok)
	assert.Equal(t, "highlight", node.Group.Parts[0].Material)

	s.Deselect()
	_, ok = s.Selected()
	assert.False(t, ok)
	assert.Equal(t, 2, events)

	// Deselecting again is quiet.
	s.Deselect()
	assert.Equal(t, 2, events)
}

func TestSetShellValidatesAndReclamps(t *testing.T) {
	s := NewState()
	s.AddNozzleFromPipe("N1", 100) // lands at Length/2 = 3000

	var changed int
	s.On(EventVesselChanged, func(data interface{}) { changed++ })

	// Invalid values are ignored, valid ones stick.
	s.SetShell(-10, 2000, 9.9, "diagonal")
	assert.Equal(t, 2000.0, s.Vessel.Diameter)
	assert.Equal(t, 2000.0, s.Vessel.Length)
	assert.Equal(t, vessel.DefaultHeadRatio, s.Vessel.HeadRatio)
	assert.Equal(t, vessel.Horizontal, s.Vessel.Orientation)
	assert.Equal(t, 1, changed)

	// Shrinking the shell pulled the nozzle back inside [0, Length].
	assert.Equal(t, 2000.0, s.Vessel.Nozzles[0].Position)
	assert.True(t, s.Modified)
	require.NoError(t, s.Vessel.Validate())
}

func TestComponentAddUpdateRemove(t *testing.T) {
	s := NewState()

	s.AddNozzleFromPipe("N1", 100)
	require.Len(t, s.Vessel.Nozzles, 1)
	// Bore snapped to the nearest standard pipe.
	assert.InDelta(t, 102.3, s.Vessel.Nozzles[0].Bore, 0.1)
	assert.Equal(t, 3000.0, s.Vessel.Nozzles[0].Position)

	s.UpdateNozzle(0, vessel.NozzleConfig{Name: "N1", Position: 99999, Angle: -30, Bore: 102.3})
	assert.Equal(t, s.Vessel.Length, s.Vessel.Nozzles[0].Position)
	assert.Equal(t, 330.0, s.Vessel.Nozzles[0].Angle)

	s.AddSaddle(1200)
	s.AddSaddle(-50)
	require.Len(t, s.Vessel.Saddles, 2)
	assert.Equal(t, 0.0, s.Vessel.Saddles[1].Position)

	s.AddLug("L1", vessel.LugPadEye, "5T")
	require.Len(t, s.Vessel.Lugs, 1)
	_, ok := s.Scene.Get(scene.Key{Kind: scene.KindLug, ID: 0})
	assert.True(t, ok)

	s.Select(scene.KindNozzle, 0)
	s.RemoveNozzle(0)
	assert.Empty(t, s.Vessel.Nozzles)
	_, selected := s.Selected()
	assert.False(t, selected)
	_, ok = s.Scene.Get(scene.Key{Kind: scene.KindNozzle, ID: 0})
	assert.False(t, ok)

	s.RemoveSaddle(0)
	require.Len(t, s.Vessel.Saddles, 1)
	assert.Equal(t, 0.0, s.Vessel.Saddles[0].Position)

	s.RemoveLug(0)
	assert.Empty(t, s.Vessel.Lugs)

	// Out-of-range indices are no-ops.
	s.RemoveSaddle(7)
	assert.Len(t, s.Vessel.Saddles, 1)
}

func TestTextureLifecycle(t *testing.T) {
	s := NewState()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))

	id1 := s.AddTexture("logo", img)
	id2 := s.AddTexture("stencil", nil)
	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, id2)
	require.Len(t, s.Vessel.Textures, 2)
	assert.Equal(t, 2.0, s.Vessel.Textures[0].Aspect)
	assert.Equal(t, 1.0, s.Vessel.Textures[1].Aspect)

	// The scene keys decal proxies by texture id, not list index.
	_, ok := s.Scene.Get(scene.Key{Kind: scene.KindTexture, ID: id1})
	assert.True(t, ok)

	// Updates keep the id and pixel payload.
	s.UpdateTexture(0, vessel.TextureConfig{Name: "logo", Position: 500, Angle: 400, ScaleX: 2, ScaleY: 1, Aspect: 2})
	assert.Equal(t, id1, s.Vessel.Textures[0].ID)
	assert.Same(t, image.Image(img), s.Vessel.Textures[0].Image)
	assert.Equal(t, 40.0, s.Vessel.Textures[0].Angle)

	s.RemoveTexture(0)
	require.Len(t, s.Vessel.Textures, 1)
	assert.Equal(t, id2, s.Vessel.Textures[0].ID)
	_, ok = s.Scene.Get(scene.Key{Kind: scene.KindTexture, ID: id1})
	assert.False(t, ok)

	// Ids never recycle.
	assert.Equal(t, 3, s.AddTexture("third", nil))
}

func TestMoveComponentPerKind(t *testing.T) {
	s := NewState()
	s.AddNozzleFromPipe("N1", 100)
	s.AddSaddle(1000)
	s.AddLug("L1", vessel.LugPadEye, "5T")

	s.MoveComponent(scene.KindNozzle, 0, 9999, 450)
	assert.Equal(t, s.Vessel.Length, s.Vessel.Nozzles[0].Position)
	assert.Equal(t, 90.0, s.Vessel.Nozzles[0].Angle)

	// Saddles take position only.
	s.MoveComponent(scene.KindSaddle, 0, 2500, 180)
	assert.Equal(t, 2500.0, s.Vessel.Saddles[0].Position)

	s.MoveComponent(scene.KindLug, 0, -100, -90)
	assert.Equal(t, 0.0, s.Vessel.Lugs[0].Position)
	assert.Equal(t, 270.0, s.Vessel.Lugs[0].Angle)

	// Stale index from a collapsed drag is ignored.
	s.MoveComponent(scene.KindNozzle, 5, 100, 0)
	require.NoError(t, s.Vessel.Validate())
}

func TestApplyExtraction(t *testing.T) {
	s := NewState()
	s.Select(scene.KindNozzle, 0)

	s.ApplyExtraction(&extract.Result{
		ID:          3000,
		Length:      8000,
		HeadRatio:   2,
		Orientation: "horizontal",
		Nozzles:     []vessel.NozzleConfig{{Name: "N1", Position: 1200, Angle: 90, Bore: 102.3}},
		Saddles:     []vessel.SaddleConfig{{Position: 1500}, {Position: 6500}},
	})

	assert.Equal(t, 3000, s.Vessel.ID)
	assert.Equal(t, 8000.0, s.Vessel.Length)
	require.Len(t, s.Vessel.Nozzles, 1)
	require.Len(t, s.Vessel.Saddles, 2)
	_, selected := s.Selected()
	assert.False(t, selected)
	assert.True(t, s.Modified)

	// Nil results change nothing.
	s.SetModified(false)
	s.ApplyExtraction(nil)
	assert.False(t, s.Modified)
}

func TestSetVisualClampsOpacity(t *testing.T) {
	s := NewState()
	s.SetVisual(vessel.VisualSettings{ShellOpacity: 0, NozzleOpacity: 5})
	assert.Equal(t, 0.05, s.Vessel.Visual.ShellOpacity)
	assert.Equal(t, 1.0, s.Vessel.Visual.NozzleOpacity)
	// Empty keys keep their previous values.
	assert.Equal(t, "carbon-steel", s.Vessel.Visual.MaterialKey)
	assert.Equal(t, "workshop", s.Vessel.Visual.LightingKey)
}

func TestSetLocksEmitsEvent(t *testing.T) {
	s := NewState()
	var got interaction.Locks
	s.On(EventLocksChanged, func(data interface{}) { got = data.(interaction.Locks) })

	s.SetLocks(interaction.Locks{Nozzles: true, Textures: true})
	assert.True(t, got.Nozzles)
	assert.True(t, got.Textures)
	assert.True(t, s.Locks.Nozzles)
}

func TestProjectSaveLoadRoundTrip(t *testing.T) {
	s := NewState()
	s.AddNozzleFromPipe("N1", 150)
	s.AddTexture("logo", image.NewRGBA(image.Rect(0, 0, 8, 8)))
	s.SetShell(2400, 9000, 2.5, vessel.Horizontal)

	path := filepath.Join(t.TempDir(), "plant-101.vslproj")
	var saved, loaded string
	s.On(EventProjectSaved, func(data interface{}) { saved = data.(string) })
	s.On(EventProjectLoaded, func(data interface{}) { loaded = data.(string) })

	require.NoError(t, s.SaveProject(path))
	assert.Equal(t, path, saved)
	assert.False(t, s.Modified)
	assert.Equal(t, path, s.ProjectPath)

	// Mutate, then load back the saved file.
	s.AddSaddle(100)
	require.True(t, s.Modified)

	require.NoError(t, s.LoadProject(path))
	assert.Equal(t, path, loaded)
	assert.Equal(t, 2400.0, s.Vessel.Diameter)
	assert.Equal(t, 9000.0, s.Vessel.Length)
	require.Len(t, s.Vessel.Nozzles, 1)
	assert.Empty(t, s.Vessel.Saddles)
	require.Len(t, s.Vessel.Textures, 1)
	assert.NotNil(t, s.Vessel.Textures[0].Image)
	assert.False(t, s.Modified)

	// The id sequence resumes past the loaded texture.
	assert.Equal(t, 2, s.AddTexture("next", nil))
}

func TestLoadProjectRejectsInvalidVessel(t *testing.T) {
	s := NewState()
	err := s.LoadProject(filepath.Join(t.TempDir(), "missing.vslproj"))
	assert.Error(t, err)
}

func TestNewProjectResets(t *testing.T) {
	s := NewState()
	s.AddNozzleFromPipe("N1", 100)
	s.ProjectPath = "somewhere.vslproj"
	s.Select(scene.KindNozzle, 0)

	s.NewProject()
	assert.Empty(t, s.Vessel.Nozzles)
	assert.Empty(t, s.ProjectPath)
	_, selected := s.Selected()
	assert.False(t, selected)
	assert.False(t, s.Modified)
	assert.Equal(t, 1, s.Scene.Len())
}
