package app

import (
	"path/filepath"
	"strings"

	"vessel-studio/internal/project"
	"vessel-studio/internal/vessel"
)

// SaveProject writes the current vessel to path and clears the dirty flag.
func (s *State) SaveProject(path string) error {
	s.mu.Lock()
	proj := project.New(projectName(path), s.Vessel.Clone())
	s.ProjectPath = path
	s.mu.Unlock()

	if err := proj.Save(path); err != nil {
		return err
	}
	s.SetModified(false)
	s.Emit(EventProjectSaved, path)
	return nil
}

// LoadProject replaces the vessel with the one stored at path. The id
// sequence resumes past the highest texture id so new textures never
// collide with loaded ones.
func (s *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}
	if err := proj.Vessel.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.Vessel = proj.Vessel
	s.Seq = vessel.NewSequence(proj.Vessel.Textures)
	s.ProjectPath = path
	s.selected = nil
	s.mu.Unlock()

	s.RebuildScene()
	s.SetModified(false)
	s.Emit(EventProjectLoaded, path)
	return nil
}

// NewProject resets to a fresh default vessel.
func (s *State) NewProject() {
	s.mu.Lock()
	s.Vessel = vessel.NewState()
	s.Seq = vessel.NewSequence(nil)
	s.ProjectPath = ""
	s.selected = nil
	s.mu.Unlock()

	s.RebuildScene()
	s.SetModified(false)
	s.Emit(EventProjectLoaded, "")
}

func projectName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
