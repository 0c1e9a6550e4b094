// Package project provides project file handling and persistence.
package project

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"vessel-studio/internal/vessel"
)

// File represents a vessel studio project file (.vslproj). Texture pixel
// payloads are embedded as base64 PNG so a project stays a single portable
// file.
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	Vessel   *vessel.State `json:"vessel"`
	Textures []TextureData `json:"texture_data,omitempty"`
}

// TextureData carries one texture's pixel payload, keyed by the texture id
// in the vessel state.
type TextureData struct {
	ID  int    `json:"id"`
	PNG string `json:"png"`
}

// New creates a new project file around a vessel state.
func New(name string, vs *vessel.State) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Vessel:   vs,
	}
}

// Load loads a project from a .vslproj file and rebinds texture pixel
// payloads onto the vessel's texture configs. Textures whose payload is
// missing or undecodable are kept without an image.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, err
	}
	if proj.Vessel == nil {
		return nil, fmt.Errorf("project %s has no vessel", path)
	}

	images := make(map[int]image.Image, len(proj.Textures))
	for _, td := range proj.Textures {
		raw, err := base64.StdEncoding.DecodeString(td.PNG)
		if err != nil {
			continue
		}
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			continue
		}
		images[td.ID] = img
	}
	for i := range proj.Vessel.Textures {
		proj.Vessel.Textures[i].Image = images[proj.Vessel.Textures[i].ID]
	}

	return &proj, nil
}

// Save saves the project to a file, encoding every texture image as PNG.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	p.Textures = p.Textures[:0]
	if p.Vessel != nil {
		for _, t := range p.Vessel.Textures {
			if t.Image == nil {
				continue
			}
			var buf bytes.Buffer
			if err := png.Encode(&buf, t.Image); err != nil {
				return fmt.Errorf("encoding texture %d: %w", t.ID, err)
			}
			p.Textures = append(p.Textures, TextureData{
				ID:  t.ID,
				PNG: base64.StdEncoding.EncodeToString(buf.Bytes()),
			})
		}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
