package vessel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateDefaults(t *testing.T) {
	vs := NewState()
	require.NoError(t, vs.Validate())
	assert.Equal(t, 2000.0, vs.Diameter)
	assert.Equal(t, 6000.0, vs.Length)
	assert.Equal(t, DefaultHeadRatio, vs.HeadRatio)
	assert.Equal(t, Horizontal, vs.Orientation)
}

func TestRadiusAndHeadDepth(t *testing.T) {
	vs := NewState()
	assert.Equal(t, 1000.0, vs.Radius())
	assert.Equal(t, 500.0, vs.HeadDepth()) // 2:1 head

	vs.HeadRatio = 2.5
	assert.Equal(t, 400.0, vs.HeadDepth())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(vs *State)
		wantErr bool
	}{
		{"default ok", func(vs *State) {}, false},
		{"zero diameter", func(vs *State) { vs.Diameter = 0 }, true},
		{"negative length", func(vs *State) { vs.Length = -1 }, true},
		{"bad head ratio", func(vs *State) { vs.HeadRatio = 3.0 }, true},
		{"bad orientation", func(vs *State) { vs.Orientation = "diagonal" }, true},
		{"nozzle past end", func(vs *State) {
			vs.Nozzles = []NozzleConfig{{Name: "N1", Position: 9999, Bore: 100}}
		}, true},
		{"nozzle zero bore", func(vs *State) {
			vs.Nozzles = []NozzleConfig{{Name: "N1", Position: 100}}
		}, true},
		{"saddle negative position", func(vs *State) {
			vs.Saddles = []SaddleConfig{{Position: -5}}
		}, true},
		{"valid components", func(vs *State) {
			vs.Nozzles = []NozzleConfig{{Name: "N1", Position: 3000, Bore: 102.3}}
			vs.Saddles = []SaddleConfig{{Position: 1200}}
			vs.Lugs = []LugConfig{{Name: "L1", Position: 1500, Style: LugPadEye, SWL: "5T"}}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := NewState()
			tt.mutate(vs)
			err := vs.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidHeadRatio(t *testing.T) {
	for _, r := range HeadRatios {
		assert.True(t, ValidHeadRatio(r))
	}
	assert.False(t, ValidHeadRatio(0))
	assert.False(t, ValidHeadRatio(2.1))
}

func TestCloneIsIndependent(t *testing.T) {
	vs := NewState()
	vs.Nozzles = []NozzleConfig{{Name: "N1", Position: 1000, Bore: 102.3}}

	clone := vs.Clone()
	clone.Nozzles[0].Position = 2000
	clone.Diameter = 3000

	assert.Equal(t, 1000.0, vs.Nozzles[0].Position)
	assert.Equal(t, 2000.0, vs.Diameter)
}

func TestSequence(t *testing.T) {
	s := NewSequence(nil)
	assert.Equal(t, 1, s.Next())
	assert.Equal(t, 2, s.Next())

	// Resumes past the highest existing id.
	s = NewSequence([]TextureConfig{{ID: 3}, {ID: 7}, {ID: 5}})
	assert.Equal(t, 8, s.Next())
}
