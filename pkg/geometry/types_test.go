package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		expected  float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -2, 0, 10, 0},
		{"above", 12, 0, 10, 10},
		{"at low bound", 0, 0, 10, 0},
		{"at high bound", 10, 0, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.v, tt.lo, tt.hi))
		})
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		name     string
		deg      float64
		expected float64
	}{
		{"zero", 0, 0},
		{"in range", 90, 90},
		{"full turn", 360, 0},
		{"over", 370, 10},
		{"negative", -10, 350},
		{"multiple negative turns", -730, 350},
		{"multiple turns", 725, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, WrapDegrees(tt.deg), 1e-9)
		})
	}
}

func TestRectNormalized(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: -4, Height: -6}.Normalized()
	assert.Equal(t, Rect{X: 6, Y: 14, Width: 4, Height: 6}, r)

	// Already normal rectangles are unchanged.
	r2 := Rect{X: 1, Y: 2, Width: 3, Height: 4}
	assert.Equal(t, r2, r2.Normalized())
}

func TestRectIntEmpty(t *testing.T) {
	assert.True(t, RectInt{Width: 0, Height: 5}.Empty())
	assert.True(t, RectInt{Width: 5, Height: -1}.Empty())
	assert.False(t, RectInt{Width: 5, Height: 5}.Empty())
}

func TestDegreesRadiansRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 180, 270, 359} {
		assert.InDelta(t, deg, Degrees(Radians(deg)), 1e-9)
	}
}
