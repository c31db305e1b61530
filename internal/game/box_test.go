package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxIntersects(t *testing.T) {
	a := BoxAt(0, 0, 1, 2, 0, 2)
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"overlap", BoxAt(0.5, 0.5, 1, 2, 0, 2), true},
		{"apart on x", BoxAt(5, 0, 1, 2, 0, 2), false},
		{"apart on z", BoxAt(0, 10, 1, 2, 0, 2), false},
		{"apart on y", BoxAt(0, 0, 1, 2, 5, 7), false},
		{"touching edges only", BoxAt(2, 0, 1, 2, 0, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(a))
		})
	}
}

func TestBoxTranslateRoundTrip(t *testing.T) {
	b := Box{X0: 6.5, Z0: -23, X1: 25.5, Z1: -4, Y0: 0, Y1: 17}
	moved := b.Translate(600, -600).Translate(-600, 600)
	assert.Equal(t, b, moved)
}

func TestBoxExpand(t *testing.T) {
	b := BoxAt(0, 0, 1, 1, 0, 2).Expand(0.5)
	assert.Equal(t, -1.5, b.X0)
	assert.Equal(t, 1.5, b.X1)
	assert.Equal(t, -1.5, b.Z0)
	assert.Equal(t, 1.5, b.Z1)
	assert.Equal(t, 0.0, b.Y0)
}

func TestBoxCenter(t *testing.T) {
	b := BoxAt(3, -7, 2, 4, 0, 1)
	assert.Equal(t, 3.0, b.CenterX())
	assert.Equal(t, -7.0, b.CenterZ())
}
