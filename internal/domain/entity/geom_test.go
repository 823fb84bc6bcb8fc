package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2_Normalize(t *testing.T) {
	v := Vec2{X: 3, Y: 4}.Normalize()
	assert.InDelta(t, 0.6, v.X, 1e-9)
	assert.InDelta(t, 0.8, v.Y, 1e-9)
	assert.InDelta(t, 1.0, v.Len(), 1e-9)

	// Zero vector stays zero instead of producing NaN
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
}

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 4, Y: 6}

	assert.Equal(t, Vec2{X: 5, Y: 8}, a.Add(b))
	assert.Equal(t, Vec2{X: 3, Y: 4}, b.Sub(a))
	assert.Equal(t, Vec2{X: -1, Y: -2}, a.Neg())
	assert.Equal(t, Vec2{X: 2, Y: 4}, a.Scale(2))
	assert.Equal(t, 25.0, a.DistSq(b))
	assert.Equal(t, 5.0, a.Dist(b))
}

func TestRect_Overlaps(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}

	assert.True(t, r.Overlaps(Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.False(t, r.Overlaps(Rect{X: 10, Y: 0, W: 5, H: 5}), "touching edges do not overlap")
	assert.False(t, r.Overlaps(Rect{X: 20, Y: 20, W: 5, H: 5}))
}

func TestRectAround(t *testing.T) {
	r := RectAround(Vec2{X: 10, Y: 10}, 8, 8)

	assert.Equal(t, Rect{X: 6, Y: 6, W: 8, H: 8}, r)
	assert.Equal(t, Vec2{X: 10, Y: 10}, r.Center())
}
