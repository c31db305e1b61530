package game

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuadNodeMatchesBruteForce(t *testing.T) {
	rnd := NewRand(5)
	bounds := RectF{X0: -500, Z0: -500, X1: 500, Z1: 500}
	tree := NewQuadNode(bounds, 0)

	var rects []RectF
	for i := 0; i < 300; i++ {
		x := rnd.RangeF(-480, 460)
		z := rnd.RangeF(-480, 460)
		w := rnd.RangeF(2, 20)
		r := RectF{X0: x, Z0: z, X1: x + w, Z1: z + w}
		rects = append(rects, r)
		tree.Insert(BuildingRef{Tile: 0, Idx: i}, r)
	}

	for q := 0; q < 50; q++ {
		x := rnd.RangeF(-500, 450)
		z := rnd.RangeF(-500, 450)
		probe := RectF{X0: x, Z0: z, X1: x + 50, Z1: z + 50}

		var want []int
		for i, r := range rects {
			if r.Intersects(probe) {
				want = append(want, i)
			}
		}

		var refs []BuildingRef
		tree.Query(probe, &refs)
		var got []int
		for _, ref := range refs {
			got = append(got, ref.Idx)
		}
		sort.Ints(got)
		assert.Equal(t, want, got)
	}
}

func TestRectFContains(t *testing.T) {
	outer := RectF{X0: 0, Z0: 0, X1: 10, Z1: 10}
	assert.True(t, outer.Contains(RectF{X0: 1, Z0: 1, X1: 9, Z1: 9}))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(RectF{X0: -1, Z0: 1, X1: 9, Z1: 9}))
	assert.False(t, outer.Contains(RectF{X0: 1, Z0: 1, X1: 11, Z1: 9}))
}
