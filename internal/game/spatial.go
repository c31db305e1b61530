package game

// Spatial index constants.
const (
	quadCapacity = 8
	quadMaxDepth = 6
)

// RectF is an axis-aligned rectangle on the ground (x/z) plane.
type RectF struct {
	X0, Z0 float64
	X1, Z1 float64
}

func (r RectF) Intersects(o RectF) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Z0 < o.Z1 && r.Z1 > o.Z0
}

func (r RectF) Contains(o RectF) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Z0 >= r.Z0 && o.Z1 <= r.Z1
}

// BuildingRef addresses a building inside a tile without holding a pointer,
// so the index survives tile slices being reallocated.
type BuildingRef struct {
	Tile int // index into World.Tiles
	Idx  int // index into Tile.Buildings
}

type quadItem struct {
	ref    BuildingRef
	bounds RectF
}

// QuadNode is a simple quadtree used as the collision broadphase over static
// building boxes. It is rebuilt whenever a tile is recycled.
type QuadNode struct {
	bounds RectF
	depth  int
	items  []quadItem
	child  [4]*QuadNode
}

func NewQuadNode(bounds RectF, depth int) *QuadNode {
	return &QuadNode{
		bounds: bounds,
		depth:  depth,
		items:  make([]quadItem, 0, quadCapacity),
	}
}

func (n *QuadNode) Insert(ref BuildingRef, bounds RectF) {
	if n.child[0] != nil {
		if c := n.childThatContains(bounds); c != nil {
			c.Insert(ref, bounds)
			return
		}
	}

	n.items = append(n.items, quadItem{ref: ref, bounds: bounds})

	if len(n.items) > quadCapacity && n.depth < quadMaxDepth {
		n.subdivide()
		kept := n.items[:0]
		for _, it := range n.items {
			if c := n.childThatContains(it.bounds); c != nil {
				c.Insert(it.ref, it.bounds)
			} else {
				kept = append(kept, it)
			}
		}
		n.items = kept
	}
}

func (n *QuadNode) Query(r RectF, out *[]BuildingRef) {
	if !n.bounds.Intersects(r) {
		return
	}
	for _, it := range n.items {
		if it.bounds.Intersects(r) {
			*out = append(*out, it.ref)
		}
	}
	if n.child[0] == nil {
		return
	}
	for i := 0; i < 4; i++ {
		n.child[i].Query(r, out)
	}
}

func (n *QuadNode) subdivide() {
	if n.child[0] != nil {
		return
	}
	mx := (n.bounds.X0 + n.bounds.X1) * 0.5
	mz := (n.bounds.Z0 + n.bounds.Z1) * 0.5
	n.child[0] = NewQuadNode(RectF{X0: n.bounds.X0, Z0: n.bounds.Z0, X1: mx, Z1: mz}, n.depth+1)
	n.child[1] = NewQuadNode(RectF{X0: mx, Z0: n.bounds.Z0, X1: n.bounds.X1, Z1: mz}, n.depth+1)
	n.child[2] = NewQuadNode(RectF{X0: n.bounds.X0, Z0: mz, X1: mx, Z1: n.bounds.Z1}, n.depth+1)
	n.child[3] = NewQuadNode(RectF{X0: mx, Z0: mz, X1: n.bounds.X1, Z1: n.bounds.Z1}, n.depth+1)
}

func (n *QuadNode) childThatContains(b RectF) *QuadNode {
	for i := 0; i < 4; i++ {
		c := n.child[i]
		if c != nil && c.bounds.Contains(b) {
			return c
		}
	}
	return nil
}
