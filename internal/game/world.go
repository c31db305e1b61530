package game

import "math"

// World holds a 3x3 ring of tiles centered on the player's tile. Tiles are
// never destroyed: when the player crosses a tile boundary, the far row or
// column is translated by three tile widths to the other side, keeping the
// same local layout.
type World struct {
	Tiles [9]Tile

	cfg  *Config
	seed uint64
	tree *QuadNode

	// player grid cell the ring is currently centered on
	centerX, centerZ int
}

type Tile struct {
	GridX, GridZ     int
	OriginX, OriginZ float64
	Buildings        []Building
	Hazards          []Hazard
}

type Building struct {
	X, Z          float64
	Width, Depth  float64
	Height        float64
	Box           Box
}

// Hazard is a water pit the player can fall into.
type Hazard struct {
	Box Box
}

func NewWorld(cfg *Config, seed uint64) *World {
	w := &World{cfg: cfg, seed: seed}
	i := 0
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			w.Tiles[i] = w.generateTile(i, dx, dz)
			i++
		}
	}
	w.rebuildIndex()
	return w
}

// generateTile lays out one tile slot. The layout depends only on the seed
// and the slot, so it stays stable as the tile is recycled around the world.
func (w *World) generateTile(slot, gx, gz int) Tile {
	ts := w.cfg.TileSize
	t := Tile{
		GridX:   gx,
		GridZ:   gz,
		OriginX: float64(gx) * ts,
		OriginZ: float64(gz) * ts,
	}

	blocks := int(ts / w.cfg.RoadSpacing)
	halfRoad := w.cfg.RoadWidth / 2

	for bz := 0; bz < blocks; bz++ {
		for bx := 0; bx < blocks; bx++ {
			h := hash2D(w.seed^uint64(slot)*0x9E3779B97F4A7C15, bx, bz)

			lotX := t.OriginX + float64(bx)*w.cfg.RoadSpacing + halfRoad
			lotZ := t.OriginZ + float64(bz)*w.cfg.RoadSpacing + halfRoad
			lotSize := w.cfg.RoadSpacing - w.cfg.RoadWidth

			if h%100 < 3 {
				// water pit covering the whole lot
				t.Hazards = append(t.Hazards, Hazard{
					Box: Box{
						X0: lotX, Z0: lotZ,
						X1: lotX + lotSize, Z1: lotZ + lotSize,
						Y0: -4, Y1: 0.2,
					},
				})
				continue
			}

			// 2x2 buildings per lot with hashed heights
			cell := lotSize / 2
			pad := 2.0
			for sz := 0; sz < 2; sz++ {
				for sx := 0; sx < 2; sx++ {
					bh := hash2D(h, sx, sz)
					height := 10 + float64(bh%30)
					bw := cell - 2*pad
					x := lotX + float64(sx)*cell + pad
					z := lotZ + float64(sz)*cell + pad
					t.Buildings = append(t.Buildings, Building{
						X: x + bw/2, Z: z + bw/2,
						Width: bw, Depth: bw, Height: height,
						Box: Box{X0: x, Z0: z, X1: x + bw, Z1: z + bw, Y0: 0, Y1: height},
					})
				}
			}
		}
	}
	return t
}

// Update recenters the ring on the player. Each tile that ends up more than
// one grid cell away is translated by three tile widths, never regenerated.
func (w *World) Update(px, pz float64) {
	ts := w.cfg.TileSize
	pgx := int(math.Floor(px / ts))
	pgz := int(math.Floor(pz / ts))
	if pgx == w.centerX && pgz == w.centerZ {
		return
	}
	w.centerX, w.centerZ = pgx, pgz

	moved := false
	for i := range w.Tiles {
		t := &w.Tiles[i]
		for t.GridX < w.centerX-1 {
			w.translateTile(t, 3, 0)
			moved = true
		}
		for t.GridX > w.centerX+1 {
			w.translateTile(t, -3, 0)
			moved = true
		}
		for t.GridZ < w.centerZ-1 {
			w.translateTile(t, 0, 3)
			moved = true
		}
		for t.GridZ > w.centerZ+1 {
			w.translateTile(t, 0, -3)
			moved = true
		}
	}
	if moved {
		w.rebuildIndex()
	}
}

func (w *World) translateTile(t *Tile, dgx, dgz int) {
	dx := float64(dgx) * w.cfg.TileSize
	dz := float64(dgz) * w.cfg.TileSize
	t.GridX += dgx
	t.GridZ += dgz
	t.OriginX += dx
	t.OriginZ += dz
	for i := range t.Buildings {
		b := &t.Buildings[i]
		b.X += dx
		b.Z += dz
		b.Box = b.Box.Translate(dx, dz)
	}
	for i := range t.Hazards {
		t.Hazards[i].Box = t.Hazards[i].Box.Translate(dx, dz)
	}
}

func (w *World) rebuildIndex() {
	ts := w.cfg.TileSize
	bounds := RectF{
		X0: float64(w.centerX-2) * ts,
		Z0: float64(w.centerZ-2) * ts,
		X1: float64(w.centerX+3) * ts,
		Z1: float64(w.centerZ+3) * ts,
	}
	w.tree = NewQuadNode(bounds, 0)
	for ti := range w.Tiles {
		for bi := range w.Tiles[ti].Buildings {
			w.tree.Insert(BuildingRef{Tile: ti, Idx: bi}, w.Tiles[ti].Buildings[bi].Box.XZRect())
		}
	}
}

// CollidesBuilding reports the first building whose box overlaps b, expanded
// by pad on the ground plane.
func (w *World) CollidesBuilding(b Box, pad float64) (Box, bool) {
	probe := b.Expand(pad)
	var refs []BuildingRef
	w.tree.Query(probe.XZRect(), &refs)
	for _, r := range refs {
		bb := w.Tiles[r.Tile].Buildings[r.Idx].Box
		if bb.Intersects(probe) {
			return bb, true
		}
	}
	return Box{}, false
}

// HazardHit reports whether b overlaps any water pit.
func (w *World) HazardHit(b Box) (Box, bool) {
	for ti := range w.Tiles {
		for _, h := range w.Tiles[ti].Hazards {
			if h.Box.Intersects(b) {
				return h.Box, true
			}
		}
	}
	return Box{}, false
}
