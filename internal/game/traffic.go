package game

import "math"

const trafficCellSize = 12.0

// TrafficCar is a civilian car following the road grid.
type TrafficCar struct {
	X, Z     float64
	Rotation float64
	Speed    float64

	ReverseTimer float64
	StuckTimer   float64
}

// TrafficSystem keeps a fixed population of civilian cars alive around the
// player. Cars drifting too far away are respawned nearby instead of removed.
type TrafficSystem struct {
	Cars []TrafficCar

	cfg    *Config
	rnd    *Rand
	grid   map[[2]int][]int
	target int
}

func NewTrafficSystem(cfg *Config, rnd *Rand) *TrafficSystem {
	ts := &TrafficSystem{
		cfg:    cfg,
		rnd:    rnd,
		grid:   make(map[[2]int][]int),
		target: cfg.TrafficCount,
	}
	ts.Cars = make([]TrafficCar, 0, cfg.TrafficCount)
	for i := 0; i < cfg.TrafficCount; i++ {
		ts.Cars = append(ts.Cars, ts.newCar(0, 0))
	}
	return ts
}

// SetTarget rescales the population; Update converges toward it.
func (ts *TrafficSystem) SetTarget(n int) {
	if n < 0 {
		n = 0
	}
	ts.target = n
}

// newCar places a car on a random road line near (cx, cz), driving along it.
func (ts *TrafficSystem) newCar(cx, cz float64) TrafficCar {
	spacing := ts.cfg.RoadSpacing
	// pick a road line a few blocks out and a heading along it
	line := float64(ts.rnd.Range(-3, 3)) * spacing
	along := ts.rnd.RangeF(-3*spacing, 3*spacing)
	c := TrafficCar{
		Speed: ts.rnd.RangeF(ts.cfg.TrafficSpeedMin, ts.cfg.TrafficSpeedMax),
	}
	if ts.rnd.Intn(2) == 0 {
		// road parallel to z
		c.X = cx + line
		c.Z = cz + along
		c.Rotation = 0
	} else {
		c.X = cx + along
		c.Z = cz + line
		c.Rotation = math.Pi / 2
	}
	if ts.rnd.Intn(2) == 0 {
		c.Rotation = wrapAngle(c.Rotation + math.Pi)
	}
	return c
}

func (ts *TrafficSystem) Update(dt float64, p *Player, w *World) {
	for len(ts.Cars) < ts.target {
		ts.Cars = append(ts.Cars, ts.newCar(p.X, p.Z))
	}
	if len(ts.Cars) > ts.target {
		ts.Cars = ts.Cars[:ts.target]
	}

	ts.rebuildGrid()

	for i := range ts.Cars {
		ts.updateCar(dt, i, w)
	}
	ts.separateOverlaps()

	// recycle cars that fell far behind
	for i := range ts.Cars {
		c := &ts.Cars[i]
		if math.Hypot(c.X-p.X, c.Z-p.Z) > ts.cfg.RemoveBehindDist*2 {
			ts.Cars[i] = ts.newCar(p.X, p.Z)
		}
	}
}

func (ts *TrafficSystem) updateCar(dt float64, i int, w *World) {
	c := &ts.Cars[i]

	if c.ReverseTimer > 0 {
		c.ReverseTimer -= dt
		sx, sz := headingVec(c.Rotation)
		c.X -= sx * c.Speed * 0.4 * dt
		c.Z -= sz * c.Speed * 0.4 * dt
		return
	}

	if ts.blocked(i, c.Rotation, w) {
		// try alternative headings before giving up
		found := false
		for _, turn := range []float64{math.Pi / 4, -math.Pi / 4, math.Pi / 2, -math.Pi / 2, math.Pi} {
			if !ts.blocked(i, wrapAngle(c.Rotation+turn), w) {
				c.Rotation = wrapAngle(c.Rotation + turn)
				found = true
				break
			}
		}
		if !found {
			c.StuckTimer += dt
			if c.StuckTimer > 2 {
				c.ReverseTimer = 0.8
				c.StuckTimer = 0
			}
			return
		}
		c.StuckTimer = 0
	}

	oldX, oldZ := c.X, c.Z
	sx, sz := headingVec(c.Rotation)
	c.X += sx * c.Speed * dt
	c.Z += sz * c.Speed * dt

	if _, hit := w.CollidesBuilding(ts.carBox(c), 0); hit {
		c.X, c.Z = oldX, oldZ
		c.Speed *= 0.5
		c.ReverseTimer = 0.6
	}
}

// blocked probes a short box ahead of car i along the given heading for
// buildings or other cars.
func (ts *TrafficSystem) blocked(i int, rot float64, w *World) bool {
	c := &ts.Cars[i]
	sx, sz := headingVec(rot)
	ahead := ts.cfg.PlayerLength * 1.5
	probe := BoxAt(c.X+sx*ahead, c.Z+sz*ahead, ts.cfg.PlayerWidth, ts.cfg.PlayerLength, 0, 2)

	if _, hit := w.CollidesBuilding(probe, 0); hit {
		return true
	}
	for _, j := range ts.neighbors(c.X+sx*ahead, c.Z+sz*ahead) {
		if j == i {
			continue
		}
		if ts.carBox(&ts.Cars[j]).Intersects(probe) {
			return true
		}
	}
	return false
}

func (ts *TrafficSystem) rebuildGrid() {
	for k := range ts.grid {
		delete(ts.grid, k)
	}
	for i := range ts.Cars {
		k := cellOf(ts.Cars[i].X, ts.Cars[i].Z)
		ts.grid[k] = append(ts.grid[k], i)
	}
}

func (ts *TrafficSystem) neighbors(x, z float64) []int {
	center := cellOf(x, z)
	var out []int
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			out = append(out, ts.grid[[2]int{center[0] + dx, center[1] + dz}]...)
		}
	}
	return out
}

func cellOf(x, z float64) [2]int {
	return [2]int{
		floorDiv(int(math.Floor(x)), int(trafficCellSize)),
		floorDiv(int(math.Floor(z)), int(trafficCellSize)),
	}
}

// separateOverlaps pushes interpenetrating cars apart so jams resolve.
func (ts *TrafficSystem) separateOverlaps() {
	for i := range ts.Cars {
		a := &ts.Cars[i]
		for _, j := range ts.neighbors(a.X, a.Z) {
			if j <= i {
				continue
			}
			b := &ts.Cars[j]
			if !ts.carBox(a).Intersects(ts.carBox(b)) {
				continue
			}
			dx := b.X - a.X
			dz := b.Z - a.Z
			d := math.Hypot(dx, dz)
			if d == 0 {
				dx, d = 1, 1
			}
			push := 0.5
			a.X -= dx / d * push
			a.Z -= dz / d * push
			b.X += dx / d * push
			b.Z += dz / d * push
		}
	}
}

func (ts *TrafficSystem) carBox(c *TrafficCar) Box {
	return BoxAt(c.X, c.Z, ts.cfg.ChaserWidth/2, ts.cfg.ChaserLength/2, 0, 2)
}

// Box returns the collision box of car i.
func (ts *TrafficSystem) Box(i int) Box {
	return ts.carBox(&ts.Cars[i])
}

func (ts *TrafficSystem) Reset() {
	ts.target = ts.cfg.TrafficCount
	ts.Cars = ts.Cars[:0]
	for i := 0; i < ts.cfg.TrafficCount; i++ {
		ts.Cars = append(ts.Cars, ts.newCar(0, 0))
	}
}
