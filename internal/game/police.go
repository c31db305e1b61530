package game

import "math"

// ChaserMode selects the steering target.
type ChaserMode int

const (
	ModePursue ChaserMode = iota
	ModeCutoff
)

// Chaser is a single police car.
type Chaser struct {
	X, Y, Z  float64
	VX, VZ   float64
	Rotation float64
	Speed    float64

	Mode             ChaserMode
	BlockTimer       float64
	DistanceToPlayer float64

	// Flanking bias in line-of-sight space, rolled once at spawn.
	OffsetLateral float64
	OffsetForward float64
	WanderPhase   float64
}

// PoliceSystem owns the chaser roster. Spawns requested during a tick are
// buffered and merged at the start of the next police update, so the roster
// never changes while it is being iterated.
type PoliceSystem struct {
	Chasers []Chaser
	pending []Chaser

	cfg  *Config
	rnd  *Rand
	time float64
	side int // alternates flank sides for new spawns
}

func NewPoliceSystem(cfg *Config, rnd *Rand) *PoliceSystem {
	return &PoliceSystem{cfg: cfg, rnd: rnd}
}

// Spawn queues a chaser at the given position and heading. It joins the
// roster on the next Update. The flanking offset magnitude is random per
// instance; the side alternates so the pack splits around the player.
func (ps *PoliceSystem) Spawn(x, z, rot float64) {
	ps.side++
	lat := ps.rnd.RangeF(ps.cfg.SeparationRadius, ps.cfg.SeparationRadius*3)
	if ps.side%2 == 0 {
		lat = -lat
	}
	ps.pending = append(ps.pending, Chaser{
		X: x, Z: z,
		Rotation:      wrapAngle(rot),
		Speed:         ps.cfg.ChaserFloorSpeed,
		OffsetLateral: lat,
		OffsetForward: ps.rnd.RangeF(-ps.cfg.SeparationRadius, ps.cfg.SeparationRadius),
		WanderPhase:   ps.rnd.RangeF(0, 2*math.Pi),
	})
}

// Count includes queued spawns so the wanted controller cannot over-spawn.
func (ps *PoliceSystem) Count() int {
	return len(ps.Chasers) + len(ps.pending)
}

func (ps *PoliceSystem) Update(dt float64, p *Player, w *World) {
	if len(ps.pending) > 0 {
		ps.Chasers = append(ps.Chasers, ps.pending...)
		ps.pending = ps.pending[:0]
	}
	ps.time += dt

	for i := range ps.Chasers {
		ps.updateChaser(dt, i, p, w)
	}
}

func (ps *PoliceSystem) updateChaser(dt float64, idx int, p *Player, w *World) {
	c := &ps.Chasers[idx]
	cfg := ps.cfg

	dx := p.X - c.X
	dz := p.Z - c.Z
	dist := math.Hypot(dx, dz)
	c.DistanceToPlayer = dist

	// Cutoff: when close, occasionally commit to blocking ahead of the
	// player for a fixed spell.
	if c.Mode == ModeCutoff {
		c.BlockTimer -= dt
		if c.BlockTimer <= 0 {
			c.Mode = ModePursue
		}
	} else if dist < cfg.CutoffTrigger && ps.rnd.Float64() < cfg.CutoffChance*dt {
		c.Mode = ModeCutoff
		c.BlockTimer = cfg.CutoffDuration
	}

	var tx, tz float64
	if c.Mode == ModeCutoff {
		hx, hz := headingVec(p.Rotation)
		tx = p.X + hx*cfg.CutoffForwardBias
		tz = p.Z + hz*cfg.CutoffForwardBias
	} else {
		// Predictive intercept: aim where the player will be.
		look := clampF(dist*cfg.InterceptFactor, cfg.InterceptMin, cfg.InterceptMax)
		tx = p.X + p.VX*look
		tz = p.Z + p.VZ*look

		// Flank offset in line-of-sight space, fading out as the chaser
		// closes in.
		losAng := math.Atan2(dx, dz)
		fade := clampF((dist-cfg.FlankNearDist)/(cfg.FlankFarDist-cfg.FlankNearDist), 0, 1)
		lat := c.OffsetLateral * fade
		lat += cfg.WanderAmplitude * math.Sin(ps.time*cfg.WanderFrequency+c.WanderPhase)
		fwd := c.OffsetForward * fade
		px, pz := math.Cos(losAng), -math.Sin(losAng)
		lx, lz := math.Sin(losAng), math.Cos(losAng)
		tx += px*lat + lx*fwd
		tz += pz*lat + lz*fwd
	}

	// Separation steers the target away from nearby packmates.
	sepX, sepZ := ps.separation(idx)
	tx += sepX * cfg.SeparationWeight
	tz += sepZ * cfg.SeparationWeight

	// Turn toward the target with a fractional step so the car arcs
	// instead of snapping.
	want := math.Atan2(tx-c.X, tz-c.Z)
	c.Rotation = wrapAngle(c.Rotation + angDiff(c.Rotation, want)*math.Min(1, cfg.ChaserTurnRate*dt))

	// Catch-up speed when far or committed to a cutoff; floor when right on
	// top of the player; in between, shadow the player's speed plus a
	// margin so the pack does not orbit.
	target := cfg.ChaserCatchSpeed
	if c.Mode != ModeCutoff && dist < cfg.FlankFarDist {
		if dist < cfg.FlankNearDist {
			target = cfg.ChaserFloorSpeed
		} else {
			target = math.Hypot(p.VX, p.VZ) + cfg.ChaserSpeedMargin
		}
	}
	c.Speed = approach(c.Speed, target, cfg.ChaserAccel*dt)
	c.Speed = clampF(c.Speed, cfg.ChaserFloorSpeed, cfg.ChaserCatchSpeed)

	sx, sz := headingVec(c.Rotation)
	c.VX = sx * c.Speed
	c.VZ = sz * c.Speed

	oldX, oldZ := c.X, c.Z
	c.X += c.VX * dt
	c.Z += c.VZ * dt

	if _, hit := w.CollidesBuilding(ps.chaserBox(c), cfg.FlankMargin); hit {
		// Back out, kick the heading off the wall and shed speed.
		c.X, c.Z = oldX, oldZ
		c.Rotation = wrapAngle(c.Rotation + ps.rnd.RangeF(-math.Pi/4, math.Pi/4))
		c.Speed /= 2
	}
}

// separation sums unit vectors away from every other chaser within the
// separation radius of chaser idx.
func (ps *PoliceSystem) separation(idx int) (float64, float64) {
	c := &ps.Chasers[idx]
	var sx, sz float64
	for j := range ps.Chasers {
		if j == idx {
			continue
		}
		o := &ps.Chasers[j]
		dx := c.X - o.X
		dz := c.Z - o.Z
		d := math.Hypot(dx, dz)
		if d >= ps.cfg.SeparationRadius || d == 0 {
			continue
		}
		sx += dx / d
		sz += dz / d
	}
	return sx, sz
}

func (ps *PoliceSystem) chaserBox(c *Chaser) Box {
	return BoxAt(c.X, c.Z, ps.cfg.ChaserWidth/2, ps.cfg.ChaserLength/2, c.Y, c.Y+2)
}

// Box returns the collision box of chaser i.
func (ps *PoliceSystem) Box(i int) Box {
	return ps.chaserBox(&ps.Chasers[i])
}

// Nearest returns the distance from the player to the closest chaser, or a
// large value when the roster is empty.
func (ps *PoliceSystem) Nearest() float64 {
	best := math.MaxFloat64
	for i := range ps.Chasers {
		if d := ps.Chasers[i].DistanceToPlayer; d < best {
			best = d
		}
	}
	return best
}

// Reset drops the whole roster, queued spawns included.
func (ps *PoliceSystem) Reset() {
	ps.Chasers = ps.Chasers[:0]
	ps.pending = ps.pending[:0]
	ps.side = 0
	ps.time = 0
}
