package game

import "math"

// ObstacleKind is a closed set; the spawner only rolls kinds listed in
// obstacleKinds.
type ObstacleKind int

const (
	KindBarrier ObstacleKind = iota
	KindBarrel
	KindCone
	KindMoving
)

var obstacleKinds = []ObstacleKind{KindBarrier, KindBarrel, KindCone, KindMoving}

// kinds eligible when the moving roll misses
var staticObstacleKinds = []ObstacleKind{KindBarrier, KindBarrel, KindCone}

func obstacleHalfSize(k ObstacleKind) (halfW, halfL float64) {
	switch k {
	case KindBarrier:
		return 3, 0.6
	case KindBarrel:
		return 0.8, 0.8
	case KindMoving:
		return 1.2, 1.2
	default:
		return 0.5, 0.5
	}
}

type Obstacle struct {
	Kind ObstacleKind
	X, Z float64

	// Moving obstacles slide along world x between MinX and MaxX.
	Moving     bool
	VX         float64
	MinX, MaxX float64

	NearMissed bool
}

// ObstacleSystem spawns road obstacles ahead of the player from warmed pools.
// An obstacle is either in its kind's free pool or active, never both; when a
// pool runs dry the spawn is skipped.
type ObstacleSystem struct {
	Active []*Obstacle

	free map[ObstacleKind][]*Obstacle
	cfg  *Config
	rnd  *Rand

	timer    float64
	interval float64
}

func NewObstacleSystem(cfg *Config, rnd *Rand) *ObstacleSystem {
	os := &ObstacleSystem{
		free:     make(map[ObstacleKind][]*Obstacle),
		cfg:      cfg,
		rnd:      rnd,
		interval: cfg.ObstacleInterval,
		timer:    cfg.ObstacleInterval,
	}
	for _, k := range obstacleKinds {
		pool := make([]*Obstacle, 0, cfg.ObstaclePoolSize)
		for i := 0; i < cfg.ObstaclePoolSize; i++ {
			pool = append(pool, &Obstacle{Kind: k})
		}
		os.free[k] = pool
	}
	return os
}

// SetDifficulty tightens the spawn cadence, never below the floor.
func (os *ObstacleSystem) SetDifficulty(level int) {
	iv := os.cfg.ObstacleInterval - float64(level)*os.cfg.ObstacleIntervalDec
	os.interval = math.Max(iv, os.cfg.ObstacleIntervalMin)
}

func (os *ObstacleSystem) Update(dt float64, p *Player) {
	os.timer -= dt
	if os.timer <= 0 {
		os.timer = os.interval
		os.spawnAhead(p)
	}

	for _, o := range os.Active {
		if !o.Moving {
			continue
		}
		o.X += o.VX * dt
		if o.X <= o.MinX {
			o.X = o.MinX
			o.VX = math.Abs(o.VX)
		} else if o.X >= o.MaxX {
			o.X = o.MaxX
			o.VX = -math.Abs(o.VX)
		}
	}

	os.removeBehind(p)
}

func (os *ObstacleSystem) spawnAhead(p *Player) {
	var k ObstacleKind
	if os.rnd.Float64() < os.cfg.MovingChance {
		k = KindMoving
	} else {
		k = staticObstacleKinds[os.rnd.Intn(len(staticObstacleKinds))]
	}
	o := os.take(k)
	if o == nil {
		return
	}

	sx, sz := headingVec(p.Rotation)
	ahead := os.rnd.RangeF(os.cfg.SpawnAheadMin, os.cfg.SpawnAheadMax)
	lat := os.rnd.RangeF(-os.cfg.RoadWidth/2, os.cfg.RoadWidth/2)
	// perpendicular to the player's heading
	px, pz := sz, -sx

	o.X = p.X + sx*ahead + px*lat
	o.Z = p.Z + sz*ahead + pz*lat
	o.NearMissed = false

	o.Moving = k == KindMoving
	if o.Moving {
		half := os.cfg.RoadWidth / 2
		o.MinX = o.X - half
		o.MaxX = o.X + half
		o.VX = os.rnd.RangeF(os.cfg.MovingSpeedMin, os.cfg.MovingSpeedMax)
		if os.rnd.Intn(2) == 0 {
			o.VX = -o.VX
		}
	} else {
		o.VX = 0
	}

	os.Active = append(os.Active, o)
}

func (os *ObstacleSystem) take(k ObstacleKind) *Obstacle {
	pool := os.free[k]
	if len(pool) == 0 {
		return nil
	}
	o := pool[len(pool)-1]
	os.free[k] = pool[:len(pool)-1]
	return o
}

func (os *ObstacleSystem) removeBehind(p *Player) {
	hx, hz := headingVec(p.Rotation)
	for i := 0; i < len(os.Active); {
		o := os.Active[i]
		dx := o.X - p.X
		dz := o.Z - p.Z
		if dx*hx+dz*hz < 0 && math.Hypot(dx, dz) > os.cfg.RemoveBehindDist {
			os.release(i)
			continue
		}
		i++
	}
}

// Deactivate returns active obstacle i to its pool.
func (os *ObstacleSystem) Deactivate(i int) {
	os.release(i)
}

func (os *ObstacleSystem) release(i int) {
	o := os.Active[i]
	last := len(os.Active) - 1
	os.Active[i] = os.Active[last]
	os.Active = os.Active[:last]
	os.free[o.Kind] = append(os.free[o.Kind], o)
}

// Box returns the collision box of active obstacle i.
func (os *ObstacleSystem) Box(i int) Box {
	o := os.Active[i]
	hw, hl := obstacleHalfSize(o.Kind)
	return BoxAt(o.X, o.Z, hw, hl, 0, 1.5)
}

func (os *ObstacleSystem) FreeCount(k ObstacleKind) int {
	return len(os.free[k])
}

func (os *ObstacleSystem) Reset() {
	for len(os.Active) > 0 {
		os.release(0)
	}
	os.interval = os.cfg.ObstacleInterval
	os.timer = os.interval
}
