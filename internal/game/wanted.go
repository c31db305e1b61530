package game

import "math"

// WantedSystem raises the heat level from survival time and keeps the chaser
// roster filled to match it. The level only ever climbs within a run.
type WantedSystem struct {
	Level        int
	SurvivalTime float64

	cfg    *Config
	rnd    *Rand
	events *EventQueue

	spawnTimer float64
}

func NewWantedSystem(cfg *Config, rnd *Rand, events *EventQueue) *WantedSystem {
	return &WantedSystem{
		cfg:        cfg,
		rnd:        rnd,
		events:     events,
		spawnTimer: cfg.SpawnBaseInterval,
	}
}

func (ws *WantedSystem) Update(dt float64, p *Player, police *PoliceSystem) {
	if p.State == PlayerDead {
		return
	}
	ws.SurvivalTime += dt

	lvl := ws.levelFor(ws.SurvivalTime)
	if lvl > ws.Level {
		ws.Level = lvl
		ws.events.Emit(Event{Type: EventWantedIncreased, Value: lvl})
	}

	ws.spawnTimer -= dt
	if ws.spawnTimer > 0 {
		return
	}
	ws.spawnTimer = ws.interval()

	cap := ws.cfg.BasePoliceCount + (ws.Level-1)*ws.cfg.PolicePerLevel
	want := clamp(ws.Level, 1, 3)
	for i := 0; i < want && police.Count() < cap; i++ {
		ws.place(p, police)
	}
}

// levelFor maps survival time to the highest crossed threshold, capped.
func (ws *WantedSystem) levelFor(t float64) int {
	lvl := 0
	for i, th := range ws.cfg.WantedThresholds {
		if t >= th {
			lvl = i + 1
		}
	}
	return clamp(lvl, 0, ws.cfg.MaxWantedLevel)
}

// interval returns the spawn cadence, tightening with the level down to a
// floor.
func (ws *WantedSystem) interval() float64 {
	iv := ws.cfg.SpawnBaseInterval - float64(ws.Level-1)*ws.cfg.SpawnReduction
	return math.Max(iv, ws.cfg.SpawnMinInterval)
}

// place spawns one chaser: behind the player at low levels, at a random point
// on a surrounding ring once the level is high enough to encircle.
func (ws *WantedSystem) place(p *Player, police *PoliceSystem) {
	if ws.Level < ws.cfg.EncircleLevel {
		hx, hz := headingVec(p.Rotation)
		lat := ws.rnd.RangeF(-ws.cfg.SpawnLateralJitter, ws.cfg.SpawnLateralJitter)
		x := p.X - hx*ws.cfg.SpawnBehindDist + hz*lat
		z := p.Z - hz*ws.cfg.SpawnBehindDist - hx*lat
		police.Spawn(x, z, p.Rotation)
		return
	}
	ang := ws.rnd.RangeF(0, 2*math.Pi)
	r := ws.rnd.RangeF(ws.cfg.SpawnCircleMin, ws.cfg.SpawnCircleMax)
	x := p.X + math.Sin(ang)*r
	z := p.Z + math.Cos(ang)*r
	police.Spawn(x, z, math.Atan2(p.X-x, p.Z-z))
}

func (ws *WantedSystem) Reset() {
	ws.Level = 0
	ws.SurvivalTime = 0
	ws.spawnTimer = ws.cfg.SpawnBaseInterval
}
