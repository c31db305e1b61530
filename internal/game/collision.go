package game

import "math"

// CollisionSystem resolves player-versus-world contacts. At most one damaging
// contact is resolved per tick, and a short cooldown follows so a single
// crash cannot drain the player over consecutive ticks. Capture and hazard
// falls are not damage and ignore the cooldown.
type CollisionSystem struct {
	cfg    *Config
	events *EventQueue

	cooldown float64
}

func NewCollisionSystem(cfg *Config, events *EventQueue) *CollisionSystem {
	return &CollisionSystem{cfg: cfg, events: events}
}

func (cs *CollisionSystem) Update(dt float64, p *Player, w *World, police *PoliceSystem, traffic *TrafficSystem, obs *ObstacleSystem) {
	if cs.cooldown > 0 {
		cs.cooldown -= dt
	}
	if p.State != PlayerActive {
		return
	}

	pb := p.Box()

	cs.checkNearMisses(p, pb, obs)

	if cs.cooldown <= 0 && cs.resolveObstacle(p, pb, obs) {
		return
	}
	if cs.cooldown <= 0 && cs.resolveBuilding(p, pb, w) {
		return
	}
	if cs.resolveChaser(p, pb, police) {
		return
	}
	if cs.cooldown <= 0 && cs.resolveTraffic(p, pb, traffic) {
		return
	}
	cs.resolveHazard(p, pb, w)
}

// checkNearMisses rewards passing close to an obstacle without touching it.
// It runs every tick regardless of the cooldown and fires once per obstacle.
func (cs *CollisionSystem) checkNearMisses(p *Player, pb Box, obs *ObstacleSystem) {
	hx, hz := headingVec(p.Rotation)
	for i, o := range obs.Active {
		if o.NearMissed {
			continue
		}
		dx := o.X - p.X
		dz := o.Z - p.Z
		// already passed?
		if dx*hx+dz*hz >= 0 {
			continue
		}
		d := math.Hypot(dx, dz)
		if d > cs.cfg.NearMissDist+cs.cfg.NearMissBand {
			continue
		}
		if obs.Box(i).Intersects(pb) {
			continue
		}
		o.NearMissed = true
		cs.events.Emit(Event{Type: EventNearMiss, Value: cs.cfg.NearMissBonus, X: o.X, Z: o.Z})
	}
}

func (cs *CollisionSystem) resolveObstacle(p *Player, pb Box, obs *ObstacleSystem) bool {
	for i := range obs.Active {
		ob := obs.Box(i)
		if !ob.Intersects(pb) {
			continue
		}
		o := obs.Active[i]
		kx, kz := awayFrom(p.X, p.Z, o.X, o.Z)
		p.Knock(kx*cs.cfg.BuildingPushOut, kz*cs.cfg.BuildingPushOut)
		p.Damage(cs.cfg.ObstacleDamage)
		cs.events.Emit(Event{Type: EventPlayerHitObstacle, Value: cs.cfg.ObstacleDamage, X: o.X, Z: o.Z})
		obs.Deactivate(i)
		cs.cooldown = cs.cfg.CollisionCooldown
		return true
	}
	return false
}

func (cs *CollisionSystem) resolveBuilding(p *Player, pb Box, w *World) bool {
	bb, hit := w.CollidesBuilding(pb, 0)
	if !hit {
		return false
	}

	// Push out along the axis with the smaller penetration ratio. Overlaps
	// are normalized by the player's extents so the 2x4 box does not bias
	// the axis choice.
	overlapX := math.Min(pb.X1, bb.X1) - math.Max(pb.X0, bb.X0)
	overlapZ := math.Min(pb.Z1, bb.Z1) - math.Max(pb.Z0, bb.Z0)
	ratioX := overlapX / (pb.X1 - pb.X0)
	ratioZ := overlapZ / (pb.Z1 - pb.Z0)
	dirX := 1.0
	if p.X < bb.CenterX() {
		dirX = -1
	}
	dirZ := 1.0
	if p.Z < bb.CenterZ() {
		dirZ = -1
	}
	if ratioX < ratioZ {
		p.X += dirX * overlapX
		p.Knock(dirX*cs.cfg.BuildingPushOut, 0)
	} else {
		p.Z += dirZ * overlapZ
		p.Knock(0, dirZ*cs.cfg.BuildingPushOut)
	}

	p.Damage(cs.cfg.BuildingDamage)
	cs.events.Emit(Event{Type: EventPlayerHitBuilding, Value: cs.cfg.BuildingDamage, X: p.X, Z: p.Z})
	cs.cooldown = cs.cfg.CollisionCooldown
	return true
}

// resolveChaser ends the run on contact with any police car, whatever the
// player's remaining health.
func (cs *CollisionSystem) resolveChaser(p *Player, pb Box, police *PoliceSystem) bool {
	for i := range police.Chasers {
		if !police.Box(i).Intersects(pb) {
			continue
		}
		c := &police.Chasers[i]
		kx, kz := awayFrom(p.X, p.Z, c.X, c.Z)
		p.Knock(kx*cs.cfg.BuildingPushOut, kz*cs.cfg.BuildingPushOut)
		p.Kill()
		cs.events.Emit(Event{Type: EventPlayerCaptured, X: p.X, Z: p.Z})
		return true
	}
	return false
}

func (cs *CollisionSystem) resolveTraffic(p *Player, pb Box, traffic *TrafficSystem) bool {
	for i := range traffic.Cars {
		if !traffic.Box(i).Intersects(pb) {
			continue
		}
		c := &traffic.Cars[i]
		kx, kz := awayFrom(p.X, p.Z, c.X, c.Z)
		p.Knock(kx*cs.cfg.BuildingPushOut*0.6, kz*cs.cfg.BuildingPushOut*0.6)
		p.Damage(cs.cfg.TrafficDamage)
		// shove the civilian too
		c.X -= kx * 1.5
		c.Z -= kz * 1.5
		c.Speed *= 0.5
		cs.events.Emit(Event{Type: EventPlayerHitTraffic, Value: cs.cfg.TrafficDamage, X: c.X, Z: c.Z})
		cs.cooldown = cs.cfg.CollisionCooldown
		return true
	}
	return false
}

func (cs *CollisionSystem) resolveHazard(p *Player, pb Box, w *World) {
	if _, hit := w.HazardHit(pb); hit {
		p.StartFall()
		cs.events.Emit(Event{Type: EventPlayerFell, X: p.X, Z: p.Z})
	}
}

// CooldownActive reports whether damaging contacts are currently suppressed.
func (cs *CollisionSystem) CooldownActive() bool {
	return cs.cooldown > 0
}

func (cs *CollisionSystem) Reset() {
	cs.cooldown = 0
}

// awayFrom returns the unit vector pointing from (ox,oz) toward (x,z).
func awayFrom(x, z, ox, oz float64) (float64, float64) {
	dx := x - ox
	dz := z - oz
	d := math.Hypot(dx, dz)
	if d == 0 {
		return 0, 1
	}
	return dx / d, dz / d
}
