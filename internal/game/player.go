package game

import "math"

// PlayerState tags the player's life cycle. Transitions only move forward:
// Active -> Falling -> Dead, or Active -> Dead.
type PlayerState int

const (
	PlayerActive PlayerState = iota
	PlayerFalling
	PlayerDead
)

type boostPhase int

const (
	boostReady boostPhase = iota
	boostActive
	boostCooling
)

// Player is the pursued car. It always drives forward; the controls steer,
// and boost trades a burst of speed for a cooldown.
type Player struct {
	X, Y, Z  float64
	Rotation float64
	VX, VZ   float64

	// Knockback from collisions, decayed each tick, additive to drive velocity.
	KX, KZ float64

	Health           Health
	State            PlayerState
	DistanceTraveled float64

	boost      boostPhase
	boostTimer float64
	fallVY     float64

	cfg *Config
}

func NewPlayer(cfg *Config) *Player {
	return &Player{
		Health: NewHealth(cfg.PlayerMaxHealth),
		cfg:    cfg,
	}
}

func (p *Player) Update(dt float64, in InputState) {
	switch p.State {
	case PlayerDead:
		return
	case PlayerFalling:
		p.VX, p.VZ = 0, 0
		p.fallVY += p.cfg.Gravity * dt
		p.Y -= p.fallVY * dt
		p.Rotation = wrapAngle(p.Rotation + p.cfg.FallSpinRate*dt)
		if p.Y <= p.cfg.FallDeathY {
			p.Kill()
		}
		return
	}

	if in.Left {
		p.Rotation += p.cfg.RotationRate * dt
	}
	if in.Right {
		p.Rotation -= p.cfg.RotationRate * dt
	}
	p.Rotation = wrapAngle(p.Rotation)

	p.updateBoost(dt, in.Boost)

	speed := p.cfg.PlayerBaseSpeed
	if p.boost == boostActive {
		speed *= p.cfg.BoostMultiplier
	}

	sx, sz := headingVec(p.Rotation)
	p.VX = sx*speed + p.KX
	p.VZ = sz*speed + p.KZ

	p.X += p.VX * dt
	p.Z += p.VZ * dt
	p.DistanceTraveled += speed * dt

	p.decayKnock()
}

func (p *Player) updateBoost(dt float64, held bool) {
	switch p.boost {
	case boostReady:
		if held {
			p.boost = boostActive
			p.boostTimer = p.cfg.BoostDuration
		}
	case boostActive:
		p.boostTimer -= dt
		if p.boostTimer <= 0 {
			p.boost = boostCooling
			p.boostTimer = p.cfg.BoostCooldown
		}
	case boostCooling:
		p.boostTimer -= dt
		if p.boostTimer <= 0 {
			p.boost = boostReady
		}
	}
}

func (p *Player) decayKnock() {
	p.KX *= p.cfg.KnockRetention
	p.KZ *= p.cfg.KnockRetention
	if math.Abs(p.KX) < p.cfg.KnockMinSpeed {
		p.KX = 0
	}
	if math.Abs(p.KZ) < p.cfg.KnockMinSpeed {
		p.KZ = 0
	}
}

// Knock adds a collision impulse that fades over the following ticks.
func (p *Player) Knock(kx, kz float64) {
	p.KX += kx
	p.KZ += kz
}

func (p *Player) Boosting() bool {
	return p.boost == boostActive
}

func (p *Player) BoostReady() bool {
	return p.boost == boostReady
}

func (p *Player) Damage(amount int) {
	if p.State == PlayerDead {
		return
	}
	p.Health.Damage(amount)
	if p.Health.IsDead() {
		p.Kill()
	}
}

// StartFall drops the player into a hazard. Ignored unless currently active.
func (p *Player) StartFall() {
	if p.State != PlayerActive {
		return
	}
	p.State = PlayerFalling
}

func (p *Player) Kill() {
	p.State = PlayerDead
	p.VX, p.VZ = 0, 0
}

func (p *Player) Box() Box {
	return BoxAt(p.X, p.Z, p.cfg.PlayerWidth/2, p.cfg.PlayerLength/2, p.Y, p.Y+2)
}
