package game

import "math"

// Camera follows the player from above with smoothing, plus a decaying shake
// kicked by collisions.
type Camera struct {
	X, Z   float64
	Height float64

	shakeTime float64
	shakeAmp  float64
	rnd       *Rand
}

func NewCamera(rnd *Rand) *Camera {
	return &Camera{Height: 120, rnd: rnd}
}

func (c *Camera) Update(dt float64, p *Player) {
	// exponential smoothing toward the player
	k := 1 - math.Pow(0.001, dt)
	c.X += (p.X - c.X) * k
	c.Z += (p.Z - c.Z) * k

	if c.shakeTime > 0 {
		c.shakeTime -= dt
	}
}

func (c *Camera) Shake(amp, dur float64) {
	if amp > c.shakeAmp || c.shakeTime <= 0 {
		c.shakeAmp = amp
	}
	c.shakeTime = dur
}

// EffectivePos is the camera position with shake applied.
func (c *Camera) EffectivePos() (float64, float64) {
	if c.shakeTime <= 0 {
		return c.X, c.Z
	}
	return c.X + c.rnd.RangeF(-c.shakeAmp, c.shakeAmp),
		c.Z + c.rnd.RangeF(-c.shakeAmp, c.shakeAmp)
}

func (c *Camera) Reset(x, z float64) {
	c.X, c.Z = x, z
	c.shakeTime = 0
}
