package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoliceSpawnBuffered(t *testing.T) {
	cfg := testConfig()
	ps := NewPoliceSystem(cfg, NewRand(1))
	p := NewPlayer(cfg)
	w := NewWorld(cfg, 42)

	ps.Spawn(0, -30, 0)
	ps.Spawn(10, -30, 0)
	assert.Empty(t, ps.Chasers)
	assert.Equal(t, 2, ps.Count())

	ps.Update(cfg.FixedStep, p, w)
	assert.Len(t, ps.Chasers, 2)
	assert.Equal(t, 2, ps.Count())
}

func TestPoliceClosesOnPlayer(t *testing.T) {
	cfg := testConfig()
	ps := NewPoliceSystem(cfg, NewRand(1))
	p := NewPlayer(cfg)
	w := NewWorld(cfg, 42)

	// on the road grid, straight behind the player
	ps.Spawn(0, -100, 0)
	ps.Update(cfg.FixedStep, p, w)
	start := ps.Chasers[0].DistanceToPlayer

	for i := 0; i < 120; i++ {
		ps.Update(cfg.FixedStep, p, w)
	}
	assert.Less(t, ps.Chasers[0].DistanceToPlayer, start)
}

func TestPoliceBuildingBounce(t *testing.T) {
	cfg := testConfig()
	ps := NewPoliceSystem(cfg, NewRand(1))
	p := NewPlayer(cfg)
	w := NewWorld(cfg, 42)

	var b *Building
	for ti := range w.Tiles {
		if len(w.Tiles[ti].Buildings) > 0 {
			b = &w.Tiles[ti].Buildings[0]
			break
		}
	}
	require.NotNil(t, b)

	ps.Spawn(b.X, b.Z, 0)
	ps.Update(cfg.FixedStep, p, w)

	c := &ps.Chasers[0]
	// movement into the building was rolled back and speed shed
	assert.Equal(t, b.X, c.X)
	assert.Equal(t, b.Z, c.Z)
	assert.Less(t, c.Speed, cfg.ChaserFloorSpeed)
}

func TestPoliceCutoffExpires(t *testing.T) {
	cfg := testConfig()
	ps := NewPoliceSystem(cfg, NewRand(1))
	p := NewPlayer(cfg)
	w := NewWorld(cfg, 42)

	ps.Spawn(0, -100, 0)
	ps.Update(cfg.FixedStep, p, w)
	ps.Chasers[0].Mode = ModeCutoff
	ps.Chasers[0].BlockTimer = 0.01

	ps.Update(cfg.FixedStep, p, w)
	assert.Equal(t, ModePursue, ps.Chasers[0].Mode)
}

func TestPoliceSeparation(t *testing.T) {
	cfg := testConfig()
	cfg.WanderAmplitude = 0
	ps := NewPoliceSystem(cfg, NewRand(1))
	p := NewPlayer(cfg)
	p.Z = -200
	w := NewWorld(cfg, 42)

	ps.Spawn(0, 0, math.Pi)
	ps.Spawn(1, 0, math.Pi)
	ps.Update(cfg.FixedStep, p, w)
	// strip the flanking bias so only the separation term can split them
	for i := range ps.Chasers {
		ps.Chasers[i].OffsetLateral = 0
		ps.Chasers[i].OffsetForward = 0
	}

	before := math.Hypot(ps.Chasers[1].X-ps.Chasers[0].X, ps.Chasers[1].Z-ps.Chasers[0].Z)
	require.Less(t, before, cfg.SeparationRadius)

	for i := 0; i < 120; i++ {
		ps.Update(cfg.FixedStep, p, w)
	}
	after := math.Hypot(ps.Chasers[1].X-ps.Chasers[0].X, ps.Chasers[1].Z-ps.Chasers[0].Z)
	assert.Greater(t, after, before)
}

func TestPoliceSpeedPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.CutoffChance = 0

	cases := []struct {
		name   string
		dist   float64
		cutoff bool
		want   float64
	}{
		{"far chasers sprint", cfg.FlankFarDist + 20, false, cfg.ChaserCatchSpeed},
		{"cutoff sprints even when close", cfg.FlankNearDist + 5, true, cfg.ChaserCatchSpeed},
		{"point blank drops to the floor", cfg.FlankNearDist - 3, false, cfg.ChaserFloorSpeed},
		{"mid range shadows the player", (cfg.FlankNearDist + cfg.FlankFarDist) / 2, false, cfg.PlayerBaseSpeed + cfg.ChaserSpeedMargin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ps := NewPoliceSystem(cfg, NewRand(1))
			p := NewPlayer(cfg)
			w := NewWorld(cfg, 42)
			p.Update(cfg.FixedStep, InputState{})

			ps.Spawn(p.X, p.Z-tc.dist, 0)
			ps.Update(cfg.FixedStep, p, w)
			for i := 0; i < 150; i++ {
				// hold the chaser at a fixed range so the speed converges
				c := &ps.Chasers[0]
				c.X, c.Z = p.X, p.Z-tc.dist
				if tc.cutoff {
					c.Mode = ModeCutoff
					c.BlockTimer = 1
				} else {
					c.Mode = ModePursue
				}
				ps.Update(cfg.FixedStep, p, w)
			}
			assert.InDelta(t, tc.want, ps.Chasers[0].Speed, 0.5)
		})
	}
}

func TestPoliceSpawnOffsetsRandomized(t *testing.T) {
	cfg := testConfig()
	ps := NewPoliceSystem(cfg, NewRand(7))
	for i := 0; i < 4; i++ {
		ps.Spawn(0, 0, 0)
	}

	mags := make(map[float64]bool)
	for i := range ps.pending {
		c := &ps.pending[i]
		assert.GreaterOrEqual(t, math.Abs(c.OffsetLateral), cfg.SeparationRadius)
		assert.LessOrEqual(t, math.Abs(c.OffsetLateral), cfg.SeparationRadius*3)
		assert.LessOrEqual(t, math.Abs(c.OffsetForward), cfg.SeparationRadius)
		mags[math.Abs(c.OffsetLateral)] = true
	}
	assert.Greater(t, len(mags), 1, "offset magnitudes vary per spawn")

	// same seed, same rolls
	ps2 := NewPoliceSystem(cfg, NewRand(7))
	ps2.Spawn(0, 0, 0)
	assert.Equal(t, ps.pending[0].OffsetLateral, ps2.pending[0].OffsetLateral)
	assert.Equal(t, ps.pending[0].OffsetForward, ps2.pending[0].OffsetForward)
}

func TestPoliceAlternatingFlankSides(t *testing.T) {
	cfg := testConfig()
	ps := NewPoliceSystem(cfg, NewRand(1))

	ps.Spawn(0, 0, 0)
	ps.Spawn(0, 0, 0)
	assert.True(t, ps.pending[0].OffsetLateral*ps.pending[1].OffsetLateral < 0,
		"consecutive spawns should flank opposite sides")
}

func TestPoliceReset(t *testing.T) {
	cfg := testConfig()
	ps := NewPoliceSystem(cfg, NewRand(1))
	ps.Spawn(0, 0, 0)
	ps.Update(cfg.FixedStep, NewPlayer(cfg), NewWorld(cfg, 42))

	ps.Reset()
	assert.Empty(t, ps.Chasers)
	assert.Equal(t, 0, ps.Count())
}
