package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collisionFixture struct {
	cfg       *Config
	events    *EventQueue
	player    *Player
	world     *World
	police    *PoliceSystem
	traffic   *TrafficSystem
	obstacles *ObstacleSystem
	system    *CollisionSystem

	fired []Event
}

// newCollisionFixture places the player at the origin, which sits on a road
// crossing with no buildings or hazards.
func newCollisionFixture(t *testing.T) *collisionFixture {
	t.Helper()
	cfg := testConfig()
	cfg.TrafficCount = 0

	f := &collisionFixture{
		cfg:       cfg,
		events:    NewEventQueue(),
		player:    NewPlayer(cfg),
		world:     NewWorld(cfg, 42),
		police:    NewPoliceSystem(cfg, NewRand(1)),
		traffic:   NewTrafficSystem(cfg, NewRand(2)),
		obstacles: NewObstacleSystem(cfg, NewRand(3)),
	}
	f.system = NewCollisionSystem(cfg, f.events)
	for _, et := range []EventType{
		EventPlayerHitObstacle, EventPlayerHitBuilding, EventPlayerHitTraffic,
		EventPlayerCaptured, EventPlayerFell, EventNearMiss,
	} {
		f.events.Subscribe(et, func(e Event) { f.fired = append(f.fired, e) })
	}
	return f
}

func (f *collisionFixture) step() {
	f.system.Update(f.cfg.FixedStep, f.player, f.world, f.police, f.traffic, f.obstacles)
	f.events.Drain()
}

// placeObstacle activates an obstacle of the given kind at (x, z).
func (f *collisionFixture) placeObstacle(t *testing.T, k ObstacleKind, x, z float64) {
	t.Helper()
	o := f.obstacles.take(k)
	require.NotNil(t, o)
	o.X, o.Z = x, z
	o.Moving = false
	o.NearMissed = false
	f.obstacles.Active = append(f.obstacles.Active, o)
}

func TestCollisionObstacleHit(t *testing.T) {
	f := newCollisionFixture(t)
	f.placeObstacle(t, KindBarrel, f.player.X, f.player.Z)

	f.step()

	assert.Equal(t, f.cfg.PlayerMaxHealth-f.cfg.ObstacleDamage, f.player.Health.Current)
	assert.Empty(t, f.obstacles.Active, "hit obstacle returns to its pool")
	assert.Equal(t, f.cfg.ObstaclePoolSize, f.obstacles.FreeCount(KindBarrel))
	assert.True(t, f.system.CooldownActive())
	require.Len(t, f.fired, 1)
	assert.Equal(t, EventPlayerHitObstacle, f.fired[0].Type)
}

func TestCollisionCooldownSuppressesDamage(t *testing.T) {
	f := newCollisionFixture(t)
	f.placeObstacle(t, KindBarrel, f.player.X, f.player.Z)
	f.step()
	require.Equal(t, f.cfg.PlayerMaxHealth-f.cfg.ObstacleDamage, f.player.Health.Current)

	// a second overlapping obstacle does nothing while the cooldown runs
	f.placeObstacle(t, KindCone, f.player.X, f.player.Z)
	f.step()
	assert.Equal(t, f.cfg.PlayerMaxHealth-f.cfg.ObstacleDamage, f.player.Health.Current)
	assert.Len(t, f.obstacles.Active, 1)

	// once it lapses the next contact lands
	steps := int(f.cfg.CollisionCooldown/f.cfg.FixedStep) + 2
	for i := 0; i < steps; i++ {
		f.step()
	}
	assert.Equal(t, f.cfg.PlayerMaxHealth-2*f.cfg.ObstacleDamage, f.player.Health.Current)
}

func TestCollisionCaptureIgnoresCooldownAndHealth(t *testing.T) {
	f := newCollisionFixture(t)
	f.placeObstacle(t, KindBarrel, f.player.X, f.player.Z)
	f.step()
	require.True(t, f.system.CooldownActive())
	require.Equal(t, PlayerActive, f.player.State)

	f.police.Spawn(f.player.X, f.player.Z, 0)
	f.police.Update(f.cfg.FixedStep, f.player, f.world)
	// chaser drifted a hair during its update but still overlaps
	f.step()

	assert.Equal(t, PlayerDead, f.player.State)
	assert.Equal(t, EventPlayerCaptured, f.fired[len(f.fired)-1].Type)
	assert.True(t, f.player.KX != 0 || f.player.KZ != 0, "capture still shoves the wreck")
}

func TestCollisionBuildingPushOut(t *testing.T) {
	f := newCollisionFixture(t)

	var b *Building
	for ti := range f.world.Tiles {
		if len(f.world.Tiles[ti].Buildings) > 0 {
			b = &f.world.Tiles[ti].Buildings[0]
			break
		}
	}
	require.NotNil(t, b)

	// just inside the building's west face
	f.player.X = b.Box.X0 + 0.2
	f.player.Z = b.Z
	f.step()

	assert.Equal(t, f.cfg.PlayerMaxHealth-f.cfg.BuildingDamage, f.player.Health.Current)
	assert.False(t, f.player.Box().Intersects(b.Box), "player pushed clear")
	require.NotEmpty(t, f.fired)
	assert.Equal(t, EventPlayerHitBuilding, f.fired[0].Type)
}

func TestCollisionBuildingPushAxisNormalized(t *testing.T) {
	f := newCollisionFixture(t)

	var b *Building
	for ti := range f.world.Tiles {
		if len(f.world.Tiles[ti].Buildings) > 0 {
			b = &f.world.Tiles[ti].Buildings[0]
			break
		}
	}
	require.NotNil(t, b)

	// Clip the south-west corner so the raw x overlap (1.5) is smaller than
	// the raw z overlap (1.6), but the penetration ratio against the 2x4
	// player box is larger on x (0.75 vs 0.4). The push must go along z.
	f.player.X = b.Box.X0 + 0.5
	f.player.Z = b.Box.Z0 - 0.4
	startX := f.player.X
	f.step()

	assert.Equal(t, startX, f.player.X)
	assert.Less(t, f.player.Z, b.Box.Z0-1.9)
	assert.Equal(t, 0.0, f.player.KX)
	assert.NotZero(t, f.player.KZ)
}

func TestCollisionNearMissFiresOnce(t *testing.T) {
	f := newCollisionFixture(t)
	// just behind the player, off to the side, no overlap
	f.placeObstacle(t, KindCone, f.player.X+3, f.player.Z-2)

	f.step()
	require.Len(t, f.fired, 1)
	assert.Equal(t, EventNearMiss, f.fired[0].Type)
	assert.Equal(t, f.cfg.NearMissBonus, f.fired[0].Value)

	f.step()
	assert.Len(t, f.fired, 1, "near miss rewards only once per obstacle")
}

func TestCollisionNearMissNotAheadOfPlayer(t *testing.T) {
	f := newCollisionFixture(t)
	// close but still ahead; not yet passed
	f.placeObstacle(t, KindCone, f.player.X+3, f.player.Z+2)

	f.step()
	assert.Empty(t, f.fired)
}

func TestCollisionHazardFall(t *testing.T) {
	f := newCollisionFixture(t)

	var hz *Hazard
	for ti := range f.world.Tiles {
		if len(f.world.Tiles[ti].Hazards) > 0 {
			hz = &f.world.Tiles[ti].Hazards[0]
			break
		}
	}
	if hz == nil {
		t.Skip("seed produced no hazards in the start ring")
	}

	f.player.X = hz.Box.CenterX()
	f.player.Z = hz.Box.CenterZ()
	f.step()

	assert.Equal(t, PlayerFalling, f.player.State)
	require.Len(t, f.fired, 1)
	assert.Equal(t, EventPlayerFell, f.fired[0].Type)

	// falling players are out of the collision world
	f.step()
	assert.Len(t, f.fired, 1)
}
