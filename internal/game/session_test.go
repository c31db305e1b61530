package game

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(seed uint64) (*GameSession, *Loop) {
	cfg := testConfig()
	s := NewGameSession(cfg, seed)
	l := NewLoop(cfg, zerolog.Nop())
	s.Register(l)
	return s, l
}

func TestSessionStartsInMenu(t *testing.T) {
	s, l := newTestSession(42)
	assert.Equal(t, StateMenu, s.State)

	// menu frames leave the simulation untouched
	l.Frame(0.5)
	assert.Equal(t, 0.0, s.Player.DistanceTraveled)
}

func TestSessionRunProgresses(t *testing.T) {
	s, l := newTestSession(42)
	s.Start()
	require.Equal(t, StatePlaying, s.State)

	for i := 0; i < 60; i++ {
		l.Frame(1.0 / 60.0)
	}
	assert.Greater(t, s.Player.DistanceTraveled, 0.0)
	assert.Greater(t, s.Score, 0)
	assert.Equal(t, s.Score, s.HUD.Score)
	assert.GreaterOrEqual(t, s.HUD.WantedLevel, 1)
}

func TestSessionDeterministicForSeed(t *testing.T) {
	a, la := newTestSession(1234)
	b, lb := newTestSession(1234)
	a.Start()
	b.Start()

	for i := 0; i < 300; i++ {
		a.Input = InputState{Left: i%120 < 40}
		b.Input = InputState{Left: i%120 < 40}
		la.Frame(1.0 / 60.0)
		lb.Frame(1.0 / 60.0)
	}
	assert.Equal(t, a.Player.X, b.Player.X)
	assert.Equal(t, a.Player.Z, b.Player.Z)
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, len(a.Police.Chasers), len(b.Police.Chasers))
}

func TestSessionGameOverOnDeath(t *testing.T) {
	s, l := newTestSession(42)
	s.Start()

	var over []Event
	s.Events.Subscribe(EventGameOver, func(e Event) { over = append(over, e) })

	s.Player.Kill()
	l.Frame(1.0 / 60.0)
	assert.Equal(t, StateGameOver, s.State)
	require.Len(t, over, 1)

	// further frames do not emit again
	l.Frame(1.0 / 60.0)
	assert.Len(t, over, 1)
}

func TestSessionRestartIsFullReset(t *testing.T) {
	s, l := newTestSession(42)
	s.Start()
	for i := 0; i < 120; i++ {
		l.Frame(1.0 / 60.0)
	}
	s.Player.Kill()
	l.Frame(1.0 / 60.0)
	require.Equal(t, StateGameOver, s.State)

	s.Start()
	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 0.0, s.Player.DistanceTraveled)
	assert.Equal(t, PlayerActive, s.Player.State)
	assert.Equal(t, s.Player.Health.Max, s.Player.Health.Current)
	assert.Equal(t, 0.0, s.Wanted.SurvivalTime)
}

func TestSessionNearMissBonusCountsTowardScore(t *testing.T) {
	s, _ := newTestSession(42)
	s.Start()

	s.Events.Emit(Event{Type: EventNearMiss, Value: s.cfg.NearMissBonus})
	s.Events.Drain()
	assert.Equal(t, s.cfg.NearMissBonus, s.bonus)
}
