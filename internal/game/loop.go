package game

import (
	"github.com/rs/zerolog"
)

type loopStep struct {
	name string
	fn   func(dt float64)
}

// Loop drives the simulation at a fixed timestep. Frame time is accumulated
// and consumed in whole steps; leftover time carries into the next frame. A
// frame longer than maxFrame is clamped so the loop cannot spiral.
type Loop struct {
	step     float64
	maxFrame float64
	acc      float64

	steps  []loopStep
	render func(alpha float64)

	paused bool
	Ticks  uint64

	log zerolog.Logger
}

func NewLoop(cfg *Config, log zerolog.Logger) *Loop {
	return &Loop{
		step:     cfg.FixedStep,
		maxFrame: cfg.MaxFrameTime,
		log:      log,
	}
}

// AddStep registers a named update callback. Steps run in registration order
// every tick.
func (l *Loop) AddStep(name string, fn func(dt float64)) {
	l.steps = append(l.steps, loopStep{name: name, fn: fn})
}

func (l *Loop) SetRender(fn func(alpha float64)) {
	l.render = fn
}

// Frame advances the simulation by the elapsed wall-clock seconds.
func (l *Loop) Frame(elapsed float64) {
	if l.paused {
		if l.render != nil {
			l.render(0)
		}
		return
	}
	if elapsed > l.maxFrame {
		elapsed = l.maxFrame
	}
	l.acc += elapsed
	for l.acc >= l.step {
		l.acc -= l.step
		l.tick()
	}
	if l.render != nil {
		l.render(l.acc / l.step)
	}
}

func (l *Loop) tick() {
	l.Ticks++
	for _, s := range l.steps {
		l.runStep(s)
	}
}

// runStep isolates each callback so one panicking system logs and skips
// instead of taking the loop down.
func (l *Loop) runStep(s loopStep) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Str("step", s.name).Interface("panic", r).Msg("step panicked")
		}
	}()
	s.fn(l.step)
}

// Pause stops ticking; Resume must be paired with a wall-clock reset by the
// caller so the paused span is not replayed.
func (l *Loop) Pause()       { l.paused = true }
func (l *Loop) Resume()      { l.paused = false }
func (l *Loop) Paused() bool { return l.paused }

// Reset clears accumulated time, for state transitions and resume.
func (l *Loop) Reset() {
	l.acc = 0
}
