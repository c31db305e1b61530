package game

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"
)

// RunDesktop owns the window, the GL context and the frame loop. It blocks
// until the window closes.
func RunDesktop(cfg Config, log zerolog.Logger) error {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	if err := InitAudio(); err != nil {
		log.Warn().Err(err).Msg("audio init failed, continuing without sound")
	}

	// Seed from environment or clock.
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("PURSUIT_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}
	log.Info().Uint64("seed", seed).Msg("starting")

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	session := NewGameSession(&cfg, seed)
	BindEvents(session.Events)

	loop := NewLoop(&cfg, log)
	session.Register(loop)
	loop.SetRender(func(alpha float64) {
		rend.Draw(session)
	})

	input := NewInput(window)

	sirenTimer := 0.0
	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		elapsed := now - last
		last = now

		glfw.PollEvents()
		input.Poll()
		session.Input = input.State()

		if input.State().Quit {
			window.SetShouldClose(true)
		}
		if input.JustStarted() && session.State != StatePlaying {
			session.Start()
			loop.Reset()
			log.Info().Msg("run started")
		}
		if input.JustPaused() && session.State == StatePlaying {
			if loop.Paused() {
				loop.Resume()
				last = glfw.GetTime()
			} else {
				loop.Pause()
			}
		}

		loop.Frame(elapsed)

		// proximity siren, gain from the nearest chaser
		if session.State == StatePlaying && !loop.Paused() {
			sirenTimer -= elapsed
			if sirenTimer <= 0 {
				sirenTimer = 1.4
				if d := session.Police.Nearest(); d < 80 {
					PlaySoundWithGain(SoundSiren, 1-d/80)
				}
			}
		}

		window.SwapBuffers()
	}
	return nil
}
