package game

import "github.com/go-gl/glfw/v3.3/glfw"

// InputState is the sampled control state for one tick. The simulation only
// reads this struct, so tests can drive it directly.
type InputState struct {
	Left    bool
	Right   bool
	Forward bool
	Back    bool
	Boost   bool
	Start   bool
	Pause   bool
	Quit    bool
}

// Input samples the keyboard once per frame and exposes edge-detected
// "just pressed" state for keys that must not auto-repeat.
type Input struct {
	window *glfw.Window

	state InputState
	prev  InputState
}

func NewInput(window *glfw.Window) *Input {
	return &Input{window: window}
}

func (in *Input) Poll() {
	in.prev = in.state
	w := in.window
	in.state = InputState{
		Left:    keyDown(w, glfw.KeyLeft) || keyDown(w, glfw.KeyA),
		Right:   keyDown(w, glfw.KeyRight) || keyDown(w, glfw.KeyD),
		Forward: keyDown(w, glfw.KeyUp) || keyDown(w, glfw.KeyW),
		Back:    keyDown(w, glfw.KeyDown) || keyDown(w, glfw.KeyS),
		Boost:   keyDown(w, glfw.KeyLeftShift) || keyDown(w, glfw.KeyRightShift),
		Start:   keyDown(w, glfw.KeySpace),
		Pause:   keyDown(w, glfw.KeyP),
		Quit:    keyDown(w, glfw.KeyEscape),
	}
}

func (in *Input) State() InputState {
	return in.state
}

// JustStarted reports a space press edge.
func (in *Input) JustStarted() bool {
	return in.state.Start && !in.prev.Start
}

func (in *Input) JustPaused() bool {
	return in.state.Pause && !in.prev.Pause
}

func keyDown(w *glfw.Window, k glfw.Key) bool {
	return w.GetKey(k) == glfw.Press
}
