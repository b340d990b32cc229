package player

import "iter"

// Key identifies a keyboard key the render loop reacts to.
type Key int

// Keys understood by the driver. Input sources map their native key codes
// to these; anything else is reported as KeyUnknown.
const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome // reset zoom and pan
	KeyEnd  // return to auto-follow
	KeyEscape
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// MouseButtons is a bit set of held mouse buttons.
type MouseButtons uint8

// Mouse buttons.
const (
	ButtonLeft MouseButtons = 1 << iota
	ButtonMiddle
	ButtonRight
)

// Event is implemented by all input events.
type Event interface {
	event()
}

// QuitEvent asks the render loop to stop.
type QuitEvent struct{}

// KeyDownEvent reports a key press.
type KeyDownEvent struct {
	Key Key
}

// MouseMotionEvent reports a pointer move to (X, Y) by (DX, DY) pixels.
type MouseMotionEvent struct {
	X, Y    float64
	DX, DY  float64
	Buttons MouseButtons
}

// MouseWheelEvent reports a wheel turn at (X, Y). Positive Direction is
// the wheel turned toward the user (zoom out).
type MouseWheelEvent struct {
	Direction float64
	X, Y      float64
}

func (QuitEvent) event()        {}
func (KeyDownEvent) event()     {}
func (MouseMotionEvent) event() {}
func (MouseWheelEvent) event()  {}

// InputSource produces the input events of one render tick.
type InputSource interface {
	// PollEvents returns the events pending since the last call. The
	// sequence is finite and is consumed once per tick.
	PollEvents() iter.Seq[Event]
}

// ScriptedInput is an InputSource fed from code, for headless runs and
// tests. Each Push call queues the events of one future tick.
type ScriptedInput struct {
	ticks [][]Event
}

// NewScriptedInput creates a scripted input; each argument is one tick.
func NewScriptedInput(ticks ...[]Event) *ScriptedInput {
	return &ScriptedInput{ticks: ticks}
}

// Push queues events for a future tick.
func (s *ScriptedInput) Push(events ...Event) {
	s.ticks = append(s.ticks, events)
}

// Pending returns the number of ticks still queued.
func (s *ScriptedInput) Pending() int {
	return len(s.ticks)
}

// PollEvents implements InputSource.
func (s *ScriptedInput) PollEvents() iter.Seq[Event] {
	var events []Event
	if len(s.ticks) > 0 {
		events, s.ticks = s.ticks[0], s.ticks[1:]
	}
	return func(yield func(Event) bool) {
		for _, e := range events {
			if !yield(e) {
				return
			}
		}
	}
}
