package sdl

import (
	sdl2 "github.com/veandco/go-sdl2/sdl"

	"github.com/inada-s/gv-sdl/player"
)

// translate maps an SDL event to a player event.
func translate(ev sdl2.Event) (player.Event, bool) {
	switch e := ev.(type) {
	case *sdl2.QuitEvent:
		return player.QuitEvent{}, true

	case *sdl2.KeyboardEvent:
		if e.Type != sdl2.KEYDOWN {
			return nil, false
		}
		k := mapKey(e.Keysym.Sym)
		if k == player.KeyUnknown {
			return nil, false
		}
		return player.KeyDownEvent{Key: k}, true

	case *sdl2.MouseMotionEvent:
		return player.MouseMotionEvent{
			X:       float64(e.X),
			Y:       float64(e.Y),
			DX:      float64(e.XRel),
			DY:      float64(e.YRel),
			Buttons: mapButtons(e.State),
		}, true

	case *sdl2.MouseWheelEvent:
		if e.Y == 0 {
			return nil, false
		}
		// Wheel away from the user (positive Y) zooms in.
		dir := -float64(e.Y)
		if e.Direction == sdl2.MOUSEWHEEL_FLIPPED {
			dir = -dir
		}
		x, y, _ := sdl2.GetMouseState()
		return player.MouseWheelEvent{Direction: dir, X: float64(x), Y: float64(y)}, true
	}
	return nil, false
}

func mapKey(k sdl2.Keycode) player.Key {
	switch k {
	case sdl2.K_LEFT:
		return player.KeyLeft
	case sdl2.K_RIGHT:
		return player.KeyRight
	case sdl2.K_UP:
		return player.KeyUp
	case sdl2.K_DOWN:
		return player.KeyDown
	case sdl2.K_HOME:
		return player.KeyHome
	case sdl2.K_END, sdl2.K_f:
		return player.KeyEnd
	case sdl2.K_ESCAPE:
		return player.KeyEscape
	default:
		return player.KeyUnknown
	}
}

// buttonMask is SDL_BUTTON(n).
func buttonMask(n uint32) uint32 {
	return 1 << (n - 1)
}

func mapButtons(state uint32) player.MouseButtons {
	var b player.MouseButtons
	if state&buttonMask(sdl2.BUTTON_LEFT) != 0 {
		b |= player.ButtonLeft
	}
	if state&buttonMask(sdl2.BUTTON_MIDDLE) != 0 {
		b |= player.ButtonMiddle
	}
	if state&buttonMask(sdl2.BUTTON_RIGHT) != 0 {
		b |= player.ButtonRight
	}
	return b
}
