package timeline

// Cursor is the playback position.
type Cursor struct {
	// Selected is the frame shown by the render loop.
	Selected int
	// AutoFollow keeps Selected on the newest frame after every commit.
	AutoFollow bool
}

// scrub moves the cursor by delta frames, leaving auto-follow mode and
// clamping the result to [0, frames-1].
func (c *Cursor) scrub(delta, frames int) {
	c.AutoFollow = false
	c.Selected = clamp(c.Selected+delta, 0, frames-1)
}

// follow re-enters auto-follow mode on the newest frame.
func (c *Cursor) follow(frames int) {
	c.AutoFollow = true
	c.Selected = clamp(frames-1, 0, frames-1)
}

// committed is called after frames were added to the index.
func (c *Cursor) committed(frames int) {
	if c.AutoFollow && frames > 0 {
		c.Selected = frames - 1
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
