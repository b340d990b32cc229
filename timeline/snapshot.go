package timeline

import (
	"errors"
	"fmt"

	"github.com/inada-s/gv-sdl/command"
)

// ErrNoFrame is returned when a frame number is outside the snapshot.
var ErrNoFrame = errors.New("timeline: no such frame")

// Snapshot is a consistent, read-only view of a Log.
type Snapshot struct {
	// Data is the committed log.
	Data []byte
	// Index holds the offset of every FrameMarker in Data.
	Index []int
	// Cursor is the playback cursor at snapshot time.
	Cursor Cursor
}

// FrameCount returns the number of frames in the snapshot.
func (s Snapshot) FrameCount() int {
	return len(s.Index)
}

// Frame returns the records of frame i, starting with its FrameMarker and
// ending before the next marker or at the end of the snapshot.
func (s Snapshot) Frame(i int) ([]byte, error) {
	if i < 0 || i >= len(s.Index) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoFrame, i, len(s.Index))
	}
	start := s.Index[i]
	end := len(s.Data)
	if i+1 < len(s.Index) {
		end = s.Index[i+1]
	}
	if start < 0 || start > end || end > len(s.Data) {
		return nil, &command.CorruptLogError{Offset: start, Reason: "frame index out of range"}
	}
	if tag, _ := command.PeekTag(s.Data, start); tag != command.TagFrameMarker {
		return nil, &command.CorruptLogError{Offset: start, Tag: tag, Reason: "frame index does not point at a frame marker"}
	}
	return s.Data[start:end], nil
}

// Selected returns the records of the frame under the cursor.
func (s Snapshot) Selected() ([]byte, error) {
	return s.Frame(s.Cursor.Selected)
}

// Commands decodes frame i. On a decoding error the records decoded
// before it are returned together with the error.
func (s Snapshot) Commands(i int) ([]command.Command, error) {
	frame, err := s.Frame(i)
	if err != nil {
		return nil, err
	}
	cmds, err := command.DecodeAll(frame)
	if err != nil {
		return cmds, fmt.Errorf("timeline: frame %d: %w", i, err)
	}
	return cmds, nil
}
