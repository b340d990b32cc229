package timeline

import (
	"sync"

	"github.com/inada-s/gv-sdl/command"
	"github.com/inada-s/gv-sdl/internal/logging"
)

// Log is the append-only command log with its frame index.
//
// The zero value is not ready for use; create logs with NewLog.
type Log struct {
	// Producer-owned: never touched by readers.
	staging       []byte
	stagedMarkers []int // staging-relative offsets of FrameMarker records
	clock         float64

	mu     sync.Mutex
	data   []byte
	index  []int
	cursor Cursor
}

// NewLog creates an empty log in auto-follow mode on frame 0.
func NewLog() *Log {
	return &Log{
		staging: make([]byte, 0, 4096),
		data:    make([]byte, 0, 64*1024),
		index:   make([]int, 0, 256),
		cursor:  Cursor{AutoFollow: true},
	}
}

// Append encodes cmd into the staging buffer. The record becomes visible
// to readers on the next Flush. Producer only; no lock is taken.
func (l *Log) Append(cmd command.Command) {
	off := len(l.staging)
	l.staging = command.Append(l.staging, cmd)
	if len(l.staging) > off && command.Tag(l.staging[off]) == command.TagFrameMarker {
		l.stagedMarkers = append(l.stagedMarkers, off)
	}
}

// AppendPolygon stages a Polygon record.
func (l *Log) AppendPolygon(vertices []command.Point, c command.Color) {
	l.staging = command.AppendPolygon(l.staging, vertices, c)
}

// AppendCircle stages a Circle record.
func (l *Log) AppendCircle(center command.Point, radius float64, c command.Color) {
	l.staging = command.AppendCircle(l.staging, center, radius, c)
}

// AppendText stages a Text record.
func (l *Log) AppendText(pos command.Point, size float64, c command.Color, s string) {
	l.staging = command.AppendText(l.staging, pos, size, c, s)
}

// Staged returns the number of bytes waiting for the next Flush.
func (l *Log) Staged() int {
	return len(l.staging)
}

// Flush commits the staging buffer to the log and returns the number of
// bytes committed. Every staged FrameMarker is added to the frame index;
// a span without a marker is committed but adds no frame. In auto-follow
// mode the cursor moves to the newest frame.
func (l *Log) Flush() int {
	n := len(l.staging)
	if n == 0 {
		return 0
	}

	l.mu.Lock()
	base := len(l.data)
	l.data = append(l.data, l.staging...)
	for _, off := range l.stagedMarkers {
		l.index = append(l.index, base+off)
	}
	frames := len(l.index)
	l.cursor.committed(frames)
	l.mu.Unlock()

	// Readers hold slices of l.data, never of the staging buffer, so it
	// can be reused.
	l.staging = l.staging[:0]
	l.stagedMarkers = l.stagedMarkers[:0]

	logging.Logger().Debug("timeline: flush", "bytes", n, "offset", base, "frames", frames)
	return n
}

// NewTime flushes pending records and opens a new frame. It returns the
// timestamp of the new frame's marker: 0 for the first call, then 1, 2, ...
func (l *Log) NewTime() float64 {
	l.Flush()
	ts := l.clock
	l.clock++
	l.Append(command.FrameMarker{Timestamp: ts})
	return ts
}

// Snapshot captures the committed log, the frame index and the cursor.
// The returned slices alias the log's storage and must not be modified.
func (l *Log) Snapshot() Snapshot {
	l.mu.Lock()
	s := Snapshot{
		Data:   l.data[:len(l.data):len(l.data)],
		Index:  l.index[:len(l.index):len(l.index)],
		Cursor: l.cursor,
	}
	l.mu.Unlock()
	return s
}

// Cursor returns the current playback cursor.
func (l *Log) Cursor() Cursor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

// Scrub moves the cursor by delta frames and leaves auto-follow mode.
// The selected frame is clamped to the committed frames.
func (l *Log) Scrub(delta int) Cursor {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cursor.scrub(delta, len(l.index))
	return l.cursor
}

// ScrubLeft selects the previous frame.
func (l *Log) ScrubLeft() Cursor { return l.Scrub(-1) }

// ScrubRight selects the next frame.
func (l *Log) ScrubRight() Cursor { return l.Scrub(1) }

// Follow re-enters auto-follow mode and selects the newest frame.
// Auto-follow is never re-entered implicitly.
func (l *Log) Follow() Cursor {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cursor.follow(len(l.index))
	return l.cursor
}

// Stats describes the size of a log.
type Stats struct {
	// Bytes is the committed log size.
	Bytes int
	// Frames is the number of committed frame markers.
	Frames int
}

// Stats returns the committed size of the log.
func (l *Log) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats{Bytes: len(l.data), Frames: len(l.index)}
}
