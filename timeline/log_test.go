package timeline

import (
	"errors"
	"sync"
	"testing"

	"github.com/inada-s/gv-sdl/command"
	"github.com/inada-s/gv-sdl/geom"
)

var (
	red  = command.Color{R: 255, A: 255}
	blue = command.Color{B: 255, A: 255}
)

func TestNewLog(t *testing.T) {
	l := NewLog()
	c := l.Cursor()
	if !c.AutoFollow || c.Selected != 0 {
		t.Errorf("initial cursor = %+v, want {Selected:0 AutoFollow:true}", c)
	}
	if st := l.Stats(); st != (Stats{}) {
		t.Errorf("Stats() = %+v, want zero", st)
	}
}

func TestFlushLengthAccounting(t *testing.T) {
	tests := []struct {
		name       string
		cmds       []command.Command
		wantFrames int
	}{
		{"empty", nil, 0},
		{"no marker", []command.Command{
			command.Circle{Center: command.Pt(1, 1), Radius: 1, Color: red},
		}, 0},
		{"marker first", []command.Command{
			command.FrameMarker{Timestamp: 0},
			command.Polygon{Vertices: []command.Point{{0, 0}, {1, 1}, {1, 0}}, Color: red},
		}, 1},
		{"text only", []command.Command{
			command.Text{Text: "héllo", Size: 3},
		}, 0},
		{"markers after a record", []command.Command{
			command.Polygon{Vertices: []command.Point{{0, 0}, {1, 1}, {1, 0}}, Color: red},
			command.FrameMarker{Timestamp: 1},
			command.FrameMarker{Timestamp: 2},
		}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLog()
			// Pre-existing content.
			l.NewTime()
			l.Append(command.Circle{Radius: 2})
			l.Flush()

			before := l.Stats()
			for _, c := range tt.cmds {
				l.Append(c)
			}
			staged := l.Staged()
			if n := l.Flush(); n != staged {
				t.Errorf("Flush() = %d, want %d", n, staged)
			}
			after := l.Stats()
			if after.Bytes != before.Bytes+staged {
				t.Errorf("log bytes = %d, want %d + %d", after.Bytes, before.Bytes, staged)
			}
			if after.Frames-before.Frames != tt.wantFrames {
				t.Errorf("frames added = %d, want %d", after.Frames-before.Frames, tt.wantFrames)
			}
			if l.Staged() != 0 {
				t.Errorf("Staged() = %d after Flush, want 0", l.Staged())
			}
		})
	}
}

func TestIndexPointsAtMarkers(t *testing.T) {
	l := NewLog()
	for i := 0; i < 5; i++ {
		l.NewTime()
		l.AppendText(command.Pt(0, 0), 1, red, "x")
		if i%2 == 0 {
			l.Flush()
		}
	}
	l.Flush()

	s := l.Snapshot()
	if s.FrameCount() != 5 {
		t.Fatalf("FrameCount() = %d, want 5", s.FrameCount())
	}
	for i, off := range s.Index {
		if command.Tag(s.Data[off]) != command.TagFrameMarker {
			t.Errorf("Index[%d] = %d points at %q", i, off, s.Data[off])
		}
	}
}

func TestFlushIndexesEveryStagedMarker(t *testing.T) {
	l := NewLog()
	l.AppendPolygon([]command.Point{{0, 0}, {1, 1}, {1, 0}}, red)
	l.Append(command.FrameMarker{Timestamp: 0})
	l.AppendCircle(command.Pt(2, 2), 1, blue)
	l.Append(command.FrameMarker{Timestamp: 1})
	l.Flush()

	s := l.Snapshot()
	if s.FrameCount() != 2 {
		t.Fatalf("FrameCount() = %d, want 2", s.FrameCount())
	}
	for i, off := range s.Index {
		if command.Tag(s.Data[off]) != command.TagFrameMarker {
			t.Errorf("Index[%d] = %d points at %q", i, off, s.Data[off])
		}
	}

	f0, err := s.Commands(0)
	if err != nil {
		t.Fatalf("Commands(0) error = %v", err)
	}
	if len(f0) != 2 || f0[0] != (command.FrameMarker{Timestamp: 0}) || f0[1].Tag() != command.TagCircle {
		t.Errorf("frame 0 = %v, want marker 0 and the circle", f0)
	}
	f1, err := s.Commands(1)
	if err != nil {
		t.Fatalf("Commands(1) error = %v", err)
	}
	if len(f1) != 1 || f1[0] != (command.FrameMarker{Timestamp: 1}) {
		t.Errorf("frame 1 = %v, want only marker 1", f1)
	}
}

func TestNewTimeTimestamps(t *testing.T) {
	l := NewLog()
	for want := 0.0; want < 4; want++ {
		if got := l.NewTime(); got != want {
			t.Errorf("NewTime() = %v, want %v", got, want)
		}
	}
	l.Flush()

	s := l.Snapshot()
	for i := 0; i < s.FrameCount(); i++ {
		cmds, err := s.Commands(i)
		if err != nil {
			t.Fatalf("Commands(%d) error = %v", i, err)
		}
		m, ok := cmds[0].(command.FrameMarker)
		if !ok || m.Timestamp != float64(i) {
			t.Errorf("frame %d marker = %#v, want timestamp %d", i, cmds[0], i)
		}
	}
}

// Scenario: two frames, one line and one circle.
func TestScenarioTwoFrames(t *testing.T) {
	l := NewLog()

	l.NewTime()
	pts, err := geom.Line(0, 0, 10, 0, 1)
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	l.AppendPolygon(pts, red)
	l.Flush()

	l.NewTime()
	l.AppendCircle(command.Pt(5, 5), 3, blue)
	l.Flush()

	s := l.Snapshot()
	all, err := command.DecodeAll(s.Data)
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}
	markers := 0
	for _, c := range all {
		if c.Tag() == command.TagFrameMarker {
			markers++
		}
	}
	if markers != 2 {
		t.Errorf("log holds %d frame markers, want 2", markers)
	}

	f0, err := s.Commands(0)
	if err != nil {
		t.Fatalf("Commands(0) error = %v", err)
	}
	if len(f0) != 2 || f0[1].Tag() != command.TagPolygon {
		t.Errorf("frame 0 = %v, want marker + one polygon", f0)
	}
	f1, err := s.Commands(1)
	if err != nil {
		t.Fatalf("Commands(1) error = %v", err)
	}
	if len(f1) != 2 || f1[1].Tag() != command.TagCircle {
		t.Errorf("frame 1 = %v, want marker + one circle", f1)
	}
	if s.Cursor.Selected != 1 {
		t.Errorf("auto-follow Selected = %d, want 1", s.Cursor.Selected)
	}
}

func TestFrameOutOfRange(t *testing.T) {
	s := NewLog().Snapshot()
	if _, err := s.Frame(0); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Frame(0) on empty log error = %v, want ErrNoFrame", err)
	}
	if _, err := s.Selected(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Selected() on empty log error = %v, want ErrNoFrame", err)
	}
}

func TestCorruptFrame(t *testing.T) {
	l := NewLog()
	l.NewTime()
	l.AppendCircle(command.Pt(0, 0), 1, red)
	l.Flush()

	s := l.Snapshot()
	// Truncate mid-record.
	s.Data = s.Data[:len(s.Data)-3]
	cmds, err := s.Commands(0)
	if !errors.Is(err, command.ErrCorruptLog) {
		t.Fatalf("Commands() error = %v, want ErrCorruptLog", err)
	}
	if len(cmds) != 1 {
		t.Errorf("decoded %d records before the error, want 1", len(cmds))
	}

	// Index pointing at a non-marker.
	s = l.Snapshot()
	s.Index = []int{1}
	if _, err := s.Frame(0); !errors.Is(err, command.ErrCorruptLog) {
		t.Errorf("Frame() error = %v, want ErrCorruptLog", err)
	}
}

func TestScrubClamp(t *testing.T) {
	l := NewLog()
	for i := 0; i < 3; i++ {
		l.NewTime()
	}
	l.Flush()

	if c := l.Cursor(); c.Selected != 2 || !c.AutoFollow {
		t.Fatalf("cursor = %+v, want newest frame in auto-follow", c)
	}

	moves := []int{-1, -1, -1, -1, 1, 1, 1, 1, 1, -5, 7}
	for _, d := range moves {
		c := l.Scrub(d)
		if c.AutoFollow {
			t.Fatal("auto-follow still on after scrub")
		}
		if c.Selected < 0 || c.Selected > 2 {
			t.Fatalf("Selected = %d out of [0, 2]", c.Selected)
		}
	}
	if c := l.Cursor(); c.Selected != 2 {
		t.Errorf("Selected = %d, want 2", c.Selected)
	}

	// Commits no longer move the cursor.
	l.ScrubLeft()
	l.NewTime()
	l.Flush()
	if c := l.Cursor(); c.Selected != 1 || c.AutoFollow {
		t.Errorf("cursor after commit = %+v, want {1 false}", c)
	}

	if c := l.Follow(); c.Selected != 3 || !c.AutoFollow {
		t.Errorf("Follow() = %+v, want {3 true}", c)
	}
}

func TestScrubEmpty(t *testing.T) {
	l := NewLog()
	if c := l.ScrubRight(); c.Selected != 0 || c.AutoFollow {
		t.Errorf("ScrubRight() on empty log = %+v, want {0 false}", c)
	}
	if c := l.Follow(); c.Selected != 0 {
		t.Errorf("Follow() on empty log = %+v", c)
	}
}

// The producer appends while a reader decodes snapshots; run with -race.
func TestConcurrentProducerConsumer(t *testing.T) {
	l := NewLog()
	const steps = 500

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < steps; i++ {
			l.NewTime()
			pts, _ := geom.Arrow(0, 0, float64(i+1), 5, 1)
			l.AppendPolygon(pts, red)
			l.AppendText(command.Pt(1, 1), 3, blue, "step")
			l.Flush()
		}
	}()

	reads := 0
	for {
		s := l.Snapshot()
		if s.FrameCount() > 0 {
			cmds, err := s.Commands(s.Cursor.Selected)
			if err != nil {
				t.Fatalf("Commands() error = %v", err)
			}
			if cmds[0].Tag() != command.TagFrameMarker {
				t.Fatalf("frame starts with %v", cmds[0].Tag())
			}
			reads++
		}
		select {
		case <-done:
			wg.Wait()
			if st := l.Stats(); st.Frames != steps {
				t.Errorf("Frames = %d, want %d", st.Frames, steps)
			}
			return
		default:
		}
	}
}
