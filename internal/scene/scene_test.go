package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/ivlev/algo2video/internal/system"
)

// countingSink counts frames and recycles buffers.
type countingSink struct {
	frames int
}

func (c *countingSink) WriteFrame(frame *image.RGBA) error {
	c.frames++
	system.PutImage(frame)

	return nil
}

func newTestScene(sink FrameSink) *Scene {
	return New(64, 48, 10, sink)
}

func TestWaitEmitsFrames(t *testing.T) {
	sink := &countingSink{}
	s := newTestScene(sink)

	if err := s.Wait(1.5); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if sink.frames != 15 {
		t.Errorf("frames = %d, want 15", sink.frames)
	}

	if s.Elapsed() != 1.5 {
		t.Errorf("Elapsed() = %v, want 1.5", s.Elapsed())
	}
}

func TestClockStaysOnFrameGrid(t *testing.T) {
	sink := &countingSink{}
	s := newTestScene(sink)

	// 0.35s at 10fps is between frames; the clock must follow the four
	// frames actually emitted, not the requested duration.
	box := NewBox(s.Center(), 10, 10, color.RGBA{R: 255, A: 255}, color.RGBA{})
	if err := s.Play(0.35, FadeIn(box)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if err := s.Wait(0.35); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if sink.frames != 8 {
		t.Errorf("frames = %d, want 8", sink.frames)
	}

	want := float64(sink.frames) / float64(s.FPS)
	if s.Elapsed() != want {
		t.Errorf("Elapsed() = %v, want %v", s.Elapsed(), want)
	}
}

func TestWaitZeroDuration(t *testing.T) {
	sink := &countingSink{}
	s := newTestScene(sink)

	if err := s.Wait(0); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if sink.frames != 0 {
		t.Errorf("frames = %d, want 0", sink.frames)
	}

	if s.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, want 0", s.Elapsed())
	}
}

func TestPlayEmitsFramesAndAdvancesClock(t *testing.T) {
	sink := &countingSink{}
	s := newTestScene(sink)

	box := NewBox(s.Center(), 10, 10, color.RGBA{R: 255, A: 255}, color.RGBA{})
	if err := s.Play(2.0, FadeIn(box)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if sink.frames != 20 {
		t.Errorf("frames = %d, want 20", sink.frames)
	}

	if s.Elapsed() != 2.0 {
		t.Errorf("Elapsed() = %v, want 2.0", s.Elapsed())
	}
}

func TestPlayTinyDurationEmitsOneFrame(t *testing.T) {
	sink := &countingSink{}
	s := newTestScene(sink)

	box := NewBox(s.Center(), 10, 10, color.RGBA{A: 255}, color.RGBA{})
	if err := s.Play(0.01, FadeIn(box)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if sink.frames != 1 {
		t.Errorf("frames = %d, want 1", sink.frames)
	}
}

func TestFadeInAddsObjectAtFullOpacity(t *testing.T) {
	s := newTestScene(&countingSink{})

	box := NewBox(s.Center(), 10, 10, color.RGBA{A: 255}, color.RGBA{})
	if err := s.Play(0.5, FadeIn(box)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(s.objects) != 1 {
		t.Fatalf("objects = %d, want 1", len(s.objects))
	}

	if box.Opacity != 1 {
		t.Errorf("Opacity = %v, want 1", box.Opacity)
	}
}

func TestFadeOutRemovesObject(t *testing.T) {
	s := newTestScene(&countingSink{})

	box := NewBox(s.Center(), 10, 10, color.RGBA{A: 255}, color.RGBA{})
	s.Add(box)

	if err := s.Play(0.5, FadeOut(box)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(s.objects) != 0 {
		t.Errorf("objects = %d, want 0", len(s.objects))
	}
}

func TestGroupFadeCoversChildren(t *testing.T) {
	s := newTestScene(&countingSink{})

	a := NewBox(Pt(10, 10), 5, 5, color.RGBA{A: 255}, color.RGBA{})
	b := NewCircle(Pt(30, 10), 4, color.RGBA{A: 255}, color.RGBA{})
	g := NewGroup(a, b)

	if err := s.Play(0.3, FadeIn(g)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(s.objects) != 2 {
		t.Fatalf("objects = %d, want 2 (group flattened)", len(s.objects))
	}

	if a.Opacity != 1 || b.Opacity != 1 {
		t.Errorf("child opacities = %v, %v, want 1, 1", a.Opacity, b.Opacity)
	}
}

func TestMoveToGroupShiftsAllChildren(t *testing.T) {
	s := newTestScene(&countingSink{})

	a := NewBox(Pt(10, 10), 5, 5, color.RGBA{A: 255}, color.RGBA{})
	b := NewBox(Pt(20, 10), 5, 5, color.RGBA{A: 255}, color.RGBA{})
	g := NewGroup(a, b)
	s.Add(g)

	if err := s.Play(0.5, MoveTo(g, g.Pos.Add(Pt(10, 0)))); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if a.Pos.X != 20 || b.Pos.X != 30 {
		t.Errorf("child X = %v, %v, want 20, 30", a.Pos.X, b.Pos.X)
	}
}

func TestMoveToArrowShiftsEndpoints(t *testing.T) {
	s := newTestScene(&countingSink{})

	a := NewArrow(Pt(10, 20), Pt(10, 30), color.RGBA{A: 255}, 2)
	s.Add(a)

	if err := s.Play(0.5, MoveTo(a, Pt(40, a.Pos.Y))); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if a.From.X != 40 || a.To.X != 40 {
		t.Errorf("endpoints X = %v, %v, want both 40", a.From.X, a.To.X)
	}

	if a.From.Y != 20 || a.To.Y != 30 {
		t.Errorf("endpoints Y = %v, %v, want 20, 30", a.From.Y, a.To.Y)
	}
}

func TestWriteRevealsLabel(t *testing.T) {
	s := newTestScene(&countingSink{})

	l := NewLabel(s.Center(), "hello", 2, color.RGBA{A: 255})
	if err := s.Play(0.4, Write(l)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if l.Progress != 1 {
		t.Errorf("Progress = %v, want 1", l.Progress)
	}

	if len(s.objects) != 1 {
		t.Errorf("objects = %d, want 1", len(s.objects))
	}
}

func TestTransformSwapsObjects(t *testing.T) {
	s := newTestScene(&countingSink{})

	old := NewLabel(s.Center(), "before", 2, color.RGBA{A: 255})
	s.Add(old)

	next := NewLabel(s.Center(), "after", 2, color.RGBA{A: 255})
	if err := s.Play(0.5, Transform(old, next)); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(s.objects) != 1 {
		t.Fatalf("objects = %d, want 1", len(s.objects))
	}

	if s.objects[0] != Object(next) {
		t.Error("scene should hold the replacement object")
	}
}
