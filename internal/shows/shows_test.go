package shows

import (
	"image"
	"testing"

	"github.com/ivlev/algo2video/internal/scene"
	"github.com/ivlev/algo2video/internal/script"
	"github.com/ivlev/algo2video/internal/system"
)

type nullSink struct {
	frames int
}

func (n *nullSink) WriteFrame(frame *image.RGBA) error {
	n.frames++
	system.PutImage(frame)

	return nil
}

func newShowScene(sink scene.FrameSink) *scene.Scene {
	s := scene.New(1280, 720, 5, sink)
	s.Background = colorBackground

	return s
}

func TestNarratedShowsCoverTheirScripts(t *testing.T) {
	for _, name := range Names() {
		sh, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}

		if !sh.Narrated() {
			continue
		}

		scr, err := script.Builtin(sh.Script)
		if err != nil {
			t.Fatalf("show %q names unknown script %q", name, sh.Script)
		}

		actions := sh.Build(newShowScene(&nullSink{}))

		if len(actions) != len(scr.Segments) {
			t.Errorf("show %q binds %d actions, script has %d segments",
				name, len(actions), len(scr.Segments))
		}

		for _, line := range scr.Segments {
			if _, ok := actions[line.ID]; !ok {
				t.Errorf("show %q has no action for segment %q", name, line.ID)
			}
		}
	}
}

func TestNarratedShowActionsRun(t *testing.T) {
	for _, name := range Names() {
		sh, _ := Lookup(name)
		if !sh.Narrated() {
			continue
		}

		sink := &nullSink{}
		s := newShowScene(sink)

		scr, err := script.Builtin(sh.Script)
		if err != nil {
			t.Fatalf("Builtin(%q) error = %v", sh.Script, err)
		}

		actions := sh.Build(s)

		for _, line := range scr.Segments {
			if err := actions[line.ID](); err != nil {
				t.Fatalf("show %q segment %q: %v", name, line.ID, err)
			}
		}

		if sink.frames == 0 {
			t.Errorf("show %q emitted no frames", name)
		}
	}
}

func TestFreeRunShow(t *testing.T) {
	sh, err := Lookup("gcd_lcm")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if sh.Narrated() {
		t.Fatal("gcd_lcm should be a silent show")
	}

	sink := &nullSink{}
	s := newShowScene(sink)

	if err := sh.Run(s); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if sink.frames == 0 {
		t.Error("free run emitted no frames")
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("bogo_sort"); err == nil {
		t.Fatal("Lookup() of unknown show should fail")
	}
}

func TestOutroEmptyURLIsNoOp(t *testing.T) {
	sink := &nullSink{}
	s := newShowScene(sink)

	if err := Outro(s, "", "scan me"); err != nil {
		t.Fatalf("Outro() error = %v", err)
	}

	if sink.frames != 0 {
		t.Errorf("frames = %d, want 0", sink.frames)
	}
}

func TestOutroRendersCard(t *testing.T) {
	sink := &nullSink{}
	s := newShowScene(sink)

	if err := Outro(s, "https://example.com/algo", "more algorithms"); err != nil {
		t.Fatalf("Outro() error = %v", err)
	}

	if sink.frames == 0 {
		t.Error("outro emitted no frames")
	}
}

func TestHexPalette(t *testing.T) {
	c := Hex("#4aa3ff")
	if c.R != 0x4a || c.G != 0xa3 || c.B != 0xff || c.A != 255 {
		t.Errorf("Hex() = %v", c)
	}
}
