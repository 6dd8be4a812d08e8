package script

import (
	"path/filepath"
	"testing"
)

func TestBuiltinScriptsValidate(t *testing.T) {
	for _, name := range Names() {
		s, err := Builtin(name)
		if err != nil {
			t.Fatalf("Builtin(%q) failed: %v", name, err)
		}
		if err := s.Validate(); err != nil {
			t.Errorf("builtin %q does not validate: %v", name, err)
		}
		if s.Voice == "" {
			t.Errorf("builtin %q has no voice", name)
		}
	}
}

func TestBuiltinUnknown(t *testing.T) {
	if _, err := Builtin("quicksort"); err == nil {
		t.Error("expected error for unknown builtin")
	}
}

func TestValidateRejectsBadScripts(t *testing.T) {
	cases := []struct {
		name   string
		script Script
	}{
		{"no name", Script{Pause: 0.5, Segments: []Line{{ID: "a", Text: "x"}}}},
		{"no segments", Script{Name: "s", Pause: 0.5}},
		{"empty id", Script{Name: "s", Segments: []Line{{Text: "x"}}}},
		{"empty text", Script{Name: "s", Segments: []Line{{ID: "a"}}}},
		{"duplicate id", Script{Name: "s", Segments: []Line{{ID: "a", Text: "x"}, {ID: "a", Text: "y"}}}},
		{"negative pause", Script{Name: "s", Pause: -1, Segments: []Line{{ID: "a", Text: "x"}}}},
	}

	for _, tc := range cases {
		if err := tc.script.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestScriptWriteRead(t *testing.T) {
	orig, err := Builtin("dfs")
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "dfs.yaml")
	if err := Write(orig, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if loaded.Name != orig.Name || loaded.Pause != orig.Pause || loaded.Voice != orig.Voice {
		t.Errorf("header mismatch: %+v vs %+v", loaded, orig)
	}
	if len(loaded.Segments) != len(orig.Segments) {
		t.Fatalf("expected %d segments, got %d", len(orig.Segments), len(loaded.Segments))
	}
	for i := range orig.Segments {
		if loaded.Segments[i] != orig.Segments[i] {
			t.Errorf("segment %d mismatch: %+v vs %+v", i, loaded.Segments[i], orig.Segments[i])
		}
	}
}

func TestReadAppliesDefaultVoice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.yaml")
	s := &Script{Name: "bare", Pause: 0.5, Segments: []Line{{ID: "a", Text: "hello"}}}
	if err := Write(s, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if loaded.Voice != DefaultVoice {
		t.Errorf("expected default voice %q, got %q", DefaultVoice, loaded.Voice)
	}
}
