package config

import "testing"

func TestNarrateValidate(t *testing.T) {
	good := Narrate{Show: "binary_search", OutputDir: "out", Engine: "command"}
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name string
		cfg  Narrate
	}{
		{"no show or script", Narrate{OutputDir: "out", Engine: "command"}},
		{"no output dir", Narrate{Show: "dfs", Engine: "command"}},
		{"bad engine", Narrate{Show: "dfs", OutputDir: "out", Engine: "carrier-pigeon"}},
		{"http without url", Narrate{Show: "dfs", OutputDir: "out", Engine: "http"}},
	}

	for _, tt := range tests {
		if err := tt.cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() should fail", tt.name)
		}
	}
}

func TestRenderValidate(t *testing.T) {
	good := Render{Show: "dfs", Width: 1280, Height: 720, FPS: 30, Quality: 23}
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name string
		cfg  Render
	}{
		{"no show", Render{Width: 1280, Height: 720, FPS: 30}},
		{"zero size", Render{Show: "dfs", FPS: 30}},
		{"odd width", Render{Show: "dfs", Width: 1281, Height: 720, FPS: 30}},
		{"zero fps", Render{Show: "dfs", Width: 1280, Height: 720}},
		{"quality out of range", Render{Show: "dfs", Width: 1280, Height: 720, FPS: 30, Quality: 99}},
	}

	for _, tt := range tests {
		if err := tt.cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() should fail", tt.name)
		}
	}
}
