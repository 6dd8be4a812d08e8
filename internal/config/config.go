// Package config carries the resolved settings for both pipeline stages.
package config

import "github.com/pkg/errors"

// Narrate holds everything the audio stage needs.
type Narrate struct {
	Show          string
	ScriptPath    string
	OutputDir     string
	Engine        string // "command" or "http"
	TTSBinary     string
	ServiceURL    string
	TrailingPause bool
}

// Render holds everything the video stage needs.
type Render struct {
	Show         string
	OutputDir    string
	OutputVideo  string
	Width        int
	Height       int
	FPS          int
	Encoder      string
	Quality      int
	Backdrop     string
	BackdropPage int
	CatchUp      bool
	OutroURL     string
	OutroText    string
}

func (c Narrate) Validate() error {
	if c.Show == "" && c.ScriptPath == "" {
		return errors.New("either a show name or a script file is required")
	}

	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}

	switch c.Engine {
	case "command", "http":
	default:
		return errors.Errorf("unknown tts engine %q", c.Engine)
	}

	if c.Engine == "http" && c.ServiceURL == "" {
		return errors.New("http engine needs a service url")
	}

	return nil
}

func (c Render) Validate() error {
	if c.Show == "" {
		return errors.New("show name is required")
	}

	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("bad frame size %dx%d", c.Width, c.Height)
	}

	if c.Width%2 != 0 || c.Height%2 != 0 {
		return errors.New("frame size must be even for yuv420p")
	}

	if c.FPS <= 0 {
		return errors.Errorf("bad frame rate %d", c.FPS)
	}

	if c.Quality < 0 || c.Quality > 51 {
		return errors.Errorf("quality %d out of range 0..51", c.Quality)
	}

	return nil
}
