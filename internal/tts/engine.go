// Package tts synthesizes narration audio. It speaks to either a TTS HTTP
// service or a local edge-tts compatible binary; both produce one audio clip
// per narration segment.
package tts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

var (
	ErrTextEmpty    = errors.New("text cannot be empty")
	ErrVoiceEmpty   = errors.New("voice cannot be empty")
	ErrOutPathEmpty = errors.New("output path cannot be empty")
	ErrEmptyAudio   = errors.New("received empty audio data")
)

// Engine converts one narration line into an audio clip at outPath.
type Engine interface {
	Synthesize(ctx context.Context, text, voice, outPath string) error
}

// CommandEngine shells out to an edge-tts compatible binary.
type CommandEngine struct {
	// Binary is the executable name, "edge-tts" by default.
	Binary string
}

// NewCommandEngine creates an engine around the edge-tts CLI.
func NewCommandEngine(binary string) *CommandEngine {
	if binary == "" {
		binary = "edge-tts"
	}

	return &CommandEngine{Binary: binary}
}

// Synthesize runs the TTS binary for one segment. The context bounds the
// call; a hung synthesis is killed rather than stalling the whole run.
func (e *CommandEngine) Synthesize(ctx context.Context, text, voice, outPath string) error {
	if err := validateInputs(text, voice, outPath); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.Binary,
		"--voice", voice,
		"--text", text,
		"--write-media", outPath,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w, output: %s", e.Binary, err, string(out))
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("%s produced no file: %w", e.Binary, err)
	}

	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyAudio, outPath)
	}

	return nil
}

func validateInputs(text, voice, outPath string) error {
	if text == "" {
		return ErrTextEmpty
	}

	if voice == "" {
		return ErrVoiceEmpty
	}

	if outPath == "" {
		return ErrOutPathEmpty
	}

	return nil
}
