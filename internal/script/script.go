// Package script defines narration scripts: the ordered list of spoken lines
// fed to the TTS engine, plus the voice and inter-segment pause they use.
package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/algo2video/internal/timeline"
)

var (
	ErrNoName      = errors.New("script has no name")
	ErrNoSegments  = errors.New("script has no segments")
	ErrEmptyID     = errors.New("segment id is empty")
	ErrEmptyText   = errors.New("segment text is empty")
	ErrDuplicateID = errors.New("duplicate segment id")
	ErrBadPause    = errors.New("pause must not be negative")
	ErrUnknown     = errors.New("unknown builtin script")
)

// Line is one narration unit before synthesis.
type Line struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// Script is a complete narration program for one video.
type Script struct {
	Name     string  `yaml:"name"`
	Voice    string  `yaml:"voice"`
	Pause    float64 `yaml:"pause"` // Silence between segments in seconds
	Segments []Line  `yaml:"segments"`
}

// Validate checks the input constraints the timing accumulator relies on.
func (s *Script) Validate() error {
	if s.Name == "" {
		return ErrNoName
	}

	if len(s.Segments) == 0 {
		return fmt.Errorf("%w: %s", ErrNoSegments, s.Name)
	}

	if s.Pause < 0 {
		return fmt.Errorf("%w: %s", ErrBadPause, s.Name)
	}

	seen := make(map[string]struct{}, len(s.Segments))
	for i, line := range s.Segments {
		if line.ID == "" {
			return fmt.Errorf("%w: segment %d", ErrEmptyID, i)
		}
		if line.Text == "" {
			return fmt.Errorf("%w: %s", ErrEmptyText, line.ID)
		}
		if _, dup := seen[line.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, line.ID)
		}
		seen[line.ID] = struct{}{}
	}

	return nil
}

// Entries converts the script lines into timing accumulator entries.
func (s *Script) Entries() []timeline.Entry {
	entries := make([]timeline.Entry, len(s.Segments))
	for i, line := range s.Segments {
		entries[i] = timeline.Entry{ID: line.ID, Text: line.Text}
	}

	return entries
}

// Read loads and validates a script from a YAML file.
func Read(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	if s.Voice == "" {
		s.Voice = DefaultVoice
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Write saves a script as YAML.
func Write(s *Script, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}

	return nil
}
