// Package timeline builds and serializes the narration timing manifest that
// links the audio stage to the rendering stage.
package timeline

import (
	"errors"
	"fmt"
	"math"
)

// Static errors.
var (
	ErrNoSegments    = errors.New("narration script has no segments")
	ErrDuplicateID   = errors.New("duplicate segment id")
	ErrNegativePause = errors.New("pause must not be negative")
	ErrCountMismatch = errors.New("measured durations do not match segment count")
	ErrUnknownID     = errors.New("segment id not present in manifest")
)

// Segment is one narration unit with its measured clip duration and the
// derived time window inside the full track.
type Segment struct {
	ID       string  `json:"id"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	End      float64 `json:"end"`
	Text     string  `json:"text"`
}

// Manifest is the ordered collection of segments plus the total track length.
type Manifest struct {
	Total    float64   `json:"total"`
	Segments []Segment `json:"segments"`
}

// Entry is a narration line before synthesis.
type Entry struct {
	ID   string
	Text string
}

// Builder accumulates measured clip durations into a Manifest.
//
// Pause is the fixed silence inserted after a segment's clip. With
// TrailingPause set, the pause is also counted after the last segment and
// folded into its end offset and the total. Without it (the default), no
// pause follows the last segment and total = sum(durations) + (n-1)*pause.
type Builder struct {
	Pause         float64
	TrailingPause bool
}

// Build produces the manifest for entries with the given measured durations.
// All offsets are rounded to 2 decimal places; segment i starts exactly where
// segment i-1 ends.
func (b Builder) Build(entries []Entry, durations []float64) (*Manifest, error) {
	if len(entries) == 0 {
		return nil, ErrNoSegments
	}

	if b.Pause < 0 {
		return nil, ErrNegativePause
	}

	if len(durations) != len(entries) {
		return nil, fmt.Errorf("%w: %d entries, %d durations",
			ErrCountMismatch, len(entries), len(durations))
	}

	seen := make(map[string]struct{}, len(entries))

	segments := make([]Segment, 0, len(entries))
	cursor := 0.0

	for i, entry := range entries {
		if _, dup := seen[entry.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, entry.ID)
		}

		seen[entry.ID] = struct{}{}

		duration := Round2(durations[i])

		gap := b.Pause
		if i == len(entries)-1 && !b.TrailingPause {
			gap = 0
		}

		end := Round2(cursor + duration + gap)
		segments = append(segments, Segment{
			ID:       entry.ID,
			Start:    cursor,
			Duration: duration,
			End:      end,
			Text:     entry.Text,
		})
		cursor = end
	}

	return &Manifest{
		Total:    cursor,
		Segments: segments,
	}, nil
}

// Window returns the playback window (target duration) for a segment id.
func (m *Manifest) Window(id string) (float64, error) {
	for _, seg := range m.Segments {
		if seg.ID == id {
			return Round2(seg.End - seg.Start), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownID, id)
}

// Round2 applies the manifest-wide 2-decimal rounding policy.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
