// Package player keeps timed visual actions in step with the narration
// manifest: each action is padded out to its segment window, so the picture
// never runs ahead of the voice.
package player

import (
	"errors"
	"fmt"

	"github.com/ivlev/algo2video/internal/timeline"
)

// Static errors.
var (
	ErrNilManifest   = errors.New("manifest is nil")
	ErrMissingAction = errors.New("no action bound for segment")
)

// Clock is implemented by anything that can report elapsed media time and
// hold the current picture for a stretch of it. A rendering scene is a
// Clock: its time advances with every emitted frame.
type Clock interface {
	Elapsed() float64
	Wait(seconds float64) error
}

// Action draws the visuals for one narration segment.
type Action func() error

// Options tune the padding behaviour.
type Options struct {
	// CatchUp schedules against absolute segment deadlines, so an action
	// that overruns its window eats into the padding of later segments
	// instead of sliding the whole piece. Off by default: an overrun then
	// shifts everything after it.
	CatchUp bool
}

// Play runs one action per manifest segment in order. After each action the
// clock is held until the segment window is used up. An action that already
// overran its window gets no hold and Play moves straight on.
func Play(clock Clock, m *timeline.Manifest, actions map[string]Action, opts Options) error {
	if m == nil {
		return ErrNilManifest
	}

	start := clock.Elapsed()

	for _, seg := range m.Segments {
		act, ok := actions[seg.ID]
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingAction, seg.ID)
		}

		actStart := clock.Elapsed()

		if err := act(); err != nil {
			return fmt.Errorf("segment %q: %w", seg.ID, err)
		}

		window := timeline.Round2(seg.End - seg.Start)

		var pad float64
		if opts.CatchUp {
			deadline := start + seg.End
			pad = deadline - clock.Elapsed()
		} else {
			pad = window - (clock.Elapsed() - actStart)
		}

		if pad > 0 {
			if err := clock.Wait(pad); err != nil {
				return fmt.Errorf("segment %q: hold: %w", seg.ID, err)
			}
		}
	}

	return nil
}

// FreeRun executes actions in order with no narration schedule, holding
// each one's fixed pause afterwards. Used by pieces that have no voice
// track.
func FreeRun(clock Clock, pause float64, actions ...Action) error {
	for i, act := range actions {
		if err := act(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}

		if pause > 0 {
			if err := clock.Wait(pause); err != nil {
				return fmt.Errorf("step %d: hold: %w", i+1, err)
			}
		}
	}

	return nil
}
