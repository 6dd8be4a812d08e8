// Package audio wraps the external media tooling for the narration stage:
// clip duration probing and assembly of the full narration track.
package audio

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const defaultProbeTimeout = 30 * time.Second

// Prober reports the measured duration of an audio clip in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FFProbe measures clip durations with ffprobe.
type FFProbe struct{}

// Duration probes path and returns its duration in seconds. The call is
// bounded by the context deadline (or a default when none is set) so a hung
// probe cannot stall the run.
func (FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	timeout := defaultProbeTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	probe, err := ffmpeg.ProbeWithTimeout(path, timeout, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "ffprobe %s", path)
	}

	return ParseDuration(probe)
}

// ParseDuration extracts a duration from ffprobe JSON output. The format
// section is preferred; stream durations are the fallback.
func ParseDuration(probeJSON string) (float64, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probeJSON), &data); err != nil {
		return 0, errors.Wrap(err, "parse probe output")
	}

	if format, ok := data["format"].(map[string]interface{}); ok {
		if d, ok := parseDurationField(format); ok {
			return d, nil
		}
	}

	if streams, ok := data["streams"].([]interface{}); ok {
		for _, stream := range streams {
			s, ok := stream.(map[string]interface{})
			if !ok {
				continue
			}
			if d, ok := parseDurationField(s); ok {
				return d, nil
			}
		}
	}

	return 0, errors.New("could not determine clip duration")
}

func parseDurationField(section map[string]interface{}) (float64, bool) {
	durationStr, ok := section["duration"].(string)
	if !ok {
		return 0, false
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64)
	if err != nil || d <= 0 {
		return 0, false
	}

	return d, true
}
