// Package narration runs the audio stage: synthesize every script line,
// measure the clips, accumulate the timing manifest and assemble the full
// narration track.
package narration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/book-expert/logger"
	"github.com/google/uuid"

	"github.com/ivlev/algo2video/internal/audio"
	"github.com/ivlev/algo2video/internal/script"
	"github.com/ivlev/algo2video/internal/timeline"
	"github.com/ivlev/algo2video/internal/tts"
)

// ManifestFile is the timing manifest name inside the output directory.
const ManifestFile = "timing.json"

const defaultCallTimeout = 60 * time.Second

// Synthesizer drives one narration run. Synthesis is sequential on purpose:
// offsets accumulate in script order and the first failure aborts the run
// with no partial manifest.
type Synthesizer struct {
	engine      tts.Engine
	prober      audio.Prober
	log         *logger.Logger
	callTimeout time.Duration

	// TrailingPause also counts the pause after the final segment when
	// building the manifest.
	TrailingPause bool
}

// healthChecker is implemented by engines backed by a remote service that
// can be probed before committing to a run.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// New creates a Synthesizer with the default per-call timeout.
func New(engine tts.Engine, prober audio.Prober, log *logger.Logger) *Synthesizer {
	return &Synthesizer{
		engine:      engine,
		prober:      prober,
		log:         log,
		callTimeout: defaultCallTimeout,
	}
}

// WithCallTimeout overrides the timeout applied to each external call.
func (s *Synthesizer) WithCallTimeout(d time.Duration) *Synthesizer {
	if d > 0 {
		s.callTimeout = d
	}

	return s
}

// Run synthesizes all segments of scr into outputDir, one clip per segment,
// probes each clip and writes the timing manifest. It returns the manifest
// for the caller to assemble or render against.
func (s *Synthesizer) Run(ctx context.Context, scr *script.Script, outputDir string) (*timeline.Manifest, error) {
	if err := scr.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkEngine(ctx); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	runID := uuid.NewString()[:8]
	s.log.Info("run %s: synthesizing %q, %d segments, voice %s",
		runID, scr.Name, len(scr.Segments), scr.Voice)

	durations := make([]float64, 0, len(scr.Segments))
	cumulative := 0.0

	for _, line := range scr.Segments {
		clipPath := filepath.Join(outputDir, line.ID+".mp3")

		if err := s.synthesizeClip(ctx, line, scr.Voice, clipPath); err != nil {
			return nil, err
		}

		duration, err := s.probeClip(ctx, line.ID, clipPath)
		if err != nil {
			return nil, err
		}

		s.log.Info("run %s: [%5.1fs] %s: %.1fs", runID, cumulative, line.ID, duration)
		durations = append(durations, duration)
		cumulative += duration + scr.Pause
	}

	builder := timeline.Builder{Pause: scr.Pause, TrailingPause: s.TrailingPause}

	manifest, err := builder.Build(scr.Entries(), durations)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(outputDir, ManifestFile)
	if err := timeline.WriteManifest(manifest, manifestPath); err != nil {
		return nil, err
	}

	s.log.Info("run %s: total %.1fs, manifest %s", runID, manifest.Total, manifestPath)

	return manifest, nil
}

// AssembleTrack builds silence.mp3, the concat playlist and full.mp3 from
// the clips of a completed Run.
func (s *Synthesizer) AssembleTrack(ctx context.Context, scr *script.Script, outputDir string) error {
	silencePath := filepath.Join(outputDir, audio.SilenceFile)

	silenceCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := audio.WriteSilence(silenceCtx, silencePath, scr.Pause); err != nil {
		return err
	}

	clips := make([]string, len(scr.Segments))
	for i, line := range scr.Segments {
		clips[i] = filepath.Join(outputDir, line.ID+".mp3")
	}

	playlistPath := filepath.Join(outputDir, audio.PlaylistFile)
	if err := audio.WritePlaylist(playlistPath, clips); err != nil {
		return err
	}

	concatCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	fullPath := filepath.Join(outputDir, audio.FullFile)
	if err := audio.Concatenate(concatCtx, playlistPath, fullPath); err != nil {
		return err
	}

	s.log.Info("assembled narration track %s", fullPath)

	return nil
}

// checkEngine probes a service-backed engine up front so a dead service
// fails the run immediately instead of on the first segment.
func (s *Synthesizer) checkEngine(ctx context.Context) error {
	hc, ok := s.engine.(healthChecker)
	if !ok {
		return nil
	}

	checkCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := hc.HealthCheck(checkCtx); err != nil {
		s.log.Error("engine health check failed: %v", err)

		return fmt.Errorf("engine health check: %w", err)
	}

	return nil
}

func (s *Synthesizer) synthesizeClip(ctx context.Context, line script.Line, voice, clipPath string) error {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.engine.Synthesize(callCtx, line.Text, voice, clipPath); err != nil {
		s.log.Error("synthesis failed for segment %s: %v", line.ID, err)

		return fmt.Errorf("synthesize segment %q: %w", line.ID, err)
	}

	return nil
}

func (s *Synthesizer) probeClip(ctx context.Context, id, clipPath string) (float64, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	duration, err := s.prober.Duration(callCtx, clipPath)
	if err != nil {
		s.log.Error("probe failed for clip %s: %v", clipPath, err)

		return 0, fmt.Errorf("probe clip for segment %q: %w", id, err)
	}

	return duration, nil
}
