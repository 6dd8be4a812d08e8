// Package director runs the rendering stage end to end: it sets the scene,
// plays a show against its narration manifest and hands frames to the
// encoder, then muxes the voice track underneath.
package director

import (
	"context"
	"os"
	"path/filepath"

	"github.com/book-expert/logger"
	"github.com/pkg/errors"

	"github.com/ivlev/algo2video/internal/audio"
	"github.com/ivlev/algo2video/internal/config"
	"github.com/ivlev/algo2video/internal/narration"
	"github.com/ivlev/algo2video/internal/player"
	"github.com/ivlev/algo2video/internal/scene"
	"github.com/ivlev/algo2video/internal/shows"
	"github.com/ivlev/algo2video/internal/source"
	"github.com/ivlev/algo2video/internal/timeline"
	"github.com/ivlev/algo2video/internal/video"
)

// silentFile is the intermediate video before the voice track is added.
const silentFile = "silent.mp4"

// Director renders one show.
type Director struct {
	cfg config.Render
	log *logger.Logger
}

func New(cfg config.Render, log *logger.Logger) *Director {
	return &Director{cfg: cfg, log: log}
}

// Run renders the configured show into cfg.OutputVideo.
func (d *Director) Run(ctx context.Context) error {
	if err := d.cfg.Validate(); err != nil {
		return errors.Wrap(err, "render config")
	}

	show, err := shows.Lookup(d.cfg.Show)
	if err != nil {
		return err
	}

	audioPath := filepath.Join(d.cfg.OutputDir, audio.FullFile)
	hasAudio := show.Narrated() && fileExists(audioPath)

	videoPath := d.cfg.OutputVideo
	if hasAudio {
		videoPath = filepath.Join(d.cfg.OutputDir, silentFile)
	}

	stream, err := video.NewStream(ctx, video.Options{
		Width:   d.cfg.Width,
		Height:  d.cfg.Height,
		FPS:     d.cfg.FPS,
		Encoder: d.cfg.Encoder,
		Quality: d.cfg.Quality,
		Path:    videoPath,
	})
	if err != nil {
		return errors.Wrap(err, "start encoder")
	}

	s := scene.New(d.cfg.Width, d.cfg.Height, d.cfg.FPS, stream)
	s.Background = shows.Hex("#101418")

	if d.cfg.Backdrop != "" {
		backdrop, err := source.Backdrop(
			d.cfg.Backdrop, d.cfg.Width, d.cfg.Height, d.cfg.BackdropPage)
		if err != nil {
			return errors.Wrap(err, "load backdrop")
		}

		s.Backdrop = backdrop
	}

	if err := d.play(show, s); err != nil {
		stream.Close()

		return err
	}

	if err := shows.Outro(s, d.cfg.OutroURL, d.cfg.OutroText); err != nil {
		stream.Close()

		return errors.Wrap(err, "outro")
	}

	d.log.Info("show %s: %.1fs of frames rendered", show.Name, s.Elapsed())

	if err := stream.Close(); err != nil {
		return errors.Wrap(err, "finish encode")
	}

	if !hasAudio {
		d.log.Info("wrote %s (no narration track)", videoPath)

		return nil
	}

	if err := video.Mux(ctx, videoPath, audioPath, d.cfg.OutputVideo); err != nil {
		return err
	}

	d.log.Info("wrote %s", d.cfg.OutputVideo)

	return nil
}

func (d *Director) play(show *shows.Show, s *scene.Scene) error {
	if !show.Narrated() {
		return show.Run(s)
	}

	manifestPath := filepath.Join(d.cfg.OutputDir, narration.ManifestFile)

	manifest, err := timeline.ReadManifest(manifestPath)
	if err != nil {
		return errors.Wrapf(err, "read manifest %s, run the narrate stage first", manifestPath)
	}

	actions := show.Build(s)

	return player.Play(s, manifest, actions, player.Options{CatchUp: d.cfg.CatchUp})
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)

	return err == nil && !fi.IsDir()
}
