// Command algo2video produces short narrated algorithm explainers in two
// stages: narrate synthesizes the voice track and its timing manifest,
// render plays the animation against that manifest and encodes the video.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/book-expert/logger"
	"github.com/spf13/cobra"

	"github.com/ivlev/algo2video/internal/audio"
	"github.com/ivlev/algo2video/internal/config"
	"github.com/ivlev/algo2video/internal/director"
	"github.com/ivlev/algo2video/internal/narration"
	"github.com/ivlev/algo2video/internal/script"
	"github.com/ivlev/algo2video/internal/shows"
	"github.com/ivlev/algo2video/internal/system"
	"github.com/ivlev/algo2video/internal/tts"
	"github.com/ivlev/algo2video/internal/video"
)

const (
	// ttsCallTimeout bounds one synthesis request against the TTS service.
	ttsCallTimeout = 60 * time.Second

	// videoQueueDepth mirrors the encoder's frame queue for the memory
	// preflight.
	videoQueueDepth = 8
)

var rootCmd = &cobra.Command{
	Use:   "algo2video",
	Short: "Narrated algorithm animation pipeline",
	Long: `algo2video builds short narrated algorithm explainer videos.

The pipeline has two stages:

  # 1. Synthesize narration clips and the timing manifest
  algo2video narrate --show binary_search --out out/binary_search

  # 2. Render the animation against the manifest and mux the audio
  algo2video render --show binary_search --out out/binary_search

  # Or render several shows and join them into one video
  algo2video batch --shows binary_search,dfs

Available shows: ` + fmt.Sprint(shows.Names()),
	SilenceUsage: true,
}

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Synthesize the narration track and timing manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Narrate{}
		cfg.Show, _ = cmd.Flags().GetString("show")
		cfg.ScriptPath, _ = cmd.Flags().GetString("script")
		cfg.OutputDir, _ = cmd.Flags().GetString("out")
		cfg.Engine, _ = cmd.Flags().GetString("engine")
		cfg.TTSBinary, _ = cmd.Flags().GetString("tts-binary")
		cfg.ServiceURL, _ = cmd.Flags().GetString("service-url")
		cfg.TrailingPause, _ = cmd.Flags().GetBool("trailing-pause")

		if cfg.OutputDir == "" && cfg.Show != "" {
			cfg.OutputDir = filepath.Join("out", cfg.Show)
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		return runNarrate(cmd.Context(), cfg)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a show into a video",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Render{}
		cfg.Show, _ = cmd.Flags().GetString("show")
		cfg.OutputDir, _ = cmd.Flags().GetString("out")
		cfg.OutputVideo, _ = cmd.Flags().GetString("video")
		cfg.Width, _ = cmd.Flags().GetInt("width")
		cfg.Height, _ = cmd.Flags().GetInt("height")
		cfg.FPS, _ = cmd.Flags().GetInt("fps")
		cfg.Encoder, _ = cmd.Flags().GetString("encoder")
		cfg.Quality, _ = cmd.Flags().GetInt("quality")
		cfg.Backdrop, _ = cmd.Flags().GetString("backdrop")
		cfg.BackdropPage, _ = cmd.Flags().GetInt("backdrop-page")
		cfg.CatchUp, _ = cmd.Flags().GetBool("catch-up")
		cfg.OutroURL, _ = cmd.Flags().GetString("outro-url")
		cfg.OutroText, _ = cmd.Flags().GetString("outro-text")

		if cfg.OutputDir == "" && cfg.Show != "" {
			cfg.OutputDir = filepath.Join("out", cfg.Show)
		}

		if cfg.OutputVideo == "" {
			cfg.OutputVideo = filepath.Join(cfg.OutputDir, cfg.Show+".mp4")
		}

		if cfg.Encoder == "" {
			cfg.Encoder = system.BestH264Encoder()
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		return runRender(cmd.Context(), cfg)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Render several shows and join them into one video",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, _ := cmd.Flags().GetStringSlice("shows")
		outDir, _ := cmd.Flags().GetString("out")
		outVideo, _ := cmd.Flags().GetString("video")

		tmpl := config.Render{}
		tmpl.Width, _ = cmd.Flags().GetInt("width")
		tmpl.Height, _ = cmd.Flags().GetInt("height")
		tmpl.FPS, _ = cmd.Flags().GetInt("fps")
		tmpl.Encoder, _ = cmd.Flags().GetString("encoder")
		tmpl.Quality, _ = cmd.Flags().GetInt("quality")
		tmpl.CatchUp, _ = cmd.Flags().GetBool("catch-up")
		tmpl.OutroURL, _ = cmd.Flags().GetString("outro-url")
		tmpl.OutroText, _ = cmd.Flags().GetString("outro-text")

		if tmpl.Encoder == "" {
			tmpl.Encoder = system.BestH264Encoder()
		}

		if outVideo == "" {
			outVideo = filepath.Join(outDir, "compilation.mp4")
		}

		return runBatch(cmd.Context(), names, outDir, outVideo, tmpl)
	},
}

func init() {
	narrateCmd.Flags().String("show", "", "Built-in show to narrate: "+fmt.Sprint(script.Names()))
	narrateCmd.Flags().String("script", "", "Custom narration script (YAML), overrides --show")
	narrateCmd.Flags().String("out", "", "Output directory (default out/<show>)")
	narrateCmd.Flags().String("engine", "command", "TTS engine: command or http")
	narrateCmd.Flags().String("tts-binary", "edge-tts", "TTS binary for the command engine")
	narrateCmd.Flags().String("service-url", "", "Base URL of the TTS service for the http engine")
	narrateCmd.Flags().Bool("trailing-pause", false, "Account the pause after the last segment too")

	renderCmd.Flags().String("show", "", "Show to render: "+fmt.Sprint(shows.Names()))
	renderCmd.Flags().String("out", "", "Directory with the narrate stage artifacts (default out/<show>)")
	renderCmd.Flags().String("video", "", "Output video path (default <out>/<show>.mp4)")
	renderCmd.Flags().Int("width", 1280, "Frame width")
	renderCmd.Flags().Int("height", 720, "Frame height")
	renderCmd.Flags().Int("fps", 30, "Frame rate")
	renderCmd.Flags().String("encoder", "", "h264 encoder name (default: best available)")
	renderCmd.Flags().Int("quality", 23, "Encode quality: crf/cq, videotoolbox maps it to bitrate")
	renderCmd.Flags().String("backdrop", "", "Background: image file, directory, or PDF")
	renderCmd.Flags().Int("backdrop-page", 0, "PDF page to use as backdrop")
	renderCmd.Flags().Bool("catch-up", false, "Absorb animation overruns instead of shifting later segments")
	renderCmd.Flags().String("outro-url", "", "URL to show as a QR code after the piece")
	renderCmd.Flags().String("outro-text", "scan for more", "Caption under the outro QR code")

	batchCmd.Flags().StringSlice("shows", shows.Names(), "Shows to render, in playout order")
	batchCmd.Flags().String("out", "out", "Root directory holding per-show narrate artifacts")
	batchCmd.Flags().String("video", "", "Combined video path (default <out>/compilation.mp4)")
	batchCmd.Flags().Int("width", 1280, "Frame width")
	batchCmd.Flags().Int("height", 720, "Frame height")
	batchCmd.Flags().Int("fps", 30, "Frame rate")
	batchCmd.Flags().String("encoder", "", "h264 encoder name (default: best available)")
	batchCmd.Flags().Int("quality", 23, "Encode quality: crf/cq, videotoolbox maps it to bitrate")
	batchCmd.Flags().Bool("catch-up", false, "Absorb animation overruns instead of shifting later segments")
	batchCmd.Flags().String("outro-url", "", "URL to show as a QR code after the final show")
	batchCmd.Flags().String("outro-text", "scan for more", "Caption under the outro QR code")

	rootCmd.AddCommand(narrateCmd, renderCmd, batchCmd)
}

func runNarrate(ctx context.Context, cfg config.Narrate) error {
	log, err := newLogger(cfg.OutputDir, "narrate.log")
	if err != nil {
		return err
	}
	defer log.Close()

	scr, err := loadScript(cfg)
	if err != nil {
		return err
	}

	if err := system.CheckTools("ffmpeg", "ffprobe"); err != nil {
		return err
	}

	var engine tts.Engine
	if cfg.Engine == "http" {
		engine = tts.NewHTTPEngine(cfg.ServiceURL, ttsCallTimeout)
	} else {
		if err := system.CheckTools(cfg.TTSBinary); err != nil {
			return err
		}

		engine = tts.NewCommandEngine(cfg.TTSBinary)
	}

	synth := narration.New(engine, &audio.FFProbe{}, log)
	synth.TrailingPause = cfg.TrailingPause

	if _, err := synth.Run(ctx, scr, cfg.OutputDir); err != nil {
		return err
	}

	return synth.AssembleTrack(ctx, scr, cfg.OutputDir)
}

func runRender(ctx context.Context, cfg config.Render) error {
	if err := system.CheckTools("ffmpeg"); err != nil {
		return err
	}

	if err := system.CheckMemory(cfg.Width, cfg.Height, videoQueueDepth); err != nil {
		return err
	}

	log, err := newLogger(cfg.OutputDir, "render.log")
	if err != nil {
		return err
	}
	defer log.Close()

	return director.New(cfg, log).Run(ctx)
}

// runBatch renders each show into its own part file, then joins the parts
// by stream copy. Every part shares the template's geometry and encoder, so
// the concat demuxer can copy them without re-encoding.
func runBatch(ctx context.Context, names []string, outDir, outVideo string, tmpl config.Render) error {
	if len(names) == 0 {
		return fmt.Errorf("no shows to render")
	}

	parts := make([]string, 0, len(names))

	for i, name := range names {
		cfg := tmpl
		cfg.Show = name
		cfg.OutputDir = filepath.Join(outDir, name)
		cfg.OutputVideo = filepath.Join(cfg.OutputDir, name+".mp4")

		// The outro belongs at the end of the compilation, not after
		// every part.
		if i < len(names)-1 {
			cfg.OutroURL = ""
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := runRender(ctx, cfg); err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}

		parts = append(parts, cfg.OutputVideo)
	}

	return video.Concat(ctx, outVideo, parts...)
}

func loadScript(cfg config.Narrate) (*script.Script, error) {
	if cfg.ScriptPath != "" {
		return script.Read(cfg.ScriptPath)
	}

	return script.Builtin(cfg.Show)
}

func newLogger(dir, name string) (*logger.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return logger.New(dir, name)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
