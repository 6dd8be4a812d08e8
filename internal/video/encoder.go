// Package video drives ffmpeg to turn raw rendered frames into the final
// clip. Frames arrive as RGBA buffers and are streamed over stdin to a
// single long-lived encoder process.
package video

import (
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/algo2video/internal/system"
)

// Options describe one encode run.
type Options struct {
	Width   int
	Height  int
	FPS     int
	Encoder string // h264 encoder name, e.g. libx264 or h264_nvenc
	Quality int    // crf/cq value; videotoolbox maps it to a bitrate
	Path    string // output video file
}

// frameQueue decouples rendering from the encoder pipe so a slow ffmpeg
// does not stall frame production immediately.
const frameQueue = 8

// Stream is a running ffmpeg encode accepting frames one at a time. It
// takes ownership of every buffer passed to WriteFrame and recycles it
// through the shared image pool.
type Stream struct {
	opts   Options
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	frames chan *image.RGBA
	group  *errgroup.Group
}

// NewStream starts the encoder process and the goroutine feeding it.
func NewStream(ctx context.Context, opts Options) (*Stream, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 {
		return nil, errors.Errorf("bad frame geometry %dx%d@%d", opts.Width, opts.Height, opts.FPS)
	}

	if opts.Path == "" {
		return nil, errors.New("output path is empty")
	}

	compiled := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"f":            "rawvideo",
		"pixel_format": "rgba",
		"video_size":   fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate":    opts.FPS,
	}).
		Output(opts.Path, outputArgs(opts)).
		OverWriteOutput().
		Compile()

	cmd := exec.CommandContext(ctx, compiled.Args[0], compiled.Args[1:]...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "open encoder stdin")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "start ffmpeg")
	}

	s := &Stream{
		opts:   opts,
		cmd:    cmd,
		stdin:  stdin,
		frames: make(chan *image.RGBA, frameQueue),
	}

	s.group, _ = errgroup.WithContext(ctx)
	s.group.Go(s.pump)

	return s, nil
}

func outputArgs(opts Options) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
		"r":       opts.FPS,
		"c:v":     opts.Encoder,
	}

	switch opts.Encoder {
	case "h264_videotoolbox":
		args["b:v"] = fmt.Sprintf("%dk", opts.Quality*100)
	case "h264_nvenc":
		args["cq"] = opts.Quality
	default:
		args["crf"] = opts.Quality
		args["preset"] = "medium"
	}

	return args
}

// WriteFrame queues one frame for encoding. The buffer belongs to the
// stream from this point on.
func (s *Stream) WriteFrame(frame *image.RGBA) error {
	b := frame.Bounds()
	if b.Dx() != s.opts.Width || b.Dy() != s.opts.Height {
		system.PutImage(frame)

		return errors.Errorf("frame is %dx%d, encoder expects %dx%d",
			b.Dx(), b.Dy(), s.opts.Width, s.opts.Height)
	}

	s.frames <- frame

	return nil
}

// pump feeds queued frames into the encoder pipe. On a pipe error it keeps
// draining the queue so producers never block, and reports the first error.
func (s *Stream) pump() error {
	var firstErr error

	for frame := range s.frames {
		if firstErr == nil {
			if _, err := s.stdin.Write(frame.Pix); err != nil {
				firstErr = errors.Wrap(err, "write frame to ffmpeg")
			}
		}

		system.PutImage(frame)
	}

	return firstErr
}

// Close flushes remaining frames, closes the pipe and waits for ffmpeg to
// finish the file.
func (s *Stream) Close() error {
	close(s.frames)

	pumpErr := s.group.Wait()

	if err := s.stdin.Close(); err != nil && pumpErr == nil {
		pumpErr = errors.Wrap(err, "close encoder stdin")
	}

	if err := s.cmd.Wait(); err != nil {
		return errors.Wrap(err, "ffmpeg encode")
	}

	return pumpErr
}

// Mux lays the narration track under the silent video. The video stream is
// copied as is; -shortest trims whichever stream runs longer.
func Mux(ctx context.Context, videoPath, audioPath, outPath string) error {
	video := ffmpeg.Input(videoPath)
	audio := ffmpeg.Input(audioPath)

	compiled := ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outPath, ffmpeg.KwArgs{
		"c:v":      "copy",
		"c:a":      "aac",
		"shortest": "",
	}).
		OverWriteOutput().
		Compile()

	cmd := exec.CommandContext(ctx, compiled.Args[0], compiled.Args[1:]...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "mux audio: %s", string(out))
	}

	return nil
}
