package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Standard artifact names inside a narration output directory.
const (
	SilenceFile  = "silence.mp3"
	PlaylistFile = "concat.txt"
	FullFile     = "full.mp3"
)

// WriteSilence renders a silence clip of the given length, used as the gap
// between narration clips in the concatenated track.
func WriteSilence(ctx context.Context, path string, seconds float64) error {
	stream := ffmpeg.Input("anullsrc=r=24000:cl=mono", ffmpeg.KwArgs{"f": "lavfi"}).
		Output(path, ffmpeg.KwArgs{
			"t":      fmt.Sprintf("%g", seconds),
			"q:a":    "9",
			"acodec": "libmp3lame",
		}).
		OverWriteOutput()

	return runStream(ctx, stream, "generate silence")
}

// WritePlaylist writes the concat-demuxer playlist: every clip followed by
// the silence clip, except after the last one. Entries are base names, so
// the playlist must live in the same directory as the clips.
func WritePlaylist(path string, clips []string) error {
	var b strings.Builder
	for i, clip := range clips {
		fmt.Fprintf(&b, "file '%s'\n", filepath.Base(clip))
		if i < len(clips)-1 {
			fmt.Fprintf(&b, "file '%s'\n", SilenceFile)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.Wrap(err, "write playlist")
	}

	return nil
}

// Concatenate stitches the playlist into one full-length clip with a stream
// copy, no re-encode.
func Concatenate(ctx context.Context, playlistPath, outPath string) error {
	stream := ffmpeg.Input(playlistPath, ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(outPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput()

	return runStream(ctx, stream, "concatenate audio")
}

// runStream executes an ffmpeg-go pipeline under the caller's context.
// ffmpeg-go only builds the argv here; running it through CommandContext
// keeps the external process cancellable.
func runStream(ctx context.Context, stream *ffmpeg.Stream, action string) error {
	compiled := stream.Compile()

	cmd := exec.CommandContext(ctx, compiled.Args[0], compiled.Args[1:]...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s: %s", action, string(out))
	}

	return nil
}
