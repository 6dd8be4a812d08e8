package video

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

// ConcatListFile is the demuxer list written next to the combined video.
const ConcatListFile = "parts.txt"

// Concat joins finished part videos into one file with the concat demuxer.
// Streams are copied without re-encoding, so all parts must share geometry,
// frame rate and codec parameters.
func Concat(ctx context.Context, outPath string, parts ...string) error {
	if len(parts) == 0 {
		return errors.New("nothing to concatenate")
	}

	listPath := filepath.Join(filepath.Dir(outPath), ConcatListFile)
	if err := writeConcatList(listPath, parts); err != nil {
		return err
	}
	defer os.Remove(listPath)

	compiled := ffmpeg.Input(listPath, ffmpeg.KwArgs{
		"f":    "concat",
		"safe": 0,
	}).
		Output(outPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().
		Compile()

	cmd := exec.CommandContext(ctx, compiled.Args[0], compiled.Args[1:]...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "concatenate %d parts: %s", len(parts), string(out))
	}

	return nil
}

// writeConcatList writes the demuxer list. Paths are made absolute so the
// list's location does not matter to ffmpeg.
func writeConcatList(path string, parts []string) error {
	var sb strings.Builder

	for _, part := range parts {
		abs, err := filepath.Abs(part)
		if err != nil {
			return errors.Wrapf(err, "resolve part %s", part)
		}

		fmt.Fprintf(&sb, "file '%s'\n", abs)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return errors.Wrap(err, "write concat list")
	}

	return nil
}
