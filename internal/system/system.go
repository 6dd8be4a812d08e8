// Package system holds host-level concerns shared by both pipeline stages:
// frame buffer pooling, tool discovery and a memory preflight.
package system

import (
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/mem"
)

// memoryHeadroom is how many frame buffers worth of memory the preflight
// wants free beyond the encoder queue itself.
const memoryHeadroom = 4

// CheckTools verifies the external binaries both stages shell out to.
func CheckTools(names ...string) error {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			return errors.Wrapf(err, "required tool %q not found in PATH", name)
		}
	}

	return nil
}

// CheckMemory fails early when the host does not have enough free memory
// for the frame pipeline at the requested geometry.
func CheckMemory(width, height, queueDepth int) error {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return errors.Wrap(err, "read memory stats")
	}

	frameBytes := uint64(width) * uint64(height) * 4
	need := frameBytes * uint64(queueDepth+memoryHeadroom)

	if vm.Available < need {
		return errors.Errorf("not enough free memory: need %d MiB for %dx%d frames, have %d MiB",
			need/(1<<20), width, height, vm.Available/(1<<20))
	}

	return nil
}

// BestH264Encoder picks the fastest available h264 encoder: hardware when
// ffmpeg advertises one, libx264 otherwise.
func BestH264Encoder() string {
	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}

	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), name) {
			return name
		}
	}

	return "libx264"
}
