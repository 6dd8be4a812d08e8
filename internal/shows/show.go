// Package shows holds the animated pieces: each show binds drawing actions
// to the segments of its narration script, or drives the scene freely when
// it has no voice track.
package shows

import (
	"errors"
	"fmt"

	"github.com/ivlev/algo2video/internal/player"
	"github.com/ivlev/algo2video/internal/scene"
)

// ErrUnknown is returned when no show matches the requested name.
var ErrUnknown = errors.New("unknown show")

// Show is one animated piece.
type Show struct {
	Name string

	// Script names the bundled narration script. Empty for silent shows.
	Script string

	// Build binds one action per narration segment to the scene. Only set
	// for narrated shows.
	Build func(s *scene.Scene) map[string]player.Action

	// Run drives the scene directly. Only set for silent shows.
	Run func(s *scene.Scene) error
}

// Narrated reports whether the show follows a narration manifest.
func (sh *Show) Narrated() bool {
	return sh.Script != ""
}

var registry = []*Show{binarySearchShow, dfsShow, dijkstraShow, gcdLCMShow}

// Lookup finds a show by name.
func Lookup(name string) (*Show, error) {
	for _, sh := range registry {
		if sh.Name == name {
			return sh, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Names lists the available shows.
func Names() []string {
	names := make([]string, len(registry))
	for i, sh := range registry {
		names[i] = sh.Name
	}

	return names
}
