// Package player drives an external media player.
package player

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Request is everything needed to start playing a resolved stream.
type Request struct {
	URL        string
	Title      string
	Headers    map[string]string
	Start      float64
	Fullscreen bool
}

// Player is a running media player.
type Player interface {
	// Play launches the player with the request.
	Play(req Request) error

	// Position is the current playback position in seconds.
	Position() (float64, error)

	// Duration of the loaded media in seconds.
	Duration() (float64, error)

	// SetSpeed changes the playback rate, 1 being normal speed.
	SetSpeed(speed float64) error

	TogglePause() error

	// Wait is closed when the player exits.
	Wait() <-chan struct{}

	Close() error
}

// Available lists the supported players.
var Available = []string{"mpv", "iina"}

// New returns the player with the given name.
func New(name string) (Player, error) {
	switch strings.ToLower(name) {
	case "mpv":
		return NewMPV(), nil
	case "iina":
		return NewIINA(), nil
	default:
		return nil, fmt.Errorf("unknown player %q, available: %s", name, strings.Join(Available, ", "))
	}
}

// headerFields renders headers as mpv expects them, sorted by name.
func headerFields(headers map[string]string) string {
	names := lo.Keys(headers)
	sort.Strings(names)

	return strings.Join(lo.Map(names, func(name string, _ int) string {
		return fmt.Sprintf("%s: %s", name, strings.ReplaceAll(headers[name], ",", "%2C"))
	}), ",")
}

// sanitizeTitle flattens a title to a single line.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
