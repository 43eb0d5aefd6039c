// Package watch runs a playback session: resolve, play, resume and record progress.
package watch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/log"
	"github.com/iridum-cli/iridum/player"
	"github.com/iridum-cli/iridum/progress"
	"github.com/iridum-cli/iridum/source"
)

// Resolver turns a play URL into a playable stream.
type Resolver interface {
	Resolve(ctx context.Context, playURL string) (source.StreamResolution, error)
}

// Target is what to play. Progress is keyed by PlayURL. Siblings are the play
// URLs of the other episodes of the same title, used for overall progress.
type Target struct {
	Title    string
	PlayURL  string
	Siblings []string
}

// Update is sent to the observer after every recorded sample.
type Update struct {
	Key     string
	Entry   progress.Entry
	Overall float64
}

type sample struct {
	position float64
	duration float64
}

const (
	defaultInterval = time.Second
	syncEvery       = 10
)

type Option func(*Session)

// WithInterval changes how often the player is sampled.
func WithInterval(d time.Duration) Option {
	return func(s *Session) {
		s.interval = d
	}
}

// WithObserver is called from the session goroutine after each recorded sample.
func WithObserver(fn func(Update)) Option {
	return func(s *Session) {
		s.observer = fn
	}
}

// Session plays a single target. The goroutine calling Run owns the progress
// writes for the target; the sampler only reads the player.
type Session struct {
	player   player.Player
	resolver Resolver
	tracker  *progress.Tracker
	settings config.Settings
	interval time.Duration
	observer func(Update)
	holding  atomic.Bool
}

func New(p player.Player, resolver Resolver, tracker *progress.Tracker, settings config.Settings, opts ...Option) *Session {
	s := &Session{
		player:   p,
		resolver: resolver,
		tracker:  tracker,
		settings: settings,
		interval: defaultInterval,
		observer: func(Update) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run resolves the target, starts playback at the last known position and
// records progress until the player exits or ctx is cancelled.
func (s *Session) Run(ctx context.Context, target Target) error {
	resolution, err := s.resolver.Resolve(ctx, target.PlayURL)
	if err != nil {
		return err
	}

	start := s.tracker.LastPosition(target.PlayURL).OrElse(0)
	if start > 0 {
		log.Infof("resuming %s at %.0fs", target.PlayURL, start)
	}

	err = s.player.Play(player.Request{
		URL:        resolution.FinalURL,
		Title:      target.Title,
		Headers:    resolution.Headers(),
		Start:      start,
		Fullscreen: s.settings.ForceLandscape,
	})
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}

	samples := make(chan sample)
	go s.sample(ctx, samples)

	keys := append([]string{target.PlayURL}, target.Siblings...)
	recorded := 0
	for smp := range samples {
		if !s.tracker.Record(target.PlayURL, smp.position, smp.duration) {
			continue
		}

		recorded++
		if recorded%syncEvery == 0 {
			s.sync()
		}

		s.observer(Update{
			Key:     target.PlayURL,
			Entry:   s.tracker.Get(target.PlayURL).OrEmpty(),
			Overall: s.tracker.Overall(keys...),
		})
	}

	s.sync()

	if err := ctx.Err(); err != nil {
		_ = s.player.Close()
		return err
	}
	return nil
}

func (s *Session) sample(ctx context.Context, out chan<- sample) {
	defer close(out)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.player.Wait():
			return
		case <-ticker.C:
			position, err := s.player.Position()
			if err != nil {
				continue
			}

			// unknown while buffering
			duration, err := s.player.Duration()
			if err != nil {
				duration = 0
			}

			select {
			case out <- sample{position: position, duration: duration}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Session) sync() {
	if err := s.tracker.Sync(); err != nil {
		log.Warnf("save progress: %v", err)
	}
}

// HoldSpeed switches playback to the configured hold speed.
func (s *Session) HoldSpeed() error {
	if err := s.player.SetSpeed(s.settings.HoldSpeed); err != nil {
		return err
	}
	s.holding.Store(true)
	return nil
}

// ReleaseSpeed returns to normal speed.
func (s *Session) ReleaseSpeed() error {
	if err := s.player.SetSpeed(1); err != nil {
		return err
	}
	s.holding.Store(false)
	return nil
}

// ToggleSpeed flips between hold speed and normal speed.
func (s *Session) ToggleSpeed() error {
	if s.holding.Load() {
		return s.ReleaseSpeed()
	}
	return s.HoldSpeed()
}
