package cmd

import (
	"fmt"
	"os"

	"github.com/iridum-cli/iridum/color"
	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/icon"
	"github.com/iridum-cli/iridum/log"
	"github.com/iridum-cli/iridum/network"
	"github.com/iridum-cli/iridum/pageprops"
	"github.com/iridum-cli/iridum/progress"
	"github.com/iridum-cli/iridum/resolver"
	"github.com/iridum-cli/iridum/site"
	"github.com/iridum-cli/iridum/source"
	"github.com/iridum-cli/iridum/style"
	"github.com/iridum-cli/iridum/where"
)

func newFetcher(settings config.Settings) *network.Fetcher {
	return network.NewFetcher(
		network.WithClient(network.NewClient(settings.TLSFingerprint)),
		network.WithHeaders(network.HeadersFor(settings.UserAgentMode)),
	)
}

func newSite(settings config.Settings) *site.Client {
	return site.New(newFetcher(settings), pageprops.Default, settings)
}

func newChain(settings config.Settings, opts ...resolver.Option) *resolver.Chain {
	return resolver.New(newFetcher(settings), settings, opts...)
}

// openTracker keeps progress in memory only when saving is disabled.
func openTracker(settings config.Settings) (*progress.Tracker, error) {
	if !settings.SaveProgress {
		return progress.New(), nil
	}
	return progress.Open(where.Progress())
}

// episodeOf finds episode number n of a season.
func episodeOf(episodes []source.Episode, n int) (source.Episode, error) {
	for _, e := range episodes {
		if e.Number == n {
			return e, nil
		}
	}
	return source.Episode{}, fmt.Errorf("episode %d not found", n)
}

// printHop reports resolution steps on stderr, for --verbose.
func printHop(state resolver.State, detail string) {
	log.WithFields(log.Fields{"state": state.String()}).Debug(detail)

	symbol := icon.Progress
	if state == resolver.Failed {
		symbol = icon.Fail
	}
	_, _ = fmt.Fprintf(os.Stderr, "%s %s %s\n", icon.Get(symbol), style.Fg(color.Purple)(state.String()), style.Faint(detail))
}
