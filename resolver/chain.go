// Package resolver walks a title page down to a playable, authorized stream URL.
//
// Every selector and pattern specific to the website lives in this package.
package resolver

import (
	"context"
	"fmt"

	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/log"
	"github.com/iridum-cli/iridum/source"
)

// Fetcher retrieves a page body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Chain runs the hops sequentially. It holds no state between resolutions
// and can be shared by concurrent callers.
type Chain struct {
	fetcher  Fetcher
	settings config.Settings
	observer Observer
}

type Option func(*Chain)

// WithObserver replaces the default logging observer.
func WithObserver(o Observer) Option {
	return func(c *Chain) {
		c.observer = o
	}
}

func New(fetcher Fetcher, settings config.Settings, opts ...Option) *Chain {
	c := &Chain{
		fetcher:  fetcher,
		settings: settings,
		observer: logTransition,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func logTransition(state State, detail string) {
	entry := log.WithFields(log.Fields{"state": state.String()})
	if state == Failed {
		entry.Warn(detail)
		return
	}
	entry.Debug(detail)
}

func (c *Chain) fail(err error) error {
	c.observer(Failed, err.Error())
	return err
}

// ResolveDetail starts from a detail page. Without a play anchor the
// precomputed fallback play URL is used instead, when one is given.
func (c *Chain) ResolveDetail(ctx context.Context, detailURL, fallback string) (source.StreamResolution, error) {
	c.observer(Start, detailURL)

	playURL, err := c.PlayLink(ctx, detailURL)
	switch {
	case err == nil:
	case source.IsExtraction(err) && fallback != "":
		log.Infof("no play link on %s, using %s", detailURL, fallback)
		playURL = fallback
	default:
		return source.StreamResolution{}, c.fail(err)
	}

	c.observer(PlayLinkResolved, playURL)
	return c.fromPlayURL(ctx, playURL)
}

// Resolve starts from a play URL, such as a title's iframe page or an episode play URL.
func (c *Chain) Resolve(ctx context.Context, playURL string) (source.StreamResolution, error) {
	c.observer(Start, playURL)
	c.observer(PlayLinkResolved, playURL)
	return c.fromPlayURL(ctx, playURL)
}

func (c *Chain) fromPlayURL(ctx context.Context, playURL string) (source.StreamResolution, error) {
	embedURL, err := c.EmbedURL(ctx, playURL)
	if err != nil {
		return source.StreamResolution{}, c.fail(err)
	}
	c.observer(EmbedResolved, embedURL)

	manifest, err := c.Manifest(ctx, embedURL)
	if err != nil {
		return source.StreamResolution{}, c.fail(err)
	}
	c.observer(ManifestFound, manifest.URL)

	if err := ctx.Err(); err != nil {
		return source.StreamResolution{}, c.fail(fmt.Errorf("resolution cancelled: %w", err))
	}

	final := Assemble(manifest.URL, manifest.Token, manifest.Expires, c.settings.PatchStream)
	c.observer(Assembled, final)

	return source.StreamResolution{
		PlaylistBaseURL: manifest.URL,
		Token:           manifest.Token,
		Expiry:          manifest.Expires,
		FinalURL:        final,
		EmbedURL:        embedURL,
	}, nil
}
