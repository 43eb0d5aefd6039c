// Package inline is the non-interactive mode: search, pick, list episodes and
// optionally resolve streams, printing plain URLs or JSON.
package inline

import (
	"context"
	"fmt"
	"os"

	"github.com/iridum-cli/iridum/log"
	"github.com/iridum-cli/iridum/resolver"
	"github.com/iridum-cli/iridum/source"
	"github.com/samber/lo"
)

// Browser reads the catalog.
type Browser interface {
	Domain() string
	Search(ctx context.Context, query string) ([]source.CatalogEntry, error)
	Title(ctx context.Context, href string) (source.TitleDetail, error)
	Season(ctx context.Context, href string, n int) ([]source.Episode, error)
}

// Resolver resolves play URLs concurrently.
type Resolver interface {
	ResolveAll(ctx context.Context, playURLs []string) ([]resolver.Result, error)
}

func Run(ctx context.Context, browser Browser, res Resolver, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	entries, err := browser.Search(ctx, options.Query)
	if err != nil {
		return fmt.Errorf("search %q: %w", options.Query, err)
	}

	if picker, ok := options.TitlePicker.Get(); ok {
		picked := picker(entries)
		entries = []source.CatalogEntry{}
		if entry, ok := picked.Get(); ok {
			entries = append(entries, entry)
		}
	}

	titles := make([]*Title, 0, len(entries))
	for _, entry := range entries {
		title, err := prepare(ctx, browser, entry, options)
		if err != nil {
			return err
		}
		titles = append(titles, title)
	}

	if options.Streams {
		if err := resolve(ctx, res, titles); err != nil {
			return err
		}
	}

	if options.Json {
		return writeJson(options.Out, options.Query, titles)
	}

	for _, title := range titles {
		for _, stream := range streams(title) {
			switch {
			case stream.Resolution != nil:
				fmt.Fprintln(options.Out, stream.Resolution.FinalURL)
			case stream.Error != "":
				log.Warnf("%s: %s", stream.PlayURL, stream.Error)
			default:
				fmt.Fprintln(options.Out, stream.PlayURL)
			}
		}
	}

	return nil
}

func prepare(ctx context.Context, browser Browser, entry source.CatalogEntry, options *Options) (*Title, error) {
	href := entry.Href(browser.Domain())
	title := &Title{Entry: entry, Href: href}

	detail, err := browser.Title(ctx, href)
	if err != nil {
		return nil, fmt.Errorf("title %s: %w", entry.Name, err)
	}
	title.Detail = &detail

	if !detail.IsSeries() {
		title.Stream = &Stream{PlayURL: detail.PlayURL}
		return title, nil
	}

	season := max(options.Season, 1)
	episodes, err := browser.Season(ctx, href, season)
	if err != nil {
		return nil, fmt.Errorf("season %d of %s: %w", season, entry.Name, err)
	}

	if filter, ok := options.EpisodesFilter.Get(); ok {
		episodes = filter(episodes)
	}

	title.Episodes = lo.Map(episodes, func(e source.Episode, _ int) *Episode {
		playURL := e.PlayURL(browser.Domain())
		return &Episode{Episode: e, PlayURL: playURL, Stream: &Stream{PlayURL: playURL}}
	})

	return title, nil
}

func streams(title *Title) []*Stream {
	if title.Stream != nil {
		return []*Stream{title.Stream}
	}
	return lo.Map(title.Episodes, func(e *Episode, _ int) *Stream { return e.Stream })
}

func resolve(ctx context.Context, res Resolver, titles []*Title) error {
	pending := lo.Filter(lo.FlatMap(titles, func(t *Title, _ int) []*Stream { return streams(t) }), func(s *Stream, _ int) bool {
		return s.PlayURL != ""
	})

	results, err := res.ResolveAll(ctx, lo.Map(pending, func(s *Stream, _ int) string { return s.PlayURL }))
	if err != nil {
		return err
	}

	for i, result := range results {
		if result.Err != nil {
			pending[i].Error = result.Err.Error()
			continue
		}
		resolution := result.Resolution
		pending[i].Resolution = &resolution
		pending[i].Headers = resolution.Headers()
	}

	return nil
}
