// Package site reads catalog pages of the streaming website.
package site

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/iridum-cli/iridum/catalog"
	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/log"
	"github.com/iridum-cli/iridum/pageprops"
	"github.com/iridum-cli/iridum/source"
)

// Fetcher downloads a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client builds page URLs from the configured domain.
type Client struct {
	fetcher   Fetcher
	extractor pageprops.Extractor
	domain    string
}

func New(fetcher Fetcher, extractor pageprops.Extractor, settings config.Settings) *Client {
	return &Client{
		fetcher:   fetcher,
		extractor: extractor,
		domain:    settings.BaseDomain,
	}
}

// Domain is the host every URL is built on.
func (c *Client) Domain() string {
	return c.domain
}

// SearchURL is the archive page listing titles matching query.
func (c *Client) SearchURL(query string) string {
	return fmt.Sprintf("https://%s/it/archive?search=%s", c.domain, url.QueryEscape(strings.TrimSpace(query)))
}

// HomeURL is the landing page with the sliders.
func (c *Client) HomeURL() string {
	return fmt.Sprintf("https://%s/it", c.domain)
}

// SeasonURL is the page of a title with season n loaded.
func SeasonURL(href string, n int) string {
	return fmt.Sprintf("%s/stagione-%d", strings.TrimRight(href, "/"), n)
}

func (c *Client) props(ctx context.Context, pageURL string) (pageprops.Props, error) {
	body, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	props, err := c.extractor.Extract(body)
	if err != nil {
		log.WithFields(log.Fields{"url": pageURL}).Warnf("page props: %v", err)
		return nil, err
	}

	return props, nil
}

// Search returns the catalog entries matching query.
func (c *Client) Search(ctx context.Context, query string) ([]source.CatalogEntry, error) {
	props, err := c.props(ctx, c.SearchURL(query))
	if err != nil {
		return nil, err
	}
	return catalog.ToCatalogEntries(props), nil
}

// Home returns the sliders of the landing page.
func (c *Client) Home(ctx context.Context) ([]source.Slider, error) {
	props, err := c.props(ctx, c.HomeURL())
	if err != nil {
		return nil, err
	}
	return catalog.ToSliders(props), nil
}

// Title reads the detail page at href. A movie gets its play URL filled in.
func (c *Client) Title(ctx context.Context, href string) (source.TitleDetail, error) {
	props, err := c.props(ctx, href)
	if err != nil {
		return source.TitleDetail{}, err
	}

	detail, err := catalog.ToTitleDetail(props)
	if err != nil {
		return source.TitleDetail{}, err
	}

	if detail.ID > 0 {
		detail.PlayURL = source.MoviePlayURL(c.domain, detail.ID)
	}
	return detail, nil
}

// Season returns the episodes of season n of the title at href.
func (c *Client) Season(ctx context.Context, href string, n int) ([]source.Episode, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid season %d", n)
	}

	props, err := c.props(ctx, SeasonURL(href, n))
	if err != nil {
		return nil, err
	}
	return catalog.ToEpisodes(props), nil
}
