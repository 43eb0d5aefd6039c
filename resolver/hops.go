package resolver

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/iridum-cli/iridum/source"
	"github.com/iridum-cli/iridum/util"
)

const masterPlaylistMarker = "window.masterPlaylist"

var (
	playlistURLPattern = regexp.MustCompile(`url:\s*'(?P<value>[^']+)'`)
	tokenPattern       = regexp.MustCompile(`'token':\s*'(?P<value>[^']+)'`)
	expiresPattern     = regexp.MustCompile(`'expires':\s*'(?P<value>[^']+)'`)
)

// Manifest holds the values scraped from the embed page script.
type Manifest struct {
	URL     string
	Token   string
	Expires string
}

func (c *Chain) document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &source.ParseError{Stage: "html", Cause: fmt.Errorf("%s: %w", pageURL, err)}
	}
	return doc, nil
}

// PlayLink reads the a.play anchor of a detail page and turns its watch link into an iframe link.
func (c *Chain) PlayLink(ctx context.Context, detailURL string) (string, error) {
	doc, err := c.document(ctx, detailURL)
	if err != nil {
		return "", err
	}

	href, ok := doc.Find("a.play").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", &source.ExtractionError{Hop: HopPlayLink, Field: "a.play", URL: detailURL}
	}

	link, err := absolute(detailURL, href)
	if err != nil {
		return "", &source.ExtractionError{Hop: HopPlayLink, Field: "a.play href", URL: detailURL}
	}

	segments := strings.Split(link.Path, "/")
	for i, segment := range segments {
		if segment == "watch" {
			segments[i] = "iframe"
		}
	}
	link.Path = strings.Join(segments, "/")
	link.RawPath = ""

	return link.String(), nil
}

// EmbedURL reads the src of the first iframe of a play page.
func (c *Chain) EmbedURL(ctx context.Context, playURL string) (string, error) {
	doc, err := c.document(ctx, playURL)
	if err != nil {
		return "", err
	}

	src, ok := doc.Find("iframe").First().Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return "", &source.ExtractionError{Hop: HopEmbed, Field: "iframe src", URL: playURL}
	}

	embed, err := absolute(playURL, src)
	if err != nil {
		return "", &source.ExtractionError{Hop: HopEmbed, Field: "iframe src", URL: playURL}
	}

	return embed.String(), nil
}

// Manifest scans the raw embed page for the master playlist declaration.
// url, token and expires are each required.
func (c *Chain) Manifest(ctx context.Context, embedURL string) (Manifest, error) {
	body, err := c.fetcher.Fetch(ctx, embedURL)
	if err != nil {
		return Manifest{}, err
	}

	text := string(body)
	if !strings.Contains(text, masterPlaylistMarker) {
		return Manifest{}, &source.ExtractionError{Hop: HopManifest, Field: masterPlaylistMarker, URL: embedURL}
	}

	var m Manifest
	for _, field := range []struct {
		name    string
		pattern *regexp.Regexp
		target  *string
	}{
		{"url", playlistURLPattern, &m.URL},
		{"token", tokenPattern, &m.Token},
		{"expires", expiresPattern, &m.Expires},
	} {
		value, ok := util.ReGroups(field.pattern, text)["value"]
		if !ok || value == "" {
			return Manifest{}, &source.ExtractionError{Hop: HopManifest, Field: field.name, URL: embedURL}
		}
		*field.target = value
	}

	return m, nil
}

func absolute(base, ref string) (*url.URL, error) {
	b, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, err
	}
	return b.ResolveReference(r), nil
}
