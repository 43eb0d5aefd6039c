package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/network"
	"github.com/iridum-cli/iridum/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

type pages map[string]string

func (p pages) Fetch(_ context.Context, url string) ([]byte, error) {
	body, ok := p[url]
	if !ok {
		return nil, &source.NetworkError{URL: url, Status: http.StatusNotFound, Cause: errors.New("not found")}
	}
	return []byte(body), nil
}

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) observe(state State, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

const (
	detailURL = "https://sc.test/it/titles/42-dune"
	playURL   = "https://sc.test/iframe/42"
	embedURL  = "https://vix.test/embed/42?token=x&amp=1"
)

const embedPage = `<html><script>
window.video = {id: 42};
window.masterPlaylist = {
	params: {
		'token': 'T0K3N',
		'expires': '1700000000',
	},
	url: 'https://vix.test/playlist/42?b=1',
}
</script></html>`

func fullSite() pages {
	return pages{
		detailURL: `<html><a class="btn play" href="/watch/42">Play</a></html>`,
		playURL:   `<html><iframe src="https://vix.test/embed/42?token=x&amp;amp=1"></iframe><iframe src="https://ads.test"></iframe></html>`,
		embedURL:  embedPage,
	}
}

func TestAssemble(t *testing.T) {
	Convey("Given a base URL ending in ?b=1", t, func() {
		base := "https://x.test/pl?b=1"

		Convey("Parameters continue the query string", func() {
			So(Assemble(base, "T", "E", false), ShouldEqual, "https://x.test/pl?b=1&token=T&expires=E")
		})

		Convey("The patch flag appends h=1", func() {
			So(Assemble(base, "T", "E", true), ShouldEqual, "https://x.test/pl?b=1&token=T&expires=E&h=1")
		})
	})

	Convey("Given a base URL without ?b=1", t, func() {
		base := "https://x.test/pl"

		Convey("A new query string is started", func() {
			result := Assemble(base, "T", "E", false)
			So(strings.TrimPrefix(result, base), ShouldStartWith, "?token=T&expires=E")
			So(result, ShouldEqual, "https://x.test/pl?token=T&expires=E")
		})

		Convey("The patch flag still appends h=1", func() {
			So(Assemble(base, "T", "E", true), ShouldEqual, "https://x.test/pl?token=T&expires=E&h=1")
		})
	})
}

func TestChain(t *testing.T) {
	Convey("Given a site exposing every hop", t, func() {
		rec := &recorder{}
		chain := New(fullSite(), config.Settings{}, WithObserver(rec.observe))

		Convey("A detail page resolves to an authorized stream", func() {
			res, err := chain.ResolveDetail(context.Background(), detailURL, "")
			So(err, ShouldBeNil)
			So(res.EmbedURL, ShouldEqual, embedURL)
			So(res.PlaylistBaseURL, ShouldEqual, "https://vix.test/playlist/42?b=1")
			So(res.Token, ShouldEqual, "T0K3N")
			So(res.Expiry, ShouldEqual, "1700000000")
			So(res.FinalURL, ShouldEqual, "https://vix.test/playlist/42?b=1&token=T0K3N&expires=1700000000")
			So(rec.states, ShouldResemble, []State{Start, PlayLinkResolved, EmbedResolved, ManifestFound, Assembled})
		})

		Convey("The watch segment becomes iframe", func() {
			link, err := chain.PlayLink(context.Background(), detailURL)
			So(err, ShouldBeNil)
			So(link, ShouldEqual, playURL)
		})

		Convey("The patch setting is honored", func() {
			patched := New(fullSite(), config.Settings{PatchStream: true})
			res, err := patched.Resolve(context.Background(), playURL)
			So(err, ShouldBeNil)
			So(res.FinalURL, ShouldEndWith, "&h=1")
		})
	})

	Convey("Given a detail page without a play anchor", t, func() {
		site := fullSite()
		site[detailURL] = `<html><a class="trailer" href="/watch/42">Trailer</a></html>`

		Convey("The fallback play URL is used", func() {
			res, err := New(site, config.Settings{}).ResolveDetail(context.Background(), detailURL, playURL)
			So(err, ShouldBeNil)
			So(res.Token, ShouldEqual, "T0K3N")
		})

		Convey("Without a fallback it is a play-link extraction error", func() {
			_, err := New(site, config.Settings{}).ResolveDetail(context.Background(), detailURL, "")
			extraction, ok := lo.ErrorsAs[*source.ExtractionError](err)
			So(ok, ShouldBeTrue)
			So(extraction.Hop, ShouldEqual, HopPlayLink)
		})
	})

	Convey("Given a play page without an iframe", t, func() {
		site := fullSite()
		site[playURL] = `<html><video></video></html>`
		rec := &recorder{}

		Convey("The resolution aborts at the embed hop", func() {
			_, err := New(site, config.Settings{}, WithObserver(rec.observe)).Resolve(context.Background(), playURL)
			extraction, ok := lo.ErrorsAs[*source.ExtractionError](err)
			So(ok, ShouldBeTrue)
			So(extraction.Hop, ShouldEqual, HopEmbed)
			So(rec.states[len(rec.states)-1], ShouldEqual, Failed)
		})
	})

	Convey("Given an embed page missing one manifest field", t, func() {
		for _, field := range []string{"url", "token", "expires"} {
			site := fullSite()
			switch field {
			case "url":
				site[embedURL] = strings.Replace(embedPage, "url: 'https://vix.test/playlist/42?b=1'", "", 1)
			case "token":
				site[embedURL] = strings.Replace(embedPage, "'token': 'T0K3N',", "", 1)
			case "expires":
				site[embedURL] = strings.Replace(embedPage, "'expires': '1700000000',", "", 1)
			}

			Convey(fmt.Sprintf("The error names the missing %s", field), func() {
				_, err := New(site, config.Settings{}).Resolve(context.Background(), playURL)
				extraction, ok := lo.ErrorsAs[*source.ExtractionError](err)
				So(ok, ShouldBeTrue)
				So(extraction.Hop, ShouldEqual, HopManifest)
				So(extraction.Field, ShouldEqual, field)
			})
		}
	})

	Convey("Given a failing fetch", t, func() {
		site := fullSite()
		delete(site, embedURL)

		Convey("The network error propagates untouched", func() {
			_, err := New(site, config.Settings{}).Resolve(context.Background(), playURL)
			So(source.IsNetwork(err), ShouldBeTrue)
		})
	})
}

func TestMissingMasterPlaylist(t *testing.T) {
	Convey("Given a served embed page without window.masterPlaylist", t, func() {
		var mu sync.Mutex
		requested := map[string]int{}

		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			requested[r.URL.Path]++
			mu.Unlock()

			switch r.URL.Path {
			case "/it/titles/1-film":
				fmt.Fprint(w, `<a class="play" href="/watch/1">Play</a>`)
			case "/iframe/1":
				fmt.Fprintf(w, `<iframe src="%s/embed/1"></iframe>`, server.URL)
			case "/embed/1":
				fmt.Fprint(w, `<script>window.video = {url: 'https://nope.test/pl'}</script>`)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		rec := &recorder{}
		fetcher := network.NewFetcher(network.WithClient(server.Client()))
		chain := New(fetcher, config.Settings{}, WithObserver(rec.observe))

		_, err := chain.ResolveDetail(context.Background(), server.URL+"/it/titles/1-film", "")

		Convey("It aborts with a manifest extraction error", func() {
			extraction, ok := lo.ErrorsAs[*source.ExtractionError](err)
			So(ok, ShouldBeTrue)
			So(extraction.Hop, ShouldEqual, HopManifest)
			So(extraction.Field, ShouldEqual, "window.masterPlaylist")
		})

		Convey("It never assembles a URL", func() {
			So(rec.states, ShouldNotContain, ManifestFound)
			So(rec.states, ShouldNotContain, Assembled)
			So(rec.states[len(rec.states)-1], ShouldEqual, Failed)
		})

		Convey("Every hop was fetched exactly once", func() {
			So(requested["/it/titles/1-film"], ShouldEqual, 1)
			So(requested["/iframe/1"], ShouldEqual, 1)
			So(requested["/embed/1"], ShouldEqual, 1)
		})
	})
}

func TestResolveAll(t *testing.T) {
	Convey("Given several play URLs, one of them broken", t, func() {
		site := fullSite()
		const brokenURL = "https://sc.test/iframe/404"

		chain := New(site, config.Settings{Workers: 2})
		results, err := chain.ResolveAll(context.Background(), []string{playURL, brokenURL, playURL})
		So(err, ShouldBeNil)

		Convey("Results keep their order and fail independently", func() {
			So(results, ShouldHaveLength, 3)
			So(results[0].Err, ShouldBeNil)
			So(results[0].Resolution.Token, ShouldEqual, "T0K3N")
			So(results[1].PlayURL, ShouldEqual, brokenURL)
			So(source.IsNetwork(results[1].Err), ShouldBeTrue)
			So(results[2].Err, ShouldBeNil)
		})
	})

	Convey("Given no URLs", t, func() {
		results, err := New(pages{}, config.Settings{}).ResolveAll(context.Background(), nil)

		Convey("Nothing is resolved", func() {
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})
	})
}
