package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/iridum-cli/iridum/resolver"
	"github.com/iridum-cli/iridum/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeBrowser struct{}

func (fakeBrowser) Domain() string { return "sc.test" }

func (fakeBrowser) Search(_ context.Context, query string) ([]source.CatalogEntry, error) {
	if query == "none" {
		return nil, nil
	}
	return []source.CatalogEntry{
		{Name: "Film", ID: 1, Slug: "film", PosterImageFilename: "f.webp"},
		{Name: "Show", ID: 2, Slug: "show", PosterImageFilename: "s.webp"},
	}, nil
}

func (fakeBrowser) Title(_ context.Context, href string) (source.TitleDetail, error) {
	if strings.HasSuffix(href, "2-show") {
		return source.TitleDetail{ID: 2, Name: "Show", SeasonsCount: 1, PlayURL: "https://sc.test/iframe/2"}, nil
	}
	return source.TitleDetail{ID: 1, Name: "Film", PlayURL: "https://sc.test/iframe/1"}, nil
}

func (fakeBrowser) Season(_ context.Context, _ string, n int) ([]source.Episode, error) {
	return []source.Episode{
		{ID: 20, Name: "Pilot", Number: 1, TitleID: 2},
		{ID: 21, Name: "Finale", Number: 2, TitleID: 2},
	}, nil
}

type fakeResolver struct{}

func (fakeResolver) ResolveAll(_ context.Context, urls []string) ([]resolver.Result, error) {
	return lo.Map(urls, func(u string, _ int) resolver.Result {
		if strings.HasSuffix(u, "episode_id=21") {
			return resolver.Result{PlayURL: u, Err: errors.New("no iframe")}
		}
		return resolver.Result{PlayURL: u, Resolution: source.StreamResolution{FinalURL: u + "#stream", EmbedURL: "https://vix.test/e"}}
	}), nil
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	Convey("Given a json run over every title", t, func() {
		var buf bytes.Buffer
		err := Run(ctx, fakeBrowser{}, fakeResolver{}, &Options{Out: &buf, Query: "x", Json: true})
		So(err, ShouldBeNil)

		var output Output
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)

		Convey("Movies get a play URL and series get episodes", func() {
			So(output.Result, ShouldHaveLength, 2)
			So(output.Result[0].Stream.PlayURL, ShouldEqual, "https://sc.test/iframe/1")
			So(output.Result[1].Episodes, ShouldHaveLength, 2)
			So(output.Result[1].Episodes[0].PlayURL, ShouldEqual, "https://sc.test/iframe/2?episode_id=20")
			So(output.Result[1].Href, ShouldEqual, "https://sc.test/it/titles/2-show")
		})
	})

	Convey("Given a plain run with streams", t, func() {
		var buf bytes.Buffer
		picker := lo.Must(ParseTitlePicker("exact", "show"))
		err := Run(ctx, fakeBrowser{}, fakeResolver{}, &Options{
			Out:         &buf,
			Query:       "x",
			Streams:     true,
			TitlePicker: mo.Some(picker),
		})
		So(err, ShouldBeNil)

		Convey("Resolved URLs are printed and failures skipped", func() {
			So(strings.TrimSpace(buf.String()), ShouldEqual, "https://sc.test/iframe/2?episode_id=20#stream")
		})
	})

	Convey("Given a json run with streams", t, func() {
		var buf bytes.Buffer
		filter := lo.Must(ParseEpisodesFilter("last"))
		err := Run(ctx, fakeBrowser{}, fakeResolver{}, &Options{
			Out:            &buf,
			Query:          "x",
			Json:           true,
			Streams:        true,
			EpisodesFilter: mo.Some(filter),
		})
		So(err, ShouldBeNil)

		var output Output
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)

		Convey("Each stream carries its resolution or error", func() {
			So(output.Result[0].Stream.Resolution.FinalURL, ShouldEqual, "https://sc.test/iframe/1#stream")
			So(output.Result[0].Stream.Headers["Referer"], ShouldEqual, "https://vix.test/e")
			So(output.Result[1].Episodes, ShouldHaveLength, 1)
			So(output.Result[1].Episodes[0].Stream.Error, ShouldEqual, "no iframe")
		})
	})

	Convey("Given a search without results", t, func() {
		var buf bytes.Buffer
		So(Run(ctx, fakeBrowser{}, fakeResolver{}, &Options{Out: &buf, Query: "none", Json: true}), ShouldBeNil)

		Convey("The result is an empty list", func() {
			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "none")
			So(output.Result, ShouldHaveLength, 0)
			So(buf.String(), ShouldContainSubstring, `"result":[]`)
		})
	})
}

func TestParsers(t *testing.T) {
	entries := []source.CatalogEntry{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	episodes := []source.Episode{{Name: "Pilot"}, {Name: "Two"}, {Name: "Three"}, {Name: "Pilot reprise"}}
	names := func(es []source.Episode) []string {
		return lo.Map(es, func(e source.Episode, _ int) string { return e.Name })
	}

	Convey("Title pickers", t, func() {
		for kind, want := range map[string]string{"first": "A", "last": "C", "1": "B", "99": "C"} {
			picker, err := ParseTitlePicker(kind, "")
			So(err, ShouldBeNil)
			So(picker(entries).MustGet().Name, ShouldEqual, want)
		}

		exact := lo.Must(ParseTitlePicker("exact", "b"))
		So(exact(entries).MustGet().Name, ShouldEqual, "B")
		So(exact(nil).IsAbsent(), ShouldBeTrue)

		_, err := ParseTitlePicker("random", "")
		So(err, ShouldNotBeNil)
	})

	Convey("Episode filters", t, func() {
		cases := map[string][]string{
			"all":     {"Pilot", "Two", "Three", "Pilot reprise"},
			"first":   {"Pilot"},
			"last":    {"Pilot reprise"},
			"1":       {"Two"},
			"9":       {},
			"1-2":     {"Two", "Three"},
			"2-10":    {"Three", "Pilot reprise"},
			"@pilot@": {"Pilot", "Pilot reprise"},
		}
		for description, want := range cases {
			filter, err := ParseEpisodesFilter(description)
			So(err, ShouldBeNil)
			So(names(filter(episodes)), ShouldResemble, want)
		}

		So(names(lo.Must(ParseEpisodesFilter("first"))(nil)), ShouldBeEmpty)

		for _, bad := range []string{"3-1", "x", "-1", "a-b"} {
			_, err := ParseEpisodesFilter(bad)
			So(err, ShouldNotBeNil)
		}
	})
}
