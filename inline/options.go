package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iridum-cli/iridum/source"
	"github.com/iridum-cli/iridum/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	TitlePicker    func([]source.CatalogEntry) mo.Option[source.CatalogEntry]
	EpisodesFilter func([]source.Episode) []source.Episode
)

type Options struct {
	Out            io.Writer
	Query          string
	Json           bool
	Season         int
	Streams        bool
	TitlePicker    mo.Option[TitlePicker]
	EpisodesFilter mo.Option[EpisodesFilter]
}

// ParseTitlePicker understands first, last, exact (the name equals value) and a zero based index.
func ParseTitlePicker(kind, value string) (TitlePicker, error) {
	pick := func(fn func([]source.CatalogEntry) (source.CatalogEntry, bool)) TitlePicker {
		return func(entries []source.CatalogEntry) mo.Option[source.CatalogEntry] {
			if len(entries) == 0 {
				return mo.None[source.CatalogEntry]()
			}
			if entry, ok := fn(entries); ok {
				return mo.Some(entry)
			}
			return mo.None[source.CatalogEntry]()
		}
	}

	switch kind {
	case "first":
		return pick(func(e []source.CatalogEntry) (source.CatalogEntry, bool) { return e[0], true }), nil
	case "last":
		return pick(func(e []source.CatalogEntry) (source.CatalogEntry, bool) { return e[len(e)-1], true }), nil
	case "exact":
		return pick(func(e []source.CatalogEntry) (source.CatalogEntry, bool) {
			return lo.Find(e, func(c source.CatalogEntry) bool { return strings.EqualFold(c.Name, value) })
		}), nil
	default:
		idx, err := strconv.ParseUint(kind, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unknown title picker: %s", kind)
		}
		return pick(func(e []source.CatalogEntry) (source.CatalogEntry, bool) {
			return e[util.Min(int(idx), len(e)-1)], true
		}), nil
	}
}

// ParseEpisodesFilter understands first, last, all, a zero based index,
// a range from-to and a name substring written as @text@.
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	switch description {
	case "all":
		return func(episodes []source.Episode) []source.Episode { return episodes }, nil
	case "first":
		return func(episodes []source.Episode) []source.Episode {
			return episodes[:util.Min(1, len(episodes))]
		}, nil
	case "last":
		return func(episodes []source.Episode) []source.Episode {
			return episodes[util.Max(len(episodes)-1, 0):]
		}, nil
	}

	if len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(episodes []source.Episode) []source.Episode {
			return lo.Filter(episodes, func(e source.Episode, _ int) bool {
				return strings.Contains(strings.ToLower(e.Name), sub)
			})
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.Atoi(from)
		end, err2 := strconv.Atoi(to)
		if err1 != nil || err2 != nil || start < 0 || end < start {
			return nil, fmt.Errorf("invalid episode range: %s", description)
		}
		return func(episodes []source.Episode) []source.Episode {
			low, high := util.Min(start, len(episodes)), util.Min(end+1, len(episodes))
			return episodes[low:high]
		}, nil
	}

	idx, err := strconv.Atoi(description)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("invalid episode filter: %s", description)
	}
	return func(episodes []source.Episode) []source.Episode {
		if idx >= len(episodes) {
			return []source.Episode{}
		}
		return episodes[idx : idx+1]
	}, nil
}
