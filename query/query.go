// Package query keeps the search history and suggests past queries.
//
// Queries are only ever removed by the user.
package query

import (
	"strings"
	"sync"

	"github.com/iridum-cli/iridum/filesystem"
	"github.com/iridum-cli/iridum/key"
	"github.com/iridum-cli/iridum/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var cacher = sync.OnceValue(func() *gache.Cache[[]*queryRecord] {
	return gache.New[[]*queryRecord](&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	})
})

func load() ([]*queryRecord, error) {
	cached, expired, err := cacher().Get()
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, nil
	}
	return cached, nil
}

// Remember appends q to the history when it is new and bumps its rank otherwise.
func Remember(q string) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	records, err := load()
	if err != nil {
		return err
	}

	if record, ok := lo.Find(records, func(r *queryRecord) bool { return r.Query == q }); ok {
		record.Rank++
	} else {
		records = append(records, &queryRecord{Rank: 1, Query: q})
	}

	return cacher().Set(records)
}

// List returns the history in the order queries were first made.
func List() ([]string, error) {
	records, err := load()
	if err != nil {
		return nil, err
	}
	return lo.Map(records, func(r *queryRecord, _ int) string { return r.Query }), nil
}

// Remove deletes a single query. Removing an unknown query is not an error.
func Remove(q string) error {
	q = sanitize(q)
	records, err := load()
	if err != nil {
		return err
	}

	return cacher().Set(lo.Reject(records, func(r *queryRecord, _ int) bool { return r.Query == q }))
}

// Clear deletes the whole history.
func Clear() error {
	return cacher().Set([]*queryRecord{})
}

// Suggest returns the most relevant past query for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns past queries fuzzily matching q, most used first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	records, err := load()
	if err != nil {
		return []string{}
	}

	q = sanitize(q)
	matches := lo.Filter(records, func(r *queryRecord, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})

	slices.SortStableFunc(matches, func(a, b *queryRecord) int {
		return b.Rank - a.Rank
	})

	return lo.Map(matches, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
