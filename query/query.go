// Package query remembers address searches per city and suggests them back while typing.
package query

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/filesystem"
	"github.com/tonneli-cli/tonneli/key"
	"github.com/tonneli-cli/tonneli/where"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

// history maps a city ID to its remembered queries.
type history map[string]map[string]*queryRecord

var cacher = gache.New[history](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: filesystem.CacheFs{},
	},
)

var suggestionCache = make(map[string][]*queryRecord)

func load() history {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return make(history)
	}
	return cached
}

// Remember records a query for the city or raises its rank by weight.
func Remember(city, q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	cached := load()
	records, ok := cached[city]
	if !ok {
		records = make(map[string]*queryRecord)
		cached[city] = records
	}

	if record, ok := records[q]; ok {
		record.Rank += weight
	} else {
		records[q] = &queryRecord{Rank: weight, Query: q}
	}

	for k := range suggestionCache {
		if strings.HasPrefix(k, city+"\x00") {
			delete(suggestionCache, k)
		}
	}

	return cacher.Set(cached)
}

// Suggest returns the best remembered query of the city matching the partial input.
func Suggest(city, q string) mo.Option[string] {
	suggestions := SuggestMany(city, q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns the remembered queries of the city matching the partial input, highest rank first.
func SuggestMany(city, q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)
	cacheKey := city + "\x00" + q
	records, ok := suggestionCache[cacheKey]
	if !ok {
		for _, record := range load()[city] {
			if fuzzy.Match(q, record.Query) {
				records = append(records, record)
			}
		}

		slices.SortFunc(records, func(a, b *queryRecord) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Query, b.Query)
		})

		suggestionCache[cacheKey] = records
	}

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
