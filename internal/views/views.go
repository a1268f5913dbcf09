// Package views derives the board, library, and dashboard projections from
// the collection store's entries. Every function is pure: inputs are never
// mutated and the same entries plus the same FilterSpec always produce the
// same output, so the board, the library list, and the dashboard can all
// recompute independently from one source of truth.
package views

import (
	"math"
	"sort"
	"strings"

	"github.com/desertthunder/questlog/internal/models"
)

// Matches reports whether a single entry passes the spec's filters:
// case-insensitive title substring, exact platform membership, exact genre
// membership. Empty filter fields pass everything.
func Matches(e models.CollectionEntry, spec models.FilterSpec) bool {
	if spec.Search != "" {
		if !strings.Contains(strings.ToLower(e.Game.Title), strings.ToLower(spec.Search)) {
			return false
		}
	}
	if spec.Platform != "" && !containsString(e.Game.Platforms, spec.Platform) {
		return false
	}
	if spec.Genre != "" && !containsString(e.Game.Genres, spec.Genre) {
		return false
	}
	return true
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// Apply filters then stably sorts the entries per the spec, returning a fresh
// slice. Entries with equal keys keep their prior relative order.
func Apply(entries []models.CollectionEntry, spec models.FilterSpec) []models.CollectionEntry {
	out := make([]models.CollectionEntry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, spec) {
			out = append(out, e)
		}
	}

	less := comparator(spec.Sort)
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func comparator(key models.SortKey) func(a, b models.CollectionEntry) bool {
	switch key {
	case models.SortTitleAsc:
		return func(a, b models.CollectionEntry) bool {
			return strings.ToLower(a.Game.Title) < strings.ToLower(b.Game.Title)
		}
	case models.SortTitleDesc:
		return func(a, b models.CollectionEntry) bool {
			return strings.ToLower(a.Game.Title) > strings.ToLower(b.Game.Title)
		}
	case models.SortUpdatedAsc:
		return func(a, b models.CollectionEntry) bool {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
	case models.SortUpdatedDesc:
		return func(a, b models.CollectionEntry) bool {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	case models.SortRatingAsc:
		return func(a, b models.CollectionEntry) bool {
			return a.Rating < b.Rating
		}
	case models.SortRatingDesc:
		return func(a, b models.CollectionEntry) bool {
			return a.Rating > b.Rating
		}
	default:
		return nil
	}
}

// StatusGroup is one board column: a status and its entries in source order.
type StatusGroup struct {
	Status  models.Status
	Entries []models.CollectionEntry
}

// GroupByStatus partitions entries into the six status buckets in canonical
// column order. Every status gets a bucket even when empty; entries keep
// their source-list order within a bucket.
func GroupByStatus(entries []models.CollectionEntry) []StatusGroup {
	groups := make([]StatusGroup, len(models.Statuses))
	index := make(map[models.Status]int, len(models.Statuses))
	for i, st := range models.Statuses {
		groups[i] = StatusGroup{Status: st, Entries: []models.CollectionEntry{}}
		index[st] = i
	}

	for _, e := range entries {
		if i, ok := index[e.Status]; ok {
			groups[i].Entries = append(groups[i].Entries, e)
		}
	}
	return groups
}

// PlatformCount is one row of the dashboard's platform frequency table.
type PlatformCount struct {
	Platform string
	Count    int
}

// Summary holds the dashboard aggregates computed over the full, unfiltered
// collection.
type Summary struct {
	Total          int
	ByStatus       map[models.Status]int
	TotalHours     float64
	CompletionRate int
	TopPlatforms   []PlatformCount
	Recent         []models.CollectionEntry
}

// topPlatformLimit and recentLimit bound the dashboard tables.
const (
	topPlatformLimit = 5
	recentLimit      = 5
)

// Aggregate computes the dashboard summary: counts per status, total
// playtime, completion rate (rounded percentage, 0 for an empty collection),
// the top platforms by selected platform (ties broken by first encounter),
// and the most recently updated entries.
func Aggregate(entries []models.CollectionEntry) Summary {
	sum := Summary{ByStatus: make(map[models.Status]int, len(models.Statuses))}
	for _, st := range models.Statuses {
		sum.ByStatus[st] = 0
	}

	platformCounts := map[string]int{}
	platformOrder := []string{}

	for _, e := range entries {
		sum.Total++
		sum.ByStatus[e.Status]++
		sum.TotalHours += e.PlaytimeHours

		if p := e.SelectedPlatform; p != "" {
			if _, seen := platformCounts[p]; !seen {
				platformOrder = append(platformOrder, p)
			}
			platformCounts[p]++
		}
	}

	if sum.Total > 0 {
		completed := sum.ByStatus[models.StatusCompleted]
		sum.CompletionRate = int(math.Round(100 * float64(completed) / float64(sum.Total)))
	}

	counts := make([]PlatformCount, 0, len(platformOrder))
	for _, p := range platformOrder {
		counts = append(counts, PlatformCount{Platform: p, Count: platformCounts[p]})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if len(counts) > topPlatformLimit {
		counts = counts[:topPlatformLimit]
	}
	sum.TopPlatforms = counts

	recent := make([]models.CollectionEntry, len(entries))
	copy(recent, entries)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].UpdatedAt.After(recent[j].UpdatedAt) })
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	sum.Recent = recent

	return sum
}

// Facets returns the sorted distinct platform and genre values across the
// collection, for populating filter menus.
func Facets(entries []models.CollectionEntry) (platforms, genres []string) {
	pSet := map[string]bool{}
	gSet := map[string]bool{}

	for _, e := range entries {
		for _, p := range e.Game.Platforms {
			pSet[p] = true
		}
		for _, g := range e.Game.Genres {
			gSet[g] = true
		}
	}

	for p := range pSet {
		platforms = append(platforms, p)
	}
	for g := range gSet {
		genres = append(genres, g)
	}
	sort.Strings(platforms)
	sort.Strings(genres)
	return platforms, genres
}
