package views

import (
	"regexp"
	"sort"
	"strings"

	"github.com/campus-voice/campusvoice/src/CVApi/types"
)

// Sort orders accepted by Sort.
const (
	SortNewest        = "newest"
	SortByEndorsement = "byEndorsement"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// tagMarker starts a hashtag-like token in proposal content.
const tagMarker = '#'

// Filter keeps proposals matching the category (exact, or "all") AND the
// search term (case-insensitive substring of title or content).
func Filter(ps []types.Proposal, category, search string) []types.Proposal {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]types.Proposal, 0, len(ps))
	for _, p := range ps {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Content), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort returns a sorted copy. Ties keep the input order.
func Sort(ps []types.Proposal, order string) []types.Proposal {
	out := make([]types.Proposal, len(ps))
	copy(out, ps)
	switch order {
	case SortByEndorsement:
		sort.SliceStable(out, func(i, j int) bool {
			return len(out[i].Endorsements) > len(out[j].Endorsements)
		})
	default: // newest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// TagCount is one trending tag with its frequency.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TrendingTags scans every proposal's content for marker-prefixed tokens
// (marker plus a run of non-whitespace) and returns the limit most
// frequent, ties broken by first appearance. A non-positive limit means 5.
func TrendingTags(ps []types.Proposal, limit int) []TagCount {
	if limit <= 0 {
		limit = 5
	}

	counts := make(map[string]int)
	var order []string
	for _, p := range ps {
		for _, tag := range scanTags(p.Content) {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	ranked := make([]TagCount, 0, len(order))
	for _, tag := range order {
		ranked = append(ranked, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

var tagToken = regexp.MustCompile(string(tagMarker) + `\S+`)

// scanTags extracts marker tokens from free text. A token is the marker
// character followed by one or more non-whitespace characters.
func scanTags(text string) []string {
	return tagToken.FindAllString(text, -1)
}
