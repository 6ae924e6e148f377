package vocab

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestions caps "did you mean" lists shown next to a classification.
const maxSuggestions = 3

// maxEditDistance bounds the Levenshtein fallback for transposed letters,
// which subsequence matching cannot catch.
const maxEditDistance = 2

// Category selects which part of the vocabulary Suggest searches.
type Category int

const (
	CategoryPrimitive Category = iota
	CategoryFunction
	CategoryBase
	CategoryDirection
)

func (c Category) candidates() []string {
	switch c {
	case CategoryPrimitive:
		names := Primitives()
		for alias := range aliases {
			names = append(names, alias)
		}
		sort.Strings(names)
		return names
	case CategoryFunction:
		return Functions()
	case CategoryBase:
		names := make([]string, 0, len(bases))
		for _, b := range bases {
			names = append(names, b.Name)
		}
		return names
	case CategoryDirection:
		names := make([]string, 0, len(directions))
		for _, d := range directions {
			names = append(names, d.Name)
		}
		return names
	default:
		return nil
	}
}

// Suggest returns up to three known names close to target, nearest first.
func Suggest(target string, category Category) []string {
	if target == "" {
		return nil
	}
	candidates := category.candidates()

	ranks := fuzzy.RankFindFold(target, candidates)
	sort.Stable(ranks)

	seen := make(map[string]bool)
	var out []string
	for _, r := range ranks {
		if r.Target == target || seen[r.Target] {
			continue
		}
		seen[r.Target] = true
		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			return out
		}
	}

	type scored struct {
		name string
		dist int
	}
	var near []scored
	for _, c := range candidates {
		if c == target || seen[c] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(target, c); d <= maxEditDistance {
			near = append(near, scored{c, d})
		}
	}
	sort.Slice(near, func(i, j int) bool {
		if near[i].dist != near[j].dist {
			return near[i].dist < near[j].dist
		}
		return near[i].name < near[j].name
	})
	for _, s := range near {
		out = append(out, s.name)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
