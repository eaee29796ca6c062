package textutil

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
)

// StripMarkup removes html-style tags from a snippet of text, e.g.
// "Room <b>changed</b>" -> "Room changed". Board info texts come with
// inline markup the terminal can't render.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

const suggestThreshold = 0.8

// SuggestNames ranks candidates by similarity to target and returns the
// close ones, best first. Used for "did you mean" hints when a class
// filter matches nothing on the board.
func SuggestNames(target string, candidates []string) []string {
	type scored struct {
		name  string
		score float64
	}

	var close []scored
	for _, c := range candidates {
		score := matchr.JaroWinkler(strings.ToLower(target), strings.ToLower(c), false)
		if score >= suggestThreshold {
			close = append(close, scored{name: c, score: score})
		}
	}

	sort.SliceStable(close, func(i, j int) bool {
		return close[i].score > close[j].score
	})

	names := make([]string, 0, len(close))
	for _, s := range close {
		names = append(names, s.name)
	}
	return names
}
