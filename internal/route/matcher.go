package route

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// GroupDelimiter separates a tab group from the screen route, as in
// "/(tabs)/directory".
const GroupDelimiter = "/(tabs)/"

const (
	ScoreExact  = 100
	ScorePrefix = 80
	ScoreName   = 60
	ScoreGroup  = 40
	ScoreNone   = 0
)

// Tab describes one navigation tab. Tabs are supplied by the host and are
// not modified here.
type Tab struct {
	Name  string
	Route string
	Icon  string
	Label string
}

// Active is the result of resolving a path against a tab list.
// Index is -1 when no tab scored above zero.
type Active struct {
	Index int
	Score int
}

// Matched reports whether any tab scored.
func (a Active) Matched() bool { return a.Index >= 0 && a.Score > ScoreNone }

// Score rates how well path selects tab.
func Score(path string, tab Tab) int {
	switch {
	case path == tab.Route:
		return ScoreExact
	case tab.Route != "" && strings.HasPrefix(path, tab.Route):
		return ScorePrefix
	case tab.Name != "" && strings.Contains(path, tab.Name):
		return ScoreName
	}
	if seg, ok := groupSegment(tab.Route); ok && strings.Contains(path, seg) {
		return ScoreGroup
	}
	return ScoreNone
}

func groupSegment(route string) (string, bool) {
	_, after, found := strings.Cut(route, GroupDelimiter)
	if !found || after == "" {
		return "", false
	}
	return after, true
}

// Resolve returns the best scoring tab. Earlier tabs win ties.
func Resolve(path string, tabs []Tab) Active {
	best := Active{Index: -1, Score: ScoreNone}
	for i, tab := range tabs {
		if s := Score(path, tab); s > best.Score {
			best = Active{Index: i, Score: s}
		}
	}
	return best
}

// Match returns the index of the active tab for path, falling back to the
// first tab when nothing matches. It returns -1 only for an empty tab list.
func Match(path string, tabs []Tab) int {
	if len(tabs) == 0 {
		return -1
	}
	if a := Resolve(path, tabs); a.Matched() {
		return a.Index
	}
	return 0
}

// Nearest picks the tab whose route, name or label is closest to path by
// edit distance. It is a hint for unmatched paths only.
func Nearest(path string, tabs []Tab) (int, bool) {
	needle := strings.ToLower(strings.Trim(path, "/ "))
	if needle == "" || len(tabs) == 0 {
		return -1, false
	}
	best, bestDist := -1, 0
	for i, tab := range tabs {
		for _, cand := range []string{tab.Route, tab.Name, tab.Label} {
			cand = strings.ToLower(strings.Trim(strings.ReplaceAll(cand, GroupDelimiter, "/"), "/ "))
			if cand == "" {
				continue
			}
			d := levenshtein.ComputeDistance(needle, cand)
			if best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
	}
	if best < 0 {
		return -1, false
	}
	return best, true
}
