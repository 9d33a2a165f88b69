package correction

import (
	"sort"
	"strings"
)

// DefaultThreshold is the score a candidate must exceed to replace the input.
const DefaultThreshold = 70

// Match is a historical term scored against an input.
type Match struct {
	Term  string
	Score int
	Index int // position in the history slice
}

// Engine corrects search terms against a history of previously logged terms.
// The zero value is not useful; use New.
type Engine struct {
	threshold int
	aliases   map[string]string
}

// New creates an engine. Aliases map raw terms to canonical terms and are
// matched on their processed form, so "Choc  Biscuit" hits an alias for
// "choc biscuit".
func New(threshold int, aliases map[string]string) *Engine {
	e := &Engine{
		threshold: threshold,
		aliases:   make(map[string]string, len(aliases)),
	}
	for from, to := range aliases {
		key := Process(from)
		to = strings.TrimSpace(to)
		if key == "" || to == "" {
			continue
		}
		e.aliases[key] = to
	}
	return e
}

var defaultEngine = New(DefaultThreshold, nil)

// Correct returns the closest term in history when it scores above the default
// threshold, otherwise input unchanged.
func Correct(input string, history []string) string {
	return defaultEngine.Correct(input, history)
}

// Threshold returns the acceptance threshold.
func (e *Engine) Threshold() int {
	return e.threshold
}

// Alias returns the canonical term configured for input, if any.
func (e *Engine) Alias(input string) (string, bool) {
	to, ok := e.aliases[Process(input)]
	return to, ok
}

// Correct resolves aliases, then returns the best scoring history term if its
// score is strictly greater than the threshold. Otherwise it returns the
// (alias-resolved) input.
func (e *Engine) Correct(input string, history []string) string {
	return e.Resolve(input, history).Term
}

// Resolve is Correct with the reasoning attached. When the result came from
// history, Index is its position and Score its similarity; otherwise Index is
// -1 and Score is 0.
func (e *Engine) Resolve(input string, history []string) Match {
	if m, ok := e.Best(input, history); ok {
		return m
	}
	if to, ok := e.Alias(input); ok {
		return Match{Term: to, Index: -1}
	}
	return Match{Term: input, Index: -1}
}

// Best returns the highest scoring history term and whether it clears the
// threshold. Ties go to the earliest candidate. history is not modified.
func (e *Engine) Best(input string, history []string) (Match, bool) {
	if len(history) == 0 {
		return Match{}, false
	}
	if to, ok := e.Alias(input); ok {
		input = to
	}

	best := Match{Index: -1, Score: -1}
	for i, candidate := range history {
		score := TokenSortRatio(input, candidate)
		if score > best.Score {
			best = Match{Term: candidate, Score: score, Index: i}
		}
	}
	return best, best.Score > e.threshold
}

// Rank scores every history term against input and returns them best first,
// keeping history order among equal scores. Terms scoring zero are dropped.
// A limit of zero or less returns all matches.
func (e *Engine) Rank(input string, history []string, limit int) []Match {
	if to, ok := e.Alias(input); ok {
		input = to
	}

	matches := make([]Match, 0, len(history))
	for i, candidate := range history {
		score := TokenSortRatio(input, candidate)
		if score == 0 {
			continue
		}
		matches = append(matches, Match{Term: candidate, Score: score, Index: i})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
