package validation

import (
	"fmt"
	"strings"

	"github.com/bnema/sashes/internal/domain/entity"
)

// maxSuggestDistance bounds how far a typo may be from a known token.
const maxSuggestDistance = 2

// ParsePosition parses a position token, case-insensitively.
func ParsePosition(raw string) (entity.Position, error) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return "", &entity.LayoutError{Err: entity.ErrMissingPosition}
	}
	p := entity.Position(token)
	if p.IsValid() {
		return p, nil
	}

	candidates := make([]string, 0, len(entity.AllPositions()))
	for _, known := range entity.AllPositions() {
		candidates = append(candidates, string(known))
	}
	return "", &entity.LayoutError{
		Value:      raw,
		Suggestion: suggest(token, candidates),
		Err:        entity.ErrInvalidPosition,
	}
}

// ParseEdge parses a position that can hold one side of a split.
func ParseEdge(raw string) (entity.Position, error) {
	p, err := ParsePosition(raw)
	if err != nil {
		return "", err
	}
	if !p.IsEdge() {
		return "", &entity.LayoutError{
			Value:      raw,
			Suggestion: "use one of top, right, bottom, left",
			Err:        entity.ErrInvalidPosition,
		}
	}
	return p, nil
}

// ParseResizeStrategy parses "classic" or "natural". Empty means classic.
func ParseResizeStrategy(raw string) (entity.ResizeStrategy, error) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return entity.ResizeClassic, nil
	}
	strategy := entity.ResizeStrategy(token)
	if strategy.IsValid() {
		return strategy, nil
	}
	return "", &entity.LayoutError{
		Value:      raw,
		Suggestion: suggest(token, []string{string(entity.ResizeClassic), string(entity.ResizeNatural)}),
		Err:        fmt.Errorf("invalid resize strategy"),
	}
}

func suggest(token string, candidates []string) string {
	best, bestDistance := "", maxSuggestDistance+1
	for _, candidate := range candidates {
		if d := levenshtein(token, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	if best == "" {
		return "expected one of " + strings.Join(candidates, ", ")
	}
	return fmt.Sprintf("did you mean %q?", best)
}

// levenshtein returns the edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
