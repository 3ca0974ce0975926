// Package validation parses the loosely typed tokens found in layout
// configuration into domain values, with suggestions on failure.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/sashes/internal/domain/entity"
)

// SizeKind tells how a Size relates to its parent extent.
type SizeKind int

const (
	SizeUnset SizeKind = iota
	SizeProportion
	SizePixels
)

func (k SizeKind) String() string {
	switch k {
	case SizeProportion:
		return "proportion"
	case SizePixels:
		return "pixels"
	default:
		return "unset"
	}
}

// Size is a normalized size token.
type Size struct {
	Kind  SizeKind
	Value float64
}

// Proportion returns a proportional size.
func Proportion(v float64) Size { return Size{Kind: SizeProportion, Value: v} }

// Pixels returns an absolute size.
func Pixels(v float64) Size { return Size{Kind: SizePixels, Value: v} }

// IsSet reports whether the size was given.
func (s Size) IsSet() bool { return s.Kind != SizeUnset }

// Resolve converts the size to pixels within extent.
func (s Size) Resolve(extent float64) float64 {
	switch s.Kind {
	case SizeProportion:
		return math.Round(extent * s.Value)
	case SizePixels:
		return s.Value
	default:
		return 0
	}
}

func (s Size) String() string {
	switch s.Kind {
	case SizeProportion:
		return strconv.FormatFloat(s.Value*100, 'f', -1, 64) + "%"
	case SizePixels:
		return strconv.FormatFloat(s.Value, 'f', -1, 64) + "px"
	default:
		return "auto"
	}
}

// ParseSize normalizes a size token. Bare numbers below 1 are proportions of
// the parent, numbers of 1 or more are pixels. "NN%" is always a proportion
// and "NNpx" always pixels. A nil token yields an unset Size.
func ParseSize(raw any) (Size, error) {
	switch v := raw.(type) {
	case nil:
		return Size{}, nil
	case Size:
		return v, nil
	case int:
		return fromNumber(float64(v), raw)
	case int32:
		return fromNumber(float64(v), raw)
	case int64:
		return fromNumber(float64(v), raw)
	case uint:
		return fromNumber(float64(v), raw)
	case uint32:
		return fromNumber(float64(v), raw)
	case uint64:
		return fromNumber(float64(v), raw)
	case float32:
		return fromNumber(float64(v), raw)
	case float64:
		return fromNumber(v, raw)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Size{}, sizeError(raw, "")
		}
		return fromNumber(f, raw)
	case string:
		return parseSizeString(v)
	default:
		return Size{}, sizeError(raw, `use a number, "NN%" or "NNpx"`)
	}
}

func parseSizeString(raw string) (Size, error) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" || token == "auto" {
		return Size{}, nil
	}

	switch {
	case strings.HasSuffix(token, "%"):
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(token, "%")), 64)
		if err != nil || !validNumber(f) {
			return Size{}, sizeError(raw, `percentages look like "25%"`)
		}
		return Proportion(f / 100), nil
	case strings.HasSuffix(token, "px"):
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(token, "px")), 64)
		if err != nil || !validNumber(f) {
			return Size{}, sizeError(raw, `pixel sizes look like "200px"`)
		}
		return Pixels(f), nil
	}

	f, err := strconv.ParseFloat(token, 64)
	if err == nil {
		return fromNumber(f, raw)
	}
	if prefix := numericPrefix(token); prefix != "" {
		return Size{}, sizeError(raw, fmt.Sprintf("did you mean %q?", prefix+"px"))
	}
	return Size{}, sizeError(raw, `use a number, "NN%" or "NNpx"`)
}

func fromNumber(f float64, raw any) (Size, error) {
	if !validNumber(f) {
		return Size{}, sizeError(raw, "sizes must be non-negative")
	}
	if f < 1 {
		return Proportion(f), nil
	}
	return Pixels(f), nil
}

func validNumber(f float64) bool {
	return f >= 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func numericPrefix(token string) string {
	end := 0
	for end < len(token) && (token[end] == '.' || (token[end] >= '0' && token[end] <= '9')) {
		end++
	}
	if end == 0 {
		return ""
	}
	if _, err := strconv.ParseFloat(token[:end], 64); err != nil {
		return ""
	}
	return token[:end]
}

func sizeError(raw any, suggestion string) error {
	return &entity.LayoutError{Value: raw, Suggestion: suggestion, Err: entity.ErrInvalidSize}
}
