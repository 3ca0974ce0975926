package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sashes/internal/domain/entity"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Size
	}{
		{name: "nil is unset", input: nil, expected: Size{}},
		{name: "auto is unset", input: "auto", expected: Size{}},
		{name: "fraction", input: 0.25, expected: Proportion(0.25)},
		{name: "integer pixels", input: 200, expected: Pixels(200)},
		{name: "one is a pixel", input: 1.0, expected: Pixels(1)},
		{name: "numeric string fraction", input: "0.5", expected: Proportion(0.5)},
		{name: "numeric string pixels", input: " 320 ", expected: Pixels(320)},
		{name: "percent", input: "30%", expected: Proportion(0.3)},
		{name: "full percent stays proportional", input: "100%", expected: Proportion(1)},
		{name: "pixel suffix", input: "120px", expected: Pixels(120)},
		{name: "small pixel suffix", input: "0.5px", expected: Pixels(0.5)},
		{name: "json number", input: json.Number("640"), expected: Pixels(640)},
		{name: "int64", input: int64(48), expected: Pixels(48)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Kind, got.Kind)
			assert.InDelta(t, tt.expected.Value, got.Value, 1e-12)
		})
	}
}

func TestParseSize_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		suggestion string
	}{
		{name: "negative", input: -5, suggestion: "sizes must be non-negative"},
		{name: "unit typo", input: "50pt", suggestion: `did you mean "50px"?`},
		{name: "garbage", input: "wide", suggestion: `use a number, "NN%" or "NNpx"`},
		{name: "bad percent", input: "x%", suggestion: `percentages look like "25%"`},
		{name: "wrong type", input: []int{1}, suggestion: `use a number, "NN%" or "NNpx"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSize(tt.input)
			require.ErrorIs(t, err, entity.ErrInvalidSize)

			var layoutErr *entity.LayoutError
			require.True(t, errors.As(err, &layoutErr))
			assert.Equal(t, tt.suggestion, layoutErr.Suggestion)
		})
	}
}

func TestSize_Resolve(t *testing.T) {
	assert.Equal(t, 400.0, Proportion(0.5).Resolve(800))
	assert.Equal(t, 267.0, Proportion(1.0/3).Resolve(800))
	assert.Equal(t, 120.0, Pixels(120).Resolve(800))
	assert.Equal(t, 0.0, Size{}.Resolve(800))
	assert.Equal(t, "50%", Proportion(0.5).String())
	assert.Equal(t, "120px", Pixels(120).String())
}

func TestParsePosition(t *testing.T) {
	got, err := ParsePosition(" Left ")
	require.NoError(t, err)
	assert.Equal(t, entity.PositionLeft, got)

	_, err = ParsePosition("")
	assert.ErrorIs(t, err, entity.ErrMissingPosition)

	_, err = ParsePosition("botom")
	require.ErrorIs(t, err, entity.ErrInvalidPosition)
	var layoutErr *entity.LayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, `did you mean "bottom"?`, layoutErr.Suggestion)

	_, err = ParsePosition("diagonal")
	require.True(t, errors.As(err, &layoutErr))
	assert.Contains(t, layoutErr.Suggestion, "expected one of")
}

func TestParseEdge(t *testing.T) {
	got, err := ParseEdge("top")
	require.NoError(t, err)
	assert.Equal(t, entity.PositionTop, got)

	_, err = ParseEdge("center")
	assert.ErrorIs(t, err, entity.ErrInvalidPosition)
}

func TestParseResizeStrategy(t *testing.T) {
	got, err := ParseResizeStrategy("")
	require.NoError(t, err)
	assert.Equal(t, entity.ResizeClassic, got)

	got, err = ParseResizeStrategy("NATURAL")
	require.NoError(t, err)
	assert.Equal(t, entity.ResizeNatural, got)

	_, err = ParseResizeStrategy("clasic")
	var layoutErr *entity.LayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, `did you mean "classic"?`, layoutErr.Suggestion)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"left", "left", 0},
		{"lft", "left", 1},
		{"rigth", "right", 2},
		{"", "top", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, levenshtein(tt.a, tt.b), "%s -> %s", tt.a, tt.b)
	}
}
