package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sashes/internal/domain/entity"
)

func testBuildOptions() BuildOptions {
	return BuildOptions{
		Width:       800,
		Height:      600,
		IDGenerator: NewSequentialGenerator("gen"),
	}
}

func TestBuildLayout_ProportionAndInferredSibling(t *testing.T) {
	// Arrange
	cfg := LayoutConfig{
		ID: "root",
		Children: []LayoutConfig{
			{ID: "left", Position: "left", Size: 0.5},
			{ID: "right"},
		},
	}

	// Act
	root, err := BuildLayout(context.Background(), cfg, testBuildOptions())

	// Assert
	require.NoError(t, err)
	left, right := root.Child(entity.PositionLeft), root.Child(entity.PositionRight)
	require.NotNil(t, left)
	require.NotNil(t, right)
	assert.Equal(t, "left", left.ID)
	assert.Equal(t, "right", right.ID)
	assert.Equal(t, entity.Rect{Width: 400, Height: 600}, left.Rect())
	assert.Equal(t, entity.Rect{Left: 400, Width: 400, Height: 600}, right.Rect())
}

func TestBuildLayout_DefaultFirstPosition(t *testing.T) {
	cfg := LayoutConfig{
		Children: []LayoutConfig{
			{ID: "first", Size: 300},
			{ID: "second"},
		},
	}

	t.Run("defaults to right", func(t *testing.T) {
		root, err := BuildLayout(context.Background(), cfg, testBuildOptions())
		require.NoError(t, err)

		first := root.Find("first")
		assert.Equal(t, entity.PositionRight, first.Position)
		assert.Equal(t, entity.Rect{Left: 500, Width: 300, Height: 600}, first.Rect())
		assert.Equal(t, entity.Rect{Width: 500, Height: 600}, root.Find("second").Rect())
		assert.Same(t, first, root.Children[1])
	})

	t.Run("configurable", func(t *testing.T) {
		opts := testBuildOptions()
		opts.DefaultFirstPosition = entity.PositionTop

		root, err := BuildLayout(context.Background(), cfg, opts)
		require.NoError(t, err)

		first := root.Find("first")
		assert.Equal(t, entity.PositionTop, first.Position)
		assert.Equal(t, entity.Rect{Width: 800, Height: 300}, first.Rect())
		assert.Equal(t, entity.Rect{Top: 300, Width: 800, Height: 300}, root.Find("second").Rect())
	})

	t.Run("rejects non-edge policy", func(t *testing.T) {
		opts := testBuildOptions()
		opts.DefaultFirstPosition = entity.PositionCenter

		_, err := BuildLayout(context.Background(), cfg, opts)
		assert.ErrorIs(t, err, entity.ErrInvalidPosition)
	})
}

func TestBuildLayout_Nested(t *testing.T) {
	cfg := LayoutConfig{
		ID: "root",
		Children: []LayoutConfig{
			{ID: "sidebar", Position: "left", Size: "25%", MinWidth: 100},
			{
				ID:       "main",
				Position: "right",
				Children: []LayoutConfig{
					{ID: "editor", Position: "top", Size: "400px", Store: entity.Store{"title": "Editor"}},
					{ID: "terminal", Position: "bottom", Size: 200},
				},
			},
		},
	}

	root, err := BuildLayout(context.Background(), cfg, testBuildOptions())
	require.NoError(t, err)

	assert.Equal(t, entity.Rect{Width: 200, Height: 600}, root.Find("sidebar").Rect())
	assert.Equal(t, entity.Rect{Left: 200, Width: 600, Height: 400}, root.Find("editor").Rect())
	assert.Equal(t, entity.Rect{Left: 200, Top: 400, Width: 600, Height: 200}, root.Find("terminal").Rect())
	assert.Equal(t, "Editor", root.Find("editor").Store.Title())
	assert.Equal(t, 100.0, root.Find("sidebar").MinWidth)
	assert.Equal(t, 3, root.LeafCount())
}

func TestBuildLayout_GeneratesMissingIDs(t *testing.T) {
	cfg := LayoutConfig{Children: []LayoutConfig{{Position: "top"}, {}}}

	root, err := BuildLayout(context.Background(), cfg, testBuildOptions())
	require.NoError(t, err)

	assert.Equal(t, "gen-1", root.ID)
	assert.Equal(t, "gen-2", root.Children[0].ID)
	assert.Equal(t, "gen-3", root.Children[1].ID)
	assert.Equal(t, entity.PositionBottom, root.Children[1].Position)
}

func TestBuildLayout_CopiesStores(t *testing.T) {
	store := entity.Store{"title": "Editor", "meta": map[string]any{"lang": "go"}}
	cfg := LayoutConfig{Children: []LayoutConfig{
		{ID: "code", Position: "left", Store: store},
		{ID: "term", Position: "right"},
	}}

	root, err := BuildLayout(context.Background(), cfg, testBuildOptions())
	require.NoError(t, err)

	store["title"] = "Changed"
	store["meta"].(map[string]any)["lang"] = "rust"

	code := root.Find("code")
	assert.Equal(t, "Editor", code.Store.Title())
	assert.Equal(t, "go", code.Store["meta"].(map[string]any)["lang"])
	assert.Nil(t, root.Find("term").Store)
}

func TestBuildLayout_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LayoutConfig
		wantErr error
		path    string
	}{
		{
			name: "proportions do not sum to one",
			cfg: LayoutConfig{Children: []LayoutConfig{
				{Position: "left", Size: 0.5},
				{Position: "right", Size: 0.4},
			}},
			wantErr: entity.ErrSizeMismatch,
			path:    "root.children[1]",
		},
		{
			name: "pixels do not fill parent",
			cfg: LayoutConfig{Children: []LayoutConfig{
				{Position: "left", Size: 300},
				{Position: "right", Size: 400},
			}},
			wantErr: entity.ErrSizeMismatch,
			path:    "root.children[1]",
		},
		{
			name: "single size larger than parent",
			cfg: LayoutConfig{Children: []LayoutConfig{
				{Position: "left", Size: 900},
				{},
			}},
			wantErr: entity.ErrSizeMismatch,
			path:    "root.children[0]",
		},
		{
			name:    "unary split",
			cfg:     LayoutConfig{Children: []LayoutConfig{{}}},
			wantErr: entity.ErrUnaryChildren,
			path:    "root",
		},
		{
			name:    "too many children",
			cfg:     LayoutConfig{Children: []LayoutConfig{{}, {}, {}}},
			wantErr: entity.ErrTooManyChildren,
			path:    "root",
		},
		{
			name: "positions not opposite",
			cfg: LayoutConfig{Children: []LayoutConfig{
				{Position: "left"},
				{Position: "top"},
			}},
			wantErr: entity.ErrPositionConflict,
			path:    "root.children[1]",
		},
		{
			name: "invalid position token",
			cfg: LayoutConfig{Children: []LayoutConfig{
				{Position: "lfet"},
				{},
			}},
			wantErr: entity.ErrInvalidPosition,
			path:    "root.children[0]",
		},
		{
			name: "invalid size token",
			cfg: LayoutConfig{Children: []LayoutConfig{
				{Position: "left", Size: "half"},
				{},
			}},
			wantErr: entity.ErrInvalidSize,
			path:    "root.children[0]",
		},
		{
			name: "duplicate ids",
			cfg: LayoutConfig{ID: "a", Children: []LayoutConfig{
				{ID: "b"},
				{ID: "b"},
			}},
			wantErr: entity.ErrDuplicateID,
			path:    "root.children[1]",
		},
		{
			name:    "positioned root",
			cfg:     LayoutConfig{Position: "left"},
			wantErr: entity.ErrInvalidPosition,
			path:    "root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := BuildLayout(context.Background(), tt.cfg, testBuildOptions())

			assert.Nil(t, root)
			require.ErrorIs(t, err, tt.wantErr)
			var layoutErr *entity.LayoutError
			require.True(t, errors.As(err, &layoutErr))
			assert.Equal(t, tt.path, layoutErr.Path)
		})
	}
}

func TestBuildLayout_SuggestsPosition(t *testing.T) {
	cfg := LayoutConfig{Children: []LayoutConfig{{Position: "lfet"}, {}}}

	_, err := BuildLayout(context.Background(), cfg, testBuildOptions())

	var layoutErr *entity.LayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, `did you mean "left"?`, layoutErr.Suggestion)
}

func TestBuildLayout_MixedSizesMustFill(t *testing.T) {
	cfg := LayoutConfig{Children: []LayoutConfig{
		{Position: "left", Size: 0.25},
		{Position: "right", Size: "600px"},
	}}

	root, err := BuildLayout(context.Background(), cfg, testBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, 200.0, root.Children[0].Width())
	assert.Equal(t, 600.0, root.Children[1].Width())
}

func TestDecodeLayoutConfig(t *testing.T) {
	doc := map[string]any{
		"id":              "root",
		"resize_strategy": "natural",
		"children": []any{
			map[string]any{
				"id":       "nav",
				"position": "left",
				"size":     "30%",
				"minWidth": int64(120),
				"title":    "Navigator",
			},
			map[string]any{
				"id":         "body",
				"min-height": 80.0,
				"store":      map[string]any{"closable": false},
			},
		},
	}

	cfg, err := DecodeLayoutConfig(doc)
	require.NoError(t, err)

	assert.Equal(t, "root", cfg.ID)
	assert.Equal(t, "natural", cfg.ResizeStrategy)
	require.Len(t, cfg.Children, 2)
	nav := cfg.Children[0]
	assert.Equal(t, "left", nav.Position)
	assert.Equal(t, "30%", nav.Size)
	assert.Equal(t, 120.0, nav.MinWidth)
	assert.Equal(t, entity.Store{"title": "Navigator"}, nav.Store)
	body := cfg.Children[1]
	assert.Equal(t, 80.0, body.MinHeight)
	assert.Equal(t, entity.Store{"closable": false}, body.Store)
	assert.Nil(t, cfg.Store)
}

func TestDecodeLayoutConfig_Errors(t *testing.T) {
	_, err := DecodeLayoutConfig(map[string]any{"children": "nope"})
	var layoutErr *entity.LayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, "root", layoutErr.Path)

	_, err = DecodeLayoutConfig(map[string]any{"children": []any{map[string]any{"min_width": "40%"}}})
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, "root.children[0]", layoutErr.Path)
}
