package sashes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sashes/internal/application/usecase"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/pkg/sashes"
)

// threePanes is a left pane "a" next to a column of "b" over "c".
func threePanes() sashes.LayoutConfig {
	return sashes.LayoutConfig{ID: "root", Children: []sashes.LayoutConfig{
		{ID: "a", Position: "left", Store: sashes.Store{"title": "A"}},
		{ID: "side", Position: "right", Children: []sashes.LayoutConfig{
			{ID: "b", Position: "top", Store: sashes.Store{"title": "B"}},
			{ID: "c", Position: "bottom"},
		}},
	}}
}

func newManager(t *testing.T, layout sashes.LayoutConfig, mutate ...func(*sashes.Options)) (*sashes.WindowManager, *eventLog) {
	t.Helper()
	opts := sashes.Options{
		Layout:         layout,
		Width:          800,
		Height:         600,
		IDGenerator:    usecase.NewSequentialGenerator("gen"),
		ResizeDebounce: time.Hour,
	}
	for _, fn := range mutate {
		fn(&opts)
	}

	wm, err := sashes.New(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(wm.Close)

	log := &eventLog{}
	_, err = wm.OnEvery(log.handle)
	require.NoError(t, err)
	return wm, log
}

func TestNew_BuildsLayout(t *testing.T) {
	wm, log := newManager(t, threePanes())

	root := wm.Layout()
	assert.Equal(t, "root", root.ID)
	assert.Equal(t, sashes.Rect{Width: 400, Height: 600}, root.Find("a").Rect())
	assert.Equal(t, sashes.Rect{Left: 400, Width: 400, Height: 300}, root.Find("b").Rect())
	assert.Equal(t, sashes.Rect{Left: 400, Top: 300, Width: 400, Height: 300}, root.Find("c").Rect())

	panes := wm.Panes()
	require.Len(t, panes, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{panes[0].ID, panes[1].ID, panes[2].ID})

	state, err := wm.State("a")
	require.NoError(t, err)
	assert.Equal(t, sashes.StateNormal, state)
	assert.Zero(t, log.len())
}

func TestNew_ContainerError(t *testing.T) {
	container := &MockContainerObserver{}
	boom := errors.New("detached")
	container.On("ContainerBox", mock.Anything).Return(sashes.Box{}, boom).Once()

	_, err := sashes.New(context.Background(), sashes.Options{Container: container})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	container.AssertExpectations(t)
}

func TestAddThenRemove_RestoresOriginalLeaf(t *testing.T) {
	wm, log := newManager(t, sashes.LayoutConfig{ID: "leaf"}, func(o *sashes.Options) {
		o.IDGenerator = usecase.NewSequentialGenerator("id")
	})

	added, err := wm.AddPane("leaf", sashes.AddPaneOptions{Position: sashes.PositionRight, Size: 200, ID: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", added.ID)
	assert.Equal(t, entity.PaneSize{Width: 200, Height: 600}, added.Size)
	assert.Equal(t, entity.PanePosition{X: 600}, added.Position)
	require.NotNil(t, added.GroupID)
	assert.Equal(t, "id-1", *added.GroupID)
	require.NotNil(t, added.Index)
	assert.Equal(t, 1, *added.Index)

	root := wm.Layout()
	assert.Equal(t, "id-1", root.ID)
	original := root.Child(sashes.PositionLeft)
	require.NotNil(t, original)
	assert.Equal(t, "leaf", original.ID)
	assert.Equal(t, sashes.Rect{Width: 600, Height: 600}, original.Rect())

	require.NoError(t, wm.RemovePane("new"))
	root = wm.Layout()
	assert.Equal(t, "leaf", root.ID)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, sashes.Rect{Width: 800, Height: 600}, root.Rect())

	// The leaf ends where it started, so no resize is reported.
	wm.FlushResizes()
	assert.Equal(t, []string{"onpaneadded:new", "onpaneremoved:new"}, log.summary())

	removed := log.ofType(sashes.EventPaneRemoved)
	require.Len(t, removed, 1)
	assert.Nil(t, removed[0].Pane.GroupID)
	assert.Nil(t, removed[0].Pane.Index)
}

func TestAddPane_ReportsDisplacedPanes(t *testing.T) {
	wm, log := newManager(t, threePanes())

	added, err := wm.AddPane("b", sashes.AddPaneOptions{
		Position:  sashes.PositionBottom,
		ID:        "d",
		Title:     "D",
		MinHeight: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "D", added.Title)
	assert.Equal(t, "D", added.Config["title"])
	assert.Equal(t, entity.PaneSize{Width: 400, Height: 150}, added.Size)
	assert.Equal(t, []string{"onpaneadded:d"}, log.summary())

	wm.FlushResizes()
	assert.Equal(t, []string{"onpaneadded:d", "onpaneresized:b"}, log.summary())
	resized := log.ofType(sashes.EventPaneResized)[0]
	assert.Equal(t, entity.PaneSize{Width: 400, Height: 150}, resized.Pane.Size)
}

func TestAddPane_Errors(t *testing.T) {
	wm, log := newManager(t, threePanes())

	_, err := wm.AddPane("a", sashes.AddPaneOptions{})
	assert.ErrorIs(t, err, entity.ErrMissingPosition)

	_, err = wm.AddPane("nope", sashes.AddPaneOptions{Position: sashes.PositionLeft})
	assert.ErrorIs(t, err, entity.ErrSashNotFound)

	_, err = wm.AddPane("a", sashes.AddPaneOptions{Position: sashes.PositionLeft, ID: "b"})
	assert.ErrorIs(t, err, entity.ErrDuplicateID)

	assert.Zero(t, log.len())
	assert.Len(t, wm.Panes(), 3)
}

func TestRemovePane_IsTerminal(t *testing.T) {
	wm, log := newManager(t, threePanes())

	require.NoError(t, wm.Focus("a"))
	require.NoError(t, wm.Minimize("a"))
	require.NoError(t, wm.BeginResize("root", sashes.Point{X: 400}))
	_, err := wm.DragResize(sashes.Point{X: 450})
	require.NoError(t, err)
	log.reset()

	require.NoError(t, wm.RemovePane("a"))
	assert.Equal(t, []string{"onpaneremoved:a"}, log.summary(), "removal steals focus without a blur")
	assert.Empty(t, wm.Focused())
	assert.Empty(t, wm.Sill())
	assert.False(t, wm.Resizing())

	calls := map[string]func() error{
		"focus":    func() error { return wm.Focus("a") },
		"minimize": func() error { return wm.Minimize("a") },
		"maximize": func() error { return wm.Maximize("a") },
		"restore":  func() error { return wm.Restore("a") },
		"rename":   func() error { return wm.Rename("a", "again") },
		"remove":   func() error { return wm.RemovePane("a") },
		"swap":     func() error { return wm.SwapPanesByID("a", "b") },
		"glass": func() error {
			_, err := wm.Glass("a")
			return err
		},
		"reuse id": func() error {
			_, err := wm.AddPane("b", sashes.AddPaneOptions{Position: sashes.PositionRight, ID: "a"})
			return err
		},
		"split removed": func() error {
			_, err := wm.AddPane("a", sashes.AddPaneOptions{Position: sashes.PositionRight})
			return err
		},
	}
	for name, call := range calls {
		assert.ErrorIs(t, call(), entity.ErrPaneRemoved, name)
	}

	require.NoError(t, wm.Focus("b"))
	require.NoError(t, wm.Blur())
	_, err = wm.FitBox(sashes.Box{Width: 1000, Height: 600})
	require.NoError(t, err)
	wm.FlushResizes()

	all := log.all()
	require.NotEmpty(t, all)
	for _, ev := range all[1:] {
		assert.NotEqual(t, "a", ev.Pane.ID, "event %s after removal", ev.Type)
	}
	resized := log.ofType(sashes.EventPaneResized)
	require.Len(t, resized, 2)
	assert.Equal(t, "b", resized[0].Pane.ID)
	assert.Equal(t, 1000, resized[0].Pane.Size.Width)
	assert.Equal(t, "c", resized[1].Pane.ID)
}

func TestNoOpActions_EmitNothing(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(wm *sashes.WindowManager) error
		action func(wm *sashes.WindowManager) error
	}{
		{
			name:   "maximize a maximized pane",
			setup:  func(wm *sashes.WindowManager) error { return wm.Maximize("a") },
			action: func(wm *sashes.WindowManager) error { return wm.Maximize("a") },
		},
		{
			name:   "minimize a minimized pane",
			setup:  func(wm *sashes.WindowManager) error { return wm.Minimize("a") },
			action: func(wm *sashes.WindowManager) error { return wm.Minimize("a") },
		},
		{
			name:   "restore a normal pane",
			action: func(wm *sashes.WindowManager) error { return wm.Restore("a") },
		},
		{
			name:   "focus the focused pane",
			setup:  func(wm *sashes.WindowManager) error { return wm.Focus("a") },
			action: func(wm *sashes.WindowManager) error { return wm.Focus("a") },
		},
		{
			name:   "blur without focus",
			action: func(wm *sashes.WindowManager) error { return wm.Blur() },
		},
		{
			name:   "rename to the same title",
			action: func(wm *sashes.WindowManager) error { return wm.Rename("a", "A") },
		},
		{
			name:   "swap a pane with itself",
			action: func(wm *sashes.WindowManager) error { return wm.SwapPanesByID("a", "a") },
		},
		{
			name: "fit to the current box",
			action: func(wm *sashes.WindowManager) error {
				_, err := wm.FitBox(sashes.Box{Width: 800, Height: 600})
				return err
			},
		},
		{
			name:  "drag across the split axis",
			setup: func(wm *sashes.WindowManager) error { return wm.BeginResize("root", sashes.Point{X: 400}) },
			action: func(wm *sashes.WindowManager) error {
				_, err := wm.DragResize(sashes.Point{X: 400, Y: 120})
				return err
			},
		},
		{
			name: "drop outside the target",
			action: func(wm *sashes.WindowManager) error {
				_, err := wm.DropPane("b", "a", sashes.Point{X: -10, Y: 300})
				return err
			},
		},
		{
			name: "drop a pane onto itself",
			action: func(wm *sashes.WindowManager) error {
				_, err := wm.DropPane("a", "a", sashes.Point{X: 200, Y: 300})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wm, log := newManager(t, threePanes())
			if tt.setup != nil {
				require.NoError(t, tt.setup(wm))
			}
			log.reset()

			for i := 0; i < 25; i++ {
				require.NoError(t, tt.action(wm))
			}
			wm.FlushResizes()
			assert.Zero(t, log.len(), "events: %v", log.summary())
		})
	}
}

func TestPaneStates_Transitions(t *testing.T) {
	wm, log := newManager(t, threePanes())

	require.NoError(t, wm.Minimize("a"))
	require.NoError(t, wm.Maximize("a"))
	assert.Equal(t, []string{
		"onpaneminimized:a",
		"onpanerestored:a",
		"onpanemaximized:a",
	}, log.summary())
	assert.Empty(t, wm.Sill())
	assert.Equal(t, sashes.StateMinimized, log.all()[0].Pane.State)
	assert.Equal(t, sashes.StateNormal, log.all()[1].Pane.State)
	assert.Equal(t, sashes.StateMaximized, log.all()[2].Pane.State)

	log.reset()
	require.NoError(t, wm.Maximize("b"))
	assert.Equal(t, []string{"onpanerestored:a", "onpanemaximized:b"}, log.summary())

	log.reset()
	require.NoError(t, wm.Minimize("b"))
	require.NoError(t, wm.Minimize("c"))
	assert.Equal(t, []string{"onpanerestored:b", "onpaneminimized:b", "onpaneminimized:c"}, log.summary())
	assert.Equal(t, []sashes.SillItem{{ID: "b", Title: "B"}, {ID: "c"}}, wm.Sill())

	log.reset()
	require.NoError(t, wm.Restore("b"))
	assert.Equal(t, []string{"onpanerestored:b"}, log.summary())
	assert.Equal(t, []sashes.SillItem{{ID: "c"}}, wm.Sill())
}

func TestFocus_BlursPreviousPane(t *testing.T) {
	wm, log := newManager(t, threePanes())

	require.NoError(t, wm.Focus("a"))
	require.NoError(t, wm.Focus("b"))
	require.NoError(t, wm.Blur())

	assert.Equal(t, []string{
		"onpanefocused:a",
		"onpaneblurred:a",
		"onpanefocused:b",
		"onpaneblurred:b",
	}, log.summary())

	all := log.all()
	assert.Equal(t, true, all[0].Pane.Dynamic["focused"])
	assert.Equal(t, false, all[1].Pane.Dynamic["focused"])
	assert.Equal(t, true, all[2].Pane.Dynamic["focused"])
	assert.Empty(t, wm.Focused())
}

func TestRename_CarriesPreviousTitle(t *testing.T) {
	wm, log := newManager(t, threePanes())

	require.NoError(t, wm.Rename("a", "Editor"))

	changed := log.ofType(sashes.EventPaneTitleChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, "Editor", changed[0].Pane.Title)
	require.NotNil(t, changed[0].Context)
	require.NotNil(t, changed[0].Context.PreviousTitle)
	assert.Equal(t, "A", *changed[0].Context.PreviousTitle)

	glass, err := wm.Glass("a")
	require.NoError(t, err)
	assert.Equal(t, "Editor", glass.Title)
}

func TestSwapPanesByID_ReportsNewOrder(t *testing.T) {
	wm, log := newManager(t, threePanes())

	require.NoError(t, wm.SwapPanesByID("a", "c"))

	order := log.ofType(sashes.EventPaneOrderChanged)
	require.Len(t, order, 2)

	a := order[0]
	assert.Equal(t, "a", a.Pane.ID)
	assert.Equal(t, "side", *a.Pane.GroupID)
	assert.Equal(t, 1, *a.Pane.Index)
	require.NotNil(t, a.Context)
	assert.Equal(t, 0, *a.Context.PreviousIndex)
	assert.Equal(t, "root", *a.Context.GroupID)

	c := order[1]
	assert.Equal(t, "c", c.Pane.ID)
	assert.Equal(t, "root", *c.Pane.GroupID)
	assert.Equal(t, 0, *c.Pane.Index)
	assert.Equal(t, 1, *c.Context.PreviousIndex)
	assert.Equal(t, "side", *c.Context.GroupID)

	root := wm.Layout()
	assert.Equal(t, sashes.Rect{Left: 400, Top: 300, Width: 400, Height: 300}, root.Find("a").Rect())
	assert.Equal(t, sashes.Rect{Width: 400, Height: 600}, root.Find("c").Rect())

	wm.FlushResizes()
	assert.Equal(t, []string{
		"onpaneorderchanged:a",
		"onpaneorderchanged:c",
		"onpaneresized:a",
		"onpaneresized:c",
	}, log.summary())
}

func TestSwapPanes_ResolvesElements(t *testing.T) {
	t.Run("host resolver", func(t *testing.T) {
		elements := map[sashes.ElementRef]string{"el-a": "a", "el-b": "b"}
		wm, _ := newManager(t, threePanes(), func(o *sashes.Options) {
			o.Resolver = sashes.ElementResolverFunc(func(ref sashes.ElementRef) (string, bool) {
				id, ok := elements[ref]
				return id, ok
			})
		})

		require.NoError(t, wm.SwapPanes("el-a", "el-b"))
		assert.Equal(t, sashes.Rect{Left: 400, Width: 400, Height: 300}, wm.Layout().Find("a").Rect())

		assert.ErrorIs(t, wm.SwapPanes("el-a", "el-x"), entity.ErrSashNotFound)
	})

	t.Run("tree lookup", func(t *testing.T) {
		wm, _ := newManager(t, threePanes())
		_, err := wm.AddPane("c", sashes.AddPaneOptions{Position: sashes.PositionBottom, ID: "d", Element: "el-d"})
		require.NoError(t, err)
		_, err = wm.AddPane("a", sashes.AddPaneOptions{Position: sashes.PositionBottom, ID: "e", Element: "el-e"})
		require.NoError(t, err)

		before := wm.Layout()
		require.NoError(t, wm.SwapPanes("el-d", "el-e"))
		after := wm.Layout()

		assert.Equal(t, before.Find("e").Rect(), after.Find("d").Rect())
		assert.Equal(t, sashes.ElementRef("el-d"), after.Find("d").Element)
	})
}

func TestDragResize_DebouncesToFinalGeometry(t *testing.T) {
	layout := sashes.LayoutConfig{ID: "root", Children: []sashes.LayoutConfig{
		{ID: "a", Position: "left", MinWidth: 100},
		{ID: "b", Position: "right", MinWidth: 100},
	}}
	wm, log := newManager(t, layout, func(o *sashes.Options) {
		o.ResizeDebounce = 0
	})

	require.NoError(t, wm.BeginResize("root", sashes.Point{X: 400, Y: 300}))
	var last time.Time
	for x := 405.0; x <= 450; x += 5 {
		_, err := wm.DragResize(sashes.Point{X: x, Y: 300})
		require.NoError(t, err)
		last = time.Now()
	}
	assert.Zero(t, log.len(), "no event mid-drag")

	require.Eventually(t, func() bool { return log.len() == 2 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return log.len() > 2 }, 200*time.Millisecond, 10*time.Millisecond)

	sizes := map[string]int{}
	for _, ev := range log.all() {
		assert.Equal(t, sashes.EventPaneResized, ev.Type)
		assert.WithinDuration(t, last, ev.at, 150*time.Millisecond)
		sizes[ev.Pane.ID] = ev.Pane.Size.Width
	}
	assert.Equal(t, map[string]int{"a": 450, "b": 350}, sizes)

	applied, err := wm.DragResize(sashes.Point{X: 850, Y: 300})
	require.NoError(t, err)
	assert.InDelta(t, 250, applied, 1e-9)

	moved, ok := wm.EndResize()
	assert.True(t, ok)
	assert.InDelta(t, 300, moved, 1e-9)

	root := wm.Layout()
	assert.InDelta(t, 700, root.Find("a").Width(), 1e-9)
	assert.InDelta(t, 100, root.Find("b").Width(), 1e-9)
}

func TestDragResize_RequiresGesture(t *testing.T) {
	wm, _ := newManager(t, threePanes())

	_, err := wm.DragResize(sashes.Point{X: 10})
	assert.ErrorIs(t, err, entity.ErrNoActiveDrag)

	_, ok := wm.EndResize()
	assert.False(t, ok)

	assert.ErrorIs(t, wm.BeginResize("a", sashes.Point{}), entity.ErrMuntinNotFound)
	assert.ErrorIs(t, wm.BeginResizeElement("el-none", sashes.Point{}), entity.ErrMuntinNotFound)
}

func TestDropPane_CenterSwaps(t *testing.T) {
	wm, log := newManager(t, threePanes())

	result, err := wm.DropPane("c", "a", sashes.Point{X: 200, Y: 300})
	require.NoError(t, err)
	assert.Equal(t, sashes.DropResult{Zone: sashes.PositionCenter, Action: sashes.DropSwap}, result)
	assert.Equal(t, []string{"onpaneorderchanged:c", "onpaneorderchanged:a"}, log.summary())
}

func TestDropPane_EdgeMoves(t *testing.T) {
	wm, log := newManager(t, threePanes())

	at := sashes.Point{X: 40, Y: 300}
	zone, err := wm.DropZone("a", at)
	require.NoError(t, err)
	assert.Equal(t, sashes.PositionLeft, zone)

	result, err := wm.DropPane("b", "a", at)
	require.NoError(t, err)
	assert.Equal(t, sashes.DropResult{Zone: sashes.PositionLeft, Action: sashes.DropMove}, result)

	root := wm.Layout()
	assert.Nil(t, root.Find("side"))
	assert.Equal(t, sashes.Rect{Width: 200, Height: 600}, root.Find("b").Rect())
	assert.Equal(t, sashes.Rect{Left: 200, Width: 200, Height: 600}, root.Find("a").Rect())
	assert.Equal(t, sashes.Rect{Left: 400, Width: 400, Height: 600}, root.Find("c").Rect())

	order := log.ofType(sashes.EventPaneOrderChanged)
	require.Len(t, order, 1)
	assert.Equal(t, "b", order[0].Pane.ID)
	assert.Equal(t, "gen-1", *order[0].Pane.GroupID)
	assert.Equal(t, 0, *order[0].Pane.Index)
	assert.Equal(t, "side", *order[0].Context.GroupID)
	assert.Equal(t, 0, *order[0].Context.PreviousIndex)
}

func TestDropPane_RespectsDroppableFlag(t *testing.T) {
	wm, log := newManager(t, threePanes())
	_, err := wm.AddPane("c", sashes.AddPaneOptions{
		Position: sashes.PositionBottom,
		ID:       "locked",
		Store:    sashes.Store{entity.StoreKeyDroppable: false},
	})
	require.NoError(t, err)
	log.reset()

	_, err = wm.DropPane("a", "locked", sashes.Point{X: 600, Y: 525})
	assert.ErrorIs(t, err, entity.ErrNotDroppable)
	assert.Zero(t, log.len())
}

func TestGlass_ActionsFollowStateAndFlags(t *testing.T) {
	wm, _ := newManager(t, threePanes())

	glass, err := wm.Glass("a")
	require.NoError(t, err)
	assert.Equal(t, "A", glass.Title)
	assert.Equal(t, []sashes.GlassAction{sashes.GlassMinimize, sashes.GlassMaximize, sashes.GlassClose}, glass.Actions)

	require.NoError(t, wm.Maximize("a"))
	glass, err = wm.Glass("a")
	require.NoError(t, err)
	assert.Equal(t, []sashes.GlassAction{sashes.GlassMinimize, sashes.GlassRestore, sashes.GlassClose}, glass.Actions)

	require.NoError(t, wm.Minimize("c"))
	glass, err = wm.Glass("c")
	require.NoError(t, err)
	assert.Equal(t, []sashes.GlassAction{sashes.GlassRestore, sashes.GlassClose}, glass.Actions)

	_, err = wm.AddPane("b", sashes.AddPaneOptions{
		Position: sashes.PositionRight,
		ID:       "pinned",
		Store:    sashes.Store{entity.StoreKeyMinimizable: false, entity.StoreKeyClosable: false},
	})
	require.NoError(t, err)
	glass, err = wm.Glass("pinned")
	require.NoError(t, err)
	assert.Equal(t, []sashes.GlassAction{sashes.GlassMaximize}, glass.Actions)

	solo, _ := newManager(t, sashes.LayoutConfig{ID: "solo"})
	glass, err = solo.Glass("solo")
	require.NoError(t, err)
	assert.Equal(t, []sashes.GlassAction{sashes.GlassMinimize, sashes.GlassMaximize}, glass.Actions)
}

func TestVisibleRect(t *testing.T) {
	wm, _ := newManager(t, threePanes())

	rect, visible, err := wm.VisibleRect("b")
	require.NoError(t, err)
	assert.True(t, visible)
	assert.Equal(t, sashes.Rect{Left: 400, Width: 400, Height: 300}, rect)

	require.NoError(t, wm.Maximize("b"))
	rect, visible, err = wm.VisibleRect("b")
	require.NoError(t, err)
	assert.True(t, visible)
	assert.Equal(t, sashes.Rect{Width: 800, Height: 600}, rect)

	_, visible, err = wm.VisibleRect("a")
	require.NoError(t, err)
	assert.False(t, visible)

	require.NoError(t, wm.Restore("b"))
	require.NoError(t, wm.Minimize("a"))
	_, visible, err = wm.VisibleRect("a")
	require.NoError(t, err)
	assert.False(t, visible)
	_, visible, err = wm.VisibleRect("c")
	require.NoError(t, err)
	assert.True(t, visible)
}

func TestHandlers_MayReenterManager(t *testing.T) {
	wm, log := newManager(t, threePanes())

	_, err := wm.On(sashes.EventPaneFocused, func(ev sashes.PaneEvent) {
		if ev.Pane.ID != "a" {
			return
		}
		_ = wm.Rename("a", "Focused A")
		_ = wm.Focus("b")
	})
	require.NoError(t, err)

	require.NoError(t, wm.Focus("a"))
	assert.Equal(t, []string{
		"onpanefocused:a",
		"onpanetitlechanged:a",
		"onpaneblurred:a",
		"onpanefocused:b",
	}, log.summary())
}

func TestHandlers_PanicDoesNotStopDelivery(t *testing.T) {
	wm, log := newManager(t, threePanes())

	_, err := wm.On(sashes.EventPaneFocused, func(sashes.PaneEvent) { panic("boom") })
	require.NoError(t, err)
	var after int
	sub, err := wm.On(sashes.EventPaneFocused, func(sashes.PaneEvent) { after++ })
	require.NoError(t, err)

	require.NoError(t, wm.Focus("a"))
	assert.Equal(t, 1, after)
	assert.Equal(t, 1, log.len())

	assert.True(t, wm.Off(sub))
	require.NoError(t, wm.Focus("b"))
	assert.Equal(t, 1, after)
}

func TestInstances_DoNotShareHandlers(t *testing.T) {
	first, firstLog := newManager(t, threePanes())
	second, secondLog := newManager(t, threePanes())

	require.NoError(t, second.Focus("a"))
	assert.Zero(t, firstLog.len())
	assert.Equal(t, 1, secondLog.len())

	require.NoError(t, first.Minimize("b"))
	assert.Equal(t, 1, firstLog.len())
	assert.Equal(t, 1, secondLog.len())
}

func TestRecorder_ReceivesEveryEvent(t *testing.T) {
	rec := &MockEventRecorder{}
	rec.On("Record", mock.Anything, mock.MatchedBy(func(ev sashes.PaneEvent) bool {
		return ev.Type == sashes.EventPaneFocused && ev.Pane.ID == "a"
	})).Return(nil).Once()
	rec.On("Record", mock.Anything, mock.MatchedBy(func(ev sashes.PaneEvent) bool {
		return ev.Type == sashes.EventPaneBlurred
	})).Return(errors.New("disk full")).Once()

	wm, log := newManager(t, threePanes(), func(o *sashes.Options) {
		o.Recorder = rec
	})

	require.NoError(t, wm.Focus("a"))
	require.NoError(t, wm.Blur())

	rec.AssertExpectations(t)
	assert.Equal(t, 2, log.len(), "a failing recorder does not block delivery")
}

func TestFit_ObservesContainer(t *testing.T) {
	container := &MockContainerObserver{}
	container.On("ContainerBox", mock.Anything).Return(sashes.Box{Width: 800, Height: 600}, nil).Once()
	container.On("ContainerBox", mock.Anything).Return(sashes.Box{Width: 1000, Height: 600}, nil).Once()

	wm, log := newManager(t, threePanes(), func(o *sashes.Options) {
		o.Container = container
	})

	changed, err := wm.Fit()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.InDelta(t, 500, wm.Layout().Find("a").Width(), 1e-9)

	wm.FlushResizes()
	assert.Equal(t, []string{"onpaneresized:a", "onpaneresized:b", "onpaneresized:c"}, log.summary())
	container.AssertExpectations(t)

	_, err = wm.FitBox(sashes.Box{Width: -1, Height: 600})
	assert.ErrorIs(t, err, entity.ErrInvalidSize)
}

func TestEvents_UseClockAndOrigin(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	wm, log := newManager(t, threePanes(), func(o *sashes.Options) {
		o.Clock = func() time.Time { return at }
		o.Origin = sashes.Point{X: 10, Y: 20}
	})

	require.NoError(t, wm.Focus("b"))

	all := log.all()
	require.Len(t, all, 1)
	assert.Equal(t, "2026-01-02T03:04:05.000Z", all[0].Timestamp)
	assert.Equal(t, entity.PanePosition{X: 410, Y: 20}, all[0].Pane.Position)
}
