package sashes

import "github.com/bnema/sashes/internal/domain/entity"

// GlassAction is a button in a pane header.
type GlassAction string

const (
	GlassMinimize GlassAction = "minimize"
	GlassMaximize GlassAction = "maximize"
	GlassRestore  GlassAction = "restore"
	GlassClose    GlassAction = "close"
)

// Glass is what a host needs to decorate a pane.
type Glass struct {
	ID      string
	Title   string
	State   PaneState
	Focused bool
	Actions []GlassAction
}

// SillItem is a minimized pane in the sill.
type SillItem struct {
	ID    string
	Title string
}

// Glass returns the header decoration of a pane. Store flags minimizable,
// maximizable and closable hide the matching buttons when false.
func (wm *WindowManager) Glass(id string) (Glass, error) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	s, err := wm.paneLocked(id)
	if err != nil {
		return Glass{}, err
	}

	state := wm.states[id]
	glass := Glass{
		ID:      id,
		Title:   s.Store.Title(),
		State:   state,
		Focused: wm.focused == id,
	}
	if state != StateMinimized && s.Store.Bool(entity.StoreKeyMinimizable, true) {
		glass.Actions = append(glass.Actions, GlassMinimize)
	}
	if state == StateNormal && s.Store.Bool(entity.StoreKeyMaximizable, true) {
		glass.Actions = append(glass.Actions, GlassMaximize)
	}
	if state != StateNormal {
		glass.Actions = append(glass.Actions, GlassRestore)
	}
	if s.Parent != nil && s.Store.Bool(entity.StoreKeyClosable, true) {
		glass.Actions = append(glass.Actions, GlassClose)
	}
	return glass, nil
}

// Sill returns the minimized panes in the order they were minimized.
func (wm *WindowManager) Sill() []SillItem {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	items := make([]SillItem, 0, len(wm.sill))
	for _, id := range wm.sill {
		item := SillItem{ID: id}
		if s := wm.root.Find(id); s != nil {
			item.Title = s.Store.Title()
		}
		items = append(items, item)
	}
	return items
}

// VisibleRect returns where a pane is drawn. A maximized pane covers the
// root; minimized panes, and every other pane while one is maximized, are
// hidden and report false.
func (wm *WindowManager) VisibleRect(id string) (Rect, bool, error) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	s, err := wm.paneLocked(id)
	if err != nil {
		return Rect{}, false, err
	}

	switch wm.states[id] {
	case StateMinimized:
		return Rect{}, false, nil
	case StateMaximized:
		return wm.root.Rect(), true, nil
	}
	for _, state := range wm.states {
		if state == StateMaximized {
			return Rect{}, false, nil
		}
	}
	return s.Rect(), true, nil
}
