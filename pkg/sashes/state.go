package sashes

import (
	"slices"

	"github.com/bnema/sashes/internal/domain/entity"
)

// Minimize moves a pane to the sill. A maximized pane is restored first.
func (wm *WindowManager) Minimize(id string) error {
	return wm.update(func() error {
		s, err := wm.paneLocked(id)
		if err != nil {
			return err
		}

		switch wm.states[id] {
		case StateMinimized:
			return nil
		case StateMaximized:
			wm.setStateLocked(s, StateNormal, EventPaneRestored)
		}
		wm.sill = append(wm.sill, id)
		wm.setStateLocked(s, StateMinimized, EventPaneMinimized)
		return nil
	})
}

// Maximize makes a pane cover the layout. A minimized pane is restored
// first, and so is any other maximized pane.
func (wm *WindowManager) Maximize(id string) error {
	return wm.update(func() error {
		s, err := wm.paneLocked(id)
		if err != nil {
			return err
		}

		switch wm.states[id] {
		case StateMaximized:
			return nil
		case StateMinimized:
			wm.dropFromSillLocked(id)
			wm.setStateLocked(s, StateNormal, EventPaneRestored)
		}

		for otherID, state := range wm.states {
			if otherID == id || state != StateMaximized {
				continue
			}
			if other := wm.root.Find(otherID); other != nil {
				wm.setStateLocked(other, StateNormal, EventPaneRestored)
			}
		}

		wm.setStateLocked(s, StateMaximized, EventPaneMaximized)
		return nil
	})
}

// Restore returns a minimized or maximized pane to normal.
func (wm *WindowManager) Restore(id string) error {
	return wm.update(func() error {
		s, err := wm.paneLocked(id)
		if err != nil {
			return err
		}

		switch wm.states[id] {
		case StateNormal:
			return nil
		case StateMinimized:
			wm.dropFromSillLocked(id)
		}
		wm.setStateLocked(s, StateNormal, EventPaneRestored)
		return nil
	})
}

func (wm *WindowManager) setStateLocked(s *entity.Sash, state PaneState, t EventType) {
	wm.states[s.ID] = state
	wm.enqueueLocked(t, s, nil)
}

func (wm *WindowManager) dropFromSillLocked(id string) {
	wm.sill = slices.DeleteFunc(wm.sill, func(item string) bool {
		return item == id
	})
}

// Focus moves focus to a pane, blurring the previously focused one.
func (wm *WindowManager) Focus(id string) error {
	return wm.update(func() error {
		s, err := wm.paneLocked(id)
		if err != nil {
			return err
		}
		if wm.focused == id {
			return nil
		}

		if prev := wm.focused; prev != "" {
			wm.focused = ""
			if p := wm.root.Find(prev); p != nil {
				wm.enqueueLocked(EventPaneBlurred, p, nil)
			}
		}
		wm.focused = id
		wm.enqueueLocked(EventPaneFocused, s, nil)
		return nil
	})
}

// Blur clears focus.
func (wm *WindowManager) Blur() error {
	return wm.update(func() error {
		prev := wm.focused
		if prev == "" {
			return nil
		}
		wm.focused = ""
		if p := wm.root.Find(prev); p != nil {
			wm.enqueueLocked(EventPaneBlurred, p, nil)
		}
		return nil
	})
}

// Rename sets a pane's title.
func (wm *WindowManager) Rename(id, title string) error {
	return wm.update(func() error {
		s, err := wm.paneLocked(id)
		if err != nil {
			return err
		}

		previous := s.Store.Title()
		if previous == title {
			return nil
		}

		store := s.Store.Clone()
		store[entity.StoreKeyTitle] = title
		s.Store = store

		wm.enqueueLocked(EventPaneTitleChanged, s, &EventContext{PreviousTitle: &previous})
		return nil
	})
}
