package entity

// Well-known store keys read by the host surface. Everything else in a
// Store is passed through untouched.
const (
	StoreKeyTitle       = "title"
	StoreKeyDroppable   = "droppable"
	StoreKeyResizable   = "resizable"
	StoreKeyMinimizable = "minimizable"
	StoreKeyMaximizable = "maximizable"
	StoreKeyClosable    = "closable"
)

// Store is the caller-supplied key/value bag attached to a sash.
type Store map[string]any

// Clone returns a deep copy of nested maps and slices so snapshots never
// alias live state. A nil store clones to an empty one.
func (s Store) Clone() Store {
	out := make(Store, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// String returns the string stored under key.
func (s Store) String(key string) (string, bool) {
	v, ok := s[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Bool returns the boolean stored under key, or def when absent or not a bool.
func (s Store) Bool(key string, def bool) bool {
	v, ok := s[key].(bool)
	if !ok {
		return def
	}
	return v
}

// Title returns the pane title, empty when unset.
func (s Store) Title() string {
	title, _ := s.String(StoreKeyTitle)
	return title
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, inner := range typed {
			out[k] = cloneValue(inner)
		}
		return out
	case Store:
		return typed.Clone()
	case []any:
		out := make([]any, len(typed))
		for i, inner := range typed {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return v
	}
}
