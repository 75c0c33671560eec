package extract

// Bounds on the recursive walk. The detailed payload embeds a language
// model's answer, so its depth and size are not under our control.
const (
	maxDepth = 32
	maxNodes = 10000
)

// walker performs a bounded depth-first traversal of an untyped JSON graph
// (maps, slices, strings, numbers, bools, nil).
type walker struct {
	nodes int
}

// visit is called for every map entry encountered, with the entry's key.
type visit func(key string, value any)

// walk dispatches on node type. Nodes beyond the depth or size bound are
// silently skipped.
func (w *walker) walk(node any, depth int, fn visit) {
	if depth > maxDepth || w.nodes >= maxNodes {
		return
	}
	w.nodes++

	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			fn(key, child)
			w.walk(child, depth+1, fn)
		}
	case []any:
		for _, child := range v {
			w.walk(child, depth+1, fn)
		}
	}
}

// collectStrings gathers every string value anywhere in the graph.
func collectStrings(root any) []string {
	var out []string
	w := &walker{}

	if s, ok := root.(string); ok {
		return []string{s}
	}

	w.walk(root, 0, func(_ string, value any) {
		if s, ok := value.(string); ok {
			out = append(out, s)
		}
	})
	return out
}

// stringField returns the first string value found under any of the keys.
func stringField(m map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// numberField returns the first numeric value found under any of the keys.
func numberField(m map[string]any, keys []string) float64 {
	for _, key := range keys {
		switch n := m[key].(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return 0
}
