package cytoscape

// Helpers for picking typed values out of the loosely shaped JSON the
// commands surface returns.

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func mapInt(m map[string]any, key string) (int64, bool) {
	f, ok := m[key].(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func mapStr(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// firstRowInt digs res[0][key] out of a commands reply shaped as a list
// of row maps.
func firstRowInt(v any, key string) (int64, bool) {
	rows := asSlice(v)
	if len(rows) == 0 {
		return 0, false
	}
	row := asMap(rows[0])
	if row == nil {
		return 0, false
	}
	return mapInt(row, key)
}
