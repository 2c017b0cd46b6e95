// Package merge combines ordered partial configuration documents
// into one. Later layers override earlier ones key-by-key; values
// that are tables on both sides merge recursively, while arrays and
// scalars are replaced wholesale by the higher-precedence layer.
package merge

// Layer is one ordered input to a merge. Name identifies where the
// values came from (e.g. "defaults", "file", "overlay") and appears
// only in diagnostics.
type Layer struct {
	Name   string
	Values map[string]any
}

// Merge combines layers left to right, later layers taking
// precedence. The inputs are never mutated and the result shares no
// maps or slices with them, so merging is pure: the same layers in
// the same order always produce the same document.
func Merge(layers ...Layer) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		out = overlay(out, layer.Values)
	}
	return out
}

// overlay applies src on top of dst, returning dst. dst is owned by
// the merge in progress; src is read-only and deep-copied on entry.
func overlay(dst, src map[string]any) map[string]any {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)

		if srcIsMap && dstIsMap {
			// Tables merge recursively so sibling keys survive.
			dst[key] = overlay(dstMap, srcMap)
			continue
		}

		// Scalars, arrays, and table-over-non-table replace outright.
		dst[key] = copyValue(value)
	}
	return dst
}

// copyValue deep-copies maps and slices so the merged document is
// detached from every input layer.
func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[key] = copyValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = copyValue(inner)
		}
		return out
	default:
		return value
	}
}
