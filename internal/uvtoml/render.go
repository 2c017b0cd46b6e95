package uvtoml

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"

	"uvconf/internal/schema"
)

// Render serializes a tool.uv document into TOML text: a [tool.uv]
// header with scalar and array keys in schema declaration order,
// followed by one [tool.uv.<key>.<name>] subtable per nested table
// entry in sorted order. Values are encoded per key through the TOML
// library so quoting and escaping always re-parse cleanly.
func Render(section map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("[tool.uv]\n")

	keys := orderedKeys(section)

	// Scalars and arrays first; tables become subtables below.
	var tableKeys []string
	for _, key := range keys {
		if _, isTable := section[key].(map[string]any); isTable {
			tableKeys = append(tableKeys, key)
			continue
		}
		if err := writeKeyValue(&buf, key, section[key]); err != nil {
			return nil, err
		}
	}

	for _, key := range tableKeys {
		table := section[key].(map[string]any)
		if len(table) == 0 {
			// Keep the key alive as an empty subtable.
			fmt.Fprintf(&buf, "\n[tool.uv.%s]\n", encodeKey(key))
			continue
		}

		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			entry, ok := table[name].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("entry %s.%s is not a table (got %T)", key, name, table[name])
			}
			fmt.Fprintf(&buf, "\n[tool.uv.%s.%s]\n", encodeKey(key), encodeKey(name))

			fields := make([]string, 0, len(entry))
			for field := range entry {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				if err := writeKeyValue(&buf, field, entry[field]); err != nil {
					return nil, fmt.Errorf("entry %s.%s: %w", key, name, err)
				}
			}
		}
	}

	return buf.Bytes(), nil
}

// orderedKeys returns the section's keys in schema declaration
// order, with any residue sorted alphabetically at the end.
func orderedKeys(section map[string]any) []string {
	rank := make(map[string]int)
	for i, p := range schema.Parameters() {
		rank[p.Name] = i
	}

	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iKnown := rank[keys[i]]
		rj, jKnown := rank[keys[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// writeKeyValue emits one "key = value" line using the TOML encoder.
func writeKeyValue(buf *bytes.Buffer, key string, value any) error {
	line, err := toml.Marshal(map[string]any{key: value})
	if err != nil {
		return fmt.Errorf("cannot encode key %q: %w", key, err)
	}
	buf.Write(line)
	return nil
}

// encodeKey renders a table-header key segment, quoting it when it
// is not a bare TOML key.
func encodeKey(key string) string {
	if isBareKey(key) {
		return key
	}
	return strconv.Quote(key)
}

// isBareKey reports whether key consists solely of TOML bare-key
// characters (A-Za-z0-9_-).
func isBareKey(key string) bool {
	if len(key) == 0 {
		return false
	}
	for _, r := range key {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
