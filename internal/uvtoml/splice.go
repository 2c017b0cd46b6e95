package uvtoml

import (
	"strings"
)

// Splice replaces every [tool.uv] and [tool.uv.*] block in existing
// with the rendered section, inserted where the first such block
// began. When the text has no tool.uv block the section is appended.
// Lines outside the replaced blocks are carried over byte-identical,
// and splicing the same section twice is a no-op.
func Splice(existing, section []byte) []byte {
	sectionLines := strings.Split(strings.TrimRight(string(section), "\n"), "\n")
	lines := strings.Split(string(existing), "\n")

	out := make([]string, 0, len(lines)+len(sectionLines))
	inserted := false
	skipping := false

	// Lines inside a multi-line string are value content: a line in
	// there that looks like [tool.uv] must never start the section.
	stringDelim := byte(0)

	for _, line := range lines {
		insideString := stringDelim != 0
		stringDelim = advanceStringState(line, stringDelim)

		if !insideString {
			if segments, isHeader := parseHeader(line); isHeader {
				if isUVHeader(segments) {
					if !inserted {
						out = append(out, sectionLines...)
						out = append(out, "")
						inserted = true
					}
					skipping = true
					continue
				}
				skipping = false
			}
		}
		if skipping {
			continue
		}
		out = append(out, line)
	}

	if !inserted {
		// Append at end, separated by one blank line.
		for len(out) > 0 && out[len(out)-1] == "" {
			out = out[:len(out)-1]
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, sectionLines...)
		out = append(out, "")
	}

	return []byte(strings.Join(out, "\n"))
}

// advanceStringState scans one line and returns the multi-line
// string state after it: 0 when the next line starts outside any
// string, otherwise the quote character ('"' or '\'') of the
// still-open """/''' string. Single-line strings and comments are
// consumed so their contents cannot open or close anything.
func advanceStringState(line string, delim byte) byte {
	i := 0
	for i < len(line) {
		if delim != 0 {
			// Inside a multi-line string, look for its closer.
			if delim == '"' && line[i] == '\\' {
				i += 2
				continue
			}
			if hasTriple(line, i, delim) {
				delim = 0
				i += 3
				continue
			}
			i++
			continue
		}

		switch c := line[i]; c {
		case '#':
			return 0 // comment runs to end of line
		case '"', '\'':
			if hasTriple(line, i, c) {
				delim = c
				i += 3
				continue
			}
			// Single-line string: consume to the closing quote.
			j := i + 1
			for j < len(line) {
				if c == '"' && line[j] == '\\' {
					j += 2
					continue
				}
				if line[j] == c {
					break
				}
				j++
			}
			if j >= len(line) {
				return 0 // unterminated, not valid TOML anyway
			}
			i = j + 1
		default:
			i++
		}
	}
	return delim
}

// hasTriple reports whether s has three consecutive c starting at i.
func hasTriple(s string, i int, c byte) bool {
	return i+2 < len(s) && s[i] == c && s[i+1] == c && s[i+2] == c
}

// isUVHeader reports whether a parsed table header addresses
// tool.uv or any of its subtables.
func isUVHeader(segments []string) bool {
	return len(segments) >= 2 && segments[0] == "tool" && segments[1] == "uv"
}

// parseHeader parses a line as a TOML table header ([a.b] or
// [[a.b]]) and returns its unquoted key segments. Dots inside quoted
// segments do not split, so [tool.uv.sources."my.pkg"] parses as
// four segments.
func parseHeader(line string) ([]string, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "[") {
		return nil, false
	}
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimPrefix(s, "[") // array-of-tables form

	var segments []string
	var cur strings.Builder
	i := 0
	for i < len(s) {
		switch c := s[i]; c {
		case ']':
			rest := strings.TrimPrefix(s[i+1:], "]")
			rest = strings.TrimSpace(rest)
			if rest != "" && !strings.HasPrefix(rest, "#") {
				return nil, false // bracketed value, not a header
			}
			segments = append(segments, cur.String())
			return segments, true
		case '.':
			segments = append(segments, cur.String())
			cur.Reset()
			i++
		case ' ', '\t':
			i++
		case '"':
			// Basic string: honor backslash escapes.
			i++
			for i < len(s) && s[i] != '"' {
				if s[i] == '\\' && i+1 < len(s) {
					cur.WriteByte(s[i+1])
					i += 2
					continue
				}
				cur.WriteByte(s[i])
				i++
			}
			if i >= len(s) {
				return nil, false // unterminated string
			}
			i++ // closing quote
		case '\'':
			// Literal string: no escapes.
			i++
			for i < len(s) && s[i] != '\'' {
				cur.WriteByte(s[i])
				i++
			}
			if i >= len(s) {
				return nil, false
			}
			i++
		default:
			cur.WriteByte(c)
			i++
		}
	}
	return nil, false // no closing bracket
}
