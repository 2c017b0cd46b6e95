// Package validate checks a merged [tool.uv] document against the
// schema. Every offending key is collected before returning, so a
// single run reports the complete diagnostic list.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"uvconf/internal/schema"
)

// ErrorKind classifies a field-level validation failure.
type ErrorKind string

const (
	UnknownParameter ErrorKind = "unknown parameter"
	TypeMismatch     ErrorKind = "type mismatch"
	InvalidValue     ErrorKind = "invalid value"
	MalformedSource  ErrorKind = "malformed source"
)

// FieldError describes one invalid key in a document.
type FieldError struct {
	// Key is the dotted path of the offending key, e.g. "resolution"
	// or "sources.httpx".
	Key string

	// Kind classifies the failure.
	Kind ErrorKind

	// Message is the human-readable detail (expected vs actual type,
	// allowed values, decode failure).
	Message string
}

// Error renders the diagnostic as a single line.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Key, e.Kind, e.Message)
}

// Join collapses a list of field errors into one multi-line error,
// or nil when the list is empty.
func Join(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return fmt.Errorf("%d invalid field(s):\n%s", len(errs), strings.Join(lines, "\n"))
}

// Validate checks every key of doc against the schema and collects
// all failures. On success it returns a fresh document with absent
// parameters filled from their schema defaults; on failure the
// returned document is nil and doc is untouched either way.
func Validate(doc map[string]any) (map[string]any, []FieldError) {
	var errs []FieldError

	// Sorted key order keeps the diagnostic list deterministic.
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		param, known := schema.Lookup(key)
		if !known {
			errs = append(errs, FieldError{
				Key:     key,
				Kind:    UnknownParameter,
				Message: fmt.Sprintf("no such parameter under [tool.uv] (value %v)", doc[key]),
			})
			continue
		}
		errs = append(errs, checkValue(param, doc[key])...)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	validated := make(map[string]any, len(doc))
	for key, value := range doc {
		validated[key] = value
	}
	for _, param := range schema.Parameters() {
		if _, present := validated[param.Name]; !present && param.Default != nil {
			validated[param.Name] = param.Default
		}
	}
	return validated, nil
}

// checkValue validates one present key against its parameter spec.
func checkValue(param schema.Parameter, value any) []FieldError {
	switch param.Kind {
	case schema.KindBool:
		if _, ok := value.(bool); !ok {
			return []FieldError{mismatch(param.Name, "bool", value)}
		}

	case schema.KindString:
		if _, ok := value.(string); !ok {
			return []FieldError{mismatch(param.Name, "string", value)}
		}

	case schema.KindEnum:
		s, ok := value.(string)
		if !ok {
			return []FieldError{mismatch(param.Name, "string", value)}
		}
		for _, allowed := range param.Allowed {
			if s == allowed {
				return nil
			}
		}
		return []FieldError{{
			Key:     param.Name,
			Kind:    InvalidValue,
			Message: fmt.Sprintf("%q is not one of [%s]", s, strings.Join(param.Allowed, ", ")),
		}}

	case schema.KindStrings:
		return checkStrings(param.Name, value)

	case schema.KindTable:
		return checkSources(param.Name, value)
	}
	return nil
}

// checkStrings validates an array-of-strings parameter. Arrays come
// out of the codecs as []any; []string is accepted as well.
func checkStrings(name string, value any) []FieldError {
	switch v := value.(type) {
	case []string:
		return nil
	case []any:
		for i, elem := range v {
			if _, ok := elem.(string); !ok {
				return []FieldError{mismatch(fmt.Sprintf("%s[%d]", name, i), "string", elem)}
			}
		}
		return nil
	default:
		return []FieldError{mismatch(name, "array of strings", value)}
	}
}

// checkSources validates each entry of a sources table as an
// independent SourceSpec, attaching the package name to failures.
func checkSources(name string, value any) []FieldError {
	table, ok := value.(map[string]any)
	if !ok {
		return []FieldError{mismatch(name, "table", value)}
	}

	pkgs := make([]string, 0, len(table))
	for pkg := range table {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	var errs []FieldError
	for _, pkg := range pkgs {
		if _, err := schema.DecodeSource(table[pkg]); err != nil {
			errs = append(errs, FieldError{
				Key:     name + "." + pkg,
				Kind:    MalformedSource,
				Message: err.Error(),
			})
		}
	}
	return errs
}

// mismatch builds a TypeMismatch error with the expected and actual
// type names spelled out.
func mismatch(key, expected string, value any) FieldError {
	return FieldError{
		Key:     key,
		Kind:    TypeMismatch,
		Message: fmt.Sprintf("expected %s, got %s (%v)", expected, typeName(value), value),
	}
}

// typeName reports a codec-neutral type name for diagnostics.
func typeName(value any) string {
	switch value.(type) {
	case bool:
		return "bool"
	case string:
		return "string"
	case map[string]any:
		return "table"
	case []any, []string:
		return "array"
	case json.Number:
		return "number"
	case int, int64:
		return "integer"
	case float64:
		return "float"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", value)
	}
}
