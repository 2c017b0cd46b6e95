// Package schema declares every recognized [tool.uv] parameter as a
// single ordered table of Parameter records. The table is the sole
// source of truth shared by validation, default filling, and the
// per-parameter help output.
package schema

// Kind identifies the value shape a parameter accepts.
type Kind string

const (
	// KindBool accepts a TOML/YAML/JSON boolean.
	KindBool Kind = "bool"
	// KindString accepts a plain string.
	KindString Kind = "string"
	// KindEnum accepts one of a fixed set of strings.
	KindEnum Kind = "enum"
	// KindStrings accepts an array of strings.
	KindStrings Kind = "strings"
	// KindTable accepts a nested table (used by "sources").
	KindTable Kind = "table"
)

// Parameter describes one configuration key under [tool.uv].
type Parameter struct {
	// Name is the TOML key as it appears in pyproject.toml.
	Name string

	// Kind is the accepted value shape.
	Kind Kind

	// Default is written into generated output for absent keys.
	// A nil Default means the parameter is omitted when unset.
	Default any

	// Allowed lists the permitted values for KindEnum parameters.
	Allowed []string

	// Description is the one-line help text shown by "param".
	Description string
}

// parameters is declared in the order keys are rendered into output.
var parameters = []Parameter{
	{
		Name:        "package",
		Kind:        KindBool,
		Default:     true,
		Description: "Whether the project should be considered a Python package and built/installed into the environment.",
	},
	{
		Name:        "managed",
		Kind:        KindBool,
		Default:     true,
		Description: "Whether the project is managed by uv, including lockfile creation and synchronization.",
	},
	{
		Name:        "required-version",
		Kind:        KindString,
		Description: "Version specifier the invoked uv binary must satisfy, e.g. \">=0.4.0\".",
	},
	{
		Name:        "resolution",
		Kind:        KindEnum,
		Default:     "highest",
		Allowed:     []string{"highest", "lowest", "lowest-direct"},
		Description: "Strategy for selecting among candidate versions of a dependency during resolution.",
	},
	{
		Name:        "prerelease",
		Kind:        KindEnum,
		Default:     "disallow",
		Allowed:     []string{"disallow", "allow", "if-necessary", "explicit"},
		Description: "Whether pre-release versions may be selected during dependency resolution.",
	},
	{
		Name:        "python-preference",
		Kind:        KindEnum,
		Allowed:     []string{"managed", "system", "only-managed", "only-system"},
		Description: "Whether uv-managed or system Python installations are preferred.",
	},
	{
		Name:        "cache-dir",
		Kind:        KindString,
		Description: "Path to the directory uv uses for its cache.",
	},
	{
		Name:        "default-groups",
		Kind:        KindStrings,
		Description: "Dependency groups installed by default when syncing the project.",
	},
	{
		Name:        "dev-dependencies",
		Kind:        KindStrings,
		Description: "Development dependency requirements (legacy, superseded by dependency groups).",
	},
	{
		Name:        "sources",
		Kind:        KindTable,
		Description: "Alternative origins for dependencies, keyed by package name (git, url, path, workspace, or index).",
	},
}

// byName indexes parameters for Lookup. Built once at init.
var byName = func() map[string]Parameter {
	m := make(map[string]Parameter, len(parameters))
	for _, p := range parameters {
		m[p.Name] = p
	}
	return m
}()

// Parameters returns all declared parameters in declaration order.
// The returned slice is a copy and safe for callers to modify.
func Parameters() []Parameter {
	out := make([]Parameter, len(parameters))
	copy(out, parameters)
	return out
}

// Lookup returns the parameter declared under name.
func Lookup(name string) (Parameter, bool) {
	p, ok := byName[name]
	return p, ok
}

// Defaults returns a fresh document containing every parameter that
// declares a concrete default value.
func Defaults() map[string]any {
	out := make(map[string]any)
	for _, p := range parameters {
		if p.Default != nil {
			out[p.Name] = p.Default
		}
	}
	return out
}
