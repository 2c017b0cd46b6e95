package uvtoml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvconf/internal/codec"
)

func TestRender(t *testing.T) {
	t.Run("ScalarsInSchemaOrder", func(t *testing.T) {
		out, err := Render(map[string]any{
			"resolution": "highest",
			"package":    true,
			"managed":    false,
		})
		require.NoError(t, err)

		assert.Equal(t, "[tool.uv]\npackage = true\nmanaged = false\nresolution = \"highest\"\n", string(out))
	})

	t.Run("SourcesBecomeSortedSubtables", func(t *testing.T) {
		out, err := Render(map[string]any{
			"managed": true,
			"sources": map[string]any{
				"requests": map[string]any{"path": "../requests"},
				"httpx": map[string]any{
					"git": "https://github.com/encode/httpx",
					"tag": "0.27.0",
				},
			},
		})
		require.NoError(t, err)

		text := string(out)
		httpxAt := strings.Index(text, "[tool.uv.sources.httpx]")
		requestsAt := strings.Index(text, "[tool.uv.sources.requests]")
		require.GreaterOrEqual(t, httpxAt, 0)
		require.GreaterOrEqual(t, requestsAt, 0)
		assert.Less(t, httpxAt, requestsAt)
		assert.Contains(t, text, "git = \"https://github.com/encode/httpx\"")
		assert.Contains(t, text, "tag = \"0.27.0\"")
	})

	t.Run("DottedPackageNameIsQuoted", func(t *testing.T) {
		out, err := Render(map[string]any{
			"sources": map[string]any{
				"my.pkg": map[string]any{"workspace": true},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, string(out), "[tool.uv.sources.\"my.pkg\"]")
	})

	t.Run("EmptyTableKeptAsBareHeader", func(t *testing.T) {
		out, err := Render(map[string]any{"sources": map[string]any{}})
		require.NoError(t, err)
		assert.Contains(t, string(out), "[tool.uv.sources]")
	})

	t.Run("ArraysRenderInline", func(t *testing.T) {
		out, err := Render(map[string]any{"default-groups": []any{"dev", "docs"}})
		require.NoError(t, err)
		assert.Contains(t, string(out), `default-groups = ["dev", "docs"]`)
	})

	t.Run("NonTableSourceEntryRejected", func(t *testing.T) {
		_, err := Render(map[string]any{
			"sources": map[string]any{"httpx": "not-a-table"},
		})
		assert.Error(t, err)
	})

	t.Run("RoundTripsThroughParser", func(t *testing.T) {
		section := map[string]any{
			"package":    true,
			"resolution": "highest",
			"sources": map[string]any{
				"httpx": map[string]any{
					"git": "https://github.com/encode/httpx",
					"tag": "0.27.0",
				},
			},
		}

		rendered, err := Render(section)
		require.NoError(t, err)

		root, err := codec.Decode(rendered, codec.FormatTOML, "rendered")
		require.NoError(t, err)
		reloaded, err := SectionOf(root)
		require.NoError(t, err)
		assert.Equal(t, section, reloaded)
	})
}

const targetFixture = `# Demo project.
[project]
name = "demo"
version = "0.1.0"

[tool.uv]
resolution = "lowest"

[tool.uv.sources.requests]
path = "../requests"

[tool.black]
line-length = 88
`

func TestSplice(t *testing.T) {
	section := []byte("[tool.uv]\nmanaged = false\nresolution = \"highest\"\n")

	t.Run("ReplacesSectionAndSubtables", func(t *testing.T) {
		out := string(Splice([]byte(targetFixture), section))

		assert.Contains(t, out, "managed = false")
		assert.NotContains(t, out, `resolution = "lowest"`)
		assert.NotContains(t, out, "[tool.uv.sources.requests]")
	})

	t.Run("EverythingElseStaysByteIdentical", func(t *testing.T) {
		out := string(Splice([]byte(targetFixture), section))

		assert.Contains(t, out, "# Demo project.\n[project]\nname = \"demo\"\nversion = \"0.1.0\"\n")
		assert.Contains(t, out, "[tool.black]\nline-length = 88\n")
	})

	t.Run("SectionInsertedWhereOldOneBegan", func(t *testing.T) {
		out := string(Splice([]byte(targetFixture), section))
		assert.Less(t, strings.Index(out, "[project]"), strings.Index(out, "[tool.uv]"))
		assert.Less(t, strings.Index(out, "[tool.uv]"), strings.Index(out, "[tool.black]"))
	})

	t.Run("AppendsWhenNoSectionExists", func(t *testing.T) {
		existing := "[project]\nname = \"demo\"\n"
		out := string(Splice([]byte(existing), section))

		assert.True(t, strings.HasPrefix(out, existing))
		assert.Contains(t, out, "\n[tool.uv]\nmanaged = false\n")
		assert.True(t, strings.HasSuffix(out, "\n"))
	})

	t.Run("EmptyFile", func(t *testing.T) {
		out := string(Splice(nil, section))
		assert.Equal(t, string(section), out)
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := Splice([]byte(targetFixture), section)
		twice := Splice(once, section)
		assert.Equal(t, string(once), string(twice))
	})

	t.Run("QuotedSubtableHeaderIsRecognized", func(t *testing.T) {
		existing := "[tool.uv]\nmanaged = true\n\n[tool.uv.sources.\"my.pkg\"]\nworkspace = true\n\n[tool.isort]\nprofile = \"black\"\n"
		out := string(Splice([]byte(existing), section))

		assert.NotContains(t, out, "my.pkg")
		assert.Contains(t, out, "[tool.isort]\nprofile = \"black\"\n")
	})

	t.Run("ArrayValueLinesAreNotHeaders", func(t *testing.T) {
		existing := "[tool.uv]\ndev-dependencies = [\n  \"pytest\",\n]\n\n[tool.black]\nline-length = 88\n"
		out := string(Splice([]byte(existing), section))

		assert.NotContains(t, out, "pytest")
		assert.Contains(t, out, "[tool.black]")
	})

	t.Run("HeaderLikeLinesInsideMultilineStringsAreContent", func(t *testing.T) {
		existing := "[project]\nname = \"demo\"\ndescription = \"\"\"\nSee the\n[tool.uv]\ndocs for details.\n\"\"\"\nauthors = [\"Ann\"]\n"
		out := string(Splice([]byte(existing), section))

		// Nothing before the appended section may change.
		assert.True(t, strings.HasPrefix(out, existing))

		root, err := codec.Decode([]byte(out), codec.FormatTOML, "spliced")
		require.NoError(t, err)
		uv, err := SectionOf(root)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"managed": false, "resolution": "highest"}, uv)

		project := root["project"].(map[string]any)
		assert.Contains(t, project["description"], "[tool.uv]")
		assert.Equal(t, []any{"Ann"}, project["authors"])
	})

	t.Run("RealSectionAfterMultilineStringIsReplaced", func(t *testing.T) {
		existing := "[project]\ndescription = '''\n[tool.uv]\nnot really\n'''\n\n[tool.uv]\nresolution = \"lowest\"\n"
		out := string(Splice([]byte(existing), section))

		assert.Contains(t, out, "not really")
		assert.NotContains(t, out, `resolution = "lowest"`)
		assert.Contains(t, out, "managed = false")

		root, err := codec.Decode([]byte(out), codec.FormatTOML, "spliced")
		require.NoError(t, err)
		project := root["project"].(map[string]any)
		assert.Contains(t, project["description"], "[tool.uv]")
	})

	t.Run("InlineTripleQuotesDoNotLeakState", func(t *testing.T) {
		existing := "[project]\nsummary = \"\"\"one line\"\"\"\n\n[tool.uv]\nresolution = \"lowest\"\n"
		out := string(Splice([]byte(existing), section))

		assert.NotContains(t, out, `resolution = "lowest"`)
		assert.Contains(t, out, "managed = false")
	})

	t.Run("IdempotentWithMultilineStrings", func(t *testing.T) {
		existing := "[project]\ndescription = \"\"\"\n[tool.uv]\n\"\"\"\n\n[tool.uv]\nmanaged = true\n"
		once := Splice([]byte(existing), section)
		twice := Splice(once, section)
		assert.Equal(t, string(once), string(twice))
	})

	t.Run("ResultReparses", func(t *testing.T) {
		out := Splice([]byte(targetFixture), section)
		root, err := codec.Decode(out, codec.FormatTOML, "spliced")
		require.NoError(t, err)

		uv, err := SectionOf(root)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"managed": false, "resolution": "highest"}, uv)
	})
}

func TestSectionOf(t *testing.T) {
	t.Run("MissingToolIsEmpty", func(t *testing.T) {
		section, err := SectionOf(map[string]any{"project": map[string]any{}})
		require.NoError(t, err)
		assert.Empty(t, section)
	})

	t.Run("MissingUVIsEmpty", func(t *testing.T) {
		section, err := SectionOf(map[string]any{"tool": map[string]any{"black": map[string]any{}}})
		require.NoError(t, err)
		assert.Empty(t, section)
	})

	t.Run("NonTableUVIsAnError", func(t *testing.T) {
		_, err := SectionOf(map[string]any{"tool": map[string]any{"uv": "oops"}})
		assert.Error(t, err)
	})
}

func TestOverlaySection(t *testing.T) {
	t.Run("PyprojectShapedOverlay", func(t *testing.T) {
		section, err := OverlaySection(map[string]any{
			"tool": map[string]any{"uv": map[string]any{"managed": false}},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"managed": false}, section)
	})

	t.Run("BareMappingUsedWhole", func(t *testing.T) {
		section, err := OverlaySection(map[string]any{"managed": false})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"managed": false}, section)
	})
}

func TestLoadSectionAndWriteFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("WriteThenLoad", func(t *testing.T) {
		path := filepath.Join(tmpDir, "pyproject.toml")
		require.NoError(t, WriteFile(path, []byte(targetFixture)))

		section, err := LoadSection(path)
		require.NoError(t, err)
		assert.Equal(t, "lowest", section["resolution"])
		requests := section["sources"].(map[string]any)["requests"].(map[string]any)
		assert.Equal(t, "../requests", requests["path"])
	})

	t.Run("WriteReplacesExistingContent", func(t *testing.T) {
		path := filepath.Join(tmpDir, "replace.toml")
		require.NoError(t, os.WriteFile(path, []byte("old = true\n"), 0644))
		require.NoError(t, WriteFile(path, []byte("new = true\n")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new = true\n", string(data))
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadSection(filepath.Join(tmpDir, "absent.toml"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
