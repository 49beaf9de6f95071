package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `
revision = "2026.08.0"
themes = ["light", "dark"]

[tokens."color.primary.500"]
type = "color"
values = { light = "#2563eb", dark = "#3b82f6" }

[tokens."color.primary.500".contrast]
against = "color.surface"
ratio = 4.8

[tokens."color.surface"]
type = "color"
values = { light = "#ffffff", dark = "#111827" }

[tokens."size.control.md"]
type = "length"
values = { light = "2.75rem", dark = "2.75rem" }
`

func TestParseValidDocument(t *testing.T) {
	set, err := ParseBytes([]byte(validDoc))
	require.NoError(t, err)

	assert.Equal(t, "2026.08.0", set.Revision())
	assert.Equal(t, []Theme{ThemeLight, ThemeDark}, set.Themes())

	tok, ok := set.Lookup("color.primary.500")
	require.True(t, ok)
	require.NotNil(t, tok.Contrast)
	assert.InDelta(t, 4.8, tok.Contrast.Ratio, 1e-9)

	size, ok := set.Lookup("size.control.md")
	require.True(t, ok)
	v, _ := size.Value(ThemeLight)
	l, err := ParseLength(v)
	require.NoError(t, err)
	assert.Equal(t, 44, l.Dip())
}

func TestParseRejectsUnknownFields(t *testing.T) {
	doc := `
revision = "r1"
themes = ["light"]
flavor = "grape"

[tokens."color.surface"]
type = "color"
values = { light = "#fff" }
`
	_, err := ParseBytes([]byte(doc))
	require.Error(t, err, "unknown fields are rejected, not ignored")
}

func TestParseRejectsUnknownTokenField(t *testing.T) {
	doc := `
revision = "r1"
themes = ["light"]

[tokens."color.surface"]
type = "color"
values = { light = "#fff" }
opacity = 0.5
`
	_, err := ParseBytes([]byte(doc))
	require.Error(t, err)
}

func TestParseRejectsMissingRevision(t *testing.T) {
	doc := `
themes = ["light"]

[tokens."color.surface"]
type = "color"
values = { light = "#fff" }
`
	_, err := ParseBytes([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revision")
}
