package csm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buttonYAML = `
id: button
version: 1.2.0
element: button
base: [inline-flex]
tokens:
  - color.primary.500
  - size.control.md
props:
  - name: label
    type: string
    required: true
variants:
  - name: size
    default: md
    values:
      - name: md
        styles: [h-12]
      - name: lg
        styles: [h-14]
states:
  - name: disabled
    styles: [opacity-50]
accessibility:
  wcag_level: AA
  role: button
  attributes:
    - name: aria-label
  keyboard: [Enter, Space]
  contrast_token: color.primary.500
  min_target_size:
    height: 44dip
`

func TestParseValidDocument(t *testing.T) {
	c, err := ParseBytes([]byte(buttonYAML))
	require.NoError(t, err)

	assert.Equal(t, "button", c.ID)
	assert.Equal(t, "1.2.0", c.Version)
	assert.Equal(t, []string{"inline-flex"}, c.Base)
	require.Len(t, c.Variants, 1)
	assert.Equal(t, "md", c.Variants[0].Default)
	assert.Equal(t, LevelAA, c.Accessibility.WCAGLevel)
	require.NotNil(t, c.Accessibility.MinTargetSize)
	assert.Equal(t, "44dip", c.Accessibility.MinTargetSize.Height)
}

func TestParseRejectsUnknownField(t *testing.T) {
	doc := buttonYAML + "\nrender_hook: useButton\n"
	_, err := ParseBytes([]byte(doc))
	require.Error(t, err, "unknown fields are rejected, not ignored")
}

func TestParseRejectsInvalidDocument(t *testing.T) {
	doc := `
id: button
version: 1.2.0
element: button
variants:
  - name: size
    values:
      - name: md
accessibility:
  wcag_level: AA
`
	_, err := ParseBytes([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing default")
}

func TestParseOrderPreserved(t *testing.T) {
	doc := `
id: chip
version: 0.1.0
element: span
variants:
  - name: tone
    default: neutral
    values:
      - name: neutral
      - name: danger
  - name: size
    default: sm
    values:
      - name: sm
      - name: md
accessibility:
  wcag_level: A
`
	c, err := ParseBytes([]byte(doc))
	require.NoError(t, err)
	require.Len(t, c.Variants, 2)
	assert.Equal(t, "tone", c.Variants[0].Name, "axis declaration order is resolution order")
	assert.Equal(t, "size", c.Variants[1].Name)
}
