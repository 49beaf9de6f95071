package webc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismui/prism/csm"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/tokens"
	"github.com/prismui/prism/tokens/transform"
	"github.com/prismui/prism/variant"
)

func fixtureBinding(t *testing.T, kind transform.Kind) *transform.Binding {
	t.Helper()

	set, err := tokens.New("2026.08.0", []tokens.Theme{tokens.ThemeLight}, []tokens.Token{
		{
			Name:     "color.primary.500",
			Type:     tokens.TypeColor,
			Values:   map[tokens.Theme]string{tokens.ThemeLight: "#2563eb"},
			Contrast: &tokens.ContrastHint{Against: "color.surface", Ratio: 4.6},
		},
		{
			Name:   "color.surface",
			Type:   tokens.TypeColor,
			Values: map[tokens.Theme]string{tokens.ThemeLight: "#ffffff"},
		},
		{
			Name:   "size.control.md",
			Type:   tokens.TypeLength,
			Values: map[tokens.Theme]string{tokens.ThemeLight: "3rem"},
		},
	})
	require.NoError(t, err)

	b, err := transform.Transform(set, kind, tokens.ThemeLight)
	require.NoError(t, err)
	return b
}

func generateButton(t *testing.T) string {
	t.Helper()

	c := csm.ButtonFixture()
	r, err := variant.Compile(c)
	require.NoError(t, err)

	a, err := New().Generate(c, r, fixtureBinding(t, transform.KindCascading))
	require.NoError(t, err)
	assert.True(t, a.Verify())
	assert.Equal(t, "PrismButton.js", a.Filename)
	return a.Source
}

func TestGenerateButtonElement(t *testing.T) {
	src := generateButton(t)

	assert.Contains(t, src, "webc generator "+Version)
	assert.Contains(t, src, "export class PrismButton extends HTMLElement {")
	assert.Contains(t, src, "customElements.define('prism-button', PrismButton);")
	assert.Contains(t, src, "static observedAttributes = ['variant', 'size', 'disabled', 'label', 'fullWidth', 'aria-label'];")
}

func TestGenerateButtonAccessibility(t *testing.T) {
	src := generateButton(t)

	assert.Contains(t, src, "this.setAttribute('role', 'button');")
	// Custom elements are not natively focusable; the keyboard contract
	// forces a tabindex and key handling
	assert.Contains(t, src, "this.setAttribute('tabindex', '0');")
	assert.Contains(t, src, "['Enter', ' '].includes(event.key)")
	assert.Contains(t, src, "this.style.minHeight = '44px';")

	// State-scoped aria attribute tracks its state attribute
	assert.Contains(t, src, "if (this.hasAttribute('disabled')) {")
	assert.Contains(t, src, "this.setAttribute('aria-disabled', 'true');")
	assert.Contains(t, src, "this.removeAttribute('aria-disabled');")
}

func TestGenerateButtonStyles(t *testing.T) {
	src := generateButton(t)

	assert.Contains(t, src, "const BASE_STYLES = ['inline-flex'];")
	assert.Contains(t, src, "{ axis: 'variant', fallback: 'solid'")
	assert.Contains(t, src, "{ axis: 'size', fallback: 'md'")
	assert.Contains(t, src, "{ when: { size: 'lg', variant: 'outline' }, styles: ['border-2'] }")
	assert.Contains(t, src, "{ state: 'disabled', styles: ['opacity-50'] }")
	assert.Contains(t, src, "this.className = classes.join(' ');")
}

func TestGenerateButtonSlots(t *testing.T) {
	src := generateButton(t)

	assert.Contains(t, src, "this.attachShadow({ mode: 'open' })")
	assert.Contains(t, src, "{ name: 'icon' }")
}

func TestGenerateDeterministic(t *testing.T) {
	assert.Equal(t, generateButton(t), generateButton(t))
}

func TestGenerateRejectsFlatBinding(t *testing.T) {
	c := csm.ButtonFixture()
	r, err := variant.Compile(c)
	require.NoError(t, err)

	_, err = New().Generate(c, r, fixtureBinding(t, transform.KindFlat))
	require.Error(t, err)
	assert.True(t, errors.IsCapabilityGapError(err))
}
