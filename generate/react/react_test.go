package react

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
	b := fixtureBinding(t, transform.KindCascading)

	a, err := New().Generate(c, r, b)
	require.NoError(t, err)
	assert.True(t, a.Verify())
	assert.Equal(t, "Button.tsx", a.Filename)
	return a.Source
}

func TestGenerateButton(t *testing.T) {
	src := generateButton(t)

	// Manifest header pins generator, component and token revision
	assert.Contains(t, src, "react generator "+Version)
	assert.Contains(t, src, "component: button@1.2.0")
	assert.Contains(t, src, "tokens: 2026.08.0 (theme: light)")

	// Props surface: declared props with defaults, axes, states, aria, slot
	assert.Contains(t, src, "export interface ButtonProps {")
	assert.Contains(t, src, "label: string;")
	assert.Contains(t, src, "fullWidth?: boolean;")
	assert.Contains(t, src, "variant?: 'solid' | 'outline';")
	assert.Contains(t, src, "size?: 'md' | 'lg';")
	assert.Contains(t, src, "disabled?: boolean;")
	assert.Contains(t, src, "ariaLabel?: string;")
	assert.Contains(t, src, "icon?: React.ReactNode;")

	assert.Contains(t, src, "fullWidth = false,")
	assert.Contains(t, src, "variant = 'solid',")
	assert.Contains(t, src, "size = 'md',")
	assert.Contains(t, src, "disabled = false,")
}

func TestGenerateButtonStyleTables(t *testing.T) {
	src := generateButton(t)

	assert.Contains(t, src, "const BASE_STYLES: readonly string[] = ['inline-flex'];")
	assert.Contains(t, src, "'solid': ['bg-primary']")
	assert.Contains(t, src, "'outline': ['border-primary']")
	assert.Contains(t, src, "{ when: { size: 'lg', variant: 'outline' }, styles: ['border-2'] }")
	assert.Contains(t, src, "{ state: 'disabled', styles: ['opacity-50'] }")
	assert.Contains(t, src, "export function resolveButtonStyles(")

	// Out-of-enum selections fall back to the axis default, matching the
	// compiled resolver on every target
	assert.Contains(t, src, "fallback: 'solid'")
	assert.Contains(t, src, "axis.values[selection[axis.axis]] ? selection[axis.axis] : axis.fallback")
}

func TestGenerateButtonAccessibility(t *testing.T) {
	src := generateButton(t)

	assert.Contains(t, src, `role="button"`)
	assert.Contains(t, src, "aria-label={ariaLabel}")
	assert.Contains(t, src, "aria-disabled={disabled ? 'true' : undefined}")
	// Native buttons focus without a tabindex
	assert.NotContains(t, src, "tabIndex")
	assert.Contains(t, src, "disabled={disabled}")
	// 44dip minimum height from the contract
	assert.Contains(t, src, "minHeight: '44px'")
	assert.NotContains(t, src, "minWidth")
}

func TestGenerateDeterministic(t *testing.T) {
	first := generateButton(t)
	second := generateButton(t)
	assert.Equal(t, first, second)
}

func TestGenerateMissingToken(t *testing.T) {
	c := csm.ButtonFixture()
	c.TokenRefs = append(c.TokenRefs, "color.accent")
	r, err := variant.Compile(c)
	require.NoError(t, err)

	_, err = New().Generate(c, r, fixtureBinding(t, transform.KindCascading))
	require.Error(t, err)
	assert.True(t, errors.IsMissingTokenError(err))
	assert.Contains(t, err.Error(), "color.accent")
	assert.Contains(t, errors.GetAllDetails(err), "token=color.accent component=button")
}

func TestGenerateRejectsForeignResolver(t *testing.T) {
	c := csm.ButtonFixture()

	other := csm.ButtonFixture()
	other.Base = []string{"inline-flex", "select-none"}
	r, err := variant.Compile(other)
	require.NoError(t, err)

	_, err = New().Generate(c, r, fixtureBinding(t, transform.KindCascading))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolver")
}

func TestGenerateRejectsFlatBinding(t *testing.T) {
	c := csm.ButtonFixture()
	r, err := variant.Compile(c)
	require.NoError(t, err)

	_, err = New().Generate(c, r, fixtureBinding(t, transform.KindFlat))
	require.Error(t, err)
	assert.True(t, errors.IsCapabilityGapError(err))
}
