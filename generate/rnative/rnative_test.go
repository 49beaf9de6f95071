package rnative

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

	a, err := New().Generate(c, r, fixtureBinding(t, transform.KindFlat))
	require.NoError(t, err)
	assert.True(t, a.Verify())
	assert.Equal(t, "PrismButton.tsx", a.Filename)
	return a.Source
}

func TestGenerateButtonComponent(t *testing.T) {
	src := generateButton(t)

	assert.Contains(t, src, "rnative generator "+Version)
	assert.Contains(t, src, "component: button@1.2.0")
	assert.Contains(t, src, "import { Pressable, StyleSheet, Text, ViewStyle } from 'react-native';")
	assert.Contains(t, src, "export function PrismButton({")
	assert.Contains(t, src, "<Pressable")
	assert.Contains(t, src, "<Text>{label}</Text>")
}

func TestGenerateButtonTokenRefs(t *testing.T) {
	src := generateButton(t)

	// Token lookups go through the flat binding's access expression
	assert.Contains(t, src, "export const TOKEN_REFS = {")
	assert.Contains(t, src, `'color.primary.500': tokens["color.primary.500"],`)
	assert.Contains(t, src, `'size.control.md': tokens["size.control.md"],`)
}

func TestGenerateButtonAccessibility(t *testing.T) {
	src := generateButton(t)

	assert.Contains(t, src, `accessibilityRole="button"`)
	assert.Contains(t, src, "accessibilityLabel={ariaLabel}")
	assert.Contains(t, src, "accessibilityState={{ disabled: disabled }}")
	assert.Contains(t, src, "disabled={disabled}")
	assert.Contains(t, src, "onPress={disabled ? undefined : onPress}")
	// 44dip minimum from the contract, unitless in native styles
	assert.Contains(t, src, "minHeight: 44")
}

func TestGenerateButtonStyles(t *testing.T) {
	src := generateButton(t)

	assert.Contains(t, src, "const BASE_STYLES: readonly string[] = ['inline-flex'];")
	assert.Contains(t, src, "{ when: { size: 'lg', variant: 'outline' }, styles: ['border-2'] }")
	assert.Contains(t, src, "{ state: 'disabled', styles: ['opacity-50'] }")
	assert.Contains(t, src, "identifiers.map((id) => styleRegistry[id])")
}

func TestGenerateDeterministic(t *testing.T) {
	assert.Equal(t, generateButton(t), generateButton(t))
}

func TestGeneratePassThroughAria(t *testing.T) {
	c := csm.ButtonFixture()
	c.Accessibility.Attributes = append(c.Accessibility.Attributes,
		csm.ARIAAttribute{Name: "aria-haspopup", Value: "menu"})
	r, err := variant.Compile(c)
	require.NoError(t, err)

	a, err := New().Generate(c, r, fixtureBinding(t, transform.KindFlat))
	require.NoError(t, err)

	// Attributes without an accessibilityState mapping become camelCase
	// aria props instead of being dropped
	assert.Contains(t, a.Source, `ariaHaspopup="menu"`)
}

func TestGenerateStateScopedPassThroughAria(t *testing.T) {
	c := csm.ButtonFixture()
	c.States = append(c.States, csm.State{Name: "loading", Styles: []string{"animate-pulse"}})
	c.Accessibility.Attributes = append(c.Accessibility.Attributes,
		csm.ARIAAttribute{Name: "aria-busy", Value: "true", State: "loading"})
	r, err := variant.Compile(c)
	require.NoError(t, err)

	a, err := New().Generate(c, r, fixtureBinding(t, transform.KindFlat))
	require.NoError(t, err)

	// State-scoped attributes outside the native vocabulary render only
	// while the state is active
	assert.Contains(t, a.Source, "ariaBusy={loading ? 'true' : undefined}")
}

func TestGenerateRejectsCascadingBinding(t *testing.T) {
	c := csm.ButtonFixture()
	r, err := variant.Compile(c)
	require.NoError(t, err)

	_, err = New().Generate(c, r, fixtureBinding(t, transform.KindCascading))
	require.Error(t, err)
	assert.True(t, errors.IsCapabilityGapError(err))
	assert.Contains(t, err.Error(), "cascading")
}

func TestGenerateUnmappableRole(t *testing.T) {
	c := csm.ButtonFixture()
	c.Accessibility.Role = "tooltip"
	r, err := variant.Compile(c)
	require.NoError(t, err)

	_, err = New().Generate(c, r, fixtureBinding(t, transform.KindFlat))
	require.Error(t, err)
	assert.True(t, errors.IsCapabilityGapError(err))
	assert.Contains(t, err.Error(), "tooltip")
}
