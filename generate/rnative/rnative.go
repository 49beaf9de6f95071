// Package rnative generates React Native components from component
// specifications.
//
// Native views have no cascading stylesheet, so this target consumes the
// flat token binding and applies variants through StyleSheet entries looked
// up from a style registry module. Targets that cannot express a contract
// requirement (an unmappable role, a cascading binding) report a capability
// gap rather than emitting a component that silently drops the guarantee.
package rnative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prismui/prism/artifact"
	"github.com/prismui/prism/csm"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/generate"
	"github.com/prismui/prism/tokens/transform"
	"github.com/prismui/prism/variant"
)

// Version is the generator version embedded in artifact manifests
const Version = "0.9.0"

// accessibilityRoles maps contract roles onto the React Native
// accessibilityRole vocabulary. A role outside this table is a capability
// gap for the target.
var accessibilityRoles = map[string]string{
	"button":      "button",
	"link":        "link",
	"checkbox":    "checkbox",
	"radio":       "radio",
	"switch":      "switch",
	"tab":         "tab",
	"heading":     "header",
	"img":         "image",
	"searchbox":   "search",
	"slider":      "adjustable",
	"progressbar": "progressbar",
	"alert":       "alert",
	"menu":        "menu",
	"menuitem":    "menuitem",
	"toolbar":     "toolbar",
}

// Generator emits React Native components
type Generator struct{}

// New creates a React Native generator
func New() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator
func (g *Generator) Metadata() generate.Metadata {
	return generate.Metadata{
		Platform:         "rnative",
		Version:          Version,
		EngineConstraint: ">= 1.0.0",
		Description:      "React Native components styled through StyleSheet registries",
		BindingKind:      transform.KindFlat,
	}
}

// Generate emits one .tsx React Native module for the component
func (g *Generator) Generate(c *csm.CSM, r *variant.Resolver, b *transform.Binding) (*artifact.Artifact, error) {
	if err := generate.CheckBindingKind(g.Metadata(), b); err != nil {
		return nil, err
	}
	if err := generate.CheckTokenRefs(c, b); err != nil {
		return nil, err
	}
	if err := generate.CheckResolverParity(c, r); err != nil {
		return nil, err
	}

	role := ""
	if c.Accessibility.Role != "" {
		mapped, ok := accessibilityRoles[c.Accessibility.Role]
		if !ok {
			return nil, errors.NewCapabilityGapError("rnative",
				"accessibility role "+c.Accessibility.Role+" has no native equivalent")
		}
		role = mapped
	}

	minW, minH, err := generate.MinTargetDip(c.Accessibility)
	if err != nil {
		return nil, err
	}

	name := "Prism" + generate.PascalCase(c.ID)
	var sb strings.Builder

	fmt.Fprintf(&sb, "// AUTO-GENERATED by prism (rnative generator %s) - DO NOT EDIT\n", Version)
	fmt.Fprintf(&sb, "// component: %s@%s\n", c.ID, c.Version)
	fmt.Fprintf(&sb, "// tokens: %s (theme: %s)\n\n", b.Revision(), b.Theme())

	sb.WriteString("import React from 'react';\n")
	fmt.Fprintf(&sb, "import { %s, StyleSheet, Text, ViewStyle } from 'react-native';\n", containerComponent(c))
	sb.WriteString("import { styleRegistry } from './prismStyles';\n")
	sb.WriteString("import { tokens } from './prismTokens';\n\n")

	g.writeTokenRefs(&sb, c, b)
	g.writeTables(&sb, c)
	g.writeResolver(&sb, c, name)
	g.writeProps(&sb, c, name)
	g.writeComponent(&sb, c, name, role, minW, minH)

	key := artifact.Key{
		Component:     c.ID,
		Platform:      string(g.Metadata().Platform),
		CSMVersion:    c.Version,
		TokenRevision: b.Revision(),
	}
	return artifact.New(key, "rnative", Version, name+".tsx", sb.String())
}

// containerComponent picks the native view for the semantic element.
// Interactive elements become Pressable so activation and accessibility
// events arrive without extra wiring.
func containerComponent(c *csm.CSM) string {
	switch c.Element {
	case "button", "a":
		return "Pressable"
	default:
		return "View"
	}
}

// writeTokenRefs pins the bound token values the component depends on. The
// lookups go through the flat binding's access expression so a token module
// regeneration is picked up without touching this file.
func (g *Generator) writeTokenRefs(sb *strings.Builder, c *csm.CSM, b *transform.Binding) {
	if len(c.TokenRefs) == 0 {
		return
	}
	sb.WriteString("export const TOKEN_REFS = {\n")
	for _, name := range c.TokenRefs {
		expr, _ := b.Resolve(name)
		fmt.Fprintf(sb, "  '%s': %s,\n", name, expr)
	}
	sb.WriteString("} as const;\n\n")
}

func (g *Generator) writeTables(sb *strings.Builder, c *csm.CSM) {
	fmt.Fprintf(sb, "const BASE_STYLES: readonly string[] = %s;\n\n", tsStringArray(c.Base))

	sb.WriteString("const AXIS_STYLES: ReadonlyArray<{ axis: string; fallback: string; values: Record<string, readonly string[]> }> = [\n")
	for _, axis := range c.Variants {
		fmt.Fprintf(sb, "  { axis: '%s', fallback: '%s', values: { ", axis.Name, axis.Default)
		for i, v := range axis.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "'%s': %s", v.Name, tsStringArray(v.Styles))
		}
		sb.WriteString(" } },\n")
	}
	sb.WriteString("];\n\n")

	sb.WriteString("const COMPOUND_STYLES: ReadonlyArray<{ when: Record<string, string>; styles: readonly string[] }> = [\n")
	for _, rule := range c.Compound {
		sb.WriteString("  { when: { ")
		axes := sortedWhenAxes(rule.When)
		for i, axis := range axes {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: '%s'", axis, rule.When[axis])
		}
		fmt.Fprintf(sb, " }, styles: %s },\n", tsStringArray(rule.Styles))
	}
	sb.WriteString("];\n\n")

	sb.WriteString("const STATE_STYLES: ReadonlyArray<{ state: string; styles: readonly string[] }> = [\n")
	for _, s := range c.States {
		fmt.Fprintf(sb, "  { state: '%s', styles: %s },\n", s.Name, tsStringArray(s.Styles))
	}
	sb.WriteString("];\n\n")
}

// writeResolver emits the style resolution walk. Identifier order is the
// merge order, so later registry entries override earlier ones when the
// arrays are flattened into a single style prop.
func (g *Generator) writeResolver(sb *strings.Builder, c *csm.CSM, name string) {
	fmt.Fprintf(sb, "function resolve%sStyles(selection: Record<string, string>, states: Record<string, boolean>): ViewStyle[] {\n", name)
	sb.WriteString("  const identifiers: string[] = [...BASE_STYLES];\n")
	sb.WriteString("  for (const axis of AXIS_STYLES) {\n")
	sb.WriteString("    const value = axis.values[selection[axis.axis]] ? selection[axis.axis] : axis.fallback;\n")
	sb.WriteString("    identifiers.push(...axis.values[value]);\n")
	sb.WriteString("  }\n")
	sb.WriteString("  for (const rule of COMPOUND_STYLES) {\n")
	sb.WriteString("    if (Object.entries(rule.when).every(([axis, value]) => selection[axis] === value)) {\n")
	sb.WriteString("      identifiers.push(...rule.styles);\n")
	sb.WriteString("    }\n")
	sb.WriteString("  }\n")
	sb.WriteString("  for (const rule of STATE_STYLES) {\n")
	sb.WriteString("    if (states[rule.state]) {\n")
	sb.WriteString("      identifiers.push(...rule.styles);\n")
	sb.WriteString("    }\n")
	sb.WriteString("  }\n")
	sb.WriteString("  return identifiers.map((id) => styleRegistry[id]);\n")
	sb.WriteString("}\n\n")
}

func (g *Generator) writeProps(sb *strings.Builder, c *csm.CSM, name string) {
	fmt.Fprintf(sb, "export interface %sProps {\n", name)
	for _, p := range c.Props {
		optional := "?"
		if p.Required {
			optional = ""
		}
		fmt.Fprintf(sb, "  %s%s: %s;\n", p.Name, optional, tsPropType(p.Type))
	}
	for _, axis := range c.Variants {
		fmt.Fprintf(sb, "  %s?: %s;\n", axis.Name, tsUnion(axis))
	}
	for _, s := range c.States {
		fmt.Fprintf(sb, "  %s?: boolean;\n", s.Name)
	}
	for _, attr := range c.Accessibility.Attributes {
		if attr.Value == "" {
			fmt.Fprintf(sb, "  %s?: string;\n", generate.AriaPropName(attr.Name))
		}
	}
	for _, slot := range c.Slots {
		fmt.Fprintf(sb, "  %s?: React.ReactNode;\n", generate.CamelCase(slot.Name))
	}
	if isPressable(c) {
		sb.WriteString("  onPress?: () => void;\n")
	}
	sb.WriteString("}\n\n")
}

func (g *Generator) writeComponent(sb *strings.Builder, c *csm.CSM, name, role string, minW, minH int) {
	container := containerComponent(c)

	fmt.Fprintf(sb, "export function %s({\n", name)
	for _, p := range c.Props {
		if p.Default != "" {
			fmt.Fprintf(sb, "  %s = %s,\n", p.Name, tsDefault(p))
		} else {
			fmt.Fprintf(sb, "  %s,\n", p.Name)
		}
	}
	for _, axis := range c.Variants {
		fmt.Fprintf(sb, "  %s = '%s',\n", axis.Name, axis.Default)
	}
	for _, s := range c.States {
		fmt.Fprintf(sb, "  %s = false,\n", s.Name)
	}
	for _, attr := range c.Accessibility.Attributes {
		if attr.Value == "" {
			fmt.Fprintf(sb, "  %s,\n", generate.AriaPropName(attr.Name))
		}
	}
	for _, slot := range c.Slots {
		fmt.Fprintf(sb, "  %s,\n", generate.CamelCase(slot.Name))
	}
	if isPressable(c) {
		sb.WriteString("  onPress,\n")
	}
	fmt.Fprintf(sb, "}: %sProps) {\n", name)

	// Selection and state records feed the resolver in declaration order
	sb.WriteString("  const styles = resolve" + name + "Styles(\n")
	sb.WriteString("    { ")
	for i, axis := range c.Variants {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(axis.Name)
	}
	sb.WriteString(" },\n")
	sb.WriteString("    { ")
	for i, s := range c.States {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.Name)
	}
	sb.WriteString(" },\n")
	sb.WriteString("  );\n")

	if minW > 0 || minH > 0 {
		sb.WriteString("  styles.push({ ")
		wrote := false
		if minW > 0 {
			fmt.Fprintf(sb, "minWidth: %d", minW)
			wrote = true
		}
		if minH > 0 {
			if wrote {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "minHeight: %d", minH)
		}
		sb.WriteString(" });\n")
	}

	sb.WriteString("  return (\n")
	fmt.Fprintf(sb, "    <%s\n", container)
	if role != "" {
		fmt.Fprintf(sb, "      accessibilityRole=\"%s\"\n", role)
	}
	g.writeAccessibilityProps(sb, c)
	if isPressable(c) {
		if hasState(c, "disabled") {
			sb.WriteString("      disabled={disabled}\n")
			sb.WriteString("      onPress={disabled ? undefined : onPress}\n")
		} else {
			sb.WriteString("      onPress={onPress}\n")
		}
	}
	sb.WriteString("      style={styles}\n")
	sb.WriteString("    >\n")
	for _, slot := range c.Slots {
		fmt.Fprintf(sb, "      {%s}\n", generate.CamelCase(slot.Name))
	}
	if text := textProp(c); text != "" {
		fmt.Fprintf(sb, "      <Text>{%s}</Text>\n", text)
	}
	fmt.Fprintf(sb, "    </%s>\n", container)
	sb.WriteString("  );\n")
	sb.WriteString("}\n")
}

// accessibilityStateKeys maps ARIA state attributes onto accessibilityState
// entry names
var accessibilityStateKeys = map[string]string{
	"aria-disabled": "disabled",
	"aria-selected": "selected",
	"aria-checked":  "checked",
	"aria-expanded": "expanded",
}

// writeAccessibilityProps translates contract attributes into the
// accessibilityLabel/accessibilityState vocabulary. Attributes outside that
// vocabulary pass through as camelCase aria props, which the new architecture
// forwards to the native layer; state-scoped ones render only while the state
// is active, so no contract attribute is ever dropped.
func (g *Generator) writeAccessibilityProps(sb *strings.Builder, c *csm.CSM) {
	stateEntries := []string{}
	for _, attr := range c.Accessibility.Attributes {
		if attr.Name == "aria-label" {
			fmt.Fprintf(sb, "      accessibilityLabel={%s}\n", generate.AriaPropName(attr.Name))
			continue
		}
		if key, ok := accessibilityStateKeys[attr.Name]; ok {
			if attr.State != "" {
				stateEntries = append(stateEntries, key+": "+attr.State)
			} else if attr.Value != "" {
				stateEntries = append(stateEntries, key+": "+attr.Value)
			}
			continue
		}
		prop := generate.AriaPropName(attr.Name)
		switch {
		case attr.Value != "" && attr.State != "":
			fmt.Fprintf(sb, "      %s={%s ? '%s' : undefined}\n", prop, attr.State, attr.Value)
		case attr.Value != "":
			fmt.Fprintf(sb, "      %s=\"%s\"\n", prop, attr.Value)
		case attr.State != "":
			fmt.Fprintf(sb, "      %s={%s ? %s : undefined}\n", prop, attr.State, prop)
		default:
			fmt.Fprintf(sb, "      %s={%s}\n", prop, prop)
		}
	}
	if len(stateEntries) > 0 {
		fmt.Fprintf(sb, "      accessibilityState={{ %s }}\n", strings.Join(stateEntries, ", "))
	}
}

func isPressable(c *csm.CSM) bool {
	return containerComponent(c) == "Pressable"
}

func hasState(c *csm.CSM, name string) bool {
	for _, s := range c.States {
		if s.Name == name {
			return true
		}
	}
	return false
}

func textProp(c *csm.CSM) string {
	for _, p := range c.Props {
		if p.Type == csm.PropString && (p.Name == "label" || p.Name == "text") {
			return p.Name
		}
	}
	return ""
}

func tsStringArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func tsUnion(axis csm.Axis) string {
	parts := make([]string, len(axis.Values))
	for i, v := range axis.Values {
		parts[i] = "'" + v.Name + "'"
	}
	return strings.Join(parts, " | ")
}

func tsPropType(t csm.PropType) string {
	switch t {
	case csm.PropNumber:
		return "number"
	case csm.PropBoolean:
		return "boolean"
	default:
		return "string"
	}
}

func tsDefault(p csm.Prop) string {
	switch p.Type {
	case csm.PropNumber, csm.PropBoolean:
		return p.Default
	default:
		return "'" + p.Default + "'"
	}
}

func sortedWhenAxes(when map[string]string) []string {
	axes := make([]string, 0, len(when))
	for axis := range when {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	return axes
}
