// Package react generates React function components from component
// specifications.
//
// The target idiom is a typed function component: props with defaults via
// destructuring, variant resolution as a pure exported helper, slots as
// ReactNode props, and className concatenation as the style application
// mechanism.
package react

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prismui/prism/artifact"
	"github.com/prismui/prism/csm"
	"github.com/prismui/prism/generate"
	"github.com/prismui/prism/tokens/transform"
	"github.com/prismui/prism/variant"
)

// Version is the generator version embedded in artifact manifests
const Version = "1.3.0"

// Generator emits React function components
type Generator struct{}

// New creates a React generator
func New() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator
func (g *Generator) Metadata() generate.Metadata {
	return generate.Metadata{
		Platform:         "react",
		Version:          Version,
		EngineConstraint: ">= 1.0.0",
		Description:      "React function components with typed props and className styling",
		BindingKind:      transform.KindCascading,
	}
}

// Generate emits one .tsx source file for the component
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

	minW, minH, err := generate.MinTargetDip(c.Accessibility)
	if err != nil {
		return nil, err
	}

	name := generate.PascalCase(c.ID)
	var sb strings.Builder

	fmt.Fprintf(&sb, "// AUTO-GENERATED by prism (react generator %s) - DO NOT EDIT\n", Version)
	fmt.Fprintf(&sb, "// component: %s@%s\n", c.ID, c.Version)
	fmt.Fprintf(&sb, "// tokens: %s (theme: %s)\n\n", b.Revision(), b.Theme())
	sb.WriteString("import * as React from 'react';\n\n")

	g.writeResolver(&sb, c, name)
	g.writeProps(&sb, c, name)
	g.writeComponent(&sb, c, name, minW, minH)

	key := artifact.Key{
		Component:     c.ID,
		Platform:      string(g.Metadata().Platform),
		CSMVersion:    c.Version,
		TokenRevision: b.Revision(),
	}
	return artifact.New(key, "react", Version, name+".tsx", sb.String())
}

// writeResolver emits the style tables and the resolution function. The
// algorithm mirrors the compiled resolver exactly: base, axes in declaration
// order, compound rules in declaration order, states last.
func (g *Generator) writeResolver(sb *strings.Builder, c *csm.CSM, name string) {
	fmt.Fprintf(sb, "const BASE_STYLES: readonly string[] = %s;\n\n", tsStringArray(c.Base))

	if len(c.Variants) > 0 {
		fmt.Fprintf(sb, "export type %sSelection = {\n", name)
		for _, axis := range c.Variants {
			fmt.Fprintf(sb, "  %s: %s;\n", axis.Name, tsUnion(axis))
		}
		sb.WriteString("};\n\n")

		sb.WriteString("const AXIS_STYLES: ReadonlyArray<{ axis: keyof " + name + "Selection; fallback: string; values: Record<string, readonly string[]> }> = [\n")
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
	}

	if len(c.Compound) > 0 {
		sb.WriteString("const COMPOUND_STYLES: ReadonlyArray<{ when: Partial<" + name + "Selection>; styles: readonly string[] }> = [\n")
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
	}

	if len(c.States) > 0 {
		fmt.Fprintf(sb, "export type %sStates = {\n", name)
		for _, s := range c.States {
			fmt.Fprintf(sb, "  %s: boolean;\n", s.Name)
		}
		sb.WriteString("};\n\n")

		fmt.Fprintf(sb, "const STATE_STYLES: ReadonlyArray<{ state: keyof %sStates; styles: readonly string[] }> = [\n", name)
		for _, s := range c.States {
			fmt.Fprintf(sb, "  { state: '%s', styles: %s },\n", s.Name, tsStringArray(s.Styles))
		}
		sb.WriteString("];\n\n")
	}

	fmt.Fprintf(sb, "export function resolve%sStyles(", name)
	g.writeResolveSignature(sb, c, name)
	sb.WriteString("): string[] {\n")
	sb.WriteString("  const out: string[] = [...BASE_STYLES];\n")
	if len(c.Variants) > 0 {
		// Out-of-enum values fall back to the axis default, matching the
		// compiled resolver's behavior on every other target
		sb.WriteString("  for (const axis of AXIS_STYLES) {\n")
		sb.WriteString("    const value = axis.values[selection[axis.axis]] ? selection[axis.axis] : axis.fallback;\n")
		sb.WriteString("    out.push(...axis.values[value]);\n")
		sb.WriteString("  }\n")
	}
	if len(c.Compound) > 0 {
		sb.WriteString("  for (const rule of COMPOUND_STYLES) {\n")
		fmt.Fprintf(sb, "    if (Object.entries(rule.when).every(([axis, value]) => selection[axis as keyof %sSelection] === value)) {\n", name)
		sb.WriteString("      out.push(...rule.styles);\n")
		sb.WriteString("    }\n")
		sb.WriteString("  }\n")
	}
	if len(c.States) > 0 {
		sb.WriteString("  for (const rule of STATE_STYLES) {\n")
		sb.WriteString("    if (states[rule.state]) {\n")
		sb.WriteString("      out.push(...rule.styles);\n")
		sb.WriteString("    }\n")
		sb.WriteString("  }\n")
	}
	sb.WriteString("  return out;\n")
	sb.WriteString("}\n\n")
}

func (g *Generator) writeResolveSignature(sb *strings.Builder, c *csm.CSM, name string) {
	parts := []string{}
	if len(c.Variants) > 0 {
		parts = append(parts, "selection: "+name+"Selection")
	}
	if len(c.States) > 0 {
		parts = append(parts, "states: "+name+"States")
	}
	sb.WriteString(strings.Join(parts, ", "))
}

// writeProps emits the public props interface: every declared prop with its
// type, variant axes as optional unions, states as optional booleans, slots
// as ReactNode props, and a prop per valueless contract ARIA attribute.
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
		fmt.Fprintf(sb, "  %s?: React.ReactNode;\n", slot.Name)
	}
	sb.WriteString("}\n\n")
}

func (g *Generator) writeComponent(sb *strings.Builder, c *csm.CSM, name string, minW, minH int) {
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
		fmt.Fprintf(sb, "  %s,\n", slot.Name)
	}
	fmt.Fprintf(sb, "}: %sProps): React.ReactElement {\n", name)

	fmt.Fprintf(sb, "  const className = resolve%sStyles(", name)
	args := []string{}
	if len(c.Variants) > 0 {
		sel := make([]string, len(c.Variants))
		for i, axis := range c.Variants {
			sel[i] = axis.Name
		}
		args = append(args, "{ "+strings.Join(sel, ", ")+" }")
	}
	if len(c.States) > 0 {
		st := make([]string, len(c.States))
		for i, s := range c.States {
			st[i] = s.Name
		}
		args = append(args, "{ "+strings.Join(st, ", ")+" }")
	}
	sb.WriteString(strings.Join(args, ", "))
	sb.WriteString(").join(' ');\n")

	fmt.Fprintf(sb, "  return (\n    <%s\n", c.Element)
	if c.Element == "button" {
		sb.WriteString("      type=\"button\"\n")
	}
	if c.Accessibility.Role != "" {
		fmt.Fprintf(sb, "      role=\"%s\"\n", c.Accessibility.Role)
	}
	for _, attr := range c.Accessibility.Attributes {
		g.writeAriaAttribute(sb, attr)
	}
	if hasState(c, "disabled") && generate.NativelyFocusable(c.Element) {
		sb.WriteString("      disabled={disabled}\n")
	}
	if len(c.Accessibility.Keyboard) > 0 && !generate.NativelyFocusable(c.Element) {
		sb.WriteString("      tabIndex={0}\n")
	}
	sb.WriteString("      className={className}\n")
	if minW > 0 || minH > 0 {
		dims := []string{}
		if minW > 0 {
			dims = append(dims, fmt.Sprintf("minWidth: '%dpx'", minW))
		}
		if minH > 0 {
			dims = append(dims, fmt.Sprintf("minHeight: '%dpx'", minH))
		}
		fmt.Fprintf(sb, "      style={{ %s }}\n", strings.Join(dims, ", "))
	}
	sb.WriteString("    >\n")
	for _, slot := range c.Slots {
		fmt.Fprintf(sb, "      {%s}\n", slot.Name)
	}
	if text := textProp(c); text != "" {
		fmt.Fprintf(sb, "      {%s}\n", text)
	}
	fmt.Fprintf(sb, "    </%s>\n  );\n}\n", c.Element)
}

// writeAriaAttribute emits one contract ARIA attribute. Unconditional
// attributes are always present; state-scoped ones render only while the
// state is active, exactly as the contract allows.
func (g *Generator) writeAriaAttribute(sb *strings.Builder, attr csm.ARIAAttribute) {
	switch {
	case attr.Value != "" && attr.State != "":
		fmt.Fprintf(sb, "      %s={%s ? '%s' : undefined}\n", attr.Name, attr.State, attr.Value)
	case attr.Value != "":
		fmt.Fprintf(sb, "      %s=\"%s\"\n", attr.Name, attr.Value)
	case attr.State != "":
		fmt.Fprintf(sb, "      %s={%s ? %s : undefined}\n", attr.Name, attr.State, generate.AriaPropName(attr.Name))
	default:
		fmt.Fprintf(sb, "      %s={%s}\n", attr.Name, generate.AriaPropName(attr.Name))
	}
}

func hasState(c *csm.CSM, name string) bool {
	for _, s := range c.States {
		if s.Name == name {
			return true
		}
	}
	return false
}

// textProp picks the string prop rendered as element text content, if any
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

// sortedWhenAxes orders a compound rule's constraint keys for emission.
// Matching is conjunctive, so constraint order carries no meaning; sorting
// keeps output byte-stable.
func sortedWhenAxes(when map[string]string) []string {
	axes := make([]string, 0, len(when))
	for axis := range when {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	return axes
}
