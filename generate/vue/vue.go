// Package vue generates Vue single-file components from component
// specifications.
//
// The target idiom is a <script setup> SFC: typed props through
// withDefaults/defineProps, variant resolution as a computed class binding,
// and named <slot> outlets for content insertion.
package vue

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
const Version = "1.1.0"

// Generator emits Vue single-file components
type Generator struct{}

// New creates a Vue generator
func New() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator
func (g *Generator) Metadata() generate.Metadata {
	return generate.Metadata{
		Platform:         "vue",
		Version:          Version,
		EngineConstraint: ">= 1.0.0",
		Description:      "Vue 3 script-setup SFCs with computed class bindings",
		BindingKind:      transform.KindCascading,
	}
}

// Generate emits one .vue source file for the component
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

	name := "Prism" + generate.PascalCase(c.ID)
	var sb strings.Builder

	fmt.Fprintf(&sb, "<!-- AUTO-GENERATED by prism (vue generator %s) - DO NOT EDIT -->\n", Version)
	fmt.Fprintf(&sb, "<!-- component: %s@%s -->\n", c.ID, c.Version)
	fmt.Fprintf(&sb, "<!-- tokens: %s (theme: %s) -->\n", b.Revision(), b.Theme())

	g.writeTemplate(&sb, c, minW, minH)
	g.writeScript(&sb, c)

	key := artifact.Key{
		Component:     c.ID,
		Platform:      string(g.Metadata().Platform),
		CSMVersion:    c.Version,
		TokenRevision: b.Revision(),
	}
	return artifact.New(key, "vue", Version, name+".vue", sb.String())
}

func (g *Generator) writeTemplate(sb *strings.Builder, c *csm.CSM, minW, minH int) {
	sb.WriteString("<template>\n")
	fmt.Fprintf(sb, "  <%s\n", c.Element)
	if c.Element == "button" {
		sb.WriteString("    type=\"button\"\n")
	}
	if c.Accessibility.Role != "" {
		fmt.Fprintf(sb, "    role=\"%s\"\n", c.Accessibility.Role)
	}
	for _, attr := range c.Accessibility.Attributes {
		switch {
		case attr.Value != "" && attr.State != "":
			fmt.Fprintf(sb, "    :%s=\"%s ? '%s' : undefined\"\n", attr.Name, attr.State, attr.Value)
		case attr.Value != "":
			fmt.Fprintf(sb, "    %s=\"%s\"\n", attr.Name, attr.Value)
		case attr.State != "":
			fmt.Fprintf(sb, "    :%s=\"%s ? %s : undefined\"\n", attr.Name, attr.State, generate.AriaPropName(attr.Name))
		default:
			fmt.Fprintf(sb, "    :%s=\"%s\"\n", attr.Name, generate.AriaPropName(attr.Name))
		}
	}
	if hasState(c, "disabled") && generate.NativelyFocusable(c.Element) {
		sb.WriteString("    :disabled=\"disabled\"\n")
	}
	if len(c.Accessibility.Keyboard) > 0 && !generate.NativelyFocusable(c.Element) {
		sb.WriteString("    tabindex=\"0\"\n")
	}
	sb.WriteString("    :class=\"resolvedClasses\"\n")
	if minW > 0 || minH > 0 {
		dims := []string{}
		if minW > 0 {
			dims = append(dims, fmt.Sprintf("min-width: %dpx", minW))
		}
		if minH > 0 {
			dims = append(dims, fmt.Sprintf("min-height: %dpx", minH))
		}
		fmt.Fprintf(sb, "    style=\"%s\"\n", strings.Join(dims, "; "))
	}
	sb.WriteString("  >\n")
	for _, slot := range c.Slots {
		fmt.Fprintf(sb, "    <slot name=\"%s\"></slot>\n", slot.Name)
	}
	if text := textProp(c); text != "" {
		fmt.Fprintf(sb, "    {{ %s }}\n", text)
	}
	fmt.Fprintf(sb, "  </%s>\n", c.Element)
	sb.WriteString("</template>\n\n")
}

func (g *Generator) writeScript(sb *strings.Builder, c *csm.CSM) {
	sb.WriteString("<script setup lang=\"ts\">\n")
	sb.WriteString("import { computed } from 'vue';\n\n")

	// Props interface: declared props, axes, states, valueless ARIA bindings
	sb.WriteString("interface Props {\n")
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
	sb.WriteString("}\n\n")

	sb.WriteString("const props = withDefaults(defineProps<Props>(), {\n")
	for _, p := range c.Props {
		if p.Default != "" {
			fmt.Fprintf(sb, "  %s: %s,\n", p.Name, tsDefault(p))
		}
	}
	for _, axis := range c.Variants {
		fmt.Fprintf(sb, "  %s: '%s',\n", axis.Name, axis.Default)
	}
	for _, s := range c.States {
		fmt.Fprintf(sb, "  %s: false,\n", s.Name)
	}
	sb.WriteString("});\n\n")

	g.writeResolver(sb, c)
	sb.WriteString("</script>\n")
}

// writeResolver emits the style tables and the computed class binding.
// Ordering mirrors the compiled resolver: base, axes in declaration order,
// compound rules in declaration order, states last.
func (g *Generator) writeResolver(sb *strings.Builder, c *csm.CSM) {
	fmt.Fprintf(sb, "const BASE_STYLES: readonly string[] = %s;\n\n", tsStringArray(c.Base))

	if len(c.Variants) > 0 {
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
	}

	if len(c.Compound) > 0 {
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
	}

	if len(c.States) > 0 {
		sb.WriteString("const STATE_STYLES: ReadonlyArray<{ state: string; styles: readonly string[] }> = [\n")
		for _, s := range c.States {
			fmt.Fprintf(sb, "  { state: '%s', styles: %s },\n", s.Name, tsStringArray(s.Styles))
		}
		sb.WriteString("];\n\n")
	}

	sb.WriteString("const resolvedClasses = computed(() => {\n")
	sb.WriteString("  const out: string[] = [...BASE_STYLES];\n")
	if len(c.Variants) > 0 {
		sb.WriteString("  const selection: Record<string, string> = { ")
		for i, axis := range c.Variants {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: props.%s", axis.Name, axis.Name)
		}
		sb.WriteString(" };\n")
		sb.WriteString("  for (const axis of AXIS_STYLES) {\n")
		sb.WriteString("    const value = axis.values[selection[axis.axis]] ? selection[axis.axis] : axis.fallback;\n")
		sb.WriteString("    out.push(...axis.values[value]);\n")
		sb.WriteString("  }\n")
	}
	if len(c.Compound) > 0 {
		sb.WriteString("  for (const rule of COMPOUND_STYLES) {\n")
		sb.WriteString("    if (Object.entries(rule.when).every(([axis, value]) => selection[axis] === value)) {\n")
		sb.WriteString("      out.push(...rule.styles);\n")
		sb.WriteString("    }\n")
		sb.WriteString("  }\n")
	}
	if len(c.States) > 0 {
		sb.WriteString("  const states: Record<string, boolean> = { ")
		for i, s := range c.States {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: props.%s", s.Name, s.Name)
		}
		sb.WriteString(" };\n")
		sb.WriteString("  for (const rule of STATE_STYLES) {\n")
		sb.WriteString("    if (states[rule.state]) {\n")
		sb.WriteString("      out.push(...rule.styles);\n")
		sb.WriteString("    }\n")
		sb.WriteString("  }\n")
	}
	sb.WriteString("  return out;\n")
	sb.WriteString("});\n")
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
