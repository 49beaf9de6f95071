// Package webc generates framework-free custom elements from component
// specifications.
//
// The target idiom is a plain ES class extending HTMLElement: variant
// selection through observed attributes, style application through classList,
// and content insertion through named <slot> outlets in light DOM.
package webc

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
const Version = "1.0.2"

// Generator emits custom element classes
type Generator struct{}

// New creates a custom element generator
func New() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator
func (g *Generator) Metadata() generate.Metadata {
	return generate.Metadata{
		Platform:         "webc",
		Version:          Version,
		EngineConstraint: ">= 1.0.0",
		Description:      "framework-free custom elements driven by classList",
		BindingKind:      transform.KindCascading,
	}
}

// Generate emits one .js custom element module for the component
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

	className := "Prism" + generate.PascalCase(c.ID)
	tagName := "prism-" + c.ID
	var sb strings.Builder

	fmt.Fprintf(&sb, "// AUTO-GENERATED by prism (webc generator %s) - DO NOT EDIT\n", Version)
	fmt.Fprintf(&sb, "// component: %s@%s\n", c.ID, c.Version)
	fmt.Fprintf(&sb, "// tokens: %s (theme: %s)\n\n", b.Revision(), b.Theme())

	g.writeTables(&sb, c)
	g.writeClass(&sb, c, className, tagName, minW, minH)

	key := artifact.Key{
		Component:     c.ID,
		Platform:      string(g.Metadata().Platform),
		CSMVersion:    c.Version,
		TokenRevision: b.Revision(),
	}
	return artifact.New(key, "webc", Version, className+".js", sb.String())
}

// writeTables emits the style tables in declaration order so the runtime
// resolver walks them exactly as the compiled resolver does.
func (g *Generator) writeTables(sb *strings.Builder, c *csm.CSM) {
	fmt.Fprintf(sb, "const BASE_STYLES = %s;\n\n", jsStringArray(c.Base))

	sb.WriteString("const AXIS_STYLES = [\n")
	for _, axis := range c.Variants {
		fmt.Fprintf(sb, "  { axis: '%s', fallback: '%s', values: { ", axis.Name, axis.Default)
		for i, v := range axis.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "'%s': %s", v.Name, jsStringArray(v.Styles))
		}
		sb.WriteString(" } },\n")
	}
	sb.WriteString("];\n\n")

	sb.WriteString("const COMPOUND_STYLES = [\n")
	for _, rule := range c.Compound {
		sb.WriteString("  { when: { ")
		axes := sortedWhenAxes(rule.When)
		for i, axis := range axes {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: '%s'", axis, rule.When[axis])
		}
		fmt.Fprintf(sb, " }, styles: %s },\n", jsStringArray(rule.Styles))
	}
	sb.WriteString("];\n\n")

	sb.WriteString("const STATE_STYLES = [\n")
	for _, s := range c.States {
		fmt.Fprintf(sb, "  { state: '%s', styles: %s },\n", s.Name, jsStringArray(s.Styles))
	}
	sb.WriteString("];\n\n")
}

func (g *Generator) writeClass(sb *strings.Builder, c *csm.CSM, className, tagName string, minW, minH int) {
	// Observed attributes cover axes, boolean states and every declared prop
	observed := []string{}
	for _, axis := range c.Variants {
		observed = append(observed, axis.Name)
	}
	for _, s := range c.States {
		observed = append(observed, s.Name)
	}
	for _, p := range c.Props {
		observed = append(observed, p.Name)
	}
	for _, attr := range c.Accessibility.Attributes {
		if attr.Value == "" {
			observed = append(observed, attr.Name)
		}
	}

	fmt.Fprintf(sb, "export class %s extends HTMLElement {\n", className)
	fmt.Fprintf(sb, "  static observedAttributes = %s;\n\n", jsStringArray(observed))

	sb.WriteString("  connectedCallback() {\n")
	if c.Accessibility.Role != "" {
		fmt.Fprintf(sb, "    this.setAttribute('role', '%s');\n", c.Accessibility.Role)
	}
	for _, attr := range c.Accessibility.Attributes {
		if attr.Value != "" && attr.State == "" {
			fmt.Fprintf(sb, "    this.setAttribute('%s', '%s');\n", attr.Name, attr.Value)
		}
	}
	if len(c.Accessibility.Keyboard) > 0 {
		sb.WriteString("    if (!this.hasAttribute('tabindex')) {\n")
		sb.WriteString("      this.setAttribute('tabindex', '0');\n")
		sb.WriteString("    }\n")
	}
	if minW > 0 {
		fmt.Fprintf(sb, "    this.style.minWidth = '%dpx';\n", minW)
	}
	if minH > 0 {
		fmt.Fprintf(sb, "    this.style.minHeight = '%dpx';\n", minH)
	}
	if len(c.Slots) > 0 {
		sb.WriteString("    this.#mountSlots();\n")
	}
	if len(c.Accessibility.Keyboard) > 0 {
		sb.WriteString("    this.addEventListener('keydown', this.#onKeydown);\n")
	}
	sb.WriteString("    this.#applyStyles();\n")
	sb.WriteString("  }\n\n")

	if len(c.Accessibility.Keyboard) > 0 {
		sb.WriteString("  disconnectedCallback() {\n")
		sb.WriteString("    this.removeEventListener('keydown', this.#onKeydown);\n")
		sb.WriteString("  }\n\n")
	}

	sb.WriteString("  attributeChangedCallback() {\n")
	sb.WriteString("    if (this.isConnected) {\n")
	sb.WriteString("      this.#applyStyles();\n")
	sb.WriteString("    }\n")
	sb.WriteString("  }\n\n")

	if len(c.Slots) > 0 {
		// Named slots project light-DOM children through a shadow root
		sb.WriteString("  #mountSlots() {\n")
		sb.WriteString("    if (this.shadowRoot) {\n")
		sb.WriteString("      return;\n")
		sb.WriteString("    }\n")
		sb.WriteString("    const root = this.attachShadow({ mode: 'open' });\n")
		for _, slot := range c.Slots {
			fmt.Fprintf(sb, "    root.appendChild(Object.assign(document.createElement('slot'), { name: '%s' }));\n", slot.Name)
		}
		sb.WriteString("    root.appendChild(document.createElement('slot'));\n")
		sb.WriteString("  }\n\n")
	}

	if len(c.Accessibility.Keyboard) > 0 {
		keys := make([]string, len(c.Accessibility.Keyboard))
		for i, k := range c.Accessibility.Keyboard {
			keys[i] = "'" + normalizeKey(k) + "'"
		}
		sb.WriteString("  #onKeydown = (event) => {\n")
		fmt.Fprintf(sb, "    if (![%s].includes(event.key)) {\n", strings.Join(keys, ", "))
		sb.WriteString("      return;\n")
		sb.WriteString("    }\n")
		if hasState(c, "disabled") {
			sb.WriteString("    if (this.hasAttribute('disabled')) {\n")
			sb.WriteString("      return;\n")
			sb.WriteString("    }\n")
		}
		sb.WriteString("    event.preventDefault();\n")
		sb.WriteString("    this.dispatchEvent(new CustomEvent('prism-activate', { bubbles: true }));\n")
		sb.WriteString("  };\n\n")
	}

	sb.WriteString("  #applyStyles() {\n")
	sb.WriteString("    const classes = [...BASE_STYLES];\n")
	sb.WriteString("    const selection = {};\n")
	sb.WriteString("    for (const axis of AXIS_STYLES) {\n")
	sb.WriteString("      const raw = this.getAttribute(axis.axis);\n")
	sb.WriteString("      selection[axis.axis] = raw !== null && axis.values[raw] ? raw : axis.fallback;\n")
	sb.WriteString("      classes.push(...axis.values[selection[axis.axis]]);\n")
	sb.WriteString("    }\n")
	sb.WriteString("    for (const rule of COMPOUND_STYLES) {\n")
	sb.WriteString("      if (Object.entries(rule.when).every(([axis, value]) => selection[axis] === value)) {\n")
	sb.WriteString("        classes.push(...rule.styles);\n")
	sb.WriteString("      }\n")
	sb.WriteString("    }\n")
	sb.WriteString("    for (const rule of STATE_STYLES) {\n")
	sb.WriteString("      if (this.hasAttribute(rule.state)) {\n")
	sb.WriteString("        classes.push(...rule.styles);\n")
	sb.WriteString("      }\n")
	sb.WriteString("    }\n")
	sb.WriteString("    this.className = classes.join(' ');\n")
	g.writeStateAria(sb, c)
	sb.WriteString("  }\n")
	sb.WriteString("}\n\n")

	fmt.Fprintf(sb, "if (!customElements.get('%s')) {\n", tagName)
	fmt.Fprintf(sb, "  customElements.define('%s', %s);\n", tagName, className)
	sb.WriteString("}\n")
}

// writeStateAria keeps state-scoped contract attributes in sync with their
// driving state attribute on every style pass
func (g *Generator) writeStateAria(sb *strings.Builder, c *csm.CSM) {
	for _, attr := range c.Accessibility.Attributes {
		if attr.State == "" {
			continue
		}
		value := attr.Value
		if value == "" {
			value = "true"
		}
		fmt.Fprintf(sb, "    if (this.hasAttribute('%s')) {\n", attr.State)
		fmt.Fprintf(sb, "      this.setAttribute('%s', '%s');\n", attr.Name, value)
		sb.WriteString("    } else {\n")
		fmt.Fprintf(sb, "      this.removeAttribute('%s');\n", attr.Name)
		sb.WriteString("    }\n")
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

// normalizeKey maps contract key names to KeyboardEvent.key values
func normalizeKey(k string) string {
	if strings.EqualFold(k, "space") {
		return " "
	}
	return k
}

func jsStringArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func sortedWhenAxes(when map[string]string) []string {
	axes := make([]string, 0, len(when))
	for axis := range when {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	return axes
}
