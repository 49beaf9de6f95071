// Package transform converts a token set into a platform's native styling
// representation.
//
// Web-style targets get CSS custom-property declarations plus a lookup map
// from semantic name to property name. Targets without a cascading-styles
// concept get the same token set as a flat map keyed identically, so a
// component generator treats both forms through one lookup surface. SCSS
// output serves build-time pipelines that consume a map instead of runtime
// custom properties.
//
// Transformation is pure: identical (revision, kind, theme) inputs always
// produce the identical binding, which is what Cache relies on.
package transform

import (
	"strconv"
	"strings"

	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/tokens"
)

// Kind selects the native representation a binding carries
type Kind string

const (
	// KindCascading emits CSS custom properties and var() references
	KindCascading Kind = "cascading"
	// KindFlat emits a flat value map for targets without a cascade
	KindFlat Kind = "flat"
	// KindSCSS emits an SCSS map for preprocessor pipelines
	KindSCSS Kind = "scss"
)

// FlatValue is one entry of a flat binding. Lengths are carried as whole
// device-independent pixels, durations as milliseconds; everything else
// stays a string.
type FlatValue struct {
	String   string
	Number   float64
	IsNumber bool
}

// Binding is the per-(kind, theme) native form of one token revision.
// It is immutable after Transform returns.
type Binding struct {
	kind     Kind
	theme    tokens.Theme
	revision string

	names    []string
	raw      map[string]string
	refs     map[string]string
	props    map[string]string
	flat     map[string]FlatValue
	contrast map[string]*tokens.ContrastHint
	source   string
}

// Transform converts a token set into a binding of the requested kind for one
// theme. Purely derived from its inputs; no side effects.
func Transform(set *tokens.Set, kind Kind, theme tokens.Theme) (*Binding, error) {
	themeDeclared := false
	for _, th := range set.Themes() {
		if th == theme {
			themeDeclared = true
			break
		}
	}
	if !themeDeclared {
		return nil, errors.Wrapf(errors.ErrInvalidSource, "revision %q does not declare theme %q", set.Revision(), theme)
	}

	b := &Binding{
		kind:     kind,
		theme:    theme,
		revision: set.Revision(),
		names:    set.Names(),
		raw:      make(map[string]string),
		refs:     make(map[string]string),
		props:    make(map[string]string),
		flat:     make(map[string]FlatValue),
		contrast: make(map[string]*tokens.ContrastHint),
	}

	for _, name := range b.names {
		tok, _ := set.Lookup(name)
		value, _ := tok.Value(theme)
		b.raw[name] = value
		if tok.Contrast != nil {
			hint := *tok.Contrast
			b.contrast[name] = &hint
		}

		switch kind {
		case KindCascading:
			prop := PropertyName(name)
			b.props[name] = prop
			b.refs[name] = "var(" + prop + ")"
		case KindFlat:
			fv, err := flatten(tok, value)
			if err != nil {
				return nil, err
			}
			b.flat[name] = fv
			b.refs[name] = `tokens[` + quote(name) + `]`
		case KindSCSS:
			b.refs[name] = `map-get($prism-tokens, ` + quote(name) + `)`
		default:
			return nil, errors.Newf("unknown binding kind %q", kind)
		}
	}

	switch kind {
	case KindCascading:
		b.source = b.renderStylesheet()
	case KindSCSS:
		b.source = b.renderSCSS()
	}

	return b, nil
}

// flatten converts a token value into its flat native form
func flatten(tok tokens.Token, value string) (FlatValue, error) {
	switch tok.Type {
	case tokens.TypeLength:
		l, err := tokens.ParseLength(value)
		if err != nil {
			return FlatValue{}, errors.Wrapf(err, "token %q", tok.Name)
		}
		return FlatValue{String: value, Number: float64(l.Dip()), IsNumber: true}, nil
	case tokens.TypeDuration:
		ms, err := parseDurationMillis(value)
		if err != nil {
			return FlatValue{}, errors.Wrapf(err, "token %q", tok.Name)
		}
		return FlatValue{String: value, Number: ms, IsNumber: true}, nil
	default:
		return FlatValue{String: value}, nil
	}
}

// parseDurationMillis parses "150ms" or "0.2s" into milliseconds
func parseDurationMillis(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "ms"):
		return parseFloat(strings.TrimSuffix(s, "ms"))
	case strings.HasSuffix(s, "s"):
		v, err := parseFloat(strings.TrimSuffix(s, "s"))
		return v * 1000, err
	default:
		return 0, errors.Wrapf(errors.ErrInvalidSource, "duration %q: unknown unit", s)
	}
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidSource, "bad numeric value %q", s)
	}
	return v, nil
}

// Kind returns the binding's representation kind
func (b *Binding) Kind() Kind { return b.kind }

// Theme returns the theme this binding was transformed for
func (b *Binding) Theme() tokens.Theme { return b.theme }

// Revision returns the token revision this binding was built from
func (b *Binding) Revision() string { return b.revision }

// Names returns the bound token names in sorted order
func (b *Binding) Names() []string {
	return append([]string(nil), b.names...)
}

// Resolve returns the platform-native reference expression for a semantic
// token name: "var(--prism-...)" for cascading bindings, an indexed map
// access for flat bindings, "map-get(...)" for SCSS.
func (b *Binding) Resolve(name string) (string, bool) {
	ref, ok := b.refs[name]
	return ref, ok
}

// Raw returns the canonical token value the binding was derived from.
// Transforming and reading back through Raw loses nothing: this is the
// round-trip integrity guarantee.
func (b *Binding) Raw(name string) (string, bool) {
	v, ok := b.raw[name]
	return v, ok
}

// PropertyName returns the custom-property name for a token on cascading
// bindings ("--prism-color-primary-500")
func (b *Binding) PropertyName(name string) (string, bool) {
	p, ok := b.props[name]
	return p, ok
}

// FlatValue returns the native flat value for a token on flat bindings
func (b *Binding) FlatValue(name string) (FlatValue, bool) {
	v, ok := b.flat[name]
	return v, ok
}

// Contrast returns the contrast metadata carried by a color token, if any
func (b *Binding) Contrast(name string) (*tokens.ContrastHint, bool) {
	c, ok := b.contrast[name]
	return c, ok
}

// Source returns the rendered stylesheet or SCSS map text. Empty for flat
// bindings, whose native form is the value map itself.
func (b *Binding) Source() string { return b.source }

// PropertyName derives the CSS custom-property name for a semantic token name
func PropertyName(name string) string {
	return "--prism-" + strings.NewReplacer(".", "-", " ", "-").Replace(name)
}

// renderStylesheet emits the :root declaration block, sorted by token name
func (b *Binding) renderStylesheet() string {
	var sb strings.Builder
	sb.WriteString("/* AUTO-GENERATED by prism - DO NOT EDIT */\n")
	sb.WriteString("/* revision: " + b.revision + " theme: " + string(b.theme) + " */\n")
	sb.WriteString(":root {\n")
	for _, name := range b.names {
		sb.WriteString("  " + b.props[name] + ": " + b.raw[name] + ";\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// renderSCSS emits the $prism-tokens map, sorted by token name
func (b *Binding) renderSCSS() string {
	var sb strings.Builder
	sb.WriteString("// AUTO-GENERATED by prism - DO NOT EDIT\n")
	sb.WriteString("// revision: " + b.revision + " theme: " + string(b.theme) + "\n")
	sb.WriteString("$prism-tokens: (\n")
	for i, name := range b.names {
		sb.WriteString("  " + quote(name) + ": " + quote(b.raw[name]))
		if i < len(b.names)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(");\n")
	return sb.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
