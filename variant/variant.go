// Package variant compiles a component specification's variant declarations
// into a deterministic style resolver.
//
// The resolver is a pure function from (selected variant values, active
// states) to an ordered list of style identifiers. Ordering is the contract:
// later identifiers override earlier ones in whatever application mechanism a
// platform generator chooses (class concatenation, style-object merge,
// scoped-class mapping), so the resolver never removes an identifier, only
// appends.
//
// Resolution order:
//  1. base identifiers, always
//  2. each variant axis in declaration order, selected or default value
//  3. every matching compound rule in declaration order; when two rules both
//     match, the later-declared one's identifiers land later (last-declared
//     wins by ordering, not by replacement)
//  4. active state identifiers, declaration order, last of all; state always
//     has final override precedence
package variant

import (
	"github.com/prismui/prism/csm"
	"github.com/prismui/prism/errors"
)

// Selection maps axis name to the selected value. Axes absent from the
// selection resolve to their default; values outside the axis enumeration
// also fall back to the default, keeping resolution total.
type Selection map[string]string

// States maps state name to active. Unknown names are ignored; declaration
// order on the CSM, not map order, drives emission order.
type States map[string]bool

type axisRule struct {
	name         string
	defaultValue string
	values       map[string][]string
}

type compoundRule struct {
	when   map[string]string
	styles []string
}

type stateRule struct {
	name   string
	styles []string
}

// Resolver resolves variant selections into ordered style identifiers.
// It closes over copies of the specification's declarations and consults
// nothing else, so identical inputs yield identical output on every platform
// and in every process.
type Resolver struct {
	base     []string
	axes     []axisRule
	compound []compoundRule
	states   []stateRule
}

// Compile builds a resolver from a component specification.
// Fails if any axis lacks a default: a resolver must always produce some
// style set even with no explicit selection.
func Compile(c *csm.CSM) (*Resolver, error) {
	r := &Resolver{
		base: append([]string(nil), c.Base...),
	}

	for _, axis := range c.Variants {
		if axis.Default == "" {
			return nil, errors.NewMissingDefaultVariantError(axis.Name, c.ID)
		}
		if _, ok := axis.Value(axis.Default); !ok {
			return nil, errors.Wrapf(errors.ErrInvalidSource, "component %q: axis %q default %q is not an allowed value", c.ID, axis.Name, axis.Default)
		}
		rule := axisRule{
			name:         axis.Name,
			defaultValue: axis.Default,
			values:       make(map[string][]string, len(axis.Values)),
		}
		for _, v := range axis.Values {
			rule.values[v.Name] = append([]string(nil), v.Styles...)
		}
		r.axes = append(r.axes, rule)
	}

	for _, rule := range c.Compound {
		when := make(map[string]string, len(rule.When))
		for k, v := range rule.When {
			when[k] = v
		}
		r.compound = append(r.compound, compoundRule{
			when:   when,
			styles: append([]string(nil), rule.Styles...),
		})
	}

	for _, s := range c.States {
		r.states = append(r.states, stateRule{
			name:   s.Name,
			styles: append([]string(nil), s.Styles...),
		})
	}

	return r, nil
}

// Resolve returns the ordered style identifiers for a selection. Never fails
// and never mutates: with a nil selection and nil states it produces the
// all-defaults style set.
func (r *Resolver) Resolve(sel Selection, st States) []string {
	out := append([]string(nil), r.base...)

	// Effective value per axis, needed again for compound matching
	effective := make(map[string]string, len(r.axes))
	for _, axis := range r.axes {
		value := axis.defaultValue
		if selected, ok := sel[axis.name]; ok {
			if _, allowed := axis.values[selected]; allowed {
				value = selected
			}
		}
		effective[axis.name] = value
		out = append(out, axis.values[value]...)
	}

	for _, rule := range r.compound {
		if matches(rule.when, effective) {
			out = append(out, rule.styles...)
		}
	}

	for _, state := range r.states {
		if st[state.name] {
			out = append(out, state.styles...)
		}
	}

	return out
}

// Axes returns the axis names in declaration order
func (r *Resolver) Axes() []string {
	names := make([]string, len(r.axes))
	for i, a := range r.axes {
		names[i] = a.name
	}
	return names
}

// Default returns the default value of an axis
func (r *Resolver) Default(axis string) (string, bool) {
	for _, a := range r.axes {
		if a.name == axis {
			return a.defaultValue, true
		}
	}
	return "", false
}

func matches(when map[string]string, effective map[string]string) bool {
	for axis, want := range when {
		if effective[axis] != want {
			return false
		}
	}
	return true
}
