// Package csm defines the Component Specification Model: the
// target-framework-free intermediate representation of a single UI component.
//
// A CSM declares props, variant axes, compound variant rules, slots, runtime
// states and an accessibility contract. It never references any framework
// API, hook or lifecycle concept; platform generators own that translation.
// A published CSM is immutable: new behavior means a new version.
//
// All collections are ordered slices, not maps, so every consumer iterates
// them deterministically.
package csm

import (
	"github.com/Masterminds/semver/v3"
)

// CSM is the platform-neutral specification of one component.
type CSM struct {
	// ID is the stable component identifier (e.g. "button")
	ID string `yaml:"id"`

	// Version is the semver of this specification revision
	Version string `yaml:"version"`

	// Description is optional author-facing prose
	Description string `yaml:"description,omitempty"`

	// Element is the semantic role of the component root (e.g. "button",
	// "input"). Generators map it to the closest native primitive.
	Element string `yaml:"element"`

	// Base lists the style identifiers applied unconditionally, first
	Base []string `yaml:"base,omitempty"`

	// TokenRefs lists the semantic token names this component binds. Every
	// entry must exist in the token revision a generation run pins.
	TokenRefs []string `yaml:"tokens,omitempty"`

	// Props is the ordered public property list
	Props []Prop `yaml:"props,omitempty"`

	// Variants is the ordered list of variant axes; axis declaration order
	// is resolution order
	Variants []Axis `yaml:"variants,omitempty"`

	// Compound is the ordered list of compound variant rules; on overlap the
	// later-declared rule wins (its identifiers append last)
	Compound []CompoundRule `yaml:"compound,omitempty"`

	// Slots is the ordered list of named content insertion points
	Slots []Slot `yaml:"slots,omitempty"`

	// States is the ordered list of runtime states; state identifiers always
	// append last so state has final override precedence
	States []State `yaml:"states,omitempty"`

	// Accessibility is the contract every generated artifact must satisfy
	Accessibility Contract `yaml:"accessibility"`
}

// SemVer parses the CSM's version field
func (c *CSM) SemVer() (*semver.Version, error) {
	return semver.NewVersion(c.Version)
}

// Axis returns the variant axis with the given name
func (c *CSM) Axis(name string) (Axis, bool) {
	for _, a := range c.Variants {
		if a.Name == name {
			return a, true
		}
	}
	return Axis{}, false
}

// PropType is the semantic type of a prop
type PropType string

const (
	PropString  PropType = "string"
	PropNumber  PropType = "number"
	PropBoolean PropType = "boolean"
)

// IsValidPropType returns true if the string names a known prop type
func IsValidPropType(s string) bool {
	switch PropType(s) {
	case PropString, PropNumber, PropBoolean:
		return true
	default:
		return false
	}
}

// Prop is one entry of the component's public property surface
type Prop struct {
	Name     string   `yaml:"name"`
	Type     PropType `yaml:"type"`
	Required bool     `yaml:"required,omitempty"`
	Default  string   `yaml:"default,omitempty"`
}

// Axis is a named variant dimension with an enumerated value set
type Axis struct {
	Name string `yaml:"name"`

	// Default names the value applied when no explicit selection is made.
	// Mandatory: a resolver must always produce some style set.
	Default string `yaml:"default"`

	// Values is the ordered enumeration of allowed values
	Values []AxisValue `yaml:"values"`
}

// Value returns the axis value with the given name
func (a Axis) Value(name string) (AxisValue, bool) {
	for _, v := range a.Values {
		if v.Name == name {
			return v, true
		}
	}
	return AxisValue{}, false
}

// AxisValue maps one axis value to its style identifiers
type AxisValue struct {
	Name   string   `yaml:"name"`
	Styles []string `yaml:"styles,omitempty"`
}

// CompoundRule appends extra style identifiers when a specific combination
// of variant values is simultaneously selected. Compound rules refine but
// never replace earlier identifiers.
type CompoundRule struct {
	// When maps axis name to the required value; the rule matches only when
	// every constraint holds
	When map[string]string `yaml:"when"`

	Styles []string `yaml:"styles"`
}

// Slot is a named content insertion point
type Slot struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// State is a boolean runtime state such as "disabled" or "loading"
type State struct {
	Name   string   `yaml:"name"`
	Styles []string `yaml:"styles,omitempty"`
}
