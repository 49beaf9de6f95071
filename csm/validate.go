package csm

import (
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/tokens"
)

// Validate checks the structural invariants of a CSM. Parse calls this on
// every loaded document; direct constructors (tests, embedding callers) are
// expected to call it themselves before compiling or generating.
func (c *CSM) Validate() error {
	if c.ID == "" {
		return errors.Wrap(errors.ErrInvalidSource, "component missing id")
	}
	if _, err := c.SemVer(); err != nil {
		return errors.Wrapf(errors.ErrInvalidSource, "component %q: bad version %q", c.ID, c.Version)
	}
	if c.Element == "" {
		return errors.Wrapf(errors.ErrInvalidSource, "component %q: missing element", c.ID)
	}

	if err := c.validateProps(); err != nil {
		return err
	}
	if err := c.validateVariants(); err != nil {
		return err
	}
	if err := c.validateCompound(); err != nil {
		return err
	}
	if err := c.validateSlots(); err != nil {
		return err
	}
	if err := c.validateStates(); err != nil {
		return err
	}
	return c.validateContract()
}

func (c *CSM) validateProps() error {
	seen := make(map[string]bool, len(c.Props))
	for _, p := range c.Props {
		if p.Name == "" {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: prop with empty name", c.ID)
		}
		if seen[p.Name] {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: duplicate prop %q", c.ID, p.Name)
		}
		seen[p.Name] = true
		if !IsValidPropType(string(p.Type)) {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: prop %q has unknown type %q", c.ID, p.Name, p.Type)
		}
		if p.Required && p.Default != "" {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: prop %q is required and has a default", c.ID, p.Name)
		}
	}
	return nil
}

func (c *CSM) validateVariants() error {
	seen := make(map[string]bool, len(c.Variants))
	for _, axis := range c.Variants {
		if axis.Name == "" {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: variant axis with empty name", c.ID)
		}
		if seen[axis.Name] {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: duplicate variant axis %q", c.ID, axis.Name)
		}
		seen[axis.Name] = true
		if len(axis.Values) == 0 {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: axis %q has no values", c.ID, axis.Name)
		}
		if axis.Default == "" {
			return errors.NewMissingDefaultVariantError(axis.Name, c.ID)
		}
		if _, ok := axis.Value(axis.Default); !ok {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: axis %q default %q is not an allowed value", c.ID, axis.Name, axis.Default)
		}
		valueSeen := make(map[string]bool, len(axis.Values))
		for _, v := range axis.Values {
			if valueSeen[v.Name] {
				return errors.Wrapf(errors.ErrInvalidSource, "component %q: axis %q duplicate value %q", c.ID, axis.Name, v.Name)
			}
			valueSeen[v.Name] = true
		}
	}
	return nil
}

func (c *CSM) validateCompound() error {
	for i, rule := range c.Compound {
		if len(rule.When) == 0 {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: compound rule %d has no constraints", c.ID, i)
		}
		for axisName, value := range rule.When {
			axis, ok := c.Axis(axisName)
			if !ok {
				return errors.Wrapf(errors.ErrInvalidSource, "component %q: compound rule %d references unknown axis %q", c.ID, i, axisName)
			}
			if _, ok := axis.Value(value); !ok {
				return errors.Wrapf(errors.ErrInvalidSource, "component %q: compound rule %d references unknown value %q of axis %q", c.ID, i, value, axisName)
			}
		}
	}
	return nil
}

func (c *CSM) validateSlots() error {
	seen := make(map[string]bool, len(c.Slots))
	for _, s := range c.Slots {
		if s.Name == "" {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: slot with empty name", c.ID)
		}
		if seen[s.Name] {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: duplicate slot %q", c.ID, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

func (c *CSM) validateStates() error {
	seen := make(map[string]bool, len(c.States))
	for _, s := range c.States {
		if s.Name == "" {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: state with empty name", c.ID)
		}
		if seen[s.Name] {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: duplicate state %q", c.ID, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

func (c *CSM) validateContract() error {
	ct := c.Accessibility
	if !IsValidLevel(string(ct.WCAGLevel)) {
		return errors.Wrapf(errors.ErrInvalidSource, "component %q: unknown WCAG level %q", c.ID, ct.WCAGLevel)
	}
	for _, attr := range ct.Attributes {
		if attr.Name == "" {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: ARIA attribute with empty name", c.ID)
		}
		if attr.State != "" && !c.hasState(attr.State) {
			return errors.Wrapf(errors.ErrInvalidSource, "component %q: ARIA attribute %q scoped to unknown state %q", c.ID, attr.Name, attr.State)
		}
	}
	if ct.MinTargetSize != nil {
		for _, dim := range []string{ct.MinTargetSize.Width, ct.MinTargetSize.Height} {
			if dim == "" {
				continue
			}
			if _, err := tokens.ParseLength(dim); err != nil {
				return errors.Wrapf(err, "component %q: min target size", c.ID)
			}
		}
	}
	return nil
}

func (c *CSM) hasState(name string) bool {
	for _, s := range c.States {
		if s.Name == name {
			return true
		}
	}
	return false
}
