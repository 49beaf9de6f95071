package csm

// Fixture CSMs shared by compiler, generator and pipeline tests. Kept in the
// package (not a testdata dir) so every platform generator proves parity
// against the identical specification.

// ButtonFixture returns the canonical button specification used across the
// test suite: two variant axes, one compound rule, one slot, one state, and
// an AA accessibility contract.
func ButtonFixture() *CSM {
	return &CSM{
		ID:      "button",
		Version: "1.2.0",
		Element: "button",
		Base:    []string{"inline-flex"},
		TokenRefs: []string{
			"color.primary.500",
			"color.surface",
			"size.control.md",
		},
		Props: []Prop{
			{Name: "label", Type: PropString, Required: true},
			{Name: "fullWidth", Type: PropBoolean, Default: "false"},
		},
		Variants: []Axis{
			{
				Name:    "variant",
				Default: "solid",
				Values: []AxisValue{
					{Name: "solid", Styles: []string{"bg-primary"}},
					{Name: "outline", Styles: []string{"border-primary"}},
				},
			},
			{
				Name:    "size",
				Default: "md",
				Values: []AxisValue{
					{Name: "md", Styles: []string{"h-12"}},
					{Name: "lg", Styles: []string{"h-14"}},
				},
			},
		},
		Compound: []CompoundRule{
			{
				When:   map[string]string{"variant": "outline", "size": "lg"},
				Styles: []string{"border-2"},
			},
		},
		Slots: []Slot{
			{Name: "icon", Description: "leading icon"},
		},
		States: []State{
			{Name: "disabled", Styles: []string{"opacity-50"}},
		},
		Accessibility: Contract{
			WCAGLevel: LevelAA,
			Role:      "button",
			Attributes: []ARIAAttribute{
				{Name: "aria-label"},
				{Name: "aria-disabled", Value: "true", State: "disabled"},
			},
			Keyboard:      []string{"Enter", "Space"},
			ContrastToken: "color.primary.500",
			MinTargetSize: &TargetSize{Height: "44dip"},
		},
	}
}
