package csm

// Level is a WCAG conformance level
type Level string

const (
	LevelA   Level = "A"
	LevelAA  Level = "AA"
	LevelAAA Level = "AAA"
)

// IsValidLevel returns true if the string names a known WCAG level
func IsValidLevel(s string) bool {
	switch Level(s) {
	case LevelA, LevelAA, LevelAAA:
		return true
	default:
		return false
	}
}

// MinContrastRatio returns the minimum text contrast ratio the level requires
func (l Level) MinContrastRatio() float64 {
	switch l {
	case LevelAAA:
		return 7.0
	case LevelAA:
		return 4.5
	default:
		return 3.0
	}
}

// Contract is the accessibility contract declared once on the CSM and
// enforced on every generated artifact, for every platform.
type Contract struct {
	// WCAGLevel is the minimum conformance level (A, AA, AAA)
	WCAGLevel Level `yaml:"wcag_level"`

	// Role is the required ARIA role of the component root
	Role string `yaml:"role,omitempty"`

	// Attributes are ARIA attributes every artifact must emit. An attribute
	// without a State scope is emitted unconditionally, never only under a
	// variant branch.
	Attributes []ARIAAttribute `yaml:"attributes,omitempty"`

	// Keyboard lists required keyboard interactions (e.g. "Enter", "Space").
	// Non-empty Keyboard marks the component interactive: artifacts must be
	// focusable natively or carry an explicit tabindex.
	Keyboard []string `yaml:"keyboard,omitempty"`

	// ContrastToken names the foreground color token whose contrast metadata
	// is checked against the level's minimum ratio
	ContrastToken string `yaml:"contrast_token,omitempty"`

	// MinTargetSize is the minimum interactive target size
	MinTargetSize *TargetSize `yaml:"min_target_size,omitempty"`
}

// ARIAAttribute is one required ARIA attribute or property
type ARIAAttribute struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value,omitempty"`

	// State scopes the attribute to a declared runtime state. Empty means
	// unconditional.
	State string `yaml:"state,omitempty"`
}

// TargetSize declares minimum interactive dimensions as length values
// (e.g. "44dip", "2.75rem")
type TargetSize struct {
	Width  string `yaml:"width,omitempty"`
	Height string `yaml:"height,omitempty"`
}
