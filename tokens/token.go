// Package tokens holds the canonical, platform-neutral design tokens.
//
// A token is a named, typed value (color, length, duration, font property)
// organized into semantic scales such as "color.primary.500" or "spacing.12".
// Tokens are grouped into an immutable Set identified by a revision; changing
// a value means publishing a new revision, never mutating an existing one, so
// previously generated artifacts stay reproducible from a pinned revision.
package tokens

import (
	"math"
	"strconv"
	"strings"

	"github.com/prismui/prism/errors"
)

// Type classifies a design token value
type Type string

const (
	TypeColor    Type = "color"
	TypeLength   Type = "length"
	TypeDuration Type = "duration"
	TypeFont     Type = "font"
)

// IsValidType returns true if the string names a known token type
func IsValidType(s string) bool {
	switch Type(s) {
	case TypeColor, TypeLength, TypeDuration, TypeFont:
		return true
	default:
		return false
	}
}

// Theme identifies a canonical value column (one value per token per theme)
type Theme string

const (
	ThemeLight        Theme = "light"
	ThemeDark         Theme = "dark"
	ThemeHighContrast Theme = "high-contrast"
)

// ContrastHint carries perceptual metadata alongside a color value so the
// accessibility validator can check contrast without recomputing color math.
type ContrastHint struct {
	// Against names the background token this ratio was measured against
	Against string
	// Ratio is the measured minimum contrast ratio (e.g. 4.6 for 4.6:1)
	Ratio float64
}

// Token is a single named, typed design value with one canonical value per theme.
type Token struct {
	Name     string
	Type     Type
	Values   map[Theme]string
	Contrast *ContrastHint
}

// Value returns the canonical value for a theme
func (t Token) Value(theme Theme) (string, bool) {
	v, ok := t.Values[theme]
	return v, ok
}

// Unit is a length unit understood by the transformer
type Unit string

const (
	UnitPx  Unit = "px"
	UnitRem Unit = "rem"
	UnitPt  Unit = "pt"
	UnitDip Unit = "dip"
)

// RemBasePx is the device-independent pixel size of 1rem
const RemBasePx = 16

// Length is a parsed length token value
type Length struct {
	Value float64
	Unit  Unit
}

// ParseLength parses a length value such as "12px", "0.75rem" or "44dip"
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	for _, unit := range []Unit{UnitRem, UnitDip, UnitPx, UnitPt} {
		suffix := string(unit)
		if strings.HasSuffix(s, suffix) {
			num := strings.TrimSuffix(s, suffix)
			v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
			if err != nil {
				return Length{}, errors.Wrapf(errors.ErrInvalidSource, "length %q: bad numeric part", s)
			}
			return Length{Value: v, Unit: unit}, nil
		}
	}
	return Length{}, errors.Wrapf(errors.ErrInvalidSource, "length %q: unknown unit", s)
}

// Dip converts the length to whole device-independent pixels.
//
// Rounding rule: nearest whole dip, half away from zero. Every generator and
// the accessibility validator apply this same rule, so cross-platform unit
// conversion cannot drift.
func (l Length) Dip() int {
	var px float64
	switch l.Unit {
	case UnitRem:
		px = l.Value * RemBasePx
	case UnitPt:
		px = l.Value * 4.0 / 3.0
	default: // px and dip are 1:1
		px = l.Value
	}
	return int(math.Round(px))
}

// String renders the length in its declared unit
func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + string(l.Unit)
}
