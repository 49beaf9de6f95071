// Package a11y validates generated artifacts against their accessibility
// contract.
//
// Validation runs after generation and before registry publication. It is a
// gate, not advice: a Failed record carries structured reasons and the
// pipeline refuses to publish the artifact. Checks are textual over the
// emitted source plus arithmetic over token metadata, so the validator needs
// no platform runtime.
package a11y

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/prismui/prism/artifact"
	"github.com/prismui/prism/csm"
	"github.com/prismui/prism/generate"
	"github.com/prismui/prism/tokens"
	"github.com/prismui/prism/tokens/transform"
)

// Status is the lifecycle position of a validation record
type Status string

const (
	// StatusPending marks an artifact generated but not yet validated
	StatusPending Status = "pending"
	// StatusPassed marks an artifact that satisfied every contract check
	StatusPassed Status = "passed"
	// StatusFailed marks an artifact that violated at least one check
	StatusFailed Status = "failed"
)

// Reason is one structured check failure
type Reason struct {
	// Rule names the failed check ("aria-attribute", "contrast",
	// "min-target-size", "keyboard", "role")
	Rule string `json:"rule"`
	// Detail is the human-readable specifics ("min-height 40<44")
	Detail string `json:"detail"`
}

func (r Reason) String() string {
	return r.Rule + ": " + r.Detail
}

// Record is the validation outcome for one artifact
type Record struct {
	Key       artifact.Key `json:"key"`
	Level     csm.Level    `json:"level"`
	Status    Status       `json:"status"`
	Reasons   []Reason     `json:"reasons,omitempty"`
	CheckedAt time.Time    `json:"checked_at"`
}

// Failed reports whether the record carries at least one violation
func (r *Record) Failed() bool {
	return r.Status == StatusFailed
}

// nativeAttrEquivalents maps ARIA attributes onto the React Native
// accessibility vocabulary. Presence of either form satisfies the contract.
var nativeAttrEquivalents = map[string][]string{
	"aria-label":    {"accessibilityLabel"},
	"aria-disabled": {"accessibilityState"},
	"aria-selected": {"accessibilityState"},
	"aria-checked":  {"accessibilityState"},
	"aria-expanded": {"accessibilityState"},
}

// roleMarkers are the per-idiom ways a role lands in emitted source
var roleMarkers = []string{
	`role="%s"`,
	`accessibilityRole="%s"`,
	`setAttribute('role', '%s')`,
}

// keyboardMarkers indicate the artifact wires keyboard interaction: an
// explicit tabindex, a key handler, or a native pressable root
var keyboardMarkers = []string{
	"tabindex",
	"tabIndex",
	"keydown",
	"onKeyDown",
	"onPress",
	"<Pressable",
}

// minSizePatterns extract emitted minimum dimensions per target idiom.
// Group 1 is the whole-dip value.
var (
	minHeightPattern = regexp.MustCompile(`min-height:\s*(\d+)px|minHeight:\s*'?(\d+)`)
	minWidthPattern  = regexp.MustCompile(`min-width:\s*(\d+)px|minWidth:\s*'?(\d+)`)
)

// Validator checks artifacts against accessibility contracts
type Validator struct{}

// New creates a validator
func New() *Validator {
	return &Validator{}
}

// Pending returns the record an artifact holds before validation runs
func (v *Validator) Pending(a *artifact.Artifact, level csm.Level) *Record {
	return &Record{Key: a.Key, Level: level, Status: StatusPending}
}

// Validate checks one artifact against its component's contract and the token
// binding it was generated from. The returned record is Passed or Failed;
// every violated check contributes a reason, so a single run reports all
// defects at once.
func (v *Validator) Validate(a *artifact.Artifact, c *csm.CSM, b *transform.Binding) *Record {
	rec := &Record{
		Key:       a.Key,
		Level:     c.Accessibility.WCAGLevel,
		CheckedAt: time.Now().UTC(),
	}

	rec.Reasons = append(rec.Reasons, v.checkRole(a.Source, c.Accessibility)...)
	rec.Reasons = append(rec.Reasons, v.checkAttributes(a.Source, c.Accessibility)...)
	rec.Reasons = append(rec.Reasons, v.checkContrast(c.Accessibility, b)...)
	rec.Reasons = append(rec.Reasons, v.checkMinTargetSize(a.Source, c.Accessibility)...)
	rec.Reasons = append(rec.Reasons, v.checkKeyboard(a.Source, c)...)

	if len(rec.Reasons) > 0 {
		rec.Status = StatusFailed
	} else {
		rec.Status = StatusPassed
	}
	return rec
}

func (v *Validator) checkRole(source string, ct csm.Contract) []Reason {
	if ct.Role == "" {
		return nil
	}
	for _, marker := range roleMarkers {
		if strings.Contains(source, fmt.Sprintf(marker, ct.Role)) {
			return nil
		}
	}
	return []Reason{{Rule: "role", Detail: "role " + ct.Role + " not emitted"}}
}

// checkAttributes verifies every contract ARIA attribute landed in the
// source: literally, as the camelCase prop form targets without hyphenated
// attributes emit, or through its native equivalent
func (v *Validator) checkAttributes(source string, ct csm.Contract) []Reason {
	var reasons []Reason
	for _, attr := range ct.Attributes {
		if strings.Contains(source, attr.Name) ||
			strings.Contains(source, generate.AriaPropName(attr.Name)) {
			continue
		}
		found := false
		for _, equiv := range nativeAttrEquivalents[attr.Name] {
			if strings.Contains(source, equiv) {
				found = true
				break
			}
		}
		if !found {
			reasons = append(reasons, Reason{
				Rule:   "aria-attribute",
				Detail: attr.Name + " not emitted",
			})
		}
	}
	return reasons
}

// checkContrast verifies the designated contrast token carries measured
// contrast metadata meeting the contract level
func (v *Validator) checkContrast(ct csm.Contract, b *transform.Binding) []Reason {
	if ct.ContrastToken == "" {
		return nil
	}
	required := ct.WCAGLevel.MinContrastRatio()
	hint, ok := b.Contrast(ct.ContrastToken)
	if !ok {
		return []Reason{{
			Rule:   "contrast",
			Detail: "token " + ct.ContrastToken + " carries no contrast metadata",
		}}
	}
	if hint.Ratio < required {
		return []Reason{{
			Rule: "contrast",
			Detail: fmt.Sprintf("%s measures %.1f:1 against %s, %s requires %.1f:1",
				ct.ContrastToken, hint.Ratio, hint.Against, ct.WCAGLevel, required),
		}}
	}
	return nil
}

func (v *Validator) checkMinTargetSize(source string, ct csm.Contract) []Reason {
	if ct.MinTargetSize == nil {
		return nil
	}
	var reasons []Reason
	if ct.MinTargetSize.Width != "" {
		reasons = append(reasons, checkDimension(source, "min-width", ct.MinTargetSize.Width, minWidthPattern)...)
	}
	if ct.MinTargetSize.Height != "" {
		reasons = append(reasons, checkDimension(source, "min-height", ct.MinTargetSize.Height, minHeightPattern)...)
	}
	return reasons
}

// checkDimension compares the emitted dimension against the contract minimum,
// both in whole dips after the shared rounding rule
func checkDimension(source, rule, contractValue string, pattern *regexp.Regexp) []Reason {
	l, err := tokens.ParseLength(contractValue)
	if err != nil {
		return []Reason{{Rule: rule, Detail: "unparseable contract size " + contractValue}}
	}
	required := l.Dip()

	m := pattern.FindStringSubmatch(source)
	if m == nil {
		return []Reason{{Rule: rule, Detail: fmt.Sprintf("%s %d not emitted", rule, required)}}
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	emitted, err := strconv.Atoi(raw)
	if err != nil {
		return []Reason{{Rule: rule, Detail: "unparseable emitted size " + raw}}
	}
	if emitted < required {
		return []Reason{{Rule: rule, Detail: fmt.Sprintf("%s %d<%d", rule, emitted, required)}}
	}
	return nil
}

// checkKeyboard verifies a keyboard contract has a focus path: a natively
// focusable root element or an explicit marker in the source
func (v *Validator) checkKeyboard(source string, c *csm.CSM) []Reason {
	if len(c.Accessibility.Keyboard) == 0 {
		return nil
	}
	if focusableElements[c.Element] && strings.Contains(source, "<"+c.Element) {
		return nil
	}
	for _, marker := range keyboardMarkers {
		if strings.Contains(source, marker) {
			return nil
		}
	}
	return []Reason{{
		Rule:   "keyboard",
		Detail: "contract declares keys " + strings.Join(c.Accessibility.Keyboard, ",") + " but no focus mechanism is emitted",
	}}
}

var focusableElements = map[string]bool{
	"button":   true,
	"a":        true,
	"input":    true,
	"select":   true,
	"textarea": true,
}
