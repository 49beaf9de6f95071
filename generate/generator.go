// Package generate provides the platform generator architecture.
//
// A generator is a complete translation target (React, Vue, a headless
// custom element, a native view layer). Each consumes the same inputs, a
// component specification with its compiled variant resolver and a token
// binding, and emits platform-idiomatic source as an artifact. Generators are
// discovered through a registration list, not hard-coded enumeration, so new
// targets are additive.
//
// Every generator, independent of target idiom, must guarantee:
//   - every declared prop appears in the generated public interface with its
//     declared default
//   - every declared slot has a content-insertion mechanism native to the
//     target
//   - every ARIA attribute and role in the accessibility contract is emitted
//     unconditionally unless the contract scopes it to a state
//   - minimum interactive sizes convert to native units through the shared
//     rounding rule (nearest whole device-independent pixel)
//
// A target that cannot natively express a required contract element reports
// a capability gap instead of silently dropping the guarantee.
package generate

import (
	"github.com/prismui/prism/artifact"
	"github.com/prismui/prism/csm"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/tokens"
	"github.com/prismui/prism/tokens/transform"
	"github.com/prismui/prism/variant"
)

// PlatformID identifies a target framework or runtime (e.g. "react", "vue")
type PlatformID string

// Metadata describes a platform generator
type Metadata struct {
	// Platform is the target identifier
	Platform PlatformID

	// Version is the generator version (semver)
	Version string

	// EngineConstraint is the required Prism engine version (semver
	// constraint). Empty means any engine.
	EngineConstraint string

	// Description is a human-readable description
	Description string

	// BindingKind is the token binding form this target consumes
	BindingKind transform.Kind
}

// Generator defines the interface all platform generators implement
type Generator interface {
	// Metadata returns information about this generator
	Metadata() Metadata

	// Generate emits platform source for one component. Pure: output depends
	// only on the three inputs, and identical inputs must produce
	// byte-identical artifacts.
	Generate(c *csm.CSM, r *variant.Resolver, b *transform.Binding) (*artifact.Artifact, error)
}

// CheckTokenRefs verifies every token the component binds exists in the
// binding. Missing references fail generation naming both the token and the
// requesting component.
func CheckTokenRefs(c *csm.CSM, b *transform.Binding) error {
	for _, name := range c.TokenRefs {
		if _, ok := b.Resolve(name); !ok {
			return errors.NewMissingTokenError(name, c.ID)
		}
	}
	if c.Accessibility.ContrastToken != "" {
		if _, ok := b.Resolve(c.Accessibility.ContrastToken); !ok {
			return errors.NewMissingTokenError(c.Accessibility.ContrastToken, c.ID)
		}
	}
	return nil
}

// CheckBindingKind verifies the binding form matches what the generator's
// target consumes. A mismatch is a capability gap, not a best-effort fallback.
func CheckBindingKind(meta Metadata, b *transform.Binding) error {
	if b.Kind() != meta.BindingKind {
		return errors.NewCapabilityGapError(string(meta.Platform),
			"token binding of kind "+string(b.Kind())+" (requires "+string(meta.BindingKind)+")")
	}
	return nil
}

// CheckResolverParity verifies the compiled resolver was built from this
// specification: the all-defaults resolution must equal the walk of the
// declarations the generator is about to emit. A resolver compiled from a
// stale or different specification fails here before any source is written.
func CheckResolverParity(c *csm.CSM, r *variant.Resolver) error {
	want := append([]string(nil), c.Base...)
	defaults := make(map[string]string, len(c.Variants))
	for _, axis := range c.Variants {
		defaults[axis.Name] = axis.Default
		if v, ok := axis.Value(axis.Default); ok {
			want = append(want, v.Styles...)
		}
	}
	for _, rule := range c.Compound {
		matched := true
		for axis, value := range rule.When {
			if defaults[axis] != value {
				matched = false
				break
			}
		}
		if matched {
			want = append(want, rule.Styles...)
		}
	}

	got := r.Resolve(nil, nil)
	if len(got) != len(want) {
		return errors.Newf("component %q: resolver yields %d default styles, declarations yield %d", c.ID, len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			return errors.Newf("component %q: resolver default styles diverge from declarations at %q", c.ID, got[i])
		}
	}
	return nil
}

// MinTargetDip converts the contract's minimum target size to whole
// device-independent pixels through the shared rounding rule. Zero means the
// dimension is unconstrained.
func MinTargetDip(ct csm.Contract) (width, height int, err error) {
	if ct.MinTargetSize == nil {
		return 0, 0, nil
	}
	if ct.MinTargetSize.Width != "" {
		l, perr := tokens.ParseLength(ct.MinTargetSize.Width)
		if perr != nil {
			return 0, 0, perr
		}
		width = l.Dip()
	}
	if ct.MinTargetSize.Height != "" {
		l, perr := tokens.ParseLength(ct.MinTargetSize.Height)
		if perr != nil {
			return 0, 0, perr
		}
		height = l.Dip()
	}
	return width, height, nil
}
