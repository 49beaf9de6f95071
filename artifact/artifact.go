// Package artifact defines the generated, platform-specific output of one
// (component, platform, CSM version, token revision) tuple.
//
// An artifact is uniquely addressable by its Key and content-addressed by a
// checksum of its source text: regenerating with identical inputs must be
// byte-identical, and the checksum is how the registry and tests verify that
// without re-running the generator.
package artifact

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/prismui/prism/errors"
)

// Key addresses one artifact. Immutable once published: a new CSM version or
// token revision produces a new key, never an overwrite.
type Key struct {
	Component     string `json:"component"`
	Platform      string `json:"platform"`
	CSMVersion    string `json:"csm_version"`
	TokenRevision string `json:"token_revision"`
}

// String renders the canonical key form: component@version/platform@revision
func (k Key) String() string {
	return fmt.Sprintf("%s@%s/%s@%s", k.Component, k.CSMVersion, k.Platform, k.TokenRevision)
}

// Validate checks all key fields are present
func (k Key) Validate() error {
	if k.Component == "" || k.Platform == "" || k.CSMVersion == "" || k.TokenRevision == "" {
		return errors.Newf("incomplete artifact key %q", k.String())
	}
	return nil
}

// Artifact is generated source plus the manifest pinning what it was built
// from. Creation time deliberately does not participate in the checksum so
// reproducibility holds across runs.
type Artifact struct {
	Key Key `json:"key"`

	// GeneratorID and GeneratorVersion identify the generator that emitted
	// the source
	GeneratorID      string `json:"generator_id"`
	GeneratorVersion string `json:"generator_version"`

	// Filename is the platform-idiomatic output filename (Button.tsx,
	// PrismButton.vue, ...)
	Filename string `json:"filename"`

	// Source is the emitted platform source text
	Source string `json:"source"`

	// Checksum is the base58-encoded SHA-256 of Source
	Checksum string `json:"checksum"`
}

// New builds an artifact and computes its checksum
func New(key Key, generatorID, generatorVersion, filename, source string) (*Artifact, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, errors.Newf("artifact %s: empty filename", key)
	}
	return &Artifact{
		Key:              key,
		GeneratorID:      generatorID,
		GeneratorVersion: generatorVersion,
		Filename:         filename,
		Source:           source,
		Checksum:         Checksum(source),
	}, nil
}

// Checksum returns the base58-encoded SHA-256 of source text
func Checksum(source string) string {
	sum := sha256.Sum256([]byte(source))
	return base58.Encode(sum[:])
}

// Verify recomputes the checksum and reports whether the source still matches
func (a *Artifact) Verify() bool {
	return a.Checksum == Checksum(a.Source)
}
