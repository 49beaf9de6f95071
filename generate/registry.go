package generate

import (
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/prismui/prism/errors"
)

// Registry manages all platform generators.
//
// The pipeline discovers targets through this registration list; nothing in
// the core enumerates concrete platforms, which is what keeps new targets
// additive.
type Registry struct {
	mu         sync.RWMutex
	generators map[PlatformID]Generator
	version    string // Prism engine version
}

// NewRegistry creates a generator registry for an engine version
func NewRegistry(engineVersion string) *Registry {
	return &Registry{
		generators: make(map[PlatformID]Generator),
		version:    engineVersion,
	}
}

// Register registers a platform generator.
// Returns error if the platform is already registered or the generator's
// engine constraint is incompatible.
func (r *Registry) Register(g Generator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	meta := g.Metadata()
	if meta.Platform == "" {
		return errors.New("generator with empty platform id")
	}

	if _, exists := r.generators[meta.Platform]; exists {
		return errors.Newf("platform generator already registered: %s", meta.Platform)
	}

	if err := r.validateVersion(meta); err != nil {
		return errors.Wrapf(err, "version incompatible for %s", meta.Platform)
	}

	r.generators[meta.Platform] = g
	return nil
}

// Get retrieves a generator by platform id
func (r *Registry) Get(platform PlatformID) (Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.generators[platform]
	return g, ok
}

// List returns all registered platform ids in sorted order
func (r *Registry) List() []PlatformID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]PlatformID, 0, len(r.generators))
	for id := range r.generators {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// All returns every registered generator keyed by platform id
func (r *Registry) All() map[PlatformID]Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[PlatformID]Generator, len(r.generators))
	for id, g := range r.generators {
		out[id] = g
	}
	return out
}

// validateVersion checks the generator's engine constraint against the
// engine version
func (r *Registry) validateVersion(meta Metadata) error {
	if meta.EngineConstraint == "" {
		// No constraint specified
		return nil
	}

	engineVer, err := semver.NewVersion(r.version)
	if err != nil {
		return errors.Wrapf(err, "invalid engine version %s", r.version)
	}

	constraint, err := semver.NewConstraint(meta.EngineConstraint)
	if err != nil {
		return errors.Wrapf(err, "invalid engine constraint %s", meta.EngineConstraint)
	}

	if !constraint.Check(engineVer) {
		return errors.Newf("generator requires engine %s, running %s", meta.EngineConstraint, r.version)
	}

	return nil
}
