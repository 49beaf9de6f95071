package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/prismui/prism/a11y"
	"github.com/prismui/prism/artifact"
	"github.com/prismui/prism/csm"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/generate"
	"github.com/prismui/prism/logger"
	"github.com/prismui/prism/registry"
	"github.com/prismui/prism/tokens"
)

// ArtifactRef is the consumer-facing handle to a published artifact
type ArtifactRef struct {
	EntryID  string       `json:"entry_id"`
	Key      artifact.Key `json:"key"`
	Filename string       `json:"filename"`
	Checksum string       `json:"checksum"`
	Status   a11y.Status  `json:"status"`
}

// Service is the external surface of the engine: load sources, generate on
// demand, look up published artifacts. The CLI is a thin consumer of this
// type.
type Service struct {
	runner *Runner
	store  *registry.Store
	theme  tokens.Theme

	components map[string]*csm.CSM
	sets       map[string]*tokens.Set
	latest     string // revision of the most recently loaded token set
}

// NewService creates a service over a runner and its registry store
func NewService(runner *Runner, store *registry.Store, theme tokens.Theme) *Service {
	return &Service{
		runner:     runner,
		store:      store,
		theme:      theme,
		components: make(map[string]*csm.CSM),
		sets:       make(map[string]*tokens.Set),
	}
}

// LoadComponents parses every YAML specification under dir
func (s *Service) LoadComponents(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "read components dir %s", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "read %s", path)
		}
		c, err := csm.ParseBytes(data)
		if err != nil {
			return errors.Wrapf(err, "parse %s", path)
		}
		s.components[c.ID] = c
		logger.Debugw("Component loaded", "id", c.ID, "version", c.Version, "path", path)
	}
	return nil
}

// LoadTokens parses every TOML token document under dir. The
// lexicographically greatest revision becomes the default for unpinned
// generation, matching the calendar-style revision scheme.
func (s *Service) LoadTokens(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "read tokens dir %s", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "read %s", path)
		}
		set, err := tokens.ParseBytes(data)
		if err != nil {
			return errors.Wrapf(err, "parse %s", path)
		}
		if existing, ok := s.sets[set.Revision()]; ok && existing.Hash() != set.Hash() {
			return errors.Wrapf(errors.ErrInvalidSource,
				"revision %q republished with different content", set.Revision())
		}
		s.sets[set.Revision()] = set
		if set.Revision() > s.latest {
			s.latest = set.Revision()
		}
		logger.Debugw("Token set loaded", "revision", set.Revision(), "tokens", set.Len(), "path", path)
	}
	return nil
}

// Components returns the loaded component ids in sorted order
func (s *Service) Components() []string {
	ids := make([]string, 0, len(s.components))
	for id := range s.components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Revisions returns the loaded token revisions in sorted order
func (s *Service) Revisions() []string {
	revs := make([]string, 0, len(s.sets))
	for rev := range s.sets {
		revs = append(revs, rev)
	}
	sort.Strings(revs)
	return revs
}

// Component returns one loaded specification
func (s *Service) Component(id string) (*csm.CSM, bool) {
	c, ok := s.components[id]
	return c, ok
}

// TokenSet returns the set published under a revision, or the latest loaded
// set when revision is empty
func (s *Service) TokenSet(revision string) (*tokens.Set, error) {
	if revision == "" {
		revision = s.latest
	}
	set, ok := s.sets[revision]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "token revision %q", revision)
	}
	return set, nil
}

// Generate runs the pipeline for one component on one platform and returns
// the published artifact reference. An empty tokenRevision selects the
// latest loaded revision.
func (s *Service) Generate(ctx context.Context, componentID string, platform generate.PlatformID, tokenRevision string) (*ArtifactRef, error) {
	c, ok := s.components[componentID]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "component %q", componentID)
	}
	set, err := s.TokenSet(tokenRevision)
	if err != nil {
		return nil, err
	}

	report, err := s.runner.Run(ctx, Request{
		Set:        set,
		Theme:      s.theme,
		Components: []*csm.CSM{c},
		Platforms:  []generate.PlatformID{platform},
	})
	if err != nil {
		return nil, err
	}
	if len(report.Results) != 1 {
		return nil, errors.AssertionFailedf("single-target run produced %d results", len(report.Results))
	}

	res := report.Results[0]
	if res.Err != nil {
		return nil, res.Err
	}

	entry, err := s.store.LookupVersion(ctx, res.Key.Component, res.Key.Platform, res.Key.CSMVersion)
	if err != nil {
		return nil, err
	}
	return &ArtifactRef{
		EntryID:  entry.ID,
		Key:      entry.Artifact.Key,
		Filename: entry.Artifact.Filename,
		Checksum: entry.Artifact.Checksum,
		Status:   entry.Status,
	}, nil
}

// Run executes a batch generation across every loaded component
func (s *Service) Run(ctx context.Context, platforms []generate.PlatformID, tokenRevision string) (*Report, error) {
	set, err := s.TokenSet(tokenRevision)
	if err != nil {
		return nil, err
	}
	components := make([]*csm.CSM, 0, len(s.components))
	for _, id := range s.Components() {
		components = append(components, s.components[id])
	}
	return s.runner.Run(ctx, Request{
		Set:        set,
		Theme:      s.theme,
		Components: components,
		Platforms:  platforms,
	})
}

// RunComponent executes a batch generation for one component across the
// selected platforms
func (s *Service) RunComponent(ctx context.Context, componentID string, platforms []generate.PlatformID, tokenRevision string) (*Report, error) {
	c, ok := s.components[componentID]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "component %q", componentID)
	}
	set, err := s.TokenSet(tokenRevision)
	if err != nil {
		return nil, err
	}
	return s.runner.Run(ctx, Request{
		Set:        set,
		Theme:      s.theme,
		Components: []*csm.CSM{c},
		Platforms:  platforms,
	})
}

// Lookup resolves a published artifact. An empty version resolves the newest
// validated, non-deprecated entry; a version pins exactly.
func (s *Service) Lookup(ctx context.Context, componentID string, platform generate.PlatformID, version string) (*ArtifactRef, error) {
	var (
		entry *registry.Entry
		err   error
	)
	if version == "" {
		entry, err = s.store.Lookup(ctx, componentID, string(platform))
	} else {
		entry, err = s.store.LookupVersion(ctx, componentID, string(platform), version)
	}
	if err != nil {
		return nil, err
	}
	return &ArtifactRef{
		EntryID:  entry.ID,
		Key:      entry.Artifact.Key,
		Filename: entry.Artifact.Filename,
		Checksum: entry.Artifact.Checksum,
		Status:   entry.Status,
	}, nil
}

// Entry returns the full stored entry, source included, for a reference
func (s *Service) Entry(ctx context.Context, ref *ArtifactRef) (*registry.Entry, error) {
	return s.store.LookupVersion(ctx, ref.Key.Component, ref.Key.Platform, ref.Key.CSMVersion)
}

// Watch re-runs generation whenever source documents under the component or
// token directories change. Blocks until the context is cancelled.
func (s *Service) Watch(ctx context.Context, componentsDir, tokensDir string, debounce time.Duration, platforms []generate.PlatformID) error {
	w, err := NewWatcher(debounce, func(paths []string) {
		s.reloadAndRun(ctx, componentsDir, tokensDir, platforms)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(componentsDir); err != nil {
		return err
	}
	if err := w.Add(tokensDir); err != nil {
		return err
	}
	return w.Run(ctx)
}

// reloadAndRun reloads sources and triggers a batch run
func (s *Service) reloadAndRun(ctx context.Context, componentsDir, tokensDir string, platforms []generate.PlatformID) {
	if err := s.LoadComponents(componentsDir); err != nil {
		logger.Errorw("Reload components failed", "error", err)
		return
	}
	if err := s.LoadTokens(tokensDir); err != nil {
		logger.Errorw("Reload tokens failed", "error", err)
		return
	}
	report, err := s.Run(ctx, platforms, "")
	if err != nil {
		logger.Errorw("Watch run failed", "error", err)
		return
	}
	logger.Info(report.Summary())
}
