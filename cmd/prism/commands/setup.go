package commands

import (
	"time"

	"github.com/prismui/prism/config"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/generate"
	"github.com/prismui/prism/generate/react"
	"github.com/prismui/prism/generate/rnative"
	"github.com/prismui/prism/generate/vue"
	"github.com/prismui/prism/generate/webc"
	"github.com/prismui/prism/pipeline"
	"github.com/prismui/prism/registry"
	"github.com/prismui/prism/tokens"
	"github.com/prismui/prism/version"
)

// serviceHandle pairs a wired service with its database cleanup
type serviceHandle struct {
	svc     *pipeline.Service
	cleanup func()
}

// newGeneratorRegistry registers every in-tree platform generator
func newGeneratorRegistry() (*generate.Registry, error) {
	reg := generate.NewRegistry(version.EngineVersion)
	for _, g := range []generate.Generator{
		react.New(),
		vue.New(),
		webc.New(),
		rnative.New(),
	} {
		if err := reg.Register(g); err != nil {
			return nil, errors.Wrapf(err, "register %s", g.Metadata().Platform)
		}
	}
	return reg, nil
}

// newService wires the full pipeline from configuration: registry database,
// generator registry, runner, and loaded source documents. The returned
// cleanup closes the database.
func newService(cfg *config.Config, theme tokens.Theme) (*pipeline.Service, func(), error) {
	db, err := registry.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { db.Close() }

	if err := registry.Migrate(db); err != nil {
		cleanup()
		return nil, nil, err
	}
	store := registry.NewStore(db)

	generators, err := newGeneratorRegistry()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	runner := pipeline.NewRunner(generators, store,
		pipeline.WithWorkers(cfg.Pipeline.Workers),
		pipeline.WithGeneratorTimeout(time.Duration(cfg.Pipeline.GeneratorTimeoutSeconds)*time.Second),
	)

	svc := pipeline.NewService(runner, store, theme)
	if err := svc.LoadComponents(cfg.Sources.ComponentsDir); err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := svc.LoadTokens(cfg.Sources.TokensDir); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
