// Package pipeline orchestrates concurrent component generation.
//
// A run fans out one task per (component, platform) pair over a worker pool.
// Within one component the resolver is compiled and the token bindings are
// transformed before any generator task starts, so workers share immutable
// inputs and need no locks. Registry appends serialize through a single
// writer; cancellation is honored between appends, never during one, so the
// store never holds a half-written row.
//
// One task's failure never aborts its siblings: the report attributes every
// outcome to its (component, platform) pair.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prismui/prism/a11y"
	"github.com/prismui/prism/artifact"
	"github.com/prismui/prism/csm"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/generate"
	"github.com/prismui/prism/logger"
	"github.com/prismui/prism/registry"
	"github.com/prismui/prism/tokens"
	"github.com/prismui/prism/tokens/transform"
	"github.com/prismui/prism/variant"
)

// Request describes one generation run
type Request struct {
	// Set is the token revision to generate against
	Set *tokens.Set

	// Theme selects the theme variant of the token binding
	Theme tokens.Theme

	// Components are the specifications to generate
	Components []*csm.CSM

	// Platforms restricts the run to a subset of registered targets.
	// Empty means every registered platform.
	Platforms []generate.PlatformID
}

// TaskResult is the attributed outcome of one (component, platform) task
type TaskResult struct {
	Component string              `json:"component"`
	Platform  generate.PlatformID `json:"platform"`
	Key       *artifact.Key       `json:"key,omitempty"`
	EntryID   string              `json:"entry_id,omitempty"`
	Status    a11y.Status         `json:"status,omitempty"`
	Err       error               `json:"-"`
	Duration  time.Duration       `json:"duration"`
}

// Report aggregates a run's outcomes
type Report struct {
	Results []TaskResult  `json:"results"`
	Elapsed time.Duration `json:"elapsed"`
}

// Succeeded counts tasks that published a validated artifact
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failures returns the failed results
func (r *Report) Failures() []TaskResult {
	var out []TaskResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Summary renders the attributed one-line outcome:
// "generated for 8 of 9 targets; button/rnative failed: ..."
func (r *Report) Summary() string {
	total := len(r.Results)
	ok := r.Succeeded()
	if ok == total {
		return fmt.Sprintf("generated for %d of %d targets", ok, total)
	}
	parts := make([]string, 0, total-ok)
	for _, f := range r.Failures() {
		parts = append(parts, fmt.Sprintf("%s/%s failed: %v", f.Component, f.Platform, f.Err))
	}
	return fmt.Sprintf("generated for %d of %d targets; %s", ok, total, strings.Join(parts, "; "))
}

// Runner executes generation runs against a generator registry and an
// artifact store
type Runner struct {
	generators *generate.Registry
	validator  *a11y.Validator
	store      *registry.Store
	cache      *transform.Cache

	workers          int
	generatorTimeout time.Duration
}

// Option configures a Runner
type Option func(*Runner)

// WithWorkers sets the worker pool size
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithGeneratorTimeout sets the per-generator invocation budget
func WithGeneratorTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.generatorTimeout = d
		}
	}
}

// NewRunner creates a pipeline runner. The store may be nil for dry runs
// that only generate and validate.
func NewRunner(generators *generate.Registry, store *registry.Store, opts ...Option) *Runner {
	r := &Runner{
		generators:       generators,
		validator:        a11y.New(),
		store:            store,
		cache:            transform.NewCache(),
		workers:          4,
		generatorTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// task is one unit of pool work, carrying the component's precomputed inputs
type task struct {
	c        *csm.CSM
	platform generate.PlatformID
	gen      generate.Generator
	resolver *variant.Resolver
	binding  *transform.Binding
}

// outcome is what a worker hands to the single writer
type outcome struct {
	result   TaskResult
	artifact *artifact.Artifact
	record   *a11y.Record
}

// Run executes one generation run and reports every task's outcome. The
// returned error is reserved for run-level failures (an empty platform
// selection, an undeclared theme); per-task failures live in the report.
func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	started := time.Now()

	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = r.generators.List()
	}
	if len(platforms) == 0 {
		return nil, errors.New("no platform generators registered")
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })

	if warning := memoryPressureWarning(r.workers); warning != "" {
		logger.Warnw("Memory pressure before run", "warning", warning, "workers", r.workers)
	}

	report := &Report{}
	var tasks []task

	// Per component: compile the resolver and transform every binding kind
	// the selected generators consume before any generator task starts.
	for _, c := range req.Components {
		resolver, bindings, err := r.prepare(c, req.Set, req.Theme, platforms)
		if err != nil {
			for _, p := range platforms {
				report.Results = append(report.Results, TaskResult{
					Component: c.ID,
					Platform:  p,
					Err:       err,
				})
			}
			continue
		}
		for _, p := range platforms {
			gen, ok := r.generators.Get(p)
			if !ok {
				report.Results = append(report.Results, TaskResult{
					Component: c.ID,
					Platform:  p,
					Err:       errors.Newf("platform %q not registered", p),
				})
				continue
			}
			tasks = append(tasks, task{
				c:        c,
				platform: p,
				gen:      gen,
				resolver: resolver,
				binding:  bindings[gen.Metadata().BindingKind],
			})
		}
	}

	outcomes := make(chan outcome, len(tasks))
	taskCh := make(chan task)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskCh {
				outcomes <- r.runTask(ctx, t)
			}
		}()
	}

	go func() {
		defer close(taskCh)
		for _, t := range tasks {
			select {
			case taskCh <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	// Single writer: registry appends happen here and nowhere else.
	for o := range outcomes {
		if o.record != nil && o.record.Status == a11y.StatusPassed && r.store != nil {
			if ctx.Err() != nil {
				o.result.Err = ctx.Err()
			} else {
				// The append itself runs to completion even if the run is
				// cancelled mid-write.
				id, err := r.store.Append(context.WithoutCancel(ctx), o.artifact, o.record)
				if err != nil {
					o.result.Err = err
				} else {
					o.result.EntryID = id
				}
			}
		}
		report.Results = append(report.Results, o.result)
	}

	sort.Slice(report.Results, func(i, j int) bool {
		if report.Results[i].Component != report.Results[j].Component {
			return report.Results[i].Component < report.Results[j].Component
		}
		return report.Results[i].Platform < report.Results[j].Platform
	})

	report.Elapsed = time.Since(started)
	logger.Infow("Run complete",
		"tasks", len(report.Results),
		"succeeded", report.Succeeded(),
		"elapsed", report.Elapsed,
	)
	return report, nil
}

// prepare compiles the component's resolver and transforms one binding per
// kind consumed by the selected platforms
func (r *Runner) prepare(c *csm.CSM, set *tokens.Set, theme tokens.Theme, platforms []generate.PlatformID) (*variant.Resolver, map[transform.Kind]*transform.Binding, error) {
	resolver, err := variant.Compile(c)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "compile %s", c.ID)
	}

	bindings := make(map[transform.Kind]*transform.Binding)
	for _, p := range platforms {
		gen, ok := r.generators.Get(p)
		if !ok {
			continue
		}
		kind := gen.Metadata().BindingKind
		if _, done := bindings[kind]; done {
			continue
		}
		b, err := r.cache.Get(set, kind, theme)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "transform %s for %s", set.Revision(), kind)
		}
		bindings[kind] = b
	}
	return resolver, bindings, nil
}

// runTask generates and validates one (component, platform) pair
func (r *Runner) runTask(ctx context.Context, t task) outcome {
	started := time.Now()
	res := TaskResult{Component: t.c.ID, Platform: t.platform}

	a, err := r.invoke(ctx, t)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(started)
		logger.Errorw("Task failed",
			"component", t.c.ID,
			"platform", t.platform,
			"error", err,
		)
		return outcome{result: res}
	}
	res.Key = &a.Key

	rec := r.validator.Validate(a, t.c, t.binding)
	res.Status = rec.Status
	res.Duration = time.Since(started)

	if rec.Failed() {
		details := make([]string, len(rec.Reasons))
		for i, reason := range rec.Reasons {
			details[i] = reason.String()
		}
		res.Err = errors.Wrapf(errors.ErrValidationFailed, "%s", strings.Join(details, "; "))
		logger.Warnw("Validation failed",
			"key", a.Key.String(),
			"reasons", details,
		)
		return outcome{result: res}
	}

	return outcome{result: res, artifact: a, record: rec}
}

// invoke runs the generator under its per-invocation budget
func (r *Runner) invoke(ctx context.Context, t task) (*artifact.Artifact, error) {
	tctx, cancel := context.WithTimeout(ctx, r.generatorTimeout)
	defer cancel()

	type generated struct {
		a   *artifact.Artifact
		err error
	}
	done := make(chan generated, 1)
	go func() {
		a, err := t.gen.Generate(t.c, t.resolver, t.binding)
		done <- generated{a, err}
	}()

	select {
	case g := <-done:
		return g.a, g.err
	case <-tctx.Done():
		if errors.Is(tctx.Err(), context.DeadlineExceeded) {
			return nil, errors.NewGeneratorTimeoutError(string(t.platform), r.generatorTimeout.String())
		}
		return nil, tctx.Err()
	}
}
