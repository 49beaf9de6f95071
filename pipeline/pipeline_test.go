package pipeline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/prismui/prism/artifact"
	"github.com/prismui/prism/csm"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/generate"
	"github.com/prismui/prism/generate/react"
	"github.com/prismui/prism/generate/rnative"
	"github.com/prismui/prism/generate/vue"
	"github.com/prismui/prism/generate/webc"
	"github.com/prismui/prism/registry"
	"github.com/prismui/prism/tokens"
	"github.com/prismui/prism/tokens/transform"
	"github.com/prismui/prism/variant"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testSet(t *testing.T, ratio float64) *tokens.Set {
	t.Helper()

	set, err := tokens.New("2026.08.0", []tokens.Theme{tokens.ThemeLight}, []tokens.Token{
		{
			Name:     "color.primary.500",
			Type:     tokens.TypeColor,
			Values:   map[tokens.Theme]string{tokens.ThemeLight: "#2563eb"},
			Contrast: &tokens.ContrastHint{Against: "color.surface", Ratio: ratio},
		},
		{
			Name:   "color.surface",
			Type:   tokens.TypeColor,
			Values: map[tokens.Theme]string{tokens.ThemeLight: "#ffffff"},
		},
		{
			Name:   "size.control.md",
			Type:   tokens.TypeLength,
			Values: map[tokens.Theme]string{tokens.ThemeLight: "3rem"},
		},
	})
	require.NoError(t, err)
	return set
}

func testGenerators(t *testing.T) *generate.Registry {
	t.Helper()

	r := generate.NewRegistry("1.0.0")
	require.NoError(t, r.Register(react.New()))
	require.NoError(t, r.Register(vue.New()))
	require.NoError(t, r.Register(webc.New()))
	require.NoError(t, r.Register(rnative.New()))
	return r
}

func testRegistry(t *testing.T) *registry.Store {
	t.Helper()

	db, err := registry.Open(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, registry.Migrate(db))
	return registry.NewStore(db)
}

func TestRunAllPlatforms(t *testing.T) {
	store := testRegistry(t)
	runner := NewRunner(testGenerators(t), store, WithWorkers(2))

	report, err := runner.Run(context.Background(), Request{
		Set:        testSet(t, 4.6),
		Theme:      tokens.ThemeLight,
		Components: []*csm.CSM{csm.ButtonFixture()},
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	assert.Equal(t, 4, report.Succeeded())
	assert.Equal(t, "generated for 4 of 4 targets", report.Summary())

	// Results are attributed and ordered
	platforms := make([]generate.PlatformID, len(report.Results))
	for i, res := range report.Results {
		platforms[i] = res.Platform
		assert.Equal(t, "button", res.Component)
		assert.NotEmpty(t, res.EntryID)
	}
	assert.Equal(t, []generate.PlatformID{"react", "rnative", "vue", "webc"}, platforms)

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestRunAttributesFailures(t *testing.T) {
	store := testRegistry(t)
	runner := NewRunner(testGenerators(t), store)

	bad := csm.ButtonFixture()
	bad.ID = "badge"
	bad.TokenRefs = append(bad.TokenRefs, "color.accent")

	report, err := runner.Run(context.Background(), Request{
		Set:        testSet(t, 4.6),
		Theme:      tokens.ThemeLight,
		Components: []*csm.CSM{bad, csm.ButtonFixture()},
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 8)
	assert.Equal(t, 4, report.Succeeded())

	summary := report.Summary()
	assert.Contains(t, summary, "generated for 4 of 8 targets")
	assert.Contains(t, summary, "badge/react failed")
	assert.Contains(t, summary, "color.accent")

	for _, f := range report.Failures() {
		assert.Equal(t, "badge", f.Component)
		assert.True(t, errors.IsMissingTokenError(f.Err))
	}

	// Sibling tasks were unaffected
	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestRunValidationGate(t *testing.T) {
	store := testRegistry(t)
	runner := NewRunner(testGenerators(t), store)

	report, err := runner.Run(context.Background(), Request{
		Set:        testSet(t, 3.1),
		Theme:      tokens.ThemeLight,
		Components: []*csm.CSM{csm.ButtonFixture()},
		Platforms:  []generate.PlatformID{"react"},
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	require.Error(t, res.Err)
	assert.True(t, errors.IsValidationError(res.Err))
	assert.Contains(t, res.Err.Error(), "contrast")

	// Failed artifacts never reach the registry
	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunUndeclaredTheme(t *testing.T) {
	runner := NewRunner(testGenerators(t), testRegistry(t))

	report, err := runner.Run(context.Background(), Request{
		Set:        testSet(t, 4.6),
		Theme:      tokens.ThemeDark,
		Components: []*csm.CSM{csm.ButtonFixture()},
	})
	require.NoError(t, err)

	// Binding transformation fails per component, attributed to every task
	require.Len(t, report.Results, 4)
	assert.Zero(t, report.Succeeded())
}

func TestRunNoGenerators(t *testing.T) {
	runner := NewRunner(generate.NewRegistry("1.0.0"), testRegistry(t))

	_, err := runner.Run(context.Background(), Request{
		Set:        testSet(t, 4.6),
		Theme:      tokens.ThemeLight,
		Components: []*csm.CSM{csm.ButtonFixture()},
	})
	require.Error(t, err)
}

func TestRunCancelledBeforeAppend(t *testing.T) {
	store := testRegistry(t)
	runner := NewRunner(testGenerators(t), store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := runner.Run(ctx, Request{
		Set:        testSet(t, 4.6),
		Theme:      tokens.ThemeLight,
		Components: []*csm.CSM{csm.ButtonFixture()},
	})
	require.NoError(t, err)
	assert.Zero(t, report.Succeeded())

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// slowGenerator blocks long enough to trip the invocation budget
type slowGenerator struct {
	delay time.Duration
}

func (s *slowGenerator) Metadata() generate.Metadata {
	return generate.Metadata{
		Platform:    "slow",
		Version:     "1.0.0",
		BindingKind: transform.KindCascading,
	}
}

func (s *slowGenerator) Generate(c *csm.CSM, r *variant.Resolver, b *transform.Binding) (*artifact.Artifact, error) {
	time.Sleep(s.delay)
	return artifact.New(artifact.Key{
		Component:     c.ID,
		Platform:      "slow",
		CSMVersion:    c.Version,
		TokenRevision: b.Revision(),
	}, "slow", "1.0.0", "out.txt", "done")
}

func TestRunGeneratorTimeout(t *testing.T) {
	reg := generate.NewRegistry("1.0.0")
	require.NoError(t, reg.Register(&slowGenerator{delay: 200 * time.Millisecond}))

	runner := NewRunner(reg, testRegistry(t), WithGeneratorTimeout(20*time.Millisecond))

	report, err := runner.Run(context.Background(), Request{
		Set:        testSet(t, 4.6),
		Theme:      tokens.ThemeLight,
		Components: []*csm.CSM{csm.ButtonFixture()},
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, errors.ErrGeneratorTimeout))

	// Let the abandoned generator goroutine finish before goleak checks
	time.Sleep(250 * time.Millisecond)
}

func TestReportSummaryAllPassed(t *testing.T) {
	r := &Report{Results: []TaskResult{
		{Component: "button", Platform: "react"},
		{Component: "button", Platform: "vue"},
	}}
	assert.Equal(t, "generated for 2 of 2 targets", r.Summary())
}
