package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/tokens"
)

const buttonYAML = `
id: button
version: 1.2.0
element: button
base: [inline-flex]
tokens:
  - color.primary.500
  - color.surface
props:
  - name: label
    type: string
    required: true
variants:
  - name: variant
    default: solid
    values:
      - name: solid
        styles: [bg-primary]
      - name: outline
        styles: [border-primary]
states:
  - name: disabled
    styles: [opacity-50]
accessibility:
  wcag_level: AA
  role: button
  attributes:
    - name: aria-label
  keyboard: [Enter, Space]
  contrast_token: color.primary.500
  min_target_size:
    height: 44dip
`

const tokensTOML = `
revision = "2026.08.0"
themes = ["light"]

[tokens."color.primary.500"]
type = "color"
values = { light = "#2563eb" }

[tokens."color.primary.500".contrast]
against = "color.surface"
ratio = 4.8

[tokens."color.surface"]
type = "color"
values = { light = "#ffffff" }
`

func testService(t *testing.T) *Service {
	t.Helper()

	componentsDir := t.TempDir()
	tokensDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(componentsDir, "button.yaml"), []byte(buttonYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tokensDir, "2026.08.0.toml"), []byte(tokensTOML), 0o644))

	store := testRegistry(t)
	svc := NewService(NewRunner(testGenerators(t), store), store, tokens.ThemeLight)
	require.NoError(t, svc.LoadComponents(componentsDir))
	require.NoError(t, svc.LoadTokens(tokensDir))
	return svc
}

func TestServiceLoadSources(t *testing.T) {
	svc := testService(t)

	assert.Equal(t, []string{"button"}, svc.Components())

	c, ok := svc.Component("button")
	require.True(t, ok)
	assert.Equal(t, "1.2.0", c.Version)

	set, err := svc.TokenSet("")
	require.NoError(t, err)
	assert.Equal(t, "2026.08.0", set.Revision())

	_, err = svc.TokenSet("1999.01.0")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestServiceGenerateAndLookup(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	ref, err := svc.Generate(ctx, "button", "react", "")
	require.NoError(t, err)
	assert.Equal(t, "Button.tsx", ref.Filename)
	assert.Equal(t, "button", ref.Key.Component)
	assert.Equal(t, "2026.08.0", ref.Key.TokenRevision)
	assert.NotEmpty(t, ref.Checksum)
	assert.NotEmpty(t, ref.EntryID)

	looked, err := svc.Lookup(ctx, "button", "react", "")
	require.NoError(t, err)
	assert.Equal(t, ref.EntryID, looked.EntryID)

	pinned, err := svc.Lookup(ctx, "button", "react", "1.2.0")
	require.NoError(t, err)
	assert.Equal(t, ref.Checksum, pinned.Checksum)

	entry, err := svc.Entry(ctx, ref)
	require.NoError(t, err)
	assert.True(t, entry.Artifact.Verify())
	assert.Contains(t, entry.Artifact.Source, "export function Button")
}

func TestServiceGenerateUnknownComponent(t *testing.T) {
	svc := testService(t)

	_, err := svc.Generate(context.Background(), "carousel", "react", "")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestServiceLookupUnpublished(t *testing.T) {
	svc := testService(t)

	_, err := svc.Lookup(context.Background(), "button", "react", "")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestServiceGenerateIsRepeatConflict(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "button", "react", "")
	require.NoError(t, err)

	// Same key regenerates byte-identically but cannot be republished
	_, err = svc.Generate(ctx, "button", "react", "")
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestServiceBatchRun(t *testing.T) {
	svc := testService(t)

	report, err := svc.Run(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Len(t, report.Results, 4)
	assert.Equal(t, 4, report.Succeeded())
}

func TestServiceRejectsRevisionReuse(t *testing.T) {
	svc := testService(t)

	dir := t.TempDir()
	changed := `
revision = "2026.08.0"
themes = ["light"]

[tokens."color.primary.500"]
type = "color"
values = { light = "#1d4ed8" }

[tokens."color.surface"]
type = "color"
values = { light = "#ffffff" }
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026.08.0.toml"), []byte(changed), 0o644))

	err := svc.LoadTokens(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "republished")
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()

	changes := make(chan []string, 4)
	w, err := NewWatcher(50*time.Millisecond, func(paths []string) {
		changes <- paths
	})
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// A save burst: several writes inside one debounce window
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "button.yaml"), []byte(buttonYAML), 0o644))
		time.Sleep(5 * time.Millisecond)
	}
	// Irrelevant extension is ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case paths := <-changes:
		require.Len(t, paths, 1)
		assert.Equal(t, "button.yaml", filepath.Base(paths[0]))
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the change batch")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
