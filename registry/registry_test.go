package registry

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismui/prism/a11y"
	"github.com/prismui/prism/artifact"
	"github.com/prismui/prism/errors"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	return NewStore(db)
}

func testArtifact(t *testing.T, component, platform, version, revision string) *artifact.Artifact {
	t.Helper()

	a, err := artifact.New(artifact.Key{
		Component:     component,
		Platform:      platform,
		CSMVersion:    version,
		TokenRevision: revision,
	}, platform, "1.0.0", "Button.tsx", "export function Button() {}")
	require.NoError(t, err)
	return a
}

func passedRecord(a *artifact.Artifact) *a11y.Record {
	return &a11y.Record{Key: a.Key, Status: a11y.StatusPassed}
}

func TestMigrateIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestAppendAndLookup(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := testArtifact(t, "button", "react", "1.2.0", "2026.08.0")
	id, err := s.Append(ctx, a, passedRecord(a))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	e, err := s.Lookup(ctx, "button", "react")
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, a.Key, e.Artifact.Key)
	assert.Equal(t, a.Checksum, e.Artifact.Checksum)
	assert.Equal(t, a11y.StatusPassed, e.Status)
	assert.False(t, e.Deprecated)
	assert.False(t, e.CreatedAt.IsZero())
	assert.True(t, e.Artifact.Verify())
}

func TestAppendConflict(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := testArtifact(t, "button", "react", "1.2.0", "2026.08.0")
	_, err := s.Append(ctx, a, passedRecord(a))
	require.NoError(t, err)

	// Same key, even with different source, must not overwrite
	dup, err := artifact.New(a.Key, "react", "1.0.1", "Button.tsx", "changed source")
	require.NoError(t, err)
	_, err = s.Append(ctx, dup, passedRecord(dup))
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	e, err := s.Lookup(ctx, "button", "react")
	require.NoError(t, err)
	assert.Equal(t, a.Checksum, e.Artifact.Checksum)
}

func TestLookupNewestValidated(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := testArtifact(t, "button", "react", "1.2.0", "2026.08.0")
	_, err := s.Append(ctx, first, passedRecord(first))
	require.NoError(t, err)

	second := testArtifact(t, "button", "react", "1.3.0", "2026.08.0")
	_, err = s.Append(ctx, second, passedRecord(second))
	require.NoError(t, err)

	// A failed artifact never resolves, however new
	failed := testArtifact(t, "button", "react", "1.4.0", "2026.08.0")
	_, err = s.Append(ctx, failed, &a11y.Record{
		Key:    failed.Key,
		Status: a11y.StatusFailed,
		Reasons: []a11y.Reason{
			{Rule: "min-height", Detail: "min-height 40<44"},
		},
	})
	require.NoError(t, err)

	e, err := s.Lookup(ctx, "button", "react")
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", e.Artifact.Key.CSMVersion)
}

func TestLookupNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Lookup(context.Background(), "button", "react")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestLookupVersionPins(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	old := testArtifact(t, "button", "react", "1.2.0", "2026.08.0")
	_, err := s.Append(ctx, old, passedRecord(old))
	require.NoError(t, err)

	current := testArtifact(t, "button", "react", "1.3.0", "2026.08.0")
	_, err = s.Append(ctx, current, passedRecord(current))
	require.NoError(t, err)

	e, err := s.LookupVersion(ctx, "button", "react", "1.2.0")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", e.Artifact.Key.CSMVersion)

	_, err = s.LookupVersion(ctx, "button", "react", "9.9.9")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDeprecate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := testArtifact(t, "button", "react", "1.2.0", "2026.08.0")
	_, err := s.Append(ctx, a, passedRecord(a))
	require.NoError(t, err)

	require.NoError(t, s.Deprecate(ctx, a.Key))

	// Unpinned lookup skips deprecated entries
	_, err = s.Lookup(ctx, "button", "react")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	// A pinned consumer still resolves
	e, err := s.LookupVersion(ctx, "button", "react", "1.2.0")
	require.NoError(t, err)
	assert.True(t, e.Deprecated)

	err = s.Deprecate(ctx, artifact.Key{
		Component: "card", Platform: "react", CSMVersion: "1.0.0", TokenRevision: "r1",
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	b := testArtifact(t, "button", "react", "1.2.0", "2026.08.0")
	_, err = s.Append(ctx, b, passedRecord(b))
	require.NoError(t, err)

	c := testArtifact(t, "card", "react", "1.0.0", "2026.08.0")
	_, err = s.Append(ctx, c, passedRecord(c))
	require.NoError(t, err)

	entries, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "button", entries[0].Artifact.Key.Component)
	assert.Equal(t, "card", entries[1].Artifact.Key.Component)
}

func TestValidationReasonsRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := testArtifact(t, "button", "react", "1.2.0", "2026.08.0")
	rec := &a11y.Record{
		Key:    a.Key,
		Status: a11y.StatusFailed,
		Reasons: []a11y.Reason{
			{Rule: "contrast", Detail: "color.primary.500 measures 3.1:1 against color.surface, AA requires 4.5:1"},
			{Rule: "min-height", Detail: "min-height 40<44"},
		},
	}
	_, err := s.Append(ctx, a, rec)
	require.NoError(t, err)

	e, err := s.LookupVersion(ctx, "button", "react", "1.2.0")
	require.NoError(t, err)
	assert.Equal(t, a11y.StatusFailed, e.Status)
	require.Len(t, e.Reasons, 2)
	assert.Equal(t, "contrast", e.Reasons[0].Rule)
	assert.Equal(t, "min-height 40<44", e.Reasons[1].Detail)
}

func TestAppendMapsDriverConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO artifacts").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectExec("INSERT INTO artifacts").
		WillReturnError(errors.New("UNIQUE constraint failed: artifacts.component"))

	s := NewStore(db)
	a := testArtifact(t, "button", "react", "1.2.0", "2026.08.0")

	_, err = s.Append(context.Background(), a, passedRecord(a))
	require.Error(t, err)
	assert.False(t, errors.IsConflictError(err))

	_, err = s.Append(context.Background(), a, passedRecord(a))
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	require.NoError(t, mock.ExpectationsWereMet())
}
