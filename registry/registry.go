// Package registry persists published artifacts in an append-only SQLite
// store.
//
// A registry key (component, platform, CSM version, token revision) is
// immutable: publishing the same key twice is a conflict, never an
// overwrite. New CSM versions or token revisions produce new rows, and
// deprecation is a flag rather than a delete, so a published artifact stays
// resolvable for as long as a consumer pins it.
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/prismui/prism/a11y"
	"github.com/prismui/prism/artifact"
	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/logger"
)

// Entry is one published artifact with its validation outcome
type Entry struct {
	ID         string            `json:"id"`
	Artifact   artifact.Artifact `json:"artifact"`
	Status     a11y.Status       `json:"status"`
	Reasons    []a11y.Reason     `json:"reasons,omitempty"`
	Deprecated bool              `json:"deprecated"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Store is the SQLite-backed artifact registry
type Store struct {
	db *sql.DB
}

// NewStore creates a registry store over an opened database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const entryColumns = `id, component, platform, csm_version, token_revision,
	generator_id, generator_version, filename, source, checksum,
	validation_status, validation_reasons, deprecated, created_at`

// Append publishes one artifact with its validation record. The key is
// immutable: a second append under the same key returns ErrRegistryConflict
// and leaves the existing row untouched.
func (s *Store) Append(ctx context.Context, a *artifact.Artifact, rec *a11y.Record) (string, error) {
	if err := a.Key.Validate(); err != nil {
		return "", err
	}

	reasons, err := json.Marshal(rec.Reasons)
	if err != nil {
		return "", errors.Wrap(err, "marshal validation reasons")
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO artifacts (
			id, component, platform, csm_version, token_revision,
			generator_id, generator_version, filename, source, checksum,
			validation_status, validation_reasons
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.Key.Component, a.Key.Platform, a.Key.CSMVersion, a.Key.TokenRevision,
		a.GeneratorID, a.GeneratorVersion, a.Filename, a.Source, a.Checksum,
		string(rec.Status), string(reasons),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", errors.Wrapf(errors.ErrRegistryConflict, "key %s", a.Key)
		}
		return "", errors.Wrapf(err, "append %s", a.Key)
	}

	logger.Infow("Artifact published",
		"key", a.Key.String(),
		"status", rec.Status,
		"checksum", a.Checksum,
	)
	return id, nil
}

// Lookup returns the newest validated, non-deprecated artifact for a
// (component, platform) pair
func (s *Store) Lookup(ctx context.Context, component, platform string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM artifacts
		WHERE component = ? AND platform = ?
		  AND deprecated = 0 AND validation_status = ?
		ORDER BY rowid DESC
		LIMIT 1`,
		component, platform, string(a11y.StatusPassed),
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(errors.ErrNotFound, "no validated artifact for %s/%s", component, platform)
	}
	return e, err
}

// LookupVersion returns the newest artifact pinned to an exact CSM version.
// Pinned lookups resolve deprecated entries too: deprecation steers new
// consumers, it never breaks an existing pin.
func (s *Store) LookupVersion(ctx context.Context, component, platform, csmVersion string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM artifacts
		WHERE component = ? AND platform = ? AND csm_version = ?
		ORDER BY rowid DESC
		LIMIT 1`,
		component, platform, csmVersion,
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(errors.ErrNotFound, "no artifact for %s@%s/%s", component, csmVersion, platform)
	}
	return e, err
}

// Deprecate flags every row under a key. The rows stay resolvable through
// LookupVersion.
func (s *Store) Deprecate(ctx context.Context, key artifact.Key) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE artifacts SET deprecated = 1
		WHERE component = ? AND platform = ? AND csm_version = ? AND token_revision = ?`,
		key.Component, key.Platform, key.CSMVersion, key.TokenRevision,
	)
	if err != nil {
		return errors.Wrapf(err, "deprecate %s", key)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "deprecate %s", key)
	}
	if n == 0 {
		return errors.Wrapf(errors.ErrNotFound, "key %s", key)
	}

	logger.Infow("Artifact deprecated", "key", key.String())
	return nil
}

// List returns every entry ordered by component then platform, newest first
// within a pair
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM artifacts
		ORDER BY component, platform, rowid DESC`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list artifacts")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e       Entry
		status  string
		reasons string
	)
	err := row.Scan(
		&e.ID,
		&e.Artifact.Key.Component, &e.Artifact.Key.Platform,
		&e.Artifact.Key.CSMVersion, &e.Artifact.Key.TokenRevision,
		&e.Artifact.GeneratorID, &e.Artifact.GeneratorVersion,
		&e.Artifact.Filename, &e.Artifact.Source, &e.Artifact.Checksum,
		&status, &reasons, &e.Deprecated, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = a11y.Status(status)
	if err := json.Unmarshal([]byte(reasons), &e.Reasons); err != nil {
		return nil, errors.Wrapf(err, "decode validation reasons for %s", e.ID)
	}
	return &e, nil
}

// isUniqueViolation detects the unique-index constraint error for the
// artifact key. The string fallback handles drivers that do not surface
// sqlite3.Error, such as test doubles.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
