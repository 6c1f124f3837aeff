package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"momentum-cli/internal/model"

	_ "modernc.org/sqlite"
)

const localDBName = "local.sqlite"

// Local is the SQLite store for data that is local-only by design: the
// settings profile and the per-day reflections. Everything else lives on the
// backend.
type Local struct {
	db *sql.DB
}

// OpenLocal opens (creating if needed) the local store under the config dir.
func OpenLocal(ctx context.Context) (*Local, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return OpenLocalAt(ctx, filepath.Join(dir, localDBName))
}

// OpenLocalAt opens the local store at an explicit path (tests).
func OpenLocalAt(ctx context.Context, path string) (*Local, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// busy_timeout avoids "database is locked" flakiness if two commands race.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateLocal(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Local{db: db}, nil
}

func migrateLocal(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			name TEXT NOT NULL DEFAULT '',
			occupation TEXT NOT NULL DEFAULT '',
			about TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS reflections (
			date TEXT PRIMARY KEY,
			analysis TEXT NOT NULL DEFAULT '',
			satisfaction INTEGER NOT NULL DEFAULT 0,
			productivity INTEGER NOT NULL DEFAULT 0,
			mood INTEGER NOT NULL DEFAULT 0
		);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (l *Local) Close() error { return l.db.Close() }

// Profile returns the stored profile, or a zero profile when none was saved.
func (l *Local) Profile(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	row := l.db.QueryRowContext(ctx, `SELECT name, occupation, about FROM profile WHERE id = 1`)
	if err := row.Scan(&p.Name, &p.Occupation, &p.About); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Profile{}, nil
		}
		return model.Profile{}, err
	}
	return p, nil
}

func (l *Local) SaveProfile(ctx context.Context, p model.Profile) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO profile (id, name, occupation, about) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, occupation=excluded.occupation, about=excluded.about`,
		p.Name, p.Occupation, p.About)
	return err
}

// Reflection returns the reflection for a date, or a zero reflection for that
// date when none was saved (ratings 0 = not filled).
func (l *Local) Reflection(ctx context.Context, date string) (model.Reflection, error) {
	r := model.Reflection{Date: date}
	row := l.db.QueryRowContext(ctx,
		`SELECT analysis, satisfaction, productivity, mood FROM reflections WHERE date = ?`, date)
	if err := row.Scan(&r.Analysis, &r.Satisfaction, &r.Productivity, &r.Mood); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reflection{Date: date}, nil
		}
		return model.Reflection{}, err
	}
	return r, nil
}

func (l *Local) SaveReflection(ctx context.Context, r model.Reflection) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO reflections (date, analysis, satisfaction, productivity, mood) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET analysis=excluded.analysis, satisfaction=excluded.satisfaction,
		 productivity=excluded.productivity, mood=excluded.mood`,
		r.Date, r.Analysis, r.Satisfaction, r.Productivity, r.Mood)
	return err
}
