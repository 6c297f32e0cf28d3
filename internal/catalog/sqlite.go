package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/roomsim/internal/entity"
)

// Store persists prototype definitions in SQLite. It holds definitions only,
// never room state.
type Store struct {
	db *sql.DB
}

// Entry is a stored definition with its bookkeeping.
type Entry struct {
	Def
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("catalog: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("catalog: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS prototypes (
			name TEXT PRIMARY KEY,
			parent TEXT NOT NULL DEFAULT '',
			sprite TEXT NOT NULL DEFAULT '',
			mask TEXT NOT NULL DEFAULT '',
			depth REAL,
			visible INTEGER,
			behaviors TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_prototypes_parent ON prototypes(parent);

		CREATE TABLE IF NOT EXISTS prototype_defaults (
			prototype TEXT NOT NULL,
			key TEXT NOT NULL,
			kind TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (prototype, key)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save inserts or replaces a definition and its defaults.
func (s *Store) Save(d Def) error {
	return s.SaveAll([]Def{d})
}

// SaveAll saves definitions in one transaction.
func (s *Store) SaveAll(defs []Def) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("catalog: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, d := range defs {
		if d.Name == "" {
			return fmt.Errorf("catalog: cannot save a prototype without a name")
		}
		var depth sql.NullFloat64
		if d.Depth != nil {
			depth = sql.NullFloat64{Float64: *d.Depth, Valid: true}
		}
		var visible sql.NullBool
		if d.Visible != nil {
			visible = sql.NullBool{Bool: *d.Visible, Valid: true}
		}

		_, err := tx.Exec(
			`INSERT INTO prototypes (name, parent, sprite, mask, depth, visible, behaviors, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(name) DO UPDATE SET
			   parent = excluded.parent,
			   sprite = excluded.sprite,
			   mask = excluded.mask,
			   depth = excluded.depth,
			   visible = excluded.visible,
			   behaviors = excluded.behaviors,
			   updated_at = CURRENT_TIMESTAMP`,
			d.Name, d.Parent, d.Sprite, d.Mask, depth, visible, strings.Join(d.Behaviors, ","),
		)
		if err != nil {
			return fmt.Errorf("catalog: cannot save %q: %w", d.Name, err)
		}

		if _, err := tx.Exec("DELETE FROM prototype_defaults WHERE prototype = ?", d.Name); err != nil {
			return fmt.Errorf("catalog: cannot clear defaults of %q: %w", d.Name, err)
		}
		for key, lit := range d.Defaults {
			_, err := tx.Exec(
				"INSERT INTO prototype_defaults (prototype, key, kind, value) VALUES (?, ?, ?, ?)",
				d.Name, key, lit.Kind.String(), lit.Text,
			)
			if err != nil {
				return fmt.Errorf("catalog: cannot save default %q of %q: %w", key, d.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog: cannot commit: %w", err)
	}
	return nil
}

// Get retrieves a definition by name. It returns nil if none is stored.
func (s *Store) Get(name string) (*Entry, error) {
	entries, err := s.query("WHERE name = ?", name)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// List retrieves every stored definition ordered by name.
func (s *Store) List() ([]Entry, error) {
	return s.query("")
}

// Defs returns every stored definition, ready to install.
func (s *Store) Defs() ([]Def, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	defs := make([]Def, len(entries))
	for i, e := range entries {
		defs[i] = e.Def
	}
	return defs, nil
}

// Delete removes a definition and its defaults.
func (s *Store) Delete(name string) error {
	if _, err := s.db.Exec("DELETE FROM prototype_defaults WHERE prototype = ?", name); err != nil {
		return fmt.Errorf("catalog: cannot delete defaults of %q: %w", name, err)
	}
	if _, err := s.db.Exec("DELETE FROM prototypes WHERE name = ?", name); err != nil {
		return fmt.Errorf("catalog: cannot delete %q: %w", name, err)
	}
	return nil
}

func (s *Store) query(where string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT name, parent, sprite, mask, depth, visible, behaviors, updated_at
		 FROM prototypes `+where+`
		 ORDER BY name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot query prototypes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var depth sql.NullFloat64
		var visible sql.NullBool
		var behaviors string
		var updatedAt any
		if err := rows.Scan(&e.Name, &e.Parent, &e.Sprite, &e.Mask, &depth, &visible, &behaviors, &updatedAt); err != nil {
			return nil, fmt.Errorf("catalog: cannot scan row: %w", err)
		}
		if depth.Valid {
			e.Depth = &depth.Float64
		}
		if visible.Valid {
			e.Visible = &visible.Bool
		}
		if behaviors != "" {
			e.Behaviors = strings.Split(behaviors, ",")
		}

		// Parse the datetime - handle both time.Time and string
		switch v := updatedAt.(type) {
		case time.Time:
			e.UpdatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.UpdatedAt = parsed
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: row iteration error: %w", err)
	}
	rows.Close()

	for i := range entries {
		defaults, err := s.defaults(entries[i].Name)
		if err != nil {
			return nil, err
		}
		entries[i].Defaults = defaults
	}
	return entries, nil
}

func (s *Store) defaults(name string) (map[string]Literal, error) {
	rows, err := s.db.Query(
		"SELECT key, kind, value FROM prototype_defaults WHERE prototype = ? ORDER BY key",
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot query defaults of %q: %w", name, err)
	}
	defer rows.Close()

	var out map[string]Literal
	for rows.Next() {
		var key, kind, value string
		if err := rows.Scan(&key, &kind, &value); err != nil {
			return nil, fmt.Errorf("catalog: cannot scan default: %w", err)
		}
		k, ok := parseKind(kind)
		if !ok {
			return nil, fmt.Errorf("catalog: default %q of %q has unknown kind %q", key, name, kind)
		}
		if out == nil {
			out = make(map[string]Literal)
		}
		out[key] = Literal{Kind: k, Text: value}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: row iteration error: %w", err)
	}
	return out, nil
}

func parseKind(s string) (entity.Kind, bool) {
	for _, k := range []entity.Kind{entity.KindReal, entity.KindInt, entity.KindBool, entity.KindString, entity.KindRef} {
		if k.String() == s {
			return k, true
		}
	}
	return entity.KindNone, false
}

// Names returns the stored prototype names, sorted.
func (s *Store) Names() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM prototypes")
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot query names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("catalog: cannot scan name: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: row iteration error: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
