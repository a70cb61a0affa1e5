package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docmind/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RuleStore = (*Store)(nil)

// Store is a SQLite-backed rule store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docmind/data/rules.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docmind", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "rules.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveBag stores the complete rule bag, replacing any previous one.
// The replacement is transactional.
func (s *Store) SaveBag(ctx context.Context, bag *domain.RuleBag) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rules"); err != nil {
		return fmt.Errorf("clearing rules: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM custom_categories"); err != nil {
		return fmt.Errorf("clearing custom categories: %w", err)
	}

	now := time.Now().UTC()
	for i := range bag.Rules {
		rule := &bag.Rules[i]

		patternsJSON, err := json.Marshal(rule.Patterns)
		if err != nil {
			return fmt.Errorf("marshalling patterns for rule %s: %w", rule.ID, err)
		}
		targetJSON, err := json.Marshal(rule.Target)
		if err != nil {
			return fmt.Errorf("marshalling target for rule %s: %w", rule.ID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO rules (id, name, version, enabled, patterns, target, confidence, priority, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rule.ID, rule.Name, rule.Version, rule.Enabled,
			string(patternsJSON), string(targetJSON), rule.Confidence, rule.Priority, now)
		if err != nil {
			return fmt.Errorf("saving rule %s: %w", rule.ID, err)
		}
	}

	for id, category := range bag.CustomCategories {
		categoryJSON, err := json.Marshal(category)
		if err != nil {
			return fmt.Errorf("marshalling custom category %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO custom_categories (id, category) VALUES (?, ?)", id, string(categoryJSON)); err != nil {
			return fmt.Errorf("saving custom category %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rule bag: %w", err)
	}
	return nil
}

// LoadBag retrieves the stored rule bag.
func (s *Store) LoadBag(ctx context.Context) (*domain.RuleBag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, version, enabled, patterns, target, confidence, priority
		FROM rules ORDER BY priority DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}
	defer rows.Close()

	bag := &domain.RuleBag{}
	for rows.Next() {
		var rule domain.CategoryRule
		var patternsJSON, targetJSON string
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Version, &rule.Enabled,
			&patternsJSON, &targetJSON, &rule.Confidence, &rule.Priority); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		if err := json.Unmarshal([]byte(patternsJSON), &rule.Patterns); err != nil {
			return nil, fmt.Errorf("unmarshaling patterns for rule %s: %w", rule.ID, err)
		}
		if err := json.Unmarshal([]byte(targetJSON), &rule.Target); err != nil {
			return nil, fmt.Errorf("unmarshaling target for rule %s: %w", rule.ID, err)
		}
		bag.Rules = append(bag.Rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rules: %w", err)
	}

	categoryRows, err := s.db.QueryContext(ctx, "SELECT id, category FROM custom_categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying custom categories: %w", err)
	}
	defer categoryRows.Close()

	for categoryRows.Next() {
		var id, categoryJSON string
		if err := categoryRows.Scan(&id, &categoryJSON); err != nil {
			return nil, fmt.Errorf("scanning custom category: %w", err)
		}
		var category domain.Category
		if err := json.Unmarshal([]byte(categoryJSON), &category); err != nil {
			return nil, fmt.Errorf("unmarshaling custom category %s: %w", id, err)
		}
		if bag.CustomCategories == nil {
			bag.CustomCategories = make(map[string]domain.Category)
		}
		bag.CustomCategories[id] = category
	}
	if err := categoryRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating custom categories: %w", err)
	}

	if len(bag.Rules) == 0 && len(bag.CustomCategories) == 0 {
		return nil, domain.ErrNotFound
	}
	return bag, nil
}
