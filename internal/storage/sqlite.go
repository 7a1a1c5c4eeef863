package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/pouch/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage and TagRegistry using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the applied migration version.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}
	if version >= currentSchemaVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			parent_id TEXT,
			FOREIGN KEY (parent_id) REFERENCES folders(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_folders_parent_id ON folders(parent_id);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			folder_id TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			visited_at TEXT,
			FOREIGN KEY (folder_id) REFERENCES folders(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_folder_id ON bookmarks(folder_id);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_created_at ON bookmarks(created_at);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the description column.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE bookmarks ADD COLUMN description TEXT NOT NULL DEFAULT '';
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the store from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	store := model.NewStore()

	rows, err := s.db.Query(`
		SELECT id, name, parent_id
		FROM folders
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var f model.Folder
		var parentID sql.NullString

		if err := rows.Scan(&f.ID, &f.Name, &parentID); err != nil {
			return nil, err
		}
		if parentID.Valid {
			f.ParentID = &parentID.String
		}

		store.Folders = append(store.Folders, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, title, url, description, folder_id, tags, created_at, visited_at
		FROM bookmarks
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bookmark
		var folderID sql.NullString
		var tagsJSON string
		var createdAtStr string
		var visitedAtStr sql.NullString

		if err := rows.Scan(
			&b.ID, &b.Title, &b.URL, &b.Description, &folderID,
			&tagsJSON, &createdAtStr, &visitedAtStr,
		); err != nil {
			return nil, err
		}

		if folderID.Valid {
			b.FolderID = &folderID.String
		}

		if err := json.Unmarshal([]byte(tagsJSON), &b.Tags); err != nil || b.Tags == nil {
			b.Tags = []string{}
		}

		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)

		if visitedAtStr.Valid {
			t, err := time.Parse(time.RFC3339, visitedAtStr.String)
			if err == nil {
				b.VisitedAt = &t
			}
		}

		store.Bookmarks = append(store.Bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// Save writes the store to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(store *model.Store) error {
	// Folders may reference parents that haven't been inserted yet.
	// PRAGMA foreign_keys cannot be changed inside a transaction.
	if _, err := s.db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return err
	}
	defer func() { _, _ = s.db.Exec("PRAGMA foreign_keys = ON") }()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM folders"); err != nil {
		return err
	}

	folderStmt, err := tx.Prepare(`
		INSERT INTO folders (id, name, parent_id)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer folderStmt.Close()

	for _, f := range store.Folders {
		if _, err := folderStmt.Exec(f.ID, f.Name, f.ParentID); err != nil {
			return fmt.Errorf("insert folder %s: %w", f.ID, err)
		}
	}

	bookmarkStmt, err := tx.Prepare(`
		INSERT INTO bookmarks (id, title, url, description, folder_id, tags, created_at, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer bookmarkStmt.Close()

	for _, b := range store.Bookmarks {
		tags := b.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return err
		}
		createdAt := b.CreatedAt.Format(time.RFC3339)

		var visitedAt *string
		if b.VisitedAt != nil {
			v := b.VisitedAt.Format(time.RFC3339)
			visitedAt = &v
		}

		if _, err := bookmarkStmt.Exec(
			b.ID, b.Title, b.URL, b.Description, b.FolderID,
			string(tagsJSON), createdAt, visitedAt,
		); err != nil {
			return fmt.Errorf("insert bookmark %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

// TagCounts returns bookmarks per tag, ordered by name. Tags are lowercased
// and trimmed; a tag repeated on one bookmark counts once.
func (s *SQLiteStorage) TagCounts() ([]model.TagCount, error) {
	rows, err := s.db.Query(`
		SELECT lower(trim(j.value)) AS name, COUNT(DISTINCT b.id)
		FROM bookmarks b, json_each(b.tags) j
		WHERE trim(j.value) != ''
		GROUP BY name
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("count tags: %w", err)
	}
	defer rows.Close()

	counts := []model.TagCount{}
	for rows.Next() {
		var tc model.TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// TagNames returns every distinct tag, ordered by name.
func (s *SQLiteStorage) TagNames() ([]string, error) {
	counts, err := s.TagCounts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = c.Name
	}
	return names, nil
}
