package settings

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/holeframe/internal/errors"
)

// Store loads and saves records by document title.
type Store interface {
	// Load returns the record of a document, or Defaults and found=false
	// when the document has none.
	Load(title string) (rec Record, found bool, err error)
	Save(title string, rec Record) error
}

// FileSuffix is appended to the document title to name its settings file.
const FileSuffix = "_HoleFraming.toml"

// FileStore keeps one TOML file per document in Dir.
type FileStore struct {
	Dir string
}

// Path returns the settings file of a document.
func (s FileStore) Path(title string) string {
	return filepath.Join(s.Dir, safeTitle(title)+FileSuffix)
}

// Load implements Store.
func (s FileStore) Load(title string) (Record, bool, error) {
	data, err := os.ReadFile(s.Path(title))
	if stderrors.Is(err, os.ErrNotExist) {
		return Defaults(), false, nil
	}
	if err != nil {
		return Record{}, false, errors.Wrap(errors.ErrCodeConfiguration, err, "read settings of %q", title)
	}
	rec, err := decode(string(data))
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Save implements Store.
func (s FileStore) Save(title string, rec Record) error {
	data, err := toml.Marshal(rec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "encode settings")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "create settings directory")
	}
	if err := os.WriteFile(s.Path(title), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "write settings of %q", title)
	}
	return nil
}

// decode reads a TOML record. Keys absent from the document keep their
// default value; unknown keys are rejected.
func decode(doc string) (Record, error) {
	rec := Defaults()
	md, err := toml.Decode(doc, &rec)
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeConfiguration, err, "parse settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Record{}, errors.New(errors.ErrCodeConfiguration, "unknown settings key %s", undecoded[0])
	}
	return rec, nil
}

// safeTitle turns a document title into a file name. Characters that
// cannot appear in a file name, '%' itself, and a leading or trailing
// space or trailing dot are written as %XX, so distinct titles never share
// a file.
func safeTitle(title string) string {
	var sb strings.Builder
	last := len(title) - 1
	for i := 0; i < len(title); i++ {
		c := title[i]
		escape := c < 0x20 || c == 0x7f || strings.IndexByte(`%/\:*?"<>|`, c) >= 0 ||
			(c == ' ' && (i == 0 || i == last)) || (c == '.' && i == last)
		if escape {
			fmt.Fprintf(&sb, "%%%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// SQLiteStore keeps every document's record as a row of a sqlite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenSQLite opens (creating if needed) a settings database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "open settings database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "open settings database")
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "configure settings database")
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS hole_framing (
		title TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.db.Exec(schema); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "create settings table")
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(title string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var body string
	err := s.db.QueryRow("SELECT body FROM hole_framing WHERE title = ?", title).Scan(&body)
	if stderrors.Is(err, sql.ErrNoRows) {
		return Defaults(), false, nil
	}
	if err != nil {
		return Record{}, false, errors.Wrap(errors.ErrCodeConfiguration, err, "read settings of %q", title)
	}
	rec, err := decode(body)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(title string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(rec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "encode settings")
	}
	_, err = s.db.Exec(
		`INSERT INTO hole_framing (title, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		title, string(data), time.Now().UTC(),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "write settings of %q", title)
	}
	return nil
}

// Titles returns the documents that have a stored record.
func (s *SQLiteStore) Titles() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT title FROM hole_framing ORDER BY title")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "list settings")
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "list settings")
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
