package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"almanac-cli/internal/model"
)

const (
	dbFileName     = "db.json"
	sqliteFileName = "index.sqlite"
)

// DB is the in-memory workspace state: the drag-and-drop template library and
// the tasks visible on the calendar. SQLite is the on-disk source of truth;
// db.json is a one-time legacy import (see LoadSQLite).
type DB struct {
	Version   int                   `json:"version"`
	Templates []model.EventTemplate `json:"templates"`
	Tasks     []model.Task          `json:"tasks"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an .almanac directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".almanac")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".almanac"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

func (db *DB) FindTemplate(id string) (*model.EventTemplate, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Templates {
		if db.Templates[i].ID == id {
			return &db.Templates[i], true
		}
	}
	return nil, false
}

func (db *DB) FindTask(id string) (*model.Task, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

// TasksBetween returns tasks due in [start, end), both YYYY-MM-DD, sorted by
// date then time (date-only tasks sort before timed ones on the same day).
// Lexicographic comparison is correct for both wire formats.
func (db *DB) TasksBetween(start, end string) []model.Task {
	var out []model.Task
	for _, t := range db.Tasks {
		if t.Due == nil {
			continue
		}
		d := strings.TrimSpace(t.Due.Date)
		if d == "" || d < start || d >= end {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Due, out[j].Due
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		at, bt := "", ""
		if a.Time != nil {
			at = *a.Time
		}
		if b.Time != nil {
			bt = *b.Time
		}
		return at < bt
	})
	return out
}
