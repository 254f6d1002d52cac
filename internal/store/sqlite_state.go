package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"almanac-cli/internal/model"
)

// LoadSQLite loads workspace state from .almanac/index.sqlite. If the SQLite
// state is empty but a legacy db.json exists, it imports db.json into SQLite
// once and then loads from SQLite.
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	hasState, err := sqliteStateHasAnyRows(ctx, db)
	if err != nil {
		return nil, err
	}
	if !hasState {
		if b, err := os.ReadFile(s.dbPath()); err == nil && len(b) > 0 {
			var legacy DB
			if err := json.Unmarshal(b, &legacy); err != nil {
				return nil, fmt.Errorf("legacy db.json: %w", err)
			}
			if legacy.Version == 0 {
				legacy.Version = 1
			}
			if err := s.SaveSQLite(ctx, &legacy); err != nil {
				return nil, err
			}
		}
	}

	return loadStateFromSQLite(ctx, db)
}

func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(st.Version)); err != nil {
		return err
	}

	// Replace-all strategy (simple + safe for the data sizes involved).
	for _, t := range []string{"templates", "tasks"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, tpl := range st.Templates {
		raw, _ := json.Marshal(tpl)
		if _, err := tx.ExecContext(ctx, `INSERT INTO templates(id, title, variant, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			tpl.ID, tpl.Title, strings.TrimSpace(tpl.Variant), string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, tk := range st.Tasks {
		raw, _ := json.Marshal(tk)
		dueDate := ""
		if tk.Due != nil {
			dueDate = strings.TrimSpace(tk.Due.Date)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(id, title, due_date, template_id, flagged, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			tk.ID, tk.Title, dueDate, strings.TrimSpace(tk.TemplateID), boolToInt(tk.Flagged), string(raw), nowMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage: WAL enables one writer + many
	// readers; busy_timeout avoids "database is locked" flakiness.
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
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			variant TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			due_date TEXT NOT NULL,
			template_id TEXT NOT NULL,
			flagged INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_date);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_template ON tasks(template_id);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func sqliteStateHasAnyRows(ctx context.Context, db *sql.DB) (bool, error) {
	for _, q := range []string{`SELECT COUNT(1) FROM templates`, `SELECT COUNT(1) FROM tasks`} {
		var n int
		if err := db.QueryRowContext(ctx, q).Scan(&n); err != nil {
			// If tables don't exist yet, treat as empty.
			return false, nil
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*DB, error) {
	out := &DB{Version: 1}

	var rawVersion string
	_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, "version").Scan(&rawVersion)
	if n, err := strconv.Atoi(strings.TrimSpace(rawVersion)); err == nil && n > 0 {
		out.Version = n
	}

	if xs, err := readJSONRows[model.EventTemplate](ctx, db, `SELECT json FROM templates ORDER BY title, id`); err == nil {
		out.Templates = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Task](ctx, db, `SELECT json FROM tasks ORDER BY due_date, id`); err == nil {
		out.Tasks = xs
	} else {
		return nil, err
	}

	// Ensure nil slices are empty for stable callers.
	if out.Templates == nil {
		out.Templates = []model.EventTemplate{}
	}
	if out.Tasks == nil {
		out.Tasks = []model.Task{}
	}

	return out, nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
