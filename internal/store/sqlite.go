package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"pinboard-cli/internal/board"
	"pinboard-cli/internal/ids"
	"pinboard-cli/internal/model"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness with the web server and TUI open at
	// the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS boards (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			tag_ids TEXT NOT NULL DEFAULT '[]',
			category_ids TEXT NOT NULL DEFAULT '[]',
			state TEXT NOT NULL DEFAULT '{}',
			is_primary INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			board_id TEXT NOT NULL,
			name TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_board ON snapshots(board_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS board_labels (
			id TEXT PRIMARY KEY,
			board_id TEXT NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS board_groups (
			id TEXT PRIMARY KEY,
			board_id TEXT NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func unmarshalStrings(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func scanBoard(row interface{ Scan(...any) error }) (model.Board, error) {
	var (
		b                         model.Board
		tagsRaw, catsRaw, stateRaw string
		primary                   int
		createdAt, updatedAt      string
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Description, &tagsRaw, &catsRaw, &stateRaw, &primary, &createdAt, &updatedAt); err != nil {
		return model.Board{}, err
	}
	b.TagIDs = unmarshalStrings(tagsRaw)
	b.CategoryIDs = unmarshalStrings(catsRaw)
	b.State = board.SanitizeJSON([]byte(stateRaw))
	b.IsPrimary = primary != 0
	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)
	return b, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

const boardCols = `id, title, description, tag_ids, category_ids, state, is_primary, created_at, updated_at`

func (s Store) ListBoards(ctx context.Context) ([]model.Board, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT `+boardCols+` FROM boards ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s Store) GetBoard(ctx context.Context, id string) (model.Board, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Board{}, err
	}
	defer db.Close()

	row := db.QueryRowContext(ctx, `SELECT `+boardCols+` FROM boards WHERE id = ?`, id)
	b, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Board{}, ErrNotFound
	}
	return b, err
}

func (s Store) CreateBoard(ctx context.Context, title, description string) (model.Board, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Board{}, err
	}
	defer db.Close()

	if title == "" {
		title = "My Board"
	}
	b := model.Board{
		ID:          ids.New("board"),
		Title:       title,
		Description: description,
		TagIDs:      []string{},
		CategoryIDs: []string{},
		State:       board.Empty(),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO boards (`+boardCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.Description, marshalJSON(b.TagIDs), marshalJSON(b.CategoryIDs),
		marshalJSON(b.State), 0, formatTime(b.CreatedAt), formatTime(b.UpdatedAt))
	return b, err
}

// PrimaryBoard returns the designated primary board, creating one on
// first use so `pinboard` with no arguments always has somewhere to go.
func (s Store) PrimaryBoard(ctx context.Context) (model.Board, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Board{}, err
	}

	row := db.QueryRowContext(ctx, `SELECT `+boardCols+` FROM boards ORDER BY is_primary DESC, created_at LIMIT 1`)
	b, err := scanBoard(row)
	_ = db.Close()
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Board{}, err
	}

	b, err = s.CreateBoard(ctx, "My Board", "A free-form pin board")
	if err != nil {
		return model.Board{}, err
	}
	return b, s.setPrimary(ctx, b.ID)
}

func (s Store) setPrimary(ctx context.Context, id string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	if _, err := db.ExecContext(ctx, `UPDATE boards SET is_primary = 0`); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `UPDATE boards SET is_primary = 1 WHERE id = ?`, id)
	return err
}

// BoardPatch carries the optional PATCH fields; nil means "leave as is".
// State passes through the sanitizer before it is stored.
type BoardPatch struct {
	Title       *string
	Description *string
	TagIDs      *[]string
	CategoryIDs *[]string
	State       *board.State
}

func (s Store) UpdateBoard(ctx context.Context, id string, patch BoardPatch) (model.Board, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Board{}, err
	}
	defer db.Close()

	row := db.QueryRowContext(ctx, `SELECT `+boardCols+` FROM boards WHERE id = ?`, id)
	b, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Board{}, ErrNotFound
	}
	if err != nil {
		return model.Board{}, err
	}

	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.TagIDs != nil {
		b.TagIDs = *patch.TagIDs
	}
	if patch.CategoryIDs != nil {
		b.CategoryIDs = *patch.CategoryIDs
	}
	if patch.State != nil {
		b.State = board.Sanitize(*patch.State)
	}
	b.UpdatedAt = time.Now().UTC()

	_, err = db.ExecContext(ctx,
		`UPDATE boards SET title = ?, description = ?, tag_ids = ?, category_ids = ?, state = ?, updated_at = ? WHERE id = ?`,
		b.Title, b.Description, marshalJSON(b.TagIDs), marshalJSON(b.CategoryIDs),
		marshalJSON(b.State), formatTime(b.UpdatedAt), b.ID)
	return b, err
}

func (s Store) DeleteBoard(ctx context.Context, id string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	for _, stmt := range []string{
		`DELETE FROM snapshots WHERE board_id = ?`,
		`DELETE FROM board_labels WHERE board_id = ?`,
		`DELETE FROM board_groups WHERE board_id = ?`,
	} {
		if _, err := db.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	return nil
}
