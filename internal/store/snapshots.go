package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pinboard-cli/internal/board"
	"pinboard-cli/internal/ids"
	"pinboard-cli/internal/model"
)

func (s Store) ListSnapshots(ctx context.Context, boardID string) ([]model.SnapshotSummary, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, note, created_at FROM snapshots WHERE board_id = ? ORDER BY created_at DESC`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SnapshotSummary
	for rows.Next() {
		var sum model.SnapshotSummary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Note, &createdAt); err != nil {
			return nil, err
		}
		sum.CreatedAt = parseTime(createdAt)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s Store) GetSnapshot(ctx context.Context, id string) (model.Snapshot, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	defer db.Close()

	var (
		snap               model.Snapshot
		stateRaw, createdAt string
	)
	err = db.QueryRowContext(ctx,
		`SELECT id, board_id, name, note, state, created_at FROM snapshots WHERE id = ?`, id).
		Scan(&snap.ID, &snap.BoardID, &snap.Name, &snap.Note, &stateRaw, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return model.Snapshot{}, err
	}
	snap.State = board.SanitizeJSON([]byte(stateRaw))
	snap.CreatedAt = parseTime(createdAt)
	return snap, nil
}

// CreateSnapshot copies the board's current state under a name. An empty
// name gets a timestamp-based one.
func (s Store) CreateSnapshot(ctx context.Context, boardID, name, note string) (model.Snapshot, error) {
	b, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return model.Snapshot{}, err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	defer db.Close()

	now := time.Now().UTC()
	if name == "" {
		name = fmt.Sprintf("Snapshot %s", now.Format("2006-01-02 15:04"))
	}
	snap := model.Snapshot{
		ID:        ids.New("snap"),
		BoardID:   boardID,
		Name:      name,
		Note:      note,
		State:     b.State,
		CreatedAt: now,
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO snapshots (id, board_id, name, note, state, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.BoardID, snap.Name, snap.Note, marshalJSON(snap.State), formatTime(snap.CreatedAt))
	return snap, err
}

func (s Store) DeleteSnapshot(ctx context.Context, id string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RestoreSnapshot overwrites the board's state with the snapshot's.
func (s Store) RestoreSnapshot(ctx context.Context, id string) (model.Board, error) {
	snap, err := s.GetSnapshot(ctx, id)
	if err != nil {
		return model.Board{}, err
	}
	state := snap.State
	return s.UpdateBoard(ctx, snap.BoardID, BoardPatch{State: &state})
}
