package store

import (
	"context"

	"pinboard-cli/internal/board"
	"pinboard-cli/internal/ids"
	"pinboard-cli/internal/model"
)

// Labels and groups are board-scoped; categories and tags are shared
// across the whole workspace.

func (s Store) ListLabels(ctx context.Context, boardID string) ([]model.Label, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, board_id, name, color FROM board_labels WHERE board_id = ? ORDER BY name`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Label
	for rows.Next() {
		var l model.Label
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Name, &l.Color); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s Store) CreateLabel(ctx context.Context, boardID, name, color string) (model.Label, error) {
	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return model.Label{}, err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Label{}, err
	}
	defer db.Close()

	if color == "" {
		color = board.RandomColor()
	}
	l := model.Label{ID: ids.New("lbl"), BoardID: boardID, Name: name, Color: color}
	_, err = db.ExecContext(ctx,
		`INSERT INTO board_labels (id, board_id, name, color) VALUES (?, ?, ?, ?)`,
		l.ID, l.BoardID, l.Name, l.Color)
	return l, err
}

func (s Store) ListGroups(ctx context.Context, boardID string) ([]model.Group, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, board_id, name, color FROM board_groups WHERE board_id = ? ORDER BY name`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.BoardID, &g.Name, &g.Color); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s Store) CreateGroup(ctx context.Context, boardID, name, color string) (model.Group, error) {
	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return model.Group{}, err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Group{}, err
	}
	defer db.Close()

	if color == "" {
		color = board.DefaultGroupColor
	}
	g := model.Group{ID: ids.New("grp"), BoardID: boardID, Name: name, Color: color}
	_, err = db.ExecContext(ctx,
		`INSERT INTO board_groups (id, board_id, name, color) VALUES (?, ?, ?, ?)`,
		g.ID, g.BoardID, g.Name, g.Color)
	return g, err
}

func (s Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, color, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s Store) CreateCategory(ctx context.Context, name, color, description string) (model.Category, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Category{}, err
	}
	defer db.Close()

	if color == "" {
		color = board.RandomColor()
	}
	c := model.Category{ID: ids.New("cat"), Name: name, Color: color, Description: description}
	_, err = db.ExecContext(ctx,
		`INSERT INTO categories (id, name, color, description) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Color, c.Description)
	return c, err
}

func (s Store) ListTags(ctx context.Context) ([]model.Tag, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, color, description FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s Store) CreateTag(ctx context.Context, name, color, description string) (model.Tag, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Tag{}, err
	}
	defer db.Close()

	if color == "" {
		color = board.RandomColor()
	}
	t := model.Tag{ID: ids.New("tag"), Name: name, Color: color, Description: description}
	_, err = db.ExecContext(ctx,
		`INSERT INTO tags (id, name, color, description) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, t.Color, t.Description)
	return t, err
}
