package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arasdyanto/erapor-smk/internal/model"
)

// GuruRepo provides persistence for teacher records. Teachers are plain
// reference entities with hard delete; mapel rows keep an optional
// guru_id link that is allowed to dangle when a teacher is removed.
type GuruRepo struct{ DB *sql.DB }

func NewGuruRepo(db *sql.DB) *GuruRepo { return &GuruRepo{DB: db} }

func (r *GuruRepo) Create(ctx context.Context, g *model.Guru) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO guru (id, user_id, nama, nuptk) VALUES (?,?,?,?)",
		g.ID, g.UserID, g.Nama, g.NUPTK)
	return err
}

func (r *GuruRepo) List(ctx context.Context) ([]model.Guru, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, nama, nuptk FROM guru ORDER BY nama")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Guru{}
	for rows.Next() {
		var g model.Guru
		if err := rows.Scan(&g.ID, &g.UserID, &g.Nama, &g.NUPTK); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GuruRepo) GetByID(ctx context.Context, id string) (*model.Guru, error) {
	var g model.Guru
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, nama, nuptk FROM guru WHERE id=?", id).
		Scan(&g.ID, &g.UserID, &g.Nama, &g.NUPTK)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GuruRepo) Update(ctx context.Context, g *model.Guru) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE guru SET user_id=?, nama=?, nuptk=? WHERE id=?",
		g.UserID, g.Nama, g.NUPTK, g.ID)
	return err
}

func (r *GuruRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM guru WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireMatch(res)
}

// Count returns the total number of teachers (dashboard stat).
func (r *GuruRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM guru").Scan(&n)
	return n, err
}
