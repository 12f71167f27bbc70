package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arasdyanto/erapor-smk/internal/model"
)

// MapelRepo provides persistence for subject records.
type MapelRepo struct{ DB *sql.DB }

func NewMapelRepo(db *sql.DB) *MapelRepo { return &MapelRepo{DB: db} }

const mapelCols = "id, kode_mapel, nama_mapel, jenis, guru_id"

func (r *MapelRepo) Create(ctx context.Context, m *model.Mapel) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO mapel (id, kode_mapel, nama_mapel, jenis, guru_id) VALUES (?,?,?,?,?)",
		m.ID, m.KodeMapel, m.NamaMapel, m.Jenis, m.GuruID)
	return err
}

// List returns subjects, optionally filtered by jenis (umum, kejuruan,
// p5, ekstra). An empty jenis returns everything.
func (r *MapelRepo) List(ctx context.Context, jenis string) ([]model.Mapel, error) {
	q := "SELECT " + mapelCols + " FROM mapel"
	args := []any{}
	if jenis != "" {
		q += " WHERE jenis=?"
		args = append(args, jenis)
	}
	q += " ORDER BY kode_mapel"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Mapel{}
	for rows.Next() {
		var m model.Mapel
		if err := rows.Scan(&m.ID, &m.KodeMapel, &m.NamaMapel, &m.Jenis, &m.GuruID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MapelRepo) GetByID(ctx context.Context, id string) (*model.Mapel, error) {
	return r.getOne(ctx, "SELECT "+mapelCols+" FROM mapel WHERE id=?", id)
}

// GetByKode fetches a subject by its unique code. Used by the seeder.
func (r *MapelRepo) GetByKode(ctx context.Context, kode string) (*model.Mapel, error) {
	return r.getOne(ctx, "SELECT "+mapelCols+" FROM mapel WHERE kode_mapel=?", kode)
}

func (r *MapelRepo) getOne(ctx context.Context, q string, arg any) (*model.Mapel, error) {
	var m model.Mapel
	err := r.DB.QueryRowContext(ctx, q, arg).
		Scan(&m.ID, &m.KodeMapel, &m.NamaMapel, &m.Jenis, &m.GuruID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MapelRepo) Update(ctx context.Context, m *model.Mapel) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE mapel SET kode_mapel=?, nama_mapel=?, jenis=?, guru_id=? WHERE id=?",
		m.KodeMapel, m.NamaMapel, m.Jenis, m.GuruID, m.ID)
	return err
}

func (r *MapelRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM mapel WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireMatch(res)
}

// Count returns the total number of subjects (dashboard stat).
func (r *MapelRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM mapel").Scan(&n)
	return n, err
}
