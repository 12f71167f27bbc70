// This file defines the repository for jurusan (department) records.
// Departments are plain reference entities: standard CRUD with hard
// delete, plus a referential guard that refuses to delete a department
// that still owns classes.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arasdyanto/erapor-smk/internal/model"
)

type JurusanRepo struct{ DB *sql.DB }

func NewJurusanRepo(db *sql.DB) *JurusanRepo { return &JurusanRepo{DB: db} }

// Create inserts a department, generating its id when empty.
func (r *JurusanRepo) Create(ctx context.Context, j *model.Jurusan) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO jurusan (id, kode_jurusan, nama_jurusan) VALUES (?,?,?)",
		j.ID, j.KodeJurusan, j.NamaJurusan)
	return err
}

// List returns every department.
func (r *JurusanRepo) List(ctx context.Context) ([]model.Jurusan, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, kode_jurusan, nama_jurusan FROM jurusan ORDER BY kode_jurusan")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Jurusan{}
	for rows.Next() {
		var j model.Jurusan
		if err := rows.Scan(&j.ID, &j.KodeJurusan, &j.NamaJurusan); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// GetByID fetches a department by id.
func (r *JurusanRepo) GetByID(ctx context.Context, id string) (*model.Jurusan, error) {
	var j model.Jurusan
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, kode_jurusan, nama_jurusan FROM jurusan WHERE id=?", id).
		Scan(&j.ID, &j.KodeJurusan, &j.NamaJurusan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// GetByKode fetches a department by its unique code. Used by the
// default-data seeder to keep inserts idempotent.
func (r *JurusanRepo) GetByKode(ctx context.Context, kode string) (*model.Jurusan, error) {
	var j model.Jurusan
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, kode_jurusan, nama_jurusan FROM jurusan WHERE kode_jurusan=?", kode).
		Scan(&j.ID, &j.KodeJurusan, &j.NamaJurusan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// Update overwrites a department's fields. Existence is verified by the
// handler before the write; a no-op update (identical values) affects
// zero rows and is still a success.
func (r *JurusanRepo) Update(ctx context.Context, j *model.Jurusan) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE jurusan SET kode_jurusan=?, nama_jurusan=? WHERE id=?",
		j.KodeJurusan, j.NamaJurusan, j.ID)
	return err
}

// Delete hard-deletes a department. A department that still has classes
// cannot be removed; callers receive ErrConflict instead of leaving
// dangling jurusan_id references on kelas rows.
func (r *JurusanRepo) Delete(ctx context.Context, id string) error {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM kelas WHERE jurusan_id=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM jurusan WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireMatch(res)
}

// requireMatch maps a zero-row result onto ErrNotFound. Used by hard
// deletes and the conditional student soft delete, where zero affected
// rows means the caller's target is effectively gone.
func requireMatch(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
