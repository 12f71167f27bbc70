// This file defines the repository for tahun ajaran (academic year)
// records and the single-active invariant: at most one row may carry
// is_active = 1 system-wide. Writing an active record first deactivates
// every row, then writes the target. The two statements are issued
// sequentially without a transaction, exactly mirroring the system's
// documented behaviour: a failure between them leaves a transient
// zero-active state that the next successful write reconciles.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arasdyanto/erapor-smk/internal/model"
)

type TahunAjaranRepo struct{ DB *sql.DB }

func NewTahunAjaranRepo(db *sql.DB) *TahunAjaranRepo { return &TahunAjaranRepo{DB: db} }

// Create inserts an academic-year record. When the record is flagged
// active, all other rows are deactivated first.
func (r *TahunAjaranRepo) Create(ctx context.Context, ta *model.TahunAjaran) error {
	if ta.ID == "" {
		ta.ID = uuid.NewString()
	}
	if ta.IsActive {
		if err := r.deactivateAll(ctx); err != nil {
			return err
		}
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO tahun_ajaran (id, tahun, semester, is_active) VALUES (?,?,?,?)",
		ta.ID, ta.Tahun, ta.Semester, ta.IsActive)
	return err
}

// List returns every academic-year record.
func (r *TahunAjaranRepo) List(ctx context.Context) ([]model.TahunAjaran, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, tahun, semester, is_active FROM tahun_ajaran ORDER BY tahun, semester")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TahunAjaran{}
	for rows.Next() {
		var ta model.TahunAjaran
		if err := rows.Scan(&ta.ID, &ta.Tahun, &ta.Semester, &ta.IsActive); err != nil {
			return nil, err
		}
		out = append(out, ta)
	}
	return out, rows.Err()
}

// GetByID fetches an academic-year record by id.
func (r *TahunAjaranRepo) GetByID(ctx context.Context, id string) (*model.TahunAjaran, error) {
	return r.getOne(ctx, "SELECT id, tahun, semester, is_active FROM tahun_ajaran WHERE id=?", id)
}

// GetByTahun fetches a record by its year label. Used by the seeder.
func (r *TahunAjaranRepo) GetByTahun(ctx context.Context, tahun string) (*model.TahunAjaran, error) {
	return r.getOne(ctx, "SELECT id, tahun, semester, is_active FROM tahun_ajaran WHERE tahun=? LIMIT 1", tahun)
}

func (r *TahunAjaranRepo) getOne(ctx context.Context, q string, arg any) (*model.TahunAjaran, error) {
	var ta model.TahunAjaran
	err := r.DB.QueryRowContext(ctx, q, arg).
		Scan(&ta.ID, &ta.Tahun, &ta.Semester, &ta.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ta, nil
}

// Update overwrites a record's fields, deactivating every other row
// first when the record is flagged active. Existence is verified by the
// handler before the write.
func (r *TahunAjaranRepo) Update(ctx context.Context, ta *model.TahunAjaran) error {
	if ta.IsActive {
		if err := r.deactivateAll(ctx); err != nil {
			return err
		}
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE tahun_ajaran SET tahun=?, semester=?, is_active=? WHERE id=?",
		ta.Tahun, ta.Semester, ta.IsActive, ta.ID)
	return err
}

// Delete hard-deletes an academic-year record.
func (r *TahunAjaranRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM tahun_ajaran WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireMatch(res)
}

// deactivateAll clears the active flag on every row, including the
// write target; the follow-up insert/update then sets the single
// active record.
func (r *TahunAjaranRepo) deactivateAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE tahun_ajaran SET is_active=0 WHERE is_active=1")
	return err
}
