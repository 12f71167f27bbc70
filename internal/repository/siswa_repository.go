// This file defines the repository for siswa (student) records and the
// soft-delete lifecycle. Students are created active and never
// physically removed: deletion is a conditional update flipping
// is_active to 0, and every read path filters on is_active = 1.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arasdyanto/erapor-smk/internal/model"
)

// searchLimit caps student search results.
const searchLimit = 100

type SiswaRepo struct{ DB *sql.DB }

func NewSiswaRepo(db *sql.DB) *SiswaRepo { return &SiswaRepo{DB: db} }

const siswaCols = "id, nis, nisn, nama_lengkap, jk, tanggal_lahir, kelas_id, foto, is_active"

// Create inserts a student. New students are always active regardless
// of the flag on the payload.
func (r *SiswaRepo) Create(ctx context.Context, s *model.Siswa) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.IsActive = true
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO siswa (id, nis, nisn, nama_lengkap, jk, tanggal_lahir, kelas_id, foto, is_active) VALUES (?,?,?,?,?,?,?,?,?)",
		s.ID, s.NIS, s.NISN, s.NamaLengkap, s.JK, s.TanggalLahir, s.KelasID, s.Foto, s.IsActive)
	return err
}

// ListActive returns active students, optionally restricted to one
// class. The authorization layer passes the wali_kelas class id here;
// an empty kelasID yields the unconstrained admin view.
func (r *SiswaRepo) ListActive(ctx context.Context, kelasID string) ([]model.Siswa, error) {
	q := "SELECT " + siswaCols + " FROM siswa WHERE is_active=1"
	args := []any{}
	if kelasID != "" {
		q += " AND kelas_id=?"
		args = append(args, kelasID)
	}
	q += " ORDER BY nama_lengkap"
	return r.query(ctx, q, args...)
}

// GetActiveByID fetches a single active student. Inactive students are
// reported as ErrNotFound: a soft-deleted record is invisible to reads.
func (r *SiswaRepo) GetActiveByID(ctx context.Context, id string) (*model.Siswa, error) {
	return r.getOne(ctx, "SELECT "+siswaCols+" FROM siswa WHERE id=? AND is_active=1", id)
}

// GetByID fetches a student regardless of the active flag. Updates use
// this existence check so an admin can still correct a soft-deleted
// record's data.
func (r *SiswaRepo) GetByID(ctx context.Context, id string) (*model.Siswa, error) {
	return r.getOne(ctx, "SELECT "+siswaCols+" FROM siswa WHERE id=?", id)
}

// Update overwrites a student's fields. Existence is verified by the
// handler before the write.
func (r *SiswaRepo) Update(ctx context.Context, s *model.Siswa) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE siswa SET nis=?, nisn=?, nama_lengkap=?, jk=?, tanggal_lahir=?, kelas_id=?, foto=?, is_active=? WHERE id=?",
		s.NIS, s.NISN, s.NamaLengkap, s.JK, s.TanggalLahir, s.KelasID, s.Foto, s.IsActive, s.ID)
	return err
}

// SoftDelete marks a student inactive. The update is conditioned on the
// record still being active, so deleting an absent or already-inactive
// student both affect zero rows and surface ErrNotFound; callers cannot
// tell the two apart, which matches the visible effect.
func (r *SiswaRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE siswa SET is_active=0 WHERE id=? AND is_active=1", id)
	if err != nil {
		return err
	}
	return requireMatch(res)
}

// Search finds active students by case-insensitive partial match on
// name, NIS or NISN, optionally restricted to one class. Results are
// capped at searchLimit records.
func (r *SiswaRepo) Search(ctx context.Context, q, kelasID string) ([]model.Siswa, error) {
	sqlQ := "SELECT " + siswaCols + " FROM siswa WHERE is_active=1"
	args := []any{}
	if q != "" {
		like := "%" + q + "%"
		sqlQ += " AND (nama_lengkap LIKE ? OR nis LIKE ? OR nisn LIKE ?)"
		args = append(args, like, like, like)
	}
	if kelasID != "" {
		sqlQ += " AND kelas_id=?"
		args = append(args, kelasID)
	}
	sqlQ += " ORDER BY nama_lengkap LIMIT ?"
	args = append(args, searchLimit)
	return r.query(ctx, sqlQ, args...)
}

// CountActive counts active students, optionally within one class
// (dashboard stats).
func (r *SiswaRepo) CountActive(ctx context.Context, kelasID string) (int, error) {
	q := "SELECT COUNT(*) FROM siswa WHERE is_active=1"
	args := []any{}
	if kelasID != "" {
		q += " AND kelas_id=?"
		args = append(args, kelasID)
	}
	var n int
	err := r.DB.QueryRowContext(ctx, q, args...).Scan(&n)
	return n, err
}

func (r *SiswaRepo) getOne(ctx context.Context, q string, arg any) (*model.Siswa, error) {
	var s model.Siswa
	err := r.DB.QueryRowContext(ctx, q, arg).
		Scan(&s.ID, &s.NIS, &s.NISN, &s.NamaLengkap, &s.JK, &s.TanggalLahir, &s.KelasID, &s.Foto, &s.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SiswaRepo) query(ctx context.Context, q string, args ...any) ([]model.Siswa, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Siswa{}
	for rows.Next() {
		var s model.Siswa
		if err := rows.Scan(&s.ID, &s.NIS, &s.NISN, &s.NamaLengkap, &s.JK, &s.TanggalLahir, &s.KelasID, &s.Foto, &s.IsActive); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
