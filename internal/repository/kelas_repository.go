// This file defines the repository for kelas (class) records. Besides
// plain CRUD it owns two queries the authorization layer leans on: the
// wali-kelas lookup that scopes a homeroom teacher's visibility, and
// the detailed listing that joins departments, homeroom teachers and
// active student counts for the UI.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arasdyanto/erapor-smk/internal/model"
)

type KelasRepo struct{ DB *sql.DB }

func NewKelasRepo(db *sql.DB) *KelasRepo { return &KelasRepo{DB: db} }

const kelasCols = "id, tingkatan, jurusan_id, nama_kelas, wali_kelas_id"

// Create inserts a class, generating its id when empty.
func (r *KelasRepo) Create(ctx context.Context, k *model.Kelas) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO kelas (id, tingkatan, jurusan_id, nama_kelas, wali_kelas_id) VALUES (?,?,?,?,?)",
		k.ID, k.Tingkatan, k.JurusanID, k.NamaKelas, k.WaliKelasID)
	return err
}

// List returns every class.
func (r *KelasRepo) List(ctx context.Context) ([]model.Kelas, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+kelasCols+" FROM kelas ORDER BY nama_kelas")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Kelas{}
	for rows.Next() {
		var k model.Kelas
		if err := rows.Scan(&k.ID, &k.Tingkatan, &k.JurusanID, &k.NamaKelas, &k.WaliKelasID); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// GetByID fetches a class by id.
func (r *KelasRepo) GetByID(ctx context.Context, id string) (*model.Kelas, error) {
	return r.getOne(ctx, "SELECT "+kelasCols+" FROM kelas WHERE id=?", id)
}

// GetByNama fetches a class by display name. Used by the seeder.
func (r *KelasRepo) GetByNama(ctx context.Context, nama string) (*model.Kelas, error) {
	return r.getOne(ctx, "SELECT "+kelasCols+" FROM kelas WHERE nama_kelas=?", nama)
}

// GetByWaliKelas returns the class whose homeroom teacher is the given
// user. This is the sole link used to narrow a wali_kelas query scope;
// ErrNotFound means the teacher has no class and scoped reads must
// produce an empty result rather than an error.
func (r *KelasRepo) GetByWaliKelas(ctx context.Context, userID string) (*model.Kelas, error) {
	return r.getOne(ctx, "SELECT "+kelasCols+" FROM kelas WHERE wali_kelas_id=? LIMIT 1", userID)
}

func (r *KelasRepo) getOne(ctx context.Context, q string, arg any) (*model.Kelas, error) {
	var k model.Kelas
	err := r.DB.QueryRowContext(ctx, q, arg).
		Scan(&k.ID, &k.Tingkatan, &k.JurusanID, &k.NamaKelas, &k.WaliKelasID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &k, nil
}

// Update overwrites a class's fields. Existence is verified by the
// handler before the write.
func (r *KelasRepo) Update(ctx context.Context, k *model.Kelas) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE kelas SET tingkatan=?, jurusan_id=?, nama_kelas=?, wali_kelas_id=? WHERE id=?",
		k.Tingkatan, k.JurusanID, k.NamaKelas, k.WaliKelasID, k.ID)
	return err
}

// Delete hard-deletes a class. A class that still holds active students
// cannot be removed so that soft-deleted history stays reachable and no
// active student ends up pointing at a missing class.
func (r *KelasRepo) Delete(ctx context.Context, id string) error {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM siswa WHERE kelas_id=? AND is_active=1", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM kelas WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireMatch(res)
}

// Count returns the total number of classes (dashboard stat).
func (r *KelasRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM kelas").Scan(&n)
	return n, err
}

// ListDetailed returns every class enriched with its department, its
// homeroom teacher (when assigned) and the count of active students.
// The join keeps this a single round trip instead of the N+1 lookups a
// naive handler would issue.
func (r *KelasRepo) ListDetailed(ctx context.Context) ([]model.KelasDetail, error) {
	const q = `
		SELECT k.id, k.tingkatan, k.jurusan_id, k.nama_kelas, k.wali_kelas_id,
		       j.id, j.kode_jurusan, j.nama_jurusan,
		       u.id, u.email, u.name, u.role, u.is_active, u.created_at,
		       (SELECT COUNT(*) FROM siswa s WHERE s.kelas_id = k.id AND s.is_active = 1)
		FROM kelas k
		LEFT JOIN jurusan j ON j.id = k.jurusan_id
		LEFT JOIN users u ON u.id = k.wali_kelas_id
		ORDER BY k.nama_kelas`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.KelasDetail{}
	for rows.Next() {
		var d model.KelasDetail
		var jID, jKode, jNama sql.NullString
		var uID, uEmail, uName, uRole sql.NullString
		var uActive sql.NullBool
		var uCreated sql.NullTime
		err := rows.Scan(
			&d.ID, &d.Tingkatan, &d.JurusanID, &d.NamaKelas, &d.WaliKelasID,
			&jID, &jKode, &jNama,
			&uID, &uEmail, &uName, &uRole, &uActive, &uCreated,
			&d.SiswaCount)
		if err != nil {
			return nil, err
		}
		if jID.Valid {
			d.Jurusan = &model.Jurusan{ID: jID.String, KodeJurusan: jKode.String, NamaJurusan: jNama.String}
		}
		if uID.Valid {
			d.WaliKelas = &model.User{
				ID:        uID.String,
				Email:     uEmail.String,
				Name:      uName.String,
				Role:      model.Role(uRole.String),
				IsActive:  uActive.Bool,
				CreatedAt: uCreated.Time,
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
