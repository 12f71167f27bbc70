package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kelasRowCols = []string{"id", "tingkatan", "jurusan_id", "nama_kelas", "wali_kelas_id"}

func TestKelasRepo_GetByWaliKelas(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewKelasRepo(db)

	rows := sqlmock.NewRows(kelasRowCols).
		AddRow("k-1", "X", "j-1", "X RPL 1", "u-wali")

	mock.ExpectQuery(regexp.QuoteMeta("FROM kelas WHERE wali_kelas_id=?")).
		WithArgs("u-wali").
		WillReturnRows(rows)

	k, err := repo.GetByWaliKelas(context.Background(), "u-wali")
	require.NoError(t, err)
	assert.Equal(t, "k-1", k.ID)
	require.NotNil(t, k.WaliKelasID)
	assert.Equal(t, "u-wali", *k.WaliKelasID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKelasRepo_GetByWaliKelas_NoClass(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewKelasRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM kelas WHERE wali_kelas_id=?")).
		WithArgs("u-wali").
		WillReturnRows(sqlmock.NewRows(kelasRowCols))

	_, err = repo.GetByWaliKelas(context.Background(), "u-wali")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKelasRepo_Delete_BlockedByActiveSiswa(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewKelasRepo(db)

	// The guard runs before the delete; no DELETE reaches the database.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM siswa WHERE kelas_id=? AND is_active=1")).
		WithArgs("k-1").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	assert.ErrorIs(t, repo.Delete(context.Background(), "k-1"), ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKelasRepo_Delete_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewKelasRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM siswa WHERE kelas_id=? AND is_active=1")).
		WithArgs("k-1").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kelas WHERE id=?")).
		WithArgs("k-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "k-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKelasRepo_ListDetailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewKelasRepo(db)

	cols := []string{
		"id", "tingkatan", "jurusan_id", "nama_kelas", "wali_kelas_id",
		"j_id", "kode_jurusan", "nama_jurusan",
		"u_id", "email", "name", "role", "u_active", "created_at",
		"siswa_count",
	}
	rows := sqlmock.NewRows(cols).
		AddRow("k-1", "X", "j-1", "X RPL 1", nil,
			"j-1", "RPL", "Rekayasa Perangkat Lunak",
			nil, nil, nil, nil, nil, nil,
			7)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN jurusan j ON j.id = k.jurusan_id")).
		WillReturnRows(rows)

	out, err := repo.ListDetailed(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	d := out[0]
	assert.Equal(t, "X RPL 1", d.NamaKelas)
	require.NotNil(t, d.Jurusan)
	assert.Equal(t, "RPL", d.Jurusan.KodeJurusan)
	assert.Nil(t, d.WaliKelas)
	assert.Equal(t, 7, d.SiswaCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
