package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arasdyanto/erapor-smk/internal/model"
)

func TestTahunAjaranRepo_Create_ActiveDeactivatesOthersFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTahunAjaranRepo(db)

	// Order matters: first every row loses the active flag, then the
	// new record is inserted as the single active one.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tahun_ajaran SET is_active=0 WHERE is_active=1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tahun_ajaran")).
		WithArgs(sqlmock.AnyArg(), "2025/2026", "ganjil", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ta := &model.TahunAjaran{Tahun: "2025/2026", Semester: "ganjil", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), ta))
	assert.NotEmpty(t, ta.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTahunAjaranRepo_Create_InactiveSkipsDeactivate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTahunAjaranRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tahun_ajaran")).
		WithArgs(sqlmock.AnyArg(), "2025/2026", "genap", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ta := &model.TahunAjaran{Tahun: "2025/2026", Semester: "genap", IsActive: false}
	require.NoError(t, repo.Create(context.Background(), ta))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTahunAjaranRepo_Update_ActiveDeactivatesOthersFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTahunAjaranRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tahun_ajaran SET is_active=0 WHERE is_active=1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tahun_ajaran SET tahun=?, semester=?, is_active=? WHERE id=?")).
		WithArgs("2024/2025", "genap", true, "ta-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ta := &model.TahunAjaran{ID: "ta-1", Tahun: "2024/2025", Semester: "genap", IsActive: true}
	require.NoError(t, repo.Update(context.Background(), ta))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTahunAjaranRepo_Update_NoOpChangeIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTahunAjaranRepo(db)

	// MySQL reports zero affected rows when the new values equal the
	// old ones; that must not surface as a missing record.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tahun_ajaran SET tahun=?, semester=?, is_active=? WHERE id=?")).
		WithArgs("2024/2025", "ganjil", false, "ta-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ta := &model.TahunAjaran{ID: "ta-1", Tahun: "2024/2025", Semester: "ganjil", IsActive: false}
	assert.NoError(t, repo.Update(context.Background(), ta))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTahunAjaranRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTahunAjaranRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tahun_ajaran WHERE id=?")).
		WithArgs("ta-gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "ta-gone"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
