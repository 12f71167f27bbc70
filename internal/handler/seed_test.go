package handler

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arasdyanto/erapor-smk/internal/repository"
)

// TestSeedHandler_Idempotent seeds against a database that already
// holds every default row: each guarded lookup hits and no insert is
// issued.
func TestSeedHandler_Idempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewSeedHandler(
		repository.NewJurusanRepo(db),
		repository.NewKelasRepo(db),
		repository.NewMapelRepo(db),
		repository.NewTahunAjaranRepo(db),
	)

	jurusanCols := []string{"id", "kode_jurusan", "nama_jurusan"}
	for _, j := range defaultJurusan {
		mock.ExpectQuery(regexp.QuoteMeta("FROM jurusan WHERE kode_jurusan=?")).
			WithArgs(j.KodeJurusan).
			WillReturnRows(sqlmock.NewRows(jurusanCols).
				AddRow("j-"+j.KodeJurusan, j.KodeJurusan, j.NamaJurusan))
	}

	listRows := sqlmock.NewRows(jurusanCols)
	for _, j := range defaultJurusan {
		listRows.AddRow("j-"+j.KodeJurusan, j.KodeJurusan, j.NamaJurusan)
	}
	mock.ExpectQuery(regexp.QuoteMeta("FROM jurusan ORDER BY kode_jurusan")).
		WillReturnRows(listRows)

	for _, tingkat := range defaultTingkatan {
		for _, j := range defaultJurusan {
			nama := fmt.Sprintf("%s %s 1", tingkat, j.KodeJurusan)
			mock.ExpectQuery(regexp.QuoteMeta("FROM kelas WHERE nama_kelas=?")).
				WithArgs(nama).
				WillReturnRows(sqlmock.NewRows(kelasCols).
					AddRow("k-"+nama, tingkat, "j-"+j.KodeJurusan, nama, nil))
		}
	}

	mapelCols := []string{"id", "kode_mapel", "nama_mapel", "jenis", "guru_id"}
	for _, m := range defaultMapel {
		mock.ExpectQuery(regexp.QuoteMeta("FROM mapel WHERE kode_mapel=?")).
			WithArgs(m.KodeMapel).
			WillReturnRows(sqlmock.NewRows(mapelCols).
				AddRow("m-"+m.KodeMapel, m.KodeMapel, m.NamaMapel, m.Jenis, nil))
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM tahun_ajaran WHERE tahun=?")).
		WithArgs(defaultTahun).
		WillReturnRows(sqlmock.NewRows(taCols).AddRow("ta-1", defaultTahun, "ganjil", true))

	c, rec := ctxAs(adminUser, http.MethodPost, "/api/init/default-data")
	require.NoError(t, h.InitDefaultData(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "default data initialized successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// fresh database path: a missing tahun ajaran row triggers the
// single-active create.
func TestSeedHandler_SeedsMissingTahunAjaran(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	jur := repository.NewJurusanRepo(db)
	kel := repository.NewKelasRepo(db)
	mpl := repository.NewMapelRepo(db)
	ta := repository.NewTahunAjaranRepo(db)
	h := NewSeedHandler(jur, kel, mpl, ta)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tahun_ajaran WHERE tahun=?")).
		WithArgs(defaultTahun).
		WillReturnRows(sqlmock.NewRows(taCols))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tahun_ajaran SET is_active=0 WHERE is_active=1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tahun_ajaran")).
		WithArgs(sqlmock.AnyArg(), defaultTahun, "ganjil", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, h.seedTahunAjaran(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
