package handler

// seed.go implements the admin-only bulk seeding endpoint that loads
// the school's default reference data: the four vocational departments,
// one class per grade per department, the standard subject list and an
// initial active academic year. Every insert is guarded by a lookup so
// the endpoint can be called repeatedly without duplicating rows.

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
)

// SeedHandler bundles the repositories the seeding endpoint writes to.
type SeedHandler struct {
	Jurusan     *repository.JurusanRepo
	Kelas       *repository.KelasRepo
	Mapel       *repository.MapelRepo
	TahunAjaran *repository.TahunAjaranRepo
}

func NewSeedHandler(j *repository.JurusanRepo, k *repository.KelasRepo, m *repository.MapelRepo, ta *repository.TahunAjaranRepo) *SeedHandler {
	if j == nil || k == nil || m == nil || ta == nil {
		panic("nil repository passed to NewSeedHandler")
	}
	return &SeedHandler{Jurusan: j, Kelas: k, Mapel: m, TahunAjaran: ta}
}

var defaultJurusan = []model.Jurusan{
	{KodeJurusan: "AKL", NamaJurusan: "Akuntansi dan Keuangan Lembaga"},
	{KodeJurusan: "MP", NamaJurusan: "Manajemen Perkantoran"},
	{KodeJurusan: "RPL", NamaJurusan: "Rekayasa Perangkat Lunak"},
	{KodeJurusan: "TO", NamaJurusan: "Teknik Otomotif (TSM)"},
}

var defaultTingkatan = []string{"X", "XI", "XII"}

var defaultMapel = []model.Mapel{
	{KodeMapel: "PABP", NamaMapel: "Pendidikan Agama dan Budi Pekerti", Jenis: model.MapelUmum},
	{KodeMapel: "PPKN", NamaMapel: "Pendidikan Pancasila dan Kewarganegaraan", Jenis: model.MapelUmum},
	{KodeMapel: "BINDO", NamaMapel: "Bahasa Indonesia", Jenis: model.MapelUmum},
	{KodeMapel: "MAT", NamaMapel: "Matematika", Jenis: model.MapelUmum},
	{KodeMapel: "SEJ", NamaMapel: "Sejarah", Jenis: model.MapelUmum},
	{KodeMapel: "BING", NamaMapel: "Bahasa Inggris", Jenis: model.MapelUmum},
	{KodeMapel: "PJOK", NamaMapel: "Pendidikan Jasmani, Olahraga, dan Kesehatan", Jenis: model.MapelUmum},
	{KodeMapel: "AKL1", NamaMapel: "Akuntansi Dasar", Jenis: model.MapelKejuruan},
	{KodeMapel: "MP1", NamaMapel: "Otomatisasi Tata Kelola Perkantoran", Jenis: model.MapelKejuruan},
	{KodeMapel: "RPL1", NamaMapel: "Pemrograman Dasar", Jenis: model.MapelKejuruan},
	{KodeMapel: "TO1", NamaMapel: "Teknik Kendaraan Ringan", Jenis: model.MapelKejuruan},
	{KodeMapel: "P5", NamaMapel: "Projek P5", Jenis: model.MapelP5},
	{KodeMapel: "PRAM", NamaMapel: "Pramuka", Jenis: model.MapelEkstra},
	{KodeMapel: "PMR", NamaMapel: "Palang Merah Remaja", Jenis: model.MapelEkstra},
}

const defaultTahun = "2024/2025"

// InitDefaultData handles POST /api/init/default-data.
func (h *SeedHandler) InitDefaultData(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.seedJurusan(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed jurusan failed"})
	}
	if err := h.seedKelas(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed kelas failed"})
	}
	if err := h.seedMapel(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed mapel failed"})
	}
	if err := h.seedTahunAjaran(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed tahun ajaran failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "default data initialized successfully"})
}

func (h *SeedHandler) seedJurusan(ctx context.Context) error {
	for _, j := range defaultJurusan {
		_, err := h.Jurusan.GetByKode(ctx, j.KodeJurusan)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		j := j
		if err := h.Jurusan.Create(ctx, &j); err != nil {
			return err
		}
	}
	return nil
}

func (h *SeedHandler) seedKelas(ctx context.Context) error {
	jurusanList, err := h.Jurusan.List(ctx)
	if err != nil {
		return err
	}
	for _, tingkat := range defaultTingkatan {
		for _, j := range jurusanList {
			nama := fmt.Sprintf("%s %s 1", tingkat, j.KodeJurusan)
			_, err := h.Kelas.GetByNama(ctx, nama)
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			k := model.Kelas{Tingkatan: tingkat, JurusanID: j.ID, NamaKelas: nama}
			if err := h.Kelas.Create(ctx, &k); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *SeedHandler) seedMapel(ctx context.Context) error {
	for _, m := range defaultMapel {
		_, err := h.Mapel.GetByKode(ctx, m.KodeMapel)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		m := m
		if err := h.Mapel.Create(ctx, &m); err != nil {
			return err
		}
	}
	return nil
}

func (h *SeedHandler) seedTahunAjaran(ctx context.Context) error {
	_, err := h.TahunAjaran.GetByTahun(ctx, defaultTahun)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	ta := model.TahunAjaran{Tahun: defaultTahun, Semester: "ganjil", IsActive: true}
	return h.TahunAjaran.Create(ctx, &ta)
}
