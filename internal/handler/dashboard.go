package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arasdyanto/erapor-smk/internal/middleware"
	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
)

// DashboardHandler serves role-dependent statistics. Any authenticated
// user may call it; the content varies with the caller's role and roles
// without dashboard data receive an empty object.
type DashboardHandler struct {
	Siswa *repository.SiswaRepo
	Guru  *repository.GuruRepo
	Kelas *repository.KelasRepo
	Mapel *repository.MapelRepo
}

func NewDashboardHandler(siswa *repository.SiswaRepo, guru *repository.GuruRepo, kelas *repository.KelasRepo, mapel *repository.MapelRepo) *DashboardHandler {
	if siswa == nil || guru == nil || kelas == nil || mapel == nil {
		panic("nil repository passed to NewDashboardHandler")
	}
	return &DashboardHandler{Siswa: siswa, Guru: guru, Kelas: kelas, Mapel: mapel}
}

// Stats handles GET /api/dashboard/stats. Admins get school-wide
// totals; a wali_kelas gets the active student count of their own
// class (nothing when unassigned).
func (h *DashboardHandler) Stats(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	stats := echo.Map{}

	switch u.Role {
	case model.RoleAdmin:
		totalSiswa, err := h.Siswa.CountActive(ctx, "")
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		totalGuru, err := h.Guru.Count(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		totalKelas, err := h.Kelas.Count(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		totalMapel, err := h.Mapel.Count(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		stats["total_siswa"] = totalSiswa
		stats["total_guru"] = totalGuru
		stats["total_kelas"] = totalKelas
		stats["total_mapel"] = totalMapel

	case model.RoleWaliKelas:
		k, err := h.Kelas.GetByWaliKelas(ctx, u.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				break // no class assigned, empty stats
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		n, err := h.Siswa.CountActive(ctx, k.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		stats["siswa_di_kelas"] = n
	}

	return c.JSON(http.StatusOK, stats)
}
