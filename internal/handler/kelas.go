package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
)

// KelasHandler serves class CRUD plus the enriched detailed listing.
// CRUD routes are admin only; the detailed listing is open to any
// authenticated user because the frontend uses it for pickers.
type KelasHandler struct {
	Kelas *repository.KelasRepo
}

func NewKelasHandler(k *repository.KelasRepo) *KelasHandler {
	if k == nil {
		panic("nil repository passed to NewKelasHandler")
	}
	return &KelasHandler{Kelas: k}
}

// List handles GET /api/kelas.
func (h *KelasHandler) List(c echo.Context) error {
	items, err := h.Kelas.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// ListDetailed handles GET /api/kelas/detailed, joining in the
// department, homeroom teacher and active student count per class.
func (h *KelasHandler) ListDetailed(c echo.Context) error {
	items, err := h.Kelas.ListDetailed(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /api/kelas.
func (h *KelasHandler) Create(c echo.Context) error {
	var k model.Kelas
	if err := c.Bind(&k); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if k.Tingkatan == "" || k.JurusanID == "" || strings.TrimSpace(k.NamaKelas) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tingkatan/jurusan_id/nama_kelas required"})
	}
	if err := h.Kelas.Create(c.Request().Context(), &k); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, k)
}

// Update handles PUT /api/kelas/:id: verify existence, write, re-read.
func (h *KelasHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.Kelas.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "kelas not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var k model.Kelas
	if err := c.Bind(&k); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	k.ID = id
	if err := h.Kelas.Update(ctx, &k); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Kelas.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/kelas/:id. Classes with active students
// cannot be removed.
func (h *KelasHandler) Delete(c echo.Context) error {
	err := h.Kelas.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "kelas not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "kelas still has active siswa"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "kelas deleted successfully"})
}
