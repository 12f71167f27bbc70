package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
)

// JurusanHandler serves department CRUD. All routes are admin only.
type JurusanHandler struct {
	Jurusan *repository.JurusanRepo
}

func NewJurusanHandler(j *repository.JurusanRepo) *JurusanHandler {
	if j == nil {
		panic("nil repository passed to NewJurusanHandler")
	}
	return &JurusanHandler{Jurusan: j}
}

// List handles GET /api/jurusan.
func (h *JurusanHandler) List(c echo.Context) error {
	items, err := h.Jurusan.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /api/jurusan.
func (h *JurusanHandler) Create(c echo.Context) error {
	var j model.Jurusan
	if err := c.Bind(&j); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	j.KodeJurusan = strings.TrimSpace(j.KodeJurusan)
	if j.KodeJurusan == "" || strings.TrimSpace(j.NamaJurusan) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kode_jurusan/nama_jurusan required"})
	}
	if err := h.Jurusan.Create(c.Request().Context(), &j); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "kode_jurusan already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, j)
}

// Update handles PUT /api/jurusan/:id: verify existence, write, re-read.
func (h *JurusanHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.Jurusan.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "jurusan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var j model.Jurusan
	if err := c.Bind(&j); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	j.ID = id
	if err := h.Jurusan.Update(ctx, &j); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Jurusan.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/jurusan/:id. Departments that still own
// classes cannot be removed.
func (h *JurusanHandler) Delete(c echo.Context) error {
	err := h.Jurusan.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "jurusan not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "jurusan still has kelas"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "jurusan deleted successfully"})
}
