package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
)

// MapelHandler serves subject CRUD. Listing is open to any
// authenticated user (teachers browse subjects by jenis); writes are
// admin only.
type MapelHandler struct {
	Mapel *repository.MapelRepo
}

func NewMapelHandler(m *repository.MapelRepo) *MapelHandler {
	if m == nil {
		panic("nil repository passed to NewMapelHandler")
	}
	return &MapelHandler{Mapel: m}
}

// List handles GET /api/mapel with an optional ?jenis= filter.
func (h *MapelHandler) List(c echo.Context) error {
	items, err := h.Mapel.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("jenis")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /api/mapel.
func (h *MapelHandler) Create(c echo.Context) error {
	var m model.Mapel
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m.KodeMapel = strings.TrimSpace(m.KodeMapel)
	if m.KodeMapel == "" || strings.TrimSpace(m.NamaMapel) == "" || m.Jenis == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kode_mapel/nama_mapel/jenis required"})
	}
	if err := h.Mapel.Create(c.Request().Context(), &m); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "kode_mapel already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /api/mapel/:id: verify existence, write, re-read.
func (h *MapelHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.Mapel.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mapel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var m model.Mapel
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m.ID = id
	if err := h.Mapel.Update(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Mapel.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/mapel/:id (hard delete).
func (h *MapelHandler) Delete(c echo.Context) error {
	if err := h.Mapel.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mapel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "mapel deleted successfully"})
}
