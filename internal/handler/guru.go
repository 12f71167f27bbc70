package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
)

// GuruHandler serves teacher CRUD. All routes are admin only.
type GuruHandler struct {
	Guru *repository.GuruRepo
}

func NewGuruHandler(g *repository.GuruRepo) *GuruHandler {
	if g == nil {
		panic("nil repository passed to NewGuruHandler")
	}
	return &GuruHandler{Guru: g}
}

// List handles GET /api/guru.
func (h *GuruHandler) List(c echo.Context) error {
	items, err := h.Guru.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/guru/:id.
func (h *GuruHandler) Get(c echo.Context) error {
	g, err := h.Guru.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guru not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, g)
}

// Create handles POST /api/guru.
func (h *GuruHandler) Create(c echo.Context) error {
	var g model.Guru
	if err := c.Bind(&g); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if g.UserID == "" || strings.TrimSpace(g.Nama) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id/nama required"})
	}
	if err := h.Guru.Create(c.Request().Context(), &g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

// Update handles PUT /api/guru/:id: verify existence, write, re-read.
func (h *GuruHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.Guru.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guru not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var g model.Guru
	if err := c.Bind(&g); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	g.ID = id
	if err := h.Guru.Update(ctx, &g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Guru.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/guru/:id (hard delete).
func (h *GuruHandler) Delete(c echo.Context) error {
	if err := h.Guru.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guru not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "guru deleted successfully"})
}
