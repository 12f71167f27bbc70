package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arasdyanto/erapor-smk/internal/middleware"
	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/queue"
	"github.com/arasdyanto/erapor-smk/internal/repository"
	"github.com/arasdyanto/erapor-smk/internal/service"
)

// SiswaHandler serves student CRUD and search. Reads are shared between
// admin and wali_kelas (scoped to their own class); writes are admin
// only, enforced by route middleware. Soft deletes emit an audit event
// through Publish, which is injectable so tests run without a broker.
type SiswaHandler struct {
	Siswa   *repository.SiswaRepo
	Kelas   *repository.KelasRepo
	Publish func(ctx context.Context, ev queue.AuditEvent) error
}

func NewSiswaHandler(siswa *repository.SiswaRepo, kelas *repository.KelasRepo) *SiswaHandler {
	if siswa == nil || kelas == nil {
		panic("nil repository passed to NewSiswaHandler")
	}
	return &SiswaHandler{Siswa: siswa, Kelas: kelas, Publish: service.PublishAudit}
}

// List handles GET /api/siswa. Admins see every active student; a
// wali_kelas sees only their own class, or nothing when unassigned.
func (h *SiswaHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	kelasID, hasScope, err := studentScope(ctx, c, h.Kelas)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !hasScope {
		return c.JSON(http.StatusOK, []model.Siswa{})
	}
	items, err := h.Siswa.ListActive(ctx, kelasID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Search handles GET /api/siswa/search with free-text matching on
// name/nis/nisn and an optional kelas_id filter. For a wali_kelas the
// class filter is forced to their own class regardless of the query
// parameter.
func (h *SiswaHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	q := strings.TrimSpace(c.QueryParam("q"))
	kelasFilter := strings.TrimSpace(c.QueryParam("kelas_id"))

	scopeID, hasScope, err := studentScope(ctx, c, h.Kelas)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !hasScope {
		return c.JSON(http.StatusOK, []model.Siswa{})
	}
	if scopeID != "" {
		kelasFilter = scopeID
	}
	items, err := h.Siswa.Search(ctx, q, kelasFilter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/siswa/:id. Only active students are visible; a
// wali_kelas additionally may only read students of their own class.
func (h *SiswaHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := h.Siswa.GetActiveByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "siswa not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	scopeID, hasScope, err := studentScope(ctx, c, h.Kelas)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !hasScope || (scopeID != "" && s.KelasID != scopeID) {
		// Out-of-scope reads look like missing records.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "siswa not found"})
	}
	return c.JSON(http.StatusOK, s)
}

// Create handles POST /api/siswa.
func (h *SiswaHandler) Create(c echo.Context) error {
	var s model.Siswa
	if err := c.Bind(&s); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if s.NIS == "" || s.NISN == "" || strings.TrimSpace(s.NamaLengkap) == "" || s.KelasID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nis/nisn/nama_lengkap/kelas_id required"})
	}
	if err := h.Siswa.Create(c.Request().Context(), &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// Update handles PUT /api/siswa/:id: verify existence, write, re-read.
func (h *SiswaHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.Siswa.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "siswa not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var s model.Siswa
	if err := c.Bind(&s); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s.ID = id
	if err := h.Siswa.Update(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Siswa.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/siswa/:id as a soft delete. A second
// delete of the same student reports 404, same as a missing id.
func (h *SiswaHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if err := h.Siswa.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "siswa not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if u, ok := middleware.CurrentUser(c); ok {
		// Best effort; the deletion already happened.
		_ = h.Publish(ctx, queue.AuditEvent{
			Type:     queue.EventSiswaDeactivated,
			EntityID: id,
			Actor:    u.Email,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "siswa deleted successfully"})
}
