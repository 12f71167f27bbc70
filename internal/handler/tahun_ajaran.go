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

// TahunAjaranHandler serves academic-year CRUD. All routes are admin
// only. Writes that flag a record active trigger the single-active
// transition in the repository and emit an audit event through
// Publish, which is injectable so tests run without a broker.
type TahunAjaranHandler struct {
	TahunAjaran *repository.TahunAjaranRepo
	Publish     func(ctx context.Context, ev queue.AuditEvent) error
}

func NewTahunAjaranHandler(ta *repository.TahunAjaranRepo) *TahunAjaranHandler {
	if ta == nil {
		panic("nil repository passed to NewTahunAjaranHandler")
	}
	return &TahunAjaranHandler{TahunAjaran: ta, Publish: service.PublishAudit}
}

// List handles GET /api/tahun-ajaran.
func (h *TahunAjaranHandler) List(c echo.Context) error {
	items, err := h.TahunAjaran.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /api/tahun-ajaran.
func (h *TahunAjaranHandler) Create(c echo.Context) error {
	var ta model.TahunAjaran
	if err := c.Bind(&ta); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(ta.Tahun) == "" || ta.Semester == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tahun/semester required"})
	}
	ctx := c.Request().Context()
	if err := h.TahunAjaran.Create(ctx, &ta); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	if ta.IsActive {
		h.auditActivation(c, ta)
	}
	return c.JSON(http.StatusCreated, ta)
}

// Update handles PUT /api/tahun-ajaran/:id: verify existence, write
// (deactivating others first when activating), re-read.
func (h *TahunAjaranHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.TahunAjaran.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tahun ajaran not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var ta model.TahunAjaran
	if err := c.Bind(&ta); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ta.ID = id
	if err := h.TahunAjaran.Update(ctx, &ta); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.TahunAjaran.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if updated.IsActive {
		h.auditActivation(c, *updated)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/tahun-ajaran/:id (hard delete).
func (h *TahunAjaranHandler) Delete(c echo.Context) error {
	if err := h.TahunAjaran.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tahun ajaran not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "tahun ajaran deleted successfully"})
}

func (h *TahunAjaranHandler) auditActivation(c echo.Context, ta model.TahunAjaran) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}
	// Best effort; the activation already happened.
	_ = h.Publish(c.Request().Context(), queue.AuditEvent{
		Type:     queue.EventTahunAjaranActivated,
		EntityID: ta.ID,
		Actor:    u.Email,
		Detail:   ta.Tahun + " " + ta.Semester,
	})
}
