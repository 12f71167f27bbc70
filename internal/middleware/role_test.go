package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/arasdyanto/erapor-smk/internal/model"
)

func roleRequest(role model.Role, withIdentity bool, allowed ...model.Role) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/jurusan", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if withIdentity {
		c.Set(userKey, &model.User{ID: "u-1", Email: "x@sekolah.sch.id", Role: role})
	}
	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	return rec
}

func TestRequireRole_Allowed(t *testing.T) {
	rec := roleRequest(model.RoleAdmin, true, model.RoleAdmin, model.RoleWaliKelas)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_ExactMatchOnly(t *testing.T) {
	// admin carries no implicit membership in other allow-lists.
	rec := roleRequest(model.RoleGuruMapel, true, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_EveryRoleAgainstAdminOnly(t *testing.T) {
	for _, r := range model.AllRoles {
		rec := roleRequest(r, true, model.RoleAdmin)
		if r == model.RoleAdmin {
			assert.Equal(t, http.StatusOK, rec.Code, string(r))
		} else {
			assert.Equal(t, http.StatusForbidden, rec.Code, string(r))
		}
	}
}

func TestRequireRole_NoIdentity(t *testing.T) {
	rec := roleRequest(model.RoleAdmin, false, model.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
