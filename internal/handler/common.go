package handler // handler defines http handlers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/arasdyanto/erapor-smk/internal/middleware"
	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
)

// studentScope computes the class constraint for student reads based on
// the caller's role. Admins get the unconstrained view (empty kelasID).
// A wali_kelas is pinned to the class whose wali_kelas_id is their own
// user id; when they have no class the scope is empty and the read must
// return an empty collection, not an error. The bool result reports
// whether any rows can match at all.
func studentScope(ctx context.Context, c echo.Context, kelas *repository.KelasRepo) (kelasID string, hasScope bool, err error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return "", false, errors.New("no identity in context")
	}
	if u.Role != model.RoleWaliKelas {
		return "", true, nil
	}
	k, err := kelas.GetByWaliKelas(ctx, u.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return k.ID, true, nil
}
