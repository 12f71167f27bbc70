package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
	"github.com/arasdyanto/erapor-smk/internal/utils"
)

const testSecret = "middleware-test-secret"

var userCols = []string{"id", "email", "name", "password_hash", "role", "is_active", "created_at"}

func authChain(t *testing.T, users *repository.UserRepo) echo.HandlerFunc {
	t.Helper()
	return JWTAuth(testSecret, users)(func(c echo.Context) error {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"email": u.Email, "role": u.Role})
	})
}

func doAuth(h echo.HandlerFunc, header string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/siswa", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := doAuth(authChain(t, repository.NewUserRepo(db)), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_MalformedToken(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := doAuth(authChain(t, repository.NewUserRepo(db)), "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ValidTokenResolvesUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tok, err := utils.NewAccessToken(testSecret, "admin@sekolah.sch.id", 30)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WithArgs("admin@sekolah.sch.id").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-1", "admin@sekolah.sch.id", "Administrator", "$2a$hash", "admin", true, time.Now().UTC()))

	rec := doAuth(authChain(t, repository.NewUserRepo(db)), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin@sekolah.sch.id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJWTAuth_DeletedUserFailsClosed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Token is still inside its lifetime but the account is gone.
	tok, err := utils.NewAccessToken(testSecret, "removed@sekolah.sch.id", 30)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WithArgs("removed@sekolah.sch.id").
		WillReturnRows(sqlmock.NewRows(userCols))

	rec := doAuth(authChain(t, repository.NewUserRepo(db)), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentUser_Unset(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := CurrentUser(c)
	assert.False(t, ok)

	c.Set(userKey, &model.User{ID: "u-1", Role: model.RoleAdmin})
	u, ok := CurrentUser(c)
	require.True(t, ok)
	assert.Equal(t, "u-1", u.ID)
}
