package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // sentinel error comparisons
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/arasdyanto/erapor-smk/internal/config"
	"github.com/arasdyanto/erapor-smk/internal/middleware"
	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
	"github.com/arasdyanto/erapor-smk/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	if u == nil {
		panic("nil user repository passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginResp struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

// Register creates a new account. Duplicate emails are a 409; the role
// must be one of the closed role set.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/name/password required"})
	}
	role := model.Role(strings.TrimSpace(req.Role))
	if !role.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Email, req.Name, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, u)
}

// Login verifies credentials and returns a fresh 30-minute access
// token. Unknown email and wrong password are deliberately the same
// 401 so the endpoint does not leak which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, loginResp{
		AccessToken: access.Token,
		TokenType:   "bearer",
		User:        u,
	})
}

// Me returns the identity resolved by the auth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, u)
}
