package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/utils"
)

// ErrEmailExists is returned when registration targets an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// UserRepo encapsulates all database queries for accounts. This is the
// credential store of the system: the auth middleware resolves every
// bearer token against it, so a user removed here fails closed even
// while their token is still within its lifetime.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts the account, returning the
// stored user. The email is normalized to lower case before it is used
// as the unique login key.
func (r *UserRepo) Create(ctx context.Context, email, name, password string, role model.Role, cost int) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, name, password_hash, role, is_active, created_at) VALUES (?,?,?,?,?,?,?)",
		u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.IsActive, u.CreatedAt)
	if err != nil {
		// MySQL error 1062 = duplicate key on the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email. Returns ErrNotFound
// when no account matches.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx,
		"SELECT id,email,name,password_hash,role,is_active,created_at FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.scanOne(ctx,
		"SELECT id,email,name,password_hash,role,is_active,created_at FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) scanOne(ctx context.Context, q string, arg any) (*model.User, error) {
	var u model.User
	var role string
	err := r.DB.QueryRowContext(ctx, q, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Role = model.Role(role)
	return &u, nil
}
