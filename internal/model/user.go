package model

import "time"

// User represents an application account as stored in the `users`
// table. The id is an opaque UUID string generated by the repository
// on insert. PasswordHash is excluded from serialization so handlers
// can return this struct directly in JSON responses.
//
// Fields:
//  ID        – primary key (CHAR(36) UUID string).
//  Email     – unique email address, the login key.
//  Name      – display name.
//  Role      – one of the closed Role set.
//  IsActive  – whether the account is active.
//  CreatedAt – UTC creation timestamp.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
