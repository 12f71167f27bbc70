// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that an operation targeted an id with
// no matching (active) record, while ErrConflict signals that an
// operation cannot proceed because of dependent records (e.g. deleting
// a department that still has classes).
package repository

import "errors"

// ErrNotFound is returned when a lookup, update or delete matches no
// record. A soft delete that matches a row which is already inactive
// reports ErrNotFound as well: the visible effect is identical to the
// record being absent. Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a delete cannot be performed because of
// dependent state, such as removing a kelas that still has active
// students. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")
