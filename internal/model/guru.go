package model

// Guru represents a teacher record. It links an account (UserID) to
// teacher-specific attributes. Plain reference entity, hard deleted.
//
// Fields:
//  ID     – primary key (UUID string).
//  UserID – the teacher's users.id.
//  Nama   – teacher name.
//  NUPTK  – national teacher registration number, nullable.
type Guru struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Nama   string  `json:"nama"`
	NUPTK  *string `json:"nuptk"`
}
