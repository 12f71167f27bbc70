package model

// Siswa represents a student. Students are never physically removed:
// deletion flips IsActive to false and every read path filters on
// IsActive. NIS and NISN are two distinct external identifiers.
//
// Fields:
//  ID           – primary key (UUID string).
//  NIS          – school-issued student number.
//  NISN         – national student number.
//  NamaLengkap  – full name.
//  JK           – sex, "L" or "P".
//  TanggalLahir – birth date (ISO date string).
//  KelasID      – class the student belongs to.
//  Foto         – optional photo reference, nullable.
//  IsActive     – soft-delete flag; false means deleted.
type Siswa struct {
	ID           string  `json:"id"`
	NIS          string  `json:"nis"`
	NISN         string  `json:"nisn"`
	NamaLengkap  string  `json:"nama_lengkap"`
	JK           string  `json:"jk"`
	TanggalLahir string  `json:"tanggal_lahir"`
	KelasID      string  `json:"kelas_id"`
	Foto         *string `json:"foto"`
	IsActive     bool    `json:"is_active"`
}
