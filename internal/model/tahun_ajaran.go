package model

// TahunAjaran represents an academic year + semester record. The
// system-wide invariant is that at most one row has IsActive true at
// any time; the repository enforces it by deactivating every other
// row before writing an active one.
//
// Fields:
//  ID       – primary key (UUID string).
//  Tahun    – year-range label (e.g. "2024/2025").
//  Semester – "ganjil" or "genap".
//  IsActive – whether this is the current academic period.
type TahunAjaran struct {
	ID       string `json:"id"`
	Tahun    string `json:"tahun"`
	Semester string `json:"semester"`
	IsActive bool   `json:"is_active"`
}
