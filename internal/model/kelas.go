package model

// Kelas represents a class/cohort within a department. The optional
// WaliKelasID references users.id and is the sole link used to scope
// a homeroom teacher's visibility over students.
//
// Fields:
//  ID          – primary key (UUID string).
//  Tingkatan   – grade level: X, XI or XII.
//  JurusanID   – owning department.
//  NamaKelas   – display name (e.g. "X RPL 1").
//  WaliKelasID – homeroom teacher's user id, nullable.
type Kelas struct {
	ID          string  `json:"id"`
	Tingkatan   string  `json:"tingkatan"`
	JurusanID   string  `json:"jurusan_id"`
	NamaKelas   string  `json:"nama_kelas"`
	WaliKelasID *string `json:"wali_kelas_id"`
}

// KelasDetail is the enriched shape returned by GET /api/kelas/detailed.
// It embeds the class row and joins in the department, the homeroom
// teacher (when assigned) and the active student count.
type KelasDetail struct {
	Kelas
	Jurusan    *Jurusan `json:"jurusan"`
	WaliKelas  *User    `json:"wali_kelas"`
	SiswaCount int      `json:"siswa_count"`
}
