package model

// Jurusan represents a vocational department (major) such as RPL or
// AKL. Plain reference entity with no lifecycle beyond CRUD.
//
// Fields:
//  ID          – primary key (UUID string).
//  KodeJurusan – short unique department code (e.g. "RPL").
//  NamaJurusan – full department name.
type Jurusan struct {
	ID          string `json:"id"`
	KodeJurusan string `json:"kode_jurusan"`
	NamaJurusan string `json:"nama_jurusan"`
}
