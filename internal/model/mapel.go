package model

// Mapel jenis values. Subjects are categorized so that report cards
// can group them; P5 and ekstra entries feed their own assessments.
const (
	MapelUmum     = "umum"
	MapelKejuruan = "kejuruan"
	MapelP5       = "p5"
	MapelEkstra   = "ekstra"
)

// Mapel represents a subject. GuruID optionally links the subject to
// the teacher responsible for it.
//
// Fields:
//  ID        – primary key (UUID string).
//  KodeMapel – short unique subject code.
//  NamaMapel – full subject name.
//  Jenis     – one of the Mapel* categories above.
//  GuruID    – assigned teacher, nullable.
type Mapel struct {
	ID        string  `json:"id"`
	KodeMapel string  `json:"kode_mapel"`
	NamaMapel string  `json:"nama_mapel"`
	Jenis     string  `json:"jenis"`
	GuruID    *string `json:"guru_id"`
}
