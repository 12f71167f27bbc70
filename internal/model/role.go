package model

// Role is the closed set of user roles understood by the API. Every
// authorization decision is an exact-match test against a per-route
// allow-list, so there is no hierarchy and no implication between
// roles. Keeping the set as typed constants makes adding or removing
// a role visible at every check site.
type Role string

const (
	RoleAdmin         Role = "admin"          // full access to every resource
	RoleGuruMapel     Role = "guru_mapel"     // subject teacher
	RoleGuruPKL       Role = "guru_pkl"       // internship (PKL) supervisor
	RoleFasilitatorP5 Role = "fasilitator_p5" // P5 project facilitator
	RoleGuruEkstra    Role = "guru_ekstra"    // extracurricular teacher
	RoleWaliKelas     Role = "wali_kelas"     // homeroom teacher, scoped reads
)

// AllRoles lists every valid role. Used for registration validation.
var AllRoles = []Role{
	RoleAdmin,
	RoleGuruMapel,
	RoleGuruPKL,
	RoleFasilitatorP5,
	RoleGuruEkstra,
	RoleWaliKelas,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGuruMapel, RoleGuruPKL, RoleFasilitatorP5, RoleGuruEkstra, RoleWaliKelas:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
