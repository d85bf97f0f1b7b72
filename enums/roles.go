package enums

import "strings"

type Role string

const (
	RoleAdmin         Role = "admin"
	RoleDoctor        Role = "doctor"
	RolePatient       Role = "patient"
	RoleLoggedPatient Role = "loggedPatient"
)

// Roles lists every role the portal knows how to render.
func Roles() []Role {
	return []Role{RoleAdmin, RoleDoctor, RolePatient, RoleLoggedPatient}
}

// ParseRole maps a stored role tag to a Role. Unknown tags report false.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Roles() {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}

// Dashboard returns the path of the role's landing page, or "" when the role
// has no dashboard of its own (a patient who has not logged in yet browses
// the patient dashboard anonymously).
func (r Role) Dashboard() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleDoctor:
		return "/doctor"
	case RolePatient, RoleLoggedPatient:
		return "/patient"
	}
	return ""
}

// Authenticated reports whether the role is only reachable after a login.
func (r Role) Authenticated() bool {
	return r == RoleAdmin || r == RoleDoctor || r == RoleLoggedPatient
}
