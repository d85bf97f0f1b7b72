package models

import (
	"time"

	"github.com/octabyte/clinic-portal/enums"
)

// Session is the per-browser state the portal keeps on the server: the
// bearer token handed out by the clinic API, the role tag picked at the
// entry page and the doctor dashboard's selected date.
type Session struct {
	ID           string     `json:"id"`
	Token        string     `json:"token,omitempty"`
	Role         enums.Role `json:"role,omitempty"`
	SelectedDate string     `json:"selected_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (s *Session) HasToken() bool {
	return s != nil && s.Token != ""
}

// Clear drops the credentials and role but keeps the session id so the
// browser cookie stays valid.
func (s *Session) Clear() {
	s.Token = ""
	s.Role = ""
	s.SelectedDate = ""
}
