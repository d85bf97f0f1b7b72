package render

import (
	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/models"
)

// DoctorList is an ordered set of cards rendered for one role.
type DoctorList struct {
	Role  enums.Role
	Cards []Card
}

func NewDoctorList(doctors []models.Doctor, role enums.Role) DoctorList {
	cards := make([]Card, 0, len(doctors))
	for _, d := range doctors {
		cards = append(cards, DoctorCard(d, role))
	}
	return DoctorList{Role: role, Cards: cards}
}

// Remove drops the card for doctor id and reports whether one was found.
// The backing array is never shared with the previous Cards slice.
func (l *DoctorList) Remove(id int64) bool {
	for i, c := range l.Cards {
		if c.DoctorID == id {
			cards := make([]Card, 0, len(l.Cards)-1)
			cards = append(cards, l.Cards[:i]...)
			l.Cards = append(cards, l.Cards[i+1:]...)
			return true
		}
	}
	return false
}

func (l DoctorList) Len() int {
	return len(l.Cards)
}
