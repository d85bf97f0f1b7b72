package models

import (
	"fmt"

	"github.com/tidwall/gjson"
)

type Patient struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password,omitempty" form:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty" form:"phone"`
	Address  string `json:"address,omitempty" form:"address"`
}

// UnmarshalJSON tolerates string ids.
func (p *Patient) UnmarshalJSON(data []byte) error {
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return fmt.Errorf("patient: expected a JSON object, got %s", doc.Type)
	}

	*p = Patient{
		ID:      doc.Get("id").Int(),
		Name:    doc.Get("name").String(),
		Email:   doc.Get("email").String(),
		Phone:   doc.Get("phone").String(),
		Address: doc.Get("address").String(),
	}
	return nil
}

// PatientSnapshot is the subset of a patient embedded in an appointment.
type PatientSnapshot struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

func snapshotOf(doc gjson.Result) PatientSnapshot {
	return PatientSnapshot{
		ID:    doc.Get("id").Int(),
		Name:  doc.Get("name").String(),
		Phone: doc.Get("phone").String(),
		Email: doc.Get("email").String(),
	}
}
