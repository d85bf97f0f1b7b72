package models

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

type Doctor struct {
	ID             int64    `json:"id,omitempty"`
	Name           string   `json:"name" form:"name" validate:"required"`
	Specialization string   `json:"specialization" form:"specialization" validate:"required"`
	Email          string   `json:"email" form:"email" validate:"required,email"`
	Password       string   `json:"password,omitempty" form:"password" validate:"required,min=6"`
	Phone          string   `json:"phone,omitempty" form:"phone"`
	Availability   []string `json:"availability" form:"availability"`
}

// UnmarshalJSON accepts the field spellings older API builds used:
// specialty/speciality for specialization, availableTimes for availability,
// and string ids.
func (d *Doctor) UnmarshalJSON(data []byte) error {
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return fmt.Errorf("doctor: expected a JSON object, got %s", doc.Type)
	}

	*d = Doctor{
		ID:             doc.Get("id").Int(),
		Name:           doc.Get("name").String(),
		Specialization: firstString(data, "specialization", "specialty", "speciality"),
		Email:          doc.Get("email").String(),
		Phone:          doc.Get("phone").String(),
		Availability:   stringsOf(doc, "availability", "availableTimes"),
	}
	return nil
}

// AvailabilityText joins the doctor's slots for display.
func (d Doctor) AvailabilityText() string {
	if len(d.Availability) == 0 {
		return "Not available"
	}
	return strings.Join(d.Availability, ", ")
}

func firstString(data []byte, paths ...string) string {
	for _, p := range paths {
		if v := gjson.GetBytes(data, p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// stringsOf returns the first non-empty string array found under paths.
func stringsOf(doc gjson.Result, paths ...string) []string {
	for _, p := range paths {
		v := doc.Get(p)
		if !v.IsArray() || len(v.Array()) == 0 {
			continue
		}
		out := make([]string, 0, len(v.Array()))
		for _, item := range v.Array() {
			out = append(out, item.String())
		}
		return out
	}
	return nil
}
