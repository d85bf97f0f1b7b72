package models

import (
	"fmt"

	"github.com/tidwall/gjson"
)

type Appointment struct {
	ID              int64            `json:"id,omitempty"`
	DoctorID        int64            `json:"doctorId" form:"doctorId" validate:"required"`
	PatientID       int64            `json:"patientId" form:"patientId" validate:"required"`
	AppointmentTime string           `json:"appointmentTime" form:"appointmentTime" validate:"required"`
	Status          string           `json:"status,omitempty" form:"-"`
	Patient         *PatientSnapshot `json:"patient,omitempty" form:"-"`
}

// UnmarshalJSON folds the shapes seen from the API into one value: ids may
// be strings, the doctor and patient may be nested objects instead of ids,
// and patient details may arrive flat (patientName, patientPhone, ...).
func (a *Appointment) UnmarshalJSON(data []byte) error {
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return fmt.Errorf("appointment: expected a JSON object, got %s", doc.Type)
	}

	a.ID = doc.Get("id").Int()
	a.DoctorID = idOf(doc, "doctorId", "doctor.id")
	a.PatientID = idOf(doc, "patientId", "patient.id")
	a.AppointmentTime = firstString(data, "appointmentTime", "time")
	a.Status = doc.Get("status").String()

	a.Patient = &PatientSnapshot{}
	if p := doc.Get("patient"); p.IsObject() {
		*a.Patient = snapshotOf(p)
	}
	if a.Patient.ID == 0 {
		a.Patient.ID = a.PatientID
	}
	if a.Patient.Name == "" {
		a.Patient.Name = doc.Get("patientName").String()
	}
	if a.Patient.Phone == "" {
		a.Patient.Phone = doc.Get("patientPhone").String()
	}
	if a.Patient.Email == "" {
		a.Patient.Email = doc.Get("patientEmail").String()
	}
	return nil
}

func idOf(doc gjson.Result, paths ...string) int64 {
	for _, p := range paths {
		if v := doc.Get(p); v.Exists() && v.Type != gjson.JSON {
			return v.Int()
		}
	}
	return 0
}
