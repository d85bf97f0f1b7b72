package models

import (
	"strings"

	"github.com/octabyte/clinic-portal/enums"
)

// DoctorFilter narrows the doctor list. Empty fields are not sent.
type DoctorFilter struct {
	Name      string `query:"name"`
	Time      string `query:"time"`
	Specialty string `query:"specialty"`
}

// QueryParams returns only the filters that are set, keyed by the API's
// parameter names. An unrecognised time bucket counts as unset.
func (f DoctorFilter) QueryParams() map[string]string {
	params := map[string]string{}
	if name := strings.TrimSpace(f.Name); name != "" {
		params["name"] = name
	}
	if bucket, ok := enums.ParseAvailability(f.Time); ok {
		params["availability"] = string(bucket)
	}
	if specialty := strings.TrimSpace(f.Specialty); specialty != "" {
		params["specialization"] = specialty
	}
	return params
}

func (f DoctorFilter) IsEmpty() bool {
	return len(f.QueryParams()) == 0
}

// AppointmentFilter narrows a doctor's appointment list.
type AppointmentFilter struct {
	PatientName string `query:"name"`
	Date        string `query:"date"`
}

func (f AppointmentFilter) QueryParams() map[string]string {
	params := map[string]string{}
	if name := strings.TrimSpace(f.PatientName); name != "" {
		params["patientName"] = name
	}
	if date := strings.TrimSpace(f.Date); date != "" {
		params["date"] = date
	}
	return params
}
