package render

import (
	"net/url"
	"strconv"

	"github.com/octabyte/clinic-portal/models"
)

const missingValue = "N/A"

// Row is one line of an appointment table.
type Row struct {
	AppointmentID   int64
	DoctorID        int64
	PatientID       int64
	PatientName     string
	PatientPhone    string
	PatientEmail    string
	AppointmentTime string
	Status          string
	PrescriptionURL string
}

// PatientRow flattens an appointment into a table row. Missing patient
// details render as N/A rather than blank cells.
func PatientRow(appointment models.Appointment) Row {
	row := Row{
		AppointmentID:   appointment.ID,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		PatientName:     missingValue,
		PatientPhone:    missingValue,
		PatientEmail:    missingValue,
		AppointmentTime: appointment.AppointmentTime,
		Status:          appointment.Status,
	}

	if p := appointment.Patient; p != nil {
		if p.ID != 0 {
			row.PatientID = p.ID
		}
		row.PatientName = orMissing(p.Name)
		row.PatientPhone = orMissing(p.Phone)
		row.PatientEmail = orMissing(p.Email)
	}

	q := url.Values{}
	q.Set("appointmentId", strconv.FormatInt(appointment.ID, 10))
	if row.PatientName != missingValue {
		q.Set("patientName", row.PatientName)
	}
	row.PrescriptionURL = "/doctor/prescriptions/new?" + q.Encode()
	return row
}

func PatientRows(appointments []models.Appointment) []Row {
	rows := make([]Row, 0, len(appointments))
	for _, a := range appointments {
		rows = append(rows, PatientRow(a))
	}
	return rows
}

func orMissing(s string) string {
	if s == "" {
		return missingValue
	}
	return s
}
