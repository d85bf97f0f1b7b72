package dashboard

import (
	"context"

	"github.com/octabyte/clinic-portal/models"
)

// DoctorService is the part of services.DoctorService the dashboards use.
type DoctorService interface {
	GetDoctors(ctx context.Context) ([]models.Doctor, error)
	FilterDoctors(ctx context.Context, name, time, specialty string) ([]models.Doctor, error)
	SaveDoctor(ctx context.Context, doctor models.Doctor, token string) (models.ActionResult, error)
	DeleteDoctor(ctx context.Context, id int64, token string) (models.ActionResult, error)
}

type PatientService interface {
	PatientSignup(ctx context.Context, patient models.Patient) (string, error)
	PatientLogin(ctx context.Context, email, password string) (string, error)
	GetPatientData(ctx context.Context, token string) (models.Patient, error)
	BookAppointment(ctx context.Context, appointment models.Appointment, token string) (string, error)
	GetAllAppointments(ctx context.Context, token, patientName, date string) ([]models.Appointment, error)
}

type AuthService interface {
	AdminLogin(ctx context.Context, username, password string) (string, error)
	DoctorLogin(ctx context.Context, email, password string) (string, error)
}

// BookingNotifier is told about every appointment the API accepted.
type BookingNotifier interface {
	NotifyBooked(ctx context.Context, appointment models.Appointment) error
}
