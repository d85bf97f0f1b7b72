package services

import (
	"context"
	"net/http"

	"github.com/octabyte/clinic-portal/models"
)

type PatientService struct {
	client *Client
}

func NewPatientService(client *Client) *PatientService {
	return &PatientService{client: client}
}

// PatientSignup registers a patient account.
func (s *PatientService) PatientSignup(ctx context.Context, patient models.Patient) (string, error) {
	const op = "patientSignup"
	resp, err := s.client.do(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   "/patients/signup",
		body:   patient,
	})
	if err != nil {
		logFailure(ctx, op, err)
		return "", err
	}
	return messageOr(resp.Body(), "Registration successful. Please log in."), nil
}

// PatientLogin exchanges patient credentials for a bearer token.
func (s *PatientService) PatientLogin(ctx context.Context, email, password string) (string, error) {
	const op = "patientLogin"
	resp, err := s.client.do(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   "/patients/login",
		body:   models.Credentials{Email: email, Password: password},
	})
	if err != nil {
		logFailure(ctx, op, err)
		return "", err
	}

	token, err := tokenFrom(op, resp.Body())
	if err != nil {
		logFailure(ctx, op, err)
		return "", err
	}
	return token, nil
}

// GetPatientData returns the profile of the patient owning token.
func (s *PatientService) GetPatientData(ctx context.Context, token string) (models.Patient, error) {
	const op = "getPatientData"
	resp, err := s.client.do(ctx, call{
		op:            op,
		method:        http.MethodGet,
		path:          "/patients/me",
		token:         token,
		authenticated: true,
	})
	if err != nil {
		logFailure(ctx, op, err)
		return models.Patient{}, err
	}

	patient, err := decodeObject[models.Patient](op, resp.Body(), "patient")
	if err != nil {
		logFailure(ctx, op, err)
		return models.Patient{}, err
	}
	return patient, nil
}

// BookAppointment books appointment for the patient owning token.
func (s *PatientService) BookAppointment(ctx context.Context, appointment models.Appointment, token string) (string, error) {
	const op = "bookAppointment"
	resp, err := s.client.do(ctx, call{
		op:            op,
		method:        http.MethodPost,
		path:          "/appointments",
		body:          appointment,
		token:         token,
		authenticated: true,
	})
	if err != nil {
		logFailure(ctx, op, err)
		return "", err
	}
	return messageOr(resp.Body(), "Appointment booked successfully!"), nil
}

// GetAllAppointments lists the appointments visible to token, optionally
// narrowed by patient name and date. Rows keep the API's order. On failure
// an empty, non-nil slice is returned with the error.
func (s *PatientService) GetAllAppointments(ctx context.Context, token, patientName, date string) ([]models.Appointment, error) {
	const op = "getAllAppointments"
	filter := models.AppointmentFilter{PatientName: patientName, Date: date}
	resp, err := s.client.do(ctx, call{
		op:            op,
		method:        http.MethodGet,
		path:          "/appointments",
		query:         filter.QueryParams(),
		token:         token,
		authenticated: true,
	})
	if err != nil {
		logFailure(ctx, op, err)
		return []models.Appointment{}, err
	}

	appointments, err := decodeList[models.Appointment](op, resp.Body(), "appointments")
	if err != nil {
		logFailure(ctx, op, err)
		return []models.Appointment{}, err
	}
	return appointments, nil
}
