package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octabyte/clinic-portal/models"
)

func TestPatientSignup(t *testing.T) {
	patient := models.Patient{Name: "Sam Roe", Email: "sam@mail.test", Password: "secret1", Phone: "555-0101"}

	t.Run("success", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusCreated, `{}`)
		msg, err := NewPatientService(api.client()).PatientSignup(bg, patient)
		require.NoError(t, err)
		assert.Equal(t, "Registration successful. Please log in.", msg)

		call := api.lastCall()
		assert.Equal(t, http.MethodPost, call.Method)
		assert.Equal(t, "/patients/signup", call.Path)
		assert.Empty(t, call.Auth)
		assert.JSONEq(t, `{"name":"Sam Roe","email":"sam@mail.test","password":"secret1","phone":"555-0101"}`, call.Body)
	})

	t.Run("duplicate email", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusConflict, `{"message":"Email already registered"}`)
		msg, err := NewPatientService(api.client()).PatientSignup(bg, patient)
		assert.Empty(t, msg)
		assert.Equal(t, "Email already registered", UserMessage(err, "fallback"))
	})
}

func TestPatientLogin(t *testing.T) {
	t.Run("returns token", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, `{"token":"patient-token"}`)
		token, err := NewPatientService(api.client()).PatientLogin(bg, "sam@mail.test", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "patient-token", token)

		call := api.lastCall()
		assert.Equal(t, "/patients/login", call.Path)
		assert.JSONEq(t, `{"email":"sam@mail.test","password":"secret1"}`, call.Body)
	})

	t.Run("no token in body", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, `{"message":"ok"}`)
		token, err := NewPatientService(api.client()).PatientLogin(bg, "sam@mail.test", "secret1")
		assert.Empty(t, token)

		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, KindDecode, apiErr.Kind)
	})

	t.Run("bad credentials", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusUnauthorized, `{"error":"Invalid credentials"}`)
		token, err := NewPatientService(api.client()).PatientLogin(bg, "sam@mail.test", "nope")
		assert.Empty(t, token)
		assert.Equal(t, "Invalid credentials", UserMessage(err, "fallback"))
	})
}

func TestGetPatientData(t *testing.T) {
	for name, body := range map[string]string{
		"flat":     `{"id":7,"name":"Sam Roe","email":"sam@mail.test","phone":"555-0101"}`,
		"envelope": `{"patient":{"id":"7","name":"Sam Roe","email":"sam@mail.test","phone":"555-0101"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			api := newFakeAPI(t, http.StatusOK, body)
			patient, err := NewPatientService(api.client()).GetPatientData(bg, "patient-token")
			require.NoError(t, err)
			assert.Equal(t, int64(7), patient.ID)
			assert.Equal(t, "Sam Roe", patient.Name)
			assert.Equal(t, "Bearer patient-token", api.lastCall().Auth)
		})
	}

	t.Run("missing token sends nothing", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, `{}`)
		_, err := NewPatientService(api.client()).GetPatientData(bg, "")
		assert.True(t, IsUnauthorized(err))
		assert.Empty(t, api.calls())
	})
}

func TestBookAppointment(t *testing.T) {
	appointment := models.Appointment{DoctorID: 3, PatientID: 7, AppointmentTime: "2026-10-20T09:00"}

	t.Run("success", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusCreated, `{"message":"Appointment booked"}`)
		msg, err := NewPatientService(api.client()).BookAppointment(bg, appointment, "patient-token")
		require.NoError(t, err)
		assert.Equal(t, "Appointment booked", msg)

		call := api.lastCall()
		assert.Equal(t, "/appointments", call.Path)
		assert.Equal(t, "Bearer patient-token", call.Auth)
		assert.JSONEq(t, `{"doctorId":3,"patientId":7,"appointmentTime":"2026-10-20T09:00"}`, call.Body)
	})

	t.Run("slot taken", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusConflict, `{"message":"Slot already booked"}`)
		_, err := NewPatientService(api.client()).BookAppointment(bg, appointment, "patient-token")
		assert.Equal(t, "Slot already booked", UserMessage(err, "fallback"))
		assert.False(t, IsUnauthorized(err))
	})

	t.Run("missing token sends nothing", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusCreated, `{}`)
		_, err := NewPatientService(api.client()).BookAppointment(bg, appointment, "")
		assert.True(t, IsUnauthorized(err))
		assert.Empty(t, api.calls())
	})
}

func TestGetAllAppointments(t *testing.T) {
	body := `{"appointments":[
		{"id":2,"doctorId":3,"appointmentTime":"2026-10-16T14:00","patient":{"id":9,"name":"Zoe Park","phone":"555-0199","email":"zoe@mail.test"}},
		{"id":1,"doctorId":3,"patientId":"7","appointmentTime":"2026-10-16T09:00","patientName":"Sam Roe","patientPhone":"555-0101","patientEmail":"sam@mail.test"}
	]}`

	t.Run("preserves order and flattens patient", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, body)
		rows, err := NewPatientService(api.client()).GetAllAppointments(bg, "doctor-token", "", "2026-10-16")
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, int64(2), rows[0].ID)
		assert.Equal(t, "Zoe Park", rows[0].Patient.Name)
		assert.Equal(t, int64(9), rows[0].PatientID)
		assert.Equal(t, int64(1), rows[1].ID)
		assert.Equal(t, "Sam Roe", rows[1].Patient.Name)
		assert.Equal(t, "555-0101", rows[1].Patient.Phone)
		assert.Equal(t, int64(7), rows[1].Patient.ID)

		call := api.lastCall()
		assert.Equal(t, "/appointments", call.Path)
		assert.Equal(t, []string{"2026-10-16"}, call.Query["date"])
		assert.NotContains(t, call.Query, "patientName")
	})

	t.Run("sends patient name filter", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, `[]`)
		rows, err := NewPatientService(api.client()).GetAllAppointments(bg, "doctor-token", "Sam", "2026-10-16")
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Equal(t, []string{"Sam"}, api.lastCall().Query["patientName"])
	})

	t.Run("failure yields empty slice", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusInternalServerError, ``)
		rows, err := NewPatientService(api.client()).GetAllAppointments(bg, "doctor-token", "", "")
		assert.Error(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("missing token sends nothing", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, `[]`)
		rows, err := NewPatientService(api.client()).GetAllAppointments(bg, "", "", "")
		assert.True(t, IsUnauthorized(err))
		assert.NotNil(t, rows)
		assert.Empty(t, api.calls())
	})
}
