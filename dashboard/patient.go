package dashboard

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/lib"
	"github.com/octabyte/clinic-portal/models"
	otellogger "github.com/octabyte/clinic-portal/otel/logger"
	"github.com/octabyte/clinic-portal/render"
	"github.com/octabyte/clinic-portal/services"
	"github.com/octabyte/clinic-portal/utils"
)

var errDoctorNotFound = errors.New("doctor not found")

// patientRole is the role cards are rendered for on the patient dashboard:
// only a patient holding a token may book.
func patientRole(s *models.Session) enums.Role {
	if s.Role == enums.RoleLoggedPatient && s.HasToken() {
		return enums.RoleLoggedPatient
	}
	return enums.RolePatient
}

// PatientDashboard lists doctors for patients, signed in or not.
func (h *Handler) PatientDashboard(c echo.Context) error {
	return h.patientList(c, false, http.StatusOK, nil, models.Patient{})
}

// PatientDoctors renders only the doctor list.
func (h *Handler) PatientDoctors(c echo.Context) error {
	return h.patientList(c, true, http.StatusOK, nil, models.Patient{})
}

func (h *Handler) patientList(c echo.Context, fragment bool, status int, alert *render.Alert, signup models.Patient) error {
	s := h.currentSession(c)
	role := patientRole(s)
	filter := doctorFilter(c)

	ctx, lease := h.sequenced(c, s, viewPatientDoctors)
	defer lease.Release()

	doctors, err := h.loadDoctors(ctx, filter)
	if !lease.Current() {
		return superseded(c, viewPatientDoctors)
	}

	list := render.DoctorListView{
		List:   render.NewDoctorList(doctors, role),
		Failed: err != nil,
		Filter: filter,
	}
	if fragment {
		list.Alert = alert
		return c.Render(status, render.FragmentDoctorList, list)
	}
	return c.Render(status, render.PagePatient, render.PatientView{
		Page:     render.Page{Title: "Patient Dashboard", Role: s.Role, Alert: alert},
		LoggedIn: role == enums.RoleLoggedPatient,
		Doctors:  list,
		Signup:   signup,
	})
}

func (h *Handler) PatientSignup(c echo.Context) error {
	var patient models.Patient
	if err := c.Bind(&patient); err != nil {
		return h.patientList(c, false, http.StatusBadRequest, render.Error("Invalid signup form."), models.Patient{})
	}
	patient.ID = 0

	if err := lib.Validate(patient); err != nil {
		patient.Password = ""
		return h.patientList(c, false, http.StatusUnprocessableEntity, render.Error(lib.ValidationMessage(err)), patient)
	}

	msg, err := h.patients.PatientSignup(c.Request().Context(), patient)
	if err != nil {
		patient.Password = ""
		return h.patientList(c, false, http.StatusOK, render.Error(services.UserMessage(err, "Signup failed.")), patient)
	}
	return h.patientList(c, false, http.StatusOK, render.Success(msg), models.Patient{})
}

func (h *Handler) PatientLogin(c echo.Context) error {
	var creds models.Credentials
	if err := c.Bind(&creds); err != nil {
		return h.patientList(c, false, http.StatusBadRequest, render.Error("Invalid login form."), models.Patient{})
	}
	if err := lib.Validate(creds); err != nil {
		return h.patientList(c, false, http.StatusUnprocessableEntity, render.Error(lib.ValidationMessage(err)), models.Patient{})
	}

	token, err := h.patients.PatientLogin(c.Request().Context(), creds.Email, creds.Password)
	if err != nil {
		return h.patientList(c, false, loginStatus(err), render.Error(services.UserMessage(err, loginFailedMessage)), models.Patient{})
	}
	return h.signIn(c, enums.RoleLoggedPatient, token)
}

// BookingForm fetches the patient's profile and shows the booking overlay
// for one doctor. Without a token the browser is sent to role selection
// and no API call is made.
func (h *Handler) BookingForm(c echo.Context) error {
	s, ok := h.authorize(c, enums.RoleLoggedPatient)
	if !ok {
		return h.toEntry(c, s)
	}
	ctx := c.Request().Context()

	patient, err := h.patients.GetPatientData(ctx, s.Token)
	if services.IsUnauthorized(err) {
		return h.toEntry(c, s)
	}
	if err != nil {
		return h.patientList(c, false, http.StatusOK, render.Error(services.UserMessage(err, "Could not load your profile.")), models.Patient{})
	}

	doctor, err := h.findDoctor(c)
	if err != nil {
		return h.patientList(c, false, http.StatusNotFound, render.Error("Doctor not found."), models.Patient{})
	}

	view := render.BookingView{
		Page:    render.Page{Title: "Book Appointment", Role: s.Role},
		Doctor:  doctor,
		Patient: patient,
		MinDate: h.today(),
	}
	if wantsFragment(c) {
		return c.Render(http.StatusOK, render.FragmentBookingOverlay, view)
	}
	return c.Render(http.StatusOK, render.PageBooking, view)
}

// ConfirmBooking books the slot picked in the overlay and announces it on
// the booking queue.
func (h *Handler) ConfirmBooking(c echo.Context) error {
	s, ok := h.authorize(c, enums.RoleLoggedPatient)
	if !ok {
		return h.toEntry(c, s)
	}
	ctx := c.Request().Context()

	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || doctorID <= 0 {
		return h.patientList(c, false, http.StatusBadRequest, render.Error("Invalid doctor id."), models.Patient{})
	}

	date := strings.TrimSpace(c.FormValue("date"))
	slot := strings.TrimSpace(c.FormValue("time"))
	if !utils.IsDate(date) || slot == "" {
		return h.patientList(c, false, http.StatusUnprocessableEntity, render.Error("Please select a date and time."), models.Patient{})
	}
	if date < h.today() {
		return h.patientList(c, false, http.StatusUnprocessableEntity, render.Error("Please select a future date."), models.Patient{})
	}

	patient, err := h.patients.GetPatientData(ctx, s.Token)
	if services.IsUnauthorized(err) {
		return h.toEntry(c, s)
	}
	if err != nil {
		return h.patientList(c, false, http.StatusOK, render.Error(services.UserMessage(err, "Could not load your profile.")), models.Patient{})
	}

	appointment := models.Appointment{
		DoctorID:        doctorID,
		PatientID:       patient.ID,
		AppointmentTime: AppointmentTime(date, slot),
	}
	if err := lib.Validate(appointment); err != nil {
		return h.patientList(c, false, http.StatusUnprocessableEntity, render.Error(lib.ValidationMessage(err)), models.Patient{})
	}

	msg, err := h.patients.BookAppointment(ctx, appointment, s.Token)
	if services.IsUnauthorized(err) {
		return h.toEntry(c, s)
	}
	if err != nil {
		return h.patientList(c, false, http.StatusOK, render.Error(services.UserMessage(err, "Failed to book appointment.")), models.Patient{})
	}

	if err := h.notifier.NotifyBooked(ctx, appointment); err != nil {
		otellogger.ErrorCtx(ctx, "failed to publish booking notification", err,
			zap.Int64("doctor_id", appointment.DoctorID),
			zap.Int64("patient_id", appointment.PatientID),
		)
	}
	return h.patientList(c, false, http.StatusOK, render.Success(msg), models.Patient{})
}

// PatientAppointments lists the signed-in patient's own appointments.
func (h *Handler) PatientAppointments(c echo.Context) error {
	s, ok := h.authorize(c, enums.RoleLoggedPatient)
	if !ok {
		return h.toEntry(c, s)
	}

	appointments, err := h.patients.GetAllAppointments(c.Request().Context(), s.Token, "", "")
	if services.IsUnauthorized(err) {
		return h.toEntry(c, s)
	}
	table := render.AppointmentTableView{
		Rows:   render.PatientRows(appointments),
		Failed: err != nil,
	}
	if wantsFragment(c) {
		return c.Render(http.StatusOK, render.FragmentPatientAppointments, table)
	}
	return c.Render(http.StatusOK, render.PagePatientAppointments, render.PatientAppointmentsView{
		Page:         render.Page{Title: "My Appointments", Role: s.Role},
		Appointments: table,
	})
}

// findDoctor resolves the :id path parameter against the doctor list; the
// API has no single-doctor endpoint.
func (h *Handler) findDoctor(c echo.Context) (models.Doctor, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return models.Doctor{}, errDoctorNotFound
	}
	doctors, err := h.doctors.GetDoctors(c.Request().Context())
	if err != nil {
		return models.Doctor{}, err
	}
	for _, d := range doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Doctor{}, errDoctorNotFound
}

// AppointmentTime joins a picked date and slot ("09:00-10:00") into the
// API's "2006-01-02 15:04:05" form using the slot's start.
func AppointmentTime(date, slot string) string {
	start := strings.TrimSpace(strings.SplitN(slot, "-", 2)[0])
	if strings.Count(start, ":") == 1 {
		start += ":00"
	}
	return date + " " + start
}
