package dashboard

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/render"
	"github.com/octabyte/clinic-portal/services"
	"github.com/octabyte/clinic-portal/utils"
)

// DoctorDashboard renders the signed-in doctor's appointments for the
// selected date, optionally narrowed by patient name.
func (h *Handler) DoctorDashboard(c echo.Context) error {
	return h.doctorAppointments(c, false)
}

// DoctorAppointments renders only the appointment table.
func (h *Handler) DoctorAppointments(c echo.Context) error {
	return h.doctorAppointments(c, true)
}

func (h *Handler) doctorAppointments(c echo.Context, fragment bool) error {
	s, ok := h.authorize(c, enums.RoleDoctor)
	if !ok {
		return h.toEntry(c, s)
	}

	// A valid date in the query becomes the session's selected date. A full
	// page load without one starts over from today; table refreshes keep the
	// date the doctor picked.
	date := strings.TrimSpace(c.QueryParam("date"))
	switch {
	case utils.IsDate(date):
	case fragment && utils.IsDate(s.SelectedDate):
		date = s.SelectedDate
	default:
		date = h.today()
	}
	if date != s.SelectedDate {
		s.SelectedDate = date
		h.saveSession(c.Request().Context(), s)
	}
	name := strings.TrimSpace(c.QueryParam("name"))

	ctx, lease := h.sequenced(c, s, viewDoctorAppointments)
	defer lease.Release()

	appointments, err := h.patients.GetAllAppointments(ctx, s.Token, name, date)
	if !lease.Current() {
		return superseded(c, viewDoctorAppointments)
	}
	if services.IsUnauthorized(err) {
		return h.toEntry(c, s)
	}

	table := render.AppointmentTableView{
		Rows:        render.PatientRows(appointments),
		Failed:      err != nil,
		Date:        date,
		PatientName: name,
	}
	if fragment {
		return c.Render(http.StatusOK, render.FragmentAppointmentTable, table)
	}
	return c.Render(http.StatusOK, render.PageDoctor, render.DoctorDashboardView{
		Page:         render.Page{Title: "Doctor Dashboard", Role: enums.RoleDoctor},
		Appointments: table,
		Today:        h.today(),
	})
}

// DoctorToday resets the selected date to today in the clinic's timezone.
func (h *Handler) DoctorToday(c echo.Context) error {
	s, ok := h.authorize(c, enums.RoleDoctor)
	if !ok {
		return h.toEntry(c, s)
	}
	s.SelectedDate = h.today()
	h.saveSession(c.Request().Context(), s)
	return c.Redirect(http.StatusSeeOther, "/doctor")
}
