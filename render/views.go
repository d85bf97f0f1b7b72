package render

import (
	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/models"
)

// Page is embedded by every full-page view.
type Page struct {
	Title string
	Role  enums.Role
	Alert *Alert
}

type RoleOption struct {
	Role  enums.Role
	Label string
}

type IndexView struct {
	Page
	Roles []RoleOption
	// Login names the role whose login form is open, if any.
	Login enums.Role
}

// DoctorListView is the doctor list fragment. Failed selects the error
// placeholder; an empty Cards slice otherwise selects the no-results one.
type DoctorListView struct {
	List   DoctorList
	Failed bool
	Alert  *Alert
	Filter models.DoctorFilter
}

func (v DoctorListView) Empty() bool {
	return !v.Failed && v.List.Len() == 0
}

type AppointmentTableView struct {
	Rows        []Row
	Failed      bool
	Date        string
	PatientName string
}

func (v AppointmentTableView) Empty() bool {
	return !v.Failed && len(v.Rows) == 0
}

type AdminView struct {
	Page
	Doctors DoctorListView
	Form    models.Doctor
}

type DoctorDashboardView struct {
	Page
	Appointments AppointmentTableView
	Today        string
}

type PatientView struct {
	Page
	LoggedIn bool
	Doctors  DoctorListView
	Signup   models.Patient
}

type PatientAppointmentsView struct {
	Page
	Appointments AppointmentTableView
}

type BookingView struct {
	Page
	Doctor  models.Doctor
	Patient models.Patient
	// MinDate keeps the date picker from offering past days.
	MinDate string
}

func RoleOptions() []RoleOption {
	return []RoleOption{
		{Role: enums.RoleAdmin, Label: "Admin"},
		{Role: enums.RoleDoctor, Label: "Doctor"},
		{Role: enums.RolePatient, Label: "Patient"},
	}
}
