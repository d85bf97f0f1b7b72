package render

import (
	"fmt"
	"strings"

	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/models"
)

type ActionKind string

const (
	ActionDelete ActionKind = "delete"
	ActionBook   ActionKind = "book"
)

// Action is one control on a card. Exactly one of Prompt or URL drives it:
// a Prompt-only action just tells the user something and goes nowhere.
type Action struct {
	Kind    ActionKind
	Label   string
	Method  string
	URL     string
	Confirm string
	Prompt  string
}

// Card is the view model of a doctor as shown in any dashboard list.
type Card struct {
	DoctorID       int64
	Name           string
	Title          string
	Specialization string
	Email          string
	Phone          string
	Availability   string
	Actions        []Action
}

// DoctorCard builds the card for doctor as seen by role. The role alone
// decides which controls appear; doctors and unknown roles get none.
func DoctorCard(doctor models.Doctor, role enums.Role) Card {
	card := Card{
		DoctorID:       doctor.ID,
		Name:           doctor.Name,
		Title:          DoctorTitle(doctor.Name),
		Specialization: doctor.Specialization,
		Email:          doctor.Email,
		Phone:          doctor.Phone,
		Availability:   doctor.AvailabilityText(),
	}

	switch role {
	case enums.RoleAdmin:
		card.Actions = adminActions(doctor)
	case enums.RolePatient:
		card.Actions = patientActions()
	case enums.RoleLoggedPatient:
		card.Actions = loggedPatientActions(doctor)
	case enums.RoleDoctor:
		// read-only
	}
	return card
}

func adminActions(doctor models.Doctor) []Action {
	return []Action{{
		Kind:    ActionDelete,
		Label:   "Delete",
		Method:  "POST",
		URL:     fmt.Sprintf("/admin/doctors/%d/delete", doctor.ID),
		Confirm: fmt.Sprintf("Are you sure you want to delete %s?", DoctorTitle(doctor.Name)),
	}}
}

func patientActions() []Action {
	return []Action{{
		Kind:   ActionBook,
		Label:  "Book Now",
		Prompt: LoginPrompt,
	}}
}

// The booking route fetches the patient's profile before showing the
// overlay, so the link carries only the doctor id.
func loggedPatientActions(doctor models.Doctor) []Action {
	return []Action{{
		Kind:   ActionBook,
		Label:  "Book Now",
		Method: "GET",
		URL:    BookingURL(doctor.ID),
	}}
}

func BookingURL(doctorID int64) string {
	return fmt.Sprintf("/patient/doctors/%d/book", doctorID)
}

// DoctorTitle is the name as cards show it, e.g. "Dr. Ana Lee".
func DoctorTitle(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, "Dr. ") {
		return name
	}
	return "Dr. " + name
}
