package render

type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
	AlertInfo    AlertKind = "info"
)

// Alert is the server-side stand-in for a browser alert box.
type Alert struct {
	Kind    AlertKind
	Message string
}

func Success(msg string) *Alert { return &Alert{Kind: AlertSuccess, Message: msg} }

func Error(msg string) *Alert { return &Alert{Kind: AlertError, Message: msg} }

func Info(msg string) *Alert { return &Alert{Kind: AlertInfo, Message: msg} }

const (
	LoginPrompt = "Please log in to book an appointment."

	NoDoctorsMessage      = "No doctors found."
	NoAppointmentsMessage = "No appointments found."

	DoctorsErrorMessage      = "Could not load doctors. Please try again later."
	AppointmentsErrorMessage = "Could not load appointments. Please try again later."
)
