package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialsFile = "templates/partials.html"
)

// Fragment names usable with Renderer.Render besides the pages.
const (
	FragmentDoctorList          = "doctor_list"
	FragmentAppointmentTable    = "appointment_table"
	FragmentPatientAppointments = "patient_appointments"
	FragmentBookingOverlay      = "booking_overlay"
)

// Pages.
const (
	PageIndex               = "index"
	PageAdmin               = "admin"
	PageDoctor              = "doctor"
	PagePatient             = "patient"
	PagePatientAppointments = "patient_appointments_page"
	PageBooking             = "booking"
)

// Renderer is echo's template engine. Every page is parsed together with
// the layout and the shared partials; partials can also be rendered on
// their own as fragments.
type Renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, layoutFile, partialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base templates: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, f := range files {
		if f == layoutFile || f == partialsFile {
			continue
		}
		t, err := template.Must(base.Clone()).ParseFS(templateFS, f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f, err)
		}
		pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}

	return &Renderer{pages: pages, fragments: base}, nil
}

func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	if page, ok := r.pages[name]; ok {
		return page.ExecuteTemplate(w, "layout", data)
	}
	if t := r.fragments.Lookup(name); t != nil {
		return t.Execute(w, data)
	}
	return fmt.Errorf("render: unknown template %q", name)
}

var funcs = template.FuncMap{
	"alertClass": func(k AlertKind) string {
		switch k {
		case AlertSuccess:
			return "alert alert-success"
		case AlertError:
			return "alert alert-error"
		}
		return "alert alert-info"
	},
	"selected": func(a, b string) bool {
		return strings.EqualFold(a, b)
	},
	"bookingURL":               BookingURL,
	"doctorTitle":              DoctorTitle,
	"noDoctorsMessage":         func() string { return NoDoctorsMessage },
	"noAppointmentsMessage":    func() string { return NoAppointmentsMessage },
	"doctorsErrorMessage":      func() string { return DoctorsErrorMessage },
	"appointmentsErrorMessage": func() string { return AppointmentsErrorMessage },
}
