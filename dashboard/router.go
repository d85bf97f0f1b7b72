package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/octabyte/clinic-portal/interfaces/http/echo/middleware"
	otelecho "github.com/octabyte/clinic-portal/otel/echo"
	"github.com/octabyte/clinic-portal/render"
)

type ServerConfig struct {
	ServiceName  string
	SecureCookie bool
	// Tracing turns on the otel echo middleware.
	Tracing bool
}

func skipHealth(c echo.Context) bool {
	return c.Path() == "/healthz"
}

// NewServer builds the echo server with the portal's middleware and routes.
func NewServer(h *Handler, renderer echo.Renderer, cfg ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(middleware.SetSessionInContext(middleware.SessionConfig{
		Manager: h.sessions,
		Secure:  cfg.SecureCookie,
		Skipper: skipHealth,
	}))
	if cfg.Tracing {
		e.Use(otelecho.Middleware(cfg.ServiceName, skipHealth))
	}

	h.RegisterRoutes(e)
	return e
}

// RegisterRoutes mounts every dashboard route on e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/", h.Index)
	e.POST("/roles/:role", h.SelectRole)
	e.POST("/login/admin", h.AdminLogin)
	e.POST("/login/doctor", h.DoctorLogin)
	e.POST("/logout", h.Logout)

	admin := e.Group("/admin")
	admin.GET("", h.AdminDashboard)
	admin.GET("/doctors", h.AdminDoctors)
	admin.POST("/doctors", h.CreateDoctor)
	admin.POST("/doctors/:id/delete", h.DeleteDoctor)

	doctor := e.Group("/doctor")
	doctor.GET("", h.DoctorDashboard)
	doctor.GET("/appointments", h.DoctorAppointments)
	doctor.POST("/today", h.DoctorToday)

	patient := e.Group("/patient")
	patient.GET("", h.PatientDashboard)
	patient.GET("/doctors", h.PatientDoctors)
	patient.POST("/signup", h.PatientSignup)
	patient.POST("/login", h.PatientLogin)
	patient.GET("/doctors/:id/book", h.BookingForm)
	patient.POST("/doctors/:id/book", h.ConfirmBooking)
	patient.GET("/appointments", h.PatientAppointments)
}

// DefaultRenderer returns the embedded template renderer.
func DefaultRenderer() (echo.Renderer, error) {
	r, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}
	return r, nil
}
