package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/models"
	otellogger "github.com/octabyte/clinic-portal/otel/logger"
	"github.com/octabyte/clinic-portal/otel/metrics"
	"github.com/octabyte/clinic-portal/queue"
	"github.com/octabyte/clinic-portal/session"
	"github.com/octabyte/clinic-portal/utils"
	ctxutil "github.com/octabyte/clinic-portal/utils/context"
)

const (
	// SupersededHeader marks a response whose request was overtaken by a
	// newer one for the same view.
	SupersededHeader = "X-Superseded"
	// FragmentHeader asks a page route for its fragment instead of the
	// full page.
	FragmentHeader = "X-Fragment"
)

// Views sequenced per session.
const (
	viewAdminDoctors       = "admin-doctors"
	viewPatientDoctors     = "patient-doctors"
	viewDoctorAppointments = "doctor-appointments"
)

type Options struct {
	Doctors  DoctorService
	Patients PatientService
	Auth     AuthService
	Notifier BookingNotifier
	Sessions *session.Manager
	// Timezone decides what "today" is on the doctor dashboard.
	Timezone string
	// ViewTTL bounds how long a rendered admin list is remembered.
	ViewTTL time.Duration
}

// Handler serves the role selector and the three dashboards.
type Handler struct {
	doctors  DoctorService
	patients PatientService
	auth     AuthService
	notifier BookingNotifier
	sessions *session.Manager
	seq      *Sequencer
	views    *ViewCache
	timezone string
	now      func() time.Time
}

func NewHandler(opts Options) *Handler {
	if opts.Notifier == nil {
		opts.Notifier = queue.NewBookingNotifier(nil)
	}
	if opts.Timezone == "" {
		opts.Timezone = "UTC"
	}
	if opts.ViewTTL <= 0 {
		opts.ViewTTL = 30 * time.Minute
	}
	return &Handler{
		doctors:  opts.Doctors,
		patients: opts.Patients,
		auth:     opts.Auth,
		notifier: opts.Notifier,
		sessions: opts.Sessions,
		seq:      NewSequencer(),
		views:    NewViewCache(opts.ViewTTL),
		timezone: opts.Timezone,
		now:      time.Now,
	}
}

func (h *Handler) today() string {
	return utils.DateIn(h.now(), h.timezone)
}

// currentSession returns the request's session. Requests that bypassed the
// session middleware get a throwaway one.
func (h *Handler) currentSession(c echo.Context) *models.Session {
	if s := ctxutil.GetSessionFromContext(c.Request().Context()); s != nil {
		return s
	}
	return h.sessions.New()
}

// authorize returns the session when it holds a token for one of roles.
func (h *Handler) authorize(c echo.Context, roles ...enums.Role) (*models.Session, bool) {
	s := h.currentSession(c)
	if !s.HasToken() {
		return s, false
	}
	for _, r := range roles {
		if s.Role == r {
			return s, true
		}
	}
	return s, false
}

// toEntry clears whatever credentials the session holds and sends the
// browser back to role selection.
func (h *Handler) toEntry(c echo.Context, s *models.Session) error {
	ctx := c.Request().Context()
	if s.HasToken() || s.Role != "" {
		h.views.forget(s.ID)
		if err := h.sessions.SignOut(ctx, s); err != nil {
			otellogger.ErrorCtx(ctx, "failed to clear session", err, zap.String("session_id", s.ID))
		}
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) saveSession(ctx context.Context, s *models.Session) {
	if err := h.sessions.Save(ctx, s); err != nil {
		otellogger.ErrorCtx(ctx, "failed to save session", err, zap.String("session_id", s.ID))
	}
}

// sequenced claims the view for this session. The caller must Release the
// lease and check Current before rendering.
func (h *Handler) sequenced(c echo.Context, s *models.Session, view string) (context.Context, *Lease) {
	return h.seq.Acquire(c.Request().Context(), s.ID+":"+view)
}

func superseded(c echo.Context, view string) error {
	metrics.RecordSuperseded(c.Request().Context(), view)
	c.Response().Header().Set(SupersededHeader, "true")
	return c.NoContent(http.StatusNoContent)
}

func wantsFragment(c echo.Context) bool {
	return c.Request().Header.Get(FragmentHeader) == "true"
}
