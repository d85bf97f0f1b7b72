package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/interfaces/http/echo/middleware"
	"github.com/octabyte/clinic-portal/models"
	"github.com/octabyte/clinic-portal/render"
	"github.com/octabyte/clinic-portal/services"
	"github.com/octabyte/clinic-portal/session"
)

var unauthorized = &services.Error{Kind: services.KindStatus, Op: "test", Status: http.StatusUnauthorized, Message: "Invalid or expired token"}

type fakeDoctors struct {
	mu sync.Mutex

	doctors  []models.Doctor
	listErr  error
	filterFn func(ctx context.Context, f models.DoctorFilter) ([]models.Doctor, error)

	getCalls    int
	filterCalls []models.DoctorFilter

	saveResult models.ActionResult
	saveErr    error
	saved      []models.Doctor

	deleteResult models.ActionResult
	deleteErr    error
	deleted      []int64
	tokens       []string
}

func (f *fakeDoctors) GetDoctors(context.Context) ([]models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.listErr != nil {
		return []models.Doctor{}, f.listErr
	}
	return append([]models.Doctor{}, f.doctors...), nil
}

func (f *fakeDoctors) FilterDoctors(ctx context.Context, name, time, specialty string) ([]models.Doctor, error) {
	filter := models.DoctorFilter{Name: name, Time: time, Specialty: specialty}
	f.mu.Lock()
	f.filterCalls = append(f.filterCalls, filter)
	fn, doctors, err := f.filterFn, append([]models.Doctor{}, f.doctors...), f.listErr
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, filter)
	}
	if err != nil {
		return []models.Doctor{}, err
	}
	return doctors, nil
}

func (f *fakeDoctors) SaveDoctor(_ context.Context, d models.Doctor, token string) (models.ActionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, d)
	f.tokens = append(f.tokens, token)
	return f.saveResult, f.saveErr
}

func (f *fakeDoctors) DeleteDoctor(_ context.Context, id int64, token string) (models.ActionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	f.tokens = append(f.tokens, token)
	return f.deleteResult, f.deleteErr
}

func (f *fakeDoctors) calls() (gets int, filters []models.DoctorFilter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls, append([]models.DoctorFilter(nil), f.filterCalls...)
}

type appointmentQuery struct {
	Token, Name, Date string
}

type fakePatients struct {
	mu sync.Mutex

	signupMsg string
	signupErr error
	signups   []models.Patient

	loginToken string
	loginErr   error

	profile     models.Patient
	profileErr  error
	profileHits int

	bookMsg string
	bookErr error
	booked  []models.Appointment

	appointments    []models.Appointment
	appointmentsErr error
	queries         []appointmentQuery
}

func (f *fakePatients) PatientSignup(_ context.Context, p models.Patient) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signups = append(f.signups, p)
	return f.signupMsg, f.signupErr
}

func (f *fakePatients) PatientLogin(context.Context, string, string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakePatients) GetPatientData(context.Context, string) (models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileHits++
	return f.profile, f.profileErr
}

func (f *fakePatients) BookAppointment(_ context.Context, a models.Appointment, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked = append(f.booked, a)
	return f.bookMsg, f.bookErr
}

func (f *fakePatients) GetAllAppointments(_ context.Context, token, name, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, appointmentQuery{token, name, date})
	if f.appointmentsErr != nil {
		return []models.Appointment{}, f.appointmentsErr
	}
	return f.appointments, nil
}

type fakeAuth struct {
	token string
	err   error
	users []string
}

func (f *fakeAuth) AdminLogin(_ context.Context, username, _ string) (string, error) {
	f.users = append(f.users, username)
	return f.token, f.err
}

func (f *fakeAuth) DoctorLogin(_ context.Context, email, _ string) (string, error) {
	f.users = append(f.users, email)
	return f.token, f.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []models.Appointment
	err    error
}

func (f *fakeNotifier) NotifyBooked(_ context.Context, a models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, a)
	return f.err
}

var clinicNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

type harness struct {
	e        *echo.Echo
	h        *Handler
	sessions *session.Manager
	doctors  *fakeDoctors
	patients *fakePatients
	auth     *fakeAuth
	notifier *fakeNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	hs := &harness{
		sessions: session.NewManager(session.NewMemoryStore(time.Hour), time.Hour),
		doctors: &fakeDoctors{
			doctors: []models.Doctor{
				{ID: 1, Name: "Dr. One", Specialization: "Cardiology", Availability: []string{"09:00-10:00"}},
				{ID: 2, Name: "Dr. Two", Specialization: "Dermatology"},
				{ID: 3, Name: "Dr. Three", Specialization: "Cardiology"},
			},
		},
		patients: &fakePatients{},
		auth:     &fakeAuth{},
		notifier: &fakeNotifier{},
	}
	hs.h = NewHandler(Options{
		Doctors:  hs.doctors,
		Patients: hs.patients,
		Auth:     hs.auth,
		Notifier: hs.notifier,
		Sessions: hs.sessions,
		Timezone: "UTC",
	})
	hs.h.now = func() time.Time { return clinicNow }
	hs.e = NewServer(hs.h, render.MustRenderer(), ServerConfig{ServiceName: "clinic-portal-test"})
	return hs
}

func (hs *harness) session(t *testing.T, role enums.Role, token string) *models.Session {
	t.Helper()
	s := hs.sessions.New()
	require.NoError(t, hs.sessions.SignIn(context.Background(), s, role, token))
	return s
}

func (hs *harness) reload(t *testing.T, s *models.Session) *models.Session {
	t.Helper()
	got, created, err := hs.sessions.Load(context.Background(), s.ID)
	require.NoError(t, err)
	require.False(t, created)
	return got
}

func (hs *harness) request(method, target string, form url.Values, s *models.Session, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	if s != nil {
		req.AddCookie(&http.Cookie{Name: middleware.SessionHeader, Value: s.ID})
	}
	rec := httptest.NewRecorder()
	hs.e.ServeHTTP(rec, req)
	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.Equal(t, location, rec.Header().Get(echo.HeaderLocation))
}
