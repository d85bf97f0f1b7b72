package dashboard

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/lib"
	"github.com/octabyte/clinic-portal/models"
	otellogger "github.com/octabyte/clinic-portal/otel/logger"
	"github.com/octabyte/clinic-portal/render"
	"github.com/octabyte/clinic-portal/services"
)

const loginFailedMessage = "Invalid credentials!"

// Index is the role selector. Signed-in sessions go straight to their
// dashboard.
func (h *Handler) Index(c echo.Context) error {
	s := h.currentSession(c)
	if s.HasToken() && s.Role.Authenticated() {
		return c.Redirect(http.StatusSeeOther, s.Role.Dashboard())
	}
	return h.renderIndex(c, http.StatusOK, "", nil)
}

// SelectRole opens the login form for staff roles and lets patients browse
// anonymously.
func (h *Handler) SelectRole(c echo.Context) error {
	role, ok := enums.ParseRole(c.Param("role"))
	switch {
	case !ok || role == enums.RoleLoggedPatient:
		return h.renderIndex(c, http.StatusBadRequest, "", render.Error("Please select a valid role."))
	case role == enums.RolePatient:
		s := h.currentSession(c)
		s.Role = enums.RolePatient
		s.Token = ""
		h.saveSession(c.Request().Context(), s)
		return c.Redirect(http.StatusSeeOther, role.Dashboard())
	}
	return h.renderIndex(c, http.StatusOK, role, nil)
}

func (h *Handler) AdminLogin(c echo.Context) error {
	var creds models.AdminCredentials
	if err := c.Bind(&creds); err != nil {
		return h.renderIndex(c, http.StatusBadRequest, enums.RoleAdmin, render.Error("Invalid login form."))
	}
	if err := lib.Validate(creds); err != nil {
		return h.renderIndex(c, http.StatusUnprocessableEntity, enums.RoleAdmin, render.Error(lib.ValidationMessage(err)))
	}

	ctx := c.Request().Context()
	token, err := h.auth.AdminLogin(ctx, creds.Username, creds.Password)
	if err != nil {
		return h.renderIndex(c, loginStatus(err), enums.RoleAdmin, render.Error(services.UserMessage(err, loginFailedMessage)))
	}
	return h.signIn(c, enums.RoleAdmin, token)
}

func (h *Handler) DoctorLogin(c echo.Context) error {
	var creds models.Credentials
	if err := c.Bind(&creds); err != nil {
		return h.renderIndex(c, http.StatusBadRequest, enums.RoleDoctor, render.Error("Invalid login form."))
	}
	if err := lib.Validate(creds); err != nil {
		return h.renderIndex(c, http.StatusUnprocessableEntity, enums.RoleDoctor, render.Error(lib.ValidationMessage(err)))
	}

	ctx := c.Request().Context()
	token, err := h.auth.DoctorLogin(ctx, creds.Email, creds.Password)
	if err != nil {
		return h.renderIndex(c, loginStatus(err), enums.RoleDoctor, render.Error(services.UserMessage(err, loginFailedMessage)))
	}
	return h.signIn(c, enums.RoleDoctor, token)
}

func (h *Handler) Logout(c echo.Context) error {
	return h.toEntry(c, h.currentSession(c))
}

func (h *Handler) signIn(c echo.Context, role enums.Role, token string) error {
	ctx := c.Request().Context()
	s := h.currentSession(c)
	h.views.forget(s.ID)
	if err := h.sessions.SignIn(ctx, s, role, token); err != nil {
		otellogger.ErrorCtx(ctx, "failed to store login", err)
		return h.renderIndex(c, http.StatusInternalServerError, role, render.Error("Login succeeded but the session could not be saved. Please try again."))
	}
	return c.Redirect(http.StatusSeeOther, role.Dashboard())
}

func (h *Handler) renderIndex(c echo.Context, status int, login enums.Role, alert *render.Alert) error {
	s := h.currentSession(c)
	return c.Render(status, render.PageIndex, render.IndexView{
		Page:  render.Page{Title: "Welcome", Role: s.Role, Alert: alert},
		Roles: render.RoleOptions(),
		Login: login,
	})
}

// loginStatus maps a failed login to the status of the re-rendered form.
// Any 4xx from the API means the credentials were refused.
func loginStatus(err error) int {
	var apiErr *services.Error
	if errors.As(err, &apiErr) && apiErr.Kind == services.KindStatus && apiErr.Status < http.StatusInternalServerError {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}
