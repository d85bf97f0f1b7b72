package dashboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/lib"
	"github.com/octabyte/clinic-portal/models"
	"github.com/octabyte/clinic-portal/render"
	"github.com/octabyte/clinic-portal/services"
)

// AdminDashboard renders the admin page with the doctor list narrowed by
// the name, time and specialty query parameters.
func (h *Handler) AdminDashboard(c echo.Context) error {
	return h.adminList(c, false)
}

// AdminDoctors renders only the doctor list, for in-page filtering.
func (h *Handler) AdminDoctors(c echo.Context) error {
	return h.adminList(c, true)
}

func (h *Handler) adminList(c echo.Context, fragment bool) error {
	s, ok := h.authorize(c, enums.RoleAdmin)
	if !ok {
		return h.toEntry(c, s)
	}

	filter := doctorFilter(c)
	ctx, lease := h.sequenced(c, s, viewAdminDoctors)
	defer lease.Release()

	doctors, err := h.loadDoctors(ctx, filter)
	if !lease.Current() {
		return superseded(c, viewAdminDoctors)
	}

	listing := adminListing{List: render.NewDoctorList(doctors, enums.RoleAdmin), Filter: filter}
	if err == nil {
		h.views.storeAdmin(s.ID, listing)
	}
	return h.renderAdmin(c, http.StatusOK, fragment, listView(listing, err != nil), models.Doctor{}, nil)
}

// CreateDoctor validates the add-doctor form and submits it. An invalid
// form never reaches the API.
func (h *Handler) CreateDoctor(c echo.Context) error {
	s, ok := h.authorize(c, enums.RoleAdmin)
	if !ok {
		return h.toEntry(c, s)
	}
	ctx := c.Request().Context()

	var doctor models.Doctor
	if err := c.Bind(&doctor); err != nil {
		listing, failed := h.adminListing(ctx, s)
		return h.renderAdmin(c, http.StatusBadRequest, false, listView(listing, failed), models.Doctor{}, render.Error("Invalid doctor form."))
	}
	doctor.ID = 0
	if doctor.Availability == nil {
		doctor.Availability = []string{}
	}

	if err := lib.Validate(doctor); err != nil {
		doctor.Password = ""
		listing, failed := h.adminListing(ctx, s)
		return h.renderAdmin(c, http.StatusUnprocessableEntity, false, listView(listing, failed), doctor, render.Error(lib.ValidationMessage(err)))
	}

	result, err := h.doctors.SaveDoctor(ctx, doctor, s.Token)
	if services.IsUnauthorized(err) {
		return h.toEntry(c, s)
	}

	form := models.Doctor{}
	alert := render.Success(result.Message)
	if !result.Success {
		doctor.Password = ""
		form = doctor
		alert = render.Error(result.Message)
	}

	// Re-fetch with the admin's current filter so a new doctor shows up.
	cached, _ := h.views.admin(s.ID)
	doctors, lerr := h.loadDoctors(ctx, cached.Filter)
	listing := adminListing{List: render.NewDoctorList(doctors, enums.RoleAdmin), Filter: cached.Filter}
	if lerr == nil {
		h.views.storeAdmin(s.ID, listing)
	}
	return h.renderAdmin(c, http.StatusOK, false, listView(listing, lerr != nil), form, alert)
}

// DeleteDoctor deletes one doctor. On success exactly that card leaves the
// list the admin last saw; on failure the list is re-rendered unchanged
// with an error alert.
func (h *Handler) DeleteDoctor(c echo.Context) error {
	s, ok := h.authorize(c, enums.RoleAdmin)
	if !ok {
		return h.toEntry(c, s)
	}
	ctx := c.Request().Context()
	fragment := wantsFragment(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		listing, failed := h.adminListing(ctx, s)
		return h.renderAdmin(c, http.StatusBadRequest, fragment, listView(listing, failed), models.Doctor{}, render.Error("Invalid doctor id."))
	}

	result, err := h.doctors.DeleteDoctor(ctx, id, s.Token)
	if services.IsUnauthorized(err) {
		return h.toEntry(c, s)
	}

	alert := render.Error(result.Message)
	if result.Success {
		alert = render.Success(result.Message)
	}

	listing, cached := h.views.admin(s.ID)
	if !cached {
		var failed bool
		listing, failed = h.adminListing(ctx, s)
		return h.renderAdmin(c, http.StatusOK, fragment, listView(listing, failed), models.Doctor{}, alert)
	}

	if result.Success {
		listing.List.Remove(id)
		h.views.storeAdmin(s.ID, listing)
	}
	return h.renderAdmin(c, http.StatusOK, fragment, listView(listing, false), models.Doctor{}, alert)
}

// adminListing returns the list the admin last saw, fetching it when the
// view cache has none.
func (h *Handler) adminListing(ctx context.Context, s *models.Session) (adminListing, bool) {
	if listing, ok := h.views.admin(s.ID); ok {
		return listing, false
	}
	doctors, err := h.doctors.GetDoctors(ctx)
	listing := adminListing{List: render.NewDoctorList(doctors, enums.RoleAdmin)}
	if err != nil {
		return listing, true
	}
	h.views.storeAdmin(s.ID, listing)
	return listing, false
}

func (h *Handler) renderAdmin(c echo.Context, status int, fragment bool, list render.DoctorListView, form models.Doctor, alert *render.Alert) error {
	if fragment {
		list.Alert = alert
		return c.Render(status, render.FragmentDoctorList, list)
	}
	return c.Render(status, render.PageAdmin, render.AdminView{
		Page:    render.Page{Title: "Admin Dashboard", Role: enums.RoleAdmin, Alert: alert},
		Doctors: list,
		Form:    form,
	})
}

func listView(listing adminListing, failed bool) render.DoctorListView {
	return render.DoctorListView{List: listing.List, Failed: failed, Filter: listing.Filter}
}

// loadDoctors lists every doctor when no filter is set and filters
// otherwise.
func (h *Handler) loadDoctors(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, error) {
	if filter.IsEmpty() {
		return h.doctors.GetDoctors(ctx)
	}
	return h.doctors.FilterDoctors(ctx, filter.Name, filter.Time, filter.Specialty)
}

func doctorFilter(c echo.Context) models.DoctorFilter {
	return models.DoctorFilter{
		Name:      c.QueryParam("name"),
		Time:      c.QueryParam("time"),
		Specialty: c.QueryParam("specialty"),
	}
}
