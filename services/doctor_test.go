package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octabyte/clinic-portal/models"
)

func TestFilterDoctors_OmitsUnsetFilters(t *testing.T) {
	tests := []struct {
		name      string
		docName   string
		time      string
		specialty string
		want      map[string]string
	}{
		{"all empty", "", "", "", map[string]string{}},
		{"name only", "Lee", "", "", map[string]string{"name": "Lee"}},
		{"time only", "", "AM", "", map[string]string{"availability": "AM"}},
		{"specialty only", "", "", "Cardiology", map[string]string{"specialization": "Cardiology"}},
		{"name and time", "Lee", "PM", "", map[string]string{"name": "Lee", "availability": "PM"}},
		{"name and specialty", "Lee", "", "Cardiology", map[string]string{"name": "Lee", "specialization": "Cardiology"}},
		{"time and specialty", "", "AM", "Cardiology", map[string]string{"availability": "AM", "specialization": "Cardiology"}},
		{"all set", "Lee", "AM", "Cardiology", map[string]string{"name": "Lee", "availability": "AM", "specialization": "Cardiology"}},
		{"whitespace is unset", "  ", " ", "\t", map[string]string{}},
		{"lowercase time", "", "pm", "", map[string]string{"availability": "PM"}},
		{"unknown time bucket", "", "evening", "", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, http.StatusOK, `[]`)
			svc := NewDoctorService(api.client())

			doctors, err := svc.FilterDoctors(bg, tt.docName, tt.time, tt.specialty)
			require.NoError(t, err)
			assert.Empty(t, doctors)

			call := api.lastCall()
			assert.Equal(t, http.MethodGet, call.Method)
			assert.Equal(t, "/doctors", call.Path)
			require.Len(t, call.Query, len(tt.want))
			for k, v := range tt.want {
				assert.Equal(t, []string{v}, call.Query[k], "query param %s", k)
			}
		})
	}
}

func TestFilterDoctors_Example(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `[]`)
	svc := NewDoctorService(api.client())

	doctors, err := svc.FilterDoctors(bg, "Lee", "AM", "Cardiology")
	require.NoError(t, err)
	assert.NotNil(t, doctors)
	assert.Len(t, doctors, 0)

	call := api.lastCall()
	assert.Equal(t, "Lee", call.Query["name"][0])
	assert.Equal(t, "AM", call.Query["availability"][0])
	assert.Equal(t, "Cardiology", call.Query["specialization"][0])
}

func TestGetDoctors_DecodesArrayAndEnvelope(t *testing.T) {
	bodies := map[string]string{
		"array":    `[{"id":1,"name":"Ana Lee","specialization":"Cardiology","email":"ana@clinic.test","availability":["09:00-10:00","14:00-15:00"]}]`,
		"envelope": `{"doctors":[{"id":"1","name":"Ana Lee","specialty":"Cardiology","email":"ana@clinic.test","availableTimes":["09:00-10:00","14:00-15:00"]}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			api := newFakeAPI(t, http.StatusOK, body)
			doctors, err := NewDoctorService(api.client()).GetDoctors(bg)
			require.NoError(t, err)
			require.Len(t, doctors, 1)

			d := doctors[0]
			assert.Equal(t, int64(1), d.ID)
			assert.Equal(t, "Ana Lee", d.Name)
			assert.Equal(t, "Cardiology", d.Specialization)
			assert.Equal(t, []string{"09:00-10:00", "14:00-15:00"}, d.Availability)
			assert.Empty(t, api.lastCall().Query)
		})
	}
}

func TestDoctorLists_NeverFailWithoutAnEmptySlice(t *testing.T) {
	failures := []struct {
		name   string
		status int
		body   string
		kind   ErrorKind
	}{
		{"server error", http.StatusInternalServerError, `{"message":"boom"}`, KindStatus},
		{"not found", http.StatusNotFound, ``, KindStatus},
		{"malformed body", http.StatusOK, `{"doctors":`, KindDecode},
		{"empty body", http.StatusOK, ``, KindDecode},
		{"object without list", http.StatusOK, `{"count":0}`, KindDecode},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, tt.status, tt.body)
			svc := NewDoctorService(api.client())

			for _, list := range []func() ([]models.Doctor, error){
				func() ([]models.Doctor, error) { return svc.GetDoctors(bg) },
				func() ([]models.Doctor, error) { return svc.FilterDoctors(bg, "Lee", "", "") },
			} {
				var doctors []models.Doctor
				var err error
				require.NotPanics(t, func() { doctors, err = list() })
				assert.NotNil(t, doctors)
				assert.Empty(t, doctors)

				var apiErr *Error
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, tt.kind, apiErr.Kind)
			}
		})
	}

	t.Run("transport failure", func(t *testing.T) {
		svc := NewDoctorService(deadClient(t))
		doctors, err := svc.GetDoctors(bg)
		assert.NotNil(t, doctors)
		assert.Empty(t, doctors)

		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, KindNetwork, apiErr.Kind)
	})
}

func TestSaveDoctor(t *testing.T) {
	doctor := models.Doctor{
		Name:           "Ana Lee",
		Specialization: "Cardiology",
		Email:          "ana@clinic.test",
		Password:       "secret1",
		Availability:   []string{"09:00-10:00"},
	}

	t.Run("success", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusCreated, `{"message":"Doctor added to db"}`)
		result, err := NewDoctorService(api.client()).SaveDoctor(bg, doctor, "admin-token")
		require.NoError(t, err)
		assert.Equal(t, models.ActionResult{Success: true, Message: "Doctor added to db"}, result)

		call := api.lastCall()
		assert.Equal(t, http.MethodPost, call.Method)
		assert.Equal(t, "/doctors", call.Path)
		assert.Equal(t, "Bearer admin-token", call.Auth)
		assert.JSONEq(t, `{"name":"Ana Lee","specialization":"Cardiology","email":"ana@clinic.test","password":"secret1","availability":["09:00-10:00"]}`, call.Body)
	})

	t.Run("conflict", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusConflict, `{"message":"Doctor already exists"}`)
		result, err := NewDoctorService(api.client()).SaveDoctor(bg, doctor, "admin-token")
		assert.Error(t, err)
		assert.Equal(t, models.ActionResult{Success: false, Message: "Doctor already exists"}, result)
	})

	t.Run("transport failure uses default message", func(t *testing.T) {
		result, err := NewDoctorService(deadClient(t)).SaveDoctor(bg, doctor, "admin-token")
		assert.Error(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Failed to save doctor.", result.Message)
	})

	t.Run("missing token sends nothing", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusCreated, `{}`)
		result, err := NewDoctorService(api.client()).SaveDoctor(bg, doctor, "")
		assert.True(t, IsUnauthorized(err))
		assert.False(t, result.Success)
		assert.Empty(t, api.calls())
	})
}

func TestDeleteDoctor(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, ``)
		result, err := NewDoctorService(api.client()).DeleteDoctor(bg, 42, "admin-token")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Doctor deleted successfully.", result.Message)

		call := api.lastCall()
		assert.Equal(t, http.MethodDelete, call.Method)
		assert.Equal(t, "/doctors/42", call.Path)
		assert.Equal(t, "Bearer admin-token", call.Auth)
	})

	t.Run("not found", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusNotFound, `{"message":"Doctor not found"}`)
		result, err := NewDoctorService(api.client()).DeleteDoctor(bg, 42, "admin-token")
		assert.Error(t, err)
		assert.Equal(t, models.ActionResult{Success: false, Message: "Doctor not found"}, result)
	})

	t.Run("expired token", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusUnauthorized, `{"message":"Invalid or expired token"}`)
		_, err := NewDoctorService(api.client()).DeleteDoctor(bg, 42, "stale")
		assert.True(t, IsUnauthorized(err))
	})
}
