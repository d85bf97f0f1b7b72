package services

import (
	"context"
	"net/http"
	"strconv"

	"github.com/octabyte/clinic-portal/models"
)

type DoctorService struct {
	client *Client
}

func NewDoctorService(client *Client) *DoctorService {
	return &DoctorService{client: client}
}

// GetDoctors lists every doctor. On failure it logs the cause and returns
// an empty, non-nil slice alongside the error.
func (s *DoctorService) GetDoctors(ctx context.Context) ([]models.Doctor, error) {
	return s.list(ctx, "getDoctors", nil)
}

// FilterDoctors lists doctors matching the set filters. Unset filters are
// left out of the query rather than sent empty.
func (s *DoctorService) FilterDoctors(ctx context.Context, name, time, specialty string) ([]models.Doctor, error) {
	filter := models.DoctorFilter{Name: name, Time: time, Specialty: specialty}
	return s.list(ctx, "filterDoctors", filter.QueryParams())
}

func (s *DoctorService) list(ctx context.Context, op string, query map[string]string) ([]models.Doctor, error) {
	resp, err := s.client.do(ctx, call{
		op:     op,
		method: http.MethodGet,
		path:   "/doctors",
		query:  query,
	})
	if err != nil {
		logFailure(ctx, op, err)
		return []models.Doctor{}, err
	}

	doctors, err := decodeList[models.Doctor](op, resp.Body(), "doctors")
	if err != nil {
		logFailure(ctx, op, err)
		return []models.Doctor{}, err
	}
	return doctors, nil
}

// SaveDoctor creates a doctor. The result always carries a message fit for
// an alert; err is set whenever Success is false.
func (s *DoctorService) SaveDoctor(ctx context.Context, doctor models.Doctor, token string) (models.ActionResult, error) {
	const op = "saveDoctor"
	resp, err := s.client.do(ctx, call{
		op:            op,
		method:        http.MethodPost,
		path:          "/doctors",
		body:          doctor,
		token:         token,
		authenticated: true,
	})
	if err != nil {
		logFailure(ctx, op, err)
		return models.ActionResult{Success: false, Message: UserMessage(err, "Failed to save doctor.")}, err
	}
	return models.ActionResult{Success: true, Message: messageOr(resp.Body(), "Doctor added successfully.")}, nil
}

// DeleteDoctor removes a doctor by id. Same result contract as SaveDoctor.
func (s *DoctorService) DeleteDoctor(ctx context.Context, id int64, token string) (models.ActionResult, error) {
	const op = "deleteDoctor"
	resp, err := s.client.do(ctx, call{
		op:            op,
		method:        http.MethodDelete,
		path:          "/doctors/{id}",
		pathParams:    map[string]string{"id": strconv.FormatInt(id, 10)},
		token:         token,
		authenticated: true,
	})
	if err != nil {
		logFailure(ctx, op, err)
		return models.ActionResult{Success: false, Message: UserMessage(err, "Failed to delete doctor.")}, err
	}
	return models.ActionResult{Success: true, Message: messageOr(resp.Body(), "Doctor deleted successfully.")}, nil
}

func messageOr(body []byte, fallback string) string {
	if msg := messageFrom(body); msg != "" {
		return msg
	}
	return fallback
}
