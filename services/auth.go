package services

import (
	"context"
	"net/http"

	"github.com/octabyte/clinic-portal/models"
)

// AuthService signs in staff. Patients sign in through PatientService.
type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	return s.login(ctx, "adminLogin", "/admin", models.AdminCredentials{Username: username, Password: password})
}

func (s *AuthService) DoctorLogin(ctx context.Context, email, password string) (string, error) {
	return s.login(ctx, "doctorLogin", "/doctor/login", models.Credentials{Email: email, Password: password})
}

func (s *AuthService) login(ctx context.Context, op, path string, body interface{}) (string, error) {
	resp, err := s.client.do(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   path,
		body:   body,
	})
	if err != nil {
		logFailure(ctx, op, err)
		return "", err
	}

	token, err := tokenFrom(op, resp.Body())
	if err != nil {
		logFailure(ctx, op, err)
		return "", err
	}
	return token, nil
}
