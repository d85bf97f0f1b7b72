package models

// AdminCredentials is the admin login body; admins sign in by username.
type AdminCredentials struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Credentials is the email/password login body used by doctors and patients.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ActionResult is what create and delete calls report back to the dashboard.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
