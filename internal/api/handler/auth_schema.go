package handler

import "github.com/studentdiscount/marketplace-api/internal/core/domain"

// registerRequest mirrors the registration form payload: every form field
// plus the selected role and the OTP from the contact step. Field-level
// requirements beyond shape live in the domain registration machine, which
// the service re-runs server-side.
type registerRequest struct {
	Institute   string `json:"institute"`
	Name        string `json:"name"`
	Email       string `json:"email"       validate:"required,email"`
	InstituteID string `json:"instituteId"`
	Mobile      string `json:"mobile"      validate:"required,mobile"`
	Gender      string `json:"gender"`
	DOB         string `json:"dob"`
	Stream      string `json:"stream"`
	Branch      string `json:"branch"`
	CurrentYear string `json:"currentYear"`
	PassoutYear string `json:"passoutYear"`
	IDCardFront string `json:"idCardFront"`
	IDCardBack  string `json:"idCardBack"`
	DriveLink   string `json:"driveLink"`
	Role        string `json:"role"        validate:"required,oneof=STUDENT FACULTY"`
	OTP         string `json:"otp"         validate:"required"`
}

// registerResponse is the contract the registration workflow depends on.
type registerResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

type adminLoginRequest struct {
	UserID   string `json:"userId"   validate:"required"`
	Password string `json:"password" validate:"required"`
}

type otpRequest struct {
	Mobile string `json:"mobile" validate:"required,mobile"`
}

// otpResponse carries the issued code back to the caller. There is no
// delivery channel wired up, so the code travels in the response.
type otpResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
}
