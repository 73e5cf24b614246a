package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studentdiscount/marketplace-api/internal/api/metrics"
	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account from the registration form.
//
// The response always carries the {success, message?} envelope the
// registration workflow depends on, including on failure.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form fields plus role"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  registerResponse
// @Failure      409   {object}  registerResponse
// @Failure      422   {object}  registerResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, registerResponse{Success: false, Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationErrorsTotal.WithLabelValues("validation").Inc()
		return c.JSON(http.StatusUnprocessableEntity, registerResponse{Success: false, Message: err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Institute:   req.Institute,
		Name:        req.Name,
		Email:       req.Email,
		InstituteID: req.InstituteID,
		Mobile:      req.Mobile,
		Gender:      req.Gender,
		DOB:         req.DOB,
		Stream:      req.Stream,
		Branch:      req.Branch,
		CurrentYear: req.CurrentYear,
		PassoutYear: req.PassoutYear,
		IDCardFront: req.IDCardFront,
		IDCardBack:  req.IDCardBack,
		DriveLink:   req.DriveLink,
		Role:        req.Role,
		OTP:         req.OTP,
	})
	if err != nil {
		status := http.StatusInternalServerError
		reason := "repository"
		switch {
		case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrMobileTaken):
			status = http.StatusConflict
			reason = "conflict"
		case errors.Is(err, domain.ErrIncompleteRegistration), errors.Is(err, domain.ErrInvalidRole),
			errors.Is(err, domain.ErrInvalidOTP):
			status = http.StatusUnprocessableEntity
			reason = "validation"
		}
		metrics.RegistrationErrorsTotal.WithLabelValues(reason).Inc()
		return c.JSON(status, registerResponse{Success: false, Message: err.Error()})
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, registerResponse{Success: true, User: user})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// AdminLogin authenticates against the durable admin collection.
//
// @Summary      Back-office login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Admin credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.AdminLogin(c.Request().Context(), req.UserID, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token})
}

// RequestOTP issues a verification code for a mobile number.
//
// @Summary      Request an OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      otpRequest  true  "Mobile number"
// @Success      200   {object}  otpResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/otp/request [post]
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	code, err := h.authService.RequestOTP(c.Request().Context(), req.Mobile)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, otpResponse{Success: true, Code: code})
}
