package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

// AuthService implements registration, marketplace login, OTP issuance, and
// the back-office login.
type AuthService struct {
	users     ports.UserRepository
	admins    ports.AdminRepository // nil when no durable store is configured
	otp       ports.OTPStore
	audit     ports.AuditEmitter // nil disables the audit trail
	jwtSecret string
	tokenTTL  time.Duration
	otpCode   string
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	admins ports.AdminRepository,
	otp ports.OTPStore,
	audit ports.AuditEmitter,
	jwtSecret string,
	tokenTTL time.Duration,
	otpCode string,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if otpCode == "" {
		otpCode = domain.DefaultOTPCode
	}
	return &AuthService{
		users:     users,
		admins:    admins,
		otp:       otp,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		otpCode:   otpCode,
		logger:    logger,
	}
}

// Register verifies the OTP from the contact step, re-runs the registration
// state machine's submission checks on the server, and creates the user when
// both pass.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	role := domain.Role(input.Role)
	if role != domain.RoleStudent && role != domain.RoleFaculty {
		return nil, domain.ErrInvalidRole
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email", domain.ErrIncompleteRegistration)
	}

	// The store accepts issued codes (consuming them) and the configured
	// fixed code.
	ok, err := s.otp.Verify(ctx, input.Mobile, input.OTP)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidOTP
	}

	reg := domain.NewRegistration(s.otpCode)
	reg.Role = role
	reg.Step = domain.StepDetails
	reg.Form = domain.RegistrationForm{
		Institute:   input.Institute,
		Name:        input.Name,
		InstituteID: input.InstituteID,
		Mobile:      input.Mobile,
		Gender:      input.Gender,
		DOB:         input.DOB,
		Stream:      input.Stream,
		Branch:      input.Branch,
		CurrentYear: input.CurrentYear,
		PassoutYear: input.PassoutYear,
		IDCardFront: input.IDCardFront,
		IDCardBack:  input.IDCardBack,
		DriveLink:   input.DriveLink,
	}

	submission, err := reg.Submit()
	if err != nil {
		return nil, err
	}

	user := buildUser(input.Email, submission)
	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("registration create failed")
		return nil, err
	}

	s.emit(domain.AuditEvent{
		Action:   domain.AuditUserRegistered,
		Entity:   "user",
		EntityID: created.ID,
		At:       time.Now().UTC(),
	})
	s.logger.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("user registered")

	return created, nil
}

// buildUser assembles the repository record from a validated submission.
// The institute id lands on RollNo for students and EmployeeID for faculty.
func buildUser(email string, sub *domain.RegistrationSubmission) *domain.User {
	user := &domain.User{
		Name:      sub.Form.Name,
		Email:     email,
		Mobile:    sub.Form.Mobile,
		Role:      sub.Role,
		Institute: sub.Form.Institute,
	}
	if sub.Role == domain.RoleStudent {
		user.RollNo = sub.Form.InstituteID
	} else {
		user.EmployeeID = sub.Form.InstituteID
	}

	currentYear, _ := strconv.Atoi(sub.Form.CurrentYear)
	passoutYear, _ := strconv.Atoi(sub.Form.PassoutYear)
	dob, _ := time.Parse("2006-01-02", sub.Form.DOB)
	user.StudentDetails = &domain.StudentDetails{
		Stream:      sub.Form.Stream,
		Branch:      sub.Form.Branch,
		CurrentYear: currentYear,
		PassoutYear: passoutYear,
		Gender:      sub.Form.Gender,
		DOB:         dob,
		IDCardURL:   sub.Form.IDCardFront,
	}
	return user
}

// Login verifies credentials against the user store and mints a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.VerifyCredentials(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// AdminLogin verifies back-office credentials against the admin collection.
func (s *AuthService) AdminLogin(ctx context.Context, userID, password string) (string, error) {
	if s.admins == nil {
		return "", domain.ErrAdminNotFound
	}
	if userID == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateToken(admin.UserID, domain.RoleAdmin)
}

// RequestOTP issues a code for a mobile number. Delivery is not wired, so
// the code is logged at debug level and handed back to the caller.
func (s *AuthService) RequestOTP(ctx context.Context, mobile string) (string, error) {
	if !domain.ValidMobile(mobile) {
		return "", fmt.Errorf("%w: mobile", domain.ErrIncompleteRegistration)
	}

	code, err := s.otp.Issue(ctx, mobile)
	if err != nil {
		return "", err
	}

	s.logger.Debug().Str("mobile", mobile).Str("code", code).Msg("otp issued")
	return code, nil
}

func (s *AuthService) generateToken(userID string, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) emit(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Emit(event)
	}
}
