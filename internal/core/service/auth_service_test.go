package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	passwords map[string]string // email -> plaintext accepted by VerifyCredentials
	createErr error
	nextID    int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:      make(map[string]*domain.User),
		passwords: make(map[string]string),
	}
}

func cloneStubUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneStubUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneStubUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByMobile(_ context.Context, mobile string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Mobile == mobile {
			return cloneStubUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	clone := cloneStubUser(user)
	clone.ID = fmt.Sprintf("usr_%d", r.nextID)
	clone.Verified = false
	r.byID[clone.ID] = cloneStubUser(clone)
	return clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserUpdate) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Verified != nil {
		u.Verified = *patch.Verified
	}
	return cloneStubUser(u), nil
}

func (r *stubUserRepo) VerifyCredentials(_ context.Context, email, password string) (*domain.User, error) {
	if r.passwords[email] != password {
		return nil, domain.ErrInvalidCredentials
	}
	return r.FindByEmail(context.Background(), email)
}

type stubAdminRepo struct {
	byUserID map[string]*domain.Admin
}

func (r *stubAdminRepo) FindByUserID(_ context.Context, userID string) (*domain.Admin, error) {
	a, ok := r.byUserID[userID]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if _, exists := r.byUserID[admin.UserID]; exists {
		return nil, domain.ErrAdminExists
	}
	clone := *admin
	r.byUserID[admin.UserID] = &clone
	return admin, nil
}

type stubOTPStore struct {
	issued   []string
	issueErr error
}

func (s *stubOTPStore) Issue(_ context.Context, mobile string) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}
	s.issued = append(s.issued, mobile)
	return "4821", nil
}

func (s *stubOTPStore) Verify(_ context.Context, _, code string) (bool, error) {
	return code == "4821", nil
}

type stubEmitter struct {
	events []domain.AuditEvent
}

func (e *stubEmitter) Emit(event domain.AuditEvent) {
	e.events = append(e.events, event)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newAuthSvc(users *stubUserRepo, admins ports.AdminRepository, audit ports.AuditEmitter) *AuthService {
	return NewAuthService(users, admins, &stubOTPStore{}, audit, "secret", time.Hour, "", zerolog.Nop())
}

func studentInput() ports.RegisterInput {
	return ports.RegisterInput{
		Institute:   "Delhi Technical University",
		Name:        "Priya Patel",
		Email:       "priya@example.com",
		InstituteID: "DTU/2022/EC/045",
		Mobile:      "9876543299",
		Gender:      "Female",
		DOB:         "2001-08-14",
		Stream:      "Engineering",
		Branch:      "Electronics",
		CurrentYear: "2",
		PassoutYear: "2026",
		IDCardFront: "https://example.com/id/front.jpg",
		IDCardBack:  "https://example.com/id/back.jpg",
		Role:        "STUDENT",
		OTP:         "4821",
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Student(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubEmitter{}
	svc := newAuthSvc(repo, nil, audit)

	user, err := svc.Register(context.Background(), studentInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.Role != domain.RoleStudent {
		t.Errorf("unexpected role: %s", user.Role)
	}
	if user.Verified {
		t.Errorf("new accounts must start unverified")
	}
	if user.RollNo != "DTU/2022/EC/045" {
		t.Errorf("institute id should land on RollNo for students, got %q", user.RollNo)
	}
	if user.EmployeeID != "" {
		t.Errorf("EmployeeID should stay empty for students")
	}
	if user.StudentDetails == nil {
		t.Fatalf("expected student details")
	}
	if user.StudentDetails.CurrentYear != 2 || user.StudentDetails.PassoutYear != 2026 {
		t.Errorf("year fields not parsed: %+v", user.StudentDetails)
	}
	if user.StudentDetails.DOB.Format("2006-01-02") != "2001-08-14" {
		t.Errorf("dob not parsed: %v", user.StudentDetails.DOB)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditUserRegistered {
		t.Errorf("expected one registration audit event, got %+v", audit.events)
	}
}

func TestAuthService_Register_Faculty(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil, nil)

	input := studentInput()
	input.Role = "FACULTY"
	input.Stream = ""
	input.Branch = ""
	input.CurrentYear = ""
	input.PassoutYear = ""

	user, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("faculty registration failed: %v", err)
	}
	if user.EmployeeID != "DTU/2022/EC/045" {
		t.Errorf("institute id should land on EmployeeID for faculty, got %q", user.EmployeeID)
	}
	if user.RollNo != "" {
		t.Errorf("RollNo should stay empty for faculty")
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), nil, nil)

	input := studentInput()
	input.Role = "VENDOR"
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), nil, nil)

	input := studentInput()
	input.Stream = ""
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrIncompleteRegistration) {
		t.Fatalf("expected ErrIncompleteRegistration, got %v", err)
	}

	input = studentInput()
	input.Email = ""
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrIncompleteRegistration) {
		t.Fatalf("expected ErrIncompleteRegistration for missing email, got %v", err)
	}
}

func TestAuthService_Register_WrongOTP(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubEmitter{}
	svc := newAuthSvc(repo, nil, audit)

	input := studentInput()
	input.OTP = "9999"
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Errorf("a wrong code must not create an account")
	}
	if len(audit.events) != 0 {
		t.Errorf("a wrong code must not emit an audit event")
	}
}

func TestAuthService_Register_IssuedOTPAccepted(t *testing.T) {
	// The full flow: RequestOTP issues the code the register call consumes.
	repo := newStubUserRepo()
	otp := &stubOTPStore{}
	svc := NewAuthService(repo, nil, otp, nil, "secret", time.Hour, "", zerolog.Nop())

	input := studentInput()
	code, err := svc.RequestOTP(context.Background(), input.Mobile)
	if err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}

	input.OTP = code
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("registration with the issued code failed: %v", err)
	}
}

func TestAuthService_Register_InvalidMobile(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), nil, nil)

	input := studentInput()
	input.Mobile = "12345"
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrIncompleteRegistration) {
		t.Fatalf("expected ErrIncompleteRegistration, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubEmitter{}
	svc := newAuthSvc(repo, nil, audit)

	if _, err := svc.Register(context.Background(), studentInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), studentInput()); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(audit.events) != 1 {
		t.Errorf("failed registration must not emit an audit event")
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.byID["usr_1"] = &domain.User{ID: "usr_1", Email: "rahul@example.com", Role: domain.RoleStudent}
	repo.passwords["rahul@example.com"] = "student123"
	svc := newAuthSvc(repo, nil, nil)

	token, user, err := svc.Login(context.Background(), "rahul@example.com", "student123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != "usr_1" {
		t.Errorf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["user_id"] != "usr_1" || claims["role"] != "STUDENT" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.byID["usr_1"] = &domain.User{ID: "usr_1", Email: "rahul@example.com"}
	repo.passwords["rahul@example.com"] = "student123"
	svc := newAuthSvc(repo, nil, nil)

	if _, _, err := svc.Login(context.Background(), "rahul@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// AdminLogin
// ---------------------------------------------------------------------------

func TestAuthService_AdminLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admins := &stubAdminRepo{byUserID: map[string]*domain.Admin{
		"ADM001": {UserID: "ADM001", PasswordHash: string(hash)},
	}}
	svc := newAuthSvc(newStubUserRepo(), admins, nil)

	token, err := svc.AdminLogin(context.Background(), "ADM001", "admin123")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "ADMIN" {
		t.Errorf("admin tokens must carry the admin role, got %v", claims["role"])
	}

	if _, err := svc.AdminLogin(context.Background(), "ADM001", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.AdminLogin(context.Background(), "ADM999", "admin123"); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Errorf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestAuthService_AdminLogin_NoStore(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), nil, nil)

	if _, err := svc.AdminLogin(context.Background(), "ADM001", "admin123"); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound without an admin store, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// RequestOTP
// ---------------------------------------------------------------------------

func TestAuthService_RequestOTP(t *testing.T) {
	otp := &stubOTPStore{}
	svc := NewAuthService(newStubUserRepo(), nil, otp, nil, "secret", time.Hour, "", zerolog.Nop())

	code, err := svc.RequestOTP(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	if code != "4821" {
		t.Errorf("unexpected code: %q", code)
	}
	if len(otp.issued) != 1 || otp.issued[0] != "9876543210" {
		t.Errorf("expected one issue for the mobile, got %v", otp.issued)
	}

	if _, err := svc.RequestOTP(context.Background(), "98765"); !errors.Is(err, domain.ErrIncompleteRegistration) {
		t.Errorf("expected ErrIncompleteRegistration for a short mobile, got %v", err)
	}
	if len(otp.issued) != 1 {
		t.Errorf("invalid mobile must not reach the store")
	}
}
