package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultOTPCode is the fixed verification code accepted when no OTP
// delivery channel is configured. Real delivery is not wired up.
const DefaultOTPCode = "1234"

// MobileErrorMessage is recorded on the form when the mobile number fails
// format validation.
const MobileErrorMessage = "Please enter a valid 10-digit mobile number"

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

var ErrIncompleteRegistration = errors.New("registration form incomplete")
var ErrInvalidOTP = errors.New("invalid verification code")
var ErrWrongStep = errors.New("operation not allowed at this step")

// ValidMobile reports whether s is exactly ten ASCII digits.
func ValidMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

// RegistrationStep identifies a state of the registration machine.
type RegistrationStep int

const (
	// StepContact collects identity, mobile number, and the OTP.
	StepContact RegistrationStep = 1
	// StepDetails collects demographic, role-specific, and document fields.
	StepDetails RegistrationStep = 2
)

// RegistrationForm is the accumulated field set carried across both steps.
// Year fields stay as raw strings until submission; parsing happens at the
// service boundary.
type RegistrationForm struct {
	Institute   string
	Name        string
	InstituteID string
	Mobile      string
	Gender      string
	DOB         string
	Stream      string
	Branch      string
	CurrentYear string
	PassoutYear string
	IDCardFront string
	IDCardBack  string
	DriveLink   string
}

// RegistrationSubmission is the assembled output of a successful Submit,
// ready to be forwarded to the user repository's create operation.
type RegistrationSubmission struct {
	Form RegistrationForm
	Role Role
}

// Registration is the two-step registration state machine. Transitions
// return a new observable state in place; validation failures are local,
// non-fatal, and leave every field editable.
type Registration struct {
	Step        RegistrationStep
	Role        Role
	Form        RegistrationForm
	MobileError string

	otpCode string
}

// NewRegistration starts a registration at step 1 with role STUDENT.
// An empty otpCode falls back to DefaultOTPCode.
func NewRegistration(otpCode string) *Registration {
	if otpCode == "" {
		otpCode = DefaultOTPCode
	}
	return &Registration{
		Step:    StepContact,
		Role:    RoleStudent,
		otpCode: otpCode,
	}
}

// ValidateMobile checks the mobile field against the 10-digit format and
// records or clears MobileError accordingly.
func (r *Registration) ValidateMobile() bool {
	if !ValidMobile(r.Form.Mobile) {
		r.MobileError = MobileErrorMessage
		return false
	}
	r.MobileError = ""
	return true
}

// Advance moves from step 1 to step 2. The transition is permitted only if
// otp equals the configured code and the mobile field is valid. A wrong OTP
// fails silently; an invalid mobile records MobileError. On any failure the
// step is unchanged.
func (r *Registration) Advance(otp string) bool {
	if r.Step != StepContact {
		return false
	}
	if otp != r.otpCode {
		return false
	}
	if !r.ValidateMobile() {
		return false
	}
	r.Step = StepDetails
	return true
}

// Retreat moves back to step 1 unconditionally.
func (r *Registration) Retreat() {
	r.Step = StepContact
}

// MissingFields returns the names of required fields that are empty,
// branching the required set on the selected role. Students additionally
// owe their academic fields; faculty do not.
func (r *Registration) MissingFields() []string {
	type field struct{ name, value string }
	required := []field{
		{"institute", r.Form.Institute},
		{"name", r.Form.Name},
		{"instituteId", r.Form.InstituteID},
		{"idCardFront", r.Form.IDCardFront},
		{"idCardBack", r.Form.IDCardBack},
	}
	if r.Role == RoleStudent {
		required = append(required,
			field{"stream", r.Form.Stream},
			field{"branch", r.Form.Branch},
			field{"currentYear", r.Form.CurrentYear},
			field{"passoutYear", r.Form.PassoutYear},
		)
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Submit terminates the machine. It is only reachable from step 2 and
// requires a valid mobile plus every role-required field to be non-empty.
// On failure the machine stays at step 2 with no field reset.
func (r *Registration) Submit() (*RegistrationSubmission, error) {
	if r.Step != StepDetails {
		return nil, ErrWrongStep
	}
	if !r.ValidateMobile() {
		return nil, fmt.Errorf("%w: mobile", ErrIncompleteRegistration)
	}
	if missing := r.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteRegistration, strings.Join(missing, ", "))
	}
	return &RegistrationSubmission{Form: r.Form, Role: r.Role}, nil
}
