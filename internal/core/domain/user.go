package domain

import (
	"errors"
	"time"
)

// Role classifies a user account. The set is closed: every stored user
// carries exactly one of these values.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleFaculty Role = "FACULTY"
	RoleAdmin   Role = "ADMIN"
	RoleVendor  Role = "VENDOR"
)

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin, RoleVendor:
		return true
	}
	return false
}

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrMobileTaken = errors.New("mobile already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrForbidden = errors.New("access forbidden")

// StudentDetails holds the academic fields collected from students and
// faculty during registration.
type StudentDetails struct {
	Stream      string    `json:"stream,omitempty" bson:"stream,omitempty"`
	Branch      string    `json:"branch,omitempty" bson:"branch,omitempty"`
	CurrentYear int       `json:"current_year,omitempty" bson:"current_year,omitempty"`
	PassoutYear int       `json:"passout_year,omitempty" bson:"passout_year,omitempty"`
	Gender      string    `json:"gender,omitempty" bson:"gender,omitempty"`
	DOB         time.Time `json:"dob,omitempty" bson:"dob,omitempty"`
	IDCardURL   string    `json:"id_card_url,omitempty" bson:"id_card_url,omitempty"`
}

// BankDetails holds a vendor's settlement account.
type BankDetails struct {
	BankName          string `json:"bank_name" bson:"bank_name"`
	AccountNumber     string `json:"account_number" bson:"account_number"`
	IFSCCode          string `json:"ifsc_code" bson:"ifsc_code"`
	AccountHolderName string `json:"account_holder_name" bson:"account_holder_name"`
}

// VendorDetails holds the business profile collected from vendors.
type VendorDetails struct {
	BusinessType string       `json:"business_type,omitempty" bson:"business_type,omitempty"`
	Category     string       `json:"category,omitempty" bson:"category,omitempty"`
	Address      string       `json:"address,omitempty" bson:"address,omitempty"`
	City         string       `json:"city,omitempty" bson:"city,omitempty"`
	State        string       `json:"state,omitempty" bson:"state,omitempty"`
	Pincode      string       `json:"pincode,omitempty" bson:"pincode,omitempty"`
	Country      string       `json:"country,omitempty" bson:"country,omitempty"`
	GSTNumber    string       `json:"gst_number,omitempty" bson:"gst_number,omitempty"`
	PANNumber    string       `json:"pan_number,omitempty" bson:"pan_number,omitempty"`
	BankDetails  *BankDetails `json:"bank_details,omitempty" bson:"bank_details,omitempty"`
}

// User is the account aggregate. PasswordHash is stored but never serialised
// and never present on records returned by a repository read path.
type User struct {
	ID             string          `json:"id" bson:"_id,omitempty"`
	Name           string          `json:"name" bson:"name"`
	Email          string          `json:"email" bson:"email"`
	Mobile         string          `json:"mobile" bson:"mobile"`
	Role           Role            `json:"role" bson:"role"`
	Verified       bool            `json:"verified" bson:"verified"`
	Institute      string          `json:"institute,omitempty" bson:"institute,omitempty"`
	RollNo         string          `json:"roll_no,omitempty" bson:"roll_no,omitempty"`
	EmployeeID     string          `json:"employee_id,omitempty" bson:"employee_id,omitempty"`
	BusinessName   string          `json:"business_name,omitempty" bson:"business_name,omitempty"`
	StudentDetails *StudentDetails `json:"student_details,omitempty" bson:"student_details,omitempty"`
	VendorDetails  *VendorDetails  `json:"vendor_details,omitempty" bson:"vendor_details,omitempty"`
	PasswordHash   string          `json:"-" bson:"password_hash,omitempty"`
	CreatedAt      time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" bson:"updated_at"`
}

// Redacted returns a copy of the user with the password hash stripped.
// Every repository read path goes through this before handing a record out.
func (u *User) Redacted() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
