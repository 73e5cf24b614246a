package memory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

// Registration does not yet collect a real password from the form, so new
// accounts start with this placeholder credential.
const placeholderPassword = "defaultpassword"

// UserRepository implements ports.UserRepository over the shared store.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	if u.StudentDetails != nil {
		sd := *u.StudentDetails
		clone.StudentDetails = &sd
	}
	if u.VendorDetails != nil {
		vd := *u.VendorDetails
		clone.VendorDetails = &vd
		if u.VendorDetails.BankDetails != nil {
			bd := *u.VendorDetails.BankDetails
			clone.VendorDetails.BankDetails = &bd
		}
	}
	return &clone
}

func (r *UserRepository) findLocked(match func(*domain.User) bool) *domain.User {
	for _, u := range r.store.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func (r *UserRepository) findRedacted(match func(*domain.User) bool) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u := r.findLocked(match)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u).Redacted(), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.findRedacted(func(u *domain.User) bool { return u.ID == id })
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findRedacted(func(u *domain.User) bool { return u.Email == email })
}

func (r *UserRepository) FindByMobile(_ context.Context, mobile string) (*domain.User, error) {
	return r.findRedacted(func(u *domain.User) bool { return u.Mobile == mobile })
}

// Create appends a new record. Verified is forced to false and the
// credential to the placeholder regardless of input. Email and mobile must
// not collide with an existing record.
func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(placeholderPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.findLocked(func(u *domain.User) bool { return u.Email == user.Email }) != nil {
		return nil, domain.ErrEmailTaken
	}
	if user.Mobile != "" {
		if r.findLocked(func(u *domain.User) bool { return u.Mobile == user.Mobile }) != nil {
			return nil, domain.ErrMobileTaken
		}
	}

	now := time.Now().UTC()
	record := cloneUser(user)
	record.ID = newID("usr")
	record.Verified = false
	record.PasswordHash = string(hash)
	record.CreatedAt = now
	record.UpdatedAt = now

	r.store.users = append(r.store.users, record)
	return cloneUser(record).Redacted(), nil
}

// Update shallow-merges the patch over the stored record in place and
// refreshes UpdatedAt. Email and mobile keep the same uniqueness constraint
// as Create: a patch may not take another record's value.
func (r *UserRepository) Update(_ context.Context, id string, patch ports.UserUpdate) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u := r.findLocked(func(u *domain.User) bool { return u.ID == id })
	if u == nil {
		return nil, domain.ErrUserNotFound
	}

	if patch.Email != nil {
		if r.findLocked(func(o *domain.User) bool { return o.ID != id && o.Email == *patch.Email }) != nil {
			return nil, domain.ErrEmailTaken
		}
	}
	if patch.Mobile != nil && *patch.Mobile != "" {
		if r.findLocked(func(o *domain.User) bool { return o.ID != id && o.Mobile == *patch.Mobile }) != nil {
			return nil, domain.ErrMobileTaken
		}
	}

	applyUserPatch(u, patch)
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u).Redacted(), nil
}

func applyUserPatch(u *domain.User, patch ports.UserUpdate) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Mobile != nil {
		u.Mobile = *patch.Mobile
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Verified != nil {
		u.Verified = *patch.Verified
	}
	if patch.Institute != nil {
		u.Institute = *patch.Institute
	}
	if patch.RollNo != nil {
		u.RollNo = *patch.RollNo
	}
	if patch.EmployeeID != nil {
		u.EmployeeID = *patch.EmployeeID
	}
	if patch.BusinessName != nil {
		u.BusinessName = *patch.BusinessName
	}
	if patch.StudentDetails != nil {
		sd := *patch.StudentDetails
		u.StudentDetails = &sd
	}
	if patch.VendorDetails != nil {
		vd := *patch.VendorDetails
		u.VendorDetails = &vd
	}
}

// VerifyCredentials is the sole authentication check against the user store.
func (r *UserRepository) VerifyCredentials(_ context.Context, email, password string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u := r.findLocked(func(u *domain.User) bool { return u.Email == email })
	if u == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return cloneUser(u).Redacted(), nil
}
