package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

const collectionUsers = "users"

// Placeholder credential for accounts created through registration, which
// does not collect a password yet.
const placeholderPassword = "defaultpassword"

// UserRepository implements ports.UserRepository on a MongoDB collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// EnsureIndexes creates the unique indexes that back the email/mobile
// uniqueness constraint.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mobile", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// dupKeyDomainError maps a duplicate-key write error to the domain error for
// the unique index that fired. The server reports the index name (email_1 or
// mobile_1) in the error message.
func dupKeyDomainError(err error) error {
	if strings.Contains(err.Error(), "mobile_1") {
		return domain.ErrMobileTaken
	}
	return domain.ErrEmailTaken
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return u.Redacted(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return u.Redacted(), nil
}

func (r *UserRepository) FindByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	u, err := r.findOne(ctx, bson.M{"mobile": mobile})
	if err != nil {
		return nil, err
	}
	return u.Redacted(), nil
}

// Create inserts a new user document. Verified and the credential are forced
// regardless of input; duplicate email/mobile surface as domain errors.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(placeholderPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.findOne(ctx, bson.M{"email": user.Email}); err == nil {
		return nil, domain.ErrEmailTaken
	}
	if user.Mobile != "" {
		if _, err := r.findOne(ctx, bson.M{"mobile": user.Mobile}); err == nil {
			return nil, domain.ErrMobileTaken
		}
	}

	now := time.Now().UTC()
	record := *user
	record.ID = fmt.Sprintf("usr_%s", uuid.NewString())
	record.Verified = false
	record.PasswordHash = string(hash)
	record.CreatedAt = now
	record.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, &record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, dupKeyDomainError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return record.Redacted(), nil
}

// Update applies a partial patch with $set and returns the new document.
// Email/mobile patches hit the unique indexes, so collisions surface as the
// same domain errors Create reports.
func (r *UserRepository) Update(ctx context.Context, id string, patch ports.UserUpdate) (*domain.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Mobile != nil {
		set["mobile"] = *patch.Mobile
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.Verified != nil {
		set["verified"] = *patch.Verified
	}
	if patch.Institute != nil {
		set["institute"] = *patch.Institute
	}
	if patch.RollNo != nil {
		set["roll_no"] = *patch.RollNo
	}
	if patch.EmployeeID != nil {
		set["employee_id"] = *patch.EmployeeID
	}
	if patch.BusinessName != nil {
		set["business_name"] = *patch.BusinessName
	}
	if patch.StudentDetails != nil {
		set["student_details"] = patch.StudentDetails
	}
	if patch.VendorDetails != nil {
		set["vendor_details"] = patch.VendorDetails
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u domain.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, dupKeyDomainError(err)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u.Redacted(), nil
}

// VerifyCredentials checks the password against the stored hash.
func (r *UserRepository) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u.Redacted(), nil
}
