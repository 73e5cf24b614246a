package domain

import (
	"errors"
	"time"
)

var ErrAdminNotFound = errors.New("admin not found")
var ErrAdminExists = errors.New("admin already exists")

// Admin is the durable back-office credential record. It lives in its own
// MongoDB collection, separate from the marketplace user store.
type Admin struct {
	UserID       string    `json:"user_id" bson:"user_id"`
	PasswordHash string    `json:"-" bson:"password"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
