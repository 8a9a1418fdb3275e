package domain

import (
	"errors"
	"time"
)

var (
	// ErrEmailAlreadyExists indicates that a user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("Email already exists")
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("User not found")
	// ErrWrongCredentials indicates that the email or password is wrong.
	ErrWrongCredentials = errors.New("Email or password is wrong")
	// ErrInvalidImage indicates an unsupported or oversized profile image.
	ErrInvalidImage = errors.New("Image format is not valid")
)

// User holds user data.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ProfileImage   string    `json:"profile_image"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Email          string
	FirstName      string
	LastName       string
	HashedPassword string
}

// UpdateUserParams is the input data to update a profile. Empty fields keep their value.
type UpdateUserParams struct {
	ID        int64
	FirstName string
	LastName  string
}

// Profile is the public view of a user.
type Profile struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ProfileImage string `json:"profile_image"`
}
