package service

import "errors"

// ==================== Error kinds ====================

// Kinds every service error wraps; the API layer maps them to status codes.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Error is a service failure with a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ==================== Sentinels ====================

var (
	ErrInvalidCredentials = newError(ErrUnauthenticated, "Invalid email or password")
	ErrWrongPassword      = newError(ErrUnauthenticated, "Current password is incorrect")

	ErrNotSelf             = newError(ErrForbidden, "You can only update your own account")
	ErrRoleChangeForbidden = newError(ErrForbidden, "Only administrators can change roles")
	ErrStoreNotOwned       = newError(ErrForbidden, "You can only view ratings of your own store")

	ErrUserNotFound   = newError(ErrNotFound, "User not found")
	ErrStoreNotFound  = newError(ErrNotFound, "Store not found")
	ErrRatingNotFound = newError(ErrNotFound, "Rating not found")
	ErrNoOwnedStore   = newError(ErrNotFound, "No store found for this user")

	ErrEmailTaken      = newError(ErrConflict, "Email already registered")
	ErrStoreEmailTaken = newError(ErrConflict, "Store email already exists")
	ErrAlreadyRated    = newError(ErrConflict, "You have already rated this store")

	ErrInvalidOwner  = newError(ErrValidation, "Owner must be an existing user with role store")
	ErrInvalidRole   = newError(ErrValidation, "Role must be one of admin, user, store")
	ErrInvalidRating = newError(ErrValidation, "Rating must be an integer between 1 and 5")
)
