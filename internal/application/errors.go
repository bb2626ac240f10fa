package application

import "errors"

// DefaultUserRole is assigned to every newly registered account.
const DefaultUserRole = "ROLE_USER"

var (
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email address already in use")
	// ErrRoleNotConfigured means the default role is missing from the database,
	// which only happens when migrations have not been run.
	ErrRoleNotConfigured = errors.New("role not set: " + DefaultUserRole)
	// ErrInvalidCredentials covers unknown email and wrong password alike so a
	// caller cannot tell which half failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidDateOfBirth is returned for anything that is not a YYYY-MM-DD date.
	ErrInvalidDateOfBirth = errors.New("invalid date of birth format provided")
	// ErrFutureDateOfBirth is returned for dates after today.
	ErrFutureDateOfBirth = errors.New("date of birth must be in the past or present")
	// ErrUserNotFound means a token subject no longer maps to a live account.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoAuthenticatedUser is a caller-contract violation: a profile operation
	// was invoked without a verified subject.
	ErrNoAuthenticatedUser = errors.New("no authenticated user found")
	// ErrStorageUnavailable means the object store for profile pictures is not configured.
	ErrStorageUnavailable = errors.New("object storage not configured")
)
