package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
)

// Authorization errors
var (
	ErrNotAuthorizedForLoan  = errors.New("not authorized for loan")
	ErrUnresolvableOwnership = errors.New("document ownership cannot be resolved")
)

// Document & storage errors
var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrUnresolvableLocator = errors.New("document record has no usable storage locator")
	ErrObjectNotFound      = errors.New("object not found in storage")
	ErrStorageUnreachable  = errors.New("object storage unreachable")
)
