package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrProfileMissing    = errors.New("user profile missing")
)

// Request errors
var (
	ErrRequestNotFound  = errors.New("investor request not found")
	ErrAlreadyDecided   = errors.New("request already decided")
	ErrInvalidStatus    = errors.New("invalid request status")
	ErrDecisionInFlight = errors.New("a decision for this request is already in flight")
)
