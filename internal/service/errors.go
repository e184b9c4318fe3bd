package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrInvalidToken        = errors.New("invalid token")

	ErrUnauthenticated = errors.New("no authenticated identity")
	ErrEmailMismatch   = errors.New("email mismatch")
)
