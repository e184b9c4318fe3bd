// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The a11-b10-restaurant-management-server Authors

package http

import "errors"

// Sentinel errors reported by the authentication middlewares. Their text is
// the message of the 401 response body. Callers can match against them with
// [errors.Is].
var (
	// ErrTokenMissing is returned by the auth middleware when the request
	// carries no "token" cookie or the cookie is empty.
	ErrTokenMissing = errors.New("Unauthorized: token missing")

	// ErrTokenInvalid is returned when the "token" cookie does not hold a
	// valid credential.
	ErrTokenInvalid = errors.New("Unauthorized: invalid token")

	// ErrEmailMismatch is returned when the authenticated email differs from
	// the owner email of the requested resource.
	ErrEmailMismatch = errors.New("Unauthorized: email mismatch")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
