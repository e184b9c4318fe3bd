// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The a11-b10-restaurant-management-server Authors

// Package validators checks listings and purchase orders before the
// services hand them to a store. Each validator checks a default set of
// fields, and callers may name the fields to check instead.
package validators

import "context"

// Validator checks one model value. Validate returns the first failed
// rule as one of the package errors, and [ErrUnsupportedType] for values
// it does not know.
type Validator interface {
	// Validate checks obj, restricted to fields when any are named.
	Validate(ctx context.Context, obj any, fields ...string) error
}
