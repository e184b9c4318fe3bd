package service

import (
	"context"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
)

// CheckOwnership compares the identity bound to ctx with ownerEmail.
// The comparison is exact and case-sensitive.
//
// Returns ErrUnauthenticated when ctx carries no identity and
// ErrEmailMismatch when the emails differ.
func CheckOwnership(ctx context.Context, ownerEmail string) error {
	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok || identity.Email == "" {
		return ErrUnauthenticated
	}

	if identity.Email != ownerEmail {
		logger.FromContext(ctx).Warn().
			Str("func", "CheckOwnership").
			Str("identity", identity.Email).
			Str("owner", ownerEmail).
			Msg("email mismatch")
		return ErrEmailMismatch
	}

	return nil
}
