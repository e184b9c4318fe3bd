package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/config"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// authService is the concrete implementation of AuthService.
// It signs and verifies HS256 JWTs carrying a single email claim.
// There is no revocation list: a credential stays valid until it expires.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with the token
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// IssueToken signs a JWT asserting email.
//
// Returns ErrInvalidDataProvided if email is blank, or a wrapped
// ErrTokenCreationFailed if signing fails.
func (a *authService) IssueToken(ctx context.Context, email string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(email) == "" {
		log.Error().Str("func", "authService.IssueToken").Msg("empty email provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "authService.IssueToken").Msg("failed to sign token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// VerifyToken validates a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the issuer and the expiry. Any validation failure (expired, wrong issuer,
// malformed, missing email) is normalised to ErrInvalidToken so that callers
// do not need to inspect low-level JWT errors.
func (a *authService) VerifyToken(ctx context.Context, tokenString string) (models.Identity, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.VerifyToken").Msg("token rejected")
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{Email: token.Email}, nil
}
