package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/config"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "restaurant-server"
)

func newTestAuthSvc() AuthService {
	return NewAuthService(config.App{
		TokenSignKey:  testSignKey,
		TokenIssuer:   testIssuer,
		TokenDuration: time.Hour,
	}, logger.Nop())
}

func signClaims(t *testing.T, claims models.Claims, method jwt.SigningMethod, key any) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

// ── IssueToken / VerifyToken ─────────────────────────────────────────────────

func TestAuthService_RoundTrip(t *testing.T) {
	svc := newTestAuthSvc()
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "chef@example.com")
	require.NoError(t, err)
	assert.Equal(t, "chef@example.com", token.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 2*time.Second)

	identity, err := svc.VerifyToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{Email: "chef@example.com"}, identity)
}

func TestAuthService_IssueToken_EmptyEmail(t *testing.T) {
	svc := newTestAuthSvc()

	for _, email := range []string{"", "   "} {
		_, err := svc.IssueToken(context.Background(), email)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	}
}

func TestAuthService_IssueToken_MissingSignKey(t *testing.T) {
	svc := NewAuthService(config.App{TokenIssuer: testIssuer, TokenDuration: time.Hour}, logger.Nop())

	_, err := svc.IssueToken(context.Background(), "chef@example.com")
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_VerifyToken_Rejects(t *testing.T) {
	now := time.Now()
	valid := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	otherIssuer := valid
	otherIssuer.Issuer = "someone-else"

	noExpiry := valid
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{"empty", func(*testing.T) string { return "" }},
		{"malformed", func(*testing.T) string { return "not.a.jwt" }},
		{"expired", func(t *testing.T) string {
			return signClaims(t, models.Claims{Email: "a@b.c", RegisteredClaims: expired}, jwt.SigningMethodHS256, []byte(testSignKey))
		}},
		{"bad signature", func(t *testing.T) string {
			return signClaims(t, models.Claims{Email: "a@b.c", RegisteredClaims: valid}, jwt.SigningMethodHS256, []byte("other-key"))
		}},
		{"wrong issuer", func(t *testing.T) string {
			return signClaims(t, models.Claims{Email: "a@b.c", RegisteredClaims: otherIssuer}, jwt.SigningMethodHS256, []byte(testSignKey))
		}},
		{"missing expiry", func(t *testing.T) string {
			return signClaims(t, models.Claims{Email: "a@b.c", RegisteredClaims: noExpiry}, jwt.SigningMethodHS256, []byte(testSignKey))
		}},
		{"missing email", func(t *testing.T) string {
			return signClaims(t, models.Claims{RegisteredClaims: valid}, jwt.SigningMethodHS256, []byte(testSignKey))
		}},
		{"other algorithm", func(t *testing.T) string {
			return signClaims(t, models.Claims{Email: "a@b.c", RegisteredClaims: valid}, jwt.SigningMethodHS512, []byte(testSignKey))
		}},
	}

	svc := newTestAuthSvc()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := svc.VerifyToken(context.Background(), tt.token(t))

			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Equal(t, models.Identity{}, identity)
		})
	}
}
