package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload of an identity credential.
//
// It carries exactly one identity claim, the user's email address, next to
// the standard registered claims (iss, iat, exp).
type Claims struct {
	// Email is the identity asserted by the token.
	Email string `json:"email"`

	jwt.RegisteredClaims
}

// Token is an issued identity credential.
type Token struct {
	// SignedString is the compact JWS representation
	// (base64url header.payload.signature) stored in the client's cookie.
	SignedString string `json:"-"`

	// Email is the identity the token was issued for.
	Email string `json:"-"`

	// ExpiresAt is the moment after which the token is no longer accepted.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// Identity is the decoded identity of an authenticated request.
type Identity struct {
	Email string
}
