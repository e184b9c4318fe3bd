package models

// TokenRequest is the body of POST /jwt.
type TokenRequest struct {
	// Email is the identity the credential is issued for. Required.
	Email string `json:"email"`
}
