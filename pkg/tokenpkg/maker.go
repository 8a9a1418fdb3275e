// Package tokenpkg creates and verifies stateless access tokens.
package tokenpkg

import "time"

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific user and duration.
	CreateToken(userID int64, email string, duration time.Duration) (string, *Payload, error)
	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// Supported values of the TOKEN_TYPE setting.
const (
	TypePaseto = "paseto"
	TypeJWT    = "jwt"
)

// NewMaker builds the Maker selected by tokenType.
func NewMaker(tokenType, secretKey string) (Maker, error) {
	if tokenType == TypeJWT {
		return NewJWTMaker(secretKey)
	}

	return NewPasetoMaker(secretKey)
}
