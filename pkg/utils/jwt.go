package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TerminalClaims represents the claims in a terminal bearer token. Tokens are
// minted for kiosk and cashier devices by the operator tooling; this service
// only validates them.
type TerminalClaims struct {
	TerminalID uuid.UUID `json:"terminal_id"`
	BusinessID string    `json:"business_id"`
	Role       string    `json:"role"` // "kiosk" or "cashier"
	jwt.RegisteredClaims
}

// JWTManager handles terminal token generation and validation
type JWTManager struct {
	secretKey   []byte
	tokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:   []byte(secret),
		tokenExpiry: expiry,
	}
}

// GenerateTerminalToken generates a bearer token for a terminal
func (m *JWTManager) GenerateTerminalToken(terminalID uuid.UUID, businessID, role string) (string, error) {
	claims := &TerminalClaims{
		TerminalID: terminalID,
		BusinessID: businessID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "selfcheckout-api",
			Subject:   terminalID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateTerminalToken validates a terminal token and returns its claims
func (m *JWTManager) ValidateTerminalToken(tokenString string) (*TerminalClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TerminalClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TerminalClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
