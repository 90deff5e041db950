package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chirp/errs"
)

// TokenManager issues and resolves the stateless bearer tokens of the auth
// system. Tokens are HS256 JWTs carrying the subject user id and an expiry,
// there is no server-side session state and no revocation: a token is valid
// until it expires.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager returns a TokenManager signing with the given secret.
// ttlMinutes is the validity window of issued tokens.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// Issue creates a fresh token for the given user id.
func (tm *TokenManager) Issue(userID int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(tm.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Resolve validates a token string and returns the subject user id.
// Malformed, tampered and expired tokens all come back unauthorized.
func (tm *TokenManager) Resolve(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errs.Errorf(errs.EUNAUTHORIZED, "Token has expired.")
		}
		return 0, errs.Errorf(errs.EUNAUTHORIZED, "Invalid token.")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errs.Errorf(errs.EUNAUTHORIZED, "Invalid token.")
	}
	// JSON numbers come out of MapClaims as float64.
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, errs.Errorf(errs.EUNAUTHORIZED, "Invalid token claims.")
	}
	return int(userID), nil
}
