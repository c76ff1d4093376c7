package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose scopes a token to the endpoints it may authenticate. A reset
// token is only good for the password-reset endpoint and a session token
// is rejected there, so a leaked reset link cannot be replayed as a login.
type Purpose string

const (
	PurposeSession Purpose = "session"
	PurposeReset   Purpose = "reset"
)

// Reset links go out by email, so keep their window short.
const resetTokenTTL = time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrWrongPurpose = errors.New("token not valid for this endpoint")
)

// Claims carries the subject email plus the purpose scope.
type Claims struct {
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256-signed bearer tokens.
type Service struct {
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

// NewService creates a token service. A zero sessionTTL issues session
// tokens without an expiry claim.
func NewService(secret string, sessionTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// GenerateSession issues a session token for the given email
func (s *Service) GenerateSession(email string) (string, error) {
	claims := &Claims{
		Purpose: PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  email,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	if s.sessionTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(s.now().Add(s.sessionTTL))
	}
	return s.sign(claims)
}

// GenerateReset issues a one-hour password-reset token for the given email
func (s *Service) GenerateReset(email string) (string, error) {
	return s.sign(&Claims{
		Purpose: PurposeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(resetTokenTTL)),
		},
	})
}

func (s *Service) sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature, expiry and purpose of a token and returns
// the subject email.
func (s *Service) Verify(tokenString string, purpose Purpose) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return "", ErrWrongPurpose
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
