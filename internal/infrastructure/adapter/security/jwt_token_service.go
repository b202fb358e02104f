package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
)

// userIDClaim is the claim key carrying the caller's public user identifier
const userIDClaim = "userId"

// JWTTokenService implements the TokenService interface with HS256 signed tokens
type JWTTokenService struct {
	secret       []byte
	expiry       time.Duration
	timeProvider coreport.TimeProvider
}

// NewJWTTokenService creates a new JWT token service
func NewJWTTokenService(secret string, expiry time.Duration, timeProvider coreport.TimeProvider) *JWTTokenService {
	return &JWTTokenService{
		secret:       []byte(secret),
		expiry:       expiry,
		timeProvider: timeProvider,
	}
}

// Generate issues a signed token embedding the user's public identifier
func (s *JWTTokenService) Generate(userID string) (string, error) {
	now := s.timeProvider.Now()

	claims := jwt.MapClaims{
		userIDClaim: userID,
		"iat":       now.Unix(),
	}
	if s.expiry > 0 {
		claims["exp"] = now.Add(s.expiry).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token signature and returns the embedded user identifier
func (s *JWTTokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errs.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errs.ErrInvalidToken
	}

	userID, ok := claims[userIDClaim].(string)
	if !ok || userID == "" {
		return "", errs.ErrInvalidToken
	}

	return userID, nil
}
