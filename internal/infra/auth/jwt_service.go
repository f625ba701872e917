// Package auth provides concrete implementations for operator authentication services.
package auth

import (
	"time"

	"novasalud/config"
	"novasalud/internal/domain/service"
	"novasalud/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "novasalud"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    []byte        // Secret key for signing access tokens.
	accessTTL time.Duration // Time-to-live for access tokens.
	now       func() time.Time
}

// NewJWTService is the constructor for jwtService.
// Returns an error when auth is enabled without a signing secret.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil || !cfg.Auth.Enabled {
		return &jwtService{now: time.Now}, nil
	}
	if cfg.Auth.SecretKey == "" {
		return nil, errors.New("auth.secretKey must be provided when auth is enabled")
	}

	return &jwtService{
		secret:    []byte(cfg.Auth.SecretKey),
		accessTTL: cfg.Auth.AccessTTL,
		now:       time.Now,
	}, nil
}

// GenerateAccessToken creates a signed access token for the operator.
func (s *jwtService) GenerateAccessToken(operator string) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("token signing is not configured")
	}

	now := s.now()
	expiresAt := now.Add(s.accessTTL)
	claims := &service.Claims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   operator,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign access token")
	}

	return signed, expiresAt, nil
}

// ValidateToken checks the signature, issuer and expiry of a token string.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	if len(s.secret) == 0 {
		return nil, errors.New("token signing is not configured")
	}

	claims := new(service.Claims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid access token")
	}

	return claims, nil
}
