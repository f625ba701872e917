package auth

import (
	"testing"
	"time"

	"novasalud/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthConfig(secret string) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			Enabled:      true,
			OperatorName: "admin",
			SecretKey:    secret,
			AccessTTL:    time.Hour,
		},
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newAuthConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Operator)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestJWTService_RequiresSecretWhenEnabled(t *testing.T) {
	_, err := NewJWTService(newAuthConfig(""))
	assert.Error(t, err)
}

func TestJWTService_DisabledAuth(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	require.NoError(t, err)

	_, _, err = svc.GenerateAccessToken("admin")
	assert.Error(t, err)
	_, err = svc.ValidateToken("anything")
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc, err := NewJWTService(newAuthConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	_, err = svc.ValidateToken("invalid.token.string")
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	signer, err := NewJWTService(newAuthConfig("first_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newAuthConfig("second_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, _, err := signer.GenerateAccessToken("admin")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	svc, err := NewJWTService(newAuthConfig("test_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	impl := svc.(*jwtService)
	impl.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)

	impl.now = time.Now
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
