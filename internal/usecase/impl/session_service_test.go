package impl

import (
	"context"
	"testing"
	"time"

	"novasalud/config"
	domainerrors "novasalud/internal/domain/errors"
	"novasalud/internal/infra/auth"
	"novasalud/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestSessionService(t *testing.T, enabled bool) usecase.SessionUsecase {
	t.Helper()

	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	hash, err := hasher.Hash("boticario-2023")
	require.NoError(t, err)

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			Enabled:              enabled,
			OperatorName:         "farmacia",
			OperatorPasswordHash: hash,
			SecretKey:            "session_service_test_secret_key",
			AccessTTL:            time.Hour,
		},
	}
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewSessionService(SessionServiceParams{
		Config: cfg,
		Hasher: hasher,
		Tokens: tokens,
		Logger: newDiscardLogger(),
	})
}

func TestSessionService_Login(t *testing.T) {
	svc := newTestSessionService(t, true)

	out, err := svc.Login(context.Background(), &usecase.LoginInput{Operator: "farmacia", Password: "boticario-2023"})
	require.NoError(t, err)
	assert.Equal(t, "farmacia", out.Operator)
	assert.NotEmpty(t, out.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), out.ExpiresAt, time.Minute)
}

func TestSessionService_LoginRejectsBadCredentials(t *testing.T) {
	svc := newTestSessionService(t, true)

	tests := []struct {
		name  string
		input *usecase.LoginInput
	}{
		{name: "wrong password", input: &usecase.LoginInput{Operator: "farmacia", Password: "nope"}},
		{name: "wrong operator", input: &usecase.LoginInput{Operator: "admin", Password: "boticario-2023"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.input)
			require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestSessionService_LoginWhenDisabled(t *testing.T) {
	svc := newTestSessionService(t, false)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{Operator: "farmacia", Password: "boticario-2023"})
	require.ErrorIs(t, err, domainerrors.ErrAuthDisabled)
}
