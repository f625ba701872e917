package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"novasalud/config"
	deliverycontext "novasalud/internal/delivery/context"
	domainerrors "novasalud/internal/domain/errors"
	"novasalud/internal/domain/service"
	"novasalud/internal/errors"
	"novasalud/internal/usecase"

	"go.uber.org/fx"
)

type sessionService struct {
	auth   *config.AuthConfig
	hasher service.PasswordHasher
	tokens service.TokenService
	logger *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Config *config.Config
	Hasher service.PasswordHasher
	Tokens service.TokenService
	Logger *slog.Logger
}

// NewSessionService creates a new session service instance
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		auth:   params.Config.Auth,
		hasher: params.Hasher,
		tokens: params.Tokens,
		logger: params.Logger,
	}
}

// Login verifies the operator password and issues an access token
func (s *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if s.auth == nil || !s.auth.Enabled {
		return nil, domainerrors.ErrAuthDisabled
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	nameMatches := subtle.ConstantTimeCompare([]byte(input.Operator), []byte(s.auth.OperatorName)) == 1
	// The hash is always checked so a wrong name costs the same as a wrong password.
	passwordMatches := s.hasher.Check(input.Password, s.auth.OperatorPasswordHash)
	if !nameMatches || !passwordMatches {
		logger.WarnContext(ctx, "Rejected operator login", slog.String("operator", input.Operator))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(s.auth.OperatorName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	logger.InfoContext(ctx, "Operator logged in", slog.String("operator", s.auth.OperatorName))

	return &usecase.LoginOutput{
		Operator:    s.auth.OperatorName,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
