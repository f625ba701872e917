package usecase

import (
	"context"
	"time"
)

// LoginInput carries the operator credentials
type LoginInput struct {
	Operator string `json:"operator" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput is the issued access token
type LoginOutput struct {
	Operator    string    `json:"operator"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SessionUsecase defines the interface for operator sign-in
type SessionUsecase interface {
	// Login verifies the operator password and issues an access token
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
