package ports

import (
	"auth-service/internal/model"
	"context"
)

// AuthenticationService : жизненный цикл учетных данных
type AuthenticationService interface {
	Register(ctx context.Context, registration model.Registration) (*model.TokensPair, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, credentials model.Credentials) (*model.TokensPair, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Authenticate(ctx context.Context, accessToken string) (*model.Account, error)
	SetupTwoFactor(ctx context.Context, accountUUID string) (*model.TwoFactorSetup, error)
	EnableTwoFactor(ctx context.Context, accountUUID, code string) error
	DisableTwoFactor(ctx context.Context, accountUUID, code string) error
}
