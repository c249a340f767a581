// File: internal/handler/auth/auth.go
package auth

import (
	"context"

	"income-expenses-api/internal/model"
	"income-expenses-api/internal/service"
)

// Accounts 為 auth handler 所需的帳號操作，*service.Accounts 實作
type Accounts interface {
	Signup(ctx context.Context, email string, fullName *string, password string) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) (bool, error)
	Login(ctx context.Context, email, password string) (*model.User, service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (service.TokenPair, error)
	RequestPasswordReset(ctx context.Context, email string) (bool, error)
	CheckResetToken(ctx context.Context, uidb64, token string) error
	ConfirmPasswordReset(ctx context.Context, uidb64, token, newPassword string) error
}
