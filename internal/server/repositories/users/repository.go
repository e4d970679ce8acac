package users

import (
	"context"
	"time"

	"github.com/skycastlabs/accounts/internal/server/models"
)

// Repository is the credential store contract. Lookups return
// common.ErrorNotFound when no row matches; Create returns
// common.ErrorAlreadyExists when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, username, email, phoneNumber string) (*models.User, error)
	SetGroup(ctx context.Context, id, groupID string) error
	SetResetOTP(ctx context.Context, id, otp string, until time.Time) error
	ClearResetOTP(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
