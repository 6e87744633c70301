package handler

import (
	"context"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
)

// UserStore is the slice of the user repository the handlers need.
// *repository.UserRepo satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id uint64, upd repository.ProfileUpdate) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}
