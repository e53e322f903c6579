package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"shiftease/internal/models"
	"shiftease/internal/storage"
)

var ErrPasswordRequired = errors.New("account does not exist and no password was given")

type AccountStore interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	SetUserRole(ctx context.Context, email string, role models.Role) error
}

type Account struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.Role
}

// EnsureAccount gives an existing account the requested role, or creates it
// when a password is set. It reports whether an account was created.
func EnsureAccount(ctx context.Context, store AccountStore, acc Account) (bool, error) {
	const op = "auth.EnsureAccount"

	err := store.SetUserRole(ctx, acc.Email, acc.Role)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if acc.Password == "" {
		return false, ErrPasswordRequired
	}

	hash, err := HashPassword(acc.Password, bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	_, err = store.CreateUser(ctx, models.User{
		Email:        strings.TrimSpace(acc.Email),
		PasswordHash: hash,
		FirstName:    acc.FirstName,
		LastName:     acc.LastName,
		FullName:     strings.TrimSpace(acc.FirstName + " " + acc.LastName),
		Role:         acc.Role,
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}
