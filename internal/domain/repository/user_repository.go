package repository

import (
	"context"

	"campuslink/internal/domain/entity"
)

// UserRepository is a read-only view of the user store. The messaging core
// never creates or mutates users; it only resolves identities and the banned
// flag.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
