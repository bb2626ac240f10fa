package repository

import (
	"context"

	"github.com/nazarov/footballmanager/internal/domain/entity"
)

// UserRepository defines the persistence contract for player accounts.
// Create must persist the account together with its role links atomically
// and assign ID/CreatedAt/UpdatedAt on the passed entity. Email uniqueness
// is enforced by the store itself (unique index), not by callers.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfilePicture(ctx context.Context, id int64, url string) error
}

// RoleRepository looks up seeded roles by their unique name.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
}
