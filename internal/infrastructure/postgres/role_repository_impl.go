package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nazarov/footballmanager/internal/domain/entity"
	"github.com/nazarov/footballmanager/internal/domain/repository"
)

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// GetByName returns (nil, nil) when the role does not exist; roles are
// seeded by migrations, so a miss means a misconfigured database.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	role := &entity.Role{}
	err := r.pool.QueryRow(ctx, `SELECT role_id, name FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return role, nil
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
