package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nazarov/footballmanager/internal/domain/entity"
	"github.com/nazarov/footballmanager/internal/domain/repository"
)

var errNotFound = errors.New("not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user and its role links in one transaction so a
// registration is either fully persisted or not at all.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, date_of_birth, playing_position, profile_picture_url, contact_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id, created_at, updated_at
	`, u.Name, u.Email, u.Password, u.DateOfBirth, u.PlayingPosition, u.ProfilePictureURL, u.ContactNumber)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return err
	}

	for _, role := range u.Roles {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, u.ID, role.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByEmail loads a user with its role set. Returns (nil, nil) when no
// account matches.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, name, email, password_hash, date_of_birth, playing_position,
		       COALESCE(profile_picture_url, ''), COALESCE(contact_number, ''),
		       created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	var dob *time.Time
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &dob, &u.PlayingPosition,
		&u.ProfilePictureURL, &u.ContactNumber, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.DateOfBirth = dob

	roles, err := r.rolesFor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) UpdateProfilePicture(ctx context.Context, id int64, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET profile_picture_url = $1, updated_at = now() WHERE user_id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *UserRepository) rolesFor(ctx context.Context, userID int64) ([]entity.Role, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.role_id, r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
