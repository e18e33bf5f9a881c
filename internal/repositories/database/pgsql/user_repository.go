package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_portal/internal/core/ports/repositories"
	"github.com/SscSPs/expense_portal/internal/models"
	"github.com/SscSPs/expense_portal/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUsers(rows pgx.Rows) ([]models.User, error) {
	defer rows.Close()
	modelUsers := []models.User{}
	for rows.Next() {
		var modelUser models.User
		if err := rows.Scan(
			&modelUser.UserID,
			&modelUser.FirstName,
			&modelUser.LastName,
			&modelUser.EmployeeID,
			&modelUser.IsAdmin,
			&modelUser.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, modelUser)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return modelUsers, nil
}

// FindUserByIdentity matches all three fields with plain equality; any
// case folding is whatever the column collation does. More than one match
// is treated as no match.
func (r *PgxUserRepository) FindUserByIdentity(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	query := `
		SELECT id::text, first_name, last_name, employee_id, COALESCE(is_admin, false), created_at
		FROM users
		WHERE first_name = $1 AND last_name = $2 AND employee_id = $3
		LIMIT 2;
	`
	rows, err := r.Pool.Query(ctx, query, identity.FirstName, identity.LastName, identity.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by identity: %w", err)
	}
	modelUsers, err := scanUsers(rows)
	if err != nil {
		return nil, err
	}
	switch len(modelUsers) {
	case 0:
		return nil, apperrors.ErrNotFound
	case 1:
		user := mapping.ToDomainUser(modelUsers[0])
		return &user, nil
	default:
		return nil, fmt.Errorf("identity matches %d users: %w", len(modelUsers), apperrors.ErrNotFound)
	}
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT id::text, first_name, last_name, employee_id, COALESCE(is_admin, false), created_at
		FROM users
		WHERE id::text = $1;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	modelUsers, err := scanUsers(rows)
	if err != nil {
		return nil, err
	}
	if len(modelUsers) == 0 {
		return nil, apperrors.ErrNotFound
	}
	user := mapping.ToDomainUser(modelUsers[0])
	return &user, nil
}
