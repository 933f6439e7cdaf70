package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/miky2184/chargeability-manager-api/internal/models"
)

// ErrDuplicate is returned by Create when the username already exists.
// Enforced by the unique constraint, not pre-checked.
var ErrDuplicate = errors.New("duplicate key")

// uniqueViolation is the postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// UserRepo reads and writes user rows. The table is fully qualified so the
// repo does not depend on the connection's search path.
type UserRepo struct {
	DB *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// FindByUsername returns the user or sql.ErrNoRows when absent.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, hashed_password, full_name, disabled
		FROM chargeability_manager.users
		WHERE username = $1
	`

	user := &models.User{}
	if err := r.DB.GetContext(ctx, user, query, username); err != nil {
		return nil, err
	}

	return user, nil
}

// Create inserts a user and returns the new id. A unique violation on the
// username maps to ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, username, email, hashedPassword string, fullName *string) (int, error) {
	query := `
		INSERT INTO chargeability_manager.users (username, email, hashed_password, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int
	err := r.DB.QueryRowxContext(ctx, query, username, email, hashedPassword, fullName).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, ErrDuplicate
		}
		return 0, err
	}

	return id, nil
}
