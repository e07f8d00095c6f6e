package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/user"
	"github.com/railsafe/roster-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.org_id, u.email, u.password_hash, u.role, u.oauth_provider,
	u.oauth_provider_id, u.email_verified, u.created_at, u.updated_at, e.id
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.OrgID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.OAuthProvider,
		&u.OAuthProviderID,
		&u.EmailVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.EmployeeID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.email = $1
	`
	return scanUser(q.QueryRow(ctx, query, email))
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.id = $1
	`
	return scanUser(q.QueryRow(ctx, query, id))
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (org_id, email, password_hash, role, oauth_provider, oauth_provider_id, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, org_id, email, password_hash, role, oauth_provider,
		          oauth_provider_id, email_verified, created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		newUser.OrgID,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.OAuthProvider,
		newUser.OAuthProviderID,
		newUser.EmailVerified,
	).Scan(
		&created.ID,
		&created.OrgID,
		&created.Email,
		&created.PasswordHash,
		&created.Role,
		&created.OAuthProvider,
		&created.OAuthProviderID,
		&created.EmailVerified,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	return created, nil
}

// ExistsByIDOrEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByIDOrEmail(ctx context.Context, id, email *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	var arg interface{}

	switch {
	case id != nil:
		query = `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
		arg = *id
	case email != nil:
		query = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
		arg = *email
	default:
		return false, nil
	}

	var exists bool
	if err := q.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// LinkGoogleAccount implements user.UserRepository.
func (r *userRepositoryImpl) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users u
		SET oauth_provider = 'google', oauth_provider_id = $1, updated_at = NOW()
		WHERE u.email = $2
		RETURNING u.id, u.org_id, u.email, u.password_hash, u.role, u.oauth_provider,
		          u.oauth_provider_id, u.email_verified, u.created_at, u.updated_at,
		          (SELECT e.id FROM employees e WHERE e.user_id = u.id AND e.deleted_at IS NULL)
	`
	return scanUser(q.QueryRow(ctx, query, googleID, email))
}

// UpdateOrgAndRole implements user.UserRepository.
func (r *userRepositoryImpl) UpdateOrgAndRole(ctx context.Context, userID, orgID, role string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET org_id = $1, role = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, orgID, role, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
