package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/org"
	"github.com/railsafe/roster-backend-go/internal/pkg/database"
)

type orgRepositoryImpl struct {
	db *database.DB
}

func NewOrgRepository(db *database.DB) org.OrgRepository {
	return &orgRepositoryImpl{db: db}
}

// GetByID implements org.OrgRepository.
func (r *orgRepositoryImpl) GetByID(ctx context.Context, id string) (org.Organisation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM orgs
		WHERE id = $1
	`

	var found org.Organisation
	err := q.QueryRow(ctx, query, id).
		Scan(&found.ID, &found.Name, &found.Slug, &found.CreatedAt, &found.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Organisation{}, org.ErrOrgNotFound
	}
	if err != nil {
		return org.Organisation{}, err
	}
	return found, nil
}

// GetBySlug implements org.OrgRepository.
func (r *orgRepositoryImpl) GetBySlug(ctx context.Context, slug string) (org.Organisation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM orgs
		WHERE slug = $1
	`

	var found org.Organisation
	err := q.QueryRow(ctx, query, slug).
		Scan(&found.ID, &found.Name, &found.Slug, &found.CreatedAt, &found.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Organisation{}, org.ErrOrgNotFound
	}
	if err != nil {
		return org.Organisation{}, err
	}
	return found, nil
}

// Create implements org.OrgRepository.
func (r *orgRepositoryImpl) Create(ctx context.Context, newOrg org.Organisation) (org.Organisation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO orgs (name, slug)
		VALUES ($1, $2)
		RETURNING id, name, slug, created_at, updated_at
	`

	var created org.Organisation
	err := q.QueryRow(ctx, query, newOrg.Name, newOrg.Slug).
		Scan(&created.ID, &created.Name, &created.Slug, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return org.Organisation{}, err
	}
	return created, nil
}

// ExistsBySlug implements org.OrgRepository.
func (r *orgRepositoryImpl) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orgs WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
