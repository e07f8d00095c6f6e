package org

import "context"

type OrgRepository interface {
	GetByID(ctx context.Context, id string) (Organisation, error)
	GetBySlug(ctx context.Context, slug string) (Organisation, error)
	Create(ctx context.Context, newOrg Organisation) (Organisation, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
