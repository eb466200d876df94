package records

import (
	"context"

	"github.com/dmitrijs2005/passgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, record *models.CompanyRecord) (*models.CompanyRecord, error)
	List(ctx context.Context) ([]models.CompanyRecord, error)
	Search(ctx context.Context, query string) ([]models.CompanyRecord, error)
	Update(ctx context.Context, record *models.CompanyRecord) (*models.CompanyRecord, error)
}
