package users

import (
	"context"

	"github.com/dmitrijs2005/passgate/internal/server/models"
)

// Repository resolves passcodes to identities.
type Repository interface {
	GetUserByKey(ctx context.Context, key string) (*models.User, error)
}
