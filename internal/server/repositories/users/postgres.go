// Package users implements the credential lookup: a passcode is matched
// verbatim against the key column of the "User" table.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/dmitrijs2005/passgate/internal/dbx"
	"github.com/dmitrijs2005/passgate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetUserByKey returns the user owning key, or common.ErrorNotFound.
func (r *PostgresRepository) GetUserByKey(ctx context.Context, key string) (*models.User, error) {
	query :=
		`SELECT id, name, key FROM "User"
		 WHERE key = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(&user.ID, &user.Name, &user.Key)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
