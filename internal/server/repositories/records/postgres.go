// Package records stores company records in PostgreSQL.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/dmitrijs2005/passgate/internal/dbx"
	"github.com/dmitrijs2005/passgate/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

const recordColumns = `id, name, exchange, ticker, isin, website`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *models.CompanyRecord) (*models.CompanyRecord, error) {
	query :=
		`INSERT INTO "CompanyRecords" (name, exchange, ticker, isin, website)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING ` + recordColumns

	row := r.db.QueryRowContext(ctx, query,
		record.Name, record.Exchange, record.Ticker, record.ISIN, record.Website)

	created, err := scanRecord(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.CompanyRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM "CompanyRecords" ORDER BY id`
	return r.query(ctx, query)
}

// Search matches query as a case-insensitive substring of name or isin.
func (r *PostgresRepository) Search(ctx context.Context, query string) ([]models.CompanyRecord, error) {
	sqlQuery :=
		`SELECT ` + recordColumns + ` FROM "CompanyRecords"
		 WHERE name ILIKE $1 OR isin ILIKE $1
		 ORDER BY id`
	return r.query(ctx, sqlQuery, "%"+query+"%")
}

// Update overwrites every mutable column of the record with the given id.
// It returns common.ErrorNotFound when no such record exists.
func (r *PostgresRepository) Update(ctx context.Context, record *models.CompanyRecord) (*models.CompanyRecord, error) {
	query :=
		`UPDATE "CompanyRecords"
		 SET name = $1, exchange = $2, ticker = $3, isin = $4, website = $5
		 WHERE id = $6
		 RETURNING ` + recordColumns

	row := r.db.QueryRowContext(ctx, query,
		record.Name, record.Exchange, record.Ticker, record.ISIN, record.Website, record.ID)

	updated, err := scanRecord(row)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.CompanyRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.CompanyRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.CompanyRecord, error) {
	rec := &models.CompanyRecord{}
	var website sql.NullString
	if err := s.Scan(&rec.ID, &rec.Name, &rec.Exchange, &rec.Ticker, &rec.ISIN, &website); err != nil {
		return nil, err
	}
	if website.Valid {
		rec.Website = &website.String
	}
	return rec, nil
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return common.ErrorAlreadyExists
	}
	return fmt.Errorf("db error: %w", err)
}
