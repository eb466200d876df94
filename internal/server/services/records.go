package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/dmitrijs2005/passgate/internal/server/models"
	"github.com/dmitrijs2005/passgate/internal/server/repositories/repomanager"
)

// RecordService manages company records. Callers are expected to have
// verified the session already.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

// Create stores a new record. Name, exchange, ticker and ISIN are required;
// a duplicate ISIN yields common.ErrorAlreadyExists.
func (s *RecordService) Create(ctx context.Context, rec *models.CompanyRecord) (*models.CompanyRecord, error) {
	if err := validateRecord(rec); err != nil {
		return nil, err
	}
	return s.repomanager.Records(s.db).Create(ctx, normalize(rec))
}

func (s *RecordService) List(ctx context.Context) ([]models.CompanyRecord, error) {
	return s.repomanager.Records(s.db).List(ctx)
}

func (s *RecordService) Search(ctx context.Context, query string) ([]models.CompanyRecord, error) {
	return s.repomanager.Records(s.db).Search(ctx, query)
}

// Update overwrites the record with rec.ID. Unknown ids yield common.ErrorNotFound.
func (s *RecordService) Update(ctx context.Context, rec *models.CompanyRecord) (*models.CompanyRecord, error) {
	if rec == nil || rec.ID <= 0 {
		return nil, common.ErrorMissingFields
	}
	if err := validateRecord(rec); err != nil {
		return nil, err
	}
	return s.repomanager.Records(s.db).Update(ctx, normalize(rec))
}

func validateRecord(rec *models.CompanyRecord) error {
	if rec == nil || rec.Name == "" || rec.Exchange == "" || rec.Ticker == "" || rec.ISIN == "" {
		return common.ErrorMissingFields
	}
	return nil
}

// normalize stores a blank website as NULL.
func normalize(rec *models.CompanyRecord) *models.CompanyRecord {
	out := *rec
	if out.Website != nil && strings.TrimSpace(*out.Website) == "" {
		out.Website = nil
	}
	return &out
}
