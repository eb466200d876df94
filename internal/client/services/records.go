package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/passgate/internal/client/client"
)

// ErrMissingFields is returned before any request when a required field is blank.
var ErrMissingFields = errors.New("name, exchange, ticker and isin are required")

type RecordService interface {
	List(ctx context.Context) ([]client.Record, error)
	Search(ctx context.Context, query string) ([]client.Record, error)
	Get(ctx context.Context, id int64) (*client.Record, error)
	Create(ctx context.Context, rec client.Record) error
	Update(ctx context.Context, rec client.Record) (*client.Record, error)
}

type recordService struct {
	client client.Client
}

func NewRecordService(c client.Client) RecordService {
	return &recordService{client: c}
}

func (s *recordService) List(ctx context.Context) ([]client.Record, error) {
	return s.client.FetchRecords(ctx)
}

func (s *recordService) Search(ctx context.Context, query string) ([]client.Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.client.FetchRecords(ctx)
	}
	return s.client.SearchRecords(ctx, query)
}

// Get finds a record by id in the full listing; the API has no single-record route.
func (s *recordService) Get(ctx context.Context, id int64) (*client.Record, error) {
	recs, err := s.client.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].ID == id {
			return &recs[i], nil
		}
	}
	return nil, fmt.Errorf("record %d: %w", id, client.ErrNotFound)
}

func (s *recordService) Create(ctx context.Context, rec client.Record) error {
	rec = normalize(rec)
	if err := validate(rec); err != nil {
		return err
	}
	return s.client.CreateRecord(ctx, rec)
}

func (s *recordService) Update(ctx context.Context, rec client.Record) (*client.Record, error) {
	if rec.ID <= 0 {
		return nil, fmt.Errorf("record id must be positive: %w", client.ErrBadFormat)
	}
	rec = normalize(rec)
	if err := validate(rec); err != nil {
		return nil, err
	}
	return s.client.UpdateRecord(ctx, rec)
}

func normalize(rec client.Record) client.Record {
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Exchange = strings.TrimSpace(rec.Exchange)
	rec.Ticker = strings.TrimSpace(rec.Ticker)
	rec.ISIN = strings.TrimSpace(rec.ISIN)
	if rec.Website != nil {
		w := strings.TrimSpace(*rec.Website)
		if w == "" {
			rec.Website = nil
		} else {
			rec.Website = &w
		}
	}
	return rec
}

func validate(rec client.Record) error {
	if rec.Name == "" || rec.Exchange == "" || rec.Ticker == "" || rec.ISIN == "" {
		return ErrMissingFields
	}
	return nil
}
