package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/dmitrijs2005/passgate/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordsRepo struct {
	created *models.CompanyRecord
	updated *models.CompanyRecord
	query   string
	list    []models.CompanyRecord
	err     error
}

func (f *fakeRecordsRepo) Create(_ context.Context, r *models.CompanyRecord) (*models.CompanyRecord, error) {
	f.created = r
	if f.err != nil {
		return nil, f.err
	}
	out := *r
	out.ID = 1
	return &out, nil
}

func (f *fakeRecordsRepo) List(context.Context) ([]models.CompanyRecord, error) {
	return f.list, f.err
}

func (f *fakeRecordsRepo) Search(_ context.Context, q string) ([]models.CompanyRecord, error) {
	f.query = q
	return f.list, f.err
}

func (f *fakeRecordsRepo) Update(_ context.Context, r *models.CompanyRecord) (*models.CompanyRecord, error) {
	f.updated = r
	if f.err != nil {
		return nil, f.err
	}
	return r, nil
}

func validRecord() *models.CompanyRecord {
	return &models.CompanyRecord{Name: "Apple Inc.", Exchange: "NASDAQ", Ticker: "AAPL", ISIN: "US0378331005"}
}

func TestRecordService_CreateValidates(t *testing.T) {
	repo := &fakeRecordsRepo{}
	s := NewRecordService(nil, &fakeRepoManager{r: repo})

	for _, mutate := range []func(*models.CompanyRecord){
		func(r *models.CompanyRecord) { r.Name = "" },
		func(r *models.CompanyRecord) { r.Exchange = "" },
		func(r *models.CompanyRecord) { r.Ticker = "" },
		func(r *models.CompanyRecord) { r.ISIN = "" },
	} {
		rec := validRecord()
		mutate(rec)
		_, err := s.Create(context.Background(), rec)
		assert.ErrorIs(t, err, common.ErrorMissingFields)
	}
	assert.Nil(t, repo.created, "repository must not be called for invalid input")

	_, err := s.Create(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrorMissingFields)
}

func TestRecordService_CreateBlankWebsiteIsNull(t *testing.T) {
	repo := &fakeRecordsRepo{}
	s := NewRecordService(nil, &fakeRepoManager{r: repo})

	blank := "  "
	rec := validRecord()
	rec.Website = &blank

	got, err := s.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Nil(t, repo.created.Website)
	assert.Equal(t, &blank, rec.Website, "caller's record is not modified")
}

func TestRecordService_CreateDuplicate(t *testing.T) {
	s := NewRecordService(nil, &fakeRepoManager{r: &fakeRecordsRepo{err: common.ErrorAlreadyExists}})
	_, err := s.Create(context.Background(), validRecord())
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestRecordService_SearchAndList(t *testing.T) {
	repo := &fakeRecordsRepo{list: []models.CompanyRecord{*validRecord()}}
	s := NewRecordService(nil, &fakeRepoManager{r: repo})

	got, err := s.Search(context.Background(), "app")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "app", repo.query)

	got, err = s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRecordService_Update(t *testing.T) {
	repo := &fakeRecordsRepo{}
	s := NewRecordService(nil, &fakeRepoManager{r: repo})

	_, err := s.Update(context.Background(), validRecord())
	assert.ErrorIs(t, err, common.ErrorMissingFields, "id is required")

	rec := validRecord()
	rec.ID = 5
	got, err := s.Update(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)

	repo.err = common.ErrorNotFound
	_, err = s.Update(context.Background(), rec)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
