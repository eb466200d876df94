// Package session keeps the client-side identity label of the signed-in user.
//
// The label is a display name only. It is never consulted when deciding
// whether a session is valid; that decision always goes to the server.
package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/passgate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/passgate/internal/common"
)

const (
	labelKey = "user_name"

	// DefaultLabel is shown when no name was stored.
	DefaultLabel = "Default User"
)

// LabelStore persists the display name returned by a successful login.
type LabelStore struct {
	repo metadata.Repository
}

func NewLabelStore(repo metadata.Repository) *LabelStore {
	return &LabelStore{repo: repo}
}

func (s *LabelStore) SetName(ctx context.Context, name string) error {
	return s.repo.Set(ctx, labelKey, name)
}

// Name returns the stored label, or DefaultLabel when nothing is stored.
func (s *LabelStore) Name(ctx context.Context) (string, error) {
	name, err := s.repo.Get(ctx, labelKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return DefaultLabel, nil
		}
		return "", err
	}
	if name == "" {
		return DefaultLabel, nil
	}
	return name, nil
}

func (s *LabelStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, labelKey)
}
