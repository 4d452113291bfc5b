package tokens

import (
	"context"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/storage"
)

const (
	AccessKey  = "auth_token"
	RefreshKey = "refresh_token"
)

// Store is the process-wide session token store. Every read goes to the
// underlying storage; nothing is cached between requests.
type Store struct {
	KV storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{KV: kv}
}

func (s *Store) AccessToken(ctx context.Context) (string, error) {
	v, _, err := s.KV.Get(ctx, AccessKey)
	return v, err
}

func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	v, _, err := s.KV.Get(ctx, RefreshKey)
	return v, err
}

func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return s.KV.Set(ctx, AccessKey, token)
}

func (s *Store) SetRefreshToken(ctx context.Context, token string) error {
	return s.KV.Set(ctx, RefreshKey, token)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.KV.Delete(ctx, AccessKey, RefreshKey)
}
