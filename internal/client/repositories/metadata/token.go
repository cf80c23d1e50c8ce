package metadata

import (
	"context"
	"strings"
)

// TokenStore keeps the access token in a metadata Repository.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Token returns the stored token or "" when none is set.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *TokenStore) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.repo.Delete(ctx, KeyAccessToken)
	}
	return s.repo.Set(ctx, KeyAccessToken, []byte(token))
}

func (s *TokenStore) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyAccessToken)
}
