package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobintake/internal/client/client"
	"github.com/dmitrijs2005/jobintake/internal/client/repositories/metadata"
)

// SessionService manages the optional access token sent with API calls.
type SessionService interface {
	// SetToken stores token after refusing an already expired JWT.
	SetToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

type sessionService struct {
	store    *metadata.TokenStore
	override string
	now      func() time.Time
}

// NewSessionService returns a session backed by the metadata store. A
// non-empty override (from configuration) takes precedence over the
// stored token.
func NewSessionService(repo metadata.Repository, override string) SessionService {
	return &sessionService{store: metadata.NewTokenStore(repo), override: override, now: time.Now}
}

func (s *sessionService) SetToken(ctx context.Context, token string) error {
	if err := client.CheckToken(token, s.now()); err != nil {
		return err
	}
	return s.store.SetToken(ctx, token)
}

func (s *sessionService) Token(ctx context.Context) (string, error) {
	if s.override != "" {
		return s.override, nil
	}
	return s.store.Token(ctx)
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.override = ""
	return s.store.ClearToken(ctx)
}
