// Package metadata stores small key/value settings of the local client,
// such as the applicant access token.
package metadata

import (
	"context"
)

// KeyAccessToken holds the bearer token used for careers API calls.
const KeyAccessToken = "access_token"

type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
