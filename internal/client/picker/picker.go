// Package picker resolves a user-supplied resume reference into a
// models.ResumeFile. Local paths and s3://bucket/key references are
// supported.
package picker

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
)

var (
	ErrEmptyReference  = errors.New("no file given")
	ErrNotRegularFile  = errors.New("not a regular file")
	ErrS3NotConfigured = errors.New("s3 storage is not configured")
	ErrInvalidS3URI    = errors.New("invalid s3 reference, expected s3://bucket/key")
)

const s3Scheme = "s3://"

type Picker interface {
	Pick(ctx context.Context, ref string) (*models.ResumeFile, error)
}

// Router dispatches s3:// references to the S3 picker and everything else
// to the local one.
type Router struct {
	local Picker
	s3    Picker
}

// NewRouter returns a Router. s3 may be nil when no bucket access is
// configured.
func NewRouter(local, s3 Picker) *Router {
	return &Router{local: local, s3: s3}
}

func (r *Router) Pick(ctx context.Context, ref string) (*models.ResumeFile, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrEmptyReference
	}
	if strings.HasPrefix(strings.ToLower(ref), s3Scheme) {
		if r.s3 == nil {
			return nil, ErrS3NotConfigured
		}
		return r.s3.Pick(ctx, ref)
	}
	return r.local.Pick(ctx, ref)
}
