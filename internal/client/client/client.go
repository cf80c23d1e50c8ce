package client

import (
	"context"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
)

// Client is the careers API contract used by the intake flow.
type Client interface {
	// GetJob resolves a job posting. A missing posting yields ErrNotFound.
	GetJob(ctx context.Context, jobID int64) (*models.JobPosting, error)
	// SubmitApplication uploads one application as a multipart request with
	// a "data" JSON part and a "resume" file part.
	SubmitApplication(ctx context.Context, jobID int64, payload models.ApplicationPayload, resume *models.ResumeFile) (*models.Acknowledgment, error)
}

// TokenSource supplies the optional bearer token. An empty token means the
// request is sent without an Authorization header.
type TokenSource func(ctx context.Context) (string, error)
