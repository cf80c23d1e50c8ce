package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobintake/internal/client/client"
	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/dmitrijs2005/jobintake/internal/logging"
)

var ErrInvalidJobID = errors.New("job id must be a positive integer")

// JobService resolves the posting an applicant is applying to.
type JobService interface {
	Lookup(ctx context.Context, jobID int64) (*models.JobPosting, error)
}

type jobService struct {
	client client.Client
	logger logging.Logger
}

func NewJobService(c client.Client, logger logging.Logger) JobService {
	return &jobService{client: c, logger: logger.With("module", "jobs")}
}

func (s *jobService) Lookup(ctx context.Context, jobID int64) (*models.JobPosting, error) {
	if jobID <= 0 {
		return nil, ErrInvalidJobID
	}

	posting, err := s.client.GetJob(ctx, jobID)
	if err != nil {
		s.logger.Warn(ctx, "job lookup failed", "job_id", jobID, "error", err)
		return nil, fmt.Errorf("lookup job %d: %w", jobID, err)
	}

	s.logger.Debug(ctx, "job resolved", "job_id", posting.ID, "role", posting.Role)
	return posting, nil
}
