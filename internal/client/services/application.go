package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/jobintake/internal/client/client"
	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/dmitrijs2005/jobintake/internal/client/repositories/receipts"
	"github.com/dmitrijs2005/jobintake/internal/client/validation"
	"github.com/dmitrijs2005/jobintake/internal/common"
	"github.com/dmitrijs2005/jobintake/internal/cryptox"
	"github.com/dmitrijs2005/jobintake/internal/logging"
	"github.com/google/uuid"
)

const (
	MsgNetworkError     = "Network error. Please check your internet connection and try again."
	MsgSubmitFailed     = "Failed to submit application. Please try again."
	MsgSessionExpired   = "Your session has expired. Set a new access token with the token command and try again."
	MsgResumeUnreadable = "Could not read the selected resume. Please select the file again."
)

// ApplicationService is the submission pipeline.
type ApplicationService interface {
	// Submit validates the draft and, when it is clean, sends one
	// application for the posting. It never returns an error; every failure
	// is described by the outcome.
	Submit(ctx context.Context, draft models.ApplicationDraft, posting models.JobPosting) models.Outcome
	// PreviousSubmission returns the latest receipt for the same job and
	// resume content, or nil when there is none.
	PreviousSubmission(ctx context.Context, jobID int64, resume *models.ResumeFile) (*models.Receipt, error)
	// History lists local receipts, newest first.
	History(ctx context.Context) ([]models.Receipt, error)
}

type applicationService struct {
	client   client.Client
	receipts receipts.Repository
	logger   logging.Logger
	now      func() time.Time
	newID    func() string
}

// NewApplicationService wires the pipeline. repo may be nil, in which case
// no receipts are recorded.
func NewApplicationService(c client.Client, repo receipts.Repository, logger logging.Logger) ApplicationService {
	return &applicationService{
		client:   c,
		receipts: repo,
		logger:   logger.With("module", "applications"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *applicationService) Submit(ctx context.Context, draft models.ApplicationDraft, posting models.JobPosting) models.Outcome {
	if errs := validation.Validate(draft); len(errs) > 0 {
		s.logger.Debug(ctx, "draft rejected locally", "fields", errs.Keys())
		return models.Outcome{
			Kind:        models.OutcomeValidationRejected,
			FieldErrors: errs,
			Local:       true,
		}
	}

	payload := BuildPayload(draft, posting.ID)

	ack, err := s.client.SubmitApplication(ctx, posting.ID, payload, draft.Resume)
	if err != nil {
		outcome := outcomeForError(err)
		s.logger.Warn(ctx, "application not accepted",
			"job_id", posting.ID, "outcome", outcome.Kind.String(), "error", err)
		return outcome
	}

	s.logger.Info(ctx, "application accepted", "job_id", posting.ID, "reference", ack.Reference)
	s.record(ctx, draft, posting, ack)

	return models.Outcome{Kind: models.OutcomeSuccess, Ack: ack}
}

// BuildPayload maps a validated draft to the "data" document.
func BuildPayload(d models.ApplicationDraft, jobID int64) models.ApplicationPayload {
	total, _ := validation.ParseYears(d.TotalExperience)
	relevant, _ := validation.ParseYears(d.RelevantExperience)

	return models.ApplicationPayload{
		JobID:              jobID,
		FullName:           d.FullName,
		Email:              d.Email,
		Phone:              d.Phone,
		City:               d.City,
		State:              d.State,
		Pincode:            d.Pincode,
		WorkMode:           d.WorkMode,
		PreferredLocation:  d.PreferredLocation,
		CurrentCompany:     d.CurrentCompany,
		TotalExperience:    total,
		RelevantExperience: relevant,
		NoticePeriod:       d.NoticePeriod,
		ResumeURL:          "",
		LinkedInURL:        d.LinkedInURL,
		GitHubURL:          d.GitHubURL,
		PortfolioURL:       d.PortfolioURL,
		AdditionalInfo:     d.AdditionalInfo,
	}
}

func outcomeForError(err error) models.Outcome {
	if errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrInvalidToken) {
		return models.Outcome{Kind: models.OutcomeUnexpectedFailure, Message: MsgSessionExpired, Local: true}
	}
	if errors.Is(err, models.ErrResumeNotReadable) {
		return models.Outcome{Kind: models.OutcomeUnexpectedFailure, Message: MsgResumeUnreadable, Local: true}
	}
	if errors.Is(err, client.ErrUnavailable) {
		return models.Outcome{Kind: models.OutcomeTransportFailure, Message: MsgNetworkError}
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" && errors.Is(err, client.ErrUnauthorized) {
			msg = MsgSessionExpired
		}
		if msg == "" {
			msg = MsgSubmitFailed
		}
		kind := models.OutcomeUnexpectedFailure
		if apiErr.ClientError() {
			kind = models.OutcomeValidationRejected
		}
		return models.Outcome{Kind: kind, Message: msg, FieldErrors: models.FieldErrors(apiErr.Fields).Clone()}
	}

	return models.Outcome{Kind: models.OutcomeUnexpectedFailure, Message: MsgSubmitFailed}
}

// record stores a receipt. The application is already accepted, so a
// failure here is only logged.
func (s *applicationService) record(ctx context.Context, d models.ApplicationDraft, p models.JobPosting, ack *models.Acknowledgment) {
	if s.receipts == nil {
		return
	}

	digest, err := resumeDigest(d.Resume)
	if err != nil {
		s.logger.Warn(ctx, "resume digest failed", "error", err)
	}

	rc := &models.Receipt{
		ID:           s.newID(),
		JobID:        p.ID,
		Role:         p.Role,
		Email:        d.Email,
		ResumeName:   d.Resume.Name,
		ResumeDigest: digest,
		Reference:    ack.Reference,
		SubmittedAt:  s.now().UTC(),
	}
	if err := s.receipts.Insert(ctx, rc); err != nil {
		s.logger.Warn(ctx, "receipt not recorded", "job_id", p.ID, "error", err)
	}
}

func (s *applicationService) PreviousSubmission(ctx context.Context, jobID int64, resume *models.ResumeFile) (*models.Receipt, error) {
	if s.receipts == nil || resume == nil {
		return nil, nil
	}

	digest, err := resumeDigest(resume)
	if err != nil {
		return nil, err
	}

	rc, err := s.receipts.FindByJobAndDigest(ctx, jobID, digest)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func (s *applicationService) History(ctx context.Context) ([]models.Receipt, error) {
	if s.receipts == nil {
		return nil, nil
	}
	return s.receipts.List(ctx)
}

func resumeDigest(f *models.ResumeFile) (string, error) {
	rc, err := f.Reader()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return cryptox.DigestReader(rc)
}
