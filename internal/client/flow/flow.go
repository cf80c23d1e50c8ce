// Package flow drives one job application from posting lookup to the
// confirmation notice. A Flow owns its form state; nothing is shared
// between flows.
package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/jobintake/internal/client/form"
	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/dmitrijs2005/jobintake/internal/client/services"
	"github.com/dmitrijs2005/jobintake/internal/client/validation"
	"github.com/dmitrijs2005/jobintake/internal/logging"
)

var (
	// ErrPostingUnavailable is terminal: the flow never shows a form.
	ErrPostingUnavailable = errors.New("job posting could not be loaded")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrFlowClosed         = errors.New("application flow is closed")
)

// MsgPostingUnavailable is shown instead of the form when the posting could
// not be resolved.
const MsgPostingUnavailable = "This job posting could not be loaded. Please check the link and try again later."

// Navigator takes over once an application has been accepted.
type Navigator interface {
	Leave(ctx context.Context, notice string)
}

// Deps are the collaborators of a flow.
type Deps struct {
	Jobs         services.JobService
	Applications services.ApplicationService
	Navigator    Navigator
	Logger       logging.Logger
}

type Flow struct {
	posting models.JobPosting
	state   *form.State
	deps    Deps
	logger  logging.Logger

	mu     sync.Mutex
	closed bool
}

// Enter resolves the posting and opens a fresh form. Any lookup failure is
// reported as ErrPostingUnavailable wrapping the cause.
func Enter(ctx context.Context, jobID int64, deps Deps) (*Flow, error) {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("module", "flow", "job_id", jobID)

	posting, err := deps.Jobs.Lookup(ctx, jobID)
	if err != nil {
		logger.Warn(ctx, "posting unavailable", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPostingUnavailable, err)
	}

	return &Flow{
		posting: *posting,
		state:   form.New(),
		deps:    deps,
		logger:  logger,
	}, nil
}

func (f *Flow) Posting() models.JobPosting { return f.posting }

// Form exposes the form state for field edits and file selection.
func (f *Flow) Form() *form.State { return f.state }

func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// ConfirmationNotice is the one-time message shown after success.
func ConfirmationNotice(p models.JobPosting, ack *models.Acknowledgment) string {
	msg := fmt.Sprintf("Application submitted for %s. We will be in touch soon.", p.Role)
	if ack != nil && ack.Reference != "" {
		msg += fmt.Sprintf(" Reference: %s.", ack.Reference)
	}
	return msg
}

// Submit runs one submission attempt. Local validation failures are applied
// to the form without a network call. While a call is outstanding any other
// Submit returns ErrSubmissionInFlight. On success the navigator is invoked
// once and the flow is closed.
func (f *Flow) Submit(ctx context.Context) (models.Outcome, error) {
	if f.Closed() {
		return models.Outcome{}, ErrFlowClosed
	}
	if f.state.Loading() {
		return models.Outcome{}, ErrSubmissionInFlight
	}

	draft := f.state.Draft()
	if errs := validation.Validate(draft); len(errs) > 0 {
		f.state.SetErrors(errs)
		f.logger.Debug(ctx, "submission blocked by validation", "fields", errs.Keys())
		return models.Outcome{Kind: models.OutcomeValidationRejected, FieldErrors: errs, Local: true}, nil
	}

	if !f.state.TryBeginSubmit() {
		return models.Outcome{}, ErrSubmissionInFlight
	}
	f.state.ClearGlobalError()

	// The draft is re-read under the loading flag so no edit slipped in
	// between validation and submission.
	outcome := f.deps.Applications.Submit(ctx, f.state.Draft(), f.posting)

	f.apply(ctx, outcome)
	return outcome, nil
}

func (f *Flow) apply(ctx context.Context, o models.Outcome) {
	defer f.state.SetLoading(false)

	switch o.Kind {
	case models.OutcomeSuccess:
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()
		f.state.SetErrors(nil)
		if f.deps.Navigator != nil {
			f.deps.Navigator.Leave(ctx, ConfirmationNotice(f.posting, o.Ack))
		}
	case models.OutcomeValidationRejected:
		if len(o.FieldErrors) > 0 {
			merged := f.state.Errors()
			for k, v := range o.FieldErrors {
				merged[k] = v
			}
			f.state.SetErrors(merged)
		}
		if o.Message != "" {
			f.state.SetGlobalError(o.Message)
		}
	default:
		f.state.SetGlobalError(o.Message)
	}
}
