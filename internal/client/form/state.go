// Package form owns the mutable state of one application flow: the draft,
// the per-field errors, a global message area and the loading flag that
// disables input while a submission is outstanding.
package form

import (
	"errors"
	"sync"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/dmitrijs2005/jobintake/internal/client/validation"
)

// ErrInputsDisabled is returned for edits attempted while a submission is
// in flight.
var ErrInputsDisabled = errors.New("inputs are disabled while submitting")

// State is safe for concurrent use.
type State struct {
	mu          sync.Mutex
	draft       models.ApplicationDraft
	errors      models.FieldErrors
	globalError string
	loading     bool
}

func New() *State {
	return &State{draft: models.NewDraft(), errors: models.FieldErrors{}}
}

// Draft returns a copy of the current draft.
func (s *State) Draft() models.ApplicationDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Errors returns a copy of the current field errors.
func (s *State) Errors() models.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors.Clone()
}

func (s *State) GlobalError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.globalError
}

func (s *State) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetField overwrites one text field and clears that field's error. Other
// fields and their errors are left alone.
func (s *State) SetField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return ErrInputsDisabled
	}
	if err := s.draft.Set(field, value); err != nil {
		return err
	}
	delete(s.errors, field)
	return nil
}

// SelectResume applies the upload constraint. A rejected file keeps the
// previous resume, sets the global error to the constraint message and does
// not touch an existing resume field error; an accepted file replaces the
// resume and clears its field error.
func (s *State) SelectResume(f *models.ResumeFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return ErrInputsDisabled
	}

	if err := validation.CheckResume(f); err != nil {
		var ue *validation.UploadError
		if errors.As(err, &ue) {
			s.globalError = ue.Message
		}
		return err
	}

	s.draft.Resume = f
	delete(s.errors, models.FieldResume)
	return nil
}

func (s *State) ClearFieldError(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.errors, field)
}

func (s *State) ClearGlobalError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalError = ""
}

func (s *State) SetGlobalError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalError = msg
}

// SetErrors replaces the whole error set, e.g. with a validation result.
func (s *State) SetErrors(errs models.FieldErrors) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = errs.Clone()
	if s.errors == nil {
		s.errors = models.FieldErrors{}
	}
}

func (s *State) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// TryBeginSubmit sets the loading flag if it was clear and reports whether
// the caller now owns the submission.
func (s *State) TryBeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}
