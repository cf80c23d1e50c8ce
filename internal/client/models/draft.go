// Package models defines the data exchanged by the job-application intake
// flow: the applicant draft, the resume reference, the job posting and the
// outcome of a submission attempt.
package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// WorkMode is the applicant's preferred way of working.
type WorkMode string

const (
	WorkModeRemote WorkMode = "REMOTE"
	WorkModeOnsite WorkMode = "ONSITE"
	WorkModeHybrid WorkMode = "HYBRID"
)

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidWorkMode = errors.New("work mode must be one of REMOTE, ONSITE, HYBRID")
)

// ParseWorkMode accepts the enum name in any letter case.
func ParseWorkMode(s string) (WorkMode, error) {
	switch WorkMode(strings.ToUpper(strings.TrimSpace(s))) {
	case WorkModeRemote:
		return WorkModeRemote, nil
	case WorkModeOnsite:
		return WorkModeOnsite, nil
	case WorkModeHybrid:
		return WorkModeHybrid, nil
	}
	return "", ErrInvalidWorkMode
}

// Field names double as JSON keys of the submitted document and as keys of
// FieldErrors.
const (
	FieldFullName           = "fullName"
	FieldEmail              = "email"
	FieldPhone              = "phone"
	FieldCity               = "city"
	FieldState              = "state"
	FieldPincode            = "pincode"
	FieldWorkMode           = "workMode"
	FieldPreferredLocation  = "preferredLocation"
	FieldCurrentCompany     = "currentCompany"
	FieldTotalExperience    = "totalExperience"
	FieldRelevantExperience = "relevantExperience"
	FieldNoticePeriod       = "noticePeriod"
	FieldResume             = "resume"
	FieldLinkedInURL        = "linkedinUrl"
	FieldGitHubURL          = "githubUrl"
	FieldPortfolioURL       = "portfolioUrl"
	FieldAdditionalInfo     = "additionalInfo"
)

// TextFields lists the editable text fields in form order. The resume is
// selected separately.
var TextFields = []string{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldCity,
	FieldState,
	FieldPincode,
	FieldWorkMode,
	FieldPreferredLocation,
	FieldCurrentCompany,
	FieldTotalExperience,
	FieldRelevantExperience,
	FieldNoticePeriod,
	FieldLinkedInURL,
	FieldGitHubURL,
	FieldPortfolioURL,
	FieldAdditionalInfo,
}

// ApplicationDraft is the in-memory working record of one job application.
// Experience values keep the text the applicant typed; they are parsed only
// when the payload is built.
type ApplicationDraft struct {
	FullName           string
	Email              string
	Phone              string
	City               string
	State              string
	Pincode            string
	WorkMode           WorkMode
	PreferredLocation  string
	CurrentCompany     string
	TotalExperience    string
	RelevantExperience string
	NoticePeriod       string
	Resume             *ResumeFile
	LinkedInURL        string
	GitHubURL          string
	PortfolioURL       string
	AdditionalInfo     string
}

// NewDraft returns an empty draft with the default work mode.
func NewDraft() ApplicationDraft {
	return ApplicationDraft{WorkMode: WorkModeRemote}
}

func (d *ApplicationDraft) textField(field string) (*string, bool) {
	switch field {
	case FieldFullName:
		return &d.FullName, true
	case FieldEmail:
		return &d.Email, true
	case FieldPhone:
		return &d.Phone, true
	case FieldCity:
		return &d.City, true
	case FieldState:
		return &d.State, true
	case FieldPincode:
		return &d.Pincode, true
	case FieldPreferredLocation:
		return &d.PreferredLocation, true
	case FieldCurrentCompany:
		return &d.CurrentCompany, true
	case FieldTotalExperience:
		return &d.TotalExperience, true
	case FieldRelevantExperience:
		return &d.RelevantExperience, true
	case FieldNoticePeriod:
		return &d.NoticePeriod, true
	case FieldLinkedInURL:
		return &d.LinkedInURL, true
	case FieldGitHubURL:
		return &d.GitHubURL, true
	case FieldPortfolioURL:
		return &d.PortfolioURL, true
	case FieldAdditionalInfo:
		return &d.AdditionalInfo, true
	}
	return nil, false
}

// Set overwrites a single text field. The work mode is parsed; every other
// value is stored verbatim.
func (d *ApplicationDraft) Set(field, value string) error {
	if field == FieldWorkMode {
		mode, err := ParseWorkMode(value)
		if err != nil {
			return err
		}
		d.WorkMode = mode
		return nil
	}
	p, ok := d.textField(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	*p = value
	return nil
}

// Value returns the current text of a field.
func (d ApplicationDraft) Value(field string) (string, bool) {
	if field == FieldWorkMode {
		return string(d.WorkMode), true
	}
	p, ok := d.textField(field)
	if !ok {
		return "", false
	}
	return *p, true
}

// FieldErrors maps a field name to a user-facing message. A field without an
// entry is valid.
type FieldErrors map[string]string

// Clone returns an independent copy; nil stays nil.
func (e FieldErrors) Clone() FieldErrors {
	if e == nil {
		return nil
	}
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Keys returns the invalid field names in sorted order.
func (e FieldErrors) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
