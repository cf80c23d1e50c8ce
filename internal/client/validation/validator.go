// Package validation holds the pure rules that gate an application: field
// checks over a draft and the upload constraint applied when a resume is
// selected. Nothing here performs I/O.
package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// Messages shown next to invalid fields.
const (
	MsgFullNameRequired          = "Full name is required"
	MsgEmailRequired             = "Email is required"
	MsgEmailInvalid              = "Please enter a valid email address"
	MsgPhoneRequired             = "Phone number is required"
	MsgPhoneInvalid              = "Phone number must be 10 digits"
	MsgCityRequired              = "City is required"
	MsgStateRequired             = "State is required"
	MsgPincodeRequired           = "Pincode is required"
	MsgPincodeInvalid            = "Pincode must be 6 digits"
	MsgCurrentCompanyRequired    = "Current company is required"
	MsgPreferredLocationRequired = "Preferred location is required"
	MsgNoticePeriodRequired      = "Notice period is required"
	MsgTotalExperienceInvalid    = "Total experience must be a number of years (0 or more)"
	MsgRelevantExperienceInvalid = "Relevant experience must be a number of years (0 or more)"
	MsgResumeRequired            = "Resume is required"
)

// rule returns an error message, or "" when the value passes.
type rule func(value string) string

func required(msg string) rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return msg
		}
		return ""
	}
}

func matches(re *regexp.Regexp, msg string) rule {
	return func(v string) string {
		if !re.MatchString(strings.TrimSpace(v)) {
			return msg
		}
		return ""
	}
}

func tenDigits(msg string) rule {
	return func(v string) string {
		if len(DigitsOnly(v)) != 10 {
			return msg
		}
		return ""
	}
}

func nonNegativeNumber(msg string) rule {
	return func(v string) string {
		if _, ok := ParseYears(v); !ok {
			return msg
		}
		return ""
	}
}

type fieldRules struct {
	field string
	rules []rule
}

var textRules = []fieldRules{
	{models.FieldFullName, []rule{required(MsgFullNameRequired)}},
	{models.FieldEmail, []rule{required(MsgEmailRequired), matches(emailPattern, MsgEmailInvalid)}},
	{models.FieldPhone, []rule{required(MsgPhoneRequired), tenDigits(MsgPhoneInvalid)}},
	{models.FieldCity, []rule{required(MsgCityRequired)}},
	{models.FieldState, []rule{required(MsgStateRequired)}},
	{models.FieldPincode, []rule{required(MsgPincodeRequired), matches(pincodePattern, MsgPincodeInvalid)}},
	{models.FieldCurrentCompany, []rule{required(MsgCurrentCompanyRequired)}},
	{models.FieldPreferredLocation, []rule{required(MsgPreferredLocationRequired)}},
	{models.FieldNoticePeriod, []rule{required(MsgNoticePeriodRequired)}},
	{models.FieldTotalExperience, []rule{nonNegativeNumber(MsgTotalExperienceInvalid)}},
	{models.FieldRelevantExperience, []rule{nonNegativeNumber(MsgRelevantExperienceInvalid)}},
}

// Validate maps a draft to its field errors. The first failing rule of a
// field wins, so every field carries at most one message. The result is
// never nil.
func Validate(d models.ApplicationDraft) models.FieldErrors {
	errs := models.FieldErrors{}

	for _, fr := range textRules {
		value, _ := d.Value(fr.field)
		for _, r := range fr.rules {
			if msg := r(value); msg != "" {
				errs[fr.field] = msg
				break
			}
		}
	}

	if d.Resume == nil {
		errs[models.FieldResume] = MsgResumeRequired
	}

	return errs
}

// CanSubmit reports whether the draft may be sent.
func CanSubmit(d models.ApplicationDraft) bool {
	return len(Validate(d)) == 0 && d.Resume != nil
}

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseYears parses an experience value. Empty, non-numeric, infinite and
// negative values are rejected.
func ParseYears(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
