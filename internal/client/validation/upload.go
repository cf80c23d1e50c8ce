package validation

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/dmitrijs2005/jobintake/internal/common"
)

// UploadReason says which part of the upload constraint failed.
type UploadReason string

const (
	ReasonWrongType UploadReason = "wrong type"
	ReasonTooLarge  UploadReason = "too large"
)

const (
	MsgResumeWrongType = "Please upload a PDF or Word document (.pdf, .doc, .docx)"
	MsgResumeTooLarge  = "Resume must be 5 MB or smaller"
)

// UploadError rejects a resume selection.
type UploadError struct {
	Reason  UploadReason
	Message string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("resume rejected (%s): %s", e.Reason, e.Message)
}

var acceptedMIMETypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

var acceptedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// CheckResume applies the upload constraint at selection time. The type check
// passes on a known MIME type or, when the MIME type is missing or generic, on
// a known file extension.
func CheckResume(f *models.ResumeFile) error {
	if f == nil {
		return &UploadError{Reason: ReasonWrongType, Message: MsgResumeWrongType}
	}
	if !acceptedType(f.MIMEType, f.Name) {
		return &UploadError{Reason: ReasonWrongType, Message: MsgResumeWrongType}
	}
	if f.Size > common.MaxResumeBytes {
		return &UploadError{Reason: ReasonTooLarge, Message: MsgResumeTooLarge}
	}
	return nil
}

func acceptedType(mimeType, name string) bool {
	if mimeType != "" {
		if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
			if _, ok := acceptedMIMETypes[strings.ToLower(mt)]; ok {
				return true
			}
		}
	}
	_, ok := acceptedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
