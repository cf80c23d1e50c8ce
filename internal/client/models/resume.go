package models

import (
	"errors"
	"io"
)

var ErrResumeNotReadable = errors.New("resume source is not readable")

// ResumeFile references a selected resume. Only name, MIME type and size are
// needed to accept or reject it; the bytes are read through Open, which
// returns a fresh reader each time so a retry re-reads the whole file.
type ResumeFile struct {
	Name     string
	MIMEType string
	Size     int64
	// Source is where the file was picked from (path or s3:// URI).
	Source string
	Open   func() (io.ReadCloser, error)
}

// Reader opens the resume content.
func (f *ResumeFile) Reader() (io.ReadCloser, error) {
	if f == nil || f.Open == nil {
		return nil, ErrResumeNotReadable
	}
	return f.Open()
}
