package models

import "time"

// Receipt is the local record of an accepted application.
type Receipt struct {
	ID           string
	JobID        int64
	Role         string
	Email        string
	ResumeName   string
	ResumeDigest string
	Reference    string
	SubmittedAt  time.Time
}
