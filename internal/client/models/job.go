package models

// JobPosting identifies the role being applied to. It is fetched once when
// the flow starts and never changes afterwards.
type JobPosting struct {
	ID             int64  `json:"id" validate:"required,gt=0"`
	Role           string `json:"role" validate:"required"`
	Department     string `json:"department"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"`
	Mode           string `json:"mode"`
}
