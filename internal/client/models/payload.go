package models

// ApplicationPayload is the JSON document sent in the "data" part of the
// submission. ResumeURL is always sent empty; the server fills it once the
// "resume" part is stored.
type ApplicationPayload struct {
	JobID              int64    `json:"jobId"`
	FullName           string   `json:"fullName"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Pincode            string   `json:"pincode"`
	WorkMode           WorkMode `json:"workMode"`
	PreferredLocation  string   `json:"preferredLocation"`
	CurrentCompany     string   `json:"currentCompany"`
	TotalExperience    float64  `json:"totalExperience"`
	RelevantExperience float64  `json:"relevantExperience"`
	NoticePeriod       string   `json:"noticePeriod"`
	ResumeURL          string   `json:"resumeUrl"`
	LinkedInURL        string   `json:"linkedinUrl"`
	GitHubURL          string   `json:"githubUrl"`
	PortfolioURL       string   `json:"portfolioUrl"`
	AdditionalInfo     string   `json:"additionalInfo"`
}
