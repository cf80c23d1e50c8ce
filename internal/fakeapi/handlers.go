package fakeapi

import (
	"errors"
	"net/http"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/dmitrijs2005/jobintake/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of plain failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse carries per-field messages keyed by the JSON field name.
type ValidationResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// applicationRequest mirrors the "data" part. Pointers mark fields that must
// be present even when their value is zero.
type applicationRequest struct {
	JobID              int64    `json:"jobId" binding:"required,gt=0"`
	FullName           string   `json:"fullName" binding:"required"`
	Email              string   `json:"email" binding:"required,email"`
	Phone              string   `json:"phone" binding:"required"`
	City               string   `json:"city" binding:"required"`
	State              string   `json:"state" binding:"required"`
	Pincode            string   `json:"pincode" binding:"required,len=6,numeric"`
	WorkMode           string   `json:"workMode" binding:"required,oneof=REMOTE ONSITE HYBRID"`
	PreferredLocation  string   `json:"preferredLocation" binding:"required"`
	CurrentCompany     string   `json:"currentCompany" binding:"required"`
	TotalExperience    *float64 `json:"totalExperience" binding:"required,min=0"`
	RelevantExperience *float64 `json:"relevantExperience" binding:"required,min=0"`
	NoticePeriod       string   `json:"noticePeriod" binding:"required"`
	ResumeURL          *string  `json:"resumeUrl" binding:"required"`
	LinkedInURL        string   `json:"linkedinUrl" binding:"omitempty,url"`
	GitHubURL          string   `json:"githubUrl" binding:"omitempty,url"`
	PortfolioURL       string   `json:"portfolioUrl" binding:"omitempty,url"`
	AdditionalInfo     string   `json:"additionalInfo"`
}

func (r applicationRequest) payload() models.ApplicationPayload {
	return models.ApplicationPayload{
		JobID:              r.JobID,
		FullName:           r.FullName,
		Email:              r.Email,
		Phone:              r.Phone,
		City:               r.City,
		State:              r.State,
		Pincode:            r.Pincode,
		WorkMode:           models.WorkMode(r.WorkMode),
		PreferredLocation:  r.PreferredLocation,
		CurrentCompany:     r.CurrentCompany,
		TotalExperience:    *r.TotalExperience,
		RelevantExperience: *r.RelevantExperience,
		NoticePeriod:       r.NoticePeriod,
		LinkedInURL:        r.LinkedInURL,
		GitHubURL:          r.GitHubURL,
		PortfolioURL:       r.PortfolioURL,
		AdditionalInfo:     r.AdditionalInfo,
	}
}

var allowedResumeExt = map[string]struct{}{".pdf": {}, ".doc": {}, ".docx": {}}

var registerNamesOnce sync.Once

// useJSONFieldNames makes validation errors report JSON keys so they line
// up with the client's field names.
func useJSONFieldNames() {
	registerNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

type handler struct {
	store          *Store
	logger         logging.Logger
	maxResumeBytes int64
}

func jobID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid job id"})
		return 0, false
	}
	return id, true
}

func (h *handler) listJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.store.Jobs()})
}

func (h *handler) getJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	job, ok := h.store.Job(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *handler) apply(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	if _, ok := h.store.Job(id); !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Job not found"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request entity too large"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Expected a multipart/form-data body"})
		return
	}

	data := form.Value["data"]
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, ValidationResponse{Message: "Application data is missing"})
		return
	}

	var req applicationRequest
	if err := binding.JSON.BindBody([]byte(data[0]), &req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, ValidationResponse{
				Message: "Please correct the highlighted fields",
				Errors:  fieldMessages(verrs),
			})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Malformed application data"})
		return
	}
	if req.JobID != id {
		c.JSON(http.StatusBadRequest, ValidationResponse{
			Message: "Application does not match the job",
			Errors:  map[string]string{"jobId": "Does not match the job being applied to"},
		})
		return
	}

	files := form.File["resume"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, ValidationResponse{
			Message: "Resume is required",
			Errors:  map[string]string{models.FieldResume: "Resume is required"},
		})
		return
	}
	fh := files[0]
	if fh.Size > h.maxResumeBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Resume is too large"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedResumeExt[ext]; !ok {
		c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{Error: "File extension is not allowed"})
		return
	}

	app := h.store.Save(Application{
		Payload:    req.payload(),
		ResumeName: fh.Filename,
		ResumeType: fh.Header.Get("Content-Type"),
		ResumeSize: fh.Size,
		RequestID:  c.GetHeader(headerRequestID),
	})
	h.logger.Info(c.Request.Context(), "application stored", "job_id", id, "application_id", app.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Application received",
		"data": gin.H{
			"applicationId": app.ID,
			"resumeUrl":     "/uploads/" + app.ID + ext,
		},
	})
}

func fieldMessages(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return "Must not be negative"
	case "gt":
		return "Must be greater than " + fe.Param()
	case "len":
		return "Must be exactly " + fe.Param() + " characters"
	case "numeric":
		return "Must contain digits only"
	case "oneof":
		return "Must be one of " + fe.Param()
	case "url":
		return "Must be a valid URL"
	}
	return "Invalid value"
}
