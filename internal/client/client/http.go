package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/dmitrijs2005/jobintake/internal/common"
	"github.com/dmitrijs2005/jobintake/internal/logging"
	"github.com/dmitrijs2005/jobintake/internal/netx"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	DefaultSubmitTimeout = 60 * time.Second
	DefaultLookupTimeout = 15 * time.Second

	dataPartName   = "data"
	resumePartName = "resume"
)

// HTTPClient talks to the careers API over HTTP.
type HTTPClient struct {
	baseURL       string
	httpClient    *http.Client
	token         TokenSource
	submitTimeout time.Duration
	lookupTimeout time.Duration
	logger        logging.Logger
	validate      *validator.Validate
	now           func() time.Time
	newRequestID  func() string
}

type Option func(*HTTPClient)

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.token = ts }
}

func WithSubmitTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.submitTimeout = d
		}
	}
}

func WithLookupTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.lookupTimeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func NewHTTPClient(baseURL string, httpClient *http.Client, opts ...Option) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &HTTPClient{
		baseURL:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient:    httpClient,
		submitTimeout: DefaultSubmitTimeout,
		lookupTimeout: DefaultLookupTimeout,
		logger:        logging.Discard(),
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		now:           time.Now,
		newRequestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type jobResponse struct {
	models.JobPosting
	Title string       `json:"title"`
	Data  *jobResponse `json:"data"`
}

func (c *HTTPClient) GetJob(ctx context.Context, jobID int64) (*models.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.jobURL(jobID), nil)
	if err != nil {
		return nil, fmt.Errorf("create job request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if status < 200 || status > 299 {
		msg, fields := decodeErrorBody(body)
		return nil, &APIError{StatusCode: status, Message: msg, Fields: fields}
	}

	var parsed jobResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode job posting: %v", ErrMalformedResponse, err)
	}
	if parsed.Data != nil && parsed.ID == 0 {
		parsed = *parsed.Data
	}

	posting := parsed.JobPosting
	if posting.Role == "" {
		posting.Role = parsed.Title
	}
	if err := c.validate.Struct(posting); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if posting.ID != jobID {
		return nil, fmt.Errorf("%w: asked for job %d, got %d", ErrMalformedResponse, jobID, posting.ID)
	}
	return &posting, nil
}

func (c *HTTPClient) SubmitApplication(ctx context.Context, jobID int64, payload models.ApplicationPayload, resume *models.ResumeFile) (*models.Acknowledgment, error) {
	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	body, contentType, err := encodeMultipart(payload, resume)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.jobURL(jobID)+"/apply", body)
	if err != nil {
		return nil, fmt.Errorf("create apply request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	requestID := c.newRequestID()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "submitting application", "job_id", jobID, "request_id", requestID, "resume", resume.Name)

	status, respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		msg, fields := decodeErrorBody(respBody)
		return nil, &APIError{StatusCode: status, Message: msg, Fields: fields}
	}

	return &models.Acknowledgment{Reference: referenceOf(respBody), Raw: respBody}, nil
}

func (c *HTTPClient) jobURL(jobID int64) string {
	return fmt.Sprintf("%s/jobs/%d", c.baseURL, jobID)
}

func (c *HTTPClient) authorize(ctx context.Context, req *http.Request) error {
	if c.token == nil {
		return nil
	}
	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("load access token: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := CheckToken(token, c.now()); err != nil {
		return err
	}
	req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	return nil
}

// do sends req and reads the whole body. Any Do failure other than a
// cancelled context is reported as ErrUnavailable. Once a status line has
// arrived the status is returned even if the body is cut short.
func (c *HTTPClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, c.mapTransportError(req.Context(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn(req.Context(), "response body cut short",
			"status", resp.StatusCode, "reason", netx.Reason(err), "error", err)
	}
	return resp.StatusCode, body, nil
}

func (c *HTTPClient) mapTransportError(ctx context.Context, err error) error {
	if !netx.NoResponse(err) {
		return fmt.Errorf("http request: %w", err)
	}
	c.logger.Debug(ctx, "request got no response", "reason", netx.Reason(err), "error", err)
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// encodeMultipart builds the request body in memory. Resumes are capped at a
// few megabytes so buffering keeps Content-Length known to the server.
func encodeMultipart(payload models.ApplicationPayload, resume *models.ResumeFile) (*bytes.Buffer, string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode application: %w", err)
	}

	rc, err := resume.Reader()
	if err != nil {
		return nil, "", fmt.Errorf("open resume: %w", err)
	}
	defer rc.Close()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	dataHeader := textproto.MIMEHeader{}
	dataHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, dataPartName))
	dataHeader.Set("Content-Type", "application/json")
	part, err := w.CreatePart(dataHeader)
	if err != nil {
		return nil, "", fmt.Errorf("create data part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write data part: %w", err)
	}

	contentType := resume.MIMEType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, resumePartName, escapeQuotes(resume.Name)))
	fileHeader.Set("Content-Type", contentType)
	part, err = w.CreatePart(fileHeader)
	if err != nil {
		return nil, "", fmt.Errorf("create resume part: %w", err)
	}
	if _, err := io.Copy(part, rc); err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrResumeNotReadable, err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
