package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/dmitrijs2005/jobintake/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resumeOf(name, mimeType, content string) *models.ResumeFile {
	return &models.ResumeFile{
		Name:     name,
		MIMEType: mimeType,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

type capturedUpload struct {
	path      string
	requestID string
	auth      string
	data      models.ApplicationPayload
	rawData   map[string]any
	fileName  string
	fileType  string
	fileBody  string
}

func uploadServer(t *testing.T, status int, respBody string, got *capturedUpload) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.requestID = r.Header.Get(common.RequestIDHeaderName)
		got.auth = r.Header.Get(common.AuthorizationHeaderName)

		mt, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", mt)

		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			p, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)
			b, err := io.ReadAll(p)
			require.NoError(t, err)
			switch p.FormName() {
			case "data":
				require.NoError(t, json.Unmarshal(b, &got.data))
				require.NoError(t, json.Unmarshal(b, &got.rawData))
			case "resume":
				got.fileName = p.FileName()
				got.fileType = p.Header.Get("Content-Type")
				got.fileBody = string(b)
			}
		}

		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSubmitApplication_MultipartContract(t *testing.T) {
	var got capturedUpload
	srv := uploadServer(t, http.StatusCreated, `{"data":{"applicationId":"APP-7"}}`, &got)

	c := NewHTTPClient(srv.URL+"/", srv.Client())
	payload := models.ApplicationPayload{
		JobID: 42, FullName: "Asha Rao", Email: "asha@example.in",
		TotalExperience: 3.5, RelevantExperience: 2, WorkMode: models.WorkModeHybrid,
	}

	ack, err := c.SubmitApplication(context.Background(), 42, payload, resumeOf("cv.pdf", "application/pdf", "%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, "/jobs/42/apply", got.path)
	assert.NotEmpty(t, got.requestID)
	assert.Empty(t, got.auth)
	assert.Equal(t, payload, got.data)
	assert.Equal(t, float64(42), got.rawData["jobId"])
	assert.Equal(t, 3.5, got.rawData["totalExperience"])
	assert.Equal(t, "", got.rawData["resumeUrl"])
	assert.Contains(t, got.rawData, "resumeUrl")
	assert.Equal(t, "cv.pdf", got.fileName)
	assert.Equal(t, "application/pdf", got.fileType)
	assert.Equal(t, "%PDF-1.4", got.fileBody)

	assert.Equal(t, "APP-7", ack.Reference)
	assert.JSONEq(t, `{"data":{"applicationId":"APP-7"}}`, string(ack.Raw))
}

func TestSubmitApplication_RetryRereadsResumeAndNewRequestID(t *testing.T) {
	var got capturedUpload
	srv := uploadServer(t, http.StatusOK, `ok`, &got)
	c := NewHTTPClient(srv.URL, srv.Client())

	var opens int32
	resume := resumeOf("cv.docx", "", "bytes")
	inner := resume.Open
	resume.Open = func() (io.ReadCloser, error) {
		atomic.AddInt32(&opens, 1)
		return inner()
	}

	_, err := c.SubmitApplication(context.Background(), 1, models.ApplicationPayload{JobID: 1}, resume)
	require.NoError(t, err)
	first := got.requestID
	assert.Equal(t, "application/octet-stream", got.fileType)

	ack, err := c.SubmitApplication(context.Background(), 1, models.ApplicationPayload{JobID: 1}, resume)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&opens))
	assert.Equal(t, "bytes", got.fileBody)
	assert.NotEqual(t, first, got.requestID)
	assert.Empty(t, ack.Reference)
}

func TestSubmitApplication_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantFields map[string]string
		client     bool
	}{
		{"message field", 400, `{"message":"Email already applied"}`, "Email already applied", nil, true},
		{"error field", 422, `{"error":"Invalid phone"}`, "Invalid phone", nil, true},
		{"field map", 400, `{"message":"Invalid input","errors":{"email":"Email is taken","phone":["too short","x"]}}`,
			"Invalid input", map[string]string{"email": "Email is taken", "phone": "too short"}, true},
		{"server failure html", 503, `<html>down</html>`, "", nil, false},
		{"server failure json", 500, `{"error":{"message":"db down"}}`, "db down", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got capturedUpload
			srv := uploadServer(t, tt.status, tt.body, &got)
			c := NewHTTPClient(srv.URL, srv.Client())

			_, err := c.SubmitApplication(context.Background(), 9, models.ApplicationPayload{JobID: 9}, resumeOf("cv.pdf", "application/pdf", "x"))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantFields, apiErr.Fields)
			assert.Equal(t, tt.client, apiErr.ClientError())
		})
	}
}

func TestSubmitApplication_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := NewHTTPClient("http://"+addr, nil)
	_, err = c.SubmitApplication(context.Background(), 1, models.ApplicationPayload{}, resumeOf("cv.pdf", "application/pdf", "x"))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestSubmitApplication_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := NewHTTPClient(srv.URL, srv.Client(), WithSubmitTimeout(50*time.Millisecond))
	_, err := c.SubmitApplication(context.Background(), 1, models.ApplicationPayload{}, resumeOf("cv.pdf", "application/pdf", "x"))
	require.ErrorIs(t, err, ErrUnavailable)
}

type failingTransport struct {
	err   error
	calls atomic.Int32
}

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, f.err
}

func TestSubmitApplication_AnyTransportFailureIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"round tripper", errors.New("network down")},
		{"proxy", errors.New("proxyconnect tcp: dial tcp 10.0.0.1:3128: connect: no route to host")},
		{"tls handshake", errors.New("tls: handshake failure")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &failingTransport{err: tt.err}
			c := NewHTTPClient("http://api.local", &http.Client{Transport: rt})

			_, err := c.SubmitApplication(context.Background(), 1, models.ApplicationPayload{}, resumeOf("cv.pdf", "application/pdf", "x"))
			require.ErrorIs(t, err, ErrUnavailable)
			assert.Equal(t, int32(1), rt.calls.Load())
		})
	}
}

func TestSubmitApplication_CallerCancelIsNotUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rt := &failingTransport{err: context.Canceled}
	c := NewHTTPClient("http://api.local", &http.Client{Transport: rt})

	_, err := c.SubmitApplication(ctx, 1, models.ApplicationPayload{}, resumeOf("cv.pdf", "application/pdf", "x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestSubmitApplication_BodyCutShortKeepsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		_, _ = io.WriteString(conn, "HTTP/1.1 500 Internal Server Error\r\n"+
			"Content-Type: application/json\r\n"+
			"Content-Length: 200\r\n\r\n"+
			`{"message":"db`)
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, srv.Client())
	_, err := c.SubmitApplication(context.Background(), 1, models.ApplicationPayload{}, resumeOf("cv.pdf", "application/pdf", "x"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
	assert.False(t, apiErr.ClientError())
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestSubmitApplication_UnreadableResume(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", nil)
	_, err := c.SubmitApplication(context.Background(), 1, models.ApplicationPayload{}, &models.ResumeFile{Name: "cv.pdf"})
	require.ErrorIs(t, err, models.ErrResumeNotReadable)
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "applicant", "exp": exp.Unix()}).
		SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestSubmitApplication_BearerToken(t *testing.T) {
	var got capturedUpload
	srv := uploadServer(t, http.StatusOK, `{}`, &got)

	valid := signed(t, time.Now().Add(time.Hour))
	c := NewHTTPClient(srv.URL, srv.Client(), WithTokenSource(func(context.Context) (string, error) { return valid, nil }))
	_, err := c.SubmitApplication(context.Background(), 1, models.ApplicationPayload{}, resumeOf("cv.pdf", "application/pdf", "x"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+valid, got.auth)

	got = capturedUpload{}
	expired := signed(t, time.Now().Add(-time.Hour))
	c = NewHTTPClient(srv.URL, srv.Client(), WithTokenSource(func(context.Context) (string, error) { return expired, nil }))
	_, err = c.SubmitApplication(context.Background(), 1, models.ApplicationPayload{}, resumeOf("cv.pdf", "application/pdf", "x"))
	require.ErrorIs(t, err, common.ErrTokenExpired)
	assert.Empty(t, got.path, "expired token must not reach the server")

	c = NewHTTPClient(srv.URL, srv.Client(), WithTokenSource(func(context.Context) (string, error) { return "", errors.New("db locked") }))
	_, err = c.SubmitApplication(context.Background(), 1, models.ApplicationPayload{}, resumeOf("cv.pdf", "application/pdf", "x"))
	require.Error(t, err)
}

func jobServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/jobs/42" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetJob(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    *models.JobPosting
		wantErr error
	}{
		{
			name:   "plain posting",
			status: 200,
			body:   `{"id":42,"role":"Maths Educator","department":"Academics","location":"Bengaluru","employmentType":"Full-time","mode":"ONSITE"}`,
			want:   &models.JobPosting{ID: 42, Role: "Maths Educator", Department: "Academics", Location: "Bengaluru", EmploymentType: "Full-time", Mode: "ONSITE"},
		},
		{
			name:   "wrapped with title",
			status: 200,
			body:   `{"data":{"id":42,"title":"Content Writer"}}`,
			want:   &models.JobPosting{ID: 42, Role: "Content Writer"},
		},
		{name: "not found", status: 404, body: `{"message":"no such job"}`, wantErr: ErrNotFound},
		{name: "missing role", status: 200, body: `{"id":42}`, wantErr: ErrMalformedResponse},
		{name: "wrong id", status: 200, body: `{"id":7,"role":"x"}`, wantErr: ErrMalformedResponse},
		{name: "not json", status: 200, body: `<html>`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jobServer(t, tt.status, tt.body)
			c := NewHTTPClient(srv.URL, srv.Client())

			got, err := c.GetJob(context.Background(), 42)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetJob_ServerErrorAndUnauthorized(t *testing.T) {
	srv := jobServer(t, 500, `{"error":"boom"}`)
	_, err := NewHTTPClient(srv.URL, srv.Client()).GetJob(context.Background(), 42)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "boom", apiErr.Message)

	srv = jobServer(t, 401, `{"message":"login required"}`)
	_, err = NewHTTPClient(srv.URL, srv.Client()).GetJob(context.Background(), 42)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetJob_LookupTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := NewHTTPClient(srv.URL, srv.Client(), WithLookupTimeout(50*time.Millisecond))
	_, err := c.GetJob(context.Background(), 42)
	require.ErrorIs(t, err, ErrUnavailable)
}
