package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jobintake/internal/client/client"
	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/dmitrijs2005/jobintake/internal/common"
)

type fakeClient struct {
	client.Client

	mu          sync.Mutex
	job         *models.JobPosting
	jobErr      error
	ack         *models.Acknowledgment
	submitErr   error
	submits     int
	lastPayload models.ApplicationPayload
	lastJobID   int64
}

func (f *fakeClient) GetJob(ctx context.Context, jobID int64) (*models.JobPosting, error) {
	return f.job, f.jobErr
}

func (f *fakeClient) SubmitApplication(ctx context.Context, jobID int64, p models.ApplicationPayload, r *models.ResumeFile) (*models.Acknowledgment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	f.lastPayload = p
	f.lastJobID = jobID
	return f.ack, f.submitErr
}

type memReceipts struct {
	items     []models.Receipt
	insertErr error
}

func (m *memReceipts) Insert(ctx context.Context, r *models.Receipt) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.items = append(m.items, *r)
	return nil
}

func (m *memReceipts) List(ctx context.Context) ([]models.Receipt, error) {
	return m.items, nil
}

func (m *memReceipts) FindByJobAndDigest(ctx context.Context, jobID int64, digest string) (*models.Receipt, error) {
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].JobID == jobID && m.items[i].ResumeDigest == digest {
			r := m.items[i]
			return &r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memReceipts) Clear(ctx context.Context) error {
	m.items = nil
	return nil
}

func resume(name, content string) *models.ResumeFile {
	return &models.ResumeFile{
		Name:     name,
		MIMEType: "application/pdf",
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func validDraft() models.ApplicationDraft {
	d := models.NewDraft()
	d.FullName = "Asha Rao"
	d.Email = "asha@example.in"
	d.Phone = "98765 43210"
	d.City = "Pune"
	d.State = "Maharashtra"
	d.Pincode = "411001"
	d.WorkMode = models.WorkModeOnsite
	d.PreferredLocation = "Pune"
	d.CurrentCompany = "Acme Tutors"
	d.TotalExperience = "4.5"
	d.RelevantExperience = "2"
	d.NoticePeriod = "30 days"
	d.LinkedInURL = "https://linkedin.com/in/asha"
	d.Resume = resume("cv.pdf", "%PDF-1.4 asha")
	return d
}

var errBoom = errors.New("boom")
