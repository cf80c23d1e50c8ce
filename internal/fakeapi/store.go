package fakeapi

import (
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/google/uuid"
)

// Application is one accepted submission as the fake server stored it.
type Application struct {
	ID         string                    `json:"applicationId"`
	Payload    models.ApplicationPayload `json:"payload"`
	ResumeName string                    `json:"resumeName"`
	ResumeType string                    `json:"resumeType"`
	ResumeSize int64                     `json:"resumeSize"`
	RequestID  string                    `json:"requestId,omitempty"`
	ReceivedAt time.Time                 `json:"receivedAt"`
}

// Store keeps postings and applications in memory.
type Store struct {
	mu           sync.RWMutex
	jobs         map[int64]models.JobPosting
	applications []Application
}

func NewStore(jobs ...models.JobPosting) *Store {
	s := &Store{jobs: make(map[int64]models.JobPosting, len(jobs))}
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	return s
}

// SampleJobs seeds the standalone server.
func SampleJobs() []models.JobPosting {
	return []models.JobPosting{
		{ID: 1, Role: "Mathematics Educator", Department: "Academics", Location: "Pune", EmploymentType: "Full-time", Mode: "ONSITE"},
		{ID: 2, Role: "Curriculum Designer", Department: "Content", Location: "Bengaluru", EmploymentType: "Full-time", Mode: "HYBRID"},
		{ID: 3, Role: "Academic Counsellor", Department: "Admissions", Location: "Remote", EmploymentType: "Contract", Mode: "REMOTE"},
	}
}

func (s *Store) Job(id int64) (models.JobPosting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}

func (s *Store) Jobs() []models.JobPosting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.JobPosting, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

// Save assigns an id and stores the application.
func (s *Store) Save(a Application) Application {
	a.ID = "APP-" + uuid.NewString()[:8]
	if a.ReceivedAt.IsZero() {
		a.ReceivedAt = time.Now().UTC()
	}
	s.mu.Lock()
	s.applications = append(s.applications, a)
	s.mu.Unlock()
	return a
}

func (s *Store) Applications() []Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Application, len(s.applications))
	copy(out, s.applications)
	return out
}
