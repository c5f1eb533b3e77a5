package api

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pdfpilot/internal/models"
)

const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusComplete   = "complete"
	JobStatusFailed     = "failed"
)

// AskJob tracks one asynchronous question-answering run that the frontend
// polls.
type AskJob struct {
	ID        string              `json:"jobId"`
	Status    string              `json:"status"`
	Question  string              `json:"question"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Step      string              `json:"step,omitempty"`
	Message   string              `json:"message,omitempty"`
	Current   int                 `json:"current"`
	Total     int                 `json:"total"`
	Percent   int                 `json:"percent"`
	Result    *models.AskResponse `json:"result,omitempty"`
	Error     string              `json:"error,omitempty"`
}

type JobManager struct {
	mu   sync.RWMutex
	jobs map[string]*AskJob
}

func NewJobManager() *JobManager {
	return &JobManager{
		jobs: make(map[string]*AskJob),
	}
}

func (m *JobManager) CreateJob(question string) (string, *AskJob) {
	job := &AskJob{
		ID:        uuid.NewString(),
		Status:    JobStatusPending,
		Question:  question,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	return job.ID, job.clone()
}

func (m *JobManager) GetJob(id string) (*AskJob, bool) {
	m.mu.RLock()
	job, ok := m.jobs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return job.clone(), true
}

func (m *JobManager) MarkProcessing(id string) {
	m.withJob(id, func(job *AskJob) {
		job.Status = JobStatusProcessing
		job.Message = "Starting"
	})
}

func (m *JobManager) UpdateProgress(id string, step, message string, current, total int) {
	m.withJob(id, func(job *AskJob) {
		job.Status = JobStatusProcessing
		job.Step = step
		job.Message = message
		job.Current = current
		job.Total = total
		job.Percent = percent(current, total)
	})
}

func (m *JobManager) MarkComplete(id string, result models.AskResponse) {
	m.withJob(id, func(job *AskJob) {
		job.Status = JobStatusComplete
		job.Step = "complete"
		job.Message = "Answer ready"
		job.Current = job.Total
		job.Percent = 100
		res := result
		job.Result = &res
		job.Error = ""
	})
}

func (m *JobManager) MarkFailed(id string, msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "processing error"
	}
	m.withJob(id, func(job *AskJob) {
		job.Status = JobStatusFailed
		job.Step = "error"
		job.Message = msg
		job.Error = msg
	})
}

func (m *JobManager) withJob(id string, fn func(job *AskJob)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return
	}
	fn(job)
	job.UpdatedAt = time.Now().UTC()
}

func (job *AskJob) clone() *AskJob {
	if job == nil {
		return nil
	}
	copyJob := *job
	if job.Result != nil {
		res := *job.Result
		copyJob.Result = &res
	}
	return &copyJob
}

func percent(current, total int) int {
	if total <= 0 {
		if current <= 0 {
			return 0
		}
		if current > 100 {
			return 100
		}
		return current
	}
	if current <= 0 {
		return 0
	}
	if current >= total {
		return 100
	}
	return int((float64(current) / float64(total)) * 100)
}
