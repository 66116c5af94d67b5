package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gcbaptista/termindex/internal/errors"
	"github.com/gcbaptista/termindex/internal/logger"
	"github.com/gcbaptista/termindex/model"
)

// Observer is notified when a job reaches a terminal status.
type Observer interface {
	ObserveJob(jobType model.JobType, status model.JobStatus, took time.Duration)
}

// Func is the work a job performs.
type Func func(ctx context.Context, job *model.Job) error

// Manager handles background job execution and tracking
type Manager struct {
	mu         sync.RWMutex
	jobs       map[string]*model.Job
	dispatched map[string]struct{} // pending jobs already handed to a goroutine
	workers    chan struct{}       // Limits concurrent jobs
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	metrics    *JobMetrics
	observer   Observer
	log        *log.Logger
}

// NewManager creates a new job manager with specified worker count.
// observer may be nil.
func NewManager(maxWorkers int, observer Observer, l *log.Logger) *Manager {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if l == nil {
		l = logger.New("jobs")
	}
	return &Manager{
		jobs:       make(map[string]*model.Job),
		dispatched: make(map[string]struct{}),
		workers:    make(chan struct{}, maxWorkers),
		stopChan:   make(chan struct{}),
		metrics:    NewJobMetrics(),
		observer:   observer,
		log:        l,
	}
}

// Start begins the job manager and starts background cleanup
func (m *Manager) Start() {
	m.log.Info("job manager started", "max_workers", cap(m.workers))
	go m.cleanupRoutine()
}

// Stop shuts the manager down and waits for running jobs. Safe to call twice.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
		m.wg.Wait()
		m.log.Info("job manager stopped")
	})
}

// CreateJob creates a new pending job and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    model.JobStatusPending,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	m.jobs[job.ID] = job
	m.metrics.RecordJobCreated(jobType)
	m.log.Debug("created job", "id", job.ID, "type", job.Type)
	return job.ID
}

// GetJob retrieves a copy of a job by ID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns all jobs, optionally filtered by status
func (m *Manager) ListJobs(status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if status == nil || job.Status == *status {
			result = append(result, copyJob(job))
		}
	}
	return result
}

// ExecuteJob runs jobFunc in the background once a worker slot is free.
// The job stays pending until it gets a slot, but it can be executed only once.
func (m *Manager) ExecuteJob(jobID string, jobFunc Func) error {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	if job.Status != model.JobStatusPending {
		status := job.Status
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, status)
	}
	if _, claimed := m.dispatched[jobID]; claimed {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is already dispatched", jobID)
	}
	m.dispatched[jobID] = struct{}{}
	m.mu.Unlock()

	select {
	case <-m.stopChan:
		m.finish(jobID, model.JobStatusCancelled, "job manager shutting down", 0)
		return fmt.Errorf("job manager is shutting down")
	default:
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		select {
		case m.workers <- struct{}{}:
		case <-m.stopChan:
			m.finish(jobID, model.JobStatusCancelled, "job manager shutting down", 0)
			return
		}
		defer func() { <-m.workers }()

		select {
		case <-m.stopChan:
			m.finish(jobID, model.JobStatusCancelled, "job manager shutting down", 0)
			return
		default:
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			select {
			case <-m.stopChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		m.setRunning(jobID)
		startTime := time.Now()
		err := jobFunc(ctx, m.snapshot(jobID))
		executionTime := time.Since(startTime)

		if err != nil {
			m.finish(jobID, model.JobStatusFailed, err.Error(), executionTime)
			m.log.Error("job failed", "id", jobID, "took", executionTime, "err", err)
			return
		}
		m.finish(jobID, model.JobStatusCompleted, "", executionTime)
		m.log.Info("job completed", "id", jobID, "took", executionTime)
	}()

	return nil
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}
	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

func (m *Manager) setRunning(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	now := time.Now()
	job.StartedAt = &now
	m.metrics.RecordJobStatusChange(job.Status, model.JobStatusRunning)
	job.Status = model.JobStatusRunning
}

func (m *Manager) snapshot(jobID string) *model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyJob(m.jobs[jobID])
}

// finish moves a job to a terminal status (internal method).
// Metrics are recorded before the status becomes visible to readers.
func (m *Manager) finish(jobID string, status model.JobStatus, errorMsg string, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.dispatched, jobID)
	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	m.metrics.RecordJobStatusChange(job.Status, status)
	if status != model.JobStatusCancelled {
		m.metrics.RecordJobFinished(status == model.JobStatusCompleted, took)
	}
	if m.observer != nil {
		m.observer.ObserveJob(job.Type, status, took)
	}

	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}
	now := time.Now()
	job.CompletedAt = &now
}

// cleanupRoutine runs periodic job cleanup
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(24 * time.Hour)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupOldJobs removes finished jobs older than maxAge
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.log.Info("cleaned up old jobs", "count", cleaned)
	}
	return cleaned
}

// GetMetrics returns current job performance metrics
func (m *Manager) GetMetrics() JobMetricsData {
	return m.metrics.GetMetrics()
}

// GetCurrentWorkload returns the number of running and pending jobs
func (m *Manager) GetCurrentWorkload() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	workload := map[string]int{
		"running":     0,
		"pending":     0,
		"max_workers": cap(m.workers),
	}
	for _, job := range m.jobs {
		switch job.Status {
		case model.JobStatusRunning:
			workload["running"]++
		case model.JobStatusPending:
			workload["pending"]++
		}
	}
	return workload
}

func copyJob(job *model.Job) *model.Job {
	if job == nil {
		return nil
	}
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	return &jobCopy
}
