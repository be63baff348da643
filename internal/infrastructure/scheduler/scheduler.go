// Package scheduler runs background jobs on a bounded worker pool and
// triggers them from cron expressions.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobStatus is the lifecycle state of a queued job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Task is the work a job performs
type Task func(ctx context.Context) error

// Job is one queued execution of a Task. A failed job is re-queued until
// its attempts exceed MaxRetries.
type Job struct {
	ID         uuid.UUID
	Name       string
	Task       Task
	MaxRetries int

	mu        sync.Mutex
	status    JobStatus
	attempts  int
	lastError string
	notBefore time.Time
	finished  time.Time
}

// NewJob creates a pending job
func NewJob(name string, task Task, maxRetries int) *Job {
	return &Job{
		ID:         uuid.New(),
		Name:       name,
		Task:       task,
		MaxRetries: maxRetries,
		status:     JobStatusPending,
	}
}

// Status returns the current state and the error of the last failed attempt
func (j *Job) Status() (JobStatus, string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status, j.lastError
}

// Attempts returns how many times the task has been started
func (j *Job) Attempts() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.attempts
}

func (j *Job) begin() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = JobStatusRunning
	j.attempts++
}

// finish records the outcome and reports whether the job should run again
func (j *Job) finish(err error, retryDelay time.Duration) (retry bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.finished = time.Now()
	if err == nil {
		j.status = JobStatusSuccess
		j.lastError = ""
		return false
	}
	j.lastError = err.Error()
	if j.attempts > j.MaxRetries {
		j.status = JobStatusFailed
		return false
	}
	j.status = JobStatusPending
	j.notBefore = j.finished.Add(retryDelay)
	return true
}

func (j *Job) delay() time.Duration {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.notBefore.IsZero() {
		return 0
	}
	return time.Until(j.notBefore)
}

// Config sizes the worker pool
type Config struct {
	MaxConcurrentJobs int
	QueueSize         int
	JobTimeout        time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
}

// DefaultConfig suits the handful of maintenance jobs the server runs
func DefaultConfig() Config {
	return Config{
		MaxConcurrentJobs: 2,
		QueueSize:         16,
		JobTimeout:        30 * time.Minute,
		RetryAttempts:     1,
		RetryDelay:        5 * time.Minute,
	}
}

// Validate rejects pool sizes and timeouts that could never run a job
func (c Config) Validate() error {
	switch {
	case c.MaxConcurrentJobs <= 0:
		return fmt.Errorf("%w: max concurrent jobs must be positive", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue size must be positive", ErrInvalidConfig)
	case c.JobTimeout <= 0:
		return fmt.Errorf("%w: job timeout must be positive", ErrInvalidConfig)
	case c.RetryAttempts < 0:
		return fmt.Errorf("%w: retry attempts must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Scheduler executes submitted jobs on a fixed pool of workers
type Scheduler struct {
	config Config
	logger *zap.Logger
	queue  chan *Job

	mu      sync.Mutex
	stop    context.CancelFunc
	workers sync.WaitGroup
}

// NewScheduler validates config and creates a stopped scheduler
func NewScheduler(config Config, logger *zap.Logger) (*Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		config: config,
		logger: logger.Named("scheduler"),
		queue:  make(chan *Job, config.QueueSize),
	}, nil
}

// Start launches the workers. Calling it on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return nil
	}

	ctx, s.stop = context.WithCancel(ctx)
	s.workers.Add(s.config.MaxConcurrentJobs)
	for id := range s.config.MaxConcurrentJobs {
		go s.work(ctx, id)
	}

	s.logger.Info("Job scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Int("queue_size", s.config.QueueSize),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop cancels running jobs and waits for the workers until ctx is done.
// Jobs still queued are dropped.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()
	if stop == nil {
		return nil
	}
	stop()

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Job scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Timed out waiting for scheduler workers", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

// Submit queues job without blocking
func (s *Scheduler) Submit(job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return ErrSchedulerNotRunning
	}
	if !s.enqueue(job) {
		return ErrJobQueueFull
	}
	s.logger.Debug("Job queued", zap.String("job", job.Name), zap.Stringer("job_id", job.ID))
	return nil
}

// SubmitTask wraps task in a job with the configured retry budget and queues it
func (s *Scheduler) SubmitTask(name string, task Task) (*Job, error) {
	job := NewJob(name, task, s.config.RetryAttempts)
	if err := s.Submit(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Scheduler) enqueue(job *Job) bool {
	select {
	case s.queue <- job:
		return true
	default:
		return false
	}
}

func (s *Scheduler) work(ctx context.Context, id int) {
	defer s.workers.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-s.queue:
			s.run(ctx, job, id)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, job *Job, workerID int) {
	if wait := job.delay(); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	log := s.logger.With(
		zap.String("job", job.Name),
		zap.Stringer("job_id", job.ID),
		zap.Int("worker_id", workerID),
	)

	job.begin()
	started := time.Now()
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	err := s.execute(jobCtx, job)
	cancel()

	retry := job.finish(err, s.config.RetryDelay)
	switch {
	case err == nil:
		log.Info("Job completed", zap.Duration("elapsed", time.Since(started)))
	case retry && ctx.Err() == nil:
		log.Warn("Job failed, retrying",
			zap.Error(err),
			zap.Int("attempt", job.Attempts()),
			zap.Duration("retry_in", s.config.RetryDelay),
		)
		if !s.enqueue(job) {
			log.Error("Queue full, retry dropped")
		}
	default:
		log.Error("Job failed", zap.Error(err), zap.Int("attempts", job.Attempts()))
	}
}

func (s *Scheduler) execute(ctx context.Context, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return job.Task(ctx)
}
