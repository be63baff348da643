package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronTrigger submits a task to the scheduler each time a cron expression
// fires. The loop wakes on a ticker and compares the clock against the next
// activation, so a missed tick fires on the following one.
type CronTrigger struct {
	name          string
	schedule      cron.Schedule
	task          Task
	scheduler     *Scheduler
	checkInterval time.Duration
	logger        *zap.Logger
	now           func() time.Time

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	next      time.Time
}

// NewCronTrigger parses spec as a standard five-field cron expression
func NewCronTrigger(name, spec string, task Task, scheduler *Scheduler, checkInterval time.Duration, logger *zap.Logger) (*CronTrigger, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: cron spec %q: %v", ErrInvalidConfig, spec, err)
	}
	if checkInterval <= 0 {
		checkInterval = time.Minute
	}
	return &CronTrigger{
		name:          name,
		schedule:      schedule,
		task:          task,
		scheduler:     scheduler,
		checkInterval: checkInterval,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// Schedule returns the parsed cron schedule
func (c *CronTrigger) Schedule() cron.Schedule {
	return c.schedule
}

// Start starts the trigger loop
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isRunning {
		return nil
	}
	c.isRunning = true
	c.next = c.schedule.Next(c.now())

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.String("job", c.name),
		zap.Time("next_run", c.next),
		zap.Duration("check_interval", c.checkInterval),
	)
	return nil
}

// Stop stops the trigger loop
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped", zap.String("job", c.name))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the next activation time, or zero before Start
func (c *CronTrigger) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger()
		}
	}
}

// checkAndTrigger submits the task when the next activation has passed and
// advances to the following one. It reports whether the task was submitted.
func (c *CronTrigger) checkAndTrigger() bool {
	now := c.now()

	c.mu.Lock()
	if c.next.IsZero() || now.Before(c.next) {
		c.mu.Unlock()
		return false
	}
	due := c.next
	c.next = c.schedule.Next(now)
	c.mu.Unlock()

	job, err := c.scheduler.SubmitTask(c.name, c.task)
	if err != nil {
		c.logger.Error("Failed to submit scheduled job",
			zap.String("job", c.name),
			zap.Time("due", due),
			zap.Error(err),
		)
		return false
	}
	c.logger.Info("Scheduled job submitted",
		zap.String("job", c.name),
		zap.String("job_id", job.ID.String()),
		zap.Time("due", due),
	)
	return true
}
