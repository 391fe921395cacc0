package scheduler

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"MetalWatch/internal/metrics"
)

// Scheduler runs repeating jobs on a seconds-resolution cron.
// Every job gets a cancel func that removes it from the cron.
type Scheduler struct {
	Cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler creates a new Scheduler. Panicking jobs are recovered and logged.
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scheduler")
	cl := cronLogger{logger.Sugar()}
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(cron.Recover(cl))),
		logger: logger,
	}
}

// Every runs job every interval until the returned cancel func is called.
// cron.Every rounds interval down to whole seconds, with a one-second floor.
// cancel is safe to call more than once.
func (s *Scheduler) Every(interval time.Duration, job func()) (cancel func()) {
	id := s.Cron.Schedule(cron.Every(interval), cron.FuncJob(job))
	metrics.ActiveTickers.Inc()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.Cron.Remove(id)
			metrics.ActiveTickers.Dec()
		})
	}
}

// Len reports how many jobs are scheduled.
func (s *Scheduler) Len() int {
	return len(s.Cron.Entries())
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
