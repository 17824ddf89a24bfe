// Package refresh invalidates cached datasets on a schedule or when the
// underlying files change.
package refresh

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// CacheClearer drops every cached dataset.
type CacheClearer interface {
	Clear() int
}

// Scheduler clears the dataset cache on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	cache    CacheClearer
	logger   *slog.Logger
	mu       sync.Mutex
	schedule string
	entry    cron.EntryID
	running  bool
}

// NewScheduler creates a scheduler for the given standard five-field cron
// expression or descriptor such as "@hourly".
func NewScheduler(cache CacheClearer, schedule string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		cron:     cron.New(),
		cache:    cache,
		logger:   logger,
		schedule: schedule,
	}
}

// Start registers the schedule and starts the cron runner.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	// A Reload while stopped has already registered the schedule.
	if s.entry == 0 {
		if err := s.register(s.schedule); err != nil {
			return err
		}
	}
	s.cron.Start()
	s.running = true
	s.logger.Info("cache clear scheduler started", "schedule", s.schedule)
	return nil
}

// Stop stops the cron runner, waits for a running clear to finish and
// unregisters the schedule.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entry)
	s.entry = 0
	s.running = false
	s.logger.Info("cache clear scheduler stopped")
}

// Reload replaces the schedule. On an invalid expression the previous
// schedule stays in effect.
func (s *Scheduler) Reload(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cache clear schedule %q: %w", schedule, err)
	}
	if s.entry != 0 {
		s.cron.Remove(s.entry)
		s.entry = 0
	}
	if err := s.register(schedule); err != nil {
		return err
	}
	s.schedule = schedule
	s.logger.Info("cache clear schedule reloaded", "schedule", schedule)
	return nil
}

func (s *Scheduler) register(schedule string) error {
	id, err := s.cron.AddFunc(schedule, s.clear)
	if err != nil {
		return fmt.Errorf("invalid cache clear schedule %q: %w", schedule, err)
	}
	s.entry = id
	return nil
}

func (s *Scheduler) clear() {
	n := s.cache.Clear()
	s.logger.Info("scheduled cache clear", "entries", n)
}
