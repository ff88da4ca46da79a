package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/acdube/govtravel/internal/rates"
)

// Scheduler periodically rebuilds the rate snapshot from the sources and
// swaps it into the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     *rates.Store
	sources   []rates.Source
	interval  time.Duration
}

// New creates a new Scheduler.
func New(store *rates.Store, sources []rates.Source, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		store:     store,
		sources:   sources,
		interval:  interval,
	}
}

// Start schedules the periodic rebuild and starts the underlying
// scheduler. A failed rebuild leaves the current snapshot serving.
func (s *Scheduler) Start() error {
	hours := int(s.interval.Hours())
	if hours <= 0 {
		hours = 24
	}

	_, err := s.scheduler.Every(hours).Hours().Do(func() {
		log.Println("scheduler: rebuilding rate snapshot")

		snap, err := rates.Build(s.sources)
		if err != nil {
			log.Printf("scheduler: rate rebuild failed, keeping current snapshot: %v", err)
			return
		}

		s.store.Replace(snap)
		log.Printf("scheduler: rate snapshot rebuilt, %d records", snap.Len())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
