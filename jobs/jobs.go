// Package jobs schedules the periodic maintenance of the service.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Refresher reloads the catalog snapshot.
type Refresher interface {
	Refresh(ctx context.Context) (uint64, error)
}

// Purger drops idle sessions.
type Purger interface {
	Purge() int
}

type Scheduler struct {
	sched *cron.Cron
}

// New registers the catalog resync on resyncSchedule and the session purge every minute.
// An empty resyncSchedule disables the resync.
func New(resyncSchedule string, refresher Refresher, purger Purger) (*Scheduler, error) {
	s := &Scheduler{sched: cron.New(cron.WithParser(cronParser))}

	if resyncSchedule != "" && refresher != nil {
		if _, err := s.sched.AddFunc(resyncSchedule, safe("catalog-resync", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			version, err := refresher.Refresh(ctx)
			if err != nil {
				zap.S().Errorf("catalog resync error %s", err.Error())
				return
			}
			zap.S().Debugw("catalog resynced", "namespace", "jobs", "version", version)
		})); err != nil {
			return nil, err
		}
	}

	if purger != nil {
		if _, err := s.sched.AddFunc("@every 1m", safe("session-purge", func() {
			purger.Purge()
		})); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.sched.Stop().Done():
	case <-ctx.Done():
	}
}

// Entries is the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.sched.Entries())
}

func safe(name string, fn func()) func() {
	return func() {
		defer func() {
			if err := recover(); err != nil {
				zap.S().Errorf("job %s panic: %v", name, err)
			}
		}()
		fn()
	}
}
