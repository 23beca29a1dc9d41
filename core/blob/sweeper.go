package blob

import (
	"time"

	"github.com/robfig/cron/v3"

	"nis2-copilot/config"
	"nis2-copilot/core/utils"
)

// Sweeper deletes local blobs older than the configured age on a cron
// schedule. It only applies to the local backend; bucket lifecycle rules cover
// S3 deployments.
type Sweeper struct {
	cfg    config.RetentionConfig
	store  *LocalStore
	logger *utils.Logger
	cron   *cron.Cron
}

func NewSweeper(cfg config.RetentionConfig, store *LocalStore, logger *utils.Logger) *Sweeper {
	return &Sweeper{cfg: cfg, store: store, logger: logger}
}

func (s *Sweeper) Start() error {
	if s == nil || s.store == nil || !s.cfg.Enabled {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(s.cfg.Schedule, func() { s.RunOnce(time.Now().UTC()) }); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	s.logger.Printf("retention sweeper scheduled (%s, max age %dd)", s.cfg.Schedule, s.cfg.MaxAgeDays)
	return nil
}

func (s *Sweeper) Stop() {
	if s == nil || s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
}

func (s *Sweeper) RunOnce(now time.Time) {
	maxAge := s.cfg.MaxAgeDays
	if maxAge <= 0 {
		return
	}
	cutoff := now.Add(-time.Duration(maxAge) * 24 * time.Hour)
	removed, err := s.store.Sweep(cutoff)
	if err != nil {
		s.logger.Errorf("retention sweep: %v", err)
		return
	}
	if removed > 0 {
		s.logger.Printf("retention sweep removed %d blobs older than %s", removed, cutoff.Format(time.RFC3339))
	}
}
