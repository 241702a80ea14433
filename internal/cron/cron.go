package cron

import (
	"context"
	"sync"

	"github.com/caarlos0/env/v6"
	cronv3 "github.com/robfig/cron/v3"

	cron_config "github.com/photostack/photostack/internal/cron/config"
	"github.com/photostack/photostack/internal/logger"
	"github.com/photostack/photostack/internal/repository"
	"github.com/photostack/photostack/internal/tracing"
)

const (
	// GroupIntegrity is the group for data-hygiene jobs
	GroupIntegrity = "integrity"
)

// LOCK MANAGEMENT
var jobLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{
	locks: map[string]*sync.Mutex{
		GroupIntegrity: new(sync.Mutex),
	},
}

type CronManager struct {
	log    logger.Logger
	cron   *cronv3.Cron
	stopCh chan struct{}
	jobIDs map[string]cronv3.EntryID
	repos  *repository.Repositories
}

func NewCronManager(log logger.Logger, repos *repository.Repositories) *CronManager {
	return &CronManager{
		log:    log,
		stopCh: make(chan struct{}),
		jobIDs: make(map[string]cronv3.EntryID),
		repos:  repos,
	}
}

// StartCron starts the scheduler. The service runs single-instance, so no
// leader election is involved.
func (cm *CronManager) StartCron() {
	c := cronv3.New(cronv3.WithSeconds())
	cm.registerJobs(c)
	c.Start()
	cm.cron = c
}

// Stop gracefully stops the cron manager
func (cm *CronManager) Stop() {
	if cm.cron != nil {
		cm.log.Info("Stopping cron manager")
		ctx := cm.cron.Stop()
		// Wait for jobs to finish
		<-ctx.Done()
	}
	close(cm.stopCh)
}

// registerJobs adds all cron jobs to the scheduler
func (cm *CronManager) registerJobs(c *cronv3.Cron) {
	// Load cron config from environment variables
	var cronConfig cron_config.Config
	if err := env.Parse(&cronConfig); err != nil {
		cm.log.Fatalf("Failed to parse cron config from environment: %v", err)
	}

	id, err := c.AddFunc(cronConfig.CronScheduleIntegritySweep, func() {
		lock := jobLocks.locks[GroupIntegrity]
		lock.Lock()
		defer lock.Unlock()
		cm.runIntegritySweep()
	})
	if err != nil {
		cm.log.Fatalf("Failed to register integrity sweep job: %v", err)
	}
	cm.jobIDs["integritySweep"] = id
}

// runIntegritySweep reports tags and photos whose references no longer
// resolve. Read-only: the sweep never deletes, it only surfaces drift.
func (cm *CronManager) runIntegritySweep() {
	span, ctx := tracing.StartTracerSpan(context.Background(), "CronManager.runIntegritySweep")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	orphanTags, err := cm.repos.TagRepository.CountOrphans(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("integrity sweep: counting orphan tags failed: %v", err)
		return
	}

	missingOwners, err := cm.repos.PhotoRepository.CountMissingOwners(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("integrity sweep: counting missing owners failed: %v", err)
		return
	}

	if orphanTags > 0 || missingOwners > 0 {
		cm.log.Warnf("integrity sweep: %d orphan tags, %d photos with unresolvable owners", orphanTags, missingOwners)
		return
	}
	cm.log.Info("integrity sweep: clean")
}
