// Package scheduler drives the periodic discovery sweep and retention
// cleanup. Each task holds a guard flag so a slow run is skipped, never
// overlapped.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"go-jobscout-backend/config"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/logger"

	"github.com/robfig/cron/v3"
)

// BatchResult summarizes one discovery sweep.
type BatchResult struct {
	CompaniesProcessed int   `json:"companies_processed"`
	CompaniesWithJobs  int   `json:"companies_with_jobs"`
	JobsIngested       int   `json:"jobs_ingested"`
	NewJobs            int   `json:"new_jobs"`
	SkippedRunning     bool  `json:"skipped_running"`
	DurationMS         int64 `json:"duration_ms"`
}

type Scheduler struct {
	cfg         *config.Config
	companyRepo domain.CompanyRepository
	jobRepo     domain.JobRepository
	ingestion   domain.IngestionUsecase

	cron            *cron.Cron
	discoveryActive atomic.Bool
	cleanupActive   atomic.Bool
}

func New(cfg *config.Config, companyRepo domain.CompanyRepository, jobRepo domain.JobRepository, ingestion domain.IngestionUsecase) *Scheduler {
	return &Scheduler{
		cfg:         cfg,
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
		ingestion:   ingestion,
		cron:        cron.New(),
	}
}

// Start registers the cron entries and launches the runner goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.DiscoveryCronSpec, func() {
		s.RunBatch(context.Background())
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.CleanupCronSpec, func() {
		s.RunCleanup(context.Background())
	}); err != nil {
		return err
	}

	s.cron.Start()
	logger.Log.Info("scheduler started",
		"discovery_spec", s.cfg.DiscoveryCronSpec, "cleanup_spec", s.cfg.CleanupCronSpec)
	return nil
}

// Stop halts the cron runner and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Log.Info("scheduler stopped")
}

// RunBatch sweeps stale companies. The sweep stops early once SuccessCap
// companies have produced at least one listing, so one run never hammers the
// whole roster. Companies that yield nothing do not count against the cap.
func (s *Scheduler) RunBatch(ctx context.Context) *BatchResult {
	if !s.discoveryActive.CompareAndSwap(false, true) {
		logger.Log.Warn("discovery batch already running, skipping")
		return &BatchResult{SkippedRunning: true}
	}
	defer s.discoveryActive.Store(false)

	start := time.Now()
	result := &BatchResult{}

	cutoff := time.Now().Add(-time.Duration(s.cfg.FreshnessWindowHours) * time.Hour)
	companies, err := s.companyRepo.FetchStale(ctx, cutoff, s.cfg.DiscoveryBatchSize)
	if err != nil {
		logger.Log.Error("failed to fetch stale companies", "error", err)
		return result
	}

	logger.Log.Info("discovery batch started", "stale_companies", len(companies))

	for i := range companies {
		if ctx.Err() != nil {
			logger.Log.Warn("discovery batch cancelled", "processed", result.CompaniesProcessed)
			break
		}
		if result.CompaniesWithJobs >= s.cfg.SuccessCap {
			break
		}

		company := &companies[i]
		ingested, err := s.ingestion.IngestCompany(ctx, company)
		result.CompaniesProcessed++
		if err != nil {
			logger.Log.Warn("company ingestion failed", "company", company.Name, "error", err)
			continue
		}

		if len(ingested) > 0 {
			result.CompaniesWithJobs++
			result.JobsIngested += len(ingested)
			for _, job := range ingested {
				if job.IsNew {
					result.NewJobs++
				}
			}
		}

		time.Sleep(time.Duration(s.cfg.PolitenessDelayMS) * time.Millisecond)
	}

	result.DurationMS = time.Since(start).Milliseconds()
	logger.Log.Info("discovery batch finished",
		"processed", result.CompaniesProcessed,
		"with_jobs", result.CompaniesWithJobs,
		"jobs", result.JobsIngested,
		"new_jobs", result.NewJobs,
		"duration_ms", result.DurationMS)
	return result
}

// RunCleanup deletes jobs past retention, then companies left without a
// single live job. Companies are judged on a live count taken after the job
// purge, never on a cached number.
func (s *Scheduler) RunCleanup(ctx context.Context) *domain.CleanupResult {
	if !s.cleanupActive.CompareAndSwap(false, true) {
		logger.Log.Warn("cleanup already running, skipping")
		return &domain.CleanupResult{}
	}
	defer s.cleanupActive.Store(false)

	result := &domain.CleanupResult{}

	cutoff := time.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	deleted, err := s.jobRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Log.Error("failed to delete stale jobs", "error", err)
		return result
	}
	result.DeletedJobs = deleted

	companies, err := s.companyRepo.FetchAll(ctx)
	if err != nil {
		logger.Log.Error("failed to list companies for cleanup", "error", err)
		return result
	}

	const nameSampleCap = 20
	for i := range companies {
		company := &companies[i]
		// Never swept yet means zero jobs is expected, not a signal.
		if company.LastCheckedAt == nil {
			continue
		}
		count, err := s.jobRepo.CountByCompanyName(ctx, company.Name)
		if err != nil {
			logger.Log.Warn("failed to count jobs for company", "company", company.Name, "error", err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := s.companyRepo.Delete(ctx, company.ID); err != nil {
			logger.Log.Warn("failed to delete empty company", "company", company.Name, "error", err)
			continue
		}
		result.DeletedCompanies++
		if len(result.DeletedCompanyNames) < nameSampleCap {
			result.DeletedCompanyNames = append(result.DeletedCompanyNames, company.Name)
		}
	}

	logger.Log.Info("cleanup finished",
		"deleted_jobs", result.DeletedJobs, "deleted_companies", result.DeletedCompanies)
	return result
}
