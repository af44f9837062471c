package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/erp/seeder/internal/seeder"
	"go.uber.org/zap"
)

// cronTickerInterval is the interval at which the scheduler checks for execution
const cronTickerInterval = 1 * time.Minute

// SeedSchedulerConfig holds configuration for the cron-based seed scheduler
type SeedSchedulerConfig struct {
	// Enabled indicates if the scheduler is active
	Enabled bool
	// CronHour is the hour (0-23) to run the daily seed
	CronHour int
	// CronMinute is the minute (0-59) to run the daily seed
	CronMinute int
	// CronSchedule is the cron expression (parsed to extract hour/minute)
	CronSchedule string
	// CustomerCount is how many customers each run generates
	CustomerCount int
	// OrderCount is how many orders each run generates
	OrderCount int
	// RunTimeout is the maximum time a single seed run can take
	RunTimeout time.Duration
}

// DefaultSeedSchedulerConfig returns default scheduler configuration,
// running at 2:00 AM daily
func DefaultSeedSchedulerConfig() SeedSchedulerConfig {
	return SeedSchedulerConfig{
		Enabled:       false,
		CronHour:      2,
		CronMinute:    0,
		CronSchedule:  "0 2 * * *",
		CustomerCount: 5,
		OrderCount:    10,
		RunTimeout:    10 * time.Minute,
	}
}

// ParseCronSchedule parses a cron expression "minute hour * * *" to extract
// hour and minute. Returns defaults (2:00) if the expression is empty or
// cannot be parsed.
func ParseCronSchedule(cronExpr string) (hour, minute int, err error) {
	hour = 2
	minute = 0

	if cronExpr == "" {
		return hour, minute, nil
	}

	parts := strings.Fields(cronExpr)
	if len(parts) < 2 {
		return hour, minute, nil
	}

	if parts[0] != "*" {
		if val, parseErr := strconv.Atoi(parts[0]); parseErr == nil {
			minute = val
		}
	}
	if parts[1] != "*" {
		if val, parseErr := strconv.Atoi(parts[1]); parseErr == nil {
			hour = val
		}
	}

	if minute < 0 || minute > 59 {
		return 2, 0, fmt.Errorf("minute must be 0-59, got %d", minute)
	}
	if hour < 0 || hour > 23 {
		return 2, 0, fmt.Errorf("hour must be 0-23, got %d", hour)
	}

	return hour, minute, nil
}

// SeedScheduler runs the customer and order generators once a day at the
// configured time. Generation failures are logged, never fatal: the next
// day's run proceeds regardless.
type SeedScheduler struct {
	config    SeedSchedulerConfig
	customers *seeder.CustomerGenerator
	orders    *seeder.OrderGenerator
	logger    *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewSeedScheduler creates a new seed scheduler
func NewSeedScheduler(
	config SeedSchedulerConfig,
	customers *seeder.CustomerGenerator,
	orders *seeder.OrderGenerator,
	logger *zap.Logger,
) *SeedScheduler {
	return &SeedScheduler{
		config:    config,
		customers: customers,
		orders:    orders,
		logger:    logger,
	}
}

// Start starts the scheduler loop
func (s *SeedScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Seed scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Seed scheduler started",
		zap.Int("hour", s.config.CronHour),
		zap.Int("minute", s.config.CronMinute),
		zap.Int("customer_count", s.config.CustomerCount),
		zap.Int("order_count", s.config.OrderCount),
	)

	return nil
}

// Stop stops the scheduler loop and waits for an in-flight run to finish
func (s *SeedScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Seed scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SeedScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(cronTickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.runOnce(ctx, now)
			}
		}
	}
}

// shouldRun reports whether the scheduled time has been reached and the
// run has not already happened today
func (s *SeedScheduler) shouldRun(now time.Time) bool {
	if now.Hour() != s.config.CronHour || now.Minute() != s.config.CronMinute {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	today := now.Format("2006-01-02")
	if s.lastRunDate == today {
		return false
	}
	s.lastRunDate = today
	return true
}

func (s *SeedScheduler) runOnce(ctx context.Context, now time.Time) {
	ctx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	s.logger.Info("Starting scheduled seed run", zap.Time("at", now))

	customerCfg := seeder.CustomerRunConfig{
		Count:         s.config.CustomerCount,
		WithAddresses: true,
		AddressCount:  1,
	}
	if result, err := s.customers.Generate(ctx, customerCfg); err != nil {
		s.logger.Error("Scheduled customer seed failed", zap.Error(err))
	} else {
		s.logger.Info("Scheduled customer seed finished",
			zap.Int("generated", result.Generated()),
			zap.Int("failed", result.Failed()),
			zap.Strings("errors", result.Errors),
		)
	}

	orderCfg := seeder.OrderRunConfig{Count: s.config.OrderCount}
	if result, err := s.orders.Generate(ctx, orderCfg); err != nil {
		s.logger.Error("Scheduled order seed failed", zap.Error(err))
	} else {
		s.logger.Info("Scheduled order seed finished",
			zap.Int("generated", result.Generated()),
			zap.Int("failed", result.Failed()),
			zap.Strings("errors", result.Errors),
		)
	}
}
