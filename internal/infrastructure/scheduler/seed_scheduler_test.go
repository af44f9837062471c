package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseCronSchedule(t *testing.T) {
	tests := []struct {
		name         string
		cronExpr     string
		expectedHour int
		expectedMin  int
	}{
		{
			name:         "Default 2am",
			cronExpr:     "0 2 * * *",
			expectedHour: 2,
			expectedMin:  0,
		},
		{
			name:         "3:30am",
			cronExpr:     "30 3 * * *",
			expectedHour: 3,
			expectedMin:  30,
		},
		{
			name:         "Midnight",
			cronExpr:     "0 0 * * *",
			expectedHour: 0,
			expectedMin:  0,
		},
		{
			name:         "11pm",
			cronExpr:     "0 23 * * *",
			expectedHour: 23,
			expectedMin:  0,
		},
		{
			name:         "Empty string defaults",
			cronExpr:     "",
			expectedHour: 2,
			expectedMin:  0,
		},
		{
			name:         "Extra whitespace",
			cronExpr:     "  15   4   *   *   *  ",
			expectedHour: 4,
			expectedMin:  15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseCronSchedule(tt.cronExpr)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedHour, hour, "hour mismatch")
			assert.Equal(t, tt.expectedMin, minute, "minute mismatch")
		})
	}
}

func TestParseCronSchedule_InvalidRanges(t *testing.T) {
	_, _, err := ParseCronSchedule("75 2 * * *")
	assert.Error(t, err)

	_, _, err = ParseCronSchedule("0 25 * * *")
	assert.Error(t, err)
}

func TestDefaultSeedSchedulerConfig(t *testing.T) {
	cfg := DefaultSeedSchedulerConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 2, cfg.CronHour)
	assert.Equal(t, 0, cfg.CronMinute)
	assert.Equal(t, 5, cfg.CustomerCount)
	assert.Equal(t, 10, cfg.OrderCount)
	assert.Equal(t, 10*time.Minute, cfg.RunTimeout)
}

func TestShouldRun(t *testing.T) {
	cfg := DefaultSeedSchedulerConfig()
	cfg.CronHour = 2
	cfg.CronMinute = 30

	s := &SeedScheduler{config: cfg}

	tests := []struct {
		name     string
		time     time.Time
		expected bool
	}{
		{
			name:     "Exact match",
			time:     time.Date(2026, 1, 15, 2, 30, 0, 0, time.UTC),
			expected: true,
		},
		{
			name:     "Wrong hour",
			time:     time.Date(2026, 1, 15, 3, 30, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "Wrong minute",
			time:     time.Date(2026, 1, 15, 2, 31, 0, 0, time.UTC),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.lastRunDate = ""
			assert.Equal(t, tt.expected, s.shouldRun(tt.time))
		})
	}
}

func TestShouldRun_OncePerDay(t *testing.T) {
	cfg := DefaultSeedSchedulerConfig()
	s := &SeedScheduler{config: cfg}

	at := time.Date(2026, 1, 15, cfg.CronHour, cfg.CronMinute, 0, 0, time.UTC)
	assert.True(t, s.shouldRun(at))
	assert.False(t, s.shouldRun(at.Add(30*time.Second)), "must not run twice in one day")

	nextDay := at.AddDate(0, 0, 1)
	assert.True(t, s.shouldRun(nextDay))
}

func TestSeedScheduler_StartDisabled(t *testing.T) {
	cfg := DefaultSeedSchedulerConfig()
	cfg.Enabled = false

	s := NewSeedScheduler(cfg, nil, nil, zap.NewNop())

	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}
