package diagnose

import (
	"testing"

	"status-dashboard/internal/logs"
	"status-dashboard/internal/metrics"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzer_OK(t *testing.T) {
	reg := metrics.NewRegistry()
	logger := logs.NewLogger(10, logs.DEBUG)

	reg.Add(metrics.PollSuccessTotal, 10)
	reg.Inc(metrics.PollFailuresTotal)

	report := NewAnalyzer(reg, logger).Analyze()

	assert.Equal(t, StatusOK, report.OverallStatus)
	assert.Equal(t, "Dashboard is healthy", report.Summary)
	assert.Empty(t, report.Signals)
}

func TestAnalyzer_CriticalNeverFetched(t *testing.T) {
	reg := metrics.NewRegistry()
	logger := logs.NewLogger(10, logs.DEBUG)

	reg.Add(metrics.PollFailuresTotal, 2)

	report := NewAnalyzer(reg, logger).Analyze()

	assert.Equal(t, StatusCritical, report.OverallStatus)
	assert.Contains(t, report.Signals, "Backend status has never been fetched")
	assert.NotContains(t, report.Signals, "Most status polls are failing")
}

func TestAnalyzer_DegradedPolls(t *testing.T) {
	reg := metrics.NewRegistry()
	logger := logs.NewLogger(10, logs.DEBUG)

	reg.Inc(metrics.PollSuccessTotal)
	reg.Add(metrics.PollFailuresTotal, 4)

	report := NewAnalyzer(reg, logger).Analyze()

	assert.Equal(t, StatusDegraded, report.OverallStatus)
	assert.Contains(t, report.Signals, "Most status polls are failing")
}

func TestAnalyzer_DegradedActions(t *testing.T) {
	reg := metrics.NewRegistry()
	logger := logs.NewLogger(10, logs.DEBUG)

	reg.Inc(metrics.ActionsFailedTotal)

	report := NewAnalyzer(reg, logger).Analyze()

	assert.Equal(t, StatusDegraded, report.OverallStatus)
	assert.Contains(t, report.Signals, "Restart or reset commands are failing")
	assert.Len(t, report.Recommendations, 1)
}

func TestAnalyzer_LogSignals(t *testing.T) {
	t.Run("RepeatedFetchFailures", func(t *testing.T) {
		reg := metrics.NewRegistry()
		logger := logs.NewLogger(20, logs.DEBUG)
		reg.Inc(metrics.PollSuccessTotal)

		for i := 0; i < 3; i++ {
			logger.Warnf("poll %d failed: connection refused", i)
		}

		report := NewAnalyzer(reg, logger).Analyze()
		assert.Equal(t, StatusDegraded, report.OverallStatus)
		assert.Contains(t, report.Signals, "Repeated status fetch failures in recent logs")
	})

	t.Run("BelowLimit", func(t *testing.T) {
		reg := metrics.NewRegistry()
		logger := logs.NewLogger(20, logs.DEBUG)
		logger.Warn("poll a failed: timeout")
		logger.Warn("poll b failed: timeout")

		report := NewAnalyzer(reg, logger).Analyze()
		assert.Equal(t, StatusOK, report.OverallStatus)
	})

	t.Run("Panic", func(t *testing.T) {
		reg := metrics.NewRegistry()
		logger := logs.NewLogger(20, logs.DEBUG)
		logger.Error("panic recovered: boom")

		report := NewAnalyzer(reg, logger).Analyze()
		assert.Equal(t, StatusCritical, report.OverallStatus)
		assert.Contains(t, report.Signals, "Handler panics detected in logs")
		assert.Equal(t, "Dashboard health issues detected", report.Summary)
	})
}
