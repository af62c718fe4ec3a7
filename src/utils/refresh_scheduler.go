package utils

import (
	"context"
	"sync/atomic"
	"time"

	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"
)

// RefreshScheduler calls Refresh-All on a fixed interval, optionally only
// while the configured market is open.
type RefreshScheduler struct {
	Config   models.MRefreshConfig
	Calendar *TradingCalendar
	Logger   *logger.Logger
	Interval time.Duration

	refresh func(context.Context) bool
	now     func() time.Time
	runs    atomic.Int64
	skips   atomic.Int64
}

// -----------------------------------------------------------------------------

func NewRefreshScheduler(cfg models.MRefreshConfig, refresh func(context.Context) bool, l *logger.Logger) *RefreshScheduler {
	cal := GetCalendar(cfg.Market, l)
	l.Info("RefreshScheduler: every %ds on %s (market hours only: %v, fallback calendar: %v)",
		cfg.IntervalSeconds, cal.MIC, cfg.MarketHoursOnly, cal.Fallback)

	return &RefreshScheduler{
		Config:   cfg,
		Calendar: cal,
		Logger:   l,
		Interval: time.Duration(cfg.IntervalSeconds) * time.Second,
		refresh:  refresh,
		now:      time.Now,
	}
}

// -----------------------------------------------------------------------------

// MarketOpen reports whether the configured market is open right now.
func (rs *RefreshScheduler) MarketOpen() bool {
	return rs.Calendar.IsOpenOnMinute(rs.now().UTC())
}

// Tick runs one refresh unless the market is closed and market hours are
// required. It reports whether a refresh ran.
func (rs *RefreshScheduler) Tick(ctx context.Context) bool {
	if rs.Config.MarketHoursOnly && !rs.MarketOpen() {
		rs.skips.Add(1)
		rs.Logger.Debug("RefreshScheduler: market closed, skipping refresh")
		return false
	}

	rs.runs.Add(1)
	if ok := rs.refresh(ctx); !ok {
		rs.Logger.Warning("RefreshScheduler: refresh failed")
	}
	return true
}

// Runs and Skips count ticks since start.
func (rs *RefreshScheduler) Runs() int64  { return rs.runs.Load() }
func (rs *RefreshScheduler) Skips() int64 { return rs.skips.Load() }

// -----------------------------------------------------------------------------

// Run ticks once immediately, then every Interval until ctx is done.
func (rs *RefreshScheduler) Run(ctx context.Context) {
	if rs.Interval <= 0 {
		rs.Logger.Warning("RefreshScheduler: non-positive interval, not running")
		return
	}

	ticker := time.NewTicker(rs.Interval)
	defer ticker.Stop()

	rs.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			rs.Logger.Info("RefreshScheduler stopped after %d refreshes (%d skipped)", rs.Runs(), rs.Skips())
			return
		case <-ticker.C:
			rs.Tick(ctx)
		}
	}
}
