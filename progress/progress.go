// Package progress aggregates per-sheet progress of a multi-sheet export into
// one overall percentage and carries the cooperative cancellation signal.
package progress

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Callback receives the overall percentage and a status line. Returning false
// requests cancellation.
type Callback func(percent int, status string) bool

const CancelledStatus = "operation cancelled"

// ConsoleCallback logs every update and never cancels.
func ConsoleCallback(logger zerolog.Logger) Callback {
	return func(percent int, status string) bool {
		logger.Info().Int("percent", percent).Msg(status)
		return true
	}
}

// Manager is single-use and not safe for concurrent use.
type Manager struct {
	callback Callback
	logger   zerolog.Logger

	total         int
	current       int
	sheetProgress int

	last            int
	cancelled       bool
	cancelForwarded bool
	disabled        bool
	started         time.Time
}

// New wraps cb; a nil cb logs progress through logger instead.
func New(cb Callback, logger zerolog.Logger) *Manager {
	if cb == nil {
		cb = ConsoleCallback(logger)
	}
	return &Manager{callback: cb, logger: logger}
}

func (m *Manager) StartExport(sheets int) bool {
	m.total = sheets
	m.current = 0
	m.sheetProgress = 0
	m.started = time.Now()
	return m.Update(0, fmt.Sprintf("starting export of %d sheets", sheets))
}

// StartSheet moves to sheet index (1-based). It returns false without
// reporting when the export is already cancelled.
func (m *Manager) StartSheet(name string, index int) bool {
	if m.cancelled {
		return false
	}
	m.current = index
	m.sheetProgress = 0
	return m.Update(m.Overall(), fmt.Sprintf("exporting sheet %d/%d: %s", index, m.total, name))
}

// UpdateSheetProgress sets the current sheet's internal progress (0..100).
func (m *Manager) UpdateSheetProgress(percent int, status string) bool {
	m.sheetProgress = clamp(percent)
	return m.Update(m.Overall(), status)
}

// Overall is floor((i-1)/N*100) + floor(p*(100/N)/100), capped at 100.
func (m *Manager) Overall() int {
	if m.total <= 0 || m.current <= 0 {
		return 0
	}
	done := (m.current - 1) * 100 / m.total
	share := m.sheetProgress * 100 / m.total / 100
	return min(done+share, 100)
}

// Update forwards percent and status to the callback. Reported values never
// decrease. After cancellation the callback sees one final CancelledStatus
// and nothing more. The return value is false once cancelled.
func (m *Manager) Update(percent int, status string) bool {
	if m.cancelled {
		if !m.cancelForwarded {
			m.cancelForwarded = true
			m.invoke(m.last, CancelledStatus)
		}
		return false
	}

	percent = max(clamp(percent), m.last)
	m.last = percent
	if !m.invoke(percent, status) {
		m.logger.Info().Int("percent", percent).Msg("export cancelled by callback")
		m.cancelled = true
	}
	return !m.cancelled
}

// invoke calls the callback, treating a panic as permanent loss of progress
// reporting rather than a reason to stop.
func (m *Manager) invoke(percent int, status string) (proceed bool) {
	if m.disabled {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Interface("panic", r).Msg("progress callback failed; progress reporting disabled")
			m.disabled = true
			proceed = true
		}
	}()
	return m.callback(percent, status)
}

func (m *Manager) Cancel() {
	m.cancelled = true
}

func (m *Manager) Cancelled() bool { return m.cancelled }

func (m *Manager) Error(err error) {
	m.logger.Error().Err(err).Int("sheet", m.current).Msg("export error")
	if !m.cancelled {
		m.invoke(m.last, fmt.Sprintf("export failed: %v", err))
	}
}

// Finish reports 100% unless the export was cancelled.
func (m *Manager) Finish() {
	if m.cancelled {
		return
	}
	m.Update(100, "export completed")
}

func (m *Manager) Cleanup() {
	m.logger.Debug().
		Dur("elapsed", time.Since(m.started)).
		Bool("cancelled", m.cancelled).
		Int("last_percent", m.last).
		Msg("progress manager closed")
}

func clamp(percent int) int {
	return min(max(percent, 0), 100)
}
