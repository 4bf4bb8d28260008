package util

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
)

// ──────────────────────────────────────────────────────────────────────────────
// Global stats singleton
// ──────────────────────────────────────────────────────────────────────────────

// Stats is the process-wide peer traffic counter.
var Stats = &stats{}

type stats struct {
	MsgsSent  atomic.Int64 // messages written to the DataChannel
	MsgsRecv  atomic.Int64 // messages read from the DataChannel
	BytesSent atomic.Int64
	BytesRecv atomic.Int64
}

func (s *stats) AddSent(n int) {
	s.MsgsSent.Add(1)
	s.BytesSent.Add(int64(n))
}

func (s *stats) AddRecv(n int) {
	s.MsgsRecv.Add(1)
	s.BytesRecv.Add(int64(n))
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	MsgsSent, MsgsRecv   int64
	BytesSent, BytesRecv int64
}

func (s *stats) Snapshot() Snapshot {
	return Snapshot{
		MsgsSent:  s.MsgsSent.Load(),
		MsgsRecv:  s.MsgsRecv.Load(),
		BytesSent: s.BytesSent.Load(),
		BytesRecv: s.BytesRecv.Load(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Periodic reporter
// ──────────────────────────────────────────────────────────────────────────────

// StartStatsReporter launches a goroutine that logs peer traffic every
// interval, skipping quiet periods. It stops when ctx is cancelled.
func StartStatsReporter(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var prev Snapshot
		for {
			select {
			case <-ticker.C:
				cur := Stats.Snapshot()
				if cur.MsgsSent != prev.MsgsSent || cur.MsgsRecv != prev.MsgsRecv {
					pterm.DefaultLogger.Debug(formatStats(cur, prev))
				}
				prev = cur

			case <-ctx.Done():
				return
			}
		}
	}()
}

// byteUnits defines the units for formatting byte counts in a human-readable way.
var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// formatBytes formats a byte count into a fixed-width (8 chars) string,
// for example: "99.0   B", " 1.5 KiB", "98.9 GiB".
func formatBytes(b float64) string {
	unitIdx := 0

	// to prevent "100.0 KiB", which is 9 chars
	for b > 99 && unitIdx < 5 {
		b /= 1024
		unitIdx++
	}

	return fmt.Sprintf("%4.1f %3s", b, byteUnits[unitIdx])
}

// formatStats describes the traffic since prev and the running totals.
func formatStats(cur, prev Snapshot) string {
	return fmt.Sprintf("Out: %2d msg %s | In: %2d msg %s | Total: %d↑ %d↓",
		cur.MsgsSent-prev.MsgsSent,
		formatBytes(float64(cur.BytesSent-prev.BytesSent)),
		cur.MsgsRecv-prev.MsgsRecv,
		formatBytes(float64(cur.BytesRecv-prev.BytesRecv)),
		cur.MsgsSent,
		cur.MsgsRecv,
	)
}
