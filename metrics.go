package cksum

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordChunk is called after each chunk update in the streaming driver.
	// n is the chunk size in bytes, duration is the engine time taken.
	RecordChunk(n int, duration time.Duration)

	// RecordChecksum is called after each completed stream computation.
	// length is the total stream length, duration the end-to-end time.
	RecordChecksum(length uint64, duration time.Duration)

	// RecordError is called when a computation aborts.
	RecordError(err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordChunk(int, time.Duration)       {}
func (NoopMetricsCollector) RecordChecksum(uint64, time.Duration) {}
func (NoopMetricsCollector) RecordError(error)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ChunkCount         atomic.Int64
	ChunkBytes         atomic.Int64
	ChunkTotalNanos    atomic.Int64
	ChecksumCount      atomic.Int64
	ChecksumBytes      atomic.Int64
	ChecksumTotalNanos atomic.Int64
	ErrorCount         atomic.Int64
}

// RecordChunk implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunk(n int, duration time.Duration) {
	b.ChunkCount.Add(1)
	b.ChunkBytes.Add(int64(n))
	b.ChunkTotalNanos.Add(duration.Nanoseconds())
}

// RecordChecksum implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChecksum(length uint64, duration time.Duration) {
	b.ChecksumCount.Add(1)
	b.ChecksumBytes.Add(int64(length))
	b.ChecksumTotalNanos.Add(duration.Nanoseconds())
}

// RecordError implements MetricsCollector.
func (b *BasicMetricsCollector) RecordError(error) {
	b.ErrorCount.Add(1)
}

// BasicMetricsStats is a snapshot of collected metrics.
type BasicMetricsStats struct {
	ChunkCount         int64
	ChunkBytes         int64
	ChunkAvgNanos      int64
	ChecksumCount      int64
	ChecksumBytes      int64
	ChecksumTotalNanos int64
	ErrorCount         int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		ChunkCount:         b.ChunkCount.Load(),
		ChunkBytes:         b.ChunkBytes.Load(),
		ChecksumCount:      b.ChecksumCount.Load(),
		ChecksumBytes:      b.ChecksumBytes.Load(),
		ChecksumTotalNanos: b.ChecksumTotalNanos.Load(),
		ErrorCount:         b.ErrorCount.Load(),
	}
	if stats.ChunkCount > 0 {
		stats.ChunkAvgNanos = b.ChunkTotalNanos.Load() / stats.ChunkCount
	}
	return stats
}
