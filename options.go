package cksum

import (
	"runtime"

	"github.com/hupe1980/cksum/internal/kernel"
	"github.com/hupe1980/cksum/source"
)

// defaultChunkSize is the streaming driver's read size (1 MiB).
const defaultChunkSize = 1 << 20

type options struct {
	algorithm   Algorithm
	kernelKind  kernel.Kind
	kernelSet   bool
	caps        kernel.Capability
	capsSet     bool
	chunkSize   int
	logger      *Logger
	metrics     MetricsCollector
	concurrency int
	source      source.Source
	expectedSum uint32
	expectedSet bool

	// initialLength seeds the streaming driver's length counter. There is no
	// exported option for it; tests use it to reach the overflow path.
	initialLength uint64
}

// Option configures checksum computation behavior.
type Option func(*options)

func applyOptions(opts []Option) *options {
	o := &options{
		algorithm:   POSIX,
		chunkSize:   defaultChunkSize,
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
		concurrency: runtime.GOMAXPROCS(0),
		source:      source.NewFS(),
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// resolveKernel picks the engine once per computation: an explicit kind wins,
// otherwise the capability descriptor (detected at startup unless overridden)
// selects the widest admitted engine.
func (o *options) resolveKernel() kernel.Kind {
	if o.kernelSet {
		return o.kernelKind
	}
	caps := o.caps
	if !o.capsSet {
		caps = kernel.Detect()
	}
	return kernel.Select(caps)
}

// WithAlgorithm selects the checksum algorithm. Default is POSIX.
func WithAlgorithm(a Algorithm) Option {
	return func(o *options) {
		o.algorithm = a
	}
}

// WithKernel pins the computation engine, bypassing capability selection.
// All engines produce bit-identical results; this exists for operators and
// tests.
func WithKernel(k kernel.Kind) Option {
	return func(o *options) {
		o.kernelKind = k
		o.kernelSet = true
	}
}

// WithCapabilities replaces the detected capability descriptor for engine
// selection. Pass 0 to force the scalar engines.
func WithCapabilities(caps kernel.Capability) Option {
	return func(o *options) {
		o.caps = caps
		o.capsSet = true
	}
}

// WithChunkSize sets the streaming driver's read size. Values below 1 fall
// back to the default. The chunking never affects the checksum, only I/O
// granularity.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = defaultChunkSize
		}
		o.chunkSize = n
	}
}

// WithLogger configures structured logging. Default is a noop logger; the
// library never prints on its own.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures a metrics collector. Pass nil to disable.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithConcurrency bounds how many inputs SumFiles processes at once.
// Computation within one stream is always sequential.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithSource sets the input resolution backend used by SumFile and manifest
// verification. Default is the local filesystem with "-" as stdin.
func WithSource(s source.Source) Option {
	return func(o *options) {
		if s != nil {
			o.source = s
		}
	}
}

// WithExpectedSum arms Reader verification: at EOF the computed checksum is
// compared against sum and a MismatchError is returned on disagreement.
func WithExpectedSum(sum uint32) Option {
	return func(o *options) {
		o.expectedSum = sum
		o.expectedSet = true
	}
}
