package logging

import (
	"time"

	"golang.org/x/time/rate"
)

// GenerationMonitor warns when a single GA generation takes longer than a
// configured threshold, mirroring a slow-query monitor but timing
// generations instead of database calls.
type GenerationMonitor struct {
	logger    *Logger
	threshold time.Duration
}

// NewGenerationMonitor returns a monitor that logs a warning for any
// generation exceeding threshold.
func NewGenerationMonitor(logger *Logger, threshold time.Duration) *GenerationMonitor {
	if logger == nil {
		logger = GetLogger()
	}
	return &GenerationMonitor{logger: logger, threshold: threshold}
}

// Observe records the duration of one generation and logs a warning if it
// exceeded the configured threshold.
func (m *GenerationMonitor) Observe(gen int, duration time.Duration) {
	if m.threshold > 0 && duration > m.threshold {
		m.logger.Warn("slow generation detected",
			"generation", gen,
			"duration", duration,
			"threshold", m.threshold,
		)
	}
}

// ProgressThrottle rate-limits per-generation progress logging so a run of
// tens of thousands of generations doesn't flood stdout with one line per
// generation. It reuses the same token-bucket limiter the teacher uses for
// inbound HTTP rate limiting, applied here to outbound log emission.
type ProgressThrottle struct {
	limiter *rate.Limiter
}

// NewProgressThrottle returns a throttle allowing at most one progress
// line every `every` duration, with a single-token burst.
func NewProgressThrottle(every time.Duration) *ProgressThrottle {
	return &ProgressThrottle{limiter: rate.NewLimiter(rate.Every(every), 1)}
}

// Allow reports whether a progress line may be emitted right now,
// consuming a token if so.
func (p *ProgressThrottle) Allow() bool {
	return p.limiter.Allow()
}
