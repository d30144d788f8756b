package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel represents logging level
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      LogLevel
	Format     string // "json" or "text"
	Output     io.Writer
	AddSource  bool
	TimeFormat string
}

// DefaultLoggerConfig returns default logger configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:      LevelInfo,
		Format:     "json",
		Output:     os.Stdout,
		AddSource:  false,
		TimeFormat: time.RFC3339,
	}
}

// Logger wraps slog.Logger with solver-specific logging helpers.
type Logger struct {
	*slog.Logger
	config *LoggerConfig
}

// NewLogger creates a new structured logger.
func NewLogger(config *LoggerConfig) *Logger {
	if config == nil {
		config = DefaultLoggerConfig()
	}

	var level slog.Level
	switch config.Level {
	case LevelDebug:
		level = slog.LevelDebug
	case LevelInfo:
		level = slog.LevelInfo
	case LevelWarn:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(config.Output, opts)
	} else {
		handler = slog.NewTextHandler(config.Output, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
		config: config,
	}
}

// WithContext returns a logger with context values attached.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return &Logger{
		Logger: l.Logger.With(contextFields(ctx)...),
		config: l.config,
	}
}

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{
		Logger: l.Logger.With(args...),
		config: l.config,
	}
}

// WithField returns a logger with an additional field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.With(key, value),
		config: l.config,
	}
}

// LogGeneration logs a single GA generation's summary statistics.
func (l *Logger) LogGeneration(gen int, bestFeasible, bestInfeasible int64, feasibleCount, infeasibleCount int, duration time.Duration) {
	l.Info("generation complete",
		"generation", gen,
		"best_feasible", bestFeasible,
		"best_infeasible", bestInfeasible,
		"feasible_count", feasibleCount,
		"infeasible_count", infeasibleCount,
		"duration", duration,
	)
}

// LogRestart logs a population restart.
func (l *Logger) LogRestart(gen int, reason string) {
	l.Info("population restart", "generation", gen, "reason", reason)
}

// LogPenaltyAdjustment logs a penalty coefficient update.
func (l *Logger) LogPenaltyAdjustment(name string, old, new float64, feasibleFraction float64) {
	l.Debug("penalty adjustment",
		"penalty", name,
		"old", old,
		"new", new,
		"feasible_fraction", feasibleFraction,
	)
}

// LogMove logs an accepted local search move at debug level.
func (l *Logger) LogMove(operator string, clientA, clientB int, delta int64) {
	l.Debug("move accepted",
		"operator", operator,
		"client_a", clientA,
		"client_b", clientB,
		"delta", delta,
	)
}

// LogError logs an error with additional structured fields.
func (l *Logger) LogError(err error, message string, fields map[string]interface{}) {
	args := []interface{}{"error", err}
	for k, v := range fields {
		args = append(args, k, v)
	}
	l.Error(message, args...)
}

func contextFields(ctx context.Context) []interface{} {
	fields := make([]interface{}, 0)
	if runID := ctx.Value(ctxKeyRunID); runID != nil {
		fields = append(fields, "run_id", runID)
	}
	return fields
}

type ctxKey string

const ctxKeyRunID ctxKey = "run_id"

// WithRunID returns a context carrying a run identifier for log correlation.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ctxKeyRunID, runID)
}

// Global logger instance
var defaultLogger *Logger

// InitDefaultLogger initializes the global logger.
func InitDefaultLogger(config *LoggerConfig) {
	defaultLogger = NewLogger(config)
}

// GetLogger returns the global logger, initializing it with defaults if needed.
func GetLogger() *Logger {
	if defaultLogger == nil {
		defaultLogger = NewLogger(DefaultLoggerConfig())
	}
	return defaultLogger
}

// Debug logs a debug message on the global logger.
func Debug(msg string, args ...interface{}) {
	GetLogger().Debug(msg, args...)
}

// Info logs an info message on the global logger.
func Info(msg string, args ...interface{}) {
	GetLogger().Info(msg, args...)
}

// Warn logs a warning message on the global logger.
func Warn(msg string, args ...interface{}) {
	GetLogger().Warn(msg, args...)
}

// Error logs an error message on the global logger.
func Error(msg string, args ...interface{}) {
	GetLogger().Error(msg, args...)
}

// WithFields returns a logger with fields, derived from the global logger.
func WithFields(fields map[string]interface{}) *Logger {
	return GetLogger().WithFields(fields)
}

// WithField returns a logger with a field, derived from the global logger.
func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}
