// Package debug sets up the process logger and gates debug output by
// subsystem.
//
// STEPSORT_DEBUG (or logging.debug) names the subsystems to debug, comma
// separated: engine, sorting, transport, auth, mcp, config, or all.
// STEPSORT_LOG_LEVEL (or logging.level) picks the slog level, one of
// ERROR, WARN, INFO, DEBUG, TRACE. A category message is written only
// when its category is enabled and the level admits it.
//
//	debug.Log("engine", "sort completed", "algorithm", algo, "steps", n)
//	debug.Trace("sorting", "step", "index", i, "array", step.Array)
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// LevelTrace sits below slog.LevelDebug. The engine logs every recorded
// step at this level.
const LevelTrace = slog.LevelDebug - 4

// categories is replaced wholesale by Init and only read afterwards.
var categories map[string]bool

func init() {
	categories = parseCategories(os.Getenv("STEPSORT_DEBUG"))
}

// Init configures the debug system and installs the default slog logger.
// Environment variables take precedence over the config values. Format is
// "text" (default) or "json".
func Init(configCategories, configLevel, format string) {
	cats := os.Getenv("STEPSORT_DEBUG")
	if cats == "" {
		cats = configCategories
	}
	categories = parseCategories(cats)

	level := os.Getenv("STEPSORT_LOG_LEVEL")
	if level == "" {
		level = configLevel
	}

	slog.SetDefault(NewLogger(os.Stderr, ParseLevel(level), format))
}

// NewLogger builds a slog.Logger writing to w in the given format.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Enabled reports whether debug output is active for the given category.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log writes msg at DEBUG, tagged with category, when the category is on.
func Log(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// Trace is Log at LevelTrace.
func Trace(category string, msg string, args ...any) {
	if !TraceIsEnabled(category) {
		return
	}
	slog.Log(context.Background(), LevelTrace, msg, append([]any{"debug", category}, args...)...)
}

// TraceIsEnabled reports whether Trace would write for category, so callers
// can skip building per-step attributes.
func TraceIsEnabled(category string) bool {
	if !Enabled(category) {
		return false
	}
	return slog.Default().Enabled(context.Background(), LevelTrace)
}

// ParseLevel converts a level string to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Categories lists the enabled categories in sorted order.
func Categories() []string {
	var result []string
	for k := range categories {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	if s == "" {
		return m
	}
	for _, cat := range strings.Split(s, ",") {
		cat = strings.TrimSpace(strings.ToLower(cat))
		if cat != "" {
			m[cat] = true
		}
	}
	return m
}
