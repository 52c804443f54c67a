// Package debug provides category-based debug logging for akzept.
//
// Two orthogonal controls:
//   - Categories (WHAT to debug): controlled via AKZEPT_DEBUG_CATEGORIES env or config
//   - Levels (HOW MUCH detail): controlled via AKZEPT_LOG_LEVEL env or config
//
// Usage:
//
//	debug.Log("negotiate", "matched", "media_type", mt)
//	if debug.Enabled("negotiate") { /* expensive formatting */ }
//
// Categories: negotiate, auth, config, all.
// Levels: ERROR, WARN, INFO, DEBUG, TRACE.
package debug

import (
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below slog.LevelDebug for maximum verbosity.
// At TRACE, per-request negotiation detail and token claims are logged.
const LevelTrace = slog.LevelDebug - 4

// categories holds the set of enabled debug categories.
// Access is read-only after Init(), so no synchronization needed.
var categories map[string]bool

func init() {
	// Initialize from environment for immediate availability.
	// Can be re-initialized later via Init() with config values.
	env := os.Getenv("AKZEPT_DEBUG_CATEGORIES")
	categories = parseCategories(env)
}

// Init configures the debug system. Called at startup with values
// from config. The AKZEPT_DEBUG_CATEGORIES environment variable takes
// precedence over the config value. Init also installs the default
// slog handler at the given level.
func Init(configCategories string, configLevel string) {
	cats := os.Getenv("AKZEPT_DEBUG_CATEGORIES")
	if cats == "" {
		cats = configCategories
	}
	categories = parseCategories(cats)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(configLevel),
	})))
}

// Enabled reports whether debug output is active for the given category.
// This is a constant-time map lookup with zero allocation.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits a debug message for the given category.
// If the category is not enabled, this is a no-op (zero overhead).
func Log(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// Trace emits a trace-level message for the given category.
// Only visible when the log level is TRACE.
func Trace(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Log(nil, LevelTrace, msg, append([]any{"debug", category}, args...)...)
}

// parseLevel converts a level string to a slog.Level.
func parseLevel(s string) slog.Level {
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
