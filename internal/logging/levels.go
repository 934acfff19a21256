package logging

import "log/slog"

// LevelTrace is a custom level below Debug for very detailed output.
const LevelTrace slog.Level = slog.LevelDebug - 4

// LevelFromVerbosity maps a -v flag count to a log level. Zero means
// warnings and errors only; each additional -v lowers the threshold.
func LevelFromVerbosity(verbosity int) slog.Level {
	switch verbosity {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	case 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

func levelName(level slog.Level) string {
	if level == LevelTrace {
		return "TRACE"
	}
	return level.String()
}
