package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger for command-line use
func SetupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// ApplyLevel applies a config-file log level unless debug already won
func ApplyLevel(logger *log.Logger, level string, debug bool) {
	if debug || level == "" {
		return
	}
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
}
