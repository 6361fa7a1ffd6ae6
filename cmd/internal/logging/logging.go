package logging

import (
	"flag"
	"log/slog"
	"os"
)

// Setup registers the -log-level flag and installs a text handler on
// stderr as the default logger.
func Setup() {
	var logLevel slog.LevelVar
	flag.TextVar(&logLevel, "log-level", &logLevel, "set the logging level")

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel})
	slog.SetDefault(slog.New(h))
	slog.SetLogLoggerLevel(slog.LevelError)
}
