package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/ecstasy/log"
)

func Example_text() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithPretty(false),
		log.WithLevel(log.LevelInfo))

	logger.Info("rendered", slog.Int("phrases", 2))
	logger.Debug("not shown")
	// Output:
	// level=INFO msg=rendered phrases=2
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger = logger.With(slog.String("theme", "default"))
	logger.Warn("unescaped meta-character", slog.String("pos", "1:3"))
	// Output:
	// {"level":"WARN","msg":"unescaped meta-character","theme":"default","pos":"1:3"}
}
