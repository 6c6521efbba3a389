// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Warn("unescaped meta-character", slog.String("pos", "1:3"))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Info], [Warn], ...) write through a default
// logger reconfigured with [Config].
//
// # Adding Attributes
//
// Attributes added with [Logger.With] are included in all subsequent
// messages:
//
//	logger = logger.With(slog.String("theme", "default"))
//	logger.Info("rendered") // includes theme=default
//
// # Context-Aware Logging
//
// Each level has both a context-aware and context-unaware variant.
// Context-unaware variants use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and [LevelError].
// Messages below the configured level are discarded.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. With [WithPretty], both are
// colorized using codes from the style registry.
package log
