// Package cli contains the command line interface for ecstasy.
//
// # Usage
//
// Marked-up text given as arguments, or read from files or stdin, is
// rendered with the styles of the selected theme:
//
//	ecstasy '<Hello>, <world>!'
//	ecstasy --theme mono -f notes.txt
//	ecstasy -s 'bold + fg.red' -a 'todo=invert' '<(0)first> <todo>'
//
// The render command is the default; other commands print the phrase tree,
// list style flags and themes, start an interactive preview, or write the
// configuration file.
//
// # Configuration Loader
//
// Flag defaults are read from config.yaml in the user configuration
// directory (see [pkg.ConfigDir]). Keys are flag names; nested mappings join
// their keys with hyphens:
//
//	theme: dark
//	color: always
//	log:
//	  level: debug
//
// Command-line flags override config file values. Write the current values
// with "ecstasy init".
//
// # Style Options
//
//   - --theme/-t: Theme name or path (default "default", env ECSTASY_THEME)
//   - --style/-s: Append a positional style expression (repeatable)
//   - --always/-a: Bind NAME=EXPR (repeatable)
//   - --color: auto, always, or never
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o ecstasy .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
