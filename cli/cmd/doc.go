// Package cmd provides the ecstasy subcommands.
//
// Commands read their shared state, such as the output writer and the
// selected theme, from an [Env] stored in the context by the caller.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
