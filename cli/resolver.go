package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ecstasy/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The document is converted as follows:
//   - Top-level keys are flag names (e.g., "log-level"); underscores may be
//     used in place of hyphens (e.g., "log_level")
//   - Nested mappings also resolve the flags named by joining the keys with
//     hyphens, so that "log: {level: debug}" sets --log-level
//   - Scalars are converted to strings for Kong to parse
//   - Sequences and mappings are passed through for slice and map flags
//
// Example config file:
//
//	theme: dark
//	style: [bold + fg.red, underline]
//	always:
//	  todo: invert
//	log:
//	  level: debug
//
// Command-line flags override config file values. A malformed config file is
// logged and ignored.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).Decode(&doc)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignoring invalid configuration",
					slog.Any("error", err),
				)
			}

			return config{}, nil
		}

		cfg := make(config)
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// flatten records each entry of m under its joined key, descending into
// nested mappings.
func (r config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := normalize(k)
		if prefix != "" {
			key = prefix + "-" + key
		}

		r[key] = native(v)

		if sub, ok := v.(map[string]any); ok {
			r.flatten(key, sub)
		}
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[normalize(flag.Name)]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

func normalize(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// native converts a decoded YAML value into the form Kong expects.
func native(v any) any {
	switch v := v.(type) {
	case nil:
		return nil

	case string:
		return v

	case bool:
		return strconv.FormatBool(v)

	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = native(e)
		}

		return out

	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = native(e)
		}

		return out
	}

	return v
}
