//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Modes returns the list of supported profiling modes when built with the
// pprof build tag.
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

var mode = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Option appends settings to a profiler configuration.
type Option func([]func(*profile.Profile)) []func(*profile.Profile)

func start(p Profiler) interface{ Stop() } {
	fn, ok := mode[p.Mode]
	if !ok {
		return ignore{}
	}

	opts := []func(*profile.Profile){fn}

	for _, opt := range []Option{withPath(p.Path), withQuiet(p.Quiet)} {
		opts = opt(opts)
	}

	return profile.Start(opts...)
}

func withPath(p string) Option {
	return func(opts []func(*profile.Profile)) []func(*profile.Profile) {
		if p != "" {
			opts = append(opts, profile.ProfilePath(p))
		}

		return opts
	}
}

func withQuiet(v bool) Option {
	return func(opts []func(*profile.Profile)) []func(*profile.Profile) {
		if v {
			opts = append(opts, profile.Quiet)
		}

		return opts
	}
}
