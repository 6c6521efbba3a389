package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Prefix returns the base prefix string used to construct the path to the
// configuration directory and the prefix for environment variable identifiers.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
// Test binaries (".test" extension) and empty results also yield [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for _, sub := range []struct {
			rex *regexp.Regexp
			rep string
		}{
			{regexp.MustCompile(`^__debug_bin\d+$`), Name}, // default output from dlv
			{regexp.MustCompile(`^\.+`), ""},              // remove leading dot(s)
		} {
			id = sub.rex.ReplaceAllString(id, sub.rep)
		}

		if id == "" || ext == ".test" {
			return Name
		}

		return id
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserConfigDir, ".config"), Prefix())
	},
)

// CacheDir returns the cache directory path used for transient files such
// as the preview history.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserCacheDir, ".cache"), Prefix())
	},
)

// userDir resolves a per-user base directory, falling back to a hidden
// directory under $HOME and finally to the working directory.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err == nil {
		return dir
	}

	dir, err = os.UserHomeDir()
	if err == nil {
		return filepath.Join(dir, hidden)
	}

	dir, err = os.Getwd()
	if err != nil {
		return "."
	}

	return dir
}

// ThemeDirs returns the ordered list of existing directories searched for
// theme files: every entry of $ECSTASY_THEME_PATH followed by the "themes"
// directory beneath [ConfigDir]. Duplicates and missing directories are
// dropped.
func ThemeDirs() []string {
	return themeDirs(
		os.Getenv(EnvThemePath),
		filepath.Join(ConfigDir(), "themes"),
	)
}

func themeDirs(env, base string) []string {
	delim := string(os.PathListSeparator)

	prefix := strings.Split(env, delim)

	merged := mung.Make(
		mung.WithSubjectItems(base),
		mung.WithDelim(delim),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(isDir),
	).String()

	var dirs []string

	for dir := range strings.SplitSeq(merged, delim) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

func isDir(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
