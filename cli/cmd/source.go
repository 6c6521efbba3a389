package cmd

import (
	"io"
	"os"
	"path/filepath"
	"syscall"

	"go.uber.org/multierr"
)

// Sources reads a set of input files in order, followed by stdin if it was
// named.
type Sources interface {
	IsZero() bool
	Stdin() io.Reader
	io.Reader
	io.WriterTo
	io.Closer
}

type sourceFiles struct {
	read     []io.Reader
	files    []*os.File
	stdin    io.Reader
	hasStdin bool
	all      io.Reader
}

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.read) == 0 && !s.hasStdin }

// Stdin returns the standard input reader if stdin was included as a source,
// or nil otherwise.
func (s *sourceFiles) Stdin() io.Reader {
	if s.hasStdin {
		return s.stdin
	}

	return nil
}

func (s *sourceFiles) reader() io.Reader {
	if s.all == nil {
		readers := s.read
		if s.hasStdin {
			readers = append(readers[:len(readers):len(readers)], s.stdin)
		}

		s.all = io.MultiReader(readers...)
	}

	return s.all
}

// Read implements io.Reader by reading from all source files in order,
// including stdin if present.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	return s.reader().Read(p)
}

// WriteTo implements io.WriterTo by writing all source files to w in order,
// including stdin if present.
func (s *sourceFiles) WriteTo(w io.Writer) (n int64, err error) {
	return io.Copy(w, s.reader())
}

// Close closes every opened file.
func (s *sourceFiles) Close() error {
	var err error

	for _, f := range s.files {
		err = multierr.Append(err, f.Close())
	}

	s.files = nil

	return err
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// OpenSources opens the given source paths for reading.
//
// Readers are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single reader of stdin,
// placed last so it reads after all regular files. Paths that cannot be
// opened are skipped. The result is nil if nothing could be opened.
func OpenSources(stdin io.Reader, sources []string) Sources {
	if len(sources) == 0 {
		return nil
	}

	srcs := sourceFiles{
		read:  make([]io.Reader, 0, len(sources)),
		stdin: stdin,
	}

	seen := make(map[fileKey]struct{})

	var stdinKey fileKey

	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			stdinKey, _ = makeFileKey(info)
		}
	}

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		file, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		srcs.read = append(srcs.read, file)
		srcs.files = append(srcs.files, file)
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	_, srcs.hasStdin = seen[stdinKey]

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
