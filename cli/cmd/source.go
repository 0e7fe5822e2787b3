package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/plx/lang"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is one opened input.
type source struct {
	name string
	io.ReadCloser
}

// parsed is the pipeline result of one source.
type parsed struct {
	name string
	lang.Result
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// open opens each path in order.
//
// Paths naming the same file (through symlinks, relative paths or device
// files) are opened once. All occurrences of "-", and any path naming the
// file behind stdin, are replaced with a single stdin source placed last.
// No paths at all means stdin.
func (s *Session) open(paths []string) (srcs []source, err error) {
	if len(paths) == 0 {
		paths = []string{stdinSource}
	}

	defer func() {
		if err != nil {
			closeAll(srcs)
			srcs = nil
		}
	}()

	seen := make(map[fileKey]struct{})

	var stdinKey fileKey

	hasStdinKey := false
	if f, ok := s.Stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			stdinKey, hasStdinKey = makeFileKey(info)
		}
	}

	hasStdin := false

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		file, key, err := openFile(path)
		if err != nil {
			return srcs, ErrOpenFile.With(slog.String("file", path)).Wrap(err)
		}

		if hasStdinKey && key == stdinKey {
			hasStdin = true

			file.Close()

			continue
		}

		if _, dup := seen[key]; dup {
			file.Close()

			continue
		}

		seen[key] = struct{}{}
		srcs = append(srcs, source{name: path, ReadCloser: file})
	}

	if hasStdin {
		srcs = append(srcs, source{name: stdinSource, ReadCloser: io.NopCloser(s.Stdin)})
	}

	return srcs, nil
}

// openFile resolves path to its real location and opens it, returning the
// key identifying the underlying file.
func openFile(path string) (*os.File, fileKey, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fileKey{}, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fileKey{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fileKey{}, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return nil, fileKey{}, err
	}

	key, ok := makeFileKey(info)
	if !ok {
		// No inode numbers: identify the file by its resolved path.
		key = fileKey{ino: xxh3.HashString(resolved)}
	}

	return file, key, nil
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

func closeAll(srcs []source) {
	for _, src := range srcs {
		src.Close()
	}
}

// parse runs the front end over every source in paths.
func (s *Session) parse(ctx context.Context, paths []string) ([]parsed, error) {
	srcs, err := s.open(paths)
	if err != nil {
		return nil, err
	}
	defer closeAll(srcs)

	out := make([]parsed, 0, len(srcs))

	for _, src := range srcs {
		res, err := lang.ParseReader(ctx, src, lang.WithLogger(s.Logger))
		if err != nil {
			return nil, lang.WrapError(err).With(slog.String("file", src.name))
		}

		s.Logger.DebugContext(ctx, "parsed source",
			slog.String("file", src.name),
			slog.Int("tokens", len(res.Tokens)),
			slog.Int("errors", len(res.Errors)),
		)

		out = append(out, parsed{name: src.name, Result: res})
	}

	return out, nil
}

// header writes a banner naming the i'th of n sources, or nothing when there
// is only one.
func header(w io.Writer, name string, i, n int) {
	if n < 2 {
		return
	}

	if i > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "==> %s <==\n", name)
}
