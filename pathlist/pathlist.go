// Package pathlist implements cached directory-tree snapshots and glob
// queries against them.
//
// A List owns one rooted subtree. The first query that needs the tree walks
// it exactly once and caches every relative path; all later queries match
// patterns against that snapshot, so results stay identical even if the
// filesystem changes afterwards.
package pathlist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
)

// RootNotFoundError is returned when the configured root does not exist, is
// not a directory, or cannot be read at first access. The failure is fatal
// for the List instance: every later query returns the same error.
type RootNotFoundError struct {
	Root string // absolute root path of the List
	Err  error  // underlying filesystem error; nil when the root is not a directory
}

func (e *RootNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pathlist: root %q: %v", e.Root, e.Err)
	}
	return fmt.Sprintf("pathlist: root %q is not a directory", e.Root)
}

// Unwrap returns the underlying filesystem error, if any.
func (e *RootNotFoundError) Unwrap() error { return e.Err }

// GlobOptions controls optional behavior for Glob and RelativeGlob.
type GlobOptions struct {
	// DirPattern is appended ("<dir>/<DirPattern>") to any pattern that
	// names a directory in the snapshot, so bare directory references
	// expand to the files they contain. When empty, a bare directory
	// reference expands to nothing.
	DirPattern string
	// ExcludePatterns removes every matching path from the result,
	// regardless of how many inclusion patterns matched it.
	ExcludePatterns []string
	// IncludeDirectories admits directory entries into the candidate set.
	// Off by default: only files can match.
	IncludeDirectories bool
}

// List is a rooted directory subtree with a lazily captured path snapshot.
// The snapshot is taken once, on the first query that needs it, and never
// refreshed. A List is safe for concurrent use.
type List struct {
	// root is the absolute root directory path.
	root string

	// mu guards the one-time snapshot capture.
	mu sync.Mutex
	// loaded flips to true after a successful capture; readers that see it
	// skip the mutex entirely since the snapshot is immutable.
	loaded atomic.Bool
	// loadErr is the sticky error from a failed capture attempt.
	loadErr error
	// files and dirs hold the sorted relative slash paths of the snapshot.
	files []string
	dirs  []string
	// dirSet answers whether a relative path names a snapshot directory.
	dirSet map[string]struct{}
}

// New creates a List rooted at root. No filesystem access happens yet; the
// root is validated when the snapshot is captured on first query.
func New(root string) (*List, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("pathlist: resolve root: %w", err)
	}
	return &List{root: abs}, nil
}

// Root returns the absolute root directory path.
func (l *List) Root() string { return l.root }

// Loaded reports whether the snapshot has been captured. It stays false
// after a failed capture.
func (l *List) Loaded() bool { return l.loaded.Load() }

// Files returns the sorted relative paths of every file in the snapshot,
// capturing the snapshot if needed.
func (l *List) Files() ([]string, error) {
	if err := l.load(); err != nil {
		return nil, err
	}
	return append([]string(nil), l.files...), nil
}

// Dirs returns the sorted relative paths of every directory in the
// snapshot, capturing the snapshot if needed.
func (l *List) Dirs() ([]string, error) {
	if err := l.load(); err != nil {
		return nil, err
	}
	return append([]string(nil), l.dirs...), nil
}

// Glob behaves like RelativeGlob but returns absolute paths rooted at Root.
func (l *List) Glob(patterns []string, opts GlobOptions) ([]string, error) {
	rels, err := l.RelativeGlob(patterns, opts)
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return nil, nil
	}

	out := make([]string, len(rels))
	for i, rel := range rels {
		out[i] = filepath.Join(l.root, filepath.FromSlash(rel))
	}
	return out, nil
}

// RelativeGlob returns the root-relative paths matching any of patterns,
// minus those matching any exclude pattern. Patterns use doublestar syntax:
// `*` matches within one path segment, `**` across segments, `{a,b}`
// enumerates alternatives and `[...]` matches character classes. Matching
// is case-sensitive.
//
// A pattern that names a directory in the snapshot is combined with
// opts.DirPattern before matching; with an empty DirPattern the bare
// directory reference matches nothing.
//
// An empty patterns slice returns an empty result without touching the
// filesystem. Results are deduplicated and emitted in snapshot order, so
// identical calls against the same snapshot return identical slices.
func (l *List) RelativeGlob(patterns []string, opts GlobOptions) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	if err := l.load(); err != nil {
		return nil, err
	}

	candidates := l.files
	if opts.IncludeDirectories {
		candidates = mergeSorted(l.files, l.dirs)
	}

	matched := make([]bool, len(candidates))
	for _, raw := range patterns {
		pat := normalizePattern(raw)
		if pat == "" {
			continue
		}

		if opts.DirPattern != "" && l.isDir(pat) {
			pat = pat + "/" + opts.DirPattern
		}

		for i, rel := range candidates {
			if matched[i] {
				continue
			}
			ok, err := doublestar.Match(pat, rel)
			if err != nil {
				return nil, fmt.Errorf("pathlist: pattern %q: %w", raw, err)
			}
			if ok {
				matched[i] = true
			}
		}
	}

	var out []string
	for i, rel := range candidates {
		if !matched[i] {
			continue
		}
		excluded, err := matchesAny(opts.ExcludePatterns, rel)
		if err != nil {
			return nil, err
		}
		if !excluded {
			out = append(out, rel)
		}
	}
	return out, nil
}

// FindFirst returns the absolute path of the first file matching any of
// patterns. Patterns are tried in order against the sorted file list, so
// earlier patterns take priority over later ones. The second result is
// false when nothing matches.
func (l *List) FindFirst(patterns []string) (string, bool, error) {
	if len(patterns) == 0 {
		return "", false, nil
	}
	if err := l.load(); err != nil {
		return "", false, err
	}

	for _, raw := range patterns {
		pat := normalizePattern(raw)
		if pat == "" {
			continue
		}
		for _, rel := range l.files {
			ok, err := doublestar.Match(pat, rel)
			if err != nil {
				return "", false, fmt.Errorf("pathlist: pattern %q: %w", raw, err)
			}
			if ok {
				return filepath.Join(l.root, filepath.FromSlash(rel)), true, nil
			}
		}
	}
	return "", false, nil
}

// load captures the snapshot on first use. Exactly one caller performs the
// walk; concurrent callers block until it finishes and then share the
// cached result.
func (l *List) load() error {
	if l.loaded.Load() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded.Load() {
		return nil
	}
	if l.loadErr != nil {
		return l.loadErr
	}

	info, err := os.Stat(l.root)
	if err != nil {
		l.loadErr = &RootNotFoundError{Root: l.root, Err: err}
		return l.loadErr
	}
	if !info.IsDir() {
		l.loadErr = &RootNotFoundError{Root: l.root}
		return l.loadErr
	}

	var files, dirs []string
	err = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// A failure on the root itself means the tree cannot be read
			// at all; anything deeper is an environment problem the caller
			// has to see unchanged.
			if path == l.root {
				return &RootNotFoundError{Root: l.root, Err: walkErr}
			}
			return walkErr
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return fmt.Errorf("compute relative path: %w", err)
		}
		rel = filepath.ToSlash(rel)

		// Skip the root itself.
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			dirs = append(dirs, rel)
		} else {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		var rootErr *RootNotFoundError
		if errors.As(err, &rootErr) {
			l.loadErr = rootErr
		} else {
			l.loadErr = fmt.Errorf("pathlist: walk %q: %w", l.root, err)
		}
		return l.loadErr
	}

	sort.Strings(files)
	sort.Strings(dirs)

	dirSet := make(map[string]struct{}, len(dirs))
	for _, d := range dirs {
		dirSet[d] = struct{}{}
	}

	l.files = files
	l.dirs = dirs
	l.dirSet = dirSet
	l.loaded.Store(true)
	return nil
}

// isDir reports whether pat names a directory captured in the snapshot.
func (l *List) isDir(pat string) bool {
	_, ok := l.dirSet[pat]
	return ok
}

// matchesAny reports whether rel matches at least one of patterns.
func matchesAny(patterns []string, rel string) (bool, error) {
	for _, raw := range patterns {
		pat := normalizePattern(raw)
		if pat == "" {
			continue
		}
		ok, err := doublestar.Match(pat, rel)
		if err != nil {
			return false, fmt.Errorf("pathlist: exclude pattern %q: %w", raw, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// normalizePattern converts a user-supplied pattern to the snapshot's
// relative slash form: separators normalized, leading "./" and any trailing
// slash dropped.
func normalizePattern(raw string) string {
	pat := filepath.ToSlash(strings.TrimSpace(raw))
	pat = strings.TrimPrefix(pat, "./")
	pat = strings.TrimSuffix(pat, "/")
	return pat
}

// mergeSorted merges two sorted string slices into one sorted slice.
func mergeSorted(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
