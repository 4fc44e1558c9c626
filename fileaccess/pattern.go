package fileaccess

// PatternKind discriminates the two inclusion-entry forms an attribute
// value can carry.
type PatternKind int

const (
	// PatternGlob is a glob pattern matched against the path list.
	PatternGlob PatternKind = iota
	// PatternExplicitList is a pre-resolved list of paths. This is the
	// legacy form; resolving one emits a deprecation warning.
	PatternExplicitList
)

// Pattern is one inclusion entry of a file attribute: either a glob pattern
// or an explicit file list. Resolution branches on Kind; the other field is
// ignored.
type Pattern struct {
	Kind  PatternKind
	Glob  string   // set when Kind == PatternGlob
	Paths []string // set when Kind == PatternExplicitList
}

// GlobPattern returns a glob-kind Pattern.
func GlobPattern(glob string) Pattern {
	return Pattern{Kind: PatternGlob, Glob: glob}
}

// GlobPatterns wraps plain glob strings as Patterns.
func GlobPatterns(globs ...string) []Pattern {
	out := make([]Pattern, len(globs))
	for i, g := range globs {
		out[i] = GlobPattern(g)
	}
	return out
}

// ExplicitList returns an explicit-list Pattern over the given paths.
func ExplicitList(paths ...string) Pattern {
	return Pattern{Kind: PatternExplicitList, Paths: paths}
}
