package fileaccess

import "strings"

// Extensions holds the recognized filename-extension tables. Header is the
// header-detection filter and the default public/private header glob;
// Source lists the implementation-file extensions. The source-files
// directory glob covers both tables.
type Extensions struct {
	Header []string
	Source []string
}

// DefaultExtensions returns the C, C++, Objective-C and Swift family
// tables.
func DefaultExtensions() Extensions {
	return Extensions{
		Header: []string{"h", "hh", "hpp", "ipp", "tpp", "hxx", "def", "inl", "inc"},
		Source: []string{"m", "mm", "i", "c", "cc", "cxx", "cpp", "c++", "swift"},
	}
}

// normalized returns a copy with both tables cleaned up for matching.
func (e Extensions) normalized() Extensions {
	return Extensions{
		Header: normalizeExtensions(e.Header),
		Source: normalizeExtensions(e.Source),
	}
}

// normalizeExtensions strips "*." and "." prefixes, lower-cases every entry
// and drops empties, so "h", ".h" and "*.h" are equivalent inputs.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*.")
		ext = strings.TrimLeft(ext, ".")
		ext = strings.ToLower(ext)
		if ext == "" {
			continue
		}
		out = append(out, ext)
	}
	return out
}

// headerGlob returns the one-segment glob over the header table, or "" when
// the table is empty.
func (e Extensions) headerGlob() string {
	if len(e.Header) == 0 {
		return ""
	}
	return "*.{" + strings.Join(e.Header, ",") + "}"
}

// sourceGlob returns the one-segment glob over both tables, or "" when both
// are empty.
func (e Extensions) sourceGlob() string {
	all := make([]string, 0, len(e.Source)+len(e.Header))
	all = append(all, e.Source...)
	all = append(all, e.Header...)
	if len(all) == 0 {
		return ""
	}
	return "*.{" + strings.Join(all, ",") + "}"
}

// headerSet returns the header table as a membership set.
func (e Extensions) headerSet() map[string]struct{} {
	set := make(map[string]struct{}, len(e.Header))
	for _, ext := range e.Header {
		set[ext] = struct{}{}
	}
	return set
}
