package fileaccess

import "fmt"

// Attribute identifies a pattern-bearing file role the resolver knows how
// to resolve.
type Attribute int

const (
	// AttrSourceFiles selects implementation files and headers.
	AttrSourceFiles Attribute = iota
	// AttrPublicHeaderFiles selects the headers exposed to consumers.
	AttrPublicHeaderFiles
	// AttrPrivateHeaderFiles selects headers hidden from the public set.
	AttrPrivateHeaderFiles
	// AttrPreservePaths selects paths kept aside verbatim.
	AttrPreservePaths
)

// String returns the attribute's document field name.
func (a Attribute) String() string {
	switch a {
	case AttrSourceFiles:
		return "source_files"
	case AttrPublicHeaderFiles:
		return "public_header_files"
	case AttrPrivateHeaderFiles:
		return "private_header_files"
	case AttrPreservePaths:
		return "preserve_paths"
	default:
		return fmt.Sprintf("attribute(%d)", int(a))
	}
}

// suffixKind selects the directory-glob suffix applied when one of the
// attribute's patterns names a bare directory.
type suffixKind int

const (
	suffixNone suffixKind = iota
	suffixSource
	suffixHeader
)

// pattern returns the directory-glob suffix for the given extension tables,
// or "" when the attribute expands bare directories to nothing.
func (s suffixKind) pattern(e Extensions) string {
	switch s {
	case suffixSource:
		return e.sourceGlob()
	case suffixHeader:
		return e.headerGlob()
	default:
		return ""
	}
}

// attributeBinding ties one attribute to its pattern accessor and
// directory-glob suffix.
type attributeBinding struct {
	patterns func(Consumer) []Pattern
	suffix   suffixKind
}

// attributeBindings is the static dispatch table for ResolveAttribute.
var attributeBindings = map[Attribute]attributeBinding{
	AttrSourceFiles:        {patterns: Consumer.SourceFiles, suffix: suffixSource},
	AttrPublicHeaderFiles:  {patterns: Consumer.PublicHeaderFiles, suffix: suffixHeader},
	AttrPrivateHeaderFiles: {patterns: Consumer.PrivateHeaderFiles, suffix: suffixHeader},
	AttrPreservePaths:      {patterns: Consumer.PreservePaths, suffix: suffixNone},
}
