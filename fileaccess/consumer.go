package fileaccess

// Consumer supplies one specification's configured file attributes. It is a
// read-only collaborator: the resolver never mutates it and treats the
// document format behind it as opaque. Pattern-valued methods return nil
// when the attribute is not configured.
type Consumer interface {
	// Name identifies the owning specification in diagnostics.
	Name() string
	// Platform names the platform these values were flattened for. Carried
	// as context; the resolver never branches on it.
	Platform() string
	// SourceFiles returns the inclusion patterns for source files.
	SourceFiles() []Pattern
	// PublicHeaderFiles returns the inclusion patterns for public headers.
	PublicHeaderFiles() []Pattern
	// PrivateHeaderFiles returns the inclusion patterns for headers hidden
	// from the public set.
	PrivateHeaderFiles() []Pattern
	// PreservePaths returns the inclusion patterns for paths kept aside
	// verbatim.
	PreservePaths() []Pattern
	// Resources returns resource inclusion patterns keyed by destination.
	Resources() map[string][]Pattern
	// ExcludeFiles returns the exclusion patterns applied to every
	// pattern-based resolution of this consumer.
	ExcludeFiles() []string
	// PrefixHeaderFile returns the configured prefix header path relative
	// to the root, or "" when none is set.
	PrefixHeaderFile() string
	// LicenseFile returns the declared license file path relative to the
	// root, or "" when none is set.
	LicenseFile() string
}
