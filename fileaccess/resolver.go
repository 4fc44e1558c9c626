// Package fileaccess resolves the file attributes a specification declares
// (source files, headers, resources, preserve paths) against one directory
// tree.
//
// A Resolver pairs a pathlist.List with a Consumer. Attribute patterns are
// expanded through the list's cached snapshot with role-specific defaults
// applied: bare directory references grow an extension glob, the consumer's
// exclusion patterns are honored everywhere, and derived sets (header
// subset, public/private split, readme and license detection) are computed
// from the resolved attributes. Every query is answered from the same
// snapshot, so resolution is idempotent for the life of the Resolver.
package fileaccess

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/podlift/fileset/pathlist"
)

// Config carries optional Resolver settings. The zero value is usable: the
// extension tables default to DefaultExtensions and diagnostics are
// discarded.
type Config struct {
	// Extensions substitutes the recognized extension tables. Leaving both
	// tables empty selects DefaultExtensions.
	Extensions Extensions

	// Logger receives deprecation warnings. nil discards them.
	Logger log.Logger
}

// Resolver translates attribute requests into resolved path lists.
type Resolver struct {
	list      *pathlist.List
	consumer  Consumer
	exts      Extensions
	headerSet map[string]struct{}
	logger    log.Logger
}

// New creates a Resolver answering queries for consumer's specification
// against the tree behind list.
func New(list *pathlist.List, consumer Consumer, cfg Config) (*Resolver, error) {
	if consumer == nil {
		return nil, ErrMissingConsumer
	}
	if list == nil {
		return nil, ErrMissingPathList
	}

	exts := cfg.Extensions
	if len(exts.Header) == 0 && len(exts.Source) == 0 {
		exts = DefaultExtensions()
	}
	exts = exts.normalized()

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &Resolver{
		list:      list,
		consumer:  consumer,
		exts:      exts,
		headerSet: exts.headerSet(),
		logger:    logger,
	}, nil
}

// Root returns the absolute root the resolver's paths are anchored at.
func (r *Resolver) Root() string { return r.list.Root() }

// ResolveAttribute expands attr's configured patterns into absolute file
// paths. An unconfigured attribute resolves to an empty list; so does a
// pattern set that matches nothing. Both outcomes are not errors.
func (r *Resolver) ResolveAttribute(attr Attribute) ([]string, error) {
	binding, ok := attributeBindings[attr]
	if !ok {
		return nil, fmt.Errorf("fileaccess: %w: %s", ErrUnknownAttribute, attr)
	}
	return r.resolvePatterns(attr.String(), binding.patterns(r.consumer), binding.suffix.pattern(r.exts))
}

// SourceFiles resolves the source_files attribute. Bare directory
// references expand to the files with recognized implementation or header
// extensions directly inside them.
func (r *Resolver) SourceFiles() ([]string, error) {
	return r.ResolveAttribute(AttrSourceFiles)
}

// PrivateHeaders resolves the private_header_files attribute.
func (r *Resolver) PrivateHeaders() ([]string, error) {
	return r.ResolveAttribute(AttrPrivateHeaderFiles)
}

// PreservePaths resolves the preserve_paths attribute. No directory suffix
// applies: a bare directory reference stays unexpanded and matches nothing.
func (r *Resolver) PreservePaths() ([]string, error) {
	return r.ResolveAttribute(AttrPreservePaths)
}

// Headers filters the resolved source files down to the recognized header
// extensions. It is a pure derivation over SourceFiles and issues no
// additional filesystem queries.
func (r *Resolver) Headers() ([]string, error) {
	sources, err := r.SourceFiles()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, p := range sources {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(p), "."))
		if _, ok := r.headerSet[ext]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// PublicHeaders returns the explicitly configured public headers when that
// attribute resolves to anything, falling back to Headers otherwise. Paths
// that also resolve as private headers are removed from the result.
func (r *Resolver) PublicHeaders() ([]string, error) {
	public, err := r.ResolveAttribute(AttrPublicHeaderFiles)
	if err != nil {
		return nil, err
	}
	if len(public) == 0 {
		if public, err = r.Headers(); err != nil {
			return nil, err
		}
	}

	private, err := r.PrivateHeaders()
	if err != nil {
		return nil, err
	}
	if len(private) == 0 {
		return public, nil
	}

	priv := make(map[string]struct{}, len(private))
	for _, p := range private {
		priv[p] = struct{}{}
	}

	var out []string
	for _, p := range public {
		if _, ok := priv[p]; !ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Resources resolves each resource destination's pattern list
// independently. No directory suffix applies; the consumer's exclusion
// patterns do. Destinations whose patterns match nothing map to an empty
// list rather than disappearing.
func (r *Resolver) Resources() (map[string][]string, error) {
	groups := r.consumer.Resources()
	if len(groups) == 0 {
		return nil, nil
	}

	out := make(map[string][]string, len(groups))
	for dest, entries := range groups {
		paths, err := r.resolvePatterns("resources."+dest, entries, "")
		if err != nil {
			return nil, err
		}
		out[dest] = paths
	}
	return out, nil
}

// PrefixHeader returns the absolute path of the configured prefix header.
// The path is joined, not verified: whether the file exists is the
// caller's concern. ok is false when the specification names none.
func (r *Resolver) PrefixHeader() (string, bool) {
	name := r.consumer.PrefixHeaderFile()
	if name == "" {
		return "", false
	}
	return filepath.Join(r.list.Root(), filepath.FromSlash(name)), true
}

// readmeCandidates are tried in priority order by Readme. Matching is
// case-sensitive, so the common casings are spelled out.
var readmeCandidates = []string{"README*", "readme*", "Readme*"}

// licenseCandidates are tried in priority order by License, covering both
// spellings.
var licenseCandidates = []string{
	"LICENSE*", "LICENCE*",
	"License*", "Licence*",
	"license*", "licence*",
}

// Readme auto-detects the readme file at the root of the tree. ok is false
// when no candidate matches.
func (r *Resolver) Readme() (string, bool, error) {
	path, ok, err := r.list.FindFirst(readmeCandidates)
	if err != nil {
		return "", false, fmt.Errorf("fileaccess: readme for %s: %w", r.consumer.Name(), err)
	}
	return path, ok, nil
}

// License returns the specification's license file. A declared license_file
// wins and is returned unverified; otherwise the root of the tree is
// searched for a conventionally named candidate.
func (r *Resolver) License() (string, bool, error) {
	if file := r.consumer.LicenseFile(); file != "" {
		return filepath.Join(r.list.Root(), filepath.FromSlash(file)), true, nil
	}

	path, ok, err := r.list.FindFirst(licenseCandidates)
	if err != nil {
		return "", false, fmt.Errorf("fileaccess: license for %s: %w", r.consumer.Name(), err)
	}
	return path, ok, nil
}

// resolvePatterns expands one attribute's inclusion entries. Glob entries
// go through the path list together, with the attribute's directory suffix
// and the consumer's exclusion patterns applied. Explicit file lists are
// expanded separately, without the directory suffix and without exclusions,
// and unioned into the result.
func (r *Resolver) resolvePatterns(attr string, entries []Pattern, dirPattern string) ([]string, error) {
	var globs []string
	var explicit []string
	warned := false

	for _, p := range entries {
		switch p.Kind {
		case PatternGlob:
			if p.Glob != "" {
				globs = append(globs, p.Glob)
			}
		case PatternExplicitList:
			if !warned {
				level.Warn(r.logger).Log(
					"msg", "explicit file lists are deprecated, use glob patterns",
					"spec", r.consumer.Name(),
					"attribute", attr,
				)
				warned = true
			}
			for _, path := range p.Paths {
				explicit = append(explicit, r.relativeToRoot(path))
			}
		default:
			return nil, fmt.Errorf("fileaccess: attribute %s of %s: %w", attr, r.consumer.Name(), ErrUnknownPatternKind)
		}
	}

	out, err := r.list.Glob(globs, pathlist.GlobOptions{
		DirPattern:      dirPattern,
		ExcludePatterns: r.consumer.ExcludeFiles(),
	})
	if err != nil {
		return nil, fmt.Errorf("fileaccess: resolve %s for %s: %w", attr, r.consumer.Name(), err)
	}

	if len(explicit) > 0 {
		legacy, err := r.list.Glob(explicit, pathlist.GlobOptions{})
		if err != nil {
			return nil, fmt.Errorf("fileaccess: resolve %s file list for %s: %w", attr, r.consumer.Name(), err)
		}
		out = unionSorted(out, legacy)
	}
	return out, nil
}

// relativeToRoot rewrites an absolute explicit-list entry under the root to
// the snapshot's relative slash form. Entries outside the root, and
// relative ones, pass through unchanged.
func (r *Resolver) relativeToRoot(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(r.list.Root(), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// unionSorted merges two sorted path lists into one sorted list without
// duplicates.
func unionSorted(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}

	merged := make([]string, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	sort.Strings(merged)

	out := merged[:1]
	for _, p := range merged[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
