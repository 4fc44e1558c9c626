// Package specfile reads the YAML file-selection document of a
// specification and exposes it as a fileaccess.Consumer.
package specfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/podlift/fileset/fileaccess"
)

// Sentinel errors for document validation.
var (
	ErrEmptyDocument = errors.New("empty document")
	ErrMissingName   = errors.New("spec name is required")
)

// Entry is one inclusion entry of a pattern-valued field: either a glob
// pattern scalar or an explicit file list written as {paths: [...]}.
type Entry struct {
	Pattern fileaccess.Pattern
}

// UnmarshalYAML decodes the two supported entry forms.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var glob string
		if err := value.Decode(&glob); err != nil {
			return err
		}
		e.Pattern = fileaccess.GlobPattern(glob)
		return nil

	case yaml.MappingNode:
		for i := 0; i < len(value.Content); i += 2 {
			if key := value.Content[i].Value; key != "paths" {
				return fmt.Errorf("line %d: unsupported key %q in file list entry", value.Content[i].Line, key)
			}
		}
		var aux struct {
			Paths []string `yaml:"paths"`
		}
		if err := value.Decode(&aux); err != nil {
			return err
		}
		if len(aux.Paths) == 0 {
			return fmt.Errorf("line %d: file list entry needs at least one path", value.Line)
		}
		e.Pattern = fileaccess.ExplicitList(aux.Paths...)
		return nil

	default:
		return fmt.Errorf("line %d: entry must be a glob string or {paths: [...]}", value.Line)
	}
}

// Spec is one parsed file-selection document. Pattern-valued fields keep
// their document order; Resources is keyed by destination directory.
type Spec struct {
	Name     string `yaml:"name"`
	Platform string `yaml:"platform"`

	SourceFiles        []Entry            `yaml:"source_files"`
	PublicHeaderFiles  []Entry            `yaml:"public_header_files"`
	PrivateHeaderFiles []Entry            `yaml:"private_header_files"`
	Resources          map[string][]Entry `yaml:"resources"`
	PreservePaths      []Entry            `yaml:"preserve_paths"`

	ExcludeFiles     []string `yaml:"exclude_files"`
	PrefixHeaderFile string   `yaml:"prefix_header_file"`
	LicenseFile      string   `yaml:"license_file"`
}

// Parse decodes one spec document. Unknown fields are rejected so typos in
// attribute names fail loudly instead of resolving to nothing.
func Parse(data []byte) (*Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Spec
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("specfile: %w", ErrEmptyDocument)
		}
		return nil, fmt.Errorf("specfile: decode: %w", err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("specfile: %w", ErrMissingName)
	}
	return &s, nil
}

// Load reads and parses the spec document at path.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("specfile: read: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Consumer adapts s to the resolver's view of a specification.
func (s *Spec) Consumer() fileaccess.Consumer {
	return specConsumer{spec: s}
}

// specConsumer implements fileaccess.Consumer over a parsed Spec.
type specConsumer struct {
	spec *Spec
}

func (c specConsumer) Name() string { return c.spec.Name }

func (c specConsumer) Platform() string { return c.spec.Platform }

func (c specConsumer) SourceFiles() []fileaccess.Pattern {
	return patterns(c.spec.SourceFiles)
}

func (c specConsumer) PublicHeaderFiles() []fileaccess.Pattern {
	return patterns(c.spec.PublicHeaderFiles)
}

func (c specConsumer) PrivateHeaderFiles() []fileaccess.Pattern {
	return patterns(c.spec.PrivateHeaderFiles)
}

func (c specConsumer) PreservePaths() []fileaccess.Pattern {
	return patterns(c.spec.PreservePaths)
}

func (c specConsumer) Resources() map[string][]fileaccess.Pattern {
	if len(c.spec.Resources) == 0 {
		return nil
	}
	out := make(map[string][]fileaccess.Pattern, len(c.spec.Resources))
	for dest, entries := range c.spec.Resources {
		out[dest] = patterns(entries)
	}
	return out
}

func (c specConsumer) ExcludeFiles() []string { return c.spec.ExcludeFiles }

func (c specConsumer) PrefixHeaderFile() string { return c.spec.PrefixHeaderFile }

func (c specConsumer) LicenseFile() string { return c.spec.LicenseFile }

// patterns unwraps parsed entries into resolver patterns.
func patterns(entries []Entry) []fileaccess.Pattern {
	if len(entries) == 0 {
		return nil
	}
	out := make([]fileaccess.Pattern, len(entries))
	for i, e := range entries {
		out[i] = e.Pattern
	}
	return out
}
