package specfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/podlift/fileset/fileaccess"
	"github.com/podlift/fileset/pathlist"
)

// ---------------------------------------------------------------------------
// Parse tests
// ---------------------------------------------------------------------------

func TestParse_FullDocument(t *testing.T) {
	doc := `
name: Networking
platform: ios
source_files:
  - src
  - {paths: [extra/gen.c, extra/gen.h]}
public_header_files:
  - include
private_header_files:
  - src/impl.h
resources:
  Images:
    - assets/*.png
  Sounds:
    - sounds/*
preserve_paths:
  - scripts/*
exclude_files:
  - "**/*.tmp"
prefix_header_file: src/Networking-Prefix.pch
license_file: legal/COPYING
`

	got, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := &Spec{
		Name:     "Networking",
		Platform: "ios",
		SourceFiles: []Entry{
			{Pattern: fileaccess.GlobPattern("src")},
			{Pattern: fileaccess.ExplicitList("extra/gen.c", "extra/gen.h")},
		},
		PublicHeaderFiles:  []Entry{{Pattern: fileaccess.GlobPattern("include")}},
		PrivateHeaderFiles: []Entry{{Pattern: fileaccess.GlobPattern("src/impl.h")}},
		Resources: map[string][]Entry{
			"Images": {{Pattern: fileaccess.GlobPattern("assets/*.png")}},
			"Sounds": {{Pattern: fileaccess.GlobPattern("sounds/*")}},
		},
		PreservePaths:    []Entry{{Pattern: fileaccess.GlobPattern("scripts/*")}},
		ExcludeFiles:     []string{"**/*.tmp"},
		PrefixHeaderFile: "src/Networking-Prefix.pch",
		LicenseFile:      "legal/COPYING",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MinimalDocument(t *testing.T) {
	got, err := Parse([]byte("name: Tiny\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Name != "Tiny" {
		t.Errorf("Name = %q, want %q", got.Name, "Tiny")
	}
	if got.SourceFiles != nil {
		t.Errorf("SourceFiles = %v, want nil", got.SourceFiles)
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("name: Typo\nsource_fils:\n  - src\n"))
	if err == nil {
		t.Fatal("Parse with unknown field: expected error, got nil")
	}
	if !strings.Contains(err.Error(), "source_fils") {
		t.Errorf("error %q does not name the unknown field", err)
	}
}

func TestParse_MissingName(t *testing.T) {
	_, err := Parse([]byte("platform: ios\n"))
	if !errors.Is(err, ErrMissingName) {
		t.Errorf("Parse error = %v, want ErrMissingName", err)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "# only a comment\n"} {
		_, err := Parse([]byte(doc))
		if !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("Parse(%q) error = %v, want ErrEmptyDocument", doc, err)
		}
	}
}

func TestParse_EntryErrors(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "sequence entry",
			doc:     "name: Bad\nsource_files:\n  - [src, lib]\n",
			wantErr: "glob string or {paths",
		},
		{
			name:    "wrong mapping key",
			doc:     "name: Bad\nsource_files:\n  - {files: [a.c]}\n",
			wantErr: "unsupported key",
		},
		{
			name:    "empty paths",
			doc:     "name: Bad\nsource_files:\n  - {paths: []}\n",
			wantErr: "at least one path",
		},
	}

	for _, tc := range cases {
		_, err := Parse([]byte(tc.doc))
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: error %q does not contain %q", tc.name, err, tc.wantErr)
		}
	}
}

// ---------------------------------------------------------------------------
// Load tests
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "networking.yaml")
	if err := os.WriteFile(path, []byte("name: Networking\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "Networking" {
		t.Errorf("Name = %q, want %q", s.Name, "Networking")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load error = %v, want fs.ErrNotExist in chain", err)
	}
}

func TestLoad_ParseErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("platform: ios\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrMissingName) {
		t.Fatalf("Load error = %v, want ErrMissingName", err)
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("error %q does not name the file", err)
	}
}

// ---------------------------------------------------------------------------
// Consumer tests
// ---------------------------------------------------------------------------

func TestConsumer_Mapping(t *testing.T) {
	s := &Spec{
		Name:     "Networking",
		Platform: "osx",
		SourceFiles: []Entry{
			{Pattern: fileaccess.GlobPattern("src")},
		},
		Resources: map[string][]Entry{
			"Images": {{Pattern: fileaccess.GlobPattern("assets/*")}},
		},
		ExcludeFiles: []string{"**/*.tmp"},
	}

	c := s.Consumer()

	if c.Name() != "Networking" || c.Platform() != "osx" {
		t.Errorf("identity = (%q, %q), want (Networking, osx)", c.Name(), c.Platform())
	}

	wantSources := []fileaccess.Pattern{fileaccess.GlobPattern("src")}
	if diff := cmp.Diff(wantSources, c.SourceFiles()); diff != "" {
		t.Errorf("SourceFiles mismatch (-want +got):\n%s", diff)
	}

	wantResources := map[string][]fileaccess.Pattern{
		"Images": {fileaccess.GlobPattern("assets/*")},
	}
	if diff := cmp.Diff(wantResources, c.Resources()); diff != "" {
		t.Errorf("Resources mismatch (-want +got):\n%s", diff)
	}

	// Unset fields come through as zero values.
	if got := c.PublicHeaderFiles(); got != nil {
		t.Errorf("PublicHeaderFiles = %v, want nil", got)
	}
	if got := c.PrefixHeaderFile(); got != "" {
		t.Errorf("PrefixHeaderFile = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// End-to-end resolution
// ---------------------------------------------------------------------------

func TestConsumer_ResolvesAgainstTree(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{
		"src/a.c",
		"src/a.h",
		"src/impl.h",
		"include/api.h",
		"extra/gen.c",
		"assets/icon.png",
		"assets/cache.tmp",
		"scripts/build.sh",
		"README.md",
	} {
		absPath := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(absPath, []byte("content of "+rel), 0644); err != nil {
			t.Fatal(err)
		}
	}

	doc := `
name: Networking
platform: ios
source_files:
  - src
  - {paths: [extra/gen.c]}
public_header_files:
  - include
private_header_files:
  - src/impl.h
resources:
  Images:
    - assets/*
preserve_paths:
  - scripts/*
exclude_files:
  - "**/*.tmp"
prefix_header_file: src/Networking-Prefix.pch
license_file: legal/COPYING
`

	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	list, err := pathlist.New(dir)
	if err != nil {
		t.Fatalf("pathlist.New: %v", err)
	}
	r, err := fileaccess.New(list, s.Consumer(), fileaccess.Config{})
	if err != nil {
		t.Fatalf("fileaccess.New: %v", err)
	}

	got, err := r.Groups()
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}

	abs := func(rels ...string) []string {
		out := make([]string, len(rels))
		for i, rel := range rels {
			out[i] = filepath.Join(dir, filepath.FromSlash(rel))
		}
		return out
	}

	want := &fileaccess.Groups{
		SpecName:       "Networking",
		Platform:       "ios",
		SourceFiles:    abs("extra/gen.c", "src/a.c", "src/a.h", "src/impl.h"),
		Headers:        abs("src/a.h", "src/impl.h"),
		PublicHeaders:  abs("include/api.h"),
		PrivateHeaders: abs("src/impl.h"),
		Resources: map[string][]string{
			"Images": abs("assets/icon.png"),
		},
		PreservePaths: abs("scripts/build.sh"),
		PrefixHeader:  filepath.Join(dir, "src", "Networking-Prefix.pch"),
		Readme:        filepath.Join(dir, "README.md"),
		License:       filepath.Join(dir, "legal", "COPYING"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}
}
