// Package config holds the settings shared by every parse: which tag and
// suppression names are recognized, the language mode and whether
// descriptions are kept.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Find.
const FileName = ".closuredoc.toml"

var (
	ErrUnknownLanguageMode = errors.New("unknown language mode")
	ErrUnknownVisibility   = errors.New("unknown visibility")
	ErrUndecodedKeys       = errors.New("unknown configuration keys")
)

type LanguageMode int

const (
	ES3 LanguageMode = iota
	ES5
	ES6
)

var languageModes = map[string]LanguageMode{
	"es3": ES3,
	"es5": ES5,
	"es6": ES6,
}

func ParseLanguageMode(s string) (LanguageMode, error) {
	mode, ok := languageModes[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return ES5, fmt.Errorf("%w: %q", ErrUnknownLanguageMode, s)
	}
	return mode, nil
}

func (m LanguageMode) String() string {
	switch m {
	case ES3:
		return "ES3"
	case ES5:
		return "ES5"
	case ES6:
		return "ES6"
	}
	return fmt.Sprintf("LanguageMode(%d)", int(m))
}

// LegacyArrays reports whether bracket array types such as [string, number]
// are accepted.
func (m LanguageMode) LegacyArrays() bool {
	return m == ES3
}

// Visibilities lists the accepted FileVisibility values; the empty string
// means no file-level default.
var Visibilities = []string{"", "public", "protected", "private", "package"}

// Config is immutable once frozen and may then be shared between
// goroutines.
type Config struct {
	Annotations          []string
	Suppressions         []string
	LanguageMode         LanguageMode
	PreserveDescriptions bool
	FileVisibility       string

	annotations  map[string]bool
	suppressions map[string]bool
}

// Default returns the built-in configuration, already frozen.
func Default() *Config {
	c := &Config{
		Annotations:          append([]string(nil), defaultAnnotations...),
		Suppressions:         append([]string(nil), defaultSuppressions...),
		LanguageMode:         ES5,
		PreserveDescriptions: true,
	}
	return c.Freeze()
}

// Clone returns an unfrozen copy that can be modified.
func (c *Config) Clone() *Config {
	return &Config{
		Annotations:          append([]string(nil), c.Annotations...),
		Suppressions:         append([]string(nil), c.Suppressions...),
		LanguageMode:         c.LanguageMode,
		PreserveDescriptions: c.PreserveDescriptions,
		FileVisibility:       c.FileVisibility,
	}
}

// Freeze builds the lookup sets. It returns c so calls can be chained.
func (c *Config) Freeze() *Config {
	c.annotations = toSet(c.Annotations)
	c.suppressions = toSet(c.Suppressions)
	return c
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// IsAnnotation reports whether name is an informational tag that is
// accepted without effect.
func (c *Config) IsAnnotation(name string) bool {
	if c.annotations == nil {
		return contains(c.Annotations, name)
	}
	return c.annotations[name]
}

func (c *Config) IsSuppression(name string) bool {
	if c.suppressions == nil {
		return contains(c.Suppressions, name)
	}
	return c.suppressions[name]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type fileConfig struct {
	LanguageMode         *string   `toml:"language_mode"`
	PreserveDescriptions *bool     `toml:"preserve_descriptions"`
	FileVisibility       *string   `toml:"file_visibility"`
	Annotations          extraList `toml:"annotations"`
	Suppressions         extraList `toml:"suppressions"`
}

type extraList struct {
	Extra []string `toml:"extra"`
}

// Load reads a TOML file and merges it over the defaults.
func Load(path string) (*Config, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return fromFile(path, fc, meta)
}

// Parse is Load for configuration text already in memory.
func Parse(name, text string) (*Config, error) {
	var fc fileConfig
	meta, err := toml.Decode(text, &fc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	return fromFile(name, fc, meta)
}

func fromFile(name string, fc fileConfig, meta toml.MetaData) (*Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: %w: %s", name, ErrUndecodedKeys, strings.Join(keys, ", "))
	}

	c := Default().Clone()
	if fc.LanguageMode != nil {
		mode, err := ParseLanguageMode(*fc.LanguageMode)
		if err != nil {
			return nil, fmt.Errorf("%s: language_mode: %w", name, err)
		}
		c.LanguageMode = mode
	}
	if fc.PreserveDescriptions != nil {
		c.PreserveDescriptions = *fc.PreserveDescriptions
	}
	if fc.FileVisibility != nil {
		vis := strings.TrimSpace(*fc.FileVisibility)
		if !contains(Visibilities, vis) {
			return nil, fmt.Errorf("%s: file_visibility: %w: %q", name, ErrUnknownVisibility, vis)
		}
		c.FileVisibility = vis
	}
	c.Annotations = merge(c.Annotations, fc.Annotations.Extra)
	c.Suppressions = merge(c.Suppressions, fc.Suppressions.Extra)
	return c.Freeze(), nil
}

func merge(base, extra []string) []string {
	for _, name := range extra {
		name = strings.TrimSpace(name)
		if name != "" && !contains(base, name) {
			base = append(base, name)
		}
	}
	return base
}

// Find walks from startDir towards the root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover loads the nearest configuration file above startDir, or the
// defaults when there is none.
func Discover(startDir string) (*Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), "", err
	}
	c, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return c, path, nil
}
