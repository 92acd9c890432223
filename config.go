package proj2gpt

import (
	"fmt"
	"path"
	"strings"
)

// Default limits, matching the original tool's configuration defaults.
const (
	DefaultMaxFileSize = 1_000_000 // bytes per source file
	DefaultMaxPartSize = 3_000_000 // bytes per container part
	DefaultDestDir     = "proj2gpt"
)

// Config holds the plain values the engine consumes. It is typically
// produced by a configuration loader (see internal/config), but can be
// constructed directly.
type Config struct {
	// Allow lists the glob patterns a file must match to be included.
	// A pattern without a separator matches basenames anywhere in the
	// tree; a pattern with a separator is anchored to the project root.
	Allow []string

	// Deny lists glob patterns that exclude files and directories even
	// when an allow pattern matches.
	Deny []string

	// UseIgnoreFiles enables .gitignore rules found in the tree.
	// Negated and double-wildcard patterns are treated as literal text.
	UseIgnoreFiles bool

	// MaxFileSize excludes files larger than this many bytes.
	// Zero selects DefaultMaxFileSize.
	MaxFileSize int64

	// GroupPaths lists explicit group paths (root-anchored, slash
	// separated). Files under a group path are packed into that group's
	// container instead of the default one.
	GroupPaths []string

	// GroupRoots lists directories whose immediate subdirectories each
	// become a group, discovered at build time.
	GroupRoots []string

	// MaxPartSize caps a container part's byte size. A single frame
	// larger than the cap still gets a part of its own, never split.
	// Zero selects DefaultMaxPartSize.
	MaxPartSize int

	// KeepBuilds is the number of build directories retained after a
	// successful build, newest first. Zero keeps everything.
	KeepBuilds int

	// MaskSecrets makes the engine read "<file>.gpt" masked siblings in
	// place of the original file content when they exist.
	MaskSecrets bool

	// DestDir is the output directory, relative to the project root.
	// Empty selects DefaultDestDir.
	DestDir string
}

// applyDefaults fills zero values with the tool's defaults and normalizes
// group paths to root-anchored slash form.
func (c *Config) applyDefaults() {
	if c.MaxFileSize == 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.MaxPartSize == 0 {
		c.MaxPartSize = DefaultMaxPartSize
	}
	if c.DestDir == "" {
		c.DestDir = DefaultDestDir
	}
	for i, p := range c.GroupPaths {
		c.GroupPaths[i] = normalizeLogicalPath(p)
	}
	for i, p := range c.GroupRoots {
		c.GroupRoots[i] = normalizeLogicalPath(p)
	}
}

// validate checks the configuration and collects every problem it finds.
// A non-nil return wraps ErrInvalidConfig.
func (c *Config) validate() error {
	var errs []error

	for _, pattern := range c.Allow {
		if err := validateGlob(pattern); err != nil {
			errs = append(errs, fmt.Errorf("allow pattern %q: %w", pattern, err))
		}
	}
	for _, pattern := range c.Deny {
		if err := validateGlob(pattern); err != nil {
			errs = append(errs, fmt.Errorf("deny pattern %q: %w", pattern, err))
		}
	}
	if c.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("max file size must not be negative, got %d", c.MaxFileSize))
	}
	if c.MaxPartSize < 0 {
		errs = append(errs, fmt.Errorf("max part size must not be negative, got %d", c.MaxPartSize))
	}
	if c.KeepBuilds < 0 {
		errs = append(errs, fmt.Errorf("keep builds must not be negative, got %d", c.KeepBuilds))
	}
	if strings.HasPrefix(c.DestDir, "/") || strings.HasPrefix(c.DestDir, "..") {
		errs = append(errs, fmt.Errorf("destination directory must be relative to the project root, got %q", c.DestDir))
	}

	return newConfigError(errs)
}

// normalizeLogicalPath turns a configured path into the engine's canonical
// root-anchored slash form: "src/app" and "/src/app/" both become "/src/app".
func normalizeLogicalPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Clean("/" + strings.Trim(p, "/"))
}
