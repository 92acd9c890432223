package proj2gpt

import (
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// NowFunc defines a function that returns the current time.
// Build identifiers are derived from it.
type NowFunc func() time.Time

// Engine runs builds for a single project root.
// It is safe to reuse for consecutive builds, but a project must only be
// built by one process at a time.
type Engine struct {
	root    string
	cfg     Config
	fs      afero.Fs
	nowFunc NowFunc
}

// Option defines a function that configures an Engine.
type Option func(*Engine)

// WithFs sets a custom filesystem for the engine.
// This is primarily useful for testing with in-memory filesystems.
func WithFs(fs afero.Fs) Option {
	return func(e *Engine) {
		e.fs = fs
	}
}

// WithNowFunc sets a custom time function for the engine.
// This is primarily useful for testing with deterministic build identifiers.
func WithNowFunc(nowFunc NowFunc) Option {
	return func(e *Engine) {
		e.nowFunc = nowFunc
	}
}

// New creates an engine for the project rooted at root.
// The configuration is validated here: malformed glob patterns and invalid
// limits are reported before any output directory is touched.
func New(root string, cfg Config, options ...Option) (*Engine, error) {
	engine := &Engine{
		root:    root,
		cfg:     cfg,
		fs:      afero.NewOsFs(),
		nowFunc: time.Now,
	}

	// Apply options
	for _, option := range options {
		option(engine)
	}

	engine.cfg.applyDefaults()
	if err := engine.cfg.validate(); err != nil {
		return nil, err
	}

	return engine, nil
}

// Root returns the project root the engine was created for.
func (e *Engine) Root() string {
	return e.root
}

// destDir returns the directory that holds one subdirectory per build.
func (e *Engine) destDir() string {
	return filepath.Join(e.root, filepath.FromSlash(e.cfg.DestDir))
}

// destRel returns the destination directory as a root-anchored logical path.
// The tree walk prunes it so builds never pack their own output.
func (e *Engine) destRel() string {
	return "/" + filepath.ToSlash(e.cfg.DestDir)
}

// now returns the current time.
func (e *Engine) now() time.Time {
	return e.nowFunc()
}
