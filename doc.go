/*
Package proj2gpt packs the text files of a project tree into deterministic,
append-only container files sized for a large-language-model context
window, and reports what changed from the previous build.

# Overview

One build scans the project root, filters paths through allow/deny glob
patterns and optional .gitignore rules, serializes every included file into
a self-describing frame, packs frames into size-bounded container parts per
logical group, writes a manifest (the table of contents) and a diff report
against the previous build, and finally prunes old build directories.

# Determinism

Two builds over an unchanged tree with unchanged configuration produce
byte-identical containers and manifests; only the build identifier differs.
This falls out of a few rules:

  - files are visited and packed in sorted logical-path order
  - line endings are normalized to LF before anything is measured
  - fingerprints are the first 10 hex characters of the SHA-256 digest of
    the normalized body
  - offsets within a part equal the cumulative size of preceding frames

# Basic Usage

Creating an engine and running a build:

	engine, err := proj2gpt.New(".", proj2gpt.Config{
	    Allow: []string{"*.go", "*.md"},
	    Deny:  []string{".git"},
	})
	if err != nil {
	    log.Fatalf("Bad configuration: %v", err)
	}

	build, err := engine.Build()
	if err != nil {
	    log.Fatalf("Build failed: %v", err)
	}
	fmt.Println(build.Summary())
	fmt.Print(build.DiffReport())

# Groups

Files map to exactly one group: the most specific configured group path
that prefixes the file's logical path, or the default root group. Group
roots expand dynamically, one group per immediate subdirectory found at
build time. Each group is packed into its own container, split into
numbered parts when it outgrows Config.MaxPartSize.

# Degradation

A file that cannot be read, is not valid UTF-8, or is empty still produces
a frame; its body is a placeholder line and the build carries on. Only
configuration errors (reported by New) and output errors (reported by
Build as *BuildError) are fatal, and a fatal build never touches the
directories of prior builds.

# File Structure

The destination directory holds one directory per build:

	proj2gpt/
	├── 20260830-101500/
	│   ├── context.txt
	│   ├── src_app.txt
	│   ├── toc.txt
	│   └── diff.txt
	└── 20260830-114200/
	    └── ...

# Configuration Options

The engine takes functional options in addition to Config:

	engine, err := proj2gpt.New(root, cfg,
	    proj2gpt.WithFs(afero.NewMemMapFs()),
	    proj2gpt.WithNowFunc(func() time.Time { return fixed }),
	)
*/
package proj2gpt
