package proj2gpt

import "fmt"

// Build is the outcome of one successful build.
type Build struct {
	ID     string        // build identifier, also the directory name
	Dir    string        // filesystem path of the build directory
	Groups []PackedGroup // packed groups in manifest order
	Diff   []DiffEntry   // non-unchanged group transitions
	Record *BuildRecord  // the manifest that was written
	Stats  Stats
}

// PackedGroup is one group's physical output.
type PackedGroup struct {
	Path  string
	Parts []Part
}

// Stats summarizes a build.
type Stats struct {
	Files  int   // source files packed (frames written)
	Groups int   // groups that produced a container
	Parts  int   // container files written
	Bytes  int64 // container bytes written
}

// DiffReport returns the build's diff report text, exactly as written to
// the diff file.
func (b *Build) DiffReport() string {
	return renderDiff(b.Diff)
}

// Summary returns a one-line human-readable description of the build.
func (b *Build) Summary() string {
	return fmt.Sprintf("build %s: %d files in %d groups (%d parts, %d bytes)",
		b.ID, b.Stats.Files, b.Stats.Groups, b.Stats.Parts, b.Stats.Bytes)
}

// statsOf derives the summary numbers from a finished build.
func statsOf(b *Build, files int) Stats {
	st := Stats{
		Files:  files,
		Groups: len(b.Groups),
	}
	for _, g := range b.Groups {
		st.Parts += len(g.Parts)
		for _, p := range g.Parts {
			st.Bytes += int64(p.Size)
		}
	}
	return st
}
