package proj2gpt

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// buildIDFormat lays out build identifiers so lexicographic and
// chronological order agree.
const buildIDFormat = "20060102-150405"

// buildDirPattern recognizes build directories inside the destination
// directory, including the rare same-second collision suffix.
var buildDirPattern = regexp.MustCompile(`^\d{8}-\d{6}(-\d+)?$`)

// Build runs one complete build: scan, group, frame, pack, manifest, diff,
// retention. The previous build's manifest is consumed before anything is
// written and retention runs last, so a failed build never corrupts prior
// ones. Fatal failures after the identifier is assigned come back as a
// *BuildError carrying that identifier.
func (e *Engine) Build() (*Build, error) {
	filter := NewPathFilter(e.cfg.Allow, e.cfg.Deny)
	files, err := e.scanTree(filter)
	if err != nil {
		return nil, err
	}

	frames := make([]*Frame, len(files))
	for i, src := range files {
		frames[i] = e.buildFrame(src)
	}

	groups := assignGroups(frames, e.groupPaths())

	prev := e.previousRecord()

	id := e.newBuildID()
	rec := &BuildRecord{ID: id}
	packed := make([]PackedGroup, 0, len(groups))
	for _, g := range groups {
		parts := packGroup(g, e.cfg.MaxPartSize)
		packed = append(packed, PackedGroup{Path: g.Path, Parts: parts})

		gr := GroupRecord{Path: g.Path}
		for _, part := range parts {
			gr.Containers = append(gr.Containers, part.Name)
			for _, pf := range part.Frames {
				gr.Files = append(gr.Files, FileRecord{
					Path:   pf.Frame.Path,
					Offset: pf.Offset,
					Size:   pf.Frame.Size,
					Hash:   pf.Frame.Fingerprint,
				})
			}
		}
		rec.Groups = append(rec.Groups, gr)
	}

	diff := diffBuilds(prev, rec)

	dir := filepath.Join(e.destDir(), id)
	if err := e.writeOutputs(dir, id, rec, packed, diff); err != nil {
		// Leave prior builds alone; only the new directory is removed.
		_ = e.fs.RemoveAll(dir)
		return nil, &BuildError{ID: id, Err: err}
	}

	if err := e.pruneBuilds(id); err != nil {
		return nil, &BuildError{ID: id, Err: err}
	}

	build := &Build{
		ID:     id,
		Dir:    dir,
		Groups: packed,
		Diff:   diff,
		Record: rec,
	}
	build.Stats = statsOf(build, len(files))
	return build, nil
}

// writeOutputs creates the build directory and writes every container
// part, the manifest and the diff report into it.
func (e *Engine) writeOutputs(dir, id string, rec *BuildRecord, packed []PackedGroup, diff []DiffEntry) error {
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create build directory: %w", err)
	}

	for _, pg := range packed {
		for _, part := range pg.Parts {
			path := filepath.Join(dir, part.Name)
			if err := afero.WriteFile(e.fs, path, []byte(part.Render()), 0o644); err != nil {
				return fmt.Errorf("write container %s: %w", part.Name, err)
			}
		}
	}

	var toc strings.Builder
	if err := writeTOC(&toc, rec); err != nil {
		return fmt.Errorf("render manifest: %w", err)
	}
	if err := afero.WriteFile(e.fs, filepath.Join(dir, TocFileName), []byte(toc.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	if err := afero.WriteFile(e.fs, filepath.Join(dir, DiffFileName), []byte(renderDiff(diff)), 0o644); err != nil {
		return fmt.Errorf("write diff report: %w", err)
	}
	return nil
}

// newBuildID derives the build identifier from the current time. When a
// directory for the identifier already exists (two builds within one
// second) a zero-padded numeric suffix keeps identifiers unique while
// preserving lexicographic order.
func (e *Engine) newBuildID() string {
	base := e.now().UTC().Format(buildIDFormat)
	id := base
	for n := 2; ; n++ {
		exists, _ := afero.DirExists(e.fs, filepath.Join(e.destDir(), id))
		if !exists {
			return id
		}
		id = fmt.Sprintf("%s-%02d", base, n)
	}
}

// listBuildDirs returns the build directories under the destination
// directory, sorted oldest first. A missing destination yields none.
func (e *Engine) listBuildDirs() []string {
	entries, err := readDirLstat(e.fs, e.destDir())
	if err != nil {
		return nil
	}

	var dirs []string
	for _, info := range entries {
		if info.IsDir() && buildDirPattern.MatchString(info.Name()) {
			dirs = append(dirs, info.Name())
		}
	}
	sort.Strings(dirs)
	return dirs
}

// previousRecord loads the newest prior build's manifest. A build with a
// missing or unparseable manifest is skipped, falling back to older ones;
// with nothing usable the build proceeds as a first build.
func (e *Engine) previousRecord() *BuildRecord {
	dirs := e.listBuildDirs()
	for i := len(dirs) - 1; i >= 0; i-- {
		f, err := e.fs.Open(filepath.Join(e.destDir(), dirs[i], TocFileName))
		if err != nil {
			continue
		}
		rec, err := parseTOC(f)
		f.Close()
		if err != nil {
			continue
		}
		return rec
	}
	return nil
}

// LastDiff returns the diff report of the newest build, read back from
// its diff file. With no builds present it reports ErrNoBuilds.
func (e *Engine) LastDiff() (string, error) {
	dirs := e.listBuildDirs()
	if len(dirs) == 0 {
		return "", ErrNoBuilds
	}
	newest := dirs[len(dirs)-1]
	data, err := afero.ReadFile(e.fs, filepath.Join(e.destDir(), newest, DiffFileName))
	if err != nil {
		return "", fmt.Errorf("read diff of build %s: %w", newest, err)
	}
	return string(data), nil
}

// pruneBuilds enforces the retention policy after a successful build:
// keep the KeepBuilds newest build directories, never the one just
// produced among the deletions. KeepBuilds zero keeps everything.
func (e *Engine) pruneBuilds(current string) error {
	if e.cfg.KeepBuilds <= 0 {
		return nil
	}

	dirs := e.listBuildDirs()
	excess := len(dirs) - e.cfg.KeepBuilds
	for _, d := range dirs {
		if excess <= 0 {
			break
		}
		if d == current {
			continue
		}
		if err := e.fs.RemoveAll(filepath.Join(e.destDir(), d)); err != nil {
			return fmt.Errorf("prune build %s: %w", d, err)
		}
		excess--
	}
	return nil
}
