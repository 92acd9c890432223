package proj2gpt

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/frontcamp/proj2gpt/internal/logger"
)

// IgnoreFileName is the ignore file honoured when Config.UseIgnoreFiles is
// enabled.
const IgnoreFileName = ".gitignore"

// SourceFile identifies one candidate file found by the tree walk.
// Content is read later, once, by the frame builder.
type SourceFile struct {
	Path string // filesystem path under the project root
	Rel  string // root-anchored logical path, slash separated
	Size int64  // byte size as reported by the walk
}

// scanTree walks the project root depth-first and returns the included
// files sorted by logical path. Symbolic links are never followed or
// included, the destination directory is always pruned, and files above
// the configured size cap are skipped without error.
func (e *Engine) scanTree(filter *PathFilter) ([]SourceFile, error) {
	var files []SourceFile

	var walk func(dir, rel string) error
	walk = func(dir, rel string) error {
		if e.cfg.UseIgnoreFiles {
			filter.AddIgnoreRules(rel, e.readIgnoreFile(dir))
		}

		entries, err := readDirLstat(e.fs, dir)
		if err != nil {
			if rel == "/" {
				return fmt.Errorf("read project root: %w", err)
			}
			// An unreadable subdirectory degrades to an empty one.
			logger.Warn("skipping unreadable directory %s: %v", rel, err)
			return nil
		}

		for _, info := range entries {
			if info.Mode()&os.ModeSymlink != 0 {
				continue
			}

			childRel := joinLogical(rel, info.Name())
			childPath := filepath.Join(dir, info.Name())

			if info.IsDir() {
				if childRel == e.destRel() || filter.Excluded(childRel) {
					continue
				}
				if err := walk(childPath, childRel); err != nil {
					return err
				}
				continue
			}

			if !filter.Include(childRel) {
				continue
			}
			if info.Size() > e.cfg.MaxFileSize {
				logger.Warn("skipping %s: %d bytes exceeds the %d byte limit",
					childRel, info.Size(), e.cfg.MaxFileSize)
				continue
			}

			files = append(files, SourceFile{
				Path: childPath,
				Rel:  childRel,
				Size: info.Size(),
			})
		}
		return nil
	}

	if err := walk(e.root, "/"); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })
	logger.Debug("scan included %d files", len(files))
	return files, nil
}

// readIgnoreFile loads the ignore patterns found in dir, skipping blank
// lines and comments. A missing ignore file yields no patterns.
func (e *Engine) readIgnoreFile(dir string) []string {
	f, err := e.fs.Open(filepath.Join(dir, IgnoreFileName))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// readDirLstat lists dir without following symbolic links, sorted by name.
func readDirLstat(fs afero.Fs, dir string) ([]os.FileInfo, error) {
	f, err := fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.Readdir(-1)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// joinLogical appends one path segment to a root-anchored logical path.
func joinLogical(rel, name string) string {
	if rel == "/" {
		return "/" + name
	}
	return rel + "/" + name
}
