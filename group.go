package proj2gpt

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DefaultGroupPath is the logical path of the group that collects every
// file not claimed by an explicit or expanded group.
const DefaultGroupPath = "/"

// Group is a logical partition of the project: the frames of all files
// under one group path, in deterministic order.
type Group struct {
	Path   string   // root-anchored logical path, "/" for the default group
	Frames []*Frame // sorted by frame path
}

// groupPaths returns the concrete group paths for this build: the explicit
// paths in configuration order, then each group root expanded into one path
// per immediate subdirectory found at build time. Expansion is recomputed
// every build so subdirectories may appear or disappear.
func (e *Engine) groupPaths() []string {
	paths := make([]string, 0, len(e.cfg.GroupPaths))
	paths = append(paths, e.cfg.GroupPaths...)

	for _, root := range e.cfg.GroupRoots {
		dir := filepath.Join(e.root, filepath.FromSlash(strings.TrimPrefix(root, "/")))
		entries, err := readDirLstat(e.fs, dir)
		if err != nil {
			// A missing or unreadable group root expands to nothing.
			continue
		}
		for _, info := range entries {
			if !info.IsDir() || info.Mode()&os.ModeSymlink != 0 {
				continue
			}
			paths = append(paths, joinLogical(root, info.Name()))
		}
	}
	return paths
}

// assignGroups maps every frame to exactly one group: the group with the
// longest path that is a directory prefix of the frame's path, falling
// back to the default group. Between equal-length prefixes the one earlier
// in configuration order wins. Groups that receive no frames are dropped.
// The result is sorted by group path; frame order within a group follows
// the already-sorted input.
func assignGroups(frames []*Frame, groupPaths []string) []Group {
	byPath := make(map[string]*Group)

	for _, fr := range frames {
		target := DefaultGroupPath
		best := -1
		for _, gp := range groupPaths {
			if !strings.HasPrefix(fr.Path, gp+"/") {
				continue
			}
			if len(gp) > best {
				best = len(gp)
				target = gp
			}
		}

		g, ok := byPath[target]
		if !ok {
			g = &Group{Path: target}
			byPath[target] = g
		}
		g.Frames = append(g.Frames, fr)
	}

	groups := make([]Group, 0, len(byPath))
	for _, g := range byPath {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Path < groups[j].Path })
	return groups
}

// aggregateFingerprint digests a group's sorted (path, fingerprint) pairs.
// It is computed from manifest records, so the current build and a parsed
// previous manifest produce comparable values.
func aggregateFingerprint(files []FileRecord) string {
	sorted := make([]FileRecord, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	d := xxhash.New()
	for _, f := range sorted {
		d.WriteString(f.Path)
		d.WriteString(":")
		d.WriteString(f.Hash)
		d.WriteString("\n")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
