package proj2gpt

import (
	"fmt"
	"sort"
	"strings"
)

// DiffFileName is the diff report written into every build directory.
const DiffFileName = "diff.txt"

// NoDifferences is the report body when nothing changed between builds, or
// when there is no previous build to compare against.
const NoDifferences = "No differences between last builds."

// DiffKind classifies a group transition between two builds. Unchanged
// groups are omitted from the report entirely.
type DiffKind int

const (
	DiffNew DiffKind = iota
	DiffRemoved
	DiffChanged
)

// String returns the report word for the kind.
func (k DiffKind) String() string {
	switch k {
	case DiffNew:
		return "New"
	case DiffRemoved:
		return "Removed"
	case DiffChanged:
		return "Changed"
	default:
		return fmt.Sprintf("DiffKind(%d)", int(k))
	}
}

// DiffEntry is one non-unchanged group transition.
type DiffEntry struct {
	Kind      DiffKind
	GroupPath string
	Container string
}

// diffBuilds compares two manifests group by group. Group identity is the
// logical path; change detection uses the aggregate fingerprint over each
// group's (path, fingerprint) pairs. prev may be nil for the first build,
// which yields no entries. Entries come back sorted by group path.
func diffBuilds(prev, cur *BuildRecord) []DiffEntry {
	if prev == nil {
		return nil
	}

	prevByPath := make(map[string]*GroupRecord, len(prev.Groups))
	for i := range prev.Groups {
		prevByPath[prev.Groups[i].Path] = &prev.Groups[i]
	}
	curByPath := make(map[string]*GroupRecord, len(cur.Groups))
	for i := range cur.Groups {
		curByPath[cur.Groups[i].Path] = &cur.Groups[i]
	}

	paths := make([]string, 0, len(prevByPath)+len(curByPath))
	for p := range curByPath {
		paths = append(paths, p)
	}
	for p := range prevByPath {
		if _, ok := curByPath[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var entries []DiffEntry
	for _, p := range paths {
		pg, inPrev := prevByPath[p]
		cg, inCur := curByPath[p]

		switch {
		case inCur && !inPrev:
			entries = append(entries, DiffEntry{Kind: DiffNew, GroupPath: p, Container: cg.Container()})
		case inPrev && !inCur:
			entries = append(entries, DiffEntry{Kind: DiffRemoved, GroupPath: p, Container: pg.Container()})
		case aggregateFingerprint(pg.Files) != aggregateFingerprint(cg.Files):
			entries = append(entries, DiffEntry{Kind: DiffChanged, GroupPath: p, Container: cg.Container()})
		}
	}
	return entries
}

// renderDiff formats the diff report, one line per changed group, or the
// NoDifferences line when there is nothing to report.
func renderDiff(entries []DiffEntry) string {
	if len(entries) == 0 {
		return NoDifferences + "\n"
	}

	var buf strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&buf, "%s group: %s -> %s\n", e.Kind, e.GroupPath, e.Container)
	}
	return buf.String()
}
