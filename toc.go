package proj2gpt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TocFileName is the manifest file written into every build directory.
// The manifest doubles as the persisted state the next build diffs against.
const TocFileName = "toc.txt"

// BuildRecord is the parsed or assembled form of one build's manifest:
// the build identifier plus every group with its containers and frames.
type BuildRecord struct {
	ID     string
	Groups []GroupRecord
}

// GroupRecord is one group's slice of the manifest.
type GroupRecord struct {
	Path       string   // the group's logical path
	Containers []string // part file names, in order
	Files      []FileRecord
}

// FileRecord is one frame's manifest line. Offsets restart at zero at the
// start of each part.
type FileRecord struct {
	Path   string
	Offset int
	Size   int
	Hash   string
}

// Container returns the name that represents the group in reports: its
// first (often only) part.
func (g *GroupRecord) Container() string {
	if len(g.Containers) == 0 {
		return ""
	}
	return g.Containers[0]
}

// writeTOC renders the manifest in deterministic group-then-file order.
func writeTOC(w io.Writer, rec *BuildRecord) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "TOC BUILD: %s\n", rec.ID)
	for _, g := range rec.Groups {
		fmt.Fprintf(bw, "GROUP ORIG_PATH: %q; CONTAINER: %q\n", g.Path, strings.Join(g.Containers, ", "))
		for _, f := range g.Files {
			fmt.Fprintf(bw, "FILE PATH: %q; OFFSET: %d; SIZE: %d; HASH: %s\n", f.Path, f.Offset, f.Size, f.Hash)
		}
	}
	return bw.Flush()
}

// parseTOC reads a manifest back into a BuildRecord. It accepts exactly
// what writeTOC produces; anything else is an error, which callers treat
// as "no usable previous build".
func parseTOC(r io.Reader) (*BuildRecord, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	rec := &BuildRecord{}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "TOC BUILD: "):
			rec.ID = strings.TrimPrefix(line, "TOC BUILD: ")

		case strings.HasPrefix(line, "GROUP ORIG_PATH: "):
			rest := strings.TrimPrefix(line, "GROUP ORIG_PATH: ")
			path, rest, err := cutQuoted(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: group path: %w", lineNo, err)
			}
			rest = strings.TrimPrefix(rest, "; CONTAINER: ")
			containers, _, err := cutQuoted(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: container: %w", lineNo, err)
			}
			g := GroupRecord{Path: path}
			for _, name := range strings.Split(containers, ", ") {
				if name != "" {
					g.Containers = append(g.Containers, name)
				}
			}
			rec.Groups = append(rec.Groups, g)

		case strings.HasPrefix(line, "FILE PATH: "):
			if len(rec.Groups) == 0 {
				return nil, fmt.Errorf("line %d: file entry before any group", lineNo)
			}
			rest := strings.TrimPrefix(line, "FILE PATH: ")
			path, rest, err := cutQuoted(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: file path: %w", lineNo, err)
			}
			var f FileRecord
			f.Path = path
			if _, err := fmt.Sscanf(rest, "; OFFSET: %d; SIZE: %d; HASH: %s", &f.Offset, &f.Size, &f.Hash); err != nil {
				return nil, fmt.Errorf("line %d: file entry: %w", lineNo, err)
			}
			g := &rec.Groups[len(rec.Groups)-1]
			g.Files = append(g.Files, f)

		default:
			return nil, fmt.Errorf("line %d: unexpected line %q", lineNo, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("manifest has no build line")
	}
	return rec, nil
}

// cutQuoted consumes one leading double-quoted value and returns it with
// the remainder of the line.
func cutQuoted(s string) (value, rest string, err error) {
	if !strings.HasPrefix(s, `"`) {
		return "", "", fmt.Errorf("expected quoted value in %q", s)
	}
	end := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			end = i
			break
		}
	}
	if end < 0 {
		return "", "", fmt.Errorf("unterminated quoted value in %q", s)
	}
	value, err = strconv.Unquote(s[:end+1])
	if err != nil {
		return "", "", err
	}
	return value, s[end+1:], nil
}
