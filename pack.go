package proj2gpt

import (
	"fmt"
	"strings"
)

// DefaultContainerBase is the container name stem of the default group.
const DefaultContainerBase = "context"

// containerExt is the extension of every container part.
const containerExt = ".txt"

// PackedFrame is a frame placed inside a part at a byte offset. Offsets
// start at zero in every part and grow by the preceding frames' sizes.
type PackedFrame struct {
	Frame  *Frame
	Offset int
}

// Part is one physical container file. Its size never exceeds the
// configured cap unless it holds exactly one frame larger than the cap;
// frames are never split across parts.
type Part struct {
	Name   string // file name inside the build directory
	Frames []PackedFrame
	Size   int // sum of the frames' sizes
}

// Render returns the part's full file content.
func (p *Part) Render() string {
	var buf strings.Builder
	buf.Grow(p.Size)
	for _, pf := range p.Frames {
		buf.WriteString(pf.Frame.Render())
	}
	return buf.String()
}

// packGroup splits a group's frames into size-bounded parts and names
// them. A group with one part gets the bare container name; with several,
// each part carries a two-digit 1-based sequence number.
func packGroup(g Group, maxPartSize int) []Part {
	var parts []Part
	var cur Part

	for _, fr := range g.Frames {
		if len(cur.Frames) > 0 && cur.Size+fr.Size > maxPartSize {
			parts = append(parts, cur)
			cur = Part{}
		}
		cur.Frames = append(cur.Frames, PackedFrame{Frame: fr, Offset: cur.Size})
		cur.Size += fr.Size
	}
	if len(cur.Frames) > 0 {
		parts = append(parts, cur)
	}

	base := containerBase(g.Path)
	for i := range parts {
		parts[i].Name = partName(base, i, len(parts))
	}
	return parts
}

// containerBase derives a container name stem from a group's logical path.
// The default group maps to DefaultContainerBase; named groups flatten
// their path separators: "/src/app" becomes "src_app".
func containerBase(groupPath string) string {
	if groupPath == DefaultGroupPath {
		return DefaultContainerBase
	}
	return strings.ReplaceAll(strings.Trim(groupPath, "/"), "/", "_")
}

// partName names one part of a container.
func partName(base string, index, total int) string {
	if total == 1 {
		return base + containerExt
	}
	return fmt.Sprintf("%s.%02d%s", base, index+1, containerExt)
}
