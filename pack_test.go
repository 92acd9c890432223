package proj2gpt

import (
	"strings"
	"testing"
)

// sizedFrame builds a frame whose total size is exact, for packing math.
func sizedFrame(rel string, size int) *Frame {
	fr := &Frame{Path: rel, Fingerprint: fingerprint([]byte(rel))}
	pad := size - len(fr.Header()) - len(fr.Footer()) - 1
	if pad < 0 {
		panic("sizedFrame: size too small for the frame overhead")
	}
	fr.Body = strings.Repeat("x", pad) + "\n"
	fr.Size = len(fr.Header()) + len(fr.Body) + len(fr.Footer())
	if fr.Size != size {
		panic("sizedFrame: size mismatch")
	}
	return fr
}

func TestPackGroup(t *testing.T) {
	t.Run("single part, no suffix", func(t *testing.T) {
		g := Group{Path: DefaultGroupPath, Frames: []*Frame{
			sizedFrame("/a.txt", 100),
			sizedFrame("/b.txt", 100),
		}}
		parts := packGroup(g, 1000)

		if len(parts) != 1 {
			t.Fatalf("parts = %d, want 1", len(parts))
		}
		if parts[0].Name != "context.txt" {
			t.Fatalf("name = %s, want context.txt", parts[0].Name)
		}
		if parts[0].Size != 200 {
			t.Fatalf("size = %d, want 200", parts[0].Size)
		}
	})

	t.Run("split into numbered parts", func(t *testing.T) {
		g := Group{Path: "/src/app", Frames: []*Frame{
			sizedFrame("/src/app/a.txt", 100),
			sizedFrame("/src/app/b.txt", 100),
			sizedFrame("/src/app/c.txt", 100),
		}}
		parts := packGroup(g, 250)

		if len(parts) != 2 {
			t.Fatalf("parts = %d, want 2", len(parts))
		}
		if parts[0].Name != "src_app.01.txt" || parts[1].Name != "src_app.02.txt" {
			t.Fatalf("names = %s, %s; want src_app.01.txt, src_app.02.txt", parts[0].Name, parts[1].Name)
		}
		if len(parts[0].Frames) != 2 || len(parts[1].Frames) != 1 {
			t.Fatalf("frame split = %d/%d, want 2/1", len(parts[0].Frames), len(parts[1].Frames))
		}
	})

	t.Run("offsets are cumulative and reset per part", func(t *testing.T) {
		g := Group{Path: DefaultGroupPath, Frames: []*Frame{
			sizedFrame("/a.txt", 100),
			sizedFrame("/b.txt", 120),
			sizedFrame("/c.txt", 100),
		}}
		parts := packGroup(g, 220)

		if len(parts) != 2 {
			t.Fatalf("parts = %d, want 2", len(parts))
		}
		first := parts[0].Frames
		if first[0].Offset != 0 || first[1].Offset != 100 {
			t.Fatalf("first part offsets = %d, %d; want 0, 100", first[0].Offset, first[1].Offset)
		}
		if parts[1].Frames[0].Offset != 0 {
			t.Fatalf("second part offset = %d, want reset to 0", parts[1].Frames[0].Offset)
		}
	})

	t.Run("oversized frame gets a part of its own", func(t *testing.T) {
		g := Group{Path: DefaultGroupPath, Frames: []*Frame{
			sizedFrame("/a.txt", 100),
			sizedFrame("/huge.txt", 500),
			sizedFrame("/b.txt", 100),
		}}
		parts := packGroup(g, 200)

		if len(parts) != 3 {
			t.Fatalf("parts = %d, want 3", len(parts))
		}
		if len(parts[1].Frames) != 1 || parts[1].Frames[0].Frame.Path != "/huge.txt" {
			t.Fatal("expected the oversized frame to sit alone in its part")
		}
		// Frame atomicity: every part is within the cap unless it holds
		// exactly one frame.
		for _, p := range parts {
			if p.Size > 200 && len(p.Frames) != 1 {
				t.Fatalf("part %s exceeds the cap with %d frames", p.Name, len(p.Frames))
			}
		}
	})

	t.Run("rendered part length matches size", func(t *testing.T) {
		g := Group{Path: DefaultGroupPath, Frames: []*Frame{
			sizedFrame("/a.txt", 90),
			sizedFrame("/b.txt", 110),
		}}
		parts := packGroup(g, 1000)
		if got := len(parts[0].Render()); got != parts[0].Size {
			t.Fatalf("rendered length = %d, size = %d", got, parts[0].Size)
		}
	})
}

func TestContainerBase(t *testing.T) {
	cases := map[string]string{
		"/":         "context",
		"/src":      "src",
		"/src/app":  "src_app",
		"/a/b/c":    "a_b_c",
	}
	for path, want := range cases {
		if got := containerBase(path); got != want {
			t.Fatalf("containerBase(%q) = %s, want %s", path, got, want)
		}
	}
}
