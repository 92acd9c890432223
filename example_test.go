package proj2gpt_test

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/afero"

	"github.com/frontcamp/proj2gpt"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}

func Example() {
	memFs := afero.NewMemMapFs()
	afero.WriteFile(memFs, "proj/main.go", []byte("package main\n"), 0o644)
	afero.WriteFile(memFs, "proj/README.md", []byte("# demo\n"), 0o644)

	engine, err := proj2gpt.New("proj", proj2gpt.Config{
		Allow: []string{"*.go", "*.md"},
	}, proj2gpt.WithFs(memFs), proj2gpt.WithNowFunc(fixedClock))
	if err != nil {
		log.Fatalf("Bad configuration: %v", err)
	}

	build, err := engine.Build()
	if err != nil {
		log.Fatalf("Build failed: %v", err)
	}

	fmt.Println(build.Summary())
	fmt.Print(build.DiffReport())
	// Output:
	// build 20260830-120000: 2 files in 1 groups (1 parts, 144 bytes)
	// No differences between last builds.
}

func Example_diff() {
	memFs := afero.NewMemMapFs()
	afero.WriteFile(memFs, "proj/a.txt", []byte("hello"), 0o644)

	builds := 0
	clock := func() time.Time {
		builds++
		return time.Date(2026, 8, 30, 12, 0, builds-1, 0, time.UTC)
	}

	engine, err := proj2gpt.New("proj", proj2gpt.Config{
		Allow: []string{"*.txt"},
	}, proj2gpt.WithFs(memFs), proj2gpt.WithNowFunc(proj2gpt.NowFunc(clock)))
	if err != nil {
		log.Fatalf("Bad configuration: %v", err)
	}

	if _, err := engine.Build(); err != nil {
		log.Fatalf("Build failed: %v", err)
	}

	afero.WriteFile(memFs, "proj/a.txt", []byte("hello!"), 0o644)

	second, err := engine.Build()
	if err != nil {
		log.Fatalf("Build failed: %v", err)
	}
	fmt.Print(second.DiffReport())
	// Output:
	// Changed group: / -> context.txt
}
