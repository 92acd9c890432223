package proj2gpt

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// PathFilter decides whether a root-anchored logical path is part of the
// build. A file is included when it matches at least one allow pattern,
// matches no deny pattern, and is not excluded by an applicable ignore-file
// rule. Directories are tested against deny and ignore rules only, so the
// tree walk can prune whole subtrees.
type PathFilter struct {
	allow  []string
	deny   []string
	ignore []ignoreRule
}

// ignoreRule is one pattern from an ignore file, scoped to the directory
// the ignore file lives in. Rules are kept in discovery order (root first);
// evaluation runs innermost-first.
type ignoreRule struct {
	scope   string // root-anchored logical path of the rule's directory
	pattern string
}

// NewPathFilter creates a filter from allow and deny glob patterns.
// Patterns are assumed to be validated already (see Config.validate).
func NewPathFilter(allow, deny []string) *PathFilter {
	return &PathFilter{
		allow: allow,
		deny:  deny,
	}
}

// AddIgnoreRules registers ignore-file patterns scoped to the given
// directory. The tree walk calls this as it discovers ignore files.
func (f *PathFilter) AddIgnoreRules(scope string, patterns []string) {
	for _, p := range patterns {
		// Trailing separators mark directory patterns in gitignore
		// syntax; matching against the path and its ancestors below
		// covers that case, so the marker is dropped.
		p = strings.TrimSuffix(strings.ReplaceAll(p, "\\", "/"), "/")
		if p == "" {
			continue
		}
		f.ignore = append(f.ignore, ignoreRule{scope: scope, pattern: p})
	}
}

// Include reports whether a file at rel belongs in the build.
func (f *PathFilter) Include(rel string) bool {
	return f.allowed(rel) && !f.Excluded(rel)
}

// Excluded reports whether rel, or any directory containing it, matches a
// deny pattern or an ignore-file rule. It works for files and directories
// alike and does not depend on traversal order.
func (f *PathFilter) Excluded(rel string) bool {
	for _, pattern := range f.deny {
		if matchesSelfOrAncestor(pattern, rel) {
			return true
		}
	}
	return f.ignoredBy(rel)
}

// allowed reports whether rel matches at least one allow pattern.
func (f *PathFilter) allowed(rel string) bool {
	for _, pattern := range f.allow {
		if matchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// ignoredBy evaluates ignore-file rules innermost-first. A rule only
// applies to paths under its scope directory and matches relative to it.
func (f *PathFilter) ignoredBy(rel string) bool {
	for i := len(f.ignore) - 1; i >= 0; i-- {
		rule := f.ignore[i]
		sub, ok := relativeTo(rel, rule.scope)
		if !ok {
			continue
		}
		if matchesSelfOrAncestor(rule.pattern, sub) {
			return true
		}
	}
	return false
}

// matchGlob matches one glob pattern against a root-anchored logical path.
// A pattern without a separator matches the basename anywhere in the tree;
// a pattern with a separator is anchored to the root. Only '*', '?' and
// character classes are supported; '**' and '!' have no special meaning.
func matchGlob(pattern, rel string) bool {
	pattern = strings.ReplaceAll(pattern, "\\", "/")

	if !strings.Contains(pattern, "/") {
		ok, _ := filepath.Match(pattern, path.Base(rel))
		return ok
	}

	patSegs := splitLogical(pattern)
	relSegs := splitLogical(rel)
	if len(patSegs) != len(relSegs) {
		return false
	}
	for i, seg := range patSegs {
		ok, _ := filepath.Match(seg, relSegs[i])
		if !ok {
			return false
		}
	}
	return true
}

// matchesSelfOrAncestor matches the pattern against rel and every ancestor
// directory of rel, so a pattern naming a directory excludes its subtree.
func matchesSelfOrAncestor(pattern, rel string) bool {
	for p := rel; p != "/" && p != "."; p = path.Dir(p) {
		if matchGlob(pattern, p) {
			return true
		}
	}
	return false
}

// relativeTo re-anchors rel below the scope directory: rel "/a/b/c" with
// scope "/a" yields "/b/c". ok is false when rel is not under scope.
func relativeTo(rel, scope string) (string, bool) {
	if scope == "/" {
		return rel, true
	}
	if !strings.HasPrefix(rel, scope+"/") {
		return "", false
	}
	return rel[len(scope):], true
}

// splitLogical splits a root-anchored logical path into its segments.
func splitLogical(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

// validateGlob reports malformed glob syntax up front. filepath.Match only
// detects an unterminated character class when the scan happens to reach
// it, which would turn a configuration mistake into silently unmatched
// files. Backslashes are treated as path separators, never as escapes.
func validateGlob(pattern string) error {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '[' {
			continue
		}
		j := i + 1
		if j < len(pattern) && pattern[j] == '^' {
			j++
		}
		first := j
		closed := false
		for ; j < len(pattern); j++ {
			if pattern[j] == ']' && j > first {
				closed = true
				break
			}
		}
		if !closed {
			return fmt.Errorf("%w: unterminated character class", ErrBadPattern)
		}
		i = j
	}
	return nil
}
