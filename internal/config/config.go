// Package config loads proj2gpt.ini from a project root and maps it to the
// engine's configuration. A missing file yields the defaults; a file that
// exists but cannot be parsed is a fatal configuration error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"

	"github.com/frontcamp/proj2gpt"
)

// FileName is the configuration file looked up in the project root.
const FileName = "proj2gpt.ini"

// Defaults, matching the original tool.
const (
	DefaultTitle        = "Super-duper project"
	DefaultDescription  = "Short project description"
	DefaultNamesAllowed = "*.cfg;*.css;*.ini;*.js;*.md;*.php;*.py;*.txt;"
	DefaultNamesIgnored = "*.gpt;.git;logs;temp;"
)

// SecretRule is one parsed "replace <path> <original> <replacement>" line
// from the [secrets] section. The engine does not apply these rules itself;
// it only reads pre-authored ".gpt" masked siblings. The rules are parsed
// so the CLI can report them and so their presence enables masking.
type SecretRule struct {
	Base        string
	Original    string
	Replacement string
}

// Settings is the fully resolved configuration for one project.
type Settings struct {
	ProjectTitle string
	ProjectDescr string

	NamesAllowed []string
	NamesIgnored []string
	UseGitignore bool
	MaxFileSize  int64

	DestFolder string
	TxtSizeMax int
	KeepBuilds int

	GroupPaths []string
	GroupRoots []string

	Secrets []SecretRule
}

// Defaults returns the settings used when no configuration file exists.
func Defaults() *Settings {
	return &Settings{
		ProjectTitle: DefaultTitle,
		ProjectDescr: DefaultDescription,
		NamesAllowed: splitList(DefaultNamesAllowed),
		NamesIgnored: splitList(DefaultNamesIgnored),
		UseGitignore: true,
		MaxFileSize:  proj2gpt.DefaultMaxFileSize,
		DestFolder:   proj2gpt.DefaultDestDir,
		TxtSizeMax:   proj2gpt.DefaultMaxPartSize,
	}
}

// Load reads FileName from the project root on the given filesystem.
func Load(fsys afero.Fs, root string) (*Settings, error) {
	s := Defaults()

	data, err := afero.ReadFile(fsys, filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	// Secrets lines have no key/value delimiter, hence boolean keys;
	// shadows keep repeated "replace" keys apart. Semicolons join the
	// list values here, so they must not start inline comments.
	file, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:    true,
		AllowShadows:        true,
		IgnoreInlineComment: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}

	project := file.Section("project")
	s.ProjectTitle = unquote(project.Key("project_title").MustString(s.ProjectTitle))
	s.ProjectDescr = unquote(project.Key("project_descr").MustString(s.ProjectDescr))

	traversal := file.Section("traversal")
	if v := traversal.Key("names_allowed").String(); v != "" {
		s.NamesAllowed = splitList(v)
	}
	if v := traversal.Key("names_ignored").String(); v != "" {
		s.NamesIgnored = splitList(v)
	}
	s.UseGitignore = traversal.Key("use_gitignore").MustInt(1) != 0
	s.MaxFileSize = traversal.Key("max_file_size").MustInt64(s.MaxFileSize)

	generator := file.Section("generator")
	s.DestFolder = unquote(generator.Key("dest_folder").MustString(s.DestFolder))
	s.TxtSizeMax = generator.Key("txt_size_max").MustInt(s.TxtSizeMax)
	s.KeepBuilds = generator.Key("keep_builds").MustInt(0)

	groups := file.Section("groups")
	s.GroupPaths = splitList(groups.Key("paths").String())
	s.GroupRoots = splitList(groups.Key("roots").String())

	s.Secrets = parseSecrets(file.Section("secrets"))

	return s, nil
}

// Engine maps the settings to the engine's plain-value configuration.
// Secrets masking is enabled by the presence of any secrets rule.
func (s *Settings) Engine() proj2gpt.Config {
	return proj2gpt.Config{
		Allow:          s.NamesAllowed,
		Deny:           s.NamesIgnored,
		UseIgnoreFiles: s.UseGitignore,
		MaxFileSize:    s.MaxFileSize,
		GroupPaths:     s.GroupPaths,
		GroupRoots:     s.GroupRoots,
		MaxPartSize:    s.TxtSizeMax,
		KeepBuilds:     s.KeepBuilds,
		MaskSecrets:    len(s.Secrets) > 0,
		DestDir:        s.DestFolder,
	}
}

// Summary renders the resolved settings for display.
func (s *Settings) Summary() string {
	lines := []string{
		"Settings:",
		"  project_title: " + s.ProjectTitle,
		"  project_descr: " + s.ProjectDescr,
		"  names_allowed: " + joinList(s.NamesAllowed),
		"  names_ignored: " + joinList(s.NamesIgnored),
		fmt.Sprintf("  use_gitignore: %v", s.UseGitignore),
		fmt.Sprintf("  max_file_size: %d", s.MaxFileSize),
		"  dest_folder: " + s.DestFolder,
		fmt.Sprintf("  txt_size_max: %d", s.TxtSizeMax),
		fmt.Sprintf("  keep_builds: %d", s.KeepBuilds),
		"  group_paths: " + joinList(s.GroupPaths),
		"  group_roots: " + joinList(s.GroupRoots),
		fmt.Sprintf("  secrets rules: %d", len(s.Secrets)),
	}
	return strings.Join(lines, "\n")
}

// parseSecrets reads "replace <path> <original> <replacement>" lines.
// Lines that do not fit the shape are skipped, as in the original tool.
func parseSecrets(section *ini.Section) []SecretRule {
	var rules []SecretRule
	for _, key := range section.Keys() {
		for _, value := range key.ValueWithShadows() {
			line := key.Name()
			if value != "" && value != "true" {
				line += " " + value
			}
			parts := strings.Fields(line)
			if len(parts) < 4 || !strings.EqualFold(parts[0], "replace") {
				continue
			}
			rules = append(rules, SecretRule{
				Base:        parts[1],
				Original:    parts[2],
				Replacement: parts[3],
			})
		}
	}
	return rules
}

// splitList parses the semicolon-joined lists the INI format uses.
func splitList(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func joinList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ";")
}

// unquote strips one optional layer of single or double quotes.
func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
