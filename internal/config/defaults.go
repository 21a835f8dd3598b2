package config

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/srcpack-go/internal/domain"
)

// Default values
const (
	DefaultPreset      = "basic"
	DefaultCompression = "deflate"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// Preset is a named bundle of default exclusion patterns plus the
// .git handling policy.
type Preset struct {
	Name        string
	Description string
	Patterns    []string
	KeepGitDir  bool
}

// Baseline excludes shared by every preset: build output, dependency
// caches, editor and OS noise.
var commonPatterns = []string{
	"__pycache__/",
	"*.pyc",
	"*.pyo",
	".pytest_cache/",
	".mypy_cache/",
	".tox/",
	"venv/",
	".venv/",
	"*.egg-info/",
	"node_modules/",
	"dist/",
	"build/",
	"target/",
	"coverage/",
	".idea/",
	".vscode/",
	".DS_Store",
	"Thumbs.db",
	"*.log",
	"*.tmp",
	"*.swp",
}

// archivePatterns excludes large binary payloads.
var archivePatterns = []string{
	"*.zip",
	"*.tar",
	"*.tar.gz",
	"*.tgz",
	"*.rar",
	"*.7z",
	"*.iso",
	"*.exe",
	"*.dll",
	"*.so",
	"*.dylib",
	"*.bin",
}

// presets is the built-in preset table, constructed once at startup
// and read-only afterwards.
var presets = map[string]Preset{
	"basic": {
		Name:        "basic",
		Description: "Excludes common build artifacts and caches; suits most projects",
		Patterns:    commonPatterns,
	},
	"git-friendly": {
		Name:        "git-friendly",
		Description: "Keeps the .git directory but excludes large binaries",
		Patterns:    append(append([]string{}, commonPatterns...), archivePatterns...),
		KeepGitDir:  true,
	},
	"complete": {
		Name:        "complete",
		Description: "Excludes everything unnecessary including .git; suits releases",
		Patterns: append(append(append([]string{}, commonPatterns...), archivePatterns...),
			".github/",
			".gitlab-ci.yml",
			".dockerignore",
			"*.bak",
			"*.orig",
		),
	},
	"lightweight": {
		Name:        "lightweight",
		Description: "Keeps only core source code; suits review and study",
		Patterns: append(append(append([]string{}, commonPatterns...), archivePatterns...),
			"docs/",
			"examples/",
			"test/",
			"tests/",
			"testdata/",
			"*.md",
			"*.png",
			"*.jpg",
			"*.jpeg",
			"*.gif",
			"*.svg",
			"*.pdf",
		),
	},
}

// presetOrder fixes the listing order for display.
var presetOrder = []string{"basic", "git-friendly", "complete", "lightweight"}

// GetPreset looks up a preset by name.
func GetPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, domain.NewConfigError("", 0, "unknown preset: "+name, domain.ErrUnknownPreset)
	}
	return p, nil
}

// IsValidPreset reports whether name is a built-in preset.
func IsValidPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// PresetNames returns the preset names in display order.
func PresetNames() []string {
	return append([]string{}, presetOrder...)
}

// Presets returns the presets in display order.
func Presets() []Preset {
	out := make([]Preset, 0, len(presetOrder))
	for _, name := range presetOrder {
		out = append(out, presets[name])
	}
	return out
}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".srcpack"
	}
	return filepath.Join(home, ".srcpack")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Preset:      DefaultPreset,
		Compression: DefaultCompression,
		Output: OutputConfig{
			Progress: true,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
