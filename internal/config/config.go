package config

import (
	"github.com/quantmind-br/srcpack-go/internal/archive"
	"github.com/quantmind-br/srcpack-go/internal/domain"
)

// Config represents the resolved configuration for one packaging run.
// It is constructed once from flags, environment, and config file, and
// is read-only through the run.
type Config struct {
	Preset         string        `mapstructure:"preset" yaml:"preset"`
	PatternFile    string        `mapstructure:"pattern_file" yaml:"pattern_file"`
	Compression    string        `mapstructure:"compression" yaml:"compression"`
	RemoveComments bool          `mapstructure:"remove_comments" yaml:"remove_comments"`
	Output         OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging        LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Progress bool `mapstructure:"progress" yaml:"progress"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies defaults for
// missing values. Unknown preset or compression names are
// configuration errors and abort before traversal.
func (c *Config) Validate() error {
	if c.Preset == "" {
		c.Preset = DefaultPreset
	}
	if !IsValidPreset(c.Preset) {
		return domain.NewConfigError("", 0, "unknown preset: "+c.Preset, domain.ErrUnknownPreset)
	}

	if c.Compression == "" {
		c.Compression = DefaultCompression
	}
	if !archive.ValidMethod(c.Compression) {
		return domain.NewConfigError("", 0,
			"unknown compression method: "+c.Compression, domain.ErrUnknownCompression)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
