// CLAUDE:SUMMARY YAML-loadable pipeline configuration with validated defaults.
package quizpipe

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/rubrique/pdftext"
	"github.com/hazyhaar/rubrique/rubric"
)

const defaultMaxFileSize = 64 << 20 // 64 MiB

// Config drives a Pipeline. The zero value is usable; defaults fill in what
// is left unset.
type Config struct {
	// MaxFileSize caps ExtractFile input, in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`

	Sanitize  pdftext.SanitizeConfig `yaml:"sanitize"`
	Rounds    rubric.SegmentConfig   `yaml:"rounds"`
	Questions rubric.QuestionPolicy  `yaml:"questions"`

	Logger *slog.Logger `yaml:"-" json:"-"`
}

// DefaultConfig returns a fully populated configuration.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.defaults()
	return cfg
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = defaultMaxFileSize
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// LoadConfig reads a YAML file over the defaults. A missing path returns the
// defaults untouched.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	}
	if c.Sanitize.PrintableThreshold < 0 || c.Sanitize.PrintableThreshold > 1 {
		return fmt.Errorf("sanitize.printable_threshold must be in [0,1], got %g", c.Sanitize.PrintableThreshold)
	}
	return nil
}
