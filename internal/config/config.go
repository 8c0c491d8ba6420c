package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seqscope/internal/alphabet"
	"seqscope/internal/reader"
	"seqscope/internal/writer"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the command-line tools.
type Config struct {
	Reader  ReaderConfig  `yaml:"reader" toml:"reader"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Workers int           `yaml:"workers" toml:"workers"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ReaderConfig maps onto reader.Options.
type ReaderConfig struct {
	Alphabet   string `yaml:"alphabet" toml:"alphabet"`       // dna, rna, iupac, protein, any
	Policy     string `yaml:"policy" toml:"policy"`           // strict, permissive
	AllowEmpty bool   `yaml:"allow_empty" toml:"allow_empty"` // accept records without payload
	BufferSize int    `yaml:"buffer_size" toml:"buffer_size"`
}

type OutputConfig struct {
	LineWidth int `yaml:"line_width" toml:"line_width"`
}

type LoggingConfig struct {
	Level    string `yaml:"level" toml:"level"`       // debug, info, warn, error
	Encoding string `yaml:"encoding" toml:"encoding"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Reader: ReaderConfig{
			Alphabet:   alphabet.IUPAC.Name(),
			Policy:     alphabet.PolicyStrict.String(),
			BufferSize: reader.DefaultOptions.BufferSize,
		},
		Output: OutputConfig{
			LineWidth: writer.DefaultWidth,
		},
		Workers: 4,
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file over the defaults.
// A missing file yields the defaults. Environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q (expected .yaml, .yml or .toml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration in the format implied by the extension.
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".toml":
		data, err = toml.Marshal(c)
	default:
		return fmt.Errorf("unsupported config format %q (expected .yaml, .yml or .toml)", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SEQSCOPE_ALPHABET"); v != "" {
		c.Reader.Alphabet = v
	}
	if v := os.Getenv("SEQSCOPE_POLICY"); v != "" {
		c.Reader.Policy = v
	}
	if v := os.Getenv("SEQSCOPE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks that every named setting resolves.
func (c *Config) Validate() error {
	if _, err := alphabet.Lookup(c.Reader.Alphabet); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := alphabet.ParsePolicy(c.Reader.Policy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Reader.BufferSize < 0 {
		return fmt.Errorf("config: buffer_size must not be negative")
	}
	if c.Output.LineWidth < 0 {
		return fmt.Errorf("config: line_width must not be negative")
	}
	if _, err := zap.ParseAtomicLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log encoding %q", c.Logging.Encoding)
	}
	return nil
}

// ReaderOptions converts the reader section into reader options.
func (c *Config) ReaderOptions() ([]reader.Option, error) {
	a, err := alphabet.Lookup(c.Reader.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	p, err := alphabet.ParsePolicy(c.Reader.Policy)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	opts := []reader.Option{
		reader.WithAlphabet(a),
		reader.WithPolicy(p),
		reader.WithEmptyRecords(c.Reader.AllowEmpty),
	}
	if c.Reader.BufferSize > 0 {
		opts = append(opts, reader.WithBufferSize(c.Reader.BufferSize))
	}
	return opts, nil
}

// BuildLogger builds a production zap logger at the configured level.
// verbose forces debug level.
func (c LoggingConfig) BuildLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = c.Encoding
	if zc.Encoding == "" {
		zc.Encoding = "console"
	}
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}
