// Package config holds the proving-service configuration: environment
// defaults, a small hand-rolled flag overlay, and an optional YAML file
// that overrides both.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the proving service configuration.
type Config struct {
	RootDir string

	// CCSPath, PKPath, VKPath locate the compiled circuit and trusted-setup
	// keys produced by cmd/authdecode-setup.
	CCSPath string
	PKPath  string
	VKPath  string

	// Source selects where plaintext chunks are read from: "file" or "http".
	Source string
	// SourcePath is the file path when Source == "file".
	SourcePath string
	// SourceURL is the base URL when Source == "http".
	SourceURL string

	// OutputDir is where generated proofs are written.
	OutputDir string

	// PollIntervalMillis is how long the service sleeps between polls of the
	// plaintext source when it has nothing new to offer, in milliseconds.
	PollIntervalMillis uint64
}

// NewConfig parses configuration from environment variables first, then
// overrides with the given "--flag value" pairs, in the style of
// provers/types.Config.
func NewConfig(args ...string) *Config {
	config := Config{
		RootDir:            getEnv("ROOT", "."),
		CCSPath:            getEnv("CCS_PATH", ".build/AuthDecodeCircuit.ccs"),
		PKPath:             getEnv("PK_PATH", ".build/AuthDecodeCircuit.pk"),
		VKPath:             getEnv("VK_PATH", ".build/AuthDecodeCircuit.vk"),
		Source:             getEnv("SOURCE", "file"),
		SourcePath:         getEnv("SOURCE_PATH", "plaintext.json"),
		SourceURL:          getEnv("SOURCE_URL", "http://localhost:8080"),
		OutputDir:          getEnv("OUTPUT_DIR", "output"),
		PollIntervalMillis: 1000,
	}

	for i := 0; i < len(args); i++ {
		if len(args) <= i+1 {
			panic(fmt.Errorf("missing argument for %s", args[i]))
		}

		switch args[i] {
		case "--root":
			config.RootDir = args[i+1]
			i++
		case "--ccs":
			config.CCSPath = args[i+1]
			i++
		case "--pk":
			config.PKPath = args[i+1]
			i++
		case "--vk":
			config.VKPath = args[i+1]
			i++
		case "--source":
			config.Source = args[i+1]
			i++
		case "--source-path":
			config.SourcePath = args[i+1]
			i++
		case "--source-url":
			config.SourceURL = args[i+1]
			i++
		case "--output":
			config.OutputDir = args[i+1]
			i++
		case "--poll-interval-ms":
			config.PollIntervalMillis, _ = strconv.ParseUint(args[i+1], 10, 64)
			i++
		}
	}

	return &config
}

// fileConfig mirrors Config's fields as they appear in a YAML overlay file;
// zero-value fields are left untouched so the file only needs to name what
// it overrides.
type fileConfig struct {
	RootDir            string `yaml:"root_dir"`
	CCSPath            string `yaml:"ccs_path"`
	PKPath             string `yaml:"pk_path"`
	VKPath             string `yaml:"vk_path"`
	Source             string `yaml:"source"`
	SourcePath         string `yaml:"source_path"`
	SourceURL          string `yaml:"source_url"`
	OutputDir          string `yaml:"output_dir"`
	PollIntervalMillis uint64 `yaml:"poll_interval_ms"`
}

// LoadFile layers a YAML config file on top of c, overriding any field the
// file sets. It is optional and is applied after NewConfig, so a value the
// file sets wins over both the environment default and any flag.
func (c *Config) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if fc.RootDir != "" {
		c.RootDir = fc.RootDir
	}
	if fc.CCSPath != "" {
		c.CCSPath = fc.CCSPath
	}
	if fc.PKPath != "" {
		c.PKPath = fc.PKPath
	}
	if fc.VKPath != "" {
		c.VKPath = fc.VKPath
	}
	if fc.Source != "" {
		c.Source = fc.Source
	}
	if fc.SourcePath != "" {
		c.SourcePath = fc.SourcePath
	}
	if fc.SourceURL != "" {
		c.SourceURL = fc.SourceURL
	}
	if fc.OutputDir != "" {
		c.OutputDir = fc.OutputDir
	}
	if fc.PollIntervalMillis != 0 {
		c.PollIntervalMillis = fc.PollIntervalMillis
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
