package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultAddr         = ":8000"
	DefaultModelsDir    = "models"
	DefaultModel        = "onnx-community/gliner-multitask-large-v0.5"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultMaxBodyBytes = int64(1 << 20)
	DefaultThreshold    = 0.5
	DefaultMaxWidth     = 12
)

// Environment variable names.
const (
	EnvModel     = "GLINER_MODEL"
	EnvAddr      = "GLINER_ADDR"
	EnvModelsDir = "GLINER_MODELS_DIR"
	EnvLogLevel  = "GLINER_LOG_LEVEL"
	EnvLogFormat = "GLINER_LOG_FORMAT"
	EnvThreshold = "GLINER_THRESHOLD"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are filled by Merge from Defaults.
type Config struct {
	Addr         string  `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir    string  `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	Model        string  `json:"model" yaml:"model" toml:"model"`
	LogLevel     string  `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat    string  `json:"log_format" yaml:"log_format" toml:"log_format"`
	MaxBodyBytes int64   `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	Threshold    float64 `json:"threshold" yaml:"threshold" toml:"threshold"`
	MaxWidth     int     `json:"max_width" yaml:"max_width" toml:"max_width"`
	Threads      int     `json:"threads" yaml:"threads" toml:"threads"`

	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
	CORSAllowedMethods []string `json:"cors_allowed_methods" yaml:"cors_allowed_methods" toml:"cors_allowed_methods"`
	CORSAllowedHeaders []string `json:"cors_allowed_headers" yaml:"cors_allowed_headers" toml:"cors_allowed_headers"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:         DefaultAddr,
		ModelsDir:    DefaultModelsDir,
		Model:        DefaultModel,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Threshold:    DefaultThreshold,
		MaxWidth:     DefaultMaxWidth,
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge overlays the non-zero fields of over onto base.
func Merge(base, over Config) Config {
	if over.Addr != "" {
		base.Addr = over.Addr
	}
	if over.ModelsDir != "" {
		base.ModelsDir = over.ModelsDir
	}
	if over.Model != "" {
		base.Model = over.Model
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.LogFormat != "" {
		base.LogFormat = over.LogFormat
	}
	if over.MaxBodyBytes > 0 {
		base.MaxBodyBytes = over.MaxBodyBytes
	}
	if over.Threshold > 0 {
		base.Threshold = over.Threshold
	}
	if over.MaxWidth > 0 {
		base.MaxWidth = over.MaxWidth
	}
	if over.Threads > 0 {
		base.Threads = over.Threads
	}
	if over.CORSEnabled {
		base.CORSEnabled = true
	}
	if len(over.CORSAllowedOrigins) > 0 {
		base.CORSAllowedOrigins = over.CORSAllowedOrigins
	}
	if len(over.CORSAllowedMethods) > 0 {
		base.CORSAllowedMethods = over.CORSAllowedMethods
	}
	if len(over.CORSAllowedHeaders) > 0 {
		base.CORSAllowedHeaders = over.CORSAllowedHeaders
	}
	return base
}

// FromEnv overlays GLINER_* environment variables onto cfg using lookup
// (os.LookupEnv when nil). Empty values are ignored.
func FromEnv(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(k string) string {
		v, _ := lookup(k)
		return strings.TrimSpace(v)
	}
	var over Config
	over.Model = get(EnvModel)
	over.Addr = get(EnvAddr)
	over.ModelsDir = get(EnvModelsDir)
	over.LogLevel = get(EnvLogLevel)
	over.LogFormat = get(EnvLogFormat)
	if v := get(EnvThreshold); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvThreshold, err)
		}
		if f < 0 || f > 1 {
			return cfg, fmt.Errorf("%s: %v out of range [0,1]", EnvThreshold, f)
		}
		over.Threshold = f
	}
	return Merge(cfg, over), nil
}
