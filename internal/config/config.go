// Package config resolves mitab-merge settings from defaults, an optional
// YAML file, an optional dotenv file and the process environment, in that
// order. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mitabmerge/internal/mitab"
	"mitabmerge/internal/output"
)

// DefaultPath is read when present and no --config is given.
const DefaultPath = "mitab-merge.yaml"

// Environment variables recognized by ApplyEnv.
const (
	EnvOutput        = "MITAB_MERGE_OUTPUT"
	EnvNamespaces    = "MITAB_MERGE_NAMESPACES"
	EnvSkipMalformed = "MITAB_MERGE_SKIP_MALFORMED"
	EnvReport        = "MITAB_MERGE_REPORT"
	EnvLogLevel      = "MITAB_MERGE_LOG_LEVEL"
	EnvS3Endpoint    = "MITAB_MERGE_S3_ENDPOINT"
	EnvS3Region      = "MITAB_MERGE_S3_REGION"
	EnvS3Insecure    = "MITAB_MERGE_S3_INSECURE"
	EnvAccessKey     = "AWS_ACCESS_KEY_ID"
	EnvSecretKey     = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken  = "AWS_SESSION_TOKEN"
	EnvAWSRegion     = "AWS_REGION"
)

type Config struct {
	Output        string   `yaml:"output"`
	Namespaces    []string `yaml:"namespaces"`
	SkipMalformed bool     `yaml:"skip_malformed"`
	Report        string   `yaml:"report"`
	LogLevel      string   `yaml:"log_level"`
	S3            S3Config `yaml:"s3"`
}

// S3Config locates the object store used for s3:// inputs.
type S3Config struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	SessionToken string `yaml:"session_token"`
	Insecure     bool   `yaml:"insecure"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Output:     output.DefaultName,
		Namespaces: []string{mitab.DefaultNamespace},
		LogLevel:   "info",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFile reads path over the defaults. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Environ collects the non-empty process environment, layered over the
// variables of a dotenv file when envFile is not empty.
func Environ(envFile string) (map[string]string, error) {
	env := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
		env = m
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && v != "" {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides settings from env. Empty values are ignored.
func (c *Config) ApplyEnv(env map[string]string) error {
	str := func(key string, dst *string) {
		if v := env[key]; v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v := env[key]
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
		return nil
	}

	str(EnvOutput, &c.Output)
	str(EnvReport, &c.Report)
	str(EnvLogLevel, &c.LogLevel)
	if v := env[EnvNamespaces]; v != "" {
		c.Namespaces = SplitList(v)
	}
	if err := boolean(EnvSkipMalformed, &c.SkipMalformed); err != nil {
		return err
	}

	str(EnvAWSRegion, &c.S3.Region)
	str(EnvS3Region, &c.S3.Region)
	str(EnvS3Endpoint, &c.S3.Endpoint)
	str(EnvAccessKey, &c.S3.AccessKey)
	str(EnvSecretKey, &c.S3.SecretKey)
	str(EnvSessionToken, &c.S3.SessionToken)
	return boolean(EnvS3Insecure, &c.S3.Insecure)
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output must not be empty")
	}
	if len(SplitList(strings.Join(c.Namespaces, ","))) == 0 {
		return errors.New("at least one namespace is required (use \"*\" for any)")
	}
	return nil
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
