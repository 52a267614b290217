// Package config loads the gateway yaml configuration and applies
// defaults, SGW_* environment overrides and validation, in that order.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type LoggingConfig struct {
	AccessLog             bool   `yaml:"access_log"`
	AccessLogPath         string `yaml:"access_log_path"`
	AccessLogFormat       string `yaml:"access_log_format"`
	AccessLogFormatPreset string `yaml:"access_log_format_preset"`

	// accessLogSet distinguishes an explicit access_log: false from the
	// key being absent, so the default-true only applies when absent.
	accessLogSet bool `yaml:"-"`
}

func (c *LoggingConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawLogging struct {
		AccessLog             bool   `yaml:"access_log"`
		AccessLogPath         string `yaml:"access_log_path"`
		AccessLogFormat       string `yaml:"access_log_format"`
		AccessLogFormatPreset string `yaml:"access_log_format_preset"`
	}
	var raw rawLogging
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.AccessLog = raw.AccessLog
	c.AccessLogPath = raw.AccessLogPath
	c.AccessLogFormat = raw.AccessLogFormat
	c.AccessLogFormatPreset = raw.AccessLogFormatPreset
	c.accessLogSet = false
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i] != nil && value.Content[i].Value == "access_log" {
			c.accessLogSet = true
		}
	}
	return nil
}

type Config struct {
	Server struct {
		Listen         string `yaml:"listen"`
		ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
		WriteTimeoutMs int    `yaml:"write_timeout_ms"`
		PidFile        string `yaml:"pid_file"`
	} `yaml:"server"`

	// Upstream is the mini-kep data store serving /api/datapoints.
	Upstream struct {
		BaseURL   string `yaml:"base_url"`
		TimeoutMs int    `yaml:"timeout_ms"`
	} `yaml:"upstream"`

	Domains struct {
		// File lists the allowed domains; when missing the built-in set
		// is used. AutoReload watches the file and reloads it at runtime.
		File       string `yaml:"file"`
		AutoReload struct {
			Enabled    bool `yaml:"enabled"`
			DebounceMs int  `yaml:"debounce_ms"`
		} `yaml:"auto_reload"`
	} `yaml:"domains"`

	Logging LoggingConfig `yaml:"logging"`
}

// Load reads the config file at path. A missing file is not an error:
// the gateway runs on defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config
	// #nosec G304 -- path is provided by trusted config/flag.
	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, err
		}
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = ":8060"
	}
	if cfg.Server.ReadTimeoutMs <= 0 {
		cfg.Server.ReadTimeoutMs = 30000
	}
	if cfg.Server.WriteTimeoutMs <= 0 {
		cfg.Server.WriteTimeoutMs = 30000
	}
	if strings.TrimSpace(cfg.Upstream.BaseURL) == "" {
		cfg.Upstream.BaseURL = "http://minikep-db.herokuapp.com"
	}
	if cfg.Upstream.TimeoutMs <= 0 {
		cfg.Upstream.TimeoutMs = 15000
	}
	if strings.TrimSpace(cfg.Domains.File) == "" {
		cfg.Domains.File = "./domains.yaml"
	}
	if cfg.Domains.AutoReload.DebounceMs <= 0 {
		cfg.Domains.AutoReload.DebounceMs = 300
	}
	// default true for local debugging
	if !cfg.Logging.accessLogSet {
		cfg.Logging.AccessLog = true
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("SGW_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if n, ok := envInt("SGW_READ_TIMEOUT_MS"); ok && n > 0 {
		cfg.Server.ReadTimeoutMs = n
	}
	if n, ok := envInt("SGW_WRITE_TIMEOUT_MS"); ok && n > 0 {
		cfg.Server.WriteTimeoutMs = n
	}
	if v := strings.TrimSpace(os.Getenv("SGW_PID_FILE")); v != "" {
		cfg.Server.PidFile = v
	}
	if v := strings.TrimSpace(os.Getenv("SGW_UPSTREAM_BASE_URL")); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if n, ok := envInt("SGW_UPSTREAM_TIMEOUT_MS"); ok && n > 0 {
		cfg.Upstream.TimeoutMs = n
	}
	if v := strings.TrimSpace(os.Getenv("SGW_DOMAINS_FILE")); v != "" {
		cfg.Domains.File = v
	}
	cfg.Domains.AutoReload.Enabled = envBool("SGW_DOMAINS_AUTO_RELOAD_ENABLED", cfg.Domains.AutoReload.Enabled)
	if n, ok := envInt("SGW_DOMAINS_AUTO_RELOAD_DEBOUNCE_MS"); ok {
		cfg.Domains.AutoReload.DebounceMs = n
	}
	if v := strings.TrimSpace(os.Getenv("SGW_ACCESS_LOG_PATH")); v != "" {
		cfg.Logging.AccessLogPath = v
	}
	if v := os.Getenv("SGW_ACCESS_LOG_FORMAT"); strings.TrimSpace(v) != "" {
		cfg.Logging.AccessLogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("SGW_ACCESS_LOG_FORMAT_PRESET")); v != "" {
		cfg.Logging.AccessLogFormatPreset = v
	}
}

func validate(cfg *Config) error {
	if v := strings.TrimSpace(cfg.Upstream.BaseURL); !strings.Contains(v, "://") {
		return errors.New("upstream.base_url must be a URL (e.g. http://minikep-db.herokuapp.com)")
	}
	if cfg.Domains.AutoReload.Enabled && cfg.Domains.AutoReload.DebounceMs <= 0 {
		return errors.New("domains.auto_reload.debounce_ms must be > 0 when domains.auto_reload.enabled=true")
	}
	return nil
}

func envInt(name string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
