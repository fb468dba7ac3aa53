package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL   = "http://localhost:8000/api"
	APIURLEnv       = "WRITERLY_API_URL"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	defaultDirName  = "writerly"
	defaultFileName = "config.yaml"
)

type Storage struct {
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

type Config struct {
	APIURL               string
	StateDir             string
	DBPath               string
	LogFile              string
	LogLevel             string
	RequestTimeout       time.Duration
	ReadingInterval      time.Duration
	NotificationInterval time.Duration
	Storage              Storage
}

// Options carries the command-line inputs. Empty fields fall back to the
// environment, then the config file, then defaults.
type Options struct {
	ConfigPath string
	APIURL     string
	StateDir   string
	Getenv     func(string) string
}

type fileConfig struct {
	APIURL               string        `yaml:"api_url"`
	StateDir             string        `yaml:"state_dir"`
	LogFile              string        `yaml:"log_file"`
	LogLevel             string        `yaml:"log_level"`
	RequestTimeout       time.Duration `yaml:"request_timeout"`
	ReadingInterval      time.Duration `yaml:"reading_interval"`
	NotificationInterval time.Duration `yaml:"notification_interval"`
	Storage              struct {
		Backend       string `yaml:"backend"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
		RedisPrefix   string `yaml:"redis_prefix"`
	} `yaml:"storage"`
}

func New(opts Options) (Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	baseDir := opts.StateDir
	if baseDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		baseDir = filepath.Join(dir, defaultDirName)
	}

	configPath := opts.ConfigPath
	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(baseDir, defaultFileName)
	}
	file, err := readFile(configPath, explicit)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:               DefaultAPIURL,
		StateDir:             baseDir,
		LogLevel:             "info",
		RequestTimeout:       15 * time.Second,
		ReadingInterval:      10 * time.Second,
		NotificationInterval: 30 * time.Second,
		Storage:              Storage{Backend: BackendSQLite, RedisPrefix: "writerly:"},
	}
	if file.StateDir != "" && opts.StateDir == "" {
		cfg.StateDir = file.StateDir
	}
	if file.APIURL != "" {
		cfg.APIURL = file.APIURL
	}
	if v := strings.TrimSpace(getenv(APIURLEnv)); v != "" {
		cfg.APIURL = v
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.RequestTimeout != 0 {
		cfg.RequestTimeout = file.RequestTimeout
	}
	if file.ReadingInterval != 0 {
		cfg.ReadingInterval = file.ReadingInterval
	}
	if file.NotificationInterval != 0 {
		cfg.NotificationInterval = file.NotificationInterval
	}
	if file.Storage.Backend != "" {
		cfg.Storage.Backend = strings.ToLower(file.Storage.Backend)
	}
	cfg.Storage.RedisAddr = file.Storage.RedisAddr
	cfg.Storage.RedisPassword = file.Storage.RedisPassword
	cfg.Storage.RedisDB = file.Storage.RedisDB
	if file.Storage.RedisPrefix != "" {
		cfg.Storage.RedisPrefix = file.Storage.RedisPrefix
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.DBPath = filepath.Join(cfg.StateDir, "writerly.db")
	cfg.LogFile = filepath.Join(cfg.StateDir, "writerly.log")
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api url must be an absolute http(s) url: %q", c.APIURL)
	}
	if c.StateDir == "" {
		return fmt.Errorf("state dir is required")
	}
	if c.RequestTimeout <= 0 || c.ReadingInterval <= 0 || c.NotificationInterval <= 0 {
		return fmt.Errorf("timeouts and intervals must be positive")
	}
	switch c.Storage.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}
	return nil
}

// PluginDir is where plugins/plugins.json lives.
func (c Config) PluginDir() string {
	return c.StateDir
}

func readFile(path string, explicit bool) (fileConfig, error) {
	out := fileConfig{}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return out, nil
		}
		return out, fmt.Errorf("read config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return out, fmt.Errorf("decode config %s: %w", path, err)
	}
	return out, nil
}
