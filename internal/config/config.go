package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type Config struct {
	DBPath            string `yaml:"db_path"`
	LogFile           string `yaml:"log_file"`
	LogFormat         string `yaml:"log_format"`
	Debug             bool   `yaml:"debug"`
	IdlePromptSeconds int    `yaml:"idle_prompt_seconds"`
	ImagesEnabled     bool   `yaml:"images_enabled"`
	ImageBaseURL      string `yaml:"image_base_url"`
}

// Dir is where onestep keeps its files, ~/.onestep when a home is known.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".onestep"
	}
	return filepath.Join(home, ".onestep")
}

func DefaultFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() Config {
	dir := Dir()
	return Config{
		DBPath:            filepath.Join(dir, "onestep.db"),
		LogFile:           filepath.Join(dir, "onestep.log"),
		LogFormat:         LogFormatText,
		IdlePromptSeconds: 120,
		ImagesEnabled:     true,
		ImageBaseURL:      "https://source.unsplash.com/800x600/",
	}
}

// LoadFile overlays the YAML file at path onto base. A missing file leaves
// base unchanged.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("ONESTEP_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("ONESTEP_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("ONESTEP_LOG_FORMAT"); ok {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := getEnvBool("ONESTEP_DEBUG"); ok {
		cfg.Debug = v
	}
	if v, ok := getEnvInt("ONESTEP_IDLE_PROMPT_SECONDS"); ok && v > 0 {
		cfg.IdlePromptSeconds = v
	}
	if v, ok := getEnvBool("ONESTEP_IMAGES"); ok {
		cfg.ImagesEnabled = v
	}
	if v, ok := getEnvString("ONESTEP_IMAGE_BASE_URL"); ok {
		cfg.ImageBaseURL = v
	}
	return cfg
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db path is required")
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if c.IdlePromptSeconds <= 0 {
		return errors.New("config: idle prompt seconds must be positive")
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
