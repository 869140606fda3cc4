package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPhotoCount is used when the photo count prompt is left blank
	DefaultPhotoCount = 5

	// DefaultManifestPath is the manifest file written in the working directory
	DefaultManifestPath = "result.json"

	envPrefix = "VKBACKUP_"
)

// File naming policies for uploaded photos
const (
	NamingLikes     = "likes"
	NamingLikesDate = "likes_date"
	NamingID        = "id"
	NamingIndex     = "index"
)

// Config holds all configuration options for a backup run
type Config struct {
	// Source platform settings
	VK VKConfig `yaml:"vk" json:"vk"`

	// Storage provider settings
	Disk DiskConfig `yaml:"disk" json:"disk"`

	// What to back up and where the manifest goes
	Backup BackupConfig `yaml:"backup" json:"backup"`

	// Shared HTTP client settings
	HTTP HTTPConfig `yaml:"http" json:"http"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// VKConfig holds VK API configuration
type VKConfig struct {
	Token      string `yaml:"token" json:"token"`
	APIURL     string `yaml:"api_url" json:"api_url"`
	APIVersion string `yaml:"api_version" json:"api_version"`
	AlbumID    string `yaml:"album_id" json:"album_id"`
}

// DiskConfig holds Yandex Disk API configuration
type DiskConfig struct {
	Token             string `yaml:"token" json:"token"`
	APIURL            string `yaml:"api_url" json:"api_url"`
	FolderPrefix      string `yaml:"folder_prefix" json:"folder_prefix"`
	RequestsPerMinute int    `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// BackupConfig holds per-run backup options.
// Zero values for UserID and PhotoCount mean "ask interactively".
type BackupConfig struct {
	UserID       string `yaml:"user_id" json:"user_id"`
	PhotoCount   int    `yaml:"photo_count" json:"photo_count"`
	Naming       string `yaml:"naming" json:"naming"`
	ManifestPath string `yaml:"manifest_path" json:"manifest_path"`
}

// HTTPConfig holds HTTP client configuration.
// A zero Timeout leaves requests unbounded.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		VK: VKConfig{
			APIURL:     "https://api.vk.com/method",
			APIVersion: "5.131",
			AlbumID:    "profile",
		},
		Disk: DiskConfig{
			APIURL:            "https://cloud-api.yandex.net/v1/disk/resources",
			FolderPrefix:      "VK_Photos_",
			RequestsPerMinute: 0,
		},
		Backup: BackupConfig{
			Naming:       NamingLikes,
			ManifestPath: DefaultManifestPath,
		},
		HTTP: HTTPConfig{
			Timeout:   0,
			UserAgent: "vkbackup/1.0",
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if v := os.Getenv(envPrefix + "VK_TOKEN"); v != "" {
		c.VK.Token = v
	}
	if v := os.Getenv(envPrefix + "VK_API_VERSION"); v != "" {
		c.VK.APIVersion = v
	}
	if v := os.Getenv(envPrefix + "DISK_TOKEN"); v != "" {
		c.Disk.Token = v
	}
	if v := os.Getenv(envPrefix + "USER_ID"); v != "" {
		c.Backup.UserID = v
	}
	if v := os.Getenv(envPrefix + "PHOTO_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sPHOTO_COUNT: %w", envPrefix, err))
		} else {
			c.Backup.PhotoCount = n
		}
	}
	if v := os.Getenv(envPrefix + "NAMING"); v != "" {
		c.Backup.Naming = v
	}
	if v := os.Getenv(envPrefix + "MANIFEST_PATH"); v != "" {
		c.Backup.ManifestPath = v
	}
	if v := os.Getenv(envPrefix + "HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sHTTP_TIMEOUT: %w", envPrefix, err))
		} else {
			c.HTTP.Timeout = d
		}
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".vkbackup.yaml",
		".vkbackup.yml",
		filepath.Join(home, ".config", "vkbackup", "config.yaml"),
		filepath.Join(home, ".config", "vkbackup", "config.yml"),
		filepath.Join(home, ".vkbackup.yaml"),
		filepath.Join(home, ".vkbackup.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks settings that do not depend on interactive input
func (c *Config) Validate() error {
	var errs []error

	if c.VK.APIURL == "" {
		errs = append(errs, errors.New("VK API URL is required"))
	}
	if c.VK.APIVersion == "" {
		errs = append(errs, errors.New("VK API version is required"))
	}
	if c.VK.AlbumID == "" {
		errs = append(errs, errors.New("VK album id is required"))
	}
	if c.Disk.APIURL == "" {
		errs = append(errs, errors.New("Yandex Disk API URL is required"))
	}
	if c.Disk.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("disk requests per minute cannot be negative"))
	}
	if c.Backup.PhotoCount < 0 {
		errs = append(errs, errors.New("photo count cannot be negative"))
	}
	if c.Backup.ManifestPath == "" {
		errs = append(errs, errors.New("manifest path is required"))
	}
	if !IsValidNaming(c.Backup.Naming) {
		errs = append(errs, fmt.Errorf("invalid naming policy %q", c.Backup.Naming))
	}
	if c.HTTP.Timeout < 0 {
		errs = append(errs, errors.New("http timeout cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// RequireCredentials checks the values a run cannot start without
func (c *Config) RequireCredentials() error {
	var errs []error

	if c.VK.Token == "" {
		errs = append(errs, errors.New("VK access token is required"))
	}
	if c.Disk.Token == "" {
		errs = append(errs, errors.New("Yandex Disk token is required"))
	}
	if strings.TrimSpace(c.Backup.UserID) == "" {
		errs = append(errs, errors.New("VK user id is required"))
	}
	if c.Backup.PhotoCount <= 0 {
		errs = append(errs, errors.New("photo count must be positive"))
	}

	return errors.Join(errs...)
}

// IsValidNaming reports whether name is a known file naming policy
func IsValidNaming(name string) bool {
	switch name {
	case NamingLikes, NamingLikesDate, NamingID, NamingIndex:
		return true
	default:
		return false
	}
}

// Masked returns a copy of the configuration with tokens hidden
func (c *Config) Masked() *Config {
	masked := *c
	masked.VK.Token = MaskSecret(c.VK.Token)
	masked.Disk.Token = MaskSecret(c.Disk.Token)
	return &masked
}

// MaskSecret hides all but the first and last four characters of a secret
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["vk-token"].(string); ok && token != "" {
		c.VK.Token = token
	}
	if token, ok := flags["disk-token"].(string); ok && token != "" {
		c.Disk.Token = token
	}
	if user, ok := flags["user"].(string); ok && user != "" {
		c.Backup.UserID = user
	}
	if count, ok := flags["count"].(int); ok && count > 0 {
		c.Backup.PhotoCount = count
	}
	if naming, ok := flags["naming"].(string); ok && naming != "" {
		c.Backup.Naming = naming
	}
	if output, ok := flags["output"].(string); ok && output != "" {
		c.Backup.ManifestPath = output
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Missing .env files are not an error
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".vkbackup.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
