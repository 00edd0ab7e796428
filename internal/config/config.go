package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DataDir          string        `mapstructure:"data_dir"`
	OutputDir        string        `mapstructure:"output_dir"`
	DefaultLayout    string        `mapstructure:"default_layout"` // classic, modern
	ExportFormat     string        `mapstructure:"export_format"`  // json, xml
	ChromePath       string        `mapstructure:"chrome_path"`
	PDFTimeout       time.Duration `mapstructure:"pdf_timeout"`
	DebounceInterval time.Duration `mapstructure:"debounce_interval"`
	Verbose          bool          `mapstructure:"verbose"`
}

var AppConfig *Config

const dirName = ".cvblue"

// Keys lists the settings accepted by Set
var Keys = []string{
	"data_dir", "output_dir", "default_layout", "export_format",
	"chrome_path", "pdf_timeout", "debounce_interval", "verbose",
}

// Initialize loads or creates the configuration file
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, dirName)
	configFile := filepath.Join(configDir, "config.yaml")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("CVBLUE")
	viper.AutomaticEnv()

	viper.SetDefault("data_dir", configDir)
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("default_layout", "classic")
	viper.SetDefault("export_format", "json")
	viper.SetDefault("chrome_path", "")
	viper.SetDefault("pdf_timeout", "60s")
	viper.SetDefault("debounce_interval", "500ms")
	viper.SetDefault("verbose", false)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if AppConfig.DataDir == "" {
		AppConfig.DataDir = configDir
	}

	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# CV Blue Configuration
# Where the CV database lives (defaults to ~/.cvblue)
data_dir: ""
# Where exports and PDFs are written
output_dir: "."

# Layout: classic, modern
default_layout: classic
# Export format: json, xml
export_format: json

# Chrome/Chromium binary used for PDF generation (empty = auto-detect)
chrome_path: ""
pdf_timeout: 60s

# Delay before field edits are committed
debounce_interval: 500ms
verbose: false
`
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}

// Set updates a configuration value
func Set(key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, dirName, "config.yaml")
}

func validKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
