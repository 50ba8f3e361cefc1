package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Default chart dimensions in pixels
const (
	DefaultChartWidth  = 1200
	DefaultChartHeight = 650
)

// Default display titles
const (
	DefaultChartTitle  = "Distribución de Estudios por Categoría"
	DefaultReportTitle = "Distribution of Studies by Category"
)

// Config represents the main configuration structure
type Config struct {
	// Input holds catalog reading configuration
	Input InputConfig `mapstructure:"input" toml:"input" yaml:"input"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" toml:"output" yaml:"output"`

	// Chart holds static chart configuration
	Chart ChartConfig `mapstructure:"chart" toml:"chart" yaml:"chart"`

	// Report holds interactive HTML report configuration
	Report ReportConfig `mapstructure:"report" toml:"report" yaml:"report"`
}

// InputConfig holds configuration for reading the study catalog
type InputConfig struct {
	// Path is the default catalog file used when no argument is given
	Path string `mapstructure:"path" toml:"path" yaml:"path"`

	// Encodings is the ordered list of encodings attempted when decoding
	Encodings []string `mapstructure:"encodings" toml:"encodings" yaml:"encodings"`

	// Column names of the classification fields
	CategoryField    string `mapstructure:"category_field" toml:"category_field" yaml:"category_field"`
	SubcategoryField string `mapstructure:"subcategory_field" toml:"subcategory_field" yaml:"subcategory_field"`
	SuitabilityField string `mapstructure:"suitability_field" toml:"suitability_field" yaml:"suitability_field"`
	TitleField       string `mapstructure:"title_field" toml:"title_field" yaml:"title_field"`
	AuthorField      string `mapstructure:"author_field" toml:"author_field" yaml:"author_field"`
	YearField        string `mapstructure:"year_field" toml:"year_field" yaml:"year_field"`

	// Placeholders substituted for blank classification values
	CategoryPlaceholder    string `mapstructure:"category_placeholder" toml:"category_placeholder" yaml:"category_placeholder"`
	SubcategoryPlaceholder string `mapstructure:"subcategory_placeholder" toml:"subcategory_placeholder" yaml:"subcategory_placeholder"`
	SuitabilityPlaceholder string `mapstructure:"suitability_placeholder" toml:"suitability_placeholder" yaml:"suitability_placeholder"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" toml:"format" yaml:"format"`

	// Directory is where generated report files are written
	Directory string `mapstructure:"directory" toml:"directory" yaml:"directory"`

	// ShowDetails controls whether the per-category subcategory breakdown
	// is included in text output
	ShowDetails bool `mapstructure:"show_details" toml:"show_details" yaml:"show_details"`
}

// ChartConfig holds configuration for the static PNG chart
type ChartConfig struct {
	Width  int    `mapstructure:"width" toml:"width" yaml:"width"`
	Height int    `mapstructure:"height" toml:"height" yaml:"height"`
	Title  string `mapstructure:"title" toml:"title" yaml:"title"`
}

// ReportConfig holds configuration for the interactive HTML report
type ReportConfig struct {
	Title string `mapstructure:"title" toml:"title" yaml:"title"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path:                   "",
			Encodings:              []string{"utf-8", "latin-1", "iso-8859-1", "cp1252", "utf-8-sig"},
			CategoryField:          "Category",
			SubcategoryField:       "Subcategory",
			SuitabilityField:       "TCIM_suitability_level",
			TitleField:             "Title",
			AuthorField:            "Author",
			YearField:              "Year",
			CategoryPlaceholder:    "Sin categoría",
			SubcategoryPlaceholder: "Sin subcategoría",
			SuitabilityPlaceholder: "Not applicable",
		},
		Output: OutputConfig{
			Format:      "text",
			Directory:   "",
			ShowDetails: true,
		},
		Chart: ChartConfig{
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
			Title:  DefaultChartTitle,
		},
		Report: ReportConfig{
			Title: DefaultReportTitle,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// If no config path specified, try to find default config files
	if configPath == "" {
		configPath = findDefaultConfig()
	}

	// If still no config found, return default
	if configPath == "" {
		return config, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// SaveConfig writes the configuration as TOML to the given path
func SaveConfig(config *Config, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig() string {
	candidates := []string{
		".estudios.toml",
		".estudios.yaml",
		".estudios.yml",
		"estudios.toml",
		"estudios.yaml",
	}

	// Check current directory first
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"csv":  true,
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv", c.Output.Format)
	}

	if len(c.Input.Encodings) == 0 {
		return fmt.Errorf("input.encodings cannot be empty")
	}

	if c.Input.CategoryField == "" {
		return fmt.Errorf("input.category_field cannot be empty")
	}

	if c.Input.SubcategoryField == "" {
		return fmt.Errorf("input.subcategory_field cannot be empty")
	}

	if c.Chart.Width <= 0 {
		return fmt.Errorf("chart.width must be positive, got %d", c.Chart.Width)
	}

	if c.Chart.Height <= 0 {
		return fmt.Errorf("chart.height must be positive, got %d", c.Chart.Height)
	}

	return nil
}
