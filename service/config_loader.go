package service

import (
	"github.com/tcimlab/estudios/domain"
	"github.com/tcimlab/estudios/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.SummaryRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return toSummaryRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.SummaryRequest {
	return toSummaryRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file. Values set in the
// override win; zero values fall through to the base.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.SummaryRequest, override *domain.SummaryRequest) *domain.SummaryRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.ChartPath != "" {
		merged.ChartPath = override.ChartPath
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	if len(override.Encodings) > 0 {
		merged.Encodings = override.Encodings
	}
	merged.ShowDetails = override.ShowDetails
	merged.Fields = mergeFields(base.Fields, override.Fields)

	return &merged
}

func toSummaryRequest(cfg *config.Config) *domain.SummaryRequest {
	request := &domain.SummaryRequest{
		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		ShowDetails:  cfg.Output.ShowDetails,
		Fields:       FieldsFromConfig(cfg),
		Encodings:    cfg.Input.Encodings,
	}
	if cfg.Input.Path != "" {
		request.Paths = []string{cfg.Input.Path}
	}
	return request
}

// FieldsFromConfig builds the field mapping used by aggregation from the
// loaded configuration.
func FieldsFromConfig(cfg *config.Config) domain.FieldConfig {
	return domain.FieldConfig{
		Category:    domain.Field{Name: cfg.Input.CategoryField, Placeholder: cfg.Input.CategoryPlaceholder},
		Subcategory: domain.Field{Name: cfg.Input.SubcategoryField, Placeholder: cfg.Input.SubcategoryPlaceholder},
		Suitability: domain.Field{Name: cfg.Input.SuitabilityField, Placeholder: cfg.Input.SuitabilityPlaceholder},
		Title:       domain.Field{Name: cfg.Input.TitleField, Placeholder: domain.PlaceholderTitle},
		Author:      domain.Field{Name: cfg.Input.AuthorField, Placeholder: domain.PlaceholderAuthor},
		Year:        domain.Field{Name: cfg.Input.YearField, Placeholder: domain.PlaceholderYear},
	}
}

func mergeFields(base, override domain.FieldConfig) domain.FieldConfig {
	merged := base
	if override.Category.Name != "" {
		merged.Category = override.Category
	}
	if override.Subcategory.Name != "" {
		merged.Subcategory = override.Subcategory
	}
	if override.Suitability.Name != "" {
		merged.Suitability = override.Suitability
	}
	if override.Title.Name != "" {
		merged.Title = override.Title
	}
	if override.Author.Name != "" {
		merged.Author = override.Author
	}
	if override.Year.Name != "" {
		merged.Year = override.Year
	}
	return merged
}
