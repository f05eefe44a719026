package configs

import (
	"fmt"
	"strings"

	"loadtest-report/internal/shared/validators"

	"github.com/spf13/viper"
)

const (
	defaultRegularFilePattern           = `^timers\.csv(\.gz)?$`
	defaultClientPerformanceFilePattern = `^timers-wd-.+\.csv(\.gz)?$`
)

// LoadConfig reads configuration from file and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndValidate(v)
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	return unmarshalAndValidate(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("ingestion.reader_threads", 2)
	v.SetDefault("ingestion.parser_threads", 4)
	v.SetDefault("ingestion.queue_capacity", 64)
	v.SetDefault("ingestion.chunk_size", 1000)
	v.SetDefault("ingestion.regular_file_pattern", defaultRegularFilePattern)
	v.SetDefault("ingestion.client_performance_file_pattern", defaultClientPerformanceFilePattern)
	v.SetDefault("report.output_dir", "./reports")
	v.SetDefault("report.runtime_intervals", "100,1000,3000,5000")
	v.SetDefault("status_server.port", 9090)
}

func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}
	if cfg.Ingestion.To != 0 && cfg.Ingestion.From > cfg.Ingestion.To {
		return nil, fmt.Errorf("config validation failed: ingestion.from (%d) is after ingestion.to (%d)", cfg.Ingestion.From, cfg.Ingestion.To)
	}

	return &cfg, nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "ingestion.readerthreads")
	if e.StructNamespace() != "" {
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			field = strings.ToLower(strings.Join(parts[1:], "."))
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	case validators.TagRegexp:
		msg = fmt.Sprintf("%s (invalid regular expression)", field)
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
