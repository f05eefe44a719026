package configs

// Config holds all configuration for one report run.
type Config struct {
	Log          LogConfig          `mapstructure:"log" validate:"required"`
	Ingestion    IngestionConfig    `mapstructure:"ingestion" validate:"required"`
	Rules        RulesConfig        `mapstructure:"rules"`
	Report       ReportConfig       `mapstructure:"report" validate:"required"`
	StatusServer StatusServerConfig `mapstructure:"status_server"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// IngestionConfig holds the reader/parser pool configuration.
type IngestionConfig struct {
	ReaderThreads                int    `mapstructure:"reader_threads" validate:"required,min=1,max=256"`
	ParserThreads                int    `mapstructure:"parser_threads" validate:"required,min=1,max=256"`
	QueueCapacity                int    `mapstructure:"queue_capacity" validate:"required,min=1"` // chunks
	ChunkSize                    int    `mapstructure:"chunk_size" validate:"required,min=1"`     // lines per chunk
	RegularFilePattern           string `mapstructure:"regular_file_pattern" validate:"required,regexp"`
	ClientPerformanceFilePattern string `mapstructure:"client_performance_file_pattern" validate:"required,regexp"`
	From                         int64  `mapstructure:"from" validate:"min=0"` // epoch ms, 0 = unbounded
	To                           int64  `mapstructure:"to" validate:"min=0"`   // epoch ms, 0 = unbounded
}

// RulesConfig points at the request merge rule table.
type RulesConfig struct {
	File string `mapstructure:"file"`
}

// ReportConfig holds report output configuration.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir" validate:"required"`
	Overwrite bool   `mapstructure:"overwrite"`
	// RuntimeIntervals are the bucket boundaries (ms) of the summary's
	// per-series runtime distribution, e.g. "100,1000,3000,5000".
	RuntimeIntervals string `mapstructure:"runtime_intervals"`
}

// StatusServerConfig holds the optional progress/metrics HTTP endpoint configuration.
type StatusServerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}
