package configs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.yml")
	require.NoError(t, err)
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	validConfig := `log:
  level: debug
ingestion:
  reader_threads: 3
  parser_threads: 5
  queue_capacity: 16
  chunk_size: 250
  regular_file_pattern: '^timers\.csv$'
  client_performance_file_pattern: '^timers-wd\.csv$'
  from: 1000
  to: 2000
rules:
  file: ./configs/merge-rules.yml
report:
  output_dir: ./out
  overwrite: true
status_server:
  enabled: true
  port: 9191
`

	cfg, err := LoadConfig(writeTempConfig(t, validConfig))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Ingestion.ReaderThreads)
	assert.Equal(t, 5, cfg.Ingestion.ParserThreads)
	assert.Equal(t, 16, cfg.Ingestion.QueueCapacity)
	assert.Equal(t, 250, cfg.Ingestion.ChunkSize)
	assert.Equal(t, `^timers\.csv$`, cfg.Ingestion.RegularFilePattern)
	assert.Equal(t, `^timers-wd\.csv$`, cfg.Ingestion.ClientPerformanceFilePattern)
	assert.Equal(t, int64(1000), cfg.Ingestion.From)
	assert.Equal(t, int64(2000), cfg.Ingestion.To)
	assert.Equal(t, "./configs/merge-rules.yml", cfg.Rules.File)
	assert.Equal(t, "./out", cfg.Report.OutputDir)
	assert.True(t, cfg.Report.Overwrite)
	assert.True(t, cfg.StatusServer.Enabled)
	assert.Equal(t, 9191, cfg.StatusServer.Port)
}

func TestLoadConfig_DefaultsApplied(t *testing.T) {
	minimalConfig := `report:
  output_dir: ./out
`

	cfg, err := LoadConfig(writeTempConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Ingestion.ReaderThreads)
	assert.Equal(t, 4, cfg.Ingestion.ParserThreads)
	assert.Equal(t, 64, cfg.Ingestion.QueueCapacity)
	assert.Equal(t, 1000, cfg.Ingestion.ChunkSize)
	assert.Equal(t, defaultRegularFilePattern, cfg.Ingestion.RegularFilePattern)
	assert.Equal(t, defaultClientPerformanceFilePattern, cfg.Ingestion.ClientPerformanceFilePattern)
	assert.False(t, cfg.StatusServer.Enabled)
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, "./reports", cfg.Report.OutputDir)
	assert.Equal(t, "100,1000,3000,5000", cfg.Report.RuntimeIntervals)
	assert.Equal(t, 9090, cfg.StatusServer.Port)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		errContains string
	}{
		{
			name: "zero reader threads",
			config: `ingestion:
  reader_threads: -1
`,
			errContains: "ingestion.readerthreads",
		},
		{
			name: "invalid regular file pattern",
			config: `ingestion:
  regular_file_pattern: 'timers(['
`,
			errContains: "ingestion.regularfilepattern (invalid regular expression)",
		},
		{
			name: "status server port out of range",
			config: `status_server:
  enabled: true
  port: 70000
`,
			errContains: "statusserver.port (max=65535)",
		},
		{
			name: "from after to",
			config: `ingestion:
  from: 5000
  to: 10
`,
			errContains: "ingestion.from (5000) is after ingestion.to (10)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeTempConfig(t, tt.config))
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig("./does-not-exist.yml")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_ShippedSample(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig("../../../configs/configs.yml")
	require.NoError(t, err)
	assert.Equal(t, "./configs/merge-rules.yml", cfg.Rules.File)
	assert.Equal(t, 64, cfg.Ingestion.QueueCapacity)
	assert.False(t, cfg.StatusServer.Enabled)
}
