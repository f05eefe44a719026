package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"loadtest-report/internal/models"
	"loadtest-report/internal/shared/configs"
	"loadtest-report/internal/shared/filestorages"
	"loadtest-report/internal/shared/loggers"
	"loadtest-report/internal/shared/svcerrors"
	"loadtest-report/internal/stores"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRules = `
request_merge_rules:
  - id: 10
    url_pattern: "\\.png$"
    drop_on_match: true
  - id: 20
    new_name: "{n} [{s}]"
    status_code_pattern: "^\\d+$"
`

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T) *configs.Config {
	t.Helper()
	cfg, err := configs.DefaultConfig()
	require.NoError(t, err)
	cfg.Report.OutputDir = t.TempDir()
	cfg.Ingestion.ChunkSize = 2
	return cfg
}

func TestApp_Run_WritesReport(t *testing.T) {
	t.Parallel()

	input := t.TempDir()
	writeFile(t, input, "ac0001_00/TOrder/0/timers.csv", strings.Join([]string{
		"R,index,1700000000100,120,false,100,2000,200,https://x/,text/html,GET",
		"R,logo,1700000000200,12,false,0,10,200,https://x/logo.png,image/png,GET",
		"R,index,1700000000300,3400,true,100,2000,503,https://x/,text/html,GET",
		"T,TOrder,1700000002000,2000,false",
	}, "\n"))

	cfg := testConfig(t)
	cfg.Rules.File = writeFile(t, t.TempDir(), "rules.yml", testRules)

	application, err := NewWithLogger(cfg, input, loggers.Nop())
	require.NoError(t, err)

	result, err := application.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, application.RunID(), result.RunID)
	assert.FileExists(t, result.ReportPath)
	assert.Equal(t, int64(1700000000100), result.Summary.StartTime)
	assert.Equal(t, int64(1700000002000), result.Summary.EndTime)
	require.NotNil(t, result.Summary.Statistics)
	assert.Equal(t, int64(1), result.Summary.Statistics.Dropped)
	assert.Equal(t, int64(4), result.Summary.Statistics.Lines)

	output, err := filestorages.NewFileStorage(cfg.Report.OutputDir)
	require.NoError(t, err)
	stored, err := stores.NewReportStore(output, false).Get(context.Background(), result.RunID)
	require.NoError(t, err)

	names := make([]string, 0, len(stored.Series))
	for _, s := range stored.Series {
		names = append(names, s.TypeCode+":"+s.Name)
	}
	assert.Equal(t, []string{"R:index [200]", "R:index [503]", "T:TOrder"}, names)

	var failed *models.SeriesResult
	for _, s := range stored.Series {
		if s.Name == "index [503]" {
			failed = s
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, int64(1), failed.Errors)
	assert.Equal(t, map[string]int64{"3000..4999": 1}, failed.RuntimeBuckets)
}

func TestApp_Run_EmptyResults(t *testing.T) {
	t.Parallel()

	application, err := NewWithLogger(testConfig(t), t.TempDir(), loggers.Nop())
	require.NoError(t, err)

	result, err := application.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Summary.Series)
	assert.Zero(t, result.Summary.StartTime)
	assert.Zero(t, application.Progress().DirectoriesInFlight)
}

func TestApp_Run_MissingInputDirectory(t *testing.T) {
	t.Parallel()

	application, err := NewWithLogger(testConfig(t), filepath.Join(t.TempDir(), "missing"), loggers.Nop())
	require.NoError(t, err)

	_, err = application.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, svcerrors.ExitCodeConfiguration, svcerrors.ExitCodeOf(err))
}

func TestNew_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mutate       func(t *testing.T, cfg *configs.Config)
		expectedCode string
	}{
		{
			name:         "invalid log level",
			mutate:       func(t *testing.T, cfg *configs.Config) { cfg.Log.Level = "loud" },
			expectedCode: errCodeInvalidConfig,
		},
		{
			name:         "missing rule file",
			mutate:       func(t *testing.T, cfg *configs.Config) { cfg.Rules.File = filepath.Join(t.TempDir(), "nope.yml") },
			expectedCode: "RUL_1008",
		},
		{
			name: "backward jump in rule file",
			mutate: func(t *testing.T, cfg *configs.Config) {
				cfg.Rules.File = writeFile(t, t.TempDir(), "rules.yml", `
request_merge_rules:
  - id: 20
    new_name: "{n}"
    name_pattern: "x"
    match_jump_id: 10
`)
			},
			expectedCode: "RUL_1002",
		},
		{
			name:         "invalid runtime intervals",
			mutate:       func(t *testing.T, cfg *configs.Config) { cfg.Report.RuntimeIntervals = "100,50" },
			expectedCode: errCodeInvalidConfig,
		},
		{
			name:         "invalid file pattern",
			mutate:       func(t *testing.T, cfg *configs.Config) { cfg.Ingestion.RegularFilePattern = "(" },
			expectedCode: errCodeInvalidOptions,
		},
		{
			name:         "zero readers",
			mutate:       func(t *testing.T, cfg *configs.Config) { cfg.Ingestion.ReaderThreads = 0 },
			expectedCode: errCodeInvalidOptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t)
			tt.mutate(t, cfg)

			_, err := New(cfg, t.TempDir())
			require.Error(t, err)

			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected a ServiceError, got %v", err)
			assert.Equal(t, tt.expectedCode, svcErr.Code)
			assert.Equal(t, svcerrors.ExitCodeConfiguration, svcerrors.ExitCodeOf(err))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Equal(t, svcerrors.ExitCodeConfiguration, svcerrors.ExitCodeOf(err))
}

func TestLoadRuleTable(t *testing.T) {
	t.Parallel()

	table, err := LoadRuleTable("")
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	table, err = LoadRuleTable(writeFile(t, t.TempDir(), "rules.yml", testRules))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}
