package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"loadtest-report/internal/app"

	"github.com/klauspost/compress/gzip"
)

// ### Start - fixed data shape
// The expected results below are derived from these values.
const (
	agents            = 4
	usersPerAgent     = 8
	iterationsPerUser = 250
	baseTime          = int64(1766944980000) // 2025-12-28T18:03:00Z
)

var (
	testCases = []string{"TBrowse", "TOrder"}
	pages     = []struct {
		name string
		url  string
	}{
		{name: "Homepage", url: "https://shop.example.com/"},
		{name: "Checkout", url: "https://shop.example.com/checkout/payment"},
		{name: "Logo", url: "https://shop.example.com/img/logo.png"},
		{name: "Search", url: "https://shop.example.com/search?q=shoes"},
	}
)

// ### End - fixed data shape

const scenarioRules = `
request_merge_rules:
  - id: 10
    url_pattern: '\.png$'
    drop_on_match: true
  - id: 20
    new_name: '{n} [{s}]'
    status_code_pattern: '^5'
  - id: 30
    new_name: '{n} {u:1}'
    url_pattern: '/checkout/(\w+)'
`

type userDir struct {
	agent    string
	testCase string
	user     int
	gzipped  bool
}

// main runs the e2e scenario: 001_merged_request_summary
//
// It writes a results tree of agents x test cases x users, with every other
// user's timer file gzipped and one malformed line per user, then runs a
// report in-process and checks the summary.
//
// Expected results:
//   - every Logo request is dropped by rule 10
//   - every 10th Homepage request fails with 503 and is reported as "Homepage [503]"
//   - Checkout requests are reported as "Checkout payment"
//   - one decode error per user directory
func main() {
	root := getEnv("RESULTS_DIR", filepath.Join(os.TempDir(), "loadtest-report-e2e"))
	parallel := getEnvInt("PARALLEL", 4)
	keepFiles := getEnvBool("KEEP_FILES", false)

	if err := os.RemoveAll(root); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to clean %s: %v\n", root, err)
		os.Exit(1)
	}
	if !keepFiles {
		defer os.RemoveAll(root)
	}
	inputDir := filepath.Join(root, "results")
	outputDir := filepath.Join(root, "reports")

	fmt.Println("Starting e2e scenario: 001_merged_request_summary")
	fmt.Printf("RESULTS_DIR: %s\n", root)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Println()

	dirs := make([]userDir, 0, agents*len(testCases)*usersPerAgent)
	for a := 0; a < agents; a++ {
		for _, tc := range testCases {
			for u := 0; u < usersPerAgent; u++ {
				dirs = append(dirs, userDir{
					agent:    fmt.Sprintf("ac%04d_00", a+1),
					testCase: tc,
					user:     u,
					gzipped:  u%2 == 1,
				})
			}
		}
	}

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	var linesWritten int64

	for _, dir := range dirs {
		wg.Add(1)
		workerChan <- struct{}{}

		go func(d userDir) {
			defer wg.Done()
			defer func() { <-workerChan }()

			n, err := writeUserDir(inputDir, d)
			if err != nil {
				mu.Lock()
				errors = append(errors, fmt.Errorf("%s/%s/%d: %w", d.agent, d.testCase, d.user, err))
				mu.Unlock()
				return
			}
			atomic.AddInt64(&linesWritten, int64(n))
		}(dir)
	}
	wg.Wait()

	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d directories could not be written: %v\n", len(errors), errors[0])
		os.Exit(1)
	}
	fmt.Printf("Generated %d user directories, %d lines\n", len(dirs), atomic.LoadInt64(&linesWritten))

	rulesFile := filepath.Join(root, "rules.yml")
	if err := os.WriteFile(rulesFile, []byte(scenarioRules), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write rules: %v\n", err)
		os.Exit(1)
	}

	cfg, err := app.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(2)
	}
	cfg.Log.Level = "warn"
	cfg.Rules.File = rulesFile
	cfg.Report.OutputDir = outputDir
	cfg.Ingestion.ChunkSize = 100

	application, err := app.New(cfg, inputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(2)
	}
	result, err := application.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Report run failed: %v\n", err)
		os.Exit(1)
	}

	users := int64(len(dirs))
	perUser := int64(iterationsPerUser)
	expected := map[string]int64{
		"A:Iteration":        users * perUser,
		"R:Homepage":         users * (perUser - perUser/10),
		"R:Homepage [503]":   users * (perUser / 10),
		"R:Checkout payment": users * perUser,
		"R:Search":           users * perUser,
	}

	got := make(map[string]int64)
	for _, s := range result.Summary.Series {
		got[s.TypeCode+":"+s.Name] = s.Count
	}

	failures := 0
	for key, want := range expected {
		if got[key] != want {
			fmt.Fprintf(os.Stderr, "MISMATCH %s: got %d, want %d\n", key, got[key], want)
			failures++
		}
	}
	stats := result.Summary.Statistics
	if stats.Dropped != users*perUser {
		fmt.Fprintf(os.Stderr, "MISMATCH dropped: got %d, want %d\n", stats.Dropped, users*perUser)
		failures++
	}
	if stats.DecodeErrors != users {
		fmt.Fprintf(os.Stderr, "MISMATCH decode errors: got %d, want %d\n", stats.DecodeErrors, users)
		failures++
	}

	fmt.Println()
	fmt.Println("=== Statistics ===")
	fmt.Printf("Directories: %d\n", stats.Directories)
	fmt.Printf("Files: %d\n", stats.Files)
	fmt.Printf("Lines: %d\n", stats.Lines)
	fmt.Printf("Records: %d\n", stats.Records)
	fmt.Printf("Dropped: %d\n", stats.Dropped)
	fmt.Printf("Renamed: %d\n", stats.Renamed)
	fmt.Printf("Decode errors: %d\n", stats.DecodeErrors)
	fmt.Printf("Report: %s\n", result.ReportPath)

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "Scenario failed with %d mismatches\n", failures)
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func writeUserDir(inputDir string, d userDir) (int, error) {
	var lines []string
	t := baseTime + int64(d.user)*1000
	for i := 0; i < iterationsPerUser; i++ {
		lines = append(lines, fmt.Sprintf("A,Iteration,%d,900,false", t))
		for p, page := range pages {
			code := 200
			if page.name == "Homepage" && i%10 == 0 {
				code = 503
			}
			runtime := 50 + (i*37+p*101)%4000
			lines = append(lines, fmt.Sprintf("R,%s,%d,%d,%t,120,2048,%d,%s,text/html,GET",
				page.name, t+int64(p)+1, runtime, code >= 500, code, page.url))
		}
		t += 2000
	}
	lines = append(lines, "R,broken,not-a-time")

	content := []byte(strings.Join(lines, "\n") + "\n")
	name := "timers.csv"
	if d.gzipped {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(content); err != nil {
			return 0, err
		}
		if err := w.Close(); err != nil {
			return 0, err
		}
		content = buf.Bytes()
		name += ".gz"
	}

	dir := filepath.Join(inputDir, d.agent, d.testCase, strconv.Itoa(d.user))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	return len(lines), os.WriteFile(filepath.Join(dir, name), content, 0o644)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
