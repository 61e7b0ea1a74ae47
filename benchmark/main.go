// Package main provides a performance benchmarking tool for the ckscope CLI.
// It measures end-to-end collection times across repositories of different sizes,
// running each test multiple times, treating the first store-backed run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - ckscope binary installed and available in PATH
// - java available in PATH and the CK jar placed at <workspace-dir>/ck.jar
// - Network access for shallow clones
// - For the stats benchmark: catalog.csv and summaries.csv in the workspace
//
// Usage: go run benchmark/main.go [workspace-dir]
//
//	workspace-dir: Directory holding the CK jar and pipeline files
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository  string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Workspace   string
	Timeout     time.Duration
	NoStoreRuns int
	StoreRuns   int
	TestRepos   []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [workspace-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workspace := os.Args[1]

	config := BenchmarkConfig{
		Workspace:   workspace,
		Timeout:     10 * time.Minute,
		NoStoreRuns: 3,
		StoreRuns:   4,
		// Ordered roughly by codebase size
		TestRepos: []string{
			"square/javapoet",
			"google/gson",
			"junit-team/junit4",
			"apache/commons-lang",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the results store using ckscope store clear
	fmt.Printf("Clearing results store...\n")
	clearCmd := exec.Command("ckscope", "store", "clear")
	clearCmd.Dir = config.Workspace
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Store cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the ckscope binary, java and the CK jar exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if ckscope is available
	if _, err := exec.LookPath("ckscope"); err != nil {
		return fmt.Errorf("ckscope binary not found in PATH")
	}

	// Check if java is available for the metrics tool
	if _, err := exec.LookPath("java"); err != nil {
		return fmt.Errorf("java not found in PATH")
	}

	// Check if the CK jar is in place
	jarPath := filepath.Join(config.Workspace, "ck.jar")
	if _, err := os.Stat(jarPath); os.IsNotExist(err) {
		return fmt.Errorf("CK jar not found at %s", jarPath)
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, no-store: %d runs, store: %d runs\n",
		len(config.TestRepos), config.Timeout, config.NoStoreRuns, config.StoreRuns)

	jarPath := filepath.Join(config.Workspace, "ck.jar")
	outputDir := filepath.Join(config.Workspace, "ck-results")

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		// Single-repository analysis (clone plus metrics tool)
		args := fmt.Sprintf("%s --ck-jar %s --scratch-dir %s --output-dir %s",
			repo, jarPath, config.Workspace, outputDir)
		desc := fmt.Sprintf("repository analysis (%s)", repo)
		result := runBenchmarkSuite(config, repo, "analyze", desc, args)
		results = append(results, result)
	}

	// Statistical analysis over the accumulated results, when present
	catalogPath := filepath.Join(config.Workspace, "catalog.csv")
	resultsPath := filepath.Join(config.Workspace, "summaries.csv")
	if fileExists(catalogPath) && fileExists(resultsPath) {
		args := fmt.Sprintf("--catalog %s --results %s --report %s",
			catalogPath, resultsPath, filepath.Join(config.Workspace, "report.md"))
		result := runBenchmarkSuite(config, "workspace", "stats", "statistical analysis", args)
		results = append(results, result)
	} else {
		fmt.Printf("Skipping stats benchmark: no catalog.csv and summaries.csv in %s\n", config.Workspace)
	}

	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, repo, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s\n", description)

	// Helper to run a benchmark phase
	runPhase := func(storeBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, extraArgs, storeBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-store runs
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: Store-backed runs
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:  repo,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a ckscope command multiple times with the specified store backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command, extraArgs, storeBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "--store-backend", storeBackend}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("ckscope", args...)
		cmd.Dir = config.Workspace

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	if command == "stats" {
		completionPhrase = "Statistical analysis completed in"
	} else {
		completionPhrase = "Analysis completed in"
	}

	return strings.Contains(outputStr, completionPhrase) &&
		strings.Contains(outputStr, "Showing")
}

// fileExists reports whether path exists and is a regular file
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/ckscope_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"repo", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "analyze", "Repository Analysis:")
	printCommandSummary(results, "stats", "Statistical Analysis:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-20s: No-store: %s, Cold: %s, Warm: %s\n", result.Repository, result.NoStoreTime, result.ColdTime, result.WarmTime)
		}
	}
}
