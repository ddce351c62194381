// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"urbar-parse/internal/config"
	"urbar-parse/internal/core"
	"urbar-parse/internal/help"
	"urbar-parse/internal/ingest"
	"urbar-parse/internal/observability"
	"urbar-parse/internal/parallel"
	"urbar-parse/internal/paths"
	"urbar-parse/internal/record"
	"urbar-parse/internal/version"

	"urbar-parse/internal/formatters"
	_ "urbar-parse/internal/formatters/csv"
	_ "urbar-parse/internal/formatters/json"
	_ "urbar-parse/internal/formatters/text"
	_ "urbar-parse/internal/formatters/yaml"

	"golang.org/x/term"
)

// cliFlags holds the raw flag values before config/profile resolution
type cliFlags struct {
	inputFile        string
	singleName       string
	configFile       string
	profileName      string
	listProfiles     bool
	outputFormat     string
	confidenceLevels string
	rulesFile        string
	territory        string
	workers          int
	verbose          bool
	debug            bool
	outputFile       string
	noColor          bool
	showAlternatives bool
	showStats        bool
	showHelp         bool
	showVersion      bool

	// CSV ingest column mapping
	csvInput      bool
	colTerritory  string
	colSequence   string
	colListNumber string
	colRawName    string
}

// finalConfig is the effective configuration after merging config file,
// profile and explicit flags (flags win, then profile, then defaults)
type finalConfig struct {
	format           string
	confidenceLevels string
	rulesFile        string
	territory        string
	workers          int
	verbose          bool
	debug            bool
	noColor          bool
	showAlternatives bool
}

func main() {
	flags := parseFlags()

	if flags.showHelp {
		showHelp(flags)
		return
	}
	if flags.showVersion {
		fmt.Println(version.Info())
		return
	}

	cfg := loadConfiguration(flags.configFile)

	if flags.listProfiles {
		printProfiles(cfg)
		return
	}

	var activeProfile *config.Profile
	if flags.profileName != "" {
		activeProfile = cfg.GetProfile(flags.profileName)
		if activeProfile == nil {
			fmt.Fprintf(os.Stderr, "Error: profile '%s' not found (available: %s)\n",
				flags.profileName, strings.Join(cfg.ListProfiles(), ", "))
			os.Exit(1)
		}
	}

	final := resolveConfig(flags, cfg, activeProfile)

	// Force plain output when stdout is not a terminal
	if !final.noColor && !isTerminal(os.Stdout) {
		final.noColor = true
	}

	observer := buildObserver(final)

	engine, err := core.NewEngine(final.rulesFile, observer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flags.singleName != "" {
		if err := runSingle(engine, flags.singleName, final); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flags.inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: no input specified (use -file, -name, or -file - for stdin)")
		printUsage()
		os.Exit(1)
	}

	if err := runBatch(engine, flags, final, observer); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *cliFlags {
	flags := &cliFlags{}

	flag.StringVar(&flags.inputFile, "file", "", "Path to the input file, or '-' for stdin")
	flag.StringVar(&flags.singleName, "name", "", "Parse a single raw name string and exit")
	flag.StringVar(&flags.configFile, "config", "", "Path to configuration file (YAML)")
	flag.StringVar(&flags.profileName, "profile", "", "Profile name to use from config file")
	flag.BoolVar(&flags.listProfiles, "list-profiles", false, "List available profiles in config file")
	flag.StringVar(&flags.outputFormat, "format", "", "Output format: text, json, csv, yaml (default: text)")
	flag.StringVar(&flags.confidenceLevels, "confidence", "", "Tag confidence levels to display: high, medium, low, or combinations like 'high,medium'")
	flag.StringVar(&flags.rulesFile, "rules", "", "Path to a marker-rules file overriding the embedded defaults (YAML)")
	flag.StringVar(&flags.territory, "territory", "", "Cadastral territory stamped on records read from plain line input")
	flag.IntVar(&flags.workers, "workers", 0, "Number of parallel workers (default: one per CPU)")
	flag.BoolVar(&flags.verbose, "verbose", false, "Display detailed information for each record")
	flag.BoolVar(&flags.debug, "debug", false, "Enable debug logging of pipeline timing")
	flag.StringVar(&flags.outputFile, "output", "", "Path to output file (if not specified, output to stdout)")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.showAlternatives, "show-alternatives", false, "Display discarded alternative values on reconciled tags")
	flag.BoolVar(&flags.showStats, "stats", false, "Print batch statistics to stderr after processing")
	flag.BoolVar(&flags.showHelp, "help", false, "Show help information")
	flag.BoolVar(&flags.showVersion, "version", false, "Show version information")

	flag.BoolVar(&flags.csvInput, "csv", false, "Treat input as CSV with a header row")
	flag.StringVar(&flags.colTerritory, "col-territory", "territory", "CSV column holding the territory")
	flag.StringVar(&flags.colSequence, "col-sequence", "sequence_number", "CSV column holding the sequence number")
	flag.StringVar(&flags.colListNumber, "col-list-number", "ownership_list_number", "CSV column holding the ownership list number")
	flag.StringVar(&flags.colRawName, "col-raw-name", "raw_name", "CSV column holding the raw owner name")

	flag.Parse()

	// Bare positional argument is treated as the input file
	if flags.inputFile == "" && flag.NArg() > 0 {
		flags.inputFile = flag.Arg(0)
	}

	return flags
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

// resolveConfig merges defaults, config file, profile and flags, in that
// order of increasing precedence
func resolveConfig(flags *cliFlags, cfg *config.Config, activeProfile *config.Profile) finalConfig {
	var final finalConfig

	final.format = "text"
	if cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}

	final.confidenceLevels = "all"
	if cfg.Defaults.ConfidenceLevels != "" {
		final.confidenceLevels = cfg.Defaults.ConfidenceLevels
	}
	if activeProfile != nil && activeProfile.ConfidenceLevels != "" {
		final.confidenceLevels = activeProfile.ConfidenceLevels
	}
	if isFlagSet("confidence") && flags.confidenceLevels != "" {
		final.confidenceLevels = flags.confidenceLevels
	}

	// A markers.yaml in the standard config directory is the baseline,
	// overridden by config file, profile and flag in the usual order
	final.rulesFile = paths.FindRulesFile()
	if cfg.Defaults.RulesFile != "" {
		final.rulesFile = cfg.Defaults.RulesFile
	}
	if activeProfile != nil && activeProfile.RulesFile != "" {
		final.rulesFile = activeProfile.RulesFile
	}
	if isFlagSet("rules") {
		final.rulesFile = flags.rulesFile
	}

	final.territory = cfg.Defaults.Territory
	if activeProfile != nil && activeProfile.Territory != "" {
		final.territory = activeProfile.Territory
	}
	if isFlagSet("territory") {
		final.territory = flags.territory
	}

	final.workers = cfg.Defaults.Workers
	if activeProfile != nil && activeProfile.Workers != 0 {
		final.workers = activeProfile.Workers
	}
	if isFlagSet("workers") {
		final.workers = flags.workers
	}

	final.verbose = cfg.Defaults.Verbose
	if activeProfile != nil {
		final.verbose = activeProfile.Verbose
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	final.debug = cfg.Defaults.Debug
	if activeProfile != nil {
		final.debug = activeProfile.Debug
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	final.noColor = cfg.Defaults.NoColor
	if activeProfile != nil {
		final.noColor = activeProfile.NoColor
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}

	final.showAlternatives = cfg.Defaults.ShowAlternatives
	if activeProfile != nil {
		final.showAlternatives = activeProfile.ShowAlternatives
	}
	if isFlagSet("show-alternatives") {
		final.showAlternatives = flags.showAlternatives
	}

	return final
}

// isFlagSet checks whether a flag was explicitly provided on the command line
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func buildObserver(final finalConfig) *observability.StandardObserver {
	level := observability.ObservabilityOff
	if final.debug {
		level = observability.ObservabilityDebug
	}
	return observability.NewStandardObserver(level, os.Stderr)
}

// runSingle parses one raw name string and prints the result
func runSingle(engine *core.Engine, rawName string, final finalConfig) error {
	result := engine.Process(record.Record{Territory: final.territory, RawName: rawName})
	return writeOutput([]*core.Result{result}, final, "")
}

// runBatch reads, processes and formats a whole input file
func runBatch(engine *core.Engine, flags *cliFlags, final finalConfig, observer *observability.StandardObserver) error {
	records, err := readRecords(flags, final)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No records found in input")
		return nil
	}

	start := time.Now()
	processed := parallel.ProcessBatch(records, final.workers, engine, observer)

	var results []*core.Result
	var failed int
	for _, res := range processed {
		if res == nil {
			continue
		}
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Warning: %v\n", res.Err)
			continue
		}
		results = append(results, res.Output)
	}

	if err := writeOutput(results, final, flags.outputFile); err != nil {
		return err
	}

	if flags.showStats {
		printStats(results, failed, time.Since(start))
	}
	return nil
}

// readRecords reads the batch input as CSV or plain lines
func readRecords(flags *cliFlags, final finalConfig) ([]record.Record, error) {
	reader := os.Stdin
	if flags.inputFile != "-" {
		f, err := os.Open(flags.inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		reader = f
	}

	if flags.csvInput {
		cols := ingest.ColumnMap{
			Territory:      flags.colTerritory,
			SequenceNumber: flags.colSequence,
			ListNumber:     flags.colListNumber,
			RawName:        flags.colRawName,
		}
		return ingest.ReadCSV(reader, cols)
	}
	return ingest.ReadLines(reader, final.territory)
}

// writeOutput formats results and writes them to the output file or stdout
func writeOutput(results []*core.Result, final finalConfig, outputFile string) error {
	options := formatters.FormatterOptions{
		ConfidenceLevel:  core.ParseConfidenceLevels(final.confidenceLevels),
		Verbose:          final.verbose,
		NoColor:          final.noColor,
		ShowAlternatives: final.showAlternatives,
	}

	output, err := formatters.Export(final.format, results, options)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output+"\n"), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	fmt.Println(output)
	return nil
}

// printStats reports batch totals on stderr
func printStats(results []*core.Result, failed int, elapsed time.Duration) {
	var conflicts, parseErrors, spf int
	levels := map[string]int{}
	for _, res := range results {
		conflicts += len(res.Conflicts)
		parseErrors += len(res.Parsed.ParseErrors)
		if res.Parsed.IsSPF() {
			spf++
		}
		levels[core.ConfidenceLevel(res.Parsed.ParseScore)]++
	}

	fmt.Fprintf(os.Stderr, "Processed %d records in %s (%d failed)\n", len(results), elapsed.Round(time.Millisecond), failed)
	fmt.Fprintf(os.Stderr, "Parse confidence: %d high, %d medium, %d low\n", levels["high"], levels["medium"], levels["low"])
	fmt.Fprintf(os.Stderr, "Conflicts: %d, parse errors: %d, state-fund records: %d\n", conflicts, parseErrors, spf)
}

func printProfiles(cfg *config.Config) {
	fmt.Println("Available profiles:")
	for _, name := range cfg.ListProfiles() {
		profile := cfg.GetProfile(name)
		if profile != nil && profile.Description != "" {
			fmt.Printf("  %-10s %s\n", name, profile.Description)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}

// showHelp renders the general help screen, the topics list, or one topic
// detail page depending on the positional argument after -help
func showHelp(flags *cliFlags) {
	helpSystem := help.NewSystem(flags.noColor || !isTerminal(os.Stdout))

	topic := flag.Arg(0)
	switch {
	case topic == "":
		helpSystem.ShowGeneralHelp()
	case strings.EqualFold(topic, "topics"):
		helpSystem.ShowTopicsHelp()
	default:
		if !helpSystem.ShowTopicHelp(topic) {
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Printf("%s\n\n", version.Info())
	fmt.Println("Usage:")
	fmt.Println("  urbar-parse -file records.csv -csv -format json")
	fmt.Println("  urbar-parse -file names.txt -territory 'Horná Lehota'")
	fmt.Println("  urbar-parse -name 'Batóová Júlia r. Szivecová'")
	fmt.Println("  cat names.txt | urbar-parse -file -")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
