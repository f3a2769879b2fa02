package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Adimir123/manscan/internal/analyzer"
	"github.com/Adimir123/manscan/internal/config"
	"github.com/Adimir123/manscan/internal/database"
	"github.com/Adimir123/manscan/internal/log"
	"github.com/Adimir123/manscan/internal/manifest"
	"github.com/Adimir123/manscan/internal/model"
	"github.com/Adimir123/manscan/internal/pipeline"
	"github.com/Adimir123/manscan/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Analyze an Android manifest for security issues",
		Long: `Scan parses an AndroidManifest.xml and analyzes it for:
- Exported components without permission protection
- Dangerous and unclassified permission requests
- Deep link handlers and their URI surface
- Providers that grant URI permissions

String resource references (@string/name) are resolved against the
string-resource file when available. A missing strings file degrades
to literal values, it never aborts the analysis.

Examples:
  # Analyze a manifest with the default strings path
  manscan scan -m AndroidManifest.xml

  # Point at an explicit strings.xml
  manscan scan -m AndroidManifest.xml -s res/values/strings.xml

  # Output a JSON report
  manscan scan -m AndroidManifest.xml -f json

  # Classify vendor permissions via a rule file
  manscan scan -m AndroidManifest.xml -c rules.yaml

Rule file (.manscan) example:
  permissions:
    com.vendor.permission.SECRET_API: signature
    com.vendor.permission.TRACKING: dangerous`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	// Input flags
	cmd.Flags().StringP("manifest", "m", "",
		"Path to the AndroidManifest.xml to analyze (required)")
	cmd.Flags().StringP("strings", "s", config.DefaultStringsPath,
		"Path to the string-resource XML for @string/ resolution")

	// Rule file
	cmd.Flags().StringP("rules", "c", "",
		"Rule file path (default: .manscan in current or home directory)")

	// Report flags
	cmd.Flags().StringP("format", "f", config.FormatText,
		"Report format: text, json, or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-color", false,
		"Disable ANSI colors in text output")

	// History flags
	cmd.Flags().Bool("no-db", false,
		"Do not save the report to the scan history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ManifestPath, err = cmd.Flags().GetString("manifest")
	if err != nil {
		return nil, err
	}

	cfg.StringsPath, err = cmd.Flags().GetString("strings")
	if err != nil {
		return nil, err
	}

	cfg.Format, err = cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoColor, err = cmd.Flags().GetBool("no-color")
	if err != nil {
		return nil, err
	}

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB

	cfg.RuleFilePath, err = cmd.Flags().GetString("rules")
	if err != nil {
		return nil, err
	}

	// Load rule file.
	// If user explicitly specified a rule file path, error if not found.
	// If no path specified, silently run without rules when no file is found.
	explicitRulePath := cfg.RuleFilePath != ""
	rulePath := config.FindRuleFile(cfg.RuleFilePath)

	if rulePath != "" {
		cfg.Rules, err = config.LoadRuleFile(rulePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load rule file %s: %w", rulePath, err)
		}
	} else if explicitRulePath {
		return nil, fmt.Errorf("%w: %s", config.ErrRuleFileNotFound, cfg.RuleFilePath)
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Sensitive attribute values are masked before they reach stderr.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewSecureLogger(os.Stderr, verbose)
}

// runScan executes the analysis.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"manifest", cfg.ManifestPath,
		"strings", cfg.StringsPath,
		"format", cfg.Format,
		"saveToDB", cfg.SaveToDB,
	)

	// A malformed or unreadable manifest is fatal.
	doc, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		var parseErr *manifest.ParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("cannot analyze manifest: %w", parseErr)
		}
		return err
	}

	// A missing or malformed strings file degrades to literal values.
	table := manifest.LoadStrings(cfg.StringsPath)
	if len(table) == 0 {
		logger.Debug("no string resources available", "path", cfg.StringsPath)
	}

	scanReport := model.NewReport(doc.Package)

	p := createPipeline(doc, table, cfg, logger)

	startTime := time.Now()
	if err := p.Execute(ctx, scanReport); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	logger.Info("analysis completed",
		"package", doc.Package,
		"findings", scanReport.TotalFindings(),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	if err := outputReport(cfg, scanReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return saveReport(ctx, cfg, scanReport, logger)
}

// createPipeline builds the analysis pipeline for a parsed manifest.
func createPipeline(doc *manifest.Document, table manifest.StringTable, cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	var permOpts []analyzer.PermissionOption
	if cfg.Rules != nil {
		permOpts = append(permOpts, analyzer.WithExtraPermissions(cfg.Rules.PermissionLevels()))
	}

	p := pipeline.New(
		pipeline.WithLogger(logger),
	)
	p.AddSteps(analyzer.Steps(doc, table, permOpts...)...)
	return p
}

// outputReport outputs the analysis report in the requested format.
func outputReport(cfg *config.Config, scanReport *model.Report) error {
	var output *os.File
	if cfg.OutputFile != "" {
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch cfg.Format {
	case config.FormatJSON:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case config.FormatMarkdown:
		writer = report.NewMarkdownWriter(output)
	default:
		// Colors are dropped when writing to a file.
		noColor := cfg.NoColor || cfg.OutputFile != ""
		writer = report.NewTextWriter(output,
			report.WithNoColor(noColor),
			report.WithVerbose(cfg.Verbose),
		)
	}

	_, err := writer.Write(scanReport)
	return err
}

// saveReport saves the report to the history database when enabled.
func saveReport(ctx context.Context, cfg *config.Config, scanReport *model.Report, logger *slog.Logger) error {
	if !cfg.SaveToDB {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SaveReport(ctx, scanReport); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	logger.Info("report saved to database", "package", scanReport.Package, "dir", cfg.DBDir)
	return nil
}
