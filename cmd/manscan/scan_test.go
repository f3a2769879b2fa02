package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Adimir123/manscan/internal/config"
	"github.com/Adimir123/manscan/internal/model"
)

// sampleManifest is a minimal manifest exercising every analysis stage.
const sampleManifest = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android"
    package="com.example.app">
    <uses-permission android:name="android.permission.CAMERA"/>
    <uses-permission android:name="android.permission.INTERNET"/>
    <application>
        <activity android:name="com.example.app.MainActivity">
            <intent-filter>
                <action android:name="android.intent.action.VIEW"/>
                <category android:name="android.intent.category.BROWSABLE"/>
                <data android:scheme="https" android:host="example.com"/>
            </intent-filter>
        </activity>
    </application>
</manifest>`

// writeManifest writes the sample manifest to a temp file and returns its path.
func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan" {
			t.Errorf("expected use 'scan', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has manifest flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("manifest")
		if flag == nil {
			t.Fatal("expected manifest flag")
		}
		if flag.Shorthand != "m" {
			t.Errorf("expected shorthand 'm', got %q", flag.Shorthand)
		}
	})

	t.Run("has strings flag with default path", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("strings")
		if flag == nil {
			t.Fatal("expected strings flag")
		}
		if flag.Shorthand != "s" {
			t.Errorf("expected shorthand 's', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultStringsPath {
			t.Errorf("expected default %q, got %q", config.DefaultStringsPath, flag.DefValue)
		}
	})

	t.Run("has format flag defaulting to text", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("format")
		if flag == nil {
			t.Fatal("expected format flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.FormatText {
			t.Errorf("expected default 'text', got %q", flag.DefValue)
		}
	})

	t.Run("has rules flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("rules")
		if flag == nil {
			t.Fatal("expected rules flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has no-color flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("no-color") == nil {
			t.Error("expected no-color flag")
		}
	})

	t.Run("has no-db flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("no-db") == nil {
			t.Error("expected no-db flag")
		}
	})
}

// TestSetupLogger tests the logger setup.
func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("creates logger for verbose mode", func(t *testing.T) {
		t.Parallel()
		if setupLogger(true) == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("creates logger for non-verbose mode", func(t *testing.T) {
		t.Parallel()
		if setupLogger(false) == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestBuildConfig tests translating flags into configuration.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("populates config from flags", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("manifest", "AndroidManifest.xml"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("format", "json"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("no-db", "true"); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ManifestPath != "AndroidManifest.xml" {
			t.Errorf("unexpected manifest path: %q", cfg.ManifestPath)
		}
		if cfg.Format != config.FormatJSON {
			t.Errorf("unexpected format: %q", cfg.Format)
		}
		if cfg.SaveToDB {
			t.Error("expected database saving to be disabled")
		}
		if cfg.StringsPath != config.DefaultStringsPath {
			t.Errorf("unexpected strings path: %q", cfg.StringsPath)
		}
	})

	t.Run("errors on explicit missing rule file", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("manifest", "AndroidManifest.xml"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("rules", filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd); !errors.Is(err, config.ErrRuleFileNotFound) {
			t.Errorf("expected ErrRuleFileNotFound, got %v", err)
		}
	})

	t.Run("loads explicit rule file", func(t *testing.T) {
		t.Parallel()

		rulePath := filepath.Join(t.TempDir(), "rules.yaml")
		ruleContent := "permissions:\n  com.vendor.permission.X: dangerous\n"
		if err := os.WriteFile(rulePath, []byte(ruleContent), 0o600); err != nil {
			t.Fatal(err)
		}

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("manifest", "AndroidManifest.xml"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("rules", rulePath); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Rules == nil || cfg.Rules.Permissions["com.vendor.permission.X"] != "dangerous" {
			t.Error("expected rule file to be loaded")
		}
	})
}

// TestRunScan tests the full analysis flow against a real manifest file.
func TestRunScan(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON report for valid manifest", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "report.json")

		cfg := config.NewConfig()
		cfg.ManifestPath = writeManifest(t, sampleManifest)
		cfg.Format = config.FormatJSON
		cfg.OutputFile = outputPath
		cfg.SaveToDB = false

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		if err := runScan(context.Background(), cfg, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}

		var decoded model.Report
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}
		if decoded.Package != "com.example.app" {
			t.Errorf("unexpected package: %q", decoded.Package)
		}
		if len(decoded.Components) != 1 {
			t.Errorf("expected 1 component, got %d", len(decoded.Components))
		}
		if len(decoded.DeepLinks) != 1 {
			t.Errorf("expected 1 deep link, got %d", len(decoded.DeepLinks))
		}
		if decoded.Summary["high"] != 1 {
			t.Errorf("expected 1 high finding, got %d", decoded.Summary["high"])
		}
	})

	t.Run("fails on missing manifest", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.ManifestPath = filepath.Join(t.TempDir(), "missing.xml")
		cfg.SaveToDB = false

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		err := runScan(context.Background(), cfg, logger)
		if err == nil {
			t.Fatal("expected error for missing manifest")
		}
		if !strings.Contains(err.Error(), "cannot analyze manifest") {
			t.Errorf("unexpected error message: %v", err)
		}
	})

	t.Run("fails on malformed manifest", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.ManifestPath = writeManifest(t, "<manifest><unclosed>")
		cfg.SaveToDB = false

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		if err := runScan(context.Background(), cfg, logger); err == nil {
			t.Fatal("expected error for malformed manifest")
		}
	})

	t.Run("missing strings file degrades to literals", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "report.json")

		cfg := config.NewConfig()
		cfg.ManifestPath = writeManifest(t, sampleManifest)
		cfg.StringsPath = filepath.Join(t.TempDir(), "nonexistent.xml")
		cfg.Format = config.FormatJSON
		cfg.OutputFile = outputPath
		cfg.SaveToDB = false

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		if err := runScan(context.Background(), cfg, logger); err != nil {
			t.Fatalf("expected analysis to proceed without strings file, got %v", err)
		}
	})

	t.Run("saves report to database when enabled", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "report.json")

		cfg := config.NewConfig()
		cfg.ManifestPath = writeManifest(t, sampleManifest)
		cfg.Format = config.FormatJSON
		cfg.OutputFile = outputPath
		cfg.SaveToDB = true
		cfg.DBDir = t.TempDir()

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		if err := runScan(context.Background(), cfg, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(cfg.DBDir, "manscan.db")); err != nil {
			t.Errorf("expected database file to be created: %v", err)
		}
	})
}

// TestOutputReportFormats tests that each format produces output.
func TestOutputReportFormats(t *testing.T) {
	t.Parallel()

	buildReport := func() *model.Report {
		r := model.NewReport("com.example.app")
		r.AddFinding(model.NewFinding(
			"dangerous_permission",
			"Dangerous permission requested",
			"",
			"",
			"android.permission.CAMERA",
		))
		return r
	}

	for _, format := range []string{config.FormatText, config.FormatJSON, config.FormatMarkdown} {
		format := format
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			outputPath := filepath.Join(t.TempDir(), "report."+format)

			cfg := config.NewConfig()
			cfg.Format = format
			cfg.OutputFile = outputPath

			if err := outputReport(cfg, buildReport()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			data, err := os.ReadFile(outputPath)
			if err != nil {
				t.Fatalf("failed to read report: %v", err)
			}
			if len(data) == 0 {
				t.Error("expected non-empty report")
			}
		})
	}
}
