package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Adimir123/manscan/internal/config"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "init" {
			t.Errorf("expected use 'init', got %q", cmd.Use)
		}
	})

	t.Run("has output flag with default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.DefValue != ruleFileName {
			t.Errorf("expected default %q, got %q", ruleFileName, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})
}

// TestRunInitCmd tests rule file generation.
func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates rule file", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), ruleFileName)

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatal(err)
		}

		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read generated file: %v", err)
		}
		if !strings.Contains(string(data), "permissions:") {
			t.Error("expected generated file to contain a permissions section")
		}
	})

	t.Run("generated file is a loadable rule file", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), ruleFileName)

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatal(err)
		}
		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := config.LoadRuleFile(outputPath); err != nil {
			t.Errorf("generated rule file fails to load: %v", err)
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), ruleFileName)
		if err := os.WriteFile(outputPath, []byte("existing"), 0o600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatal(err)
		}

		if err := runInitCmd(cmd, nil); err == nil {
			t.Error("expected error when file exists")
		}
	})

	t.Run("overwrites with force", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), ruleFileName)
		if err := os.WriteFile(outputPath, []byte("existing"), 0o600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("force", "true"); err != nil {
			t.Fatal(err)
		}

		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) == "existing" {
			t.Error("expected file to be overwritten")
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "nested", "dir", ruleFileName)

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", outputPath); err != nil {
			t.Fatal(err)
		}

		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(outputPath); err != nil {
			t.Errorf("expected file to exist: %v", err)
		}
	})
}
