package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/manscan.yaml
var ruleTemplate embed.FS

// ruleFileName is the default rule file name.
const ruleFileName = ".manscan"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new manscan rule file",
		Long: `Init creates a new .manscan rule file in the current directory.

The generated file includes:
- Commented examples for classifying vendor permissions
- Documentation for the accepted protection levels

Examples:
  # Create .manscan in current directory
  manscan init

  # Create rule file at a specific path
  manscan init -o rules.yaml

  # Force overwrite existing file
  manscan init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", ruleFileName,
		"Output file path for the rule file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing rule file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("rule file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := ruleTemplate.ReadFile("templates/manscan.yaml")
	if err != nil {
		return fmt.Errorf("failed to read rule template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write rule file: %w", err)
	}

	fmt.Printf("Created rule file: %s\n", outputPath)
	fmt.Println("\nEdit this file to classify permissions the built-in taxonomy")
	fmt.Println("does not know, such as vendor or custom permissions.")

	return nil
}
