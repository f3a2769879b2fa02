package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Adimir123/manscan/internal/model"
)

// DefaultRuleFile is the default rule file name.
const DefaultRuleFile = ".manscan"

// RuleFile holds deployment-specific analysis rules loaded from YAML.
// Its main use is classifying vendor or custom permissions the built-in
// taxonomy cannot know about.
type RuleFile struct {
	// Permissions maps permission names to a protection level
	// (normal, dangerous, or signature). Entries win over the built-in
	// taxonomy on conflict.
	Permissions map[string]string `yaml:"permissions"`
}

// PermissionLevels converts the raw rule entries into protection levels.
// Invalid level names are rejected at load time, so this never fails.
func (rf *RuleFile) PermissionLevels() map[string]model.ProtectionLevel {
	if rf == nil || len(rf.Permissions) == 0 {
		return nil
	}
	levels := make(map[string]model.ProtectionLevel, len(rf.Permissions))
	for name, level := range rf.Permissions {
		levels[name] = model.ProtectionLevel(level)
	}
	return levels
}

// LoadRuleFile loads analysis rules from a YAML file.
// If the file does not exist, it returns ErrRuleFileNotFound; callers decide
// whether that matters based on whether the path was explicit.
func LoadRuleFile(path string) (*RuleFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided rule file path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRuleFileNotFound
		}
		return nil, err
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("invalid rule file %s: %w", path, err)
	}

	for name, level := range rf.Permissions {
		switch model.ProtectionLevel(level) {
		case model.ProtectionNormal, model.ProtectionDangerous, model.ProtectionSignature:
		default:
			return nil, fmt.Errorf("invalid rule file %s: permission %s has unknown level %q", path, name, level)
		}
	}

	return &rf, nil
}

// FindRuleFile searches for the rule file in the following order:
// 1. If rulePath is specified, use it directly
// 2. Look for .manscan in the current directory
// 3. Look for .manscan in the user's home directory
//
// Returns the path to the rule file if found, or empty string if not found.
func FindRuleFile(rulePath string) string {
	if rulePath != "" {
		if _, err := os.Stat(rulePath); err == nil {
			return rulePath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdRules := filepath.Join(cwd, DefaultRuleFile)
		if _, err := os.Stat(cwdRules); err == nil {
			return cwdRules
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeRules := filepath.Join(home, DefaultRuleFile)
		if _, err := os.Stat(homeRules); err == nil {
			return homeRules
		}
	}

	return ""
}
