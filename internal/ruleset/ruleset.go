// Package ruleset loads rule definitions from files. Two formats are
// supported: plain text with one rule expression per line, and YAML
// documents carrying rules, flags, and ignores lists.
package ruleset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

// Set is an ordered collection of rule expressions plus the behavior
// flags and ignored fields that accompany them.
type Set struct {
	Rules   []string `yaml:"rules"`
	Flags   []string `yaml:"flags,omitempty"`
	Ignores []string `yaml:"ignores,omitempty"`
}

// Merge appends another set, preserving order.
func (s *Set) Merge(other Set) {
	s.Rules = append(s.Rules, other.Rules...)
	s.Flags = append(s.Flags, other.Flags...)
	s.Ignores = append(s.Ignores, other.Ignores...)
}

// Load reads every file and merges the results in argument order.
func Load(paths []string) (Set, error) {
	var merged Set
	for _, path := range paths {
		loaded, err := loadFile(path)
		if err != nil {
			return Set{}, err
		}
		merged.Merge(loaded)
	}
	return merged, nil
}

func loadFile(path string) (Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return loadLines(path)
	}
}

func loadYAML(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}

	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("rule set %s: %w", path, err)
	}
	return set, nil
}

// loadLines reads one rule expression per line. Blank lines and lines
// starting with # are skipped.
func loadLines(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, err
	}
	defer f.Close()

	var set Set
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set.Rules = append(set.Rules, line)
	}
	if err := sc.Err(); err != nil {
		return Set{}, fmt.Errorf("rule set %s: %w", path, err)
	}
	return set, nil
}
