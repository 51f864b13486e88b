package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(docPath, []byte(`{"TL": 1}`), 0o600); err != nil {
		t.Fatal(err)
	}
	rulesPath := filepath.Join(dir, "rules.txt")
	if err := os.WriteFile(rulesPath, []byte("TL==1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		wantNil  bool
		wantCode int
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name: "rules_and_inputs",
			args: []string{"rulecheck", "--rule", "TL==1", "--rule", "TL>0", docPath},
			check: func(t *testing.T, cfg *Config) {
				if !reflect.DeepEqual(cfg.Rules, []string{"TL==1", "TL>0"}) {
					t.Errorf("Rules = %v", cfg.Rules)
				}
				if !reflect.DeepEqual(cfg.Inputs, []string{docPath}) {
					t.Errorf("Inputs = %v", cfg.Inputs)
				}
				if cfg.Workers <= 0 {
					t.Errorf("Workers = %d, want > 0", cfg.Workers)
				}
			},
		},
		{
			name: "rule_file_flags_and_ignores",
			args: []string{"rulecheck", "--rules", rulesPath, "--flag", "allow-missing", "--ignore", "f1", "--stats", docPath},
			check: func(t *testing.T, cfg *Config) {
				if !reflect.DeepEqual(cfg.RuleFiles, []string{rulesPath}) {
					t.Errorf("RuleFiles = %v", cfg.RuleFiles)
				}
				if !reflect.DeepEqual(cfg.Flags, []string{"allow-missing"}) {
					t.Errorf("Flags = %v", cfg.Flags)
				}
				if !reflect.DeepEqual(cfg.Ignores, []string{"f1"}) {
					t.Errorf("Ignores = %v", cfg.Ignores)
				}
				if !cfg.Stats {
					t.Error("Stats = false, want true")
				}
			},
		},
		{
			name: "selector_and_limits",
			args: []string{"rulecheck", "--rule", "TL==1", "--select", "$.items[*]", "--workers", "2", "--rate-limit", "5", docPath},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Selector != "$.items[*]" {
					t.Errorf("Selector = %q", cfg.Selector)
				}
				if cfg.Workers != 2 {
					t.Errorf("Workers = %d, want 2", cfg.Workers)
				}
				if cfg.RateLimit != 5 {
					t.Errorf("RateLimit = %v, want 5", cfg.RateLimit)
				}
			},
		},
		{
			name:     "no_arguments",
			args:     nil,
			wantNil:  true,
			wantCode: 1,
		},
		{
			name:     "no_inputs",
			args:     []string{"rulecheck", "--rule", "TL==1"},
			wantNil:  true,
			wantCode: 1,
		},
		{
			name:     "no_rules",
			args:     []string{"rulecheck", docPath},
			wantNil:  true,
			wantCode: 1,
		},
		{
			name:     "missing_input_file",
			args:     []string{"rulecheck", "--rule", "TL==1", filepath.Join(dir, "absent.json")},
			wantNil:  true,
			wantCode: 1,
		},
		{
			name:     "help",
			args:     []string{"rulecheck", "-h"},
			wantNil:  true,
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, exitResult := Parse(tt.args)
			if tt.wantNil {
				if cfg != nil {
					t.Fatalf("Parse() = %+v, want nil config", cfg)
				}
				if exitResult == nil {
					t.Fatal("Parse() exit result is nil")
				}
				if exitResult.ExitCode != tt.wantCode {
					t.Fatalf("ExitCode = %d, want %d", exitResult.ExitCode, tt.wantCode)
				}
				return
			}
			if exitResult != nil {
				t.Fatalf("Parse() exit result = %+v", exitResult)
			}
			tt.check(t, cfg)
		})
	}
}
