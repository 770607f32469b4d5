package config

import (
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func resetFlags(args ...string) {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	os.Args = append([]string{"dacqpos"}, args...)
}

func TestParseFlags(t *testing.T) {
	resetFlags("--trial", "trial1", "-o", "/tmp/out", "--strict", "--no-csv", "-d")

	cfg := ParseFlags()

	if cfg.TrialPath != "trial1" {
		t.Errorf("Expected TrialPath 'trial1', got '%s'", cfg.TrialPath)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("Expected OutputDir '/tmp/out', got '%s'", cfg.OutputDir)
	}
	if !cfg.Strict {
		t.Error("Expected Strict to be true")
	}
	if !cfg.NoCSV {
		t.Error("Expected NoCSV to be true")
	}
	if !cfg.DebugMode {
		t.Error("Expected DebugMode to be true")
	}
	if cfg.DryRun {
		t.Error("Expected DryRun to be false")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	resetFlags()

	cfg := ParseFlags()

	if cfg.TrialPath != "" || cfg.OutputDir != "" || cfg.SchemaPath != "" {
		t.Errorf("Expected empty paths, got %+v", cfg)
	}
	if cfg.Strict || cfg.NoCSV || cfg.DryRun || cfg.DebugMode || cfg.ShowVersion {
		t.Errorf("Expected all bool flags false, got %+v", cfg)
	}
}

func TestParseFlags_PositionalTrial(t *testing.T) {
	resetFlags("trial2.set")

	cfg := ParseFlags()

	if cfg.TrialPath != "trial2.set" {
		t.Errorf("Expected TrialPath 'trial2.set', got '%s'", cfg.TrialPath)
	}
}

func TestParseFlags_FlagWinsOverPositional(t *testing.T) {
	resetFlags("--trial", "trial1", "trial2")

	cfg := ParseFlags()

	if cfg.TrialPath != "trial1" {
		t.Errorf("Expected TrialPath 'trial1', got '%s'", cfg.TrialPath)
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(false)
	if logger.GetLevel() == log.DebugLevel {
		t.Error("Expected default logger not to be at debug level")
	}

	logger = NewLogger(true)
	if logger.GetLevel() != log.DebugLevel {
		t.Error("Expected debug logger to be at debug level")
	}
}
