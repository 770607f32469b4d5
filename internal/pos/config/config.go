// Package config はdacqposコマンドの設定管理を行います
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

const Version = "0.1.0"

// Config はアプリケーションの設定を保持します
type Config struct {
	TrialPath   string
	OutputDir   string
	SchemaPath  string
	Strict      bool
	NoCSV       bool
	DryRun      bool
	DebugMode   bool
	ShowVersion bool
}

// ParseFlags はコマンドライン引数を解析して設定を返します。
// トライアルは--trialフラグでも位置引数でも指定できます。
func ParseFlags() *Config {
	config := &Config{}

	pflag.StringVarP(&config.TrialPath, "trial", "i", "", "trial to convert (.set/.bin pair, extension optional)")
	pflag.StringVarP(&config.OutputDir, "output-dir", "o", "", "output directory (default: alongside the .bin file)")
	pflag.StringVar(&config.SchemaPath, "schema", "", "YAML file overriding the .set line layout")
	pflag.BoolVar(&config.Strict, "strict", false, "abort when decoded sample count differs from the header")
	pflag.BoolVar(&config.NoCSV, "no-csv", false, "skip writing the CSV sidecar")
	pflag.BoolVarP(&config.DryRun, "dry-run", "n", false, "perform a dry run without writing output files")
	pflag.BoolVarP(&config.DebugMode, "debug", "d", false, "enable debug output")
	pflag.BoolVarP(&config.ShowVersion, "version", "v", false, "show version information")

	pflag.Parse()

	if config.TrialPath == "" && pflag.NArg() > 0 {
		config.TrialPath = pflag.Arg(0)
	}

	return config
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("dacqpos version %s\n", Version)
		os.Exit(0)
	}
}

// NewLogger はアプリケーション用のロガーを作成します
func NewLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "dacqpos",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
