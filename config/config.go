package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultOutputDir   = "reports"
	defaultDetailsName = "funding_details.csv"
	defaultSummaryName = "funding_summary.csv"
)

var defaultSettleCoins = []string{"USDT", "USDC"}

// Credentials is one venue's API key pair.
type Credentials struct {
	APIKey    string
	APISecret string
}

// IsSet reports whether both key and secret are present.
func (c Credentials) IsSet() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// Config carries everything one reporting run needs.
type Config struct {
	// StartTime is the epoch-millisecond lower bound for the funding fetch.
	StartTime   int64
	OutputDir   string
	DetailsName string
	SummaryName string
	// SettleCoins are the settlement-currency partitions queried on Bybit.
	SettleCoins []string
	Binance     Credentials
	Bybit       Credentials
}

type configTmp struct {
	StartTime   int64    `yaml:"start_time"`
	OutputDir   string   `yaml:"output_dir,omitempty"`
	DetailsName string   `yaml:"details_name,omitempty"`
	SummaryName string   `yaml:"summary_name,omitempty"`
	SettleCoins []string `yaml:"settle_coins,omitempty"`
}

// Get builds the run configuration from a yaml file or CLI flags.
// Credentials always come from the environment.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	startTime := flag.Int64("starttime", 0, "epoch milliseconds lower bound for the funding fetch")
	outputDir := flag.String("outputdir", defaultOutputDir, "directory the CSV reports are written to")
	flag.Parse()

	var cfg Config
	if *configPath != "" {
		c, err := getYaml(*configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = c
	} else {
		cfg = Config{StartTime: *startTime, OutputDir: *outputDir}
	}

	applyDefaults(&cfg)

	if cfg.StartTime < 0 {
		return Config{}, fmt.Errorf("invalid start time %d, must be >= 0", cfg.StartTime)
	}

	cfg.Binance = credentialsFromEnv("BINANCE_API_KEY", "BINANCE_API_SECRET")
	cfg.Bybit = credentialsFromEnv("BYBIT_API_KEY", "BYBIT_API_SECRET")

	return cfg, nil
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, fmt.Errorf("incorrect yaml config %s: %w", path, err)
	}

	return Config{
		StartTime:   tmp.StartTime,
		OutputDir:   tmp.OutputDir,
		DetailsName: tmp.DetailsName,
		SummaryName: tmp.SummaryName,
		SettleCoins: tmp.SettleCoins,
	}, nil
}

func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if cfg.DetailsName == "" {
		cfg.DetailsName = defaultDetailsName
	}
	if cfg.SummaryName == "" {
		cfg.SummaryName = defaultSummaryName
	}
	if len(cfg.SettleCoins) == 0 {
		cfg.SettleCoins = defaultSettleCoins
	}
}

func credentialsFromEnv(keyVar, secretVar string) Credentials {
	return Credentials{
		APIKey:    os.Getenv(keyVar),
		APISecret: os.Getenv(secretVar),
	}
}
