// Package config provides the configuration loader for ridx.
package config

import (
	"os"
	"path/filepath"

	"go.ridx.dev/ridx/internal/core/domain"
	"go.ridx.dev/ridx/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file ridx looks for.
const FileName = "ridx.yaml"

// Defaults applied when the config file leaves fields unset.
const (
	DefaultStrategyType = "equal-weight"
	DefaultInitialLevel = 100.0
	DefaultOutputPath   = "index.csv"
	DefaultOutputFormat = "csv"
)

// Loader implements ports.ConfigLoader using a YAML file discovered by
// walking up from the working directory.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds and parses ridx.yaml, applying defaults and validating the
// result. Relative paths in the file resolve against its directory.
func (l *Loader) Load(cwd string) (*ports.Config, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(configPath) // #nosec G304 -- discovered config path
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", configPath)
	}

	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", configPath)
	}

	return l.build(filepath.Dir(configPath), &file)
}

func findConfiguration(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigNotFound.Error())
	}

	for {
		candidate := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "could not find ridx.yaml in any parent directory"), "cwd", cwd)
}

func (l *Loader) build(root string, file *File) (*ports.Config, error) {
	cfg := &ports.Config{
		Root:         root,
		StrategyType: file.Strategy.Type,
		Basket:       file.Strategy.Basket,
		InitialLevel: file.Strategy.InitialLevel,
		OutputFormat: file.Output.Format,
		Parallelism:  file.Compute.Parallelism,
	}

	if cfg.StrategyType == "" {
		cfg.StrategyType = DefaultStrategyType
	}
	if cfg.InitialLevel == 0 {
		cfg.InitialLevel = DefaultInitialLevel
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = DefaultOutputFormat
	}

	if file.Data.Prices == "" {
		return nil, zerr.Wrap(domain.ErrConfigParseFailed, "data.prices is required")
	}
	cfg.PricesPath = resolvePath(root, file.Data.Prices)

	outputPath := file.Output.Path
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}
	cfg.OutputPath = resolvePath(root, outputPath)

	if len(cfg.Basket) == 0 {
		return nil, zerr.Wrap(domain.ErrConfigParseFailed, "strategy.basket is required")
	}

	if file.Strategy.Seed == "" {
		return nil, zerr.Wrap(domain.ErrConfigParseFailed, "strategy.seed is required")
	}
	seed, err := domain.ParseDate(file.Strategy.Seed)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	cfg.SeedDate = seed

	return cfg, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
