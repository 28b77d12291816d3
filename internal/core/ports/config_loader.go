package ports

import "go.ridx.dev/ridx/internal/core/domain"

// Config is the fully parsed and validated application configuration.
type Config struct {
	// Root is the directory containing the config file. Relative paths in
	// the config resolve against it.
	Root string

	// PricesPath is the market data CSV file.
	PricesPath string

	// Strategy selection and parameters.
	StrategyType string
	Basket       []string
	SeedDate     domain.Date
	InitialLevel float64

	// Output destination.
	OutputPath   string
	OutputFormat string

	// Parallelism caps concurrent date computations; 0 means NumCPU.
	Parallelism int
}

// ConfigLoader loads the application configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds ridx.yaml by walking up from cwd and parses it.
	Load(cwd string) (*Config, error)
}
