package config

// File represents the structure of the ridx.yaml configuration file.
type File struct {
	Version  string      `yaml:"version"`
	Data     DataDTO     `yaml:"data"`
	Strategy StrategyDTO `yaml:"strategy"`
	Output   OutputDTO   `yaml:"output"`
	Compute  ComputeDTO  `yaml:"compute"`
}

// DataDTO configures the market data source.
type DataDTO struct {
	Prices string `yaml:"prices"`
}

// StrategyDTO configures the index rule.
type StrategyDTO struct {
	Type         string   `yaml:"type"`
	Basket       []string `yaml:"basket"`
	Seed         string   `yaml:"seed"`
	InitialLevel float64  `yaml:"initialLevel"`
}

// OutputDTO configures where computed levels are written.
type OutputDTO struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// ComputeDTO configures engine execution.
type ComputeDTO struct {
	Parallelism int `yaml:"parallelism"`
}
