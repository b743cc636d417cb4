// types.go
package config

// Raw config loaded from YAML. Pointer fields stay nil when a file omits them,
// so a profile file only overrides what it sets.
type RawConfig struct {
	Version  string          `yaml:"version"`
	Server   ServerConfig    `yaml:"server"`
	Log      LogConfig       `yaml:"log"`
	RNG      RNGConfig       `yaml:"rng"`
	Simulate *SimulateConfig `yaml:"simulate,omitempty"`
	Notes    string          `yaml:"notes,omitempty"`
}

type ServerConfig struct {
	HTTPAddr *string `yaml:"http_addr"`
	GRPCAddr *string `yaml:"grpc_addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" | "console"
}

type RNGConfig struct {
	Mode string  `yaml:"mode"` // "crypto" | "seeded"
	Seed *uint64 `yaml:"seed,omitempty"`
}

type SimulateConfig struct {
	DefaultTrials *int `yaml:"default_trials"`
	MaxTrials     *int `yaml:"max_trials"`
}

// Settings are the normalized values the server runs with.
// Environment variables override whatever the YAML files resolved to.
type Settings struct {
	HTTPAddr      string `env:"SWITCH_HTTP_ADDR"`
	GRPCAddr      string `env:"SWITCH_GRPC_ADDR"`
	LogLevel      string `env:"SWITCH_LOG_LEVEL"`
	LogFormat     string `env:"SWITCH_LOG_FORMAT"`
	RNGMode       string `env:"SWITCH_RNG_MODE"`
	Seed          uint64 `env:"SWITCH_RNG_SEED"`
	DefaultTrials int    `env:"SWITCH_SIM_DEFAULT_TRIALS"`
	MaxTrials     int    `env:"SWITCH_SIM_MAX_TRIALS"`
	Version       string // effective config version for tracing
}

const (
	RNGCrypto = "crypto"
	RNGSeeded = "seeded"

	FormatJSON    = "json"
	FormatConsole = "console"
)

// Defaults applied by Normalize when no file sets a value.
const (
	DefaultHTTPAddr  = ":8080"
	DefaultGRPCAddr  = ":9090"
	DefaultLogLevel  = "info"
	DefaultTrials    = 10000
	DefaultMaxTrials = 1000000
)
