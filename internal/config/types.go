package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Disk rate modes, mirrored from the monitor package to keep config free of
// UI imports.
const (
	DiskRatesDelta = "delta"
	DiskRatesZero  = "zero"
)

// Config represents the complete sysdash configuration file.
type Config struct {
	Version  int            `yaml:"version" mapstructure:"version" validate:"gte=0"`
	Endpoint EndpointConfig `yaml:"endpoint" mapstructure:"endpoint"`
	Auth     AuthConfig     `yaml:"auth" mapstructure:"auth"`
	Poll     PollConfig     `yaml:"poll" mapstructure:"poll"`
	Display  DisplayConfig  `yaml:"display" mapstructure:"display"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// EndpointConfig says where the telemetry endpoint lives and how to reach it.
type EndpointConfig struct {
	// URL is the base URL; /api/data, /api/status and /api/report hang off it.
	URL string `yaml:"url" mapstructure:"url" validate:"required,url"`

	// Timeout bounds every request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// SSH, when set, tunnels requests through this host.
	// Can be: hostname, user@hostname, host:port, or SSH config alias.
	SSH string `yaml:"ssh,omitempty" mapstructure:"ssh"`

	// InsecureHostKey skips known_hosts verification for the tunnel.
	InsecureHostKey bool `yaml:"insecure_host_key,omitempty" mapstructure:"insecure_host_key"`
}

// AuthConfig holds optional bearer credentials. Token and JWTSecret are
// mutually exclusive.
type AuthConfig struct {
	Token      string        `yaml:"token,omitempty" mapstructure:"token" validate:"excluded_with=JWTSecret"`
	JWTSecret  string        `yaml:"jwt_secret,omitempty" mapstructure:"jwt_secret"`
	JWTSubject string        `yaml:"jwt_subject,omitempty" mapstructure:"jwt_subject"`
	JWTTTL     time.Duration `yaml:"jwt_ttl,omitempty" mapstructure:"jwt_ttl" validate:"gte=0"`
}

// PollConfig controls the refresh streams.
type PollConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=250ms"`
	History  int           `yaml:"history" mapstructure:"history" validate:"gte=2"`
}

// DisplayConfig controls the dashboard presentation.
type DisplayConfig struct {
	// DiskRates is "delta" (MB/s from cumulative counters) or "zero".
	DiskRates      string `yaml:"disk_rates" mapstructure:"disk_rates" validate:"oneof=delta zero"`
	ProcessNameMax int    `yaml:"process_name_max" mapstructure:"process_name_max" validate:"gte=4"`
	GPUNameMax     int    `yaml:"gpu_name_max" mapstructure:"gpu_name_max" validate:"gte=4"`

	// Color mode: "auto", "always", or "never".
	Color string `yaml:"color" mapstructure:"color" validate:"oneof=auto always never"`
}

// ReportConfig controls where downloaded reports go.
// Dir supports ~ and ${HOME}/${USER} expansion.
type ReportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig controls diagnostic output. While the dashboard owns the terminal,
// logs only go somewhere if File is set.
type LogConfig struct {
	File  string `yaml:"file,omitempty" mapstructure:"file"`
	Debug bool   `yaml:"debug,omitempty" mapstructure:"debug"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Endpoint: EndpointConfig{
			URL:     "http://localhost:5000",
			Timeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			JWTSubject: "sysdash",
			JWTTTL:     15 * time.Minute,
		},
		Poll: PollConfig{
			Interval: time.Second,
			History:  60,
		},
		Display: DisplayConfig{
			DiskRates:      DiskRatesDelta,
			ProcessNameMax: 30,
			GPUNameMax:     20,
			Color:          "auto",
		},
		Report: ReportConfig{
			Dir: ".",
		},
	}
}
