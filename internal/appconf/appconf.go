package appconf

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment identifies the operating environment for the Application.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag value to an Environment.
// Unknown values fall back to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}

// Config holds all the configuration settings for our Application.
// Values are read from command-line flags when the Application starts;
// an optional config.yml and .env file may supply defaults.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	DBPath    string
	Timezone  string
	BusGTFS   string // optional URL or path of a city-bus GTFS zip
	RateLimit int
}

// FileConfig mirrors the optional config.yml. Flags win over file values.
type FileConfig struct {
	Server struct {
		Port      int `yaml:"port" validate:"omitempty,min=1,max=65535"`
		RateLimit int `yaml:"rate_limit" validate:"omitempty,min=1"`
	} `yaml:"server"`
	DBPath   string   `yaml:"db_path"`
	Timezone string   `yaml:"timezone"`
	BusGTFS  string   `yaml:"bus_gtfs"`
	ApiKeys  []string `yaml:"api_keys"`
}

// LoadFileConfig loads and validates config.yml if it exists. A missing
// file is not an error; a malformed or invalid one is.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &FileConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	return &cfg, nil
}

// CampusLocation resolves the configured campus timezone. Every date and
// time computation in the resolver runs in this single location.
func (c Config) CampusLocation() (*time.Location, error) {
	name := c.Timezone
	if name == "" {
		name = "Asia/Seoul"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("error loading campus timezone %q: %w", name, err)
	}
	return loc, nil
}

// GetEnv returns the value of the named environment variable, or fallback
// when it is unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
