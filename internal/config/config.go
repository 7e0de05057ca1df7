package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	ErrWorkers   = errors.New("failed to parse workers from configuration, must be a positive integer")
	ErrTimeout   = errors.New("failed to parse timeout from configuration")
	ErrRateLimit = errors.New("failed to parse rate limit from configuration, must be an integer")
	ErrPersist   = errors.New("failed to parse persist from configuration, must be a boolean")
	ErrStrategy  = errors.New("unknown strategy in configuration, must be greedy or optimal")
	ErrFormat    = errors.New("unknown output format in configuration, must be json or yaml")
	ErrSource    = errors.New("unknown source in configuration, must be file or postgres")
	ErrParser    = errors.New("unknown parser in configuration, must be regex, google or nominatim")
	ErrDatabase  = errors.New("database host is required for the postgres source or persistence")
)

const envPrefix = "DISPATCH"

// Config holds the configuration settings for an assignment run.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Drivers, Addresses: File paths or inline newline separated lists.
// - Output, Format: Destination file (stdout when empty) and encoding of the result.
// - Strategy: Assignment strategy (greedy, optimal).
// - Workers: The number of concurrent workers for parsing and the greedy scan.
// - Source: Where inputs come from (file, postgres).
// - Parser: How addresses are parsed (regex, google, nominatim).
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env         string         `yaml:"env"`          // Env is the current environment: local, development, production.
	Drivers     string         `yaml:"drivers"`      // Drivers is a path or an inline list of driver names.
	Addresses   string         `yaml:"addresses"`    // Addresses is a path or an inline list of address lines.
	Output      string         `yaml:"output"`       // Output is the result file, stdout when empty.
	Format      string         `yaml:"format"`       // Format of the exported result: json or yaml.
	Strategy    string         `yaml:"strategy"`     // Strategy pairing drivers with addresses.
	Workers     int            `yaml:"workers"`      // The number of concurrent workers.
	Source      string         `yaml:"source"`       // Source of inputs: file or postgres.
	Parser      string         `yaml:"parser"`       // Parser for address lines.
	ProviderKey string         `yaml:"provider_key"` // The API key for the geocoding provider.
	RateLimit   int            `yaml:"rate_limit"`   // Provider requests per second, 0 for the provider default.
	Timeout     time.Duration  `yaml:"timeout"`      // Timeout for provider requests and database connection.
	Persist     bool           `yaml:"persist"`      // Persist stores the result in Postgres.
	Pushgateway string         `yaml:"pushgateway"`  // Pushgateway URL receiving run metrics, none when empty.
	Database    PostgresConfig `yaml:"postgres"`     // Database holds the postgres database configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// MustLoad is like Load but panics on invalid configuration.
// It exits the process after printing usage when --help is requested.
func MustLoad(args []string) *Config {
	cfg, err := Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// Load builds the configuration from command line flags, DISPATCH_* environment
// variables (a .env file is loaded first) and defaults, in that order of precedence.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.SetEnvPrefix(envPrefix)
	vpr.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	vpr.AutomaticEnv()

	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := vpr.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	vpr.SetDefault("provider-key", "")
	vpr.SetDefault("rate-limit", "0")
	vpr.SetDefault("pushgateway", "")
	for key, env := range map[string]string{
		"db.host":     "DB_HOST",
		"db.port":     "DB_PORT",
		"db.username": "DB_USERNAME",
		"db.password": "DB_PASSWORD",
		"db.name":     "DB_NAME",
	} {
		if err := vpr.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	vpr.SetDefault("db.port", "5432")

	return build(vpr)
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
	flags.String("env", "production", "environment: local, development or production")
	flags.String("drivers", "data/DriverNames.txt", "driver names file or inline newline separated list")
	flags.String("addresses", "data/StreetAddresses.txt", "street addresses file or inline newline separated list")
	flags.String("output", "", "result file, stdout when empty")
	flags.String("format", "json", "result format: json or yaml")
	flags.String("strategy", "greedy", "assignment strategy: greedy or optimal")
	flags.String("workers", "1", "number of concurrent workers")
	flags.String("source", "file", "input source: file or postgres")
	flags.String("parser", "regex", "address parser: regex, google or nominatim")
	flags.Bool("persist", false, "store the result in postgres")
	flags.String("timeout", "10s", "timeout for provider requests and database connection")

	return flags
}

func build(vpr *viper.Viper) (*Config, error) {
	workers, err := strconv.Atoi(vpr.GetString("workers"))
	if err != nil || workers < 1 {
		return nil, ErrWorkers
	}

	timeout, err := time.ParseDuration(vpr.GetString("timeout"))
	if err != nil {
		return nil, ErrTimeout
	}

	rateLimit, err := strconv.Atoi(vpr.GetString("rate-limit"))
	if err != nil {
		return nil, ErrRateLimit
	}

	persist, err := strconv.ParseBool(vpr.GetString("persist"))
	if err != nil {
		return nil, ErrPersist
	}

	cfg := &Config{
		Env:         vpr.GetString("env"),
		Drivers:     vpr.GetString("drivers"),
		Addresses:   vpr.GetString("addresses"),
		Output:      vpr.GetString("output"),
		Format:      strings.ToLower(vpr.GetString("format")),
		Strategy:    strings.ToLower(vpr.GetString("strategy")),
		Workers:     workers,
		Source:      strings.ToLower(vpr.GetString("source")),
		Parser:      strings.ToLower(vpr.GetString("parser")),
		ProviderKey: vpr.GetString("provider-key"),
		RateLimit:   rateLimit,
		Timeout:     timeout,
		Persist:     persist,
		Pushgateway: vpr.GetString("pushgateway"),
		Database: PostgresConfig{
			Host:     vpr.GetString("db.host"),
			Port:     vpr.GetString("db.port"),
			User:     vpr.GetString("db.username"),
			Password: vpr.GetString("db.password"),
			Name:     vpr.GetString("db.name"),
		},
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case !slices.Contains([]string{"greedy", "optimal"}, c.Strategy):
		return ErrStrategy
	case !slices.Contains([]string{"json", "yaml"}, c.Format):
		return ErrFormat
	case !slices.Contains([]string{"file", "postgres"}, c.Source):
		return ErrSource
	case !slices.Contains([]string{"regex", "google", "nominatim"}, c.Parser):
		return ErrParser
	case (c.Source == "postgres" || c.Persist) && c.Database.Host == "":
		return ErrDatabase
	}

	return nil
}
