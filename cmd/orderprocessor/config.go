package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nkiryanov/orderprocessing/internal/logger"
)

const (
	defaultListenAddr   = "localhost:8000"
	defaultLoggingLevel = logger.LevelInfo
	defaultRemoteAddr   = "http://localhost:3000"
	defaultExportDir    = "."
	defaultEnvironment  = logger.EnvProduction
)

type Config struct {
	// Default logging level
	LogLevel string `validate:"oneof=debug info warn error"`

	// Address on which the HTTP API will be run
	ListenAddr string `validate:"required"`

	// Remote settle service address to connect to
	RemoteAddr string `validate:"required,url"`

	// Directory where exported orders are written
	ExportDir string `validate:"required"`

	// Database to connect to
	DatabaseDSN string `validate:"required"`

	// Environment
	Environment string `validate:"oneof=dev prod"`

	// Process orders of the user once and exit instead of serving HTTP API
	// Zero means serve
	UserID int64 `validate:"gte=0"`
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		ListenAddr:  defaultListenAddr,
		RemoteAddr:  defaultRemoteAddr,
		ExportDir:   defaultExportDir,
		Environment: defaultEnvironment,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		return c.LoadEnv(func(key string) string {
			return envMap[key]
		})
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) error {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) error {
		return func(value string) error {
			if value != "" {
				*o = value
			}
			return nil
		}
	}
	setInt64 := func(o *int64) func(value string) error {
		return func(value string) error {
			if value == "" {
				return nil
			}
			v, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			*o = v
			return nil
		}
	}

	envMap := map[string]func(string) error{
		"RUN_ADDRESS":    setString(&c.ListenAddr),
		"DATABASE_URI":   setString(&c.DatabaseDSN),
		"LOG_LEVEL":      setString(&c.LogLevel),
		"REMOTE_ADDRESS": setString(&c.RemoteAddr),
		"EXPORT_DIR":     setString(&c.ExportDir),
		"ENVIRONMENT":    setString(&c.Environment),
		"USER_ID":        setInt64(&c.UserID),
	}

	for key, parseFn := range envMap {
		if err := parseFn(getenv(key)); err != nil {
			return fmt.Errorf("invalid value of %s: %w", key, err)
		}
	}

	return nil
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("orderprocessor", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.RemoteAddr, "remote", "r", c.RemoteAddr, "Remote settle service address")
	fs.StringVarP(&c.ExportDir, "export-dir", "x", c.ExportDir, "Directory for exported orders")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.Int64VarP(&c.UserID, "user", "u", c.UserID, "Process orders of the user and exit")

	return fs.Parse(args)
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
