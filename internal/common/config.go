package common

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Extract  ExtractConfig
	Pipeline PipelineConfig
	LogLevel slog.Level
}

// DatabaseConfig holds result-sink configuration. An empty DSN disables storage.
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// ExtractConfig holds text-extraction configuration
type ExtractConfig struct {
	Pdftotext string
	Method    string // auto | pdftotext | native
	Timeout   time.Duration
}

// PipelineConfig holds batch and output configuration
type PipelineConfig struct {
	RegistryFile   string
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
	OutputDir      string
}

var extractMethods = []string{"auto", "pdftotext", "native"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("DB_MAX_CONN_LIFETIME", 30*time.Minute)
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", 5*time.Minute)
	v.SetDefault("DB_DIAL_TIMEOUT", 3*time.Second)
	v.SetDefault("GRPC_ADDR", ":8080")
	v.SetDefault("PDFTOTEXT_BIN", "pdftotext")
	v.SetDefault("EXTRACT_METHOD", "auto")
	v.SetDefault("EXTRACT_TIMEOUT", 45*time.Second)
	v.SetDefault("REGISTRY_FILE", "")
	v.SetDefault("WORKERS", 4)
	v.SetDefault("QUEUE_SIZE", 256)
	v.SetDefault("PROCESS_TIMEOUT", 3*time.Minute)
	v.SetDefault("OUTPUT_DIR", "./out")
	v.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig loads configuration from environment variables and, when
// configFile is non-empty, from that YAML file. Environment wins over the file.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, NewAppError("CONFIG_ERROR", fmt.Sprintf("read config file %s", configFile), err)
			}
		}
	}

	return &Config{
		Database: DatabaseConfig{
			DSN:             v.GetString("DB_URL"),
			MaxConns:        v.GetInt32("DB_MAX_CONNS"),
			MinConns:        v.GetInt32("DB_MIN_CONNS"),
			MaxConnLifetime: v.GetDuration("DB_MAX_CONN_LIFETIME"),
			MaxConnIdleTime: v.GetDuration("DB_MAX_CONN_IDLE_TIME"),
			DialTimeout:     v.GetDuration("DB_DIAL_TIMEOUT"),
		},
		Server: ServerConfig{
			GRPCAddr: v.GetString("GRPC_ADDR"),
		},
		Extract: ExtractConfig{
			Pdftotext: v.GetString("PDFTOTEXT_BIN"),
			Method:    strings.ToLower(v.GetString("EXTRACT_METHOD")),
			Timeout:   v.GetDuration("EXTRACT_TIMEOUT"),
		},
		Pipeline: PipelineConfig{
			RegistryFile:   v.GetString("REGISTRY_FILE"),
			Workers:        v.GetInt("WORKERS"),
			QueueSize:      v.GetInt("QUEUE_SIZE"),
			ProcessTimeout: v.GetDuration("PROCESS_TIMEOUT"),
			OutputDir:      v.GetString("OUTPUT_DIR"),
		},
		LogLevel: parseLevel(v.GetString("LOG_LEVEL")),
	}, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("EXTRACT_METHOD", c.Extract.Method, Required, OneOf(extractMethods...)).
		Field("WORKERS", c.Pipeline.Workers, Positive).
		Field("QUEUE_SIZE", c.Pipeline.QueueSize, Positive)
	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}

// ValidateServer additionally checks what the gRPC daemon needs.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Server.GRPCAddr == "" {
		return NewAppError("CONFIG_ERROR", "GRPC_ADDR is required", ErrInvalidInput)
	}
	return nil
}
