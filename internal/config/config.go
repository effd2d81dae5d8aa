// Package config resolves server settings from command line flags and
// FORMTAG_* environment variables, flags taking precedence over the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModeStdio  = "stdio"
	ModeServer = "server"

	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024

	// Permissions used when the working directory is created at startup.
	DefaultDirPerm = 0o750
)

// Config holds the runtime settings of the form tag server.
type Config struct {
	Mode string
	Host string
	Port int

	// PDFDirectory confines every file operation; the security layer
	// rejects paths that resolve outside it.
	PDFDirectory string

	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64
}

// DefaultConfig returns the settings used when nothing is overridden:
// stdio transport rooted at the current working directory.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:         ModeStdio,
		Host:         DefaultHost,
		Port:         DefaultPort,
		PDFDirectory: currentDir,
		Version:      "1.0.0",
		ServerName:   "mcp-pdf-formtag",
		LogLevel:     DefaultLogLevel,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// LoadFromFlags builds the configuration from defaults, environment, and
// flags, then validates it. A --version request is reported as the error
// "version requested" so the entrypoint can print version info and exit
// before flag parsing touches anything else.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetEnvPrefix("FORMTAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	defineFlags(cfg)
	pflag.Usage = printUsage

	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return nil, fmt.Errorf("version requested")
		}
	}

	pflag.Parse()

	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.PDFDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("log-level")
	cfg.MaxFileSize = viper.GetInt64("max-file-size")

	if cfg.PDFDirectory != "" {
		if abs, err := filepath.Abs(cfg.PDFDirectory); err == nil {
			cfg.PDFDirectory = abs
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defineFlags declares each flag, seeds its viper default, and binds the
// two together so flag > env > default resolution holds.
func defineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Transport: 'stdio' for MCP standard I/O, 'server' for HTTP")
	pflag.String("host", cfg.Host, "Listen address (server mode)")
	pflag.Int("port", cfg.Port, "Listen port (server mode)")
	pflag.String("dir", cfg.PDFDirectory, "Working directory for PDF files")
	pflag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	pflag.Int64("max-file-size", cfg.MaxFileSize, "Largest accepted PDF in bytes")

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.PDFDirectory)
	viper.SetDefault("log-level", cfg.LogLevel)
	viper.SetDefault("max-file-size", cfg.MaxFileSize)

	for _, key := range []string{"mode", "host", "port", "dir", "log-level", "max-file-size"} {
		_ = viper.BindPFlag(key, pflag.Lookup(key))
	}
}

func printUsage() {
	w := os.Stderr
	fmt.Fprintf(w, "mcp-pdf-formtag - preserve form field accessibility tags across PDF processing\n\n")
	fmt.Fprintf(w, "Usage: %s [flags]\n\nFlags:\n", os.Args[0])
	pflag.PrintDefaults()
	fmt.Fprintf(w, `
Every flag can also be set through the environment (flags win):
  FORMTAG_MODE, FORMTAG_HOST, FORMTAG_PORT, FORMTAG_DIR,
  FORMTAG_LOG_LEVEL, FORMTAG_MAX_FILE_SIZE

Examples:
  %[1]s                              stdio transport, current directory
  %[1]s --dir=/srv/pdfs              stdio transport, fixed directory
  %[1]s --mode=server --port=9090 --dir=/srv/pdfs
`, os.Args[0])
}

// Validate checks the configuration for use, creating the working
// directory if it does not exist yet.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.PDFDirectory == "" {
		return errors.New("PDF directory cannot be empty")
	}
	if _, err := os.Stat(c.PDFDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.PDFDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create PDF directory %s: %w", c.PDFDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access PDF directory %s: %w", c.PDFDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the host:port pair used in server mode.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, PDFDirectory: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.PDFDirectory, c.LogLevel, c.MaxFileSize)
}
