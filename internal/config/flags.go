package config

import (
	"flag"
	"os"
	"time"
)

// ServerAddress is a [flag.Value] holding the notes API base address.
// It accepts host:port as well as a full URL and stores the normalized URL.
type ServerAddress struct {
	URL string
}

// ParseFlags parses the process command line into a partial
// [StructuredConfig]. Only the flags given on the command line end up non-zero.
func ParseFlags() (*StructuredConfig, error) {
	var serverAddress ServerAddress
	var databaseDSN string
	var jsonConfigPath string
	var logFile string
	var logLevel string
	var requestTimeout time.Duration
	var refreshInterval time.Duration

	fs := flag.CommandLine
	fs.Var(&serverAddress, "a", "Notes API address (host:port or URL)")
	fs.StringVar(&databaseDSN, "d", "", "Session database DSN (SQLite file)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Background notes refresh interval, 0 disables")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			LogFile:  logFile,
			LogLevel: logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func (a *ServerAddress) String() string {
	return a.URL
}

func (a *ServerAddress) Set(s string) error {
	u, err := NormalizeAddress(s)
	if err != nil {
		return err
	}

	a.URL = u
	return nil
}
