// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// NetAddress is the -a flag value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from the process command line.
//
// Flags:
//
//	-a admin server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (pgx, sqlite3)
//	-c/-config json file path with configs
//	-base-url catalog API base URL
//	-notifier notifier kind (console, http, redis)
//	-delta-interval delta pass interval (e.g., "5m")
//	-full-interval full pass interval (e.g., "6h")
//	-request-timeout admin request timeout (e.g., "30s")
//	-run-on-start run a full pass once at startup
//	-log-level    minimum log level (debug, info, warn, error)
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, databaseDriver string
	var jsonConfigPath string
	var baseURL string
	var notifierKind string
	var deltaInterval, fullInterval time.Duration
	var requestTimeout time.Duration
	var runOnStart bool
	var logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "driver", "", "Database driver (pgx, sqlite3)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&baseURL, "base-url", "", "Catalog API base URL")
	fs.StringVar(&notifierKind, "notifier", "", "Notifier kind (console, http, redis)")
	fs.DurationVar(&deltaInterval, "delta-interval", 0, "Delta pass interval (e.g., 5m)")
	fs.DurationVar(&fullInterval, "full-interval", 0, "Full pass interval (e.g., 6h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.BoolVar(&runOnStart, "run-on-start", false, "Run a full pass once at startup")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			BaseURL: baseURL,
		},
		Notifier: Notifier{
			Kind: notifierKind,
		},
		Workers: Workers{
			DeltaInterval: deltaInterval,
			FullInterval:  fullInterval,
			RunOnStart:    runOnStart,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String formats the address for net.Listen. The zero value formats as "".
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts host:port, [ipv6]:port or :port. The host must be
// "localhost" or a literal IP.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", s, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid listen port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("listen port %d out of range", port)
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("listen host %q is not an IP address", host)
	}

	a.Host, a.Port = host, port
	return nil
}
