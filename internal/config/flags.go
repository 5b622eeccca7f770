package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-t shared API token
//	-c/-config json file path with configs
//	-cors-origins comma-separated CORS origin allow-list
//	-rate-limit enable the per-client rate guard
//	-rate-limit-per-minute requests allowed per client per minute
//	-max-request-bytes largest accepted declared Content-Length
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var apiToken string
	var jsonConfigPath string
	var corsOrigins string
	var rateLimitEnabled bool
	var rateLimitPerMinute int
	var maxRequestBytes int64
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&apiToken, "t", "", "Shared API token")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&corsOrigins, "cors-origins", "", "Comma-separated CORS origins")
	flag.BoolVar(&rateLimitEnabled, "rate-limit", false, "Enable per-client rate limiting")
	flag.IntVar(&rateLimitPerMinute, "rate-limit-per-minute", 0, "Requests allowed per client per minute")
	flag.Int64Var(&maxRequestBytes, "max-request-bytes", 0, "Largest accepted declared Content-Length")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	var origins []string
	if corsOrigins != "" {
		origins = strings.Split(corsOrigins, ",")
	}

	return &StructuredConfig{
		App: App{
			APIToken:           apiToken,
			CORSOrigins:        origins,
			RateLimitEnabled:   rateLimitEnabled,
			RateLimitPerMinute: rateLimitPerMinute,
			MaxRequestBytes:    maxRequestBytes,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
