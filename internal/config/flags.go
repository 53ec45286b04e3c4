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
//	-a remote API address in format [host]:[port]
//	-pg-dsn direct PostgreSQL DSN (selects the direct-DB transport)
//	-d local replica database file path
//	-c/-config json file path with configs
//	-request-timeout remote call timeout (e.g., "30s", "1m")
//	-sync-interval background drain interval (e.g., "5m")
//	-sync-workers drain concurrency
//	-max-attempts per-intent retry ceiling
//	-token-file session token file path
func ParseFlags() *StructuredConfig {
	var remoteAddress NetAddress
	var postgresDSN string
	var localDBPath string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var syncWorkers int
	var maxAttempts int
	var tokenFile string

	flag.Var(&remoteAddress, "a", "Remote API address host:port")
	flag.StringVar(&postgresDSN, "pg-dsn", "", "Direct PostgreSQL DSN")
	flag.StringVar(&localDBPath, "d", "", "Local replica database path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Remote call timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background drain interval (e.g., 5m)")
	flag.IntVar(&syncWorkers, "sync-workers", 0, "Drain concurrency")
	flag.IntVar(&maxAttempts, "max-attempts", 0, "Per-intent retry ceiling")
	flag.StringVar(&tokenFile, "token-file", "", "Session token file path")

	flag.Parse()

	return &StructuredConfig{
		Remote: Remote{
			HTTPAddress:    remoteAddress.String(),
			PostgresDSN:    postgresDSN,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: localDBPath,
			},
		},
		Sync: Sync{
			Interval:    syncInterval,
			MaxAttempts: maxAttempts,
			Workers:     syncWorkers,
		},
		Session:      Session{TokenFile: tokenFile},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
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

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
