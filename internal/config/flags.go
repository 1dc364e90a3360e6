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
//	-sqlite sqlite database file path
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-session-ttl session token lifetime (e.g., "168h")
//	-verify-ttl email-verification token lifetime (e.g., "24h")
//	-reset-ttl password-reset token lifetime (e.g., "1h")
//	-hash-iterations PBKDF2 iteration count
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-mailer-url token delivery webhook URL
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var sqlitePath string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var sessionTTL time.Duration
	var verifyTTL time.Duration
	var resetTTL time.Duration
	var hashIterations int
	var requestTimeout time.Duration
	var mailerURL string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&sqlitePath, "sqlite", "", "SQLite database file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Session token lifetime (e.g., 168h)")
	flag.DurationVar(&verifyTTL, "verify-ttl", 0, "Email-verification token lifetime (e.g., 24h)")
	flag.DurationVar(&resetTTL, "reset-ttl", 0, "Password-reset token lifetime (e.g., 1h)")
	flag.IntVar(&hashIterations, "hash-iterations", 0, "PBKDF2 iteration count")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&mailerURL, "mailer-url", "", "Token delivery webhook URL")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:    tokenSignKey,
			TokenIssuer:     tokenIssuer,
			SessionTokenTTL: sessionTTL,
			VerifyTokenTTL:  verifyTTL,
			ResetTokenTTL:   resetTTL,
			HashIterations:  hashIterations,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			SQLite: SQLite{
				Path: sqlitePath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Mailer: Mailer{
			WebhookURL: mailerURL,
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
