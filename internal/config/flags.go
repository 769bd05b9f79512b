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

// parseFlags parses the server command-line flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (pgx, sqlite3)
//	-f upload directory
//	-files-backend image storage backend (local, s3)
//	-allowed-extensions comma separated image extensions
//	-c/-config json file path with configs
//	-token-sign-key session token signing key
//	-token-issuer session token issuer
//	-token-duration session lifetime (e.g., "12h")
//	-hash-key flash cookie hash key
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-max-upload-size maximum upload size in bytes
//	-secure-cookies mark cookies Secure
//	-protect-uploads require login to fetch images
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("image-keeper", flag.ContinueOnError)

	var serverAddress NetAddress
	var uploadDir, filesBackend, allowedExtensions string
	var databaseDSN, databaseDriver string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer, hashKey string
	var tokenDuration, requestTimeout time.Duration
	var maxUploadSize int64
	var secureCookies, protectUploads bool

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "driver", "", "Database driver (pgx, sqlite3)")
	fs.StringVar(&uploadDir, "f", "", "Upload directory")
	fs.StringVar(&filesBackend, "files-backend", "", "Image storage backend (local, s3)")
	fs.StringVar(&allowedExtensions, "allowed-extensions", "", "Comma separated image extensions")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Session token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Session token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Session lifetime (e.g., 12h)")
	fs.StringVar(&hashKey, "hash-key", "", "Flash cookie hash key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&maxUploadSize, "max-upload-size", 0, "Maximum upload size in bytes")
	fs.BoolVar(&secureCookies, "secure-cookies", false, "Mark cookies Secure")
	fs.BoolVar(&protectUploads, "protect-uploads", false, "Require login to fetch images")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			HashKey:       hashKey,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
			Files: Files{
				Backend:           filesBackend,
				UploadDir:         uploadDir,
				AllowedExtensions: splitList(allowedExtensions),
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			MaxUploadSize:  maxUploadSize,
			SecureCookies:  secureCookies,
			ProtectUploads: protectUploads,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// splitList splits a comma separated list, trimming blanks and dropping
// empty items. It returns nil for an empty input.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless host is
// "localhost" or empty.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
