package db

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Supported database/sql driver names.
const (
	DriverMySQL    = "mysql"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultPoolSize is the fixed number of connections when none is configured.
const DefaultPoolSize = 10

var (
	// ErrMissingParams is returned when a required connection parameter is empty.
	ErrMissingParams = errors.New("db: missing connection parameters")

	// ErrUnsupportedDriver is returned for an unknown DB_DRIVER.
	ErrUnsupportedDriver = errors.New("db: unsupported driver")
)

// Config describes how to reach the store.
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	// Database is the schema name, or the file path for sqlite.
	Database string
	SSLMode  string
	PoolSize int
}

// DefaultPort returns the conventional port for driver, or 0 when the driver
// does not use the network.
func DefaultPort(driver string) int {
	switch driver {
	case DriverPgx, DriverPostgres:
		return 5432
	case DriverSQLite:
		return 0
	default:
		return 3306
	}
}

// Validate reports every required parameter that is missing.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverMySQL, DriverPgx, DriverPostgres:
		var missing []string
		if c.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if c.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Password == "" {
			missing = append(missing, "DB_PASSWORD")
		}
		if c.Database == "" {
			missing = append(missing, "DB_DATABASE")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: %s", ErrMissingParams, strings.Join(missing, ", "))
		}
	case DriverSQLite:
		if c.Database == "" {
			return fmt.Errorf("%w: DB_DATABASE", ErrMissingParams)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}
	return nil
}

func (c Config) port() int {
	if c.Port > 0 {
		return c.Port
	}
	return DefaultPort(c.Driver)
}

func (c Config) poolSize() int {
	if c.PoolSize > 0 {
		return c.PoolSize
	}
	return DefaultPoolSize
}

// DSN builds the driver-specific data source name.
func (c Config) DSN() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	switch c.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.port()))
		mc.User = c.User
		mc.Passwd = c.Password
		mc.DBName = c.Database
		mc.ParseTime = true
		// Matched rather than changed rows, so an UPDATE that rewrites the
		// same values still reports the row.
		mc.ClientFoundRows = true
		return mc.FormatDSN(), nil

	case DriverPgx, DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.port())),
			Path:   "/" + c.Database,
		}
		if c.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
		}
		return u.String(), nil

	default:
		// Every pooled connection gets the same busy timeout.
		return c.Database + "?_pragma=busy_timeout(5000)", nil
	}
}
