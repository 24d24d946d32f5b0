package balala

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/gopsql/db"
	"github.com/gopsql/logger"
	"github.com/gopsql/pgx"
	"github.com/gopsql/pq"
	"github.com/gopsql/standard"
	"gopkg.in/yaml.v3"
)

// Config describes a DB in YAML:
//
//	driver: sqlite
//	dsn: file:app.db
//	table_prefix: t_
//	sql_limit: true
//
// Driver is a database/sql driver name (import
// github.com/gopsql/balala/drivers to register the common ones), or "pq"
// and "pgx" to use github.com/gopsql/pq and github.com/gopsql/pgx
// directly. Dialect defaults to the one matching the driver.
type Config struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	Dialect      string `yaml:"dialect"`
	TablePrefix  string `yaml:"table_prefix"`
	SQLLimit     *bool  `yaml:"sql_limit"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	LogSQL       bool   `yaml:"log_sql"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if c.Driver == "" {
		return nil, fmt.Errorf("parse config: driver is required")
	}
	return &c, nil
}

// Open connects to the database and returns the DB. Options are passed to
// both NewClient and Open, so middlewares and loggers can be added here.
func (c *Config) Open(options ...interface{}) (*DB, error) {
	conn, err := c.connect()
	if err != nil {
		return nil, err
	}
	dialect := DialectByName(c.Dialect)
	if dialect == nil {
		dialect = DialectByName(c.Driver)
	}
	if dialect == nil {
		conn.Close()
		return nil, fmt.Errorf("unknown dialect %q for driver %q", c.Dialect, c.Driver)
	}
	opts := []interface{}{dialect, TablePrefix(c.TablePrefix)}
	if c.SQLLimit != nil {
		opts = append(opts, SQLLimit(*c.SQLLimit))
	}
	if c.LogSQL {
		opts = append(opts, logger.StandardLogger)
	}
	opts = append(opts, options...)
	return Open(NewClient(conn, opts...), opts...), nil
}

func (c *Config) connect() (db.DB, error) {
	switch c.Driver {
	case "pq":
		return pq.Open(c.DSN)
	case "pgx":
		return pgx.Open(c.DSN)
	}
	sqlDB, err := sql.Open(c.Driver, c.DSN)
	if err != nil {
		return nil, err
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	return standard.NewDB(c.Driver, sqlDB), nil
}
