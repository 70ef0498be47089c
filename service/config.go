package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/loganlanou/schemainspect/storage"
	"github.com/spf13/viper"
)

const (
	DefaultDBPath    = "db_migrate.sqlite3"
	DefaultTableName = "eyygo_session"
)

// Config keys. With AutomaticEnv each key also reads the upper-cased
// environment variable (DB_PATH, TABLE_NAME, DB_DRIVER, DB_READ_ONLY).
const (
	KeyDBPath     = "db_path"
	KeyTableName  = "table_name"
	KeyDBDriver   = "db_driver"
	KeyDBReadOnly = "db_read_only"
)

type Config struct {
	DBPath    string
	TableName string

	DB struct {
		Driver   string
		ReadOnly bool
	}
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDBPath, DefaultDBPath)
	v.SetDefault(KeyTableName, DefaultTableName)
	v.SetDefault(KeyDBDriver, storage.DriverModernc)
	v.SetDefault(KeyDBReadOnly, false)
}

// LoadConfig reads the configuration from v. Flags bound on v take
// precedence over the environment, which takes precedence over defaults.
func LoadConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	config := &Config{
		DBPath:    strings.TrimSpace(v.GetString(KeyDBPath)),
		TableName: strings.TrimSpace(v.GetString(KeyTableName)),
	}
	config.DB.Driver = strings.TrimSpace(v.GetString(KeyDBDriver))
	config.DB.ReadOnly = v.GetBool(KeyDBReadOnly)

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return errors.New("database path is required")
	}
	if c.TableName == "" {
		return errors.New("table name is required")
	}
	if !storage.ValidDriver(c.DB.Driver) {
		return fmt.Errorf("unsupported database driver %q (want %q or %q)",
			c.DB.Driver, storage.DriverModernc, storage.DriverMattn)
	}
	return nil
}
