/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tomoncle/userdb/database"
)

// EnvPrefix prefixes every environment key, e.g. USERDB_DATABASE_TYPE.
const EnvPrefix = "USERDB"

// Config is the file/env/flag view of the tool settings.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Output   string         `mapstructure:"output"`
}

type DatabaseConfig struct {
	Type           string        `mapstructure:"type"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	DBName         string        `mapstructure:"dbname"`
	SSLMode        string        `mapstructure:"sslmode"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	SlowQueryTime  time.Duration `mapstructure:"slow_query_time"`
	QueryLog       bool          `mapstructure:"query_log"`
	Migrate        bool          `mapstructure:"migrate"`
	ForeignKeys    bool          `mapstructure:"foreign_keys"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	def := database.DefaultConnectionConfig()
	v.SetDefault("database.type", def.Type)
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", def.DBName)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.connect_timeout", def.ConnectTimeout)
	v.SetDefault("database.slow_query_time", def.SlowQueryTime)
	v.SetDefault("database.query_log", false)
	v.SetDefault("database.migrate", false)
	v.SetDefault("database.foreign_keys", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("output", "json")
}

// New returns a viper instance with defaults and USERDB_* env binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v and decodes the result.
// Precedence is flag > env > file > default.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultPort(cfg.Database.Type)
	}
	return &cfg, nil
}

func defaultPort(dbType string) int {
	switch dbType {
	case "mysql":
		return 3306
	case "postgres", "postgresql":
		return 5432
	default:
		return 0
	}
}

// ConfigLoader maps the settings onto the database package configuration.
func (c *Config) ConfigLoader() *database.Config {
	cfg := database.DefaultConfig()
	conn := &cfg.ConnectionConfig
	conn.Type = c.Database.Type
	conn.Host = c.Database.Host
	conn.Port = c.Database.Port
	conn.Username = c.Database.Username
	conn.Password = c.Database.Password
	conn.DBName = c.Database.DBName
	conn.SSLMode = c.Database.SSLMode
	conn.EnableQueryLog = c.Database.QueryLog
	if c.Database.ConnectTimeout > 0 {
		conn.ConnectTimeout = c.Database.ConnectTimeout
	}
	if c.Database.SlowQueryTime > 0 {
		conn.SlowQueryTime = c.Database.SlowQueryTime
	}
	cfg.DataMigrateConfig.EnableMigrateOnStartup = c.Database.Migrate
	cfg.DataMigrateConfig.EnableForeignKey = c.Database.ForeignKeys
	return cfg
}

var _ database.AbstractDatabaseConfigProvider = (*Config)(nil)
