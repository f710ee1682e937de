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

package database

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"
)

var supportedTypes = []string{"mysql", "postgres", "postgresql", "sqlite", "sqlite3"}

// envOverrides maps DB_* variables onto connection settings. Values that do
// not parse are ignored.
var envOverrides = map[string]func(*ConnectionConfig, string){
	"DB_TYPE":     func(c *ConnectionConfig, v string) { c.Type = v },
	"DB_HOST":     func(c *ConnectionConfig, v string) { c.Host = v },
	"DB_PORT":     func(c *ConnectionConfig, v string) { setInt(&c.Port, v) },
	"DB_USERNAME": func(c *ConnectionConfig, v string) { c.Username = v },
	"DB_PASSWORD": func(c *ConnectionConfig, v string) { c.Password = v },
	"DB_NAME":     func(c *ConnectionConfig, v string) { c.DBName = v },
	"DB_SSLMODE":  func(c *ConnectionConfig, v string) { c.SSLMode = v },

	"DB_MAX_IDLE_CONNS": func(c *ConnectionConfig, v string) { setInt(&c.MaxIdleConns, v) },
	"DB_MAX_OPEN_CONNS": func(c *ConnectionConfig, v string) { setInt(&c.MaxOpenConns, v) },
	"DB_CONN_MAX_LIFETIME": func(c *ConnectionConfig, v string) {
		var secs int
		if setInt(&secs, v) {
			c.ConnMaxLifetime = time.Duration(secs) * time.Second
		}
	},
	"DB_ENABLE_QUERY_LOG": func(c *ConnectionConfig, v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			c.EnableQueryLog = b
		}
	},
}

func setInt(dst *int, v string) bool {
	n, err := strconv.Atoi(v)
	if err != nil {
		return false
	}
	*dst = n
	return true
}

// BaseDatabaseFactory builds one manager from a Config. It holds no
// package-level state; the caller owns the manager it gets back.
type BaseDatabaseFactory struct {
	manager AbstractDatabaseManager
	logger  Logger
}

func NewDatabaseFactory() *BaseDatabaseFactory {
	return &BaseDatabaseFactory{logger: GetLogger()}
}

// CreateFromConfig applies DB_* overrides to cfg, checks the driver and
// returns an unconnected manager.
func (f *BaseDatabaseFactory) CreateFromConfig(cfg *Config) (AbstractDatabaseManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	applyEnvOverrides(&cfg.ConnectionConfig)

	if !slices.Contains(supportedTypes, cfg.ConnectionConfig.Type) {
		return nil, fmt.Errorf("unsupported database type: %s, supported types: %v", cfg.ConnectionConfig.Type, supportedTypes)
	}

	manager := &defaultDatabaseManager{
		config:         &cfg.ConnectionConfig,
		queryLogWriter: os.Stderr,
	}
	manager.setMigrateConfig(cfg.DataMigrateConfig)
	manager.SetLogger(f.logger)

	f.manager = manager
	return manager, nil
}

func applyEnvOverrides(cfg *ConnectionConfig) {
	for key, apply := range envOverrides {
		if v := os.Getenv(key); v != "" {
			apply(cfg, v)
		}
	}
}

// InitializeDatabase connects and, when runMigrations is set, migrates.
func (f *BaseDatabaseFactory) InitializeDatabase(ctx context.Context, runMigrations bool) error {
	if f.manager == nil {
		return fmt.Errorf("database manager not created")
	}
	if err := f.manager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if runMigrations {
		if err := f.manager.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}
	f.logger.Debug("database initialized", "migrations", runMigrations)
	return nil
}

func (f *BaseDatabaseFactory) Close() error {
	if f.manager == nil {
		return nil
	}
	return f.manager.Disconnect()
}
