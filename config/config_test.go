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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "userdb", cfg.Database.DBName)
	assert.Equal(t, 0, cfg.Database.Port)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
	assert.True(t, cfg.Database.ForeignKeys)
	assert.False(t, cfg.Database.QueryLog)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  type: postgres
  host: db.internal
  username: app
  dbname: users
  slow_query_time: 500ms
  migrate: true
output: yaml
`), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "app", cfg.Database.Username)
	assert.Equal(t, 500*time.Millisecond, cfg.Database.SlowQueryTime)
	assert.True(t, cfg.Database.Migrate)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  type: mysql\n  dbname: fromfile\n"), 0o600))
	t.Setenv("USERDB_DATABASE_DBNAME", "fromenv")
	t.Setenv("USERDB_LOG_LEVEL", "debug")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "fromenv", cfg.Database.DBName)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfigLoader(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Type:        "mysql",
		Host:        "localhost",
		Port:        3307,
		Username:    "root",
		Password:    "secret",
		DBName:      "users",
		QueryLog:    true,
		Migrate:     true,
		ForeignKeys: false,
	}}

	dbCfg := cfg.ConfigLoader()

	conn := dbCfg.ConnectionConfig
	assert.Equal(t, "mysql", conn.Type)
	assert.Equal(t, "localhost", conn.Host)
	assert.Equal(t, 3307, conn.Port)
	assert.Equal(t, "root", conn.Username)
	assert.Equal(t, "secret", conn.Password)
	assert.Equal(t, "users", conn.DBName)
	assert.True(t, conn.EnableQueryLog)
	assert.Equal(t, 10*time.Second, conn.ConnectTimeout, "zero keeps the default")
	assert.True(t, dbCfg.DataMigrateConfig.EnableMigrateOnStartup)
	assert.False(t, dbCfg.DataMigrateConfig.EnableForeignKey)
}
