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

package database_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/tomoncle/userdb/database"
	_ "github.com/tomoncle/userdb/model"
)

func sqliteConfig(t *testing.T) *database.Config {
	t.Helper()
	cfg := database.DefaultConfig()
	cfg.ConnectionConfig.DBName = filepath.Join(t.TempDir(), "userdb")
	return cfg
}

func TestOpenDoesNotConnect(t *testing.T) {
	manager, err := database.Open(context.Background(), sqliteConfig(t))
	require.NoError(t, err)

	assert.False(t, manager.IsConnected())
	assert.Nil(t, manager.GetDB())
	assert.Error(t, manager.Ping(context.Background()))
	assert.NoError(t, manager.Disconnect())
}

func TestOpenRejectsUnsupportedType(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.ConnectionConfig.Type = "oracle"
	_, err := database.Open(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type: oracle")
}

func TestConnectAndDisconnectAreIdempotent(t *testing.T) {
	ctx := context.Background()
	manager, err := database.Open(ctx, sqliteConfig(t))
	require.NoError(t, err)

	require.NoError(t, manager.Connect(ctx))
	db := manager.GetDB()
	require.NotNil(t, db)
	require.NoError(t, manager.Connect(ctx))
	assert.Same(t, db, manager.GetDB())
	assert.NoError(t, manager.Ping(ctx))

	require.NoError(t, manager.Disconnect())
	assert.False(t, manager.IsConnected())
	assert.NoError(t, manager.Disconnect())
}

func TestMigrateOnStartupCreatesTablesOnce(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)
	cfg.DataMigrateConfig.EnableMigrateOnStartup = true

	manager, err := database.Open(ctx, cfg)
	require.NoError(t, err)
	defer func() { _ = manager.Disconnect() }()
	require.True(t, manager.IsConnected())

	// a second run finds 001 recorded and does nothing
	require.NoError(t, manager.RunMigrations(ctx))

	applied, err := database.NewMigrationManager(manager.GetDB(), nil).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "001", applied[0].Version)
	assert.Equal(t, "create_base_tables", applied[0].Name)

	var tables []string
	err = manager.GetDB().NewSelect().
		Table("sqlite_master").
		Column("name").
		Where("type = ?", "table").
		Where("name IN (?, ?)", "users", "user_preferences").
		Order("name ASC").
		Scan(ctx, &tables)
	require.NoError(t, err)
	assert.Equal(t, []string{"user_preferences", "users"}, tables)
}

func TestQueryLogWriterReceivesQueries(t *testing.T) {
	t.Setenv("USERDB_QUERY_LOG", "2")
	ctx := context.Background()
	cfg := sqliteConfig(t)
	cfg.ConnectionConfig.EnableQueryLog = true

	var buf bytes.Buffer
	manager, err := database.Open(ctx, cfg, database.WithQueryLogWriter(&buf))
	require.NoError(t, err)
	defer func() { _ = manager.Disconnect() }()
	require.NoError(t, manager.Connect(ctx))

	var one int
	require.NoError(t, manager.GetDB().NewSelect().ColumnExpr("1").Scan(ctx, &one))
	assert.Equal(t, 1, one)
	assert.Contains(t, buf.String(), "SELECT 1")
}

func TestRegisteredModelsAreOrdered(t *testing.T) {
	models := database.RegisteredModels()
	require.GreaterOrEqual(t, len(models), 2)
	for i := 1; i < len(models); i++ {
		assert.LessOrEqual(t, models[i-1].Priority, models[i].Priority)
	}
}

type recordingLogger struct{ infos []string }

func (r *recordingLogger) Debug(string, ...interface{})      {}
func (r *recordingLogger) Info(msg string, _ ...interface{}) { r.infos = append(r.infos, msg) }
func (r *recordingLogger) Warn(string, ...interface{})       {}
func (r *recordingLogger) Error(string, ...interface{})      {}

func TestWithLoggerReceivesConnectRecord(t *testing.T) {
	rec := &recordingLogger{}
	manager, err := database.Open(context.Background(), sqliteConfig(t), database.WithLogger(rec))
	require.NoError(t, err)
	require.NoError(t, manager.Connect(context.Background()))
	t.Cleanup(func() { _ = manager.Disconnect() })

	assert.Contains(t, rec.infos, "database connected")
}

func TestDBEnvOverridesConfig(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("DB_ENABLE_QUERY_LOG", "true")
	cfg := sqliteConfig(t)
	cfg.ConnectionConfig.MaxOpenConns = 7

	_, err := database.Open(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.ConnectionConfig.Type)
	assert.Equal(t, 6543, cfg.ConnectionConfig.Port)
	assert.Equal(t, 7, cfg.ConnectionConfig.MaxOpenConns)
	assert.True(t, cfg.ConnectionConfig.EnableQueryLog)
}

func TestRegisteredMigrationRunsAfterBaseTables(t *testing.T) {
	ctx := context.Background()
	manager, err := database.Open(ctx, sqliteConfig(t))
	require.NoError(t, err)
	require.NoError(t, manager.Connect(ctx))
	defer func() { _ = manager.Disconnect() }()

	mm := database.NewMigrationManager(manager.GetDB(), nil)
	mm.Register(database.MigrationItem{
		Version: "002",
		Name:    "index_users_name",
		Up: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateIndex().Table("users").Index("users_name_idx").Column("name").Exec(ctx)
			return err
		},
	})
	require.NoError(t, mm.RunMigrations(ctx))

	applied, err := mm.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, "002", applied[1].Version)
}
