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
	"io"
)

// OpenOption adjusts a manager before Open may connect it.
type OpenOption func(AbstractDatabaseManager)

// WithQueryLogWriter sends query hook output to w.
func WithQueryLogWriter(w io.Writer) OpenOption {
	return func(m AbstractDatabaseManager) { m.SetQueryLogWriter(w) }
}

// WithLogger replaces the manager logger.
func WithLogger(l Logger) OpenOption {
	return func(m AbstractDatabaseManager) { m.SetLogger(l) }
}

// Open builds a manager from cfg without connecting. The connection is opened
// on first use. When the config enables migrate-on-startup, Open connects and
// migrates right away.
func Open(ctx context.Context, cfg *Config, opts ...OpenOption) (AbstractDatabaseManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	factory := NewDatabaseFactory()
	manager, err := factory.CreateFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	for _, opt := range opts {
		opt(manager)
	}
	if cfg.DataMigrateConfig.EnableMigrateOnStartup {
		if err := factory.InitializeDatabase(ctx, true); err != nil {
			_ = factory.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	return manager, nil
}
