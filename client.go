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

package userdb

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomoncle/userdb/database"
	"github.com/tomoncle/userdb/model"
	"github.com/tomoncle/userdb/repository"
	"github.com/tomoncle/userdb/types"

	"github.com/uptrace/bun"
)

// Store is the database capability a script runs against. Scripts receive it
// explicitly so tests can hand them a fake.
type Store interface {
	// DeleteManyUsers deletes the users matching filter, or all users when
	// filter is nil, and returns how many were deleted.
	DeleteManyUsers(ctx context.Context, filter *types.QueryFilter) (int64, error)

	// CreateUser creates user together with its nested UserPreference and
	// returns the stored user with the preference included.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// FindFirstUser returns the first user matching filter, or nil when no
	// row matches.
	FindFirstUser(ctx context.Context, filter *types.QueryFilter) (*model.User, error)

	// Disconnect releases the connection. Calling it again is a no-op.
	Disconnect() error
}

// Client is the Store backed by a database manager. The connection is opened
// lazily by the first query.
type Client struct {
	manager database.AbstractDatabaseManager
	mu      sync.Mutex
	db      *bun.DB
	users   *repository.UserRepository
}

var _ Store = (*Client)(nil)

func NewClient(manager database.AbstractDatabaseManager) *Client {
	return &Client{manager: manager}
}

func (c *Client) userRepo(ctx context.Context) (*repository.UserRepository, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.manager.Connect(ctx); err != nil {
		return nil, err
	}
	db := c.manager.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	if c.users == nil || c.db != db {
		c.db = db
		c.users = repository.NewUserRepository(db)
	}
	return c.users, nil
}

func (c *Client) DeleteManyUsers(ctx context.Context, filter *types.QueryFilter) (int64, error) {
	users, err := c.userRepo(ctx)
	if err != nil {
		return 0, err
	}
	return users.DeleteManyWithPreferences(ctx, filter)
}

func (c *Client) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	users, err := c.userRepo(ctx)
	if err != nil {
		return nil, err
	}
	return users.CreateWithPreference(ctx, user)
}

func (c *Client) FindFirstUser(ctx context.Context, filter *types.QueryFilter) (*model.User, error) {
	users, err := c.userRepo(ctx)
	if err != nil {
		return nil, err
	}
	return users.FindFirst(ctx, filter)
}

func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = nil
	c.db = nil
	return c.manager.Disconnect()
}
