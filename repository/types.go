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

package repository

import (
	"context"

	"github.com/tomoncle/userdb/types"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// CrudRepository defines the basic operations for a generic entity type.
type CrudRepository[T any] interface {
	// FindFirst returns the first row matching filter in the database's
	// default scan order, with the named relations eager-loaded. It returns
	// nil, nil when nothing matches.
	FindFirst(ctx context.Context, filter *types.QueryFilter, relations ...string) (*T, error)

	List(ctx context.Context, filter *types.QueryFilter, relations ...string) ([]*T, error)

	Count(ctx context.Context, filter *types.QueryFilter) (int, error)

	Create(ctx context.Context, entity ...*T) error

	// DeleteMany removes every row matching filter, or every row when filter
	// is empty, and returns how many rows went.
	DeleteMany(ctx context.Context, filter *types.QueryFilter) (int64, error)
}

// Repository combines the CRUD operations with transaction binding and the
// Bun query builders for advanced use cases.
type Repository[T any] interface {
	CrudRepository[T]
	WithTx(tx bun.Tx) Repository[T]
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}
