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
	"fmt"

	"github.com/tomoncle/userdb/model"
	"github.com/tomoncle/userdb/types"

	"github.com/uptrace/bun"
)

// RelationUserPreference is the bun relation name of User.UserPreference.
const RelationUserPreference = "UserPreference"

// UserRepository adds the nested writes for users and their preference on
// top of the generic repository.
type UserRepository struct {
	Repository[model.User]
	db *bun.DB
}

func NewUserRepository(db *bun.DB) *UserRepository {
	return &UserRepository{
		Repository: NewRepository[model.User](db),
		db:         db,
	}
}

// CreateWithPreference inserts user and, when set, its UserPreference as one
// unit, then reads the user back with the preference included.
func (r *UserRepository) CreateWithPreference(ctx context.Context, user *model.User) (*model.User, error) {
	if user == nil {
		return nil, fmt.Errorf("user cannot be nil")
	}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := r.Repository.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		if user.UserPreference == nil {
			return nil
		}
		user.UserPreference.UserID = user.ID
		return NewRepository[model.UserPreference](tx).Create(ctx, user.UserPreference)
	})
	if err != nil {
		return nil, err
	}

	created, err := r.FindFirst(ctx, types.Equals("id", user.ID), RelationUserPreference)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("user %d not found after create", user.ID)
	}
	return created, nil
}

// DeleteManyWithPreferences deletes the matching users and their
// preferences, returning the number of users removed. The preference rows go
// first so it also works on schemas created without the cascading key.
func (r *UserRepository) DeleteManyWithPreferences(ctx context.Context, filter *types.QueryFilter) (int64, error) {
	var count int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		prefs := tx.NewDelete().Model((*model.UserPreference)(nil))
		if filter.IsEmpty() {
			prefs = prefs.Where("1 = 1")
		} else {
			owners := tx.NewSelect().
				Model((*model.User)(nil)).
				Column("id").
				Where(filter.Schema, filter.Args...)
			prefs = prefs.Where("user_id IN (?)", owners)
		}
		if _, err := prefs.Exec(ctx); err != nil {
			return err
		}

		n, err := r.Repository.WithTx(tx).DeleteMany(ctx, filter)
		count = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
