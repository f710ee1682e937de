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
	"errors"
	"fmt"
	"strings"

	"github.com/tomoncle/userdb/model"
	"github.com/tomoncle/userdb/types"
)

// fakeStore is an in-memory Store that records calls.
type fakeStore struct {
	users       []*model.User
	nextID      int64
	calls       int
	disconnects int
	createErr   error
	createPanic bool
}

func (f *fakeStore) DeleteManyUsers(_ context.Context, filter *types.QueryFilter) (int64, error) {
	f.calls++
	if !filter.IsEmpty() {
		return 0, errors.New("fakeStore: filtered delete not supported")
	}
	n := int64(len(f.users))
	f.users = nil
	return n, nil
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.calls++
	if f.createPanic {
		panic("driver exploded")
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, fmt.Errorf("constraint failed: UNIQUE constraint failed: users.email (2067)")
		}
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	if user.UserPreference != nil {
		pref := *user.UserPreference
		pref.ID = f.nextID
		pref.UserID = stored.ID
		stored.UserPreference = &pref
	}
	f.users = append(f.users, &stored)
	out := stored
	return &out, nil
}

func (f *fakeStore) FindFirstUser(_ context.Context, filter *types.QueryFilter) (*model.User, error) {
	f.calls++
	if filter.IsEmpty() || !strings.Contains(filter.Schema, "name") {
		return nil, errors.New("fakeStore: only name filters are supported")
	}
	for _, u := range f.users {
		if u.Name == filter.Args[0] {
			out := *u
			out.UserPreference = nil
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Disconnect() error {
	f.disconnects++
	return nil
}
