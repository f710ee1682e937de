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

	"github.com/tomoncle/userdb/database"
	"github.com/tomoncle/userdb/model"
	"github.com/tomoncle/userdb/types"
)

// ScriptBody is the work a script does with an open Store.
type ScriptBody func(ctx context.Context, store Store) (interface{}, error)

// Script is one run-once program: configure the client, run Body, report.
type Script struct {
	Name string
	// Verbose turns on logging of every query the client issues.
	Verbose bool
	// Prints is false for scripts whose outcome is not written to stdout.
	Prints bool
	Body   ScriptBody
}

// Configure applies the script's client options to cfg. It must be called
// before the manager is built.
func (s Script) Configure(cfg *database.Config) {
	if s.Verbose {
		cfg.ConnectionConfig.EnableQueryLog = true
	}
}

// Seed values written by SeedScript.
const (
	SeedName    = "Rahul"
	SeedAge     = 36
	SeedEmail   = "rahul@test.com"
	SeedIsAdmin = true
)

// NewSeedUser returns the user SeedScript creates, with its preference.
func NewSeedUser() *model.User {
	return &model.User{
		Name:    SeedName,
		Age:     SeedAge,
		Email:   SeedEmail,
		IsAdmin: SeedIsAdmin,
		UserPreference: &model.UserPreference{
			EmailUpdate: true,
		},
	}
}

// SeedScript deletes every user, then creates the seed user with its
// preference and returns it with the preference included. Running it twice
// leaves the same single row.
func SeedScript() Script {
	return Script{
		Name:   "seed",
		Prints: true,
		Body: func(ctx context.Context, store Store) (interface{}, error) {
			if _, err := store.DeleteManyUsers(ctx, nil); err != nil {
				return nil, err
			}
			user, err := store.CreateUser(ctx, NewSeedUser())
			if err != nil {
				return nil, err
			}
			if user.UserPreference == nil {
				return nil, fmt.Errorf("created user %d has no preference", user.ID)
			}
			return user, nil
		},
	}
}

// PlaygroundScript turns on query logging and does nothing else. It is the
// place for ad hoc queries edited in by hand.
func PlaygroundScript() Script {
	return Script{
		Name:    "playground",
		Verbose: true,
		Body: func(ctx context.Context, store Store) (interface{}, error) {
			return nil, nil
		},
	}
}

// LookupScript finds the first user whose name equals name. No order is
// applied, so with several matches the database picks.
func LookupScript(name string) Script {
	return Script{
		Name:   "lookup",
		Prints: true,
		Body: func(ctx context.Context, store Store) (interface{}, error) {
			user, err := store.FindFirstUser(ctx, types.Equals("name", name))
			if err != nil {
				return nil, err
			}
			if user == nil {
				return nil, nil
			}
			return user, nil
		},
	}
}
