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

package model

import (
	"github.com/uptrace/bun"
)

// User is the parent record. Its UserPreference is created together with it
// and is only reachable through this relation.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u" json:"-" yaml:"-"`

	ID             int64           `bun:"id,pk,autoincrement" json:"id" yaml:"id"`
	Name           string          `bun:"name,notnull" json:"name" yaml:"name"`
	Age            int             `bun:"age,notnull" json:"age" yaml:"age"`
	Email          string          `bun:"email,notnull,unique" json:"email" yaml:"email"`
	IsAdmin        bool            `bun:"is_admin,notnull" json:"isAdmin" yaml:"isAdmin"`
	UserPreference *UserPreference `bun:"rel:has-one,join:id=user_id" json:"userPreference,omitempty" yaml:"userPreference,omitempty"`
}

// UserPreference belongs to exactly one User; user_id is unique.
type UserPreference struct {
	bun.BaseModel `bun:"table:user_preferences,alias:up" json:"-" yaml:"-"`

	ID          int64 `bun:"id,pk,autoincrement" json:"id" yaml:"id"`
	EmailUpdate bool  `bun:"email_update,notnull" json:"emailUpdate" yaml:"emailUpdate"`
	UserID      int64 `bun:"user_id,notnull,unique" json:"userId" yaml:"userId"`
}
