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
	"fmt"
	"strings"
)

// ForeignKeyConstraint describes a foreign key relationship between tables.
type ForeignKeyConstraint struct {
	Table           string
	Column          string
	ReferenceTable  string
	ReferenceColumn string
	OnDelete        string // CASCADE, RESTRICT, SET NULL, NO ACTION
	OnUpdate        string // CASCADE, RESTRICT, SET NULL, NO ACTION
	ConstraintName  string
}

// ForeignKeyProvider is implemented by models whose table carries foreign
// keys. The constraints are emitted inline in CREATE TABLE, which every
// supported dialect accepts (SQLite has no ALTER TABLE ADD CONSTRAINT).
type ForeignKeyProvider interface {
	ForeignKeys() []ForeignKeyConstraint
}

// GenerateConstraintName returns the explicit name or a derived name.
func (fk *ForeignKeyConstraint) GenerateConstraintName() string {
	if fk.ConstraintName != "" {
		return fk.ConstraintName
	}
	return fmt.Sprintf("fk_%s_%s", fk.Table, fk.Column)
}

// Clause returns the table-level clause passed to bun's CreateTableQuery.ForeignKey.
func (fk *ForeignKeyConstraint) Clause() string {
	clause := fmt.Sprintf("(%s) REFERENCES %s (%s)", fk.Column, fk.ReferenceTable, fk.ReferenceColumn)
	if fk.OnDelete != "" {
		clause += " ON DELETE " + fk.OnDelete
	}
	if fk.OnUpdate != "" {
		clause += " ON UPDATE " + fk.OnUpdate
	}
	return clause
}

// Validate reports the first missing field or unsupported action.
func (fk *ForeignKeyConstraint) Validate() error {
	if fk.Table == "" || fk.Column == "" || fk.ReferenceTable == "" || fk.ReferenceColumn == "" {
		return fmt.Errorf("foreign key %s: table, column, reference table and reference column are required", fk.GenerateConstraintName())
	}
	for _, action := range []string{fk.OnDelete, fk.OnUpdate} {
		if action == "" {
			continue
		}
		switch strings.ToUpper(action) {
		case "CASCADE", "RESTRICT", "SET NULL", "NO ACTION", "SET DEFAULT":
		default:
			return fmt.Errorf("foreign key %s: unsupported action %q", fk.GenerateConstraintName(), action)
		}
	}
	return nil
}

func foreignKeysOf(model interface{}) []ForeignKeyConstraint {
	if p, ok := model.(ForeignKeyProvider); ok {
		return p.ForeignKeys()
	}
	return nil
}
