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
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestForeignKeyConstraintClause(t *testing.T) {
	fk := ForeignKeyConstraint{
		Table:           "user_preferences",
		Column:          "user_id",
		ReferenceTable:  "users",
		ReferenceColumn: "id",
		OnDelete:        "CASCADE",
	}
	assert.Equal(t, "(user_id) REFERENCES users (id) ON DELETE CASCADE", fk.Clause())
	assert.Equal(t, "fk_user_preferences_user_id", fk.GenerateConstraintName())
	assert.NoError(t, fk.Validate())

	fk.ConstraintName = "fk_pref_owner"
	fk.OnUpdate = "restrict"
	assert.Equal(t, "fk_pref_owner", fk.GenerateConstraintName())
	assert.Equal(t, "(user_id) REFERENCES users (id) ON DELETE CASCADE ON UPDATE restrict", fk.Clause())
	assert.NoError(t, fk.Validate())
}

func TestForeignKeyConstraintValidate(t *testing.T) {
	assert.Error(t, (&ForeignKeyConstraint{Table: "a", Column: "b"}).Validate())
	assert.Error(t, (&ForeignKeyConstraint{
		Table: "a", Column: "b", ReferenceTable: "c", ReferenceColumn: "d", OnDelete: "EXPLODE",
	}).Validate())
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "userdb.db", sqliteDSN("userdb"))
	assert.Equal(t, "/tmp/x/test.db", sqliteDSN("/tmp/x/test"))
	assert.Equal(t, "already.db", sqliteDSN("already.db"))
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "file:test.db?cache=shared", sqliteDSN("file:test.db?cache=shared"))
}

func TestToFields(t *testing.T) {
	assert.Empty(t, toFields(nil))
	assert.Empty(t, toFields([]interface{}{"dangling"}))
	assert.Equal(t, logrus.Fields{"type": "sqlite", "dbname": "userdb"},
		toFields([]interface{}{"type", "sqlite", "dbname", "userdb", "extra"}))
}
