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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return stdout.String(), stderr.String()
}

func TestSeedThenLookup(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli")

	out, _ := execute(t, "lookup", "--driver", "sqlite", "--dbname", db, "--migrate")
	assert.Equal(t, "null\n", out)

	out, errOut := execute(t, "seed", "--driver", "sqlite", "--dbname", db)
	assert.Empty(t, errOut)
	var seeded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &seeded), out)
	assert.Equal(t, "Rahul", seeded["name"])
	pref, ok := seeded["userPreference"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, pref["emailUpdate"])

	out, _ = execute(t, "lookup", "--driver", "sqlite", "--dbname", db, "--output", "yaml")
	assert.Contains(t, out, "name: Rahul")
	assert.Contains(t, out, "email: rahul@test.com")

	out, _ = execute(t, "lookup", "--driver", "sqlite", "--dbname", db, "--name", "Priya")
	assert.Equal(t, "null\n", out)
}

func TestSeedWithoutTablesReportsOneLine(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty")

	out, errOut := execute(t, "seed", "--driver", "sqlite", "--dbname", db)

	assert.Empty(t, out)
	assert.Contains(t, errOut, "no such table")
	assert.Equal(t, 1, bytes.Count([]byte(errOut), []byte("\n")), errOut)
}

func TestPlaygroundPrintsNothingToStdout(t *testing.T) {
	db := filepath.Join(t.TempDir(), "play")
	execute(t, "migrate", "--driver", "sqlite", "--dbname", db)

	out, _ := execute(t, "playground", "--driver", "sqlite", "--dbname", db)
	assert.Empty(t, out)
}

func TestUnknownDriverReported(t *testing.T) {
	out, errOut := execute(t, "lookup", "--driver", "oracle")
	assert.Empty(t, out)
	assert.Contains(t, errOut, "oracle")
}

func TestInvalidOutputFails(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"lookup", "--output", "xml"})
	assert.Error(t, cmd.Execute())
}
