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

package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		"DEBUG":   logrus.DebugLevel,
		"":        logrus.InfoLevel,
		" warn ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestNewLoggerReturnsRegisteredInstance(t *testing.T) {
	a := NewLogger("utils-test-same")
	b := NewLogger("utils-test-same")
	assert.Same(t, a, b)
}

func TestSetLoggerLevel(t *testing.T) {
	lg := NewLogger("utils-test-level")

	assert.True(t, SetLoggerLevel("utils-test-level", "error"))
	assert.Equal(t, logrus.ErrorLevel, lg.GetLevel())
	assert.False(t, SetLoggerLevel("utils-test-missing", "debug"))
}

func TestSetConsoleWriterRedirectsLoggers(t *testing.T) {
	var buf bytes.Buffer
	SetConsoleWriter(&buf)
	t.Cleanup(func() { SetConsoleWriter(nil) })

	lg := NewLogger("utils-test-writer")
	lg.SetLevel(logrus.InfoLevel)
	lg.WithField("script", "seed").Info("hello")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "hello script=seed")
	assert.Contains(t, out, "utils-test")
}

func TestJSONLogFormatter(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "DATABASE"}
	entry := logrus.NewEntry(logrus.New()).WithField("error", assert.AnError)
	entry.Message = "connect failed"
	entry.Level = logrus.ErrorLevel

	b, err := f.Format(entry)
	require.NoError(t, err)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, "error", rec["level"])
	assert.Equal(t, "DATABASE", rec["logger"])
	assert.Equal(t, "connect failed", rec["message"])
	fields := rec["fields"].(map[string]interface{})
	assert.Equal(t, assert.AnError.Error(), fields["error"])
}

func TestCallerPath(t *testing.T) {
	assert.Equal(t, "database/manager.go", callerPath("/src/userdb/database/manager.go"))
	assert.Equal(t, "main.go", callerPath("main.go"))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("UTILS_TEST_BOOL", "false")
	t.Setenv("UTILS_TEST_BAD", "maybe")
	assert.False(t, EnvDefaultBool("UTILS_TEST_BOOL", true))
	assert.True(t, EnvDefaultBool("UTILS_TEST_BAD", true))
	assert.Equal(t, "x", EnvDefaultString("UTILS_TEST_UNSET", "x"))
}
