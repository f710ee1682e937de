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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tomoncle/userdb/database"
	"github.com/tomoncle/userdb/utils"
)

var logger = utils.NewLogger("SESSION")

// Failure is a failed script run: the classified kind and the error message.
type Failure struct {
	Kind    database.SQLError
	Message string
}

func (f *Failure) Error() string { return f.Message }

// NewFailure classifies err. It returns nil for a nil error.
func NewFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	_, kind := database.IsSqlError(err)
	return &Failure{Kind: kind, Message: err.Error()}
}

// Result is the outcome of Run. Exactly one of Value (possibly nil, meaning
// absent) or Failure is meaningful.
type Result struct {
	Script  string
	Prints  bool
	Value   interface{}
	Failure *Failure
}

func (r Result) OK() bool { return r.Failure == nil }

// Run executes script against store and always disconnects the store exactly
// once before returning, whether the body succeeded, failed or panicked.
func Run(ctx context.Context, store Store, script Script) (result Result) {
	result = Result{Script: script.Name, Prints: script.Prints}
	defer func() {
		if r := recover(); r != nil {
			result.Value = nil
			result.Failure = &Failure{Kind: database.UnknownErr, Message: fmt.Sprint(r)}
		}
		if err := store.Disconnect(); err != nil {
			logger.WithField("script", script.Name).Warnf("disconnect failed: %v", err)
		}
	}()

	logger.WithField("script", script.Name).Debug("running script")
	if script.Body == nil {
		return result
	}
	value, err := script.Body(ctx, store)
	if err != nil {
		result.Failure = NewFailure(err)
		return result
	}
	result.Value = value
	return result
}

// OutputFormat selects how Report encodes a printed value.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// ParseOutputFormat accepts "json" (the default for "") and "yaml"/"yml".
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return OutputJSON, nil
	case "yaml", "yml":
		return OutputYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Report writes a failure as a single line holding only its message to
// stderr, or the value of a printing script to stdout. An absent value is
// printed as null.
func Report(result Result, stdout, stderr io.Writer, format OutputFormat) error {
	if result.Failure != nil {
		msg := strings.Join(strings.Fields(result.Failure.Message), " ")
		_, err := fmt.Fprintln(stderr, msg)
		return err
	}
	if !result.Prints {
		return nil
	}

	var out []byte
	var err error
	switch format {
	case OutputYAML:
		out, err = yaml.Marshal(result.Value)
	default:
		out, err = json.MarshalIndent(result.Value, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s result: %w", result.Script, err)
	}
	_, err = stdout.Write(out)
	return err
}
