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
	"reflect"
	"sort"
	"sync"
)

// TableModel is a Bun model the migrations create a table for. Instance is a
// (possibly nil) struct pointer. Lower priorities are created first, so a
// referenced table exists before the tables pointing at it.
type TableModel struct {
	Instance interface{}
	Priority int
}

func (m TableModel) name() string {
	t := reflect.TypeOf(m.Instance)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

var (
	modelsMu sync.RWMutex
	models   = map[reflect.Type]TableModel{}
)

// RegisterModel adds instance to the set of migrated and Bun-registered
// models. Registering the same Go type again replaces the earlier entry.
func RegisterModel(instance interface{}, priority int) {
	modelsMu.Lock()
	defer modelsMu.Unlock()
	models[reflect.TypeOf(instance)] = TableModel{Instance: instance, Priority: priority}
}

// RegisteredModels returns the registered models by priority, then by name.
func RegisteredModels() []TableModel {
	modelsMu.RLock()
	result := make([]TableModel, 0, len(models))
	for _, m := range models {
		result = append(result, m)
	}
	modelsMu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority < result[j].Priority
		}
		return result[i].name() < result[j].name()
	})
	return result
}

func RegisteredModelInstances() []interface{} {
	registered := RegisteredModels()
	instances := make([]interface{}, len(registered))
	for i, m := range registered {
		instances[i] = m.Instance
	}
	return instances
}
