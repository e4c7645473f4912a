// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"sort"
)

type contextKeyTy string

const (
	handlerKey contextKeyTy = "log.handler"
	traceKey   contextKeyTy = "log.trace"
	valuesKey  contextKeyTy = "log.values"
)

// V is a set of structured key/value fields that can be attached to a
// context or a single log message.
type V map[string]interface{}

func (v V) keys() []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func printValue(v interface{}) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// Bind returns a new context with v merged into the context's existing
// values, later keys overriding earlier ones.
func (v V) Bind(ctx context.Context) context.Context {
	merged := V{}
	for k, val := range getValues(ctx) {
		merged[k] = val
	}
	for k, val := range v {
		merged[k] = val
	}
	return context.WithValue(ctx, valuesKey, merged)
}

func getValues(ctx context.Context) V {
	v, _ := ctx.Value(valuesKey).(V)
	return v
}

func getTrace(ctx context.Context) []string {
	t, _ := ctx.Value(traceKey).([]string)
	return t
}

// Enter returns a new context with name appended to the logging trace, used
// to label a phase of work for every message logged beneath it.
func Enter(ctx context.Context, name string) context.Context {
	trace := append(append([]string{}, getTrace(ctx)...), name)
	return context.WithValue(ctx, traceKey, trace)
}

// PutHandler returns a new context that routes log messages to h.
func PutHandler(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey, h)
}

// GetHandler returns the Handler installed on ctx, or the default stderr
// handler if none was installed.
func GetHandler(ctx context.Context) Handler {
	if h, ok := ctx.Value(handlerKey).(Handler); ok {
		return h
	}
	return StderrHandler
}
