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

package app

import (
	"context"
	"os"

	"atomgraph/core/log"
)

// LogFlags controls the verbosity and destination of the application log.
type LogFlags struct {
	Level log.Severity `help:"the minimum log severity to emit"`
	File  string       `help:"an optional file path to additionally log to"`
}

func logDefaults() LogFlags {
	return LogFlags{Level: log.Info}
}

func severityFilter(min log.Severity) log.Handler {
	return func(m *log.Message) {
		if m.Severity >= min {
			log.StderrHandler(m)
		}
	}
}

func prepareContext(flags *LogFlags) context.Context {
	ctx := context.Background()
	return log.PutHandler(ctx, severityFilter(flags.Level))
}

func updateContext(ctx context.Context, flags *LogFlags) context.Context {
	handler := severityFilter(flags.Level)
	if flags.File != "" {
		if f, err := os.Create(flags.File); err == nil {
			fileHandler := log.Handler(func(m *log.Message) {
				f.WriteString(m.Print())
				f.WriteString("\n")
			})
			handler = log.Multi(handler, fileHandler)
		} else {
			log.E(ctx, "Failed to create log file %s: %v", flags.File, err)
		}
	}
	return log.PutHandler(ctx, handler)
}
