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
)

// Logger is a bound point from which messages can be emitted; it carries
// the handler, trace and values captured from a context.
type Logger struct {
	handler Handler
	trace   []string
	values  V
}

// From builds a Logger from the state stored in ctx.
func From(ctx context.Context) *Logger {
	return &Logger{
		handler: GetHandler(ctx),
		trace:   getTrace(ctx),
		values:  getValues(ctx),
	}
}

func (l *Logger) emit(s Severity, text string) {
	l.handler(&Message{Severity: s, Text: text, Trace: l.trace, Values: l.values})
}

// D logs a debug message.
func (l *Logger) D(format string, args ...interface{}) { l.emit(Debug, fmt.Sprintf(format, args...)) }

// I logs an info message.
func (l *Logger) I(format string, args ...interface{}) { l.emit(Info, fmt.Sprintf(format, args...)) }

// W logs a warning message.
func (l *Logger) W(format string, args ...interface{}) {
	l.emit(Warning, fmt.Sprintf(format, args...))
}

// E logs an error message.
func (l *Logger) E(format string, args ...interface{}) { l.emit(Error, fmt.Sprintf(format, args...)) }

// F logs a fatal message. If stopProcess is set, the process is aborted
// after the message is emitted.
func (l *Logger) F(format string, stopProcess bool, args ...interface{}) {
	l.emit(Fatal, fmt.Sprintf(format, args...))
	if stopProcess {
		panic(fmt.Sprintf(format, args...))
	}
}

// D logs a debug message to the logger bound to ctx.
func D(ctx context.Context, format string, args ...interface{}) { From(ctx).D(format, args...) }

// I logs an info message to the logger bound to ctx.
func I(ctx context.Context, format string, args ...interface{}) { From(ctx).I(format, args...) }

// W logs a warning message to the logger bound to ctx.
func W(ctx context.Context, format string, args ...interface{}) { From(ctx).W(format, args...) }

// E logs an error message to the logger bound to ctx.
func E(ctx context.Context, format string, args ...interface{}) { From(ctx).E(format, args...) }

// F logs a fatal message to the logger bound to ctx, aborting the process
// if stopProcess is set.
func F(ctx context.Context, stopProcess bool, format string, args ...interface{}) {
	From(ctx).F(format, stopProcess, args...)
}
