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
	"os/signal"
	"sync"
	"time"

	"atomgraph/core/app/crash"
	"atomgraph/core/fault/stacktrace"
)

// ExitCode is the type for named return values from the application main entry point.
type ExitCode int

const (
	// SuccessExit is the exit code for succesful exit.
	SuccessExit ExitCode = iota
	// FatalExit is the exit code if something logs at a fatal severity (critical or higher by default)
	FatalExit
	// UsageExit is the exit code if the usage function was invoked
	UsageExit
)

// CleanupTimeout is the time to wait for all cleanup signals to fire when shutting down.
var CleanupTimeout = time.Second * 10

var cleanupGroup sync.WaitGroup

// AddCleanup calls f when the context is cancelled.
// Application will wait (for a maximum of CleanupTimeout) for f to complete
// before terminiating the application.
func AddCleanup(ctx context.Context, f func()) {
	cleanupGroup.Add(1)
	crash.Go(func() {
		defer cleanupGroup.Done()
		<-ctx.Done()
		f()
	})
}

// WaitForCleanup waits for all the cleanup signals to fire, or the cleanup timeout to expire,
// whichever comes first.
func WaitForCleanup(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		cleanupGroup.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(CleanupTimeout):
		return false
	}
}

func handleAbortSignals(shutdown func()) {
	sigchan := make(chan os.Signal, 1)
	// Note: for Unix, these signals translate to SIGINT and SIGKILL.
	signal.Notify(sigchan, os.Interrupt, os.Kill)
	crash.Go(func() {
		<-sigchan
		shutdown()
	})
}

func handleCrashSignals(shutdown func()) {
	crash.Register(func(interface{}, stacktrace.Callstack) {
		shutdown()
	})
}
