// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"fmt"
	"sync"
)

// ConfigError reports an invalid Config field, detected by
// Config.Validate before sampling begins (spec.md §7: "surfaced to the
// caller before sampling begins").
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("demcmc: invalid config field %s: %s", e.Field, e.Reason)
}

// CallbackError wraps a panic or error raised by a user-supplied Model
// callback (SamplePrior, PriorLogLike, or LogLike), attaching the theta
// that triggered it (spec.md §7: "surface to caller with the offending
// theta attached"). The engine does not swallow these; a callback error
// terminates the run.
type CallbackError struct {
	Callback string
	Theta    Theta
	Err      error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("demcmc: model callback %s failed: %v", e.Callback, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

// callAndRecover invokes fn, converting a panic into a *CallbackError
// so a misbehaving user callback cannot take down the whole process.
func callAndRecover(name string, theta Theta, fn func() float64) (weight float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				rerr = fmt.Errorf("%v", r)
			}
			err = &CallbackError{Callback: name, Theta: theta, Err: rerr}
		}
	}()
	return fn(), nil
}

// errCollector records the first error reported to it from any
// goroutine, so concurrent per-particle work within a group (group.go)
// can surface a user-callback error without a data race.
type errCollector struct {
	mu  sync.Mutex
	err error
}

func (e *errCollector) set(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err == nil {
		e.err = err
	}
}

func (e *errCollector) get() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}
