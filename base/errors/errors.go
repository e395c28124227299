// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides small helpers for the log-and-return error
// handling pattern used throughout this module, layered on the standard
// library errors package and log/slog.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// New returns an error with the given text, as [errors.New].
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's tree matches target,
// as [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// CallerInfo returns string information about the caller
// of the function that called CallerInfo.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s (%s:%d)", runtime.FuncForPC(pc).Name(), file, line)
}

// Log logs the given error if it is non-nil and returns it.
// It is intended for cases where the error is used elsewhere
// but should also be logged at the site where it arises.
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 logs the given error if it is non-nil and returns the
// non-error value. It is intended for the common single-value-and-error
// return pattern.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must panics if the given error is non-nil, for errors that
// indicate unrecoverable programmer mistakes.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
