// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 provides the float32 vector math needed by traversal
// aggregation, wrapping github.com/chewxy/math32 for the scalar
// operations, which has optimized implementations.
package math32

import (
	"math"

	"github.com/chewxy/math32"
)

// Infinity is positive infinity.
var Infinity = float32(math.Inf(1))

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return math32.Sqrt(x)
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return math32.Abs(x)
}

// IsNaN reports whether x is a "not-a-number" value.
func IsNaN(x float32) bool {
	return math32.IsNaN(x)
}

// Min returns the smaller of a or b.
func Min(a, b float32) float32 {
	return math32.Min(a, b)
}

// Max returns the larger of a or b.
func Max(a, b float32) float32 {
	return math32.Max(a, b)
}
