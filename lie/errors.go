// SPDX-License-Identifier: MIT

package lie

import "errors"

var (
	// ErrNoGenerators is returned when Closure is called without generators,
	// or when every generator is zero.
	ErrNoGenerators = errors.New("lie: no generators")

	// ErrMaxDimExceeded is returned when the closure grows past WithMaxDim.
	ErrMaxDimExceeded = errors.New("lie: closure exceeds maximum dimension")
)
