// SPDX-License-Identifier: MIT

package pauli

import "errors"

var (
	// ErrInvalidWire is returned for negative wire labels.
	ErrInvalidWire = errors.New("pauli: wire must be >= 0")

	// ErrDuplicateWire is returned when a word names the same wire twice.
	ErrDuplicateWire = errors.New("pauli: duplicate wire in word")

	// ErrUnknownWire is returned when an operator acts on a wire missing from
	// the requested wire order.
	ErrUnknownWire = errors.New("pauli: wire not in wire order")

	// ErrParse is returned for malformed operator strings.
	ErrParse = errors.New("pauli: cannot parse operator")

	// ErrDimensionMismatch is returned when a matrix does not match 2ⁿ×2ⁿ for
	// the given wire order.
	ErrDimensionMismatch = errors.New("pauli: dimension mismatch")
)
