// SPDX-License-Identifier: MIT

package khk

import "errors"

var (
	// ErrEmptyBasis is returned when the vertical basis is empty.
	ErrEmptyBasis = errors.New("khk: empty vertical basis")

	// ErrParamLen is returned when a parameter vector does not match the basis size.
	ErrParamLen = errors.New("khk: parameter length mismatch")

	// ErrDimensionMismatch is returned when operators do not share one 2ⁿ×2ⁿ shape.
	ErrDimensionMismatch = errors.New("khk: dimension mismatch")

	// ErrNotHermitian is returned when v or H is not Hermitian.
	ErrNotHermitian = errors.New("khk: operator is not Hermitian")
)
