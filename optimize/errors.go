// SPDX-License-Identifier: MIT

package optimize

import "errors"

var (
	// ErrNilObjective is returned when Minimize is called without an objective.
	ErrNilObjective = errors.New("optimize: objective is nil")

	// ErrEmptyParams is returned for a zero-length start point.
	ErrEmptyParams = errors.New("optimize: empty parameter vector")
)
