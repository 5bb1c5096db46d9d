// SPDX-License-Identifier: MIT

package cartan

import "errors"

var (
	// ErrInvalidArgument is returned for an empty horizontal space or a seed
	// index outside it.
	ErrInvalidArgument = errors.New("cartan: invalid argument")

	// ErrNotCartan is returned by CheckRelations when a commutation rule fails.
	ErrNotCartan = errors.New("cartan: not a Cartan decomposition")
)
