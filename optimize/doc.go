// SPDX-License-Identifier: MIT

// Package optimize provides fixed-budget first-order minimisers over ℝⁿ.
//
// Minimize runs a Method for a fixed number of epochs. Each epoch evaluates
// the objective at the current point, records that loss, then updates the
// point. No convergence test is applied unless WithTolerance asks for one.
//
// Methods:
//
//   - GradientDescent: x ← x − η∇f(x).
//   - LBFGS: limited-memory BFGS over the last m curvature pairs with a
//     bisection line search for the strong Wolfe conditions. When the line
//     search gives up, the method restarts from the current point with an
//     empty memory.
//
// Both update rules come from gonum.org/v1/gonum/optimize; this package
// only owns the epoch bookkeeping around them.
//
// Numerical trouble never becomes an error. NaN losses are recorded in the
// trajectory and never selected as best; a trajectory that does not move is
// flagged with Result.Stalled. A method that can no longer leave its point
// ends the run early with Result.Converged set. Only structural problems (nil
// objective, empty parameter vector) are reported as errors, plus context
// cancellation.
//
// Runs are deterministic: the same objective, start point and options produce
// the same trajectory bit for bit.
package optimize
