// SPDX-License-Identifier: MIT

// Package khk finds the variational KhK factorisation H = K·h₀·K† of a
// Hamiltonian H in the horizontal space of a Cartan decomposition.
//
// A Problem holds the vertical basis k₀…k_{n−1}, a generic element v of the
// Cartan subalgebra h and the target H, all materialised as dense 2ᵂ×2ᵂ
// matrices over a fixed wire order. The rotation product is
//
//	K(θ) = U_{n−1}···U_1·U_0,   U_j = exp(−i·θ_j·k_j),
//
// so rotation 0 acts first. The loss is
//
//	f(θ) = Re tr((K v K†)† H),
//
// and at any critical point h₀ = K† H K commutes with v, which places it in h.
// Single-word generators with a real coefficient c use the closed form
// exp(−iθcP) = cos(cθ)·I − i·sin(cθ)·P; everything else goes through
// matrix.Expm.
//
// The gradient is analytic:
//
//	∂f/∂θ_j = 2·Im tr(L_j·k_j·R_j·M),  L_j = U_{n−1}···U_{j+1},  R_j = U_j···U_0,
//
// with M = v·K†·H, computed from prefix and suffix products in O(n) matrix
// products per evaluation.
//
// Solve drives optimize.Minimize over f from θ₀ (all ones by default) and
// returns a Decomposition with the selected θ, K, h₀ and the optimiser
// trajectory. Whether h₀ really lies in h is a caller-side check
// (Decomposition.InSpan); the driver itself never fails on numerics.
package khk
