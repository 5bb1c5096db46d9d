// Package qml computes Cartan decompositions of Lie algebras generated by
// Pauli operators and uses them to fast-forward Hamiltonian simulation.
//
// The pipeline, from generators to a fast-forwarded propagator:
//
//	gens ──lie.Closure──▶ g ──cartan.Decompose──▶ k ⊕ m
//	m ──cartan.Subalgebra──▶ h ⊂ m
//	k, v ∈ h, H ∈ m ──khk.Solve──▶ H = K·h₀·K†
//	exp(−itH) = K·exp(−ith₀)·K†
//
// Under the hood, everything is organised in subpackages:
//
//	matrix/     dense complex matrices, LU, matrix exponential
//	pauli/      Pauli words and sentences, parsing, dense materialisation
//	lie/        linear spans of sentences and the dynamical Lie algebra
//	models/     generator sets of Heisenberg and transverse-field Ising chains
//	cartan/     involutions, the k ⊕ m split and the Cartan subalgebra
//	optimize/   gradient descent and L-BFGS over a fixed epoch budget
//	khk/        the variational KhK factorisation driver
//	evolve/     exact and Suzuki–Trotter evolution for comparison
//	sweep/      parallel restarts with Prometheus metrics
//
// Quick example (4-wire Heisenberg chain):
//
//	gens, _ := models.Heisenberg(4)
//	g, _ := lie.Closure(gens)                   // |g| = 60
//	k, m := cartan.Decompose(g, cartan.EvenOdd) // |k| = 24, |m| = 36
//	_, h, _ := cartan.Subalgebra(m, 0)
//	p, _ := khk.New(k, cartan.GenericElement(h), models.Hamiltonian(gens), models.Wires(4))
//	d, _ := khk.Solve(p, nil)
//	u, _ := d.Evolve(1.0)
//
// The kak command (cmd/kak) runs the same pipeline from a YAML configuration.
//
//	go install github.com/erikrecio/qml/cmd/kak@latest
package qml
