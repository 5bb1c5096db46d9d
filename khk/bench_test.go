package khk_test

import (
	"fmt"
	"testing"

	"github.com/erikrecio/qml/cartan"
	"github.com/erikrecio/qml/khk"
	"github.com/erikrecio/qml/lie"
	"github.com/erikrecio/qml/models"
)

var sinkF float64

// heisenbergProblem is the KhK problem of the n-wire Heisenberg chain.
func heisenbergProblem(b *testing.B, n int) *khk.Problem {
	b.Helper()
	gens, err := models.Heisenberg(n)
	if err != nil {
		b.Fatal(err)
	}
	g, err := lie.Closure(gens)
	if err != nil {
		b.Fatal(err)
	}
	k, m := cartan.Decompose(g, cartan.EvenOdd)
	_, h, err := cartan.Subalgebra(m, 0)
	if err != nil {
		b.Fatal(err)
	}
	p, err := khk.New(k, cartan.GenericElement(h), models.Hamiltonian(gens), models.Wires(n))
	if err != nil {
		b.Fatal(err)
	}

	return p
}

func BenchmarkValueAndGrad(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{3, 4} {
		b.Run(fmt.Sprintf("heisenberg%d", n), func(b *testing.B) {
			p := heisenbergProblem(b, n)
			theta := make([]float64, p.Len())
			for i := range theta {
				theta[i] = 1
			}
			grad := make([]float64, p.Len())
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f, err := p.ValueAndGrad(theta, grad)
				if err != nil {
					b.Fatal(err)
				}
				sinkF = f
			}
		})
	}
}
