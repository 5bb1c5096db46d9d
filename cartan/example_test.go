package cartan_test

import (
	"fmt"

	"github.com/erikrecio/qml/cartan"
	"github.com/erikrecio/qml/lie"
	"github.com/erikrecio/qml/models"
)

// ExampleDecompose splits the Heisenberg algebra with the even-odd involution.
func ExampleDecompose() {
	gens, _ := models.Heisenberg(4)
	g, _ := lie.Closure(gens)
	k, m := cartan.Decompose(g, cartan.EvenOdd)
	fmt.Println(len(g), len(k), len(m))
	fmt.Println(cartan.CheckRelations(k, m, 1e-8))
	// Output:
	// 60 24 36
	// <nil>
}

// ExampleSubalgebra grows a maximal abelian subalgebra from a seed.
func ExampleSubalgebra() {
	gens, _ := models.TransverseIsing(2)
	g, _ := lie.Closure(gens)
	_, m := cartan.Decompose(g, cartan.EvenOdd)
	_, h, _ := cartan.Subalgebra(m, 0)
	for _, s := range h {
		fmt.Println(s)
	}
	// Output:
	// Z0 Z1
	// Y0 Y1
}
