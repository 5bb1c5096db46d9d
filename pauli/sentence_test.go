package pauli_test

import (
	"math"
	"testing"

	"github.com/erikrecio/qml/matrix"
	"github.com/erikrecio/qml/pauli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSentence_AccumulatesAndCancels(t *testing.T) {
	t.Parallel()

	s := pauli.NewSentence(
		pauli.Term{Word: pauli.XW(0), Coeff: 0.25},
		pauli.Term{Word: pauli.XW(0), Coeff: 0.75},
		pauli.Term{Word: pauli.ZW(1), Coeff: 2},
		pauli.Term{Word: pauli.ZW(1), Coeff: -2},
	)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, complex128(1), s.Coeff(pauli.XW(0)))
	assert.Equal(t, complex128(0), s.Coeff(pauli.ZW(1)))

	var zero pauli.Sentence
	assert.True(t, zero.IsZero(0))
	assert.Equal(t, "0", zero.String())
	_, ok := zero.Leading()
	assert.False(t, ok)
}

func TestSentence_Commutator(t *testing.T) {
	t.Parallel()

	x, y := pauli.FromWord(pauli.XW(0)), pauli.FromWord(pauli.YW(0))
	got := x.Commutator(y)
	want := pauli.FromWord(pauli.ZW(0)).Scale(2i)
	assert.True(t, got.Equal(want, 0), "[X,Y] = 2iZ, got %v", got)

	// Commuting elements give the exact zero sentence.
	xx := pauli.MustParse("X0 X1")
	yy := pauli.MustParse("Y0 Y1")
	assert.Equal(t, 0, xx.Commutator(yy).Len())
	assert.Equal(t, 0, x.Commutator(x).Len())
}

func TestSentence_CommutatorAntisymmetricAndBilinear(t *testing.T) {
	t.Parallel()

	a := pauli.MustParse("0.5*X0 Z1 + (1+2i)*Y1 - Z0")
	b := pauli.MustParse("Y0 Y1 + 3*X1")
	c := pauli.MustParse("Z0 Z1 - 0.25*X0")

	ab, ba := a.Commutator(b), b.Commutator(a)
	assert.True(t, ab.Add(ba).IsZero(1e-12))

	lhs := a.Commutator(b.Add(c.Scale(2)))
	rhs := ab.Add(a.Commutator(c).Scale(2))
	assert.True(t, lhs.Equal(rhs, 1e-12))
}

func TestSentence_CommutatorMatchesMatrices(t *testing.T) {
	t.Parallel()

	a := pauli.MustParse("0.5*X0 Z1 + Y1")
	b := pauli.MustParse("Y0 Y1 - 2*X1")
	wires := []int{0, 1}

	ma, mb := mustMatrix(t, a, wires...), mustMatrix(t, b, wires...)
	ab, err := matrix.Mul(ma, mb)
	require.NoError(t, err)
	ba, err := matrix.Mul(mb, ma)
	require.NoError(t, err)
	want, err := matrix.Sub(ab, ba)
	require.NoError(t, err)

	requireClose(t, want, mustMatrix(t, a.Commutator(b), wires...), 1e-12)
	requireClose(t, ab, mustMatrix(t, a.Mul(b), wires...), 1e-12)
}

func TestSentence_Simplify(t *testing.T) {
	t.Parallel()

	s := pauli.NewSentence(
		pauli.Term{Word: pauli.XW(0), Coeff: 1},
		pauli.Term{Word: pauli.YW(0), Coeff: 1e-13},
	)
	got := s.Simplify(pauli.DefaultTolerance)
	assert.Equal(t, 1, got.Len())
	assert.Equal(t, 2, s.Len(), "receiver is not mutated")
	assert.False(t, s.IsZero(pauli.DefaultTolerance))
	assert.True(t, s.Sub(pauli.FromWord(pauli.XW(0))).IsZero(pauli.DefaultTolerance))
}

func TestSentence_KeyCanonical(t *testing.T) {
	t.Parallel()

	a := pauli.NewSentence(
		pauli.Term{Word: pauli.XW(0), Coeff: 0.5},
		pauli.Term{Word: pauli.ZW(1), Coeff: 1},
		pauli.Term{Word: pauli.XW(0), Coeff: 0.5},
	)
	b := pauli.MustParse("Z1 + X0")
	assert.Equal(t, b.Key(), a.Key())

	negZero := pauli.NewSentence(pauli.Term{Word: pauli.XW(0), Coeff: complex(1, math.Copysign(0, -1))})
	assert.Equal(t, pauli.FromWord(pauli.XW(0)).Key(), negZero.Key())

	// Noise below tolerance does not change the key.
	noisy := b.Add(pauli.NewSentence(pauli.Term{Word: pauli.YW(3), Coeff: 1e-14}))
	assert.Equal(t, b.Key(), noisy.Key())

	assert.NotEqual(t, b.Key(), b.Scale(2).Key())
	assert.Equal(t, "X0:1,0", pauli.FromWord(pauli.XW(0)).Key())
}

func TestSentence_NormInnerWires(t *testing.T) {
	t.Parallel()

	s := pauli.MustParse("X0 + Y0 + Z3")
	assert.InDelta(t, math.Sqrt(3), s.Norm(), 1e-15)
	assert.Equal(t, []int{0, 3}, s.Wires())
	assert.Equal(t, complex128(3), s.Inner(s))
	assert.Equal(t, complex128(0), s.Inner(pauli.MustParse("X1")))

	lead, ok := s.Leading()
	require.True(t, ok)
	assert.Equal(t, "X0", lead.Word.Key())
}

func TestSentence_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "X0 + 0.5*Z0 Z1", pauli.MustParse("0.5*Z0 Z1 + X0").String())
	assert.Equal(t, "(0+2i)*Z0", pauli.MustParse("2i*Z0").String())
}

func TestSentence_MatrixIsHermitianForRealCoefficients(t *testing.T) {
	t.Parallel()

	s := pauli.MustParse("0.3*X0 X1 + 0.7*Y0 Y1 - 1.1*Z0 Z1 + 0.2*Y2")
	m := mustMatrix(t, s, 0, 1, 2)
	ok, err := matrix.IsHermitian(m)
	require.NoError(t, err)
	assert.True(t, ok)

	tr, err := matrix.Trace(m)
	require.NoError(t, err)
	assert.InDelta(t, 0, real(tr), 1e-15)
}

func TestSentence_MatrixUnknownWire(t *testing.T) {
	t.Parallel()

	_, err := pauli.MustParse("X0 + Z5").Matrix([]int{0, 1})
	assert.ErrorIs(t, err, pauli.ErrUnknownWire)
}
