package quantity

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func fromInt(n int) *Quantity {
	q := NewQuantity()
	q.inner.SetInt64(int64(n))
	return q
}

func (q *Quantity) eqInt(n int) bool {
	nq := fromInt(n)
	return q.Cmp(nq) == 0
}

func TestQuantityCtors(t *testing.T) {
	require := require.New(t)

	q := NewQuantity()
	require.NotNil(q, "NewQuantity")
	require.True(q.eqInt(0), "New value")
	require.True(q.IsZero(), "New value is zero")

	q = fromInt(23)
	nq := q.Clone()
	_ = q.FromBigInt(big.NewInt(666))
	require.True(nq.eqInt(23), "Clone value")
}

func TestFromBigInt(t *testing.T) {
	require := require.New(t)

	var q Quantity
	err := q.FromBigInt(nil)
	require.Equal(ErrInvalidQuantity, err, "FromBigInt(nil)")

	err = q.FromBigInt(big.NewInt(-1))
	require.Equal(ErrInvalidQuantity, err, "FromBigInt(-1)")

	err = q.FromBigInt(big.NewInt(23))
	require.NoError(err, "FromBigInt(23)")
	require.True(q.eqInt(23), "FromBigInt(23) value")
}

func TestFromInt64(t *testing.T) {
	require := require.New(t)

	var q Quantity
	err := q.FromInt64(-1)
	require.Equal(ErrInvalidQuantity, err, "FromInt64(-1)")

	err = q.FromInt64(23)
	require.NoError(err, "FromInt64(23)")
	require.True(q.eqInt(23), "FromInt64(23) value")
}

func TestToUint64(t *testing.T) {
	require := require.New(t)

	q := NewFromUint64(math.MaxUint64)
	v, err := q.ToUint64()
	require.NoError(err, "ToUint64(max)")
	require.EqualValues(uint64(math.MaxUint64), v)

	require.NoError(q.Add(NewFromUint64(1)))
	_, err = q.ToUint64()
	require.Equal(ErrOverflow, err, "ToUint64(max+1)")
}

func TestQuantityAdd(t *testing.T) {
	require := require.New(t)

	q := fromInt(100)

	err := q.Add(nil)
	require.Equal(ErrInvalidQuantity, err, "Add(nil)")

	err = q.Add(fromInt(-1))
	require.Equal(ErrInvalidQuantity, err, "Add(-1)")

	err = q.Add(fromInt(200))
	require.NoError(err, "Add")
	require.True(q.eqInt(300), "Add(200) value")
}

func TestQuantitySub(t *testing.T) {
	require := require.New(t)

	q := fromInt(100)

	err := q.Sub(nil)
	require.Equal(ErrInvalidQuantity, err, "Sub(nil)")

	err = q.Sub(fromInt(-1))
	require.Equal(ErrInvalidQuantity, err, "Sub(-1)")

	err = q.Sub(fromInt(200))
	require.Equal(ErrInsufficientBalance, err, "Sub(200)")
	require.True(q.eqInt(100), "failed Sub leaves the value untouched")

	err = q.Sub(fromInt(23))
	require.NoError(err, "Sub")
	require.True(q.eqInt(77), "Sub(23) value")
}

func TestQuantityMulQuo(t *testing.T) {
	require := require.New(t)

	q := fromInt(100)

	require.Equal(ErrInvalidQuantity, q.Mul(nil), "Mul(nil)")
	require.NoError(q.Mul(fromInt(23)), "Mul")
	require.True(q.eqInt(2300), "Mul(23) value")

	require.Equal(ErrDivisionByZero, q.Quo(fromInt(0)), "Quo(0)")
	require.NoError(q.Quo(fromInt(7)), "Quo")
	require.True(q.eqInt(328), "Quo(7) truncates")
}

func TestSum(t *testing.T) {
	require := require.New(t)

	total := Sum(math.MaxUint64, math.MaxUint64, 2)
	expected := new(big.Int).SetUint64(math.MaxUint64)
	expected.Mul(expected, big.NewInt(2))
	expected.Add(expected, big.NewInt(2))
	require.Zero(total.ToBigInt().Cmp(expected), "Sum does not overflow")
	require.Equal(expected.String(), total.String())
}

func TestQuantityTextRoundTrip(t *testing.T) {
	require := require.New(t)

	q := Sum(math.MaxUint64, 1)
	b, err := q.MarshalText()
	require.NoError(err, "MarshalText")

	var nq Quantity
	require.NoError(nq.UnmarshalText(b), "UnmarshalText")
	require.Zero(q.Cmp(&nq), "Round trip matches")

	require.Error(nq.UnmarshalText([]byte("-5")), "negative values are rejected")
}
