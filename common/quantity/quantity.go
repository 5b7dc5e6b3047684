// Package quantity implements an arbitrary precision unsigned integer used
// for token amounts whose intermediate sums or products may not fit in 64
// bits.
package quantity

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

var (
	// ErrInvalidQuantity is the error returned on malformed arguments.
	ErrInvalidQuantity = errors.New("quantity: invalid quantity")

	// ErrInsufficientBalance is the error returned when an operation
	// fails due to insufficient balance.
	ErrInsufficientBalance = errors.New("quantity: insufficient balance")

	// ErrDivisionByZero is the error returned when dividing by zero.
	ErrDivisionByZero = errors.New("quantity: division by zero")

	// ErrOverflow is the error returned when a quantity does not fit in a
	// uint64.
	ErrOverflow = errors.New("quantity: does not fit in 64 bits")

	zero big.Int
)

// Quantity is a arbitrary precision unsigned integer that never underflows.
type Quantity struct {
	inner big.Int
}

// Clone copies a Quantity.
func (q *Quantity) Clone() *Quantity {
	tmp := NewQuantity()
	tmp.inner.Set(&q.inner)
	return tmp
}

// FromBigInt converts from a big.Int to a Quantity.
func (q *Quantity) FromBigInt(n *big.Int) error {
	if n == nil || !isValid(n) {
		return ErrInvalidQuantity
	}

	q.inner.Set(n)

	return nil
}

// FromInt64 converts from an int64 to a Quantity.
func (q *Quantity) FromInt64(n int64) error {
	if n < 0 {
		return ErrInvalidQuantity
	}

	q.inner.SetInt64(n)

	return nil
}

// FromUint64 converts from an uint64 to a Quantity.
func (q *Quantity) FromUint64(n uint64) error {
	q.inner.SetUint64(n)

	return nil
}

// ToBigInt converts from a Quantity to a big.Int.
func (q *Quantity) ToBigInt() *big.Int {
	var tmp big.Int
	tmp.Set(&q.inner)

	return &tmp
}

// ToUint64 converts from a Quantity to an uint64, failing with ErrOverflow
// when the value does not fit.
func (q *Quantity) ToUint64() (uint64, error) {
	if !q.inner.IsUint64() {
		return math.MaxUint64, ErrOverflow
	}
	return q.inner.Uint64(), nil
}

// Add adds n to q, returning an error if n < 0 or n == nil.
func (q *Quantity) Add(n *Quantity) error {
	if n == nil || !n.IsValid() {
		return ErrInvalidQuantity
	}

	q.inner.Add(&q.inner, &n.inner)

	return nil
}

// Sub subtracts exactly n from q, returning an error if q < n, n < 0 or
// n == nil.
func (q *Quantity) Sub(n *Quantity) error {
	if n == nil || !n.IsValid() {
		return ErrInvalidQuantity
	}
	if q.inner.Cmp(&n.inner) == -1 {
		return ErrInsufficientBalance
	}

	q.inner.Sub(&q.inner, &n.inner)

	return nil
}

// Mul multiplies q by n, returning an error if n < 0 or n == nil.
func (q *Quantity) Mul(n *Quantity) error {
	if n == nil || !n.IsValid() {
		return ErrInvalidQuantity
	}

	q.inner.Mul(&q.inner, &n.inner)

	return nil
}

// Quo divides q by n, truncating towards zero, returning an error if
// n <= 0 or n == nil.
func (q *Quantity) Quo(n *Quantity) error {
	if n == nil || !n.IsValid() {
		return ErrInvalidQuantity
	}
	if n.IsZero() {
		return ErrDivisionByZero
	}

	q.inner.Quo(&q.inner, &n.inner)

	return nil
}

// Cmp returns -1 if q < n, 0 if q == n, and 1 if q > n.
func (q *Quantity) Cmp(n *Quantity) int {
	return q.inner.Cmp(&n.inner)
}

// IsZero returns true iff the quantity is zero.
func (q *Quantity) IsZero() bool {
	return q.inner.CmpAbs(&zero) == 0
}

// String returns the string representation of q.
func (q Quantity) String() string {
	return q.inner.String()
}

// MarshalText encodes a Quantity into text form.
func (q Quantity) MarshalText() ([]byte, error) {
	return q.inner.MarshalText()
}

// UnmarshalText decodes a text slice into a Quantity.
func (q *Quantity) UnmarshalText(text []byte) error {
	var tmp big.Int
	if err := tmp.UnmarshalText(text); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	return q.FromBigInt(&tmp)
}

// IsValid returns true iff the quantity is in the valid range.
func (q *Quantity) IsValid() bool {
	return isValid(&q.inner)
}

// NewQuantity creates a new Quantity, initialized to zero.
func NewQuantity() (q *Quantity) {
	return &Quantity{}
}

// NewFromUint64 creates a new Quantity from an uint64.
func NewFromUint64(n uint64) *Quantity {
	var q Quantity
	_ = q.FromUint64(n)
	return &q
}

// Sum adds up all values without the possibility of overflow.
func Sum(values ...uint64) *Quantity {
	total := NewQuantity()
	for _, v := range values {
		// Add only fails on negative or nil operands.
		_ = total.Add(NewFromUint64(v))
	}
	return total
}

func isValid(n *big.Int) bool {
	return n.Cmp(&zero) >= 0
}
