/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for the transition tables of generated scanners, where every
row is a state, every column is an input symbol and most entries are empty.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept in row-major order.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 256, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 97, 4711)              // set a value
//     v := M.Value(2, 97)             // returns 4711
//     cnt := M.ValueCount()           // returns 1 (one position set)
//     v = M.Value(3, 97)              // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value. Space for
// null-values is not re-claimed.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    int32
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of values in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		return m.values[k].value
	}
	return m.nullval
}

// Set a value in the matrix at position (i,j). Set panics if (i,j) is outside
// of the matrix dimensions.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix.Set(%d,%d) out of bounds %dx%d", i, j, m.rowcnt, m.colcnt))
	}
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		m.values[k].value = value
		return m
	}
	tnew := triplet{row: i, col: j, value: value}
	// the following 3 lines have to work for k being the right edge of values or not
	m.values = append(m.values, tnew)  // make room
	copy(m.values[k+1:], m.values[k:]) // copy remainder values one index to right
	m.values[k] = tnew                 // if not append-case: insert new triplet
	return m
}

// Row calls f for every non-null entry of row i, in ascending column order.
func (m *IntMatrix) Row(i int, f func(j int, value int32)) {
	for k := m.search(i, 0); k < len(m.values) && m.values[k].row == i; k++ {
		if m.values[k].value != m.nullval {
			f(m.values[k].col, m.values[k].value)
		}
	}
}

// search finds the position of (i,j) or of the first triplet stored right of it.
func (m *IntMatrix) search(i, j int) int {
	return sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=%d", t.row, t.col, t.value)
}
