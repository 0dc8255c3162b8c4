// Package matrix implements a dense row-major matrix over GF(2^8), used by
// rscore to build and invert the Reed-Solomon distribution matrix.
package matrix

import (
	"fmt"

	"github.com/pkg/errors"

	"lukechampine.com/us/internal/galois"
)

// ErrOutOfRange is returned when a row or column index is out of bounds.
var ErrOutOfRange = errors.New("matrix: index out of range")

// ErrShapeMismatch is returned when an operation's operands have
// incompatible shapes.
var ErrShapeMismatch = errors.New("matrix: shape mismatch")

// ErrSingular is returned by Invert when no non-zero pivot can be found for
// some column. Unreachable for the square sub-matrices rscore builds from a
// valid Reed-Solomon distribution matrix; if it occurs there it indicates a
// library bug.
var ErrSingular = errors.New("matrix: singular, cannot invert")

// Matrix is a dense rows x columns matrix of GF(2^8) elements stored
// row-major. The zero value is not valid; use New or Identity.
type Matrix struct {
	rows, cols int
	data       []uint8
}

// New allocates a zero-filled rows x columns matrix.
func New(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]uint8, rows*cols)}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) checkIndex(r, c int) error {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return errors.Wrapf(ErrOutOfRange, "row=%d col=%d shape=(%d,%d)", r, c, m.rows, m.cols)
	}
	return nil
}

func (m *Matrix) checkRow(r int) error {
	if r < 0 || r >= m.rows {
		return errors.Wrapf(ErrOutOfRange, "row=%d shape=(%d,%d)", r, m.rows, m.cols)
	}
	return nil
}

// at and setAt are the unchecked internal accessors used once an index has
// already been validated (or is an invariant of construction, such as loop
// bounds derived from m.rows/m.cols); they keep the O(n^3) setup-time loops
// in Times and Augment free of redundant bounds-checking overhead.
func (m *Matrix) at(r, c int) uint8       { return m.data[r*m.cols+c] }
func (m *Matrix) setAt(r, c int, v uint8) { m.data[r*m.cols+c] = v }

// Get returns the element at (r,c).
func (m *Matrix) Get(r, c int) (uint8, error) {
	if err := m.checkIndex(r, c); err != nil {
		return 0, err
	}
	return m.at(r, c), nil
}

// Set stores value at (r,c).
func (m *Matrix) Set(r, c int, value uint8) error {
	if err := m.checkIndex(r, c); err != nil {
		return err
	}
	m.setAt(r, c, value)
	return nil
}

// Row returns the backing slice for row r, valid as long as m is not
// mutated. Package ecc uses this to build coefficient lists for the coding
// kernel without copying.
func (m *Matrix) Row(r int) ([]uint8, error) {
	if err := m.checkRow(r); err != nil {
		return nil, err
	}
	return m.data[r*m.cols : (r+1)*m.cols], nil
}

// Equal reports whether m and other have the same shape and contents.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Times returns m * other, the standard matrix product over GF(2^8)
// (addition = XOR, multiplication = field multiply).
func (m *Matrix) Times(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, errors.Wrapf(ErrShapeMismatch, "left cols=%d != right rows=%d", m.cols, other.rows)
	}
	result := New(m.rows, other.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < other.cols; c++ {
			var value uint8
			for i := 0; i < m.cols; i++ {
				value ^= galois.Mul(m.at(r, i), other.at(i, c))
			}
			result.setAt(r, c, value)
		}
	}
	return result, nil
}

// Augment returns the horizontal concatenation of m and other, which must
// have the same number of rows.
func (m *Matrix) Augment(other *Matrix) (*Matrix, error) {
	if m.rows != other.rows {
		return nil, errors.Wrapf(ErrShapeMismatch, "left rows=%d != right rows=%d", m.rows, other.rows)
	}
	result := New(m.rows, m.cols+other.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			result.setAt(r, c, m.at(r, c))
		}
		for c := 0; c < other.cols; c++ {
			result.setAt(r, m.cols+c, other.at(r, c))
		}
	}
	return result, nil
}

// SubMatrix returns the half-open row/column slice [rmin,rmax) x
// [cmin,cmax), allocated fresh.
func (m *Matrix) SubMatrix(rmin, cmin, rmax, cmax int) (*Matrix, error) {
	if rmin < 0 || cmin < 0 || rmax > m.rows || cmax > m.cols || rmin >= rmax || cmin >= cmax {
		return nil, errors.Wrapf(ErrOutOfRange, "submatrix(%d,%d,%d,%d) of shape (%d,%d)", rmin, cmin, rmax, cmax, m.rows, m.cols)
	}
	result := New(rmax-rmin, cmax-cmin)
	for r := rmin; r < rmax; r++ {
		for c := cmin; c < cmax; c++ {
			result.setAt(r-rmin, c-cmin, m.at(r, c))
		}
	}
	return result, nil
}

// SwapRows exchanges rows r1 and r2 in place.
func (m *Matrix) SwapRows(r1, r2 int) error {
	if err := m.checkRow(r1); err != nil {
		return err
	}
	if err := m.checkRow(r2); err != nil {
		return err
	}
	row1, _ := m.Row(r1)
	row2, _ := m.Row(r2)
	for i := range row1 {
		row1[i], row2[i] = row2[i], row1[i]
	}
	return nil
}

// MultiplyRow scales row r by scalar in place.
func (m *Matrix) MultiplyRow(r int, scalar uint8) error {
	if err := m.checkRow(r); err != nil {
		return err
	}
	row, _ := m.Row(r)
	for i, v := range row {
		row[i] = galois.Mul(v, scalar)
	}
	return nil
}

// RowLinearCombination sets row dst <- dst XOR (row src * scale),
// elementwise.
func (m *Matrix) RowLinearCombination(dst, src int, scale uint8) error {
	if err := m.checkRow(dst); err != nil {
		return err
	}
	if err := m.checkRow(src); err != nil {
		return err
	}
	dstRow, _ := m.Row(dst)
	srcRow, _ := m.Row(src)
	for i := range dstRow {
		dstRow[i] ^= galois.Mul(srcRow[i], scale)
	}
	return nil
}

// Invert returns the inverse of m, which must be square. It runs
// Gauss-Jordan elimination on [m | I]; the tie-break for pivot selection
// takes the first non-zero row below the pivot, not the largest, since
// there is no numeric-stability concern in an exact field.
func (m *Matrix) Invert() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, errors.Wrapf(ErrShapeMismatch, "invert of non-square (%d,%d)", m.rows, m.cols)
	}
	n := m.rows
	work, err := m.Augment(Identity(n))
	if err != nil {
		return nil, err
	}
	if err := work.gaussJordan(); err != nil {
		return nil, err
	}
	return work.SubMatrix(0, n, n, 2*n)
}

func (m *Matrix) gaussJordan() error {
	n := m.rows
	for pivot := 0; pivot < n; pivot++ {
		if m.at(pivot, pivot) == 0 {
			for below := pivot + 1; below < n; below++ {
				if m.at(below, pivot) != 0 {
					if err := m.SwapRows(pivot, below); err != nil {
						return err
					}
					break
				}
			}
		}
		if m.at(pivot, pivot) == 0 {
			return errors.Wrapf(ErrSingular, "no non-zero pivot at column %d", pivot)
		}
		if m.at(pivot, pivot) != 1 {
			scale, err := galois.Div(1, m.at(pivot, pivot))
			if err != nil {
				return err
			}
			if err := m.MultiplyRow(pivot, scale); err != nil {
				return err
			}
		}
		for d := 0; d < n; d++ {
			if d == pivot {
				continue
			}
			if m.at(d, pivot) != 0 {
				if err := m.RowLinearCombination(d, pivot, m.at(d, pivot)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// String renders m as a bracketed hex grid, mirroring the original C++
// operator<< for debugging.
func (m *Matrix) String() string {
	s := "{\n"
	for r := 0; r < m.rows; r++ {
		s += "\t"
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				s += ", "
			}
			s += fmt.Sprintf("%x", m.at(r, c))
		}
		s += "\n"
	}
	return s + "}\n"
}
