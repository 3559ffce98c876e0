/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package data

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/gsw-project/gofhe/sample"
)

// Matrix wraps a slice of Vector elements. It represents a row-major
// order matrix.
//
// The j-th element from the i-th vector of the matrix can be obtained
// as m[i][j].
type Matrix []Vector

// NewMatrix accepts a slice of Vector elements and
// returns a new Matrix instance.
// It returns error if not all the vectors have the same number of elements.
func NewMatrix(vectors []Vector) (Matrix, error) {
	l := -1
	newVectors := make([]Vector, len(vectors))

	if len(vectors) > 0 {
		l = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != l {
			return nil, fmt.Errorf("all vectors should be of the same length")
		}
		newVectors[i] = NewVector(v)
	}

	return Matrix(newVectors), nil
}

// NewRandomMatrix returns a new Matrix instance
// with random elements sampled by the provided sample.Sampler.
// Returns an error in case of sampling failure.
func NewRandomMatrix(rows, cols int, sampler sample.Sampler) (Matrix, error) {
	mat := make([]Vector, rows)

	for i := 0; i < rows; i++ {
		vec, err := NewRandomVector(cols, sampler)
		if err != nil {
			return nil, err
		}

		mat[i] = vec
	}

	return NewMatrix(mat)
}

// Rows returns the number of rows of matrix m.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns of matrix m.
func (m Matrix) Cols() int {
	if len(m) != 0 {
		return len(m[0])
	}

	return 0
}

// DimsMatch returns a bool indicating whether matrices
// m and other have the same dimensions.
func (m Matrix) DimsMatch(other Matrix) bool {
	return m.Rows() == other.Rows() && m.Cols() == other.Cols()
}

// GetCol returns i-th column of matrix m as a vector.
// It returns error if i >= the number of m's columns.
func (m Matrix) GetCol(i int) (Vector, error) {
	if i >= m.Cols() {
		return nil, fmt.Errorf("column index exceeds matrix dimensions")
	}

	column := make([]*big.Int, m.Rows())
	for j := 0; j < m.Rows(); j++ {
		column[j] = m[j][i]
	}

	return NewVector(column), nil
}

// CheckDims checks whether dimensions of matrix m match
// the provided rows and cols arguments.
func (m Matrix) CheckDims(rows, cols int) bool {
	return m.Rows() == rows && m.Cols() == cols
}

// Mod applies the element-wise modulo operation on matrix m.
// The result is returned in a new Matrix.
func (m Matrix) Mod(modulo *big.Int) Matrix {
	vectors := make([]Vector, m.Rows())

	for i, v := range m {
		vectors[i] = v.Mod(modulo)
	}

	matrix, _ := NewMatrix(vectors)

	return matrix
}

// Apply applies an element-wise function f to matrix m.
// The result is returned in a new Matrix.
func (m Matrix) Apply(f func(*big.Int) *big.Int) Matrix {
	res := make(Matrix, len(m))

	for i, vi := range m {
		res[i] = make(Vector, len(vi))
		for j, x := range vi {
			res[i][j] = f(x)
		}
	}

	return res
}

// Add adds matrices m and other.
// The result is returned in a new Matrix.
// Error is returned if m and other have different dimensions.
func (m Matrix) Add(other Matrix) (Matrix, error) {
	if !m.DimsMatch(other) {
		return nil, fmt.Errorf("matrices mismatch in dimensions")
	}

	vectors := make([]Vector, m.Rows())

	for i, v := range m {
		vectors[i] = v.Add(other[i])
	}

	matrix, err := NewMatrix(vectors)
	if err != nil {
		return nil, err
	}
	return matrix, nil
}

// Mul multiplies matrices m and other.
// The result is returned in a new Matrix.
// Error is returned if the number of columns of m differs from the
// number of rows of other.
func (m Matrix) Mul(other Matrix) (Matrix, error) {
	if m.Cols() != other.Rows() {
		return nil, fmt.Errorf("cannot multiply matrices")
	}

	prod := make([]Vector, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		prod[i] = make([]*big.Int, other.Cols())
		for j := 0; j < other.Cols(); j++ {
			otherCol, _ := other.GetCol(j)
			prod[i][j], _ = m[i].Dot(otherCol)
		}
	}

	return NewMatrix(prod)
}

// MulScalar multiplies elements of matrix m by a scalar x.
// The result is returned in a new Matrix.
func (m Matrix) MulScalar(x *big.Int) Matrix {
	return m.Apply(func(i *big.Int) *big.Int {
		return new(big.Int).Mul(i, x)
	})
}

// MulVec multiplies matrix m and vector v.
// It returns the resulting vector.
// Error is returned if the number of columns of m differs from the number
// of elements of v.
func (m Matrix) MulVec(v Vector) (Vector, error) {
	if m.Cols() != len(v) {
		return nil, fmt.Errorf("cannot multiply matrix by a vector")
	}

	res := make(Vector, m.Rows())
	for i, row := range m {
		res[i], _ = row.Dot(v)
	}

	return res, nil
}

// String produces a string representation of a matrix:
// rows joined by single spaces, so the whole matrix serializes
// as one row-major line of decimal entries.
func (m Matrix) String() string {
	rows := make([]string, len(m))
	for i, v := range m {
		rows[i] = v.String()
	}
	return strings.Join(rows, " ")
}
