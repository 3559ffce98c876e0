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
	"crypto/rand"
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/salsa20"

	"github.com/gsw-project/gofhe/internal"
)

// BitVector wraps a slice of 0/1 values. It is the wire
// representation of cleartext bits and a single row of a
// ciphertext matrix.
type BitVector []uint8

// BitMatrix wraps a slice of BitVector elements in row-major order.
// A GSW ciphertext is a square BitMatrix.
type BitMatrix []BitVector

// NewBitMatrix returns a zero-valued BitMatrix with the given
// dimensions.
func NewBitMatrix(rows, cols int) BitMatrix {
	mat := make(BitMatrix, rows)
	for i := range mat {
		mat[i] = make(BitVector, cols)
	}

	return mat
}

// NewRandomBitMatrix returns a BitMatrix with uniformly random
// entries. Randomness is read from crypto/rand in one batch, one
// byte per bit.
// It returns an error if the entropy source fails.
func NewRandomBitMatrix(rows, cols int) (BitMatrix, error) {
	buf := make([]byte, rows*cols)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(internal.ErrEntropy, err.Error())
	}

	mat := make(BitMatrix, rows)
	for i := range mat {
		mat[i] = make(BitVector, cols)
		for j := range mat[i] {
			mat[i][j] = buf[i*cols+j] & 1
		}
	}

	return mat, nil
}

// NewRandomDetBitMatrix returns a BitMatrix with pseudo-random
// entries determined by key. It is the deterministic counterpart of
// NewRandomBitMatrix used when reproducible randomness is needed.
func NewRandomDetBitMatrix(rows, cols int, key *[32]byte) BitMatrix {
	buf := make([]byte, rows*cols)
	nonce := make([]byte, 8)
	salsa20.XORKeyStream(buf, buf, nonce, key)

	mat := make(BitMatrix, rows)
	for i := range mat {
		mat[i] = make(BitVector, cols)
		for j := range mat[i] {
			mat[i][j] = buf[i*cols+j] & 1
		}
	}

	return mat
}

// Rows returns the number of rows of matrix c.
func (c BitMatrix) Rows() int {
	return len(c)
}

// Cols returns the number of columns of matrix c.
func (c BitMatrix) Cols() int {
	if len(c) != 0 {
		return len(c[0])
	}

	return 0
}

// CheckDims checks whether dimensions of matrix c match
// the provided rows and cols arguments.
func (c BitMatrix) CheckDims(rows, cols int) bool {
	return c.Rows() == rows && c.Cols() == cols
}

// Equal checks whether matrices c and other hold identical bits.
func (c BitMatrix) Equal(other BitMatrix) bool {
	if c.Rows() != other.Rows() || c.Cols() != other.Cols() {
		return false
	}
	for i, row := range c {
		for j, b := range row {
			if b != other[i][j] {
				return false
			}
		}
	}

	return true
}

// ToVector converts a row of bits into a Vector of *big.Int values.
func (v BitVector) ToVector() Vector {
	res := make(Vector, len(v))
	for i, b := range v {
		res[i] = big.NewInt(int64(b))
	}

	return res
}

// String serializes the matrix as a single row-major string of
// '0' and '1' characters, the ciphertext stream token format.
func (c BitMatrix) String() string {
	var sb strings.Builder
	sb.Grow(c.Rows() * c.Cols())
	for _, row := range c {
		for _, b := range row {
			sb.WriteByte('0' + b)
		}
	}

	return sb.String()
}

// ParseBitMatrix parses a row-major '0'/'1' token into a square
// BitMatrix. A character other than '0' or '1' is a format error;
// a token whose length is not a perfect square is a domain error.
func ParseBitMatrix(token string) (BitMatrix, error) {
	dim := int(math.Sqrt(float64(len(token))))
	if dim*dim != len(token) {
		return nil, errors.Wrapf(internal.ErrDomain, "ciphertext of %d bits is not square", len(token))
	}

	mat := NewBitMatrix(dim, dim)
	for k := 0; k < len(token); k++ {
		ch := token[k]
		if ch != '0' && ch != '1' {
			return nil, errors.Wrapf(internal.ErrFormat, "ciphertext character %q", ch)
		}
		mat[k/dim][k%dim] = ch - '0'
	}

	return mat, nil
}
