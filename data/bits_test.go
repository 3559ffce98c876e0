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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gsw-project/gofhe/internal"
)

func TestBitMatrix(t *testing.T) {
	m, err := NewRandomBitMatrix(6, 4)
	if err != nil {
		t.Fatalf("Error during random generation: %v", err)
	}

	assert.Equal(t, 6, m.Rows())
	assert.Equal(t, 4, m.Cols())
	assert.True(t, m.CheckDims(6, 4))
	for _, row := range m {
		for _, b := range row {
			assert.True(t, b == 0 || b == 1, "entries should be bits")
		}
	}
}

func TestBitMatrix_Deterministic(t *testing.T) {
	var key [32]byte
	key[0] = 42

	m1 := NewRandomDetBitMatrix(8, 8, &key)
	m2 := NewRandomDetBitMatrix(8, 8, &key)

	assert.True(t, m1.Equal(m2), "same key should give the same matrix")
}

func TestBitMatrix_TokenRoundTrip(t *testing.T) {
	m := BitMatrix{
		BitVector{1, 0, 1},
		BitVector{0, 0, 1},
		BitVector{1, 1, 0},
	}

	token := m.String()
	assert.Equal(t, "101001110", token)

	parsed, err := ParseBitMatrix(token)
	assert.NoError(t, err)
	assert.True(t, m.Equal(parsed))
}

func TestParseBitMatrix_NonSquare(t *testing.T) {
	_, err := ParseBitMatrix("10110")
	assert.Error(t, err)
	assert.ErrorIs(t, err, internal.ErrDomain)
}

func TestParseBitMatrix_BadCharacter(t *testing.T) {
	_, err := ParseBitMatrix("1011x0110")
	assert.Error(t, err)
	assert.ErrorIs(t, err, internal.ErrFormat)
}

func TestBitVector_ToVector(t *testing.T) {
	v := BitVector{1, 0, 1}.ToVector()
	assert.Equal(t, Vector{big.NewInt(1), big.NewInt(0), big.NewInt(1)}, v)
}
