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

// Vector wraps a slice of *big.Int elements.
type Vector []*big.Int

// NewVector returns a new Vector instance.
func NewVector(coordinates []*big.Int) Vector {
	return Vector(coordinates)
}

// NewRandomVector returns a new Vector instance
// with random elements sampled by the provided sample.Sampler.
// Returns an error in case of sampling failure.
func NewRandomVector(len int, sampler sample.Sampler) (Vector, error) {
	vec := make([]*big.Int, len)
	var err error

	for i := 0; i < len; i++ {
		vec[i], err = sampler.Sample()
		if err != nil {
			return nil, err
		}
	}

	return NewVector(vec), nil
}

// Mod performs modulo operation on vector's elements.
// The result is returned in a new Vector.
func (v Vector) Mod(modulo *big.Int) Vector {
	newCoords := make([]*big.Int, len(v))

	for i, c := range v {
		newCoords[i] = new(big.Int).Mod(c, modulo)
	}

	return NewVector(newCoords)
}

// CheckBound checks whether the absolute values of all vector elements
// are strictly smaller than the provided bound.
// It returns error if at least one element's absolute value is >= bound.
func (v Vector) CheckBound(bound *big.Int) error {
	abs := new(big.Int)
	for _, c := range v {
		abs.Abs(c)
		if abs.Cmp(bound) > -1 {
			return fmt.Errorf("all coordinates of a vector should be smaller than bound")
		}
	}

	return nil
}

// Add adds vectors v and other.
// The result is returned in a new Vector.
func (v Vector) Add(other Vector) Vector {
	sum := make([]*big.Int, len(v))

	for i, c := range v {
		sum[i] = new(big.Int).Add(c, other[i])
	}

	return NewVector(sum)
}

// Dot calculates the dot product (inner product) of vectors v and other.
// It returns an error if vectors have different numbers of elements.
func (v Vector) Dot(other Vector) (*big.Int, error) {
	prod := big.NewInt(0)

	if len(v) != len(other) {
		return nil, fmt.Errorf("vectors should be of same length")
	}

	for i, c := range v {
		prod = prod.Add(prod, new(big.Int).Mul(c, other[i]))
	}

	return prod, nil
}

// String produces a string representation of a vector:
// decimal entries separated by single spaces.
func (v Vector) String() string {
	entries := make([]string, len(v))
	for i, vi := range v {
		entries[i] = vi.String()
	}
	return strings.Join(entries, " ")
}
