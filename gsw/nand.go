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

package gsw

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/gsw-project/gofhe/data"
	"github.com/gsw-project/gofhe/internal"
)

// NAND homomorphically NANDs two ciphertexts: the flattened form of
// I - C1*C2 (mod q). The product of two flattened ciphertexts is a
// bit-by-bit sum, so the accumulator stays a small machine integer
// until the final reduction. Noise grows by a factor of about N+1
// per NAND; the parameter setup sizes q for the requested depth.
func (g *GSW) NAND(c1, c2 data.BitMatrix) (data.BitMatrix, error) {
	dim, q := g.Params.Dim, g.Params.Q

	if !c1.CheckDims(dim, dim) {
		return nil, errors.Wrapf(internal.ErrDomain,
			"first ciphertext is %dx%d, want %dx%d", c1.Rows(), c1.Cols(), dim, dim)
	}
	if !c2.CheckDims(dim, dim) {
		return nil, errors.Wrapf(internal.ErrDomain,
			"second ciphertext is %dx%d, want %dx%d", c2.Rows(), c2.Cols(), dim, dim)
	}

	res := make(data.BitMatrix, dim)
	internal.ParallelFor(dim, g.Workers, func(i int) {
		g.progress("Performing a NAND, hold on", i, dim)
		row := make(data.Vector, dim)
		for j := 0; j < dim; j++ {
			sum := int64(0)
			for k := 0; k < dim; k++ {
				sum += int64(c1[i][k] & c2[k][j])
			}
			if i == j {
				sum = 1 - sum
			} else {
				sum = -sum
			}
			x := big.NewInt(sum)
			row[j] = x.Mod(x, q)
		}
		res[i] = g.flattenRow(row)
	})

	return res, nil
}
