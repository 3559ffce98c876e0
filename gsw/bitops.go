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

// PowersOf2 lifts vector a into the dilated vector
// [2^0*a[0], ..., 2^(l-1)*a[0], 2^0*a[1], ...] mod q, so that
// <BitDecomp(x), PowersOf2(a)> = <x, a> mod q. Applied to a secret
// key of length n+1 the result has the ciphertext dimension N.
func (g *GSW) PowersOf2(a data.Vector) data.Vector {
	ell, q := g.Params.Ell, g.Params.Q

	res := make(data.Vector, len(a)*ell)
	for i, x := range a {
		p := new(big.Int).Mod(x, q)
		for j := 0; j < ell; j++ {
			res[i*ell+j] = new(big.Int).Set(p)
			p = new(big.Int).Lsh(p, 1)
			p.Mod(p, q)
		}
	}

	return res
}

// BitDecomp expands every entry of a into its l binary digits,
// least significant first: bit j of a[i] lands at position i*l+j.
// Entries must already be reduced to [0, q).
func (g *GSW) BitDecomp(a data.Vector) data.BitVector {
	ell := g.Params.Ell

	res := make(data.BitVector, len(a)*ell)
	for i, x := range a {
		for j := 0; j < ell; j++ {
			res[i*ell+j] = uint8(x.Bit(j))
		}
	}

	return res
}

// InverseBitDecomp reconstructs the vector whose BitDecomp is b,
// summing bit*2^j over each group of l bits and reducing mod q.
// The length of b must be a multiple of l.
func (g *GSW) InverseBitDecomp(b data.BitVector) (data.Vector, error) {
	ell := g.Params.Ell
	if len(b)%ell != 0 {
		return nil, errors.Wrapf(internal.ErrDomain, "bit vector of length %d is not a multiple of %d", len(b), ell)
	}

	res := make(data.Vector, len(b)/ell)
	for i := range res {
		x := new(big.Int)
		for j := ell - 1; j >= 0; j-- {
			x.Lsh(x, 1)
			if b[i*ell+j] == 1 {
				x.Add(x, oneInt)
			}
		}
		res[i] = x.Mod(x, g.Params.Q)
	}

	return res, nil
}

// inverseBitDecompBig is InverseBitDecomp generalized to arbitrary
// integer entries in the bit positions; Flatten feeds it the raw
// accumulator rows of the encrypt and NAND kernels.
func (g *GSW) inverseBitDecompBig(a data.Vector) data.Vector {
	ell := g.Params.Ell

	res := make(data.Vector, len(a)/ell)
	tmp := new(big.Int)
	for i := range res {
		x := new(big.Int)
		for j := 0; j < ell; j++ {
			tmp.Lsh(a[i*ell+j], uint(j))
			x.Add(x, tmp)
		}
		res[i] = x.Mod(x, g.Params.Q)
	}

	return res
}

// flattenRow normalizes one ciphertext row: the composition
// BitDecomp(InverseBitDecomp(row)).
func (g *GSW) flattenRow(row data.Vector) data.BitVector {
	return g.BitDecomp(g.inverseBitDecompBig(row))
}

// Flatten normalizes a ciphertext so that every entry is a single
// bit while preserving its product with PowersOf2(sk). Flatten is
// idempotent; a valid ciphertext is a fixed point.
func (g *GSW) Flatten(c data.BitMatrix) (data.BitMatrix, error) {
	if c.Cols()%g.Params.Ell != 0 {
		return nil, errors.Wrapf(internal.ErrDomain, "cannot flatten %d columns", c.Cols())
	}

	res := make(data.BitMatrix, c.Rows())
	internal.ParallelFor(c.Rows(), g.Workers, func(i int) {
		res[i] = g.flattenRow(c[i].ToVector())
	})

	return res, nil
}

// FlattenBig normalizes a matrix of arbitrary integers into
// flattened bit form; the rows keep their width.
func (g *GSW) FlattenBig(m data.Matrix) (data.BitMatrix, error) {
	if m.Cols()%g.Params.Ell != 0 {
		return nil, errors.Wrapf(internal.ErrDomain, "cannot flatten %d columns", m.Cols())
	}

	res := make(data.BitMatrix, m.Rows())
	internal.ParallelFor(m.Rows(), g.Workers, func(i int) {
		res[i] = g.flattenRow(m[i])
	})

	return res, nil
}

var oneInt = big.NewInt(1)
