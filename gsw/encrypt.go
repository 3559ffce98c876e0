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

// Encrypt encrypts a single bit under the public key pk. The
// ciphertext is the N x N flattened bit matrix
// C = Flatten(msg * I + BitDecomp(R * pk)) for a fresh uniform
// N x m bit matrix R, and satisfies C * v = msg * v + e (mod q)
// for v = PowersOf2(sk) and small e.
func (g *GSW) Encrypt(pk data.Matrix, msg *big.Int) (data.BitMatrix, error) {
	n, m, q, dim := g.Params.N, g.Params.M, g.Params.Q, g.Params.Dim

	if msg.Sign() < 0 || msg.Cmp(oneInt) > 0 {
		return nil, errors.Wrapf(internal.ErrDomain, "message %s is not a bit", msg)
	}
	if !pk.CheckDims(m, n+1) {
		return nil, errors.Wrapf(internal.ErrDomain,
			"public key is %dx%d, want %dx%d", pk.Rows(), pk.Cols(), m, n+1)
	}

	R, err := data.NewRandomBitMatrix(dim, m)
	if err != nil {
		return nil, errors.Wrap(err, "error in encrypt")
	}

	// R * pk, an N x (n+1) matrix over Z_q
	RA := make(data.Matrix, dim)
	internal.ParallelFor(dim, g.Workers, func(i int) {
		g.progress("Calc RA matrix", i, dim)
		row := make(data.Vector, n+1)
		for j := 0; j <= n; j++ {
			acc := new(big.Int)
			for k := 0; k < m; k++ {
				if R[i][k] == 1 {
					acc.Add(acc, pk[k][j])
				}
			}
			row[j] = acc.Mod(acc, q)
		}
		RA[i] = row
	})

	res := make(data.BitMatrix, dim)
	internal.ParallelFor(dim, g.Workers, func(i int) {
		g.progress("Calc ciphertext matrix", i, dim)
		row := g.BitDecomp(RA[i]).ToVector()
		row[i].Add(row[i], msg)
		res[i] = g.flattenRow(row)
	})

	return res, nil
}

// DecryptBit decrypts a single-bit ciphertext with the secret key.
// It picks the row i whose PowersOf2(sk) entry lies in (q/4, q/2],
// forms x = <C[i], PowersOf2(sk)> mod q, reduces x to its centered
// representative and compares the magnitude against v[i]/2. A wrong
// result indicates the accumulated noise exceeded q/8; decryption
// itself never fails.
func (g *GSW) DecryptBit(sk data.Vector, ct data.BitMatrix) (uint8, error) {
	n, q, ell, dim := g.Params.N, g.Params.Q, g.Params.Ell, g.Params.Dim

	if len(sk) != n+1 {
		return 0, errors.Wrapf(internal.ErrDomain, "secret key of length %d, want %d", len(sk), n+1)
	}
	if !ct.CheckDims(dim, dim) {
		return 0, errors.Wrapf(internal.ErrDomain,
			"ciphertext is %dx%d, want %dx%d", ct.Rows(), ct.Cols(), dim, dim)
	}

	v := g.PowersOf2(sk)

	q4 := new(big.Int).Quo(q, big.NewInt(4))
	q2 := new(big.Int).Quo(q, big.NewInt(2))
	row := 0
	for i := 0; i < ell; i++ {
		if v[i].Cmp(q4) > 0 && v[i].Cmp(q2) <= 0 {
			row = i
			break
		}
	}

	x := new(big.Int)
	for j := 0; j < dim; j++ {
		if ct[row][j] == 1 {
			x.Add(x, v[j])
		}
	}
	x.Mod(x, q)

	// centered representative, so noise on an encryption of zero
	// lands near 0 rather than near q
	if x.Cmp(q2) > 0 {
		x.Sub(x, q)
	}
	x.Abs(x)

	half := new(big.Int).Rsh(v[row], 1)
	if x.Cmp(half) >= 0 {
		return 1, nil
	}
	return 0, nil
}

// Decrypt recovers a multi-bit message by rounding successive rows
// of the ciphertext. It is kept as a diagnostic: the per-bit
// carries make it order-sensitive, and production callers encrypt
// single bits and use DecryptBit.
func (g *GSW) Decrypt(sk data.Vector, ct data.BitMatrix) (*big.Int, error) {
	n, q, ell, dim := g.Params.N, g.Params.Q, g.Params.Ell, g.Params.Dim

	if len(sk) != n+1 {
		return nil, errors.Wrapf(internal.ErrDomain, "secret key of length %d, want %d", len(sk), n+1)
	}
	if !ct.CheckDims(dim, dim) {
		return nil, errors.Wrapf(internal.ErrDomain,
			"ciphertext is %dx%d, want %dx%d", ct.Rows(), ct.Cols(), dim, dim)
	}

	v := g.PowersOf2(sk)

	powered := make(data.Vector, ell-1)
	for i := 0; i < ell-1; i++ {
		x := new(big.Int)
		for j := 0; j < dim; j++ {
			if ct[i][j] == 1 {
				x.Add(x, v[j])
			}
		}
		powered[i] = x.Mod(x, q)
	}

	q2 := new(big.Int).Quo(q, big.NewInt(2))
	msg := new(big.Int)
	it := new(big.Int)
	for i := ell - 2; i >= 0; i-- {
		it.Lsh(msg, uint(i))
		it.Sub(powered[i], it)
		it.Mod(it, q)
		if it.Cmp(q2) >= 0 {
			msg.Add(msg, new(big.Int).Lsh(oneInt, uint(ell-2-i)))
		}
	}

	return msg, nil
}
