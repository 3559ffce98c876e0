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

// Package gsw implements the Gentry-Sahai-Waters leveled fully
// homomorphic encryption scheme over bit matrices: parameter
// selection, key generation, bit encryption and decryption, the
// BitDecomp/PowersOf2/Flatten transforms and the homomorphic NAND
// that evaluates NAND-only Boolean circuits over ciphertexts.
package gsw

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/gsw-project/gofhe/internal"
)

// Sigma is the width of the discrete Gaussian the key noise is
// sampled from.
const Sigma = 3.8

// Sigma6 is floor(6 * Sigma), the bound on the magnitude of a single
// noise sample.
const Sigma6 = 22

// maxParamIters caps the alternating adjustment of n and q during
// parameter selection; κ/L combinations that have not settled by
// then are rejected.
const maxParamIters = 1000

// Params holds the derived parameters of a scheme instance.
type Params struct {
	Kappa int // security parameter κ
	Depth int // supported homomorphic NAND depth L

	N   int      // secret dimension n
	M   int      // number of LWE samples, ceil(n * log2 q)
	Ell int      // bit length of q, floor(log2 q) + 1
	Dim int      // ciphertext dimension N = (n+1) * Ell
	Q   *big.Int // ciphertext modulus, prime
}

// NewParams derives parameters (n, q, m, l, N) from the security
// parameter kappa and the required NAND depth so that a depth-deep
// chain of homomorphic NANDs still decrypts: q is the first prime
// with q >= 8*Sigma6*(N+1)^depth and n >= log2(q/Sigma)*(kappa+110)/7.2.
// Since N depends on n and on the bit length of q, the two are
// adjusted alternately until both inequalities hold.
func NewParams(kappa, depth int) (*Params, error) {
	if kappa < 1 {
		return nil, errors.Wrapf(internal.ErrDomain, "security parameter %d", kappa)
	}
	if depth < 1 {
		return nil, errors.Wrapf(internal.ErrDomain, "circuit depth %d", depth)
	}

	n := int(float64(kappa+110) / 7.2)
	q := big.NewInt(4)
	ell := q.BitLen()
	dim := (n + 1) * ell

	for iter := 0; ; iter++ {
		if iter == maxParamIters {
			return nil, errors.Wrapf(internal.ErrDomain,
				"parameter search did not settle for kappa=%d depth=%d", kappa, depth)
		}

		lower := new(big.Int).Exp(big.NewInt(int64(dim+1)), big.NewInt(int64(depth)), nil)
		lower.Mul(lower, big.NewInt(8*Sigma6))
		if q.Cmp(lower) > 0 {
			break
		}
		q = internal.NextPrime(lower)

		n = int(math.Ceil((log2Big(q) - math.Log2(Sigma)) * float64(kappa+110) / 7.2))
		ell = q.BitLen()
		dim = (n + 1) * ell
	}

	m := int(math.Ceil(float64(n) * log2Big(q)))

	return &Params{
		Kappa: kappa,
		Depth: depth,
		N:     n,
		M:     m,
		Ell:   ell,
		Dim:   dim,
		Q:     q,
	}, nil
}

// log2Big computes log2 of a positive big integer without overflow
// for values beyond the float64 range.
func log2Big(x *big.Int) float64 {
	f := new(big.Float).SetInt(x)
	mant := new(big.Float)
	exp := f.MantExp(mant)
	m, _ := mant.Float64()

	return float64(exp) + math.Log2(m)
}
