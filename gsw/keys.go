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
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/gsw-project/gofhe/data"
	"github.com/gsw-project/gofhe/internal"
	"github.com/gsw-project/gofhe/sample"
)

// GSW is an instance of the scheme for one parameter set.
//
// Progress, when non-nil, receives single-line progress reports from
// the heavy kernels. Workers bounds the goroutines the kernels fan
// out over; zero or negative selects GOMAXPROCS.
type GSW struct {
	Params   *Params
	Progress io.Writer
	Workers  int

	gauss *sample.NormalCDF
}

// New configures a scheme instance for the given security parameter
// and NAND depth.
func New(kappa, depth int) (*GSW, error) {
	params, err := NewParams(kappa, depth)
	if err != nil {
		return nil, err
	}

	return NewFromParams(params), nil
}

// NewFromParams configures a scheme instance from an existing
// parameter set, e.g. one recovered from a key file.
func NewFromParams(params *Params) *GSW {
	return &GSW{
		Params: params,
		gauss:  sample.NewNormalCDF(Sigma),
	}
}

// SecretKeyGen generates a secret key: a vector of length n+1 with
// the first entry fixed to 1 and the rest uniform in [0, q).
func (g *GSW) SecretKeyGen() (data.Vector, error) {
	sk, err := data.NewRandomVector(g.Params.N, sample.NewUniform(g.Params.Q))
	if err != nil {
		return nil, errors.Wrap(err, "error generating secret key")
	}

	return append(data.Vector{big.NewInt(1)}, sk...), nil
}

// PublicKeyGen generates the public key for sk: an m x (n+1) matrix
// A whose first column is b = B*t + e for a uniform B in the
// remaining columns, t[j] = q - sk[j+1] and e a small Gaussian noise
// vector. The key satisfies A*sk = e (mod q) entrywise with
// |e[i]| < Sigma6.
func (g *GSW) PublicKeyGen(sk data.Vector) (data.Matrix, error) {
	n, m, q := g.Params.N, g.Params.M, g.Params.Q
	if len(sk) != n+1 {
		return nil, errors.Wrapf(internal.ErrDomain, "secret key of length %d, want %d", len(sk), n+1)
	}

	t := make(data.Vector, n)
	for j := 0; j < n; j++ {
		t[j] = new(big.Int).Sub(q, sk[j+1])
	}

	B, err := data.NewRandomMatrix(m, n, sample.NewUniform(q))
	if err != nil {
		return nil, errors.Wrap(err, "error generating public key")
	}

	// b = B*t + e; the error is impossible since B was built with
	// len(t) columns
	b, _ := B.MulVec(t)
	b = b.Mod(q)

	sigma6 := big.NewInt(Sigma6)
	rows := make([]data.Vector, m)
	for i := 0; i < m; i++ {
		noise, err := g.gauss.Sample()
		if err != nil {
			return nil, errors.Wrap(err, "error generating public key")
		}
		noise.Mod(noise, sigma6)
		b[i].Add(b[i], noise)
		b[i].Mod(b[i], q)

		rows[i] = append(data.Vector{b[i]}, B[i]...)
	}

	return data.NewMatrix(rows)
}

// progress emits one carriage-return-terminated progress line when a
// progress writer is configured.
func (g *GSW) progress(tag string, i, n int) {
	if g.Progress == nil {
		return
	}
	fmt.Fprintf(g.Progress, "%s %d of %d\r", tag, i, n)
}
