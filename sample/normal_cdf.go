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

package sample

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/gsw-project/gofhe/internal"
)

// cdfSize is the length of the precomputed cumulative table and
// cdfStep the initial stride of the binary search over it.
const cdfSize = 0x1000
const cdfStep = 0x0800

// twoPow64 is 2^64 as a float, the scale of the cumulative table.
const twoPow64 = 18446744073709551616.0

// NormalCDF samples magnitudes of a discrete Normal (Gaussian)
// distribution centered on 0 with standard deviation sigma. The
// cumulative distribution is precomputed into a table of 64-bit
// values scaled to the full uint64 range; sampling draws one uniform
// 64-bit value and binary-searches the table. The sampler returns
// non-negative values only; callers that need signs attach them from
// an extra random bit.
type NormalCDF struct {
	sigma float64
	cdf   []uint64
}

// NewNormalCDF returns an instance of NormalCDF sampler.
// It assumes mean = 0. The table is built when this function is
// called, so that Sample merely searches precomputed values.
func NewNormalCDF(sigma float64) *NormalCDF {
	c := &NormalCDF{
		sigma: sigma,
		cdf:   make([]uint64, cdfSize),
	}

	// 2/sqrt(2*Pi) * 2^64 / sigma
	d := 0.7978845608028653559 * twoPow64 / sigma
	e := -0.5 / (sigma * sigma)

	s := 0.5 * d
	c.cdf[0] = 0
	i := 1
	for ; i < cdfSize-1; i++ {
		if s >= twoPow64 {
			break
		}
		c.cdf[i] = uint64(s)
		s += d * math.Exp(e*float64(i*i))
	}
	for ; i < cdfSize; i++ {
		c.cdf[i] = math.MaxUint64
	}

	return c
}

// Sample draws a uniform 64-bit value and returns the largest table
// index whose cumulative weight does not exceed it.
func (c *NormalCDF) Sample() (*big.Int, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(internal.ErrEntropy, err.Error())
	}
	x := binary.LittleEndian.Uint64(buf)

	a := 0
	for st := cdfStep; st > 0; st >>= 1 {
		b := a + st
		if b < cdfSize && x >= c.cdf[b] {
			a = b
		}
	}

	return big.NewInt(int64(a)), nil
}
