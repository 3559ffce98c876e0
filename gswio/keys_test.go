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

package gswio_test

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gsw-project/gofhe/data"
	"github.com/gsw-project/gofhe/gsw"
	"github.com/gsw-project/gofhe/gswio"
	"github.com/gsw-project/gofhe/internal"
)

func testParams() *gsw.Params {
	q := big.NewInt(65537)
	n := 2
	ell := q.BitLen()
	return &gsw.Params{
		N:   n,
		M:   4,
		Ell: ell,
		Dim: (n + 1) * ell,
		Q:   q,
	}
}

func TestKeyFile_SecretRoundTrip(t *testing.T) {
	p := testParams()
	sk := data.Vector{big.NewInt(1), big.NewInt(123), big.NewInt(60000)}

	var buf bytes.Buffer
	assert.NoError(t, gswio.WriteSecretKey(&buf, p, sk))
	assert.True(t, strings.HasPrefix(buf.String(), "-----BEGIN GSW SECRET KEY-----\n"))

	kf, err := gswio.ReadKey(&buf)
	if err != nil {
		t.Fatalf("Error reading key file: %v", err)
	}

	assert.Equal(t, gswio.KindSecret, kf.Kind)
	assert.Equal(t, p.N, kf.N)
	assert.Equal(t, p.M, kf.M)
	assert.Zero(t, p.Q.Cmp(kf.Q))

	back, err := kf.SecretKey()
	assert.NoError(t, err)
	assert.Equal(t, len(sk), len(back))
	for i := range sk {
		assert.Zero(t, sk[i].Cmp(back[i]))
	}

	_, err = kf.PublicKey()
	assert.Error(t, err, "a secret key body does not reshape into a public key")
}

func TestKeyFile_PublicRoundTrip(t *testing.T) {
	p := testParams()
	pk, err := data.NewMatrix([]data.Vector{
		{big.NewInt(1), big.NewInt(2), big.NewInt(3)},
		{big.NewInt(4), big.NewInt(5), big.NewInt(6)},
		{big.NewInt(7), big.NewInt(8), big.NewInt(9)},
		{big.NewInt(10), big.NewInt(11), big.NewInt(12)},
	})
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, gswio.WritePublicKey(&buf, p, pk))

	kf, err := gswio.ReadKey(&buf)
	if err != nil {
		t.Fatalf("Error reading key file: %v", err)
	}
	assert.Equal(t, gswio.KindPublic, kf.Kind)

	back, err := kf.PublicKey()
	assert.NoError(t, err)
	assert.True(t, back.CheckDims(p.M, p.N+1))
	for i := 0; i < p.M; i++ {
		for j := 0; j <= p.N; j++ {
			assert.Zero(t, pk[i][j].Cmp(back[i][j]))
		}
	}
}

func TestKeyFile_Params(t *testing.T) {
	p := testParams()
	sk := data.Vector{big.NewInt(1), big.NewInt(2), big.NewInt(3)}

	var buf bytes.Buffer
	assert.NoError(t, gswio.WriteSecretKey(&buf, p, sk))
	kf, err := gswio.ReadKey(&buf)
	assert.NoError(t, err)

	got := kf.Params()
	assert.Equal(t, p.N, got.N)
	assert.Equal(t, p.M, got.M)
	assert.Equal(t, p.Ell, got.Ell)
	assert.Equal(t, p.Dim, got.Dim)
}

func TestReadKey_Malformed(t *testing.T) {
	_, err := gswio.ReadKey(strings.NewReader("-----BEGIN RSA KEY-----\n"))
	assert.ErrorIs(t, err, internal.ErrFormat)

	_, err = gswio.ReadKey(strings.NewReader("-----BEGIN GSW SECRET KEY-----\nforty\n"))
	assert.ErrorIs(t, err, internal.ErrFormat)

	// envelope cut short
	_, err = gswio.ReadKey(strings.NewReader("-----BEGIN GSW SECRET KEY-----\n2\n4\n"))
	assert.ErrorIs(t, err, internal.ErrIO)

	// missing footer
	_, err = gswio.ReadKey(strings.NewReader("-----BEGIN GSW SECRET KEY-----\n2\n4\n65537\n1 2 3\ngarbage\n"))
	assert.ErrorIs(t, err, internal.ErrFormat)
}
