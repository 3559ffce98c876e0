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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gsw-project/gofhe/data"
	"github.com/gsw-project/gofhe/gswio"
	"github.com/gsw-project/gofhe/internal"
)

func TestPlaintexts_RoundTrip(t *testing.T) {
	bits := []uint8{1, 0, 0, 1, 1}

	var buf bytes.Buffer
	assert.NoError(t, gswio.WritePlaintexts(&buf, bits))

	back, err := gswio.ReadPlaintexts(&buf)
	assert.NoError(t, err)
	assert.Equal(t, bits, back)
}

func TestReadPlaintexts_AnyWhitespace(t *testing.T) {
	bits, err := gswio.ReadPlaintexts(strings.NewReader(" 1\t0\n\n1 "))
	assert.NoError(t, err)
	assert.Equal(t, []uint8{1, 0, 1}, bits)
}

func TestReadPlaintexts_BadToken(t *testing.T) {
	_, err := gswio.ReadPlaintexts(strings.NewReader("1 0 2"))
	assert.ErrorIs(t, err, internal.ErrFormat)
}

func TestCiphertexts_RoundTrip(t *testing.T) {
	c1, err := data.NewRandomBitMatrix(4, 4)
	assert.NoError(t, err)
	c2, err := data.NewRandomBitMatrix(4, 4)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, gswio.WriteCiphertexts(&buf, []data.BitMatrix{c1, c2}))

	back, err := gswio.ReadCiphertexts(&buf)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(back))
	assert.True(t, c1.Equal(back[0]))
	assert.True(t, c2.Equal(back[1]))
}

func TestReadCiphertexts_NonSquare(t *testing.T) {
	_, err := gswio.ReadCiphertexts(strings.NewReader("10110"))
	assert.ErrorIs(t, err, internal.ErrDomain)
}

func TestReadCiphertexts_BadCharacter(t *testing.T) {
	_, err := gswio.ReadCiphertexts(strings.NewReader("1011"))
	assert.NoError(t, err, "a 2x2 token parses")

	_, err = gswio.ReadCiphertexts(strings.NewReader("10x1"))
	assert.ErrorIs(t, err, internal.ErrFormat)
}
