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

package gswio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/gsw-project/gofhe/data"
	"github.com/gsw-project/gofhe/internal"
)

// maxToken bounds a single ciphertext token; a token is N*N
// characters, so this admits ciphertext dimensions beyond 30000.
const maxToken = 1 << 30

// ReadPlaintexts reads whitespace-separated 0/1 tokens until end of
// input.
func ReadPlaintexts(r io.Reader) ([]uint8, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var bits []uint8
	for sc.Scan() {
		switch sc.Text() {
		case "0":
			bits = append(bits, 0)
		case "1":
			bits = append(bits, 1)
		default:
			return nil, errors.Wrapf(internal.ErrFormat, "plaintext token %q", sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(internal.ErrIO, err.Error())
	}

	return bits, nil
}

// WritePlaintexts writes one 0/1 token per line.
func WritePlaintexts(w io.Writer, bits []uint8) error {
	bw := bufio.NewWriter(w)
	for _, b := range bits {
		fmt.Fprintf(bw, "%d\n", b)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(internal.ErrIO, err.Error())
	}
	return nil
}

// ReadCiphertexts reads whitespace-separated ciphertext tokens, each
// a row-major string of N*N '0'/'1' characters, until end of input.
func ReadCiphertexts(r io.Reader) ([]data.BitMatrix, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	sc.Buffer(make([]byte, 0, 64*1024), maxToken)

	var cts []data.BitMatrix
	for sc.Scan() {
		ct, err := data.ParseBitMatrix(sc.Text())
		if err != nil {
			return nil, err
		}
		cts = append(cts, ct)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(internal.ErrIO, err.Error())
	}

	return cts, nil
}

// WriteCiphertexts writes one ciphertext token per line.
func WriteCiphertexts(w io.Writer, cts []data.BitMatrix) error {
	bw := bufio.NewWriter(w)
	for _, ct := range cts {
		fmt.Fprintf(bw, "%s\n", ct.String())
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(internal.ErrIO, err.Error())
	}
	return nil
}
