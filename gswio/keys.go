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

// Package gswio reads and writes the external formats of the scheme:
// PEM-style key envelopes, plaintext bit streams and ciphertext
// token streams.
package gswio

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gsw-project/gofhe/data"
	"github.com/gsw-project/gofhe/gsw"
	"github.com/gsw-project/gofhe/internal"
)

// Key kinds as they appear in the envelope.
const (
	KindSecret = "SECRET"
	KindPublic = "PUBLIC"
)

var envelopeBegin = regexp.MustCompile(`^-----BEGIN GSW (SECRET|PUBLIC) KEY-----$`)
var envelopeEnd = regexp.MustCompile(`^-----END GSW (SECRET|PUBLIC) KEY-----$`)

// KeyFile is a parsed key envelope: the scheme parameters it embeds
// and the raw key entries, row-major.
type KeyFile struct {
	Kind    string
	N       int
	M       int
	Q       *big.Int
	Entries data.Vector
}

// WriteSecretKey writes the secret key envelope:
//
//	-----BEGIN GSW SECRET KEY-----
//	<n>
//	<m>
//	<q>
//	<space-separated entries>
//	-----END GSW SECRET KEY-----
func WriteSecretKey(w io.Writer, p *gsw.Params, sk data.Vector) error {
	return writeKey(w, KindSecret, p, sk.String())
}

// WritePublicKey writes the public key envelope; the matrix body is
// one row-major line of entries.
func WritePublicKey(w io.Writer, p *gsw.Params, pk data.Matrix) error {
	return writeKey(w, KindPublic, p, pk.String())
}

func writeKey(w io.Writer, kind string, p *gsw.Params, body string) error {
	_, err := fmt.Fprintf(w, "-----BEGIN GSW %s KEY-----\n%d\n%d\n%s\n%s\n-----END GSW %s KEY-----\n",
		kind, p.N, p.M, p.Q.String(), body, kind)
	if err != nil {
		return errors.Wrap(internal.ErrIO, err.Error())
	}
	return nil
}

// ReadKey parses a key envelope. The embedded (n, m, q) are returned
// alongside the entries so that a scheme instance can be
// reconstructed without repeating parameter setup.
func ReadKey(r io.Reader) (*KeyFile, error) {
	br := bufio.NewReader(r)

	line, err := readLine(br)
	if err != nil {
		return nil, err
	}
	match := envelopeBegin.FindStringSubmatch(line)
	if match == nil {
		return nil, errors.Wrap(internal.ErrFormat, "invalid key file")
	}
	kf := &KeyFile{Kind: match[1]}

	if line, err = readLine(br); err != nil {
		return nil, err
	}
	if kf.N, err = strconv.Atoi(line); err != nil {
		return nil, errors.Wrapf(internal.ErrFormat, "key dimension %q", line)
	}
	if line, err = readLine(br); err != nil {
		return nil, err
	}
	if kf.M, err = strconv.Atoi(line); err != nil {
		return nil, errors.Wrapf(internal.ErrFormat, "key dimension %q", line)
	}
	if line, err = readLine(br); err != nil {
		return nil, err
	}
	q, ok := new(big.Int).SetString(line, 10)
	if !ok {
		return nil, errors.Wrapf(internal.ErrFormat, "key modulus %q", line)
	}
	kf.Q = q

	if line, err = readLine(br); err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	kf.Entries = make(data.Vector, len(fields))
	for i, f := range fields {
		e, ok := new(big.Int).SetString(f, 10)
		if !ok {
			return nil, errors.Wrapf(internal.ErrFormat, "key entry %q", f)
		}
		kf.Entries[i] = e
	}

	if line, err = readLine(br); err != nil {
		return nil, err
	}
	if !envelopeEnd.MatchString(line) {
		return nil, errors.Wrap(internal.ErrFormat, "invalid key file")
	}

	return kf, nil
}

// readLine returns the next line without its terminator; a premature
// end of input is an I/O error.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", errors.Wrap(internal.ErrIO, "unexpected end of key file")
	}
	if err != nil && err != io.EOF {
		return "", errors.Wrap(internal.ErrIO, err.Error())
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Params reconstructs the scheme parameters the envelope pins down.
// The security parameter and depth the keys were generated for are
// not part of the envelope.
func (kf *KeyFile) Params() *gsw.Params {
	ell := kf.Q.BitLen()
	return &gsw.Params{
		N:   kf.N,
		M:   kf.M,
		Ell: ell,
		Dim: (kf.N + 1) * ell,
		Q:   kf.Q,
	}
}

// SecretKey returns the entries as a secret key vector of length
// n+1.
func (kf *KeyFile) SecretKey() (data.Vector, error) {
	if len(kf.Entries) != kf.N+1 {
		return nil, errors.Wrapf(internal.ErrFormat,
			"secret key body has %d entries, want %d", len(kf.Entries), kf.N+1)
	}
	return kf.Entries, nil
}

// PublicKey reshapes the entries into the m x (n+1) public key
// matrix.
func (kf *KeyFile) PublicKey() (data.Matrix, error) {
	rows, cols := kf.M, kf.N+1
	if len(kf.Entries) != rows*cols {
		return nil, errors.Wrapf(internal.ErrFormat,
			"public key body has %d entries, want %d", len(kf.Entries), rows*cols)
	}
	mat := make([]data.Vector, rows)
	for i := 0; i < rows; i++ {
		mat[i] = kf.Entries[i*cols : (i+1)*cols]
	}
	return data.NewMatrix(mat)
}
