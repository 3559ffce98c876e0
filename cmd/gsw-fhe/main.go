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

// gsw-fhe is the FHE command line tool: key generation, bit
// encryption and decryption, a single homomorphic NAND and full
// circuit evaluation over ciphertexts.
package main

import (
	"io"
	"math/big"
	"os"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/gsw-project/gofhe/circuit"
	"github.com/gsw-project/gofhe/data"
	"github.com/gsw-project/gofhe/gsw"
	"github.com/gsw-project/gofhe/gswio"
	"github.com/gsw-project/gofhe/internal"
)

var log = internal.SetupLogging("gsw-fhe", logging.INFO)

func main() {
	app := cli.NewApp()
	app.Name = "gsw-fhe"
	app.Usage = "a FHE implementation based on the GSW scheme"
	app.Version = "0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "keygen, k", Usage: "generate a public and secret key pair"},
		cli.IntFlag{Name: "kappa", Value: 80, Usage: "security parameter used with --keygen"},
		cli.IntFlag{Name: "circuit_depth, L", Usage: "circuit depth, required with --keygen unless --circuit is given"},
		cli.BoolFlag{Name: "encrypt, e", Usage: "encrypt using the public key"},
		cli.BoolFlag{Name: "decrypt, d", Usage: "decrypt using the secret key"},
		cli.BoolFlag{Name: "nand, n", Usage: "NAND two ciphertexts together"},
		cli.StringFlag{Name: "circuit, c", Usage: "a NAND circuit description file"},
		cli.StringFlag{Name: "public_key, p", Usage: "public key file"},
		cli.StringFlag{Name: "secret_key, s", Usage: "secret key file"},
		cli.StringFlag{Name: "output, o", Usage: "output to file instead of STDOUT"},
		cli.StringFlag{Name: "input, i", Usage: "input from file instead of STDIN"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	keygen := c.Bool("keygen")
	encrypt := c.Bool("encrypt")
	decrypt := c.Bool("decrypt")
	nand := c.Bool("nand")
	circuitFile := c.String("circuit")
	pubFile := c.String("public_key")
	secFile := c.String("secret_key")
	depth := c.Int("circuit_depth")

	switch {
	case encrypt && decrypt:
		return errors.Wrap(internal.ErrConfig, "cannot both encrypt and decrypt")
	case encrypt && pubFile == "":
		return errors.Wrap(internal.ErrConfig, "encryption requires a public key")
	case decrypt && secFile == "":
		return errors.Wrap(internal.ErrConfig, "decryption requires a secret key")
	case keygen && (depth == 0 && circuitFile == "" || pubFile == "" || secFile == ""):
		return errors.Wrap(internal.ErrConfig,
			"key generation requires a circuit depth or circuit, a public key and a secret key file")
	case !(encrypt || decrypt || keygen || nand || circuitFile != ""):
		return errors.Wrap(internal.ErrConfig, "nothing to do")
	}

	if keygen {
		if depth == 0 {
			var err error
			if depth, err = circuitDepth(circuitFile); err != nil {
				return err
			}
			log.Infof("circuit requires depth %d", depth)
		}
		return generateKeys(c.Int("kappa"), depth, pubFile, secFile)
	}

	// every remaining operation recovers its parameters from a key
	// file; for encryption the public key is the one that matters
	keyFile := secFile
	if keyFile == "" || encrypt {
		keyFile = pubFile
	}
	if keyFile == "" {
		return errors.Wrap(internal.ErrConfig, "a key file is required to recover the scheme parameters")
	}
	kf, err := readKeyFile(keyFile)
	if err != nil {
		return err
	}
	scheme := gsw.NewFromParams(kf.Params())
	scheme.Progress = os.Stderr

	in, err := openInput(c.String("input"))
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := openOutput(c.String("output"))
	if err != nil {
		return err
	}
	defer out.Close()

	switch {
	case encrypt:
		return encryptStream(scheme, kf, in, out)
	case decrypt:
		return decryptStream(scheme, kf, in, out)
	case nand:
		return nandStream(scheme, in, out)
	default:
		return evalStream(scheme, circuitFile, in, out)
	}
}

func generateKeys(kappa, depth int, pubFile, secFile string) error {
	scheme, err := gsw.New(kappa, depth)
	if err != nil {
		return err
	}
	scheme.Progress = os.Stderr
	log.Infof("generating keys for kappa=%d depth=%d (n=%d, m=%d, N=%d)",
		kappa, depth, scheme.Params.N, scheme.Params.M, scheme.Params.Dim)

	sk, err := scheme.SecretKeyGen()
	if err != nil {
		return err
	}
	pk, err := scheme.PublicKeyGen(sk)
	if err != nil {
		return err
	}

	fs, err := os.Create(secFile)
	if err != nil {
		return errors.Wrap(internal.ErrIO, err.Error())
	}
	defer fs.Close()
	if err := gswio.WriteSecretKey(fs, scheme.Params, sk); err != nil {
		return err
	}

	fp, err := os.Create(pubFile)
	if err != nil {
		return errors.Wrap(internal.ErrIO, err.Error())
	}
	defer fp.Close()
	return gswio.WritePublicKey(fp, scheme.Params, pk)
}

func encryptStream(scheme *gsw.GSW, kf *gswio.KeyFile, in io.Reader, out io.Writer) error {
	pk, err := kf.PublicKey()
	if err != nil {
		return err
	}
	bits, err := gswio.ReadPlaintexts(in)
	if err != nil {
		return err
	}

	cts := make([]data.BitMatrix, len(bits))
	for i, b := range bits {
		if cts[i], err = scheme.Encrypt(pk, big.NewInt(int64(b))); err != nil {
			return err
		}
	}
	return gswio.WriteCiphertexts(out, cts)
}

func decryptStream(scheme *gsw.GSW, kf *gswio.KeyFile, in io.Reader, out io.Writer) error {
	sk, err := kf.SecretKey()
	if err != nil {
		return err
	}
	cts, err := gswio.ReadCiphertexts(in)
	if err != nil {
		return err
	}

	bits := make([]uint8, len(cts))
	for i, ct := range cts {
		if bits[i], err = scheme.DecryptBit(sk, ct); err != nil {
			return err
		}
	}
	return gswio.WritePlaintexts(out, bits)
}

func nandStream(scheme *gsw.GSW, in io.Reader, out io.Writer) error {
	cts, err := gswio.ReadCiphertexts(in)
	if err != nil {
		return err
	}
	if len(cts) < 2 {
		return errors.Wrapf(internal.ErrDomain, "NAND takes two ciphertexts, got %d", len(cts))
	}

	res, err := scheme.NAND(cts[0], cts[1])
	if err != nil {
		return err
	}
	return gswio.WriteCiphertexts(out, []data.BitMatrix{res})
}

func evalStream(scheme *gsw.GSW, circuitFile string, in io.Reader, out io.Writer) error {
	f, err := os.Open(circuitFile)
	if err != nil {
		return errors.Wrap(internal.ErrIO, err.Error())
	}
	defer f.Close()
	circ, err := circuit.Load[data.BitMatrix](f)
	if err != nil {
		return err
	}

	cts, err := gswio.ReadCiphertexts(in)
	if err != nil {
		return err
	}
	outs, err := scheme.EvalCircuit(circ, cts)
	if err != nil {
		return err
	}
	return gswio.WriteCiphertexts(out, outs)
}

// circuitDepth derives the key depth from a circuit file: the depth
// of its NAND-recoded form.
func circuitDepth(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(internal.ErrIO, err.Error())
	}
	defer f.Close()

	c, err := circuit.Load[int8](f)
	if err != nil {
		return 0, err
	}
	c.NandRecode()
	return c.Depth(), nil
}

func readKeyFile(path string) (*gswio.KeyFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(internal.ErrIO, err.Error())
	}
	defer f.Close()
	return gswio.ReadKey(f)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(internal.ErrIO, err.Error())
	}
	return f, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(internal.ErrIO, err.Error())
	}
	return f, nil
}
