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

// circuit-tool converts and simplifies Boolean circuits. It reads a
// circuit from STDIN and writes the transformed circuit to STDOUT:
// -s <pattern> <in1> keeps only the gates feeding the outputs whose
// pattern bit is 1, -n rewrites the circuit into NAND gates only.
package main

import (
	"os"
	"strconv"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/gsw-project/gofhe/circuit"
	"github.com/gsw-project/gofhe/internal"
)

var log = internal.SetupLogging("circuit-tool", logging.INFO)

func main() {
	app := cli.NewApp()
	app.Name = "circuit-tool"
	app.Usage = "convert and simplify boolean circuits"
	app.Version = "0.1"
	app.ArgsUsage = "[in1]"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "simplify, s", Usage: "simplify the circuit by an output `pattern` of 0/1 characters"},
		cli.BoolFlag{Name: "nand, n", Usage: "convert to a NAND based circuit"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	pattern := c.String("simplify")
	nand := c.Bool("nand")

	if !nand && pattern == "" {
		return errors.Wrap(internal.ErrConfig, "either --nand or --simplify is required")
	}

	circ, err := circuit.Load[int8](os.Stdin)
	if err != nil {
		return err
	}

	if nand {
		circ.NandRecode()
	} else {
		if c.NArg() != 1 {
			return errors.Wrap(internal.ErrConfig, "simplification requires the in1 count argument")
		}
		in1, err := strconv.Atoi(c.Args().First())
		if err != nil {
			return errors.Wrapf(internal.ErrConfig, "in1 count %q", c.Args().First())
		}
		if len(pattern) < circ.NumOut {
			return errors.Wrapf(internal.ErrConfig,
				"pattern of %d bits for %d outputs", len(pattern), circ.NumOut)
		}

		mask := make([]bool, len(pattern))
		for i := 0; i < len(pattern); i++ {
			switch pattern[i] {
			case '0':
				mask[i] = false
			case '1':
				mask[i] = true
			default:
				return errors.Wrap(internal.ErrConfig, "pattern values can only be 0 or 1")
			}
		}
		if err := circ.Reduce(mask, in1); err != nil {
			return err
		}
	}

	return circ.Write(os.Stdout)
}
