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
	"github.com/pkg/errors"

	"github.com/gsw-project/gofhe/circuit"
	"github.com/gsw-project/gofhe/data"
	"github.com/gsw-project/gofhe/internal"
)

// EvalCircuit evaluates a NAND-only circuit over ciphertext inputs
// and returns the output ciphertexts in output-wire order. A gate of
// any other type is rejected: recode the circuit first.
func (g *GSW) EvalCircuit(c *circuit.Circuit[data.BitMatrix], in []data.BitMatrix) ([]data.BitMatrix, error) {
	err := circuit.Propagate(c, in, func(typ circuit.GateType, args []data.BitMatrix) (data.BitMatrix, error) {
		if typ != circuit.NAND {
			return nil, errors.Wrapf(internal.ErrDomain,
				"homomorphic evaluation supports NAND gates only, found %s", typ)
		}
		return g.NAND(args[0], args[1])
	})
	if err != nil {
		return nil, err
	}

	return c.OutputValues(), nil
}
