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

package circuit

import (
	"github.com/pkg/errors"

	"github.com/gsw-project/gofhe/internal"
)

// Propagate seeds the circuit inputs with in and computes the value
// of every reachable gate in a single topological pass, applying op
// to each gate's type and the values of its predecessors. The number
// of inputs must match the circuit.
func Propagate[T any](c *Circuit[T], in []T, op func(GateType, []T) (T, error)) error {
	if len(in) != len(c.Inputs) {
		return errors.Wrapf(internal.ErrDomain,
			"circuit takes %d inputs, got %d", len(c.Inputs), len(in))
	}

	c.Reset()
	for i, g := range c.Inputs {
		g.Val = in[i]
	}
	for _, g := range c.topoOrder() {
		args := make([]T, len(g.Ins))
		for i, p := range g.Ins {
			args[i] = p.Val
		}
		v, err := op(g.Type, args)
		if err != nil {
			return err
		}
		g.Val = v
	}

	return nil
}

// BoolOp computes one gate over cleartext bits in {0, 1}.
func BoolOp(typ GateType, args []int8) (int8, error) {
	switch typ {
	case XOR:
		return args[0] ^ args[1], nil
	case AND:
		return args[0] & args[1], nil
	case INV:
		return 1 - args[0], nil
	case NAND:
		return 1 - (args[0] & args[1]), nil
	}
	return 0, errors.Wrapf(internal.ErrDomain, "cannot evaluate gate type %s", typ)
}

// Eval runs the cleartext evaluator over the circuit, leaving each
// gate's bit in its value slot. Read the result with OutputValues.
func Eval(c *Circuit[int8], in []int8) error {
	return Propagate(c, in, BoolOp)
}
