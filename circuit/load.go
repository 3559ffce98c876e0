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
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/gsw-project/gofhe/internal"
)

// Load parses the textual circuit format:
//
//	<num_gates> <num_wires>
//	<num_in1> <num_in2> <num_out>
//
//	<in_count> <out_count> <in_id...> <out_id> <TYPE>
//	...
//
// Wires are numbered 0..num_wires-1; the first num_in1+num_in2 wires
// are the inputs and the last num_out wires the outputs. Tokens are
// whitespace-separated; line breaks carry no meaning beyond
// separation.
func Load[T any](r io.Reader) (*Circuit[T], error) {
	br := bufio.NewReader(r)

	c := &Circuit[T]{}
	_, err := fmt.Fscan(br, &c.NumGates, &c.NumWires, &c.NumIn1, &c.NumIn2, &c.NumOut)
	if err != nil {
		return nil, errors.Wrap(internal.ErrFormat, "circuit header: "+err.Error())
	}
	if c.NumGates < 0 || c.NumWires < 0 || c.NumIn1 < 0 || c.NumIn2 < 0 || c.NumOut < 0 ||
		c.NumIn1+c.NumIn2 > c.NumWires || c.NumOut > c.NumWires {
		return nil, errors.Wrap(internal.ErrFormat, "circuit header counts are inconsistent")
	}

	gates := make([]*Gate[T], c.NumWires)
	for i := 0; i < c.NumWires; i++ {
		g := &Gate[T]{Type: VAL, ID: -1}
		gates[i] = g
		if i < c.NumIn1+c.NumIn2 {
			c.Inputs = append(c.Inputs, g)
		}
		if i >= c.NumWires-c.NumOut {
			c.Outputs = append(c.Outputs, g)
		}
	}

	resolve := func(id int) (*Gate[T], error) {
		if id < 0 || id >= c.NumWires {
			return nil, errors.Wrapf(internal.ErrFormat, "wire %d out of range", id)
		}
		return gates[id], nil
	}

	for i := 0; i < c.NumGates; i++ {
		var inCount, outCount int
		if _, err := fmt.Fscan(br, &inCount, &outCount); err != nil {
			return nil, errors.Wrapf(internal.ErrFormat, "gate %d: %s", i, err.Error())
		}
		if inCount != 1 && inCount != 2 {
			return nil, errors.Wrapf(internal.ErrFormat, "gate %d has %d inputs", i, inCount)
		}

		ids := make([]int, inCount+1)
		for k := range ids {
			if _, err := fmt.Fscan(br, &ids[k]); err != nil {
				return nil, errors.Wrapf(internal.ErrFormat, "gate %d: %s", i, err.Error())
			}
		}
		var typeToken string
		if _, err := fmt.Fscan(br, &typeToken); err != nil {
			return nil, errors.Wrapf(internal.ErrFormat, "gate %d: %s", i, err.Error())
		}
		typ, err := parseGateType(typeToken)
		if err != nil {
			return nil, err
		}
		if (typ == INV) != (inCount == 1) {
			return nil, errors.Wrapf(internal.ErrFormat, "gate %d: %s takes %d inputs", i, typ, inCount)
		}

		g, err := resolve(ids[inCount])
		if err != nil {
			return nil, err
		}
		g.Type = typ

		in1, err := resolve(ids[0])
		if err != nil {
			return nil, err
		}
		in1.Outs = append(in1.Outs, g)
		g.Ins = append(g.Ins, in1)

		if inCount == 2 {
			in2, err := resolve(ids[1])
			if err != nil {
				return nil, err
			}
			if in2 != in1 {
				in2.Outs = append(in2.Outs, g)
			}
			g.Ins = append(g.Ins, in2)
		}
	}

	return c, nil
}
