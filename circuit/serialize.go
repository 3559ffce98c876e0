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

// Write serializes the circuit in the textual format accepted by
// Load. Output gates are numbered first so that they occupy the top
// NumOut wire ids; inputs take 0..|inputs|-1 and the remaining gates
// are numbered as the breadth-first traversal reaches them.
func (c *Circuit[T]) Write(w io.Writer) error {
	c.Reset()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\t%d\n", c.NumGates, c.NumWires)
	fmt.Fprintf(bw, "%d\t%d\t%d\n\n", c.NumIn1, c.NumIn2, c.NumOut)

	id := int64(c.NumWires - len(c.Outputs))
	for _, g := range c.Outputs {
		g.ID = id
		id++
	}

	id = 0
	queue := make([]*Gate[T], 0, len(c.Inputs))
	for _, g := range c.Inputs {
		g.ID = id
		id++
		queue = append(queue, g.Outs...)
	}

	printed := make(map[*Gate[T]]bool)
	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]
		if g.ID == -1 {
			g.ID = id
			id++
		}
		if printed[g] {
			continue
		}
		printed[g] = true

		if g.Type == VAL {
			return errors.Wrap(internal.ErrDomain, "cannot serialize an untyped gate")
		}

		fmt.Fprintf(bw, "%d\t%d\t", len(g.Ins), 1)
		for _, in := range g.Ins {
			if in.ID == -1 {
				in.ID = id
				id++
			}
			fmt.Fprintf(bw, "%d\t", in.ID)
		}
		fmt.Fprintf(bw, "%d\t%s\n", g.ID, g.Type)

		queue = append(queue, g.Outs...)
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(internal.ErrIO, err.Error())
	}
	return nil
}
