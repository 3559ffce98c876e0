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

// Reduce tree-shakes the circuit, keeping only gates that feed an
// output whose mask bit is set. Dead inputs and outputs are dropped
// from the top-level lists and the header counters recomputed; in1
// caps the number of surviving inputs counted as the first operand.
func (c *Circuit[T]) Reduce(mask []bool, in1 int) error {
	if len(mask) < len(c.Outputs) {
		return errors.Wrapf(internal.ErrDomain,
			"mask of %d bits for %d outputs", len(mask), len(c.Outputs))
	}

	c.Reset()

	alive := make(map[*Gate[T]]bool)
	queue := []*Gate[T]{}
	for i, g := range c.Outputs {
		if mask[i] {
			alive[g] = true
			queue = append(queue, g.Ins...)
		}
	}
	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]
		if alive[g] {
			continue
		}
		alive[g] = true
		queue = append(queue, g.Ins...)
	}

	for g := range alive {
		outs := g.Outs[:0]
		for _, out := range g.Outs {
			if alive[out] {
				outs = append(outs, out)
			}
		}
		g.Outs = outs
	}

	inputs := c.Inputs[:0]
	for _, g := range c.Inputs {
		if alive[g] {
			inputs = append(inputs, g)
		}
	}
	c.Inputs = inputs

	outputs := c.Outputs[:0]
	for _, g := range c.Outputs {
		if alive[g] {
			outputs = append(outputs, g)
		}
	}
	c.Outputs = outputs

	c.NumOut = len(c.Outputs)
	c.NumIn1 = in1
	if len(c.Inputs) < in1 {
		c.NumIn1 = len(c.Inputs)
	}
	c.NumIn2 = len(c.Inputs) - c.NumIn1
	c.NumGates = len(alive) - len(c.Inputs)
	c.NumWires = len(alive)

	return nil
}

// edgePatch is an out-edge addition deferred until the NandRecode
// traversal has finished, so rewrites never grow a predecessor's
// successor list under the feet of the in-flight walk.
type edgePatch[T any] struct {
	pred *Gate[T]
	succ *Gate[T]
}

// NandRecode rewrites every AND, XOR and INV gate into an equivalent
// NAND-only subgraph, preserving the circuit's inputs, outputs and
// semantics.
func (c *Circuit[T]) NandRecode() {
	var patches []edgePatch[T]

	queue := []*Gate[T]{}
	for _, g := range c.Inputs {
		queue = append(queue, g.Outs...)
	}
	visited := make(map[*Gate[T]]bool)
	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]
		if visited[g] {
			continue
		}
		visited[g] = true

		added := 0
		switch g.Type {
		case AND:
			added = c.andToNand(g)
		case XOR:
			added = c.xorToNand(g, &patches)
		case INV:
			added = c.invToNand(g)
		}
		c.NumWires += added
		c.NumGates += added

		queue = append(queue, g.Outs...)
	}

	for _, p := range patches {
		p.pred.Outs = append(p.pred.Outs, p.succ)
	}
}

// andToNand rewrites g = AND(a, b) into NAND(h, h) with a fresh
// h = NAND(a, b) taking over g's in-edges.
func (c *Circuit[T]) andToNand(g *Gate[T]) int {
	h := &Gate[T]{Type: NAND, ID: -1}
	h.Ins = g.Ins
	h.Outs = []*Gate[T]{g}
	replaceSuccessor(g, h)

	g.Type = NAND
	g.Ins = []*Gate[T]{h, h}

	return 1
}

// invToNand rewrites g = INV(a) into NAND(a, a) by doubling the
// single in-edge in place.
func (c *Circuit[T]) invToNand(g *Gate[T]) int {
	g.Type = NAND
	g.Ins = append(g.Ins, g.Ins[0])

	return 0
}

// xorToNand rewrites g = XOR(a, b) into the four-NAND network
// NAND(NAND(a, s), NAND(b, s)) with s = NAND(a, b). The new
// out-edges a->g1 and b->g2 are recorded as patches and applied
// after the traversal.
func (c *Circuit[T]) xorToNand(g *Gate[T], patches *[]edgePatch[T]) int {
	start := &Gate[T]{Type: NAND, ID: -1}
	g1 := &Gate[T]{Type: NAND, ID: -1}
	g2 := &Gate[T]{Type: NAND, ID: -1}

	a, b := g.Ins[0], g.Ins[1]

	start.Ins = g.Ins
	start.Outs = []*Gate[T]{g1, g2}
	replaceSuccessor(g, start)

	g1.Ins = []*Gate[T]{a, start}
	g1.Outs = []*Gate[T]{g}
	g2.Ins = []*Gate[T]{b, start}
	g2.Outs = []*Gate[T]{g}

	*patches = append(*patches, edgePatch[T]{a, g1}, edgePatch[T]{b, g2})

	g.Type = NAND
	g.Ins = []*Gate[T]{g1, g2}

	return 3
}

// replaceSuccessor rewires every out-edge of old's predecessors that
// points at old to point at repl instead.
func replaceSuccessor[T any](old, repl *Gate[T]) {
	for _, in := range old.Ins {
		for i, out := range in.Outs {
			if out == old {
				in.Outs[i] = repl
			}
		}
	}
}
