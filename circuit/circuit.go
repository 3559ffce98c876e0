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

// Package circuit implements a Boolean circuit as a DAG of gates,
// generic over the wire value type. The same graph, loader,
// serializer and transforms serve both cleartext evaluation (int8
// wires) and homomorphic evaluation (bit-matrix wires); the evaluator
// is supplied as a strategy to Propagate.
package circuit

import (
	"github.com/pkg/errors"

	"github.com/gsw-project/gofhe/internal"
)

// GateType enumerates the supported gate kinds. VAL marks an
// input-only or not-yet-typed node.
type GateType int

const (
	AND GateType = iota
	XOR
	INV
	NAND
	VAL
)

// String returns the textual gate name used by the circuit format.
func (t GateType) String() string {
	switch t {
	case AND:
		return "AND"
	case XOR:
		return "XOR"
	case INV:
		return "INV"
	case NAND:
		return "NAND"
	}
	return "VAL"
}

func parseGateType(s string) (GateType, error) {
	switch s {
	case "AND":
		return AND, nil
	case "XOR":
		return XOR, nil
	case "INV":
		return INV, nil
	case "NAND":
		return NAND, nil
	}
	return VAL, errors.Wrapf(internal.ErrFormat, "unknown gate type %q", s)
}

// Gate is a node of the circuit DAG. Ins lists the predecessors
// feeding the gate (one for INV, two for the rest, possibly the same
// gate twice); Outs lists each distinct successor once. Val holds the
// wire value of the last evaluation and ID the wire number of the
// last serialization, -1 when unassigned.
type Gate[T any] struct {
	Type GateType
	Ins  []*Gate[T]
	Outs []*Gate[T]
	Val  T
	ID   int64
}

// Circuit is a DAG of gates together with its input and output wire
// lists and the header counters of the textual format.
//
// Invariants kept by the loader and the transforms: the graph is
// acyclic, NumWires = |inputs| + NumGates, and the output gates
// occupy the top NumOut wire numbers of any serialized form.
type Circuit[T any] struct {
	Inputs  []*Gate[T]
	Outputs []*Gate[T]

	NumGates int
	NumWires int
	NumIn1   int
	NumIn2   int
	NumOut   int
}

// Reset restores every gate reachable from the inputs to its
// unevaluated state: the zero wire value and id -1.
func (c *Circuit[T]) Reset() {
	var zero T
	seen := make(map[*Gate[T]]bool)
	queue := make([]*Gate[T], 0, len(c.Inputs))
	for _, g := range c.Inputs {
		if !seen[g] {
			seen[g] = true
			queue = append(queue, g)
		}
	}
	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]
		g.Val = zero
		g.ID = -1
		for _, out := range g.Outs {
			if !seen[out] {
				seen[out] = true
				queue = append(queue, out)
			}
		}
	}
}

// pendingIns returns the number of distinct predecessors of g. A
// doubled in-edge (INV recoded to NAND, or a gate fed the same wire
// twice) delivers only one completion signal.
func pendingIns[T any](g *Gate[T]) int {
	if len(g.Ins) == 2 && g.Ins[0] != g.Ins[1] {
		return 2
	}
	if len(g.Ins) == 0 {
		return 0
	}
	return 1
}

// topoOrder returns the non-input gates reachable from the inputs,
// ordered so that every gate appears after all of its predecessors.
func (c *Circuit[T]) topoOrder() []*Gate[T] {
	pending := make(map[*Gate[T]]int)
	order := make([]*Gate[T], 0, c.NumGates)

	queue := make([]*Gate[T], 0, len(c.Inputs))
	seeded := make(map[*Gate[T]]bool)
	for _, g := range c.Inputs {
		if !seeded[g] {
			seeded[g] = true
			queue = append(queue, g)
		}
	}
	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]
		for _, out := range g.Outs {
			if _, ok := pending[out]; !ok {
				pending[out] = pendingIns(out)
			}
			pending[out]--
			if pending[out] == 0 {
				order = append(order, out)
				queue = append(queue, out)
			}
		}
	}

	return order
}

// Depth returns the number of layers of the circuit when every gate
// is placed one layer below its deepest predecessor, the inputs being
// the first layer. The value bounds the longest NAND chain and sizes
// the parameters of a homomorphic evaluation.
func (c *Circuit[T]) Depth() int {
	level := make(map[*Gate[T]]int, len(c.Inputs)+c.NumGates)
	for _, g := range c.Inputs {
		level[g] = 0
	}
	depth := 0
	for _, g := range c.topoOrder() {
		l := 0
		for _, in := range g.Ins {
			if level[in] >= l {
				l = level[in] + 1
			}
		}
		level[g] = l
		if l > depth {
			depth = l
		}
	}

	return depth + 1
}

// OutputValues collects the wire values of the output gates after an
// evaluation.
func (c *Circuit[T]) OutputValues() []T {
	vals := make([]T, len(c.Outputs))
	for i, g := range c.Outputs {
		vals[i] = g.Val
	}

	return vals
}
