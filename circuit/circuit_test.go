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

package circuit_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gsw-project/gofhe/circuit"
	"github.com/gsw-project/gofhe/internal"
)

// xorText is a single XOR gate over two inputs.
const xorText = "1\t3\n1\t1\t1\n\n2 1 0 1 2 XOR\n"

// adderText computes AND(XOR(a, b), c): three inputs, one output,
// wires 0 1 2 in, 3 internal, 4 out.
const adderText = `2	5
2	1	1

2 1 0 1 3 XOR
2 1 3 2 4 AND
`

// fourOutText drives four outputs from two inputs:
// AND, XOR, NAND and INV(a), on wires 2..5.
const fourOutText = `4	6
1	1	4

2 1 0 1 2 AND
2 1 0 1 3 XOR
2 1 0 1 4 NAND
1 1 0 5 INV
`

func load(t *testing.T, text string) *circuit.Circuit[int8] {
	t.Helper()
	c, err := circuit.Load[int8](strings.NewReader(text))
	if err != nil {
		t.Fatalf("Error loading circuit: %v", err)
	}
	return c
}

func evalOutputs(t *testing.T, c *circuit.Circuit[int8], in []int8) []int8 {
	t.Helper()
	if err := circuit.Eval(c, in); err != nil {
		t.Fatalf("Error evaluating circuit: %v", err)
	}
	return c.OutputValues()
}

func TestLoad(t *testing.T) {
	c := load(t, adderText)

	assert.Equal(t, 2, c.NumGates)
	assert.Equal(t, 5, c.NumWires)
	assert.Equal(t, 2, c.NumIn1)
	assert.Equal(t, 1, c.NumIn2)
	assert.Equal(t, 1, c.NumOut)
	assert.Equal(t, 3, len(c.Inputs))
	assert.Equal(t, 1, len(c.Outputs))
	assert.Equal(t, circuit.AND, c.Outputs[0].Type)
	assert.Equal(t, 2, len(c.Outputs[0].Ins))
}

func TestLoad_Errors(t *testing.T) {
	_, err := circuit.Load[int8](strings.NewReader("not a circuit"))
	assert.ErrorIs(t, err, internal.ErrFormat)

	_, err = circuit.Load[int8](strings.NewReader("1\t3\n1\t1\t1\n\n2 1 0 1 2 NOR\n"))
	assert.ErrorIs(t, err, internal.ErrFormat, "unknown gate type")

	_, err = circuit.Load[int8](strings.NewReader("1\t3\n1\t1\t1\n\n2 1 0 7 2 XOR\n"))
	assert.ErrorIs(t, err, internal.ErrFormat, "wire out of range")

	_, err = circuit.Load[int8](strings.NewReader("1\t3\n1\t1\t1\n\n1 1 0 2 XOR\n"))
	assert.ErrorIs(t, err, internal.ErrFormat, "XOR takes two inputs")

	_, err = circuit.Load[int8](strings.NewReader("1\t1\n1\t1\t1\n\n2 1 0 1 2 XOR\n"))
	assert.ErrorIs(t, err, internal.ErrFormat, "inconsistent header")
}

func TestEval_XOR(t *testing.T) {
	c := load(t, xorText)

	assert.Equal(t, []int8{1}, evalOutputs(t, c, []int8{0, 1}))
	assert.Equal(t, []int8{0}, evalOutputs(t, c, []int8{1, 1}))
	assert.Equal(t, []int8{1}, evalOutputs(t, c, []int8{1, 0}))
	assert.Equal(t, []int8{0}, evalOutputs(t, c, []int8{0, 0}))
}

func TestEval_WrongArity(t *testing.T) {
	c := load(t, xorText)
	assert.ErrorIs(t, circuit.Eval(c, []int8{1}), internal.ErrDomain)
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 2, load(t, xorText).Depth(), "inputs plus one gate layer")
	assert.Equal(t, 3, load(t, adderText).Depth(), "longest path plus one")
}

func TestDepth_Reconvergent(t *testing.T) {
	// b = INV(a); o = AND(a, b): the longest path a->b->o has two
	// edges even though o is one BFS step from the input
	text := "2\t3\n1\t0\t1\n\n1 1 0 1 INV\n2 1 0 1 2 AND\n"
	c := load(t, text)
	assert.Equal(t, 3, c.Depth())
}

func TestWrite_RoundTrip(t *testing.T) {
	c := load(t, adderText)

	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		t.Fatalf("Error serializing circuit: %v", err)
	}

	c2, err := circuit.Load[int8](bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Error re-loading circuit: %v", err)
	}

	assert.Equal(t, c.NumGates, c2.NumGates)
	assert.Equal(t, c.NumWires, c2.NumWires)
	assert.Equal(t, c.NumIn1, c2.NumIn1)
	assert.Equal(t, c.NumIn2, c2.NumIn2)
	assert.Equal(t, c.NumOut, c2.NumOut)

	for a := int8(0); a < 2; a++ {
		for b := int8(0); b < 2; b++ {
			for d := int8(0); d < 2; d++ {
				in := []int8{a, b, d}
				assert.Equal(t, evalOutputs(t, c, in), evalOutputs(t, c2, in),
					"round-tripped circuit must evaluate identically on %v", in)
			}
		}
	}
}

func TestNandRecode_XOR(t *testing.T) {
	c := load(t, xorText)
	c.NandRecode()

	assert.Equal(t, 4, c.NumGates, "XOR becomes four NANDs")
	assert.Equal(t, 6, c.NumWires)

	for a := int8(0); a < 2; a++ {
		for b := int8(0); b < 2; b++ {
			got := evalOutputs(t, c, []int8{a, b})
			assert.Equal(t, []int8{a ^ b}, got, "recoded XOR on (%d, %d)", a, b)
		}
	}

	assertNandOnly(t, c)
}

func TestNandRecode_Mixed(t *testing.T) {
	c := load(t, fourOutText)
	orig := load(t, fourOutText)
	c.NandRecode()

	// AND adds one gate, XOR three, NAND and INV none
	assert.Equal(t, orig.NumGates+4, c.NumGates)
	assert.Equal(t, orig.NumWires+4, c.NumWires)

	for a := int8(0); a < 2; a++ {
		for b := int8(0); b < 2; b++ {
			in := []int8{a, b}
			assert.Equal(t, evalOutputs(t, orig, in), evalOutputs(t, c, in),
				"recoding must preserve semantics on %v", in)
		}
	}

	assertNandOnly(t, c)
}

// assertNandOnly walks the graph and checks every non-input gate is
// a NAND with exactly two in-edges.
func assertNandOnly(t *testing.T, c *circuit.Circuit[int8]) {
	t.Helper()

	seen := map[*circuit.Gate[int8]]bool{}
	queue := []*circuit.Gate[int8]{}
	for _, g := range c.Inputs {
		queue = append(queue, g.Outs...)
	}
	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]
		if seen[g] {
			continue
		}
		seen[g] = true
		assert.Equal(t, circuit.NAND, g.Type, "recoded circuit must be NAND-only")
		assert.Equal(t, 2, len(g.Ins))
		queue = append(queue, g.Outs...)
	}
}

func TestReduce(t *testing.T) {
	c := load(t, fourOutText)
	orig := load(t, fourOutText)

	// keep outputs 0 (AND) and 2 (NAND)
	mask := []bool{true, false, true, false}
	if err := c.Reduce(mask, 1); err != nil {
		t.Fatalf("Error reducing circuit: %v", err)
	}

	assert.Equal(t, 2, c.NumOut)
	assert.Equal(t, 2, c.NumGates)
	assert.Equal(t, 4, c.NumWires)
	assert.Equal(t, 1, c.NumIn1)
	assert.Equal(t, 1, c.NumIn2)

	for a := int8(0); a < 2; a++ {
		for b := int8(0); b < 2; b++ {
			in := []int8{a, b}
			want := evalOutputs(t, orig, in)
			got := evalOutputs(t, c, in)
			assert.Equal(t, []int8{want[0], want[2]}, got,
				"reduced outputs must match the kept originals on %v", in)
		}
	}
}

func TestReduce_ShortMask(t *testing.T) {
	c := load(t, fourOutText)
	assert.ErrorIs(t, c.Reduce([]bool{true}, 1), internal.ErrDomain)
}

func TestReduce_ThenWrite(t *testing.T) {
	c := load(t, fourOutText)
	assert.NoError(t, c.Reduce([]bool{false, true, false, false}, 1))

	var buf bytes.Buffer
	assert.NoError(t, c.Write(&buf))

	c2, err := circuit.Load[int8](bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, 1, c2.NumOut)

	for a := int8(0); a < 2; a++ {
		for b := int8(0); b < 2; b++ {
			assert.Equal(t, []int8{a ^ b}, evalOutputs(t, c2, []int8{a, b}))
		}
	}
}
