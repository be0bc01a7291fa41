// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package operations

import (
	"math/rand/v2"
	"testing"

	"github.com/consensys/go-zkvm/pkg/air"
	"github.com/consensys/go-zkvm/pkg/bytes"
	"github.com/consensys/go-zkvm/pkg/trace"
	"github.com/consensys/go-zkvm/pkg/util/field"
	"github.com/consensys/go-zkvm/pkg/util/field/bls12_377"
	"github.com/consensys/go-zkvm/pkg/util/field/koalabear"
	"github.com/stretchr/testify/require"
)

// Default field for the tests below.
type F = bls12_377.Element

// Column layout of one addition row, as the tests lay it out.
const (
	colA      = 0
	colB      = colA + air.WordSize
	colValue  = colB + air.WordSize
	colCarry  = colValue + air.WordSize
	colIsReal = colCarry + 3
	numCols   = colIsReal + 1
)

type addTestCase struct {
	name    string
	a, b    uint32
	sum     uint32
	carries [3]uint64
}

var addTestCases = []addTestCase{
	{"zero_plus_zero", 0, 0, 0, [3]uint64{0, 0, 0}},
	{"no_carry", 1, 2, 3, [3]uint64{0, 0, 0}},
	{"low_limb_carry", 255, 1, 256, [3]uint64{1, 0, 0}},
	{"low_limb_carry_2", 100, 200, 300, [3]uint64{1, 0, 0}},
	{"cascade_carry", 4294967295, 1, 0, [3]uint64{1, 1, 1}},
	{"wraparound", 4000000000, 1000000000, 705032704, [3]uint64{0, 0, 1}},
	{"mid_limb_carry", 0xFF00, 0x0100, 0x10000, [3]uint64{0, 1, 0}},
	{"top_limb_discard", 0x80000000, 0x80000000, 0, [3]uint64{0, 0, 0}},
}

func TestAddPopulate(t *testing.T) {
	for _, tc := range addTestCases {
		t.Run(tc.name, func(t *testing.T) {
			var (
				segment = trace.NewSegment()
				cols    AddOperation[F]
			)
			//
			sum := cols.Populate(segment, tc.a, tc.b)
			require.Equal(t, tc.sum, sum)
			require.Equal(t, tc.sum, air.WordToUint32(cols.Value))
			//
			for i, expected := range tc.carries {
				require.Equal(t, expected, cols.Carry[i].Uint64(), "carry %d", i)
			}
		})
	}
}

func TestAddPopulateRandom(t *testing.T) {
	for range 1000 {
		var (
			a       = rand.Uint32()
			b       = rand.Uint32()
			segment = trace.NewSegment()
			cols    AddOperation[F]
		)
		//
		sum := cols.Populate(segment, a, b)
		require.Equal(t, a+b, sum, "%d + %d", a, b)
		require.Equal(t, a+b, air.WordToUint32(cols.Value), "%d + %d", a, b)
	}
}

// Reconstructing the sum limb by limb from the recorded carries must give the
// wrapped sum back.
func TestAddCarryReconstruction(t *testing.T) {
	for range 1000 {
		var (
			a       = rand.Uint32()
			b       = rand.Uint32()
			segment = trace.NewSegment()
			cols    AddOperation[F]
		)
		//
		sum := cols.Populate(segment, a, b)
		//
		var (
			carryIn uint64
			value   uint32
		)
		//
		for i := range air.WordSize {
			limbSum := uint64(a>>(8*i)&0xff) + uint64(b>>(8*i)&0xff) + carryIn
			value |= uint32(limbSum%256) << (8 * i)
			carryIn = limbSum / 256
			//
			if i < 3 {
				require.Equal(t, carryIn, cols.Carry[i].Uint64(), "carry %d of %d + %d", i, a, b)
			}
		}
		//
		require.Equal(t, sum, value, "%d + %d", a, b)
	}
}

func TestAddConstraintSatisfaction(t *testing.T) {
	schema := buildAdditionSchema[F]()
	//
	for _, tc := range addTestCases {
		t.Run(tc.name, func(t *testing.T) {
			row := populateRow[F](t, tc.a, tc.b)
			require.Nil(t, schema.Accepts(row))
		})
	}
}

func TestAddConstraintSatisfactionRandom(t *testing.T) {
	schema := buildAdditionSchema[F]()
	//
	for range 200 {
		a, b := rand.Uint32(), rand.Uint32()
		row := populateRow[F](t, a, b)
		require.Nil(t, schema.Accepts(row), "%d + %d", a, b)
	}
}

// The constraints must also hold over a small field.
func TestAddConstraintSatisfactionKoalabear(t *testing.T) {
	schema := buildAdditionSchema[koalabear.Element]()
	//
	for _, tc := range addTestCases {
		row := populateRow[koalabear.Element](t, tc.a, tc.b)
		require.Nil(t, schema.Accepts(row), tc.name)
	}
}

func TestAddSoundnessCorruptedCarry(t *testing.T) {
	schema := buildAdditionSchema[F]()
	// 255 + 1 carries out of the low limb; flip the carry off.
	row := populateRow[F](t, 255, 1)
	row[colCarry] = field.Zero[F]()
	require.NotNil(t, schema.Accepts(row))
	// 1 + 2 has no carry; force one on.
	row = populateRow[F](t, 1, 2)
	row[colCarry] = field.One[F]()
	require.NotNil(t, schema.Accepts(row))
	// A non-boolean carry must also be rejected.
	row = populateRow[F](t, 255, 1)
	row[colCarry] = field.Uint64[F](2)
	require.NotNil(t, schema.Accepts(row))
}

func TestAddSoundnessCorruptedValue(t *testing.T) {
	schema := buildAdditionSchema[F]()
	//
	for limb := range air.WordSize {
		row := populateRow[F](t, 100, 200)
		row[colValue+limb] = row[colValue+limb].Add(field.One[F]())
		require.NotNil(t, schema.Accepts(row), "corrupted limb %d", limb)
	}
}

// With the activation flag at zero, arbitrary column values impose no
// requirement.
func TestAddInactiveRowNeutrality(t *testing.T) {
	schema := buildAdditionSchema[F]()
	//
	for range 100 {
		row := make([]F, numCols)
		for i := range row {
			row[i] = field.Uint64[F](rand.Uint64())
		}
		//
		row[colIsReal] = field.Zero[F]()
		require.Nil(t, schema.Accepts(row))
	}
}

// Every one of the 12 limb bytes must be range checked exactly once, as 6
// pairs in a fixed order, and the constraint pass must demand exactly what
// the witness pass recorded.
func TestAddRangeCheckCompleteness(t *testing.T) {
	var (
		a    uint32 = 0x04030201
		b    uint32 = 0x40302010
		cols AddOperation[F]
	)
	//
	segment := trace.NewSegment()
	sum := cols.Populate(segment, a, b)
	require.Equal(t, uint32(0x44332211), sum)
	// Fixed pair order: operand a, operand b, then the sum.
	expected := []bytes.Event{
		bytes.RangeCheck(0x01, 0x02),
		bytes.RangeCheck(0x03, 0x04),
		bytes.RangeCheck(0x10, 0x20),
		bytes.RangeCheck(0x30, 0x40),
		bytes.RangeCheck(0x11, 0x22),
		bytes.RangeCheck(0x33, 0x44),
	}
	//
	for _, event := range expected {
		require.Equal(t, uint(1), segment.Count(event), "%s", event)
	}
	//
	require.Len(t, segment.Events(), len(expected))
	// The constraint pass emits the same pairs, in the same order, with
	// multiplicity one on an active row.
	schema := buildAdditionSchema[F]()
	row := populateRow[F](t, a, b)
	lookups := schema.Lookups()
	require.Len(t, lookups, len(expected))
	//
	for i, lookup := range lookups {
		require.Equal(t, bytes.Range, lookup.Opcode)
		require.Equal(t, uint64(expected[i].B), lookup.B.EvalAt(row).Uint64(), "pair %d", i)
		require.Equal(t, uint64(expected[i].C), lookup.C.EvalAt(row).Uint64(), "pair %d", i)
		require.True(t, lookup.Multiplicity.EvalAt(row).IsOne())
	}
	//
	require.Equal(t, segment.Counts(), schema.LookupCounts(row))
}

// buildAdditionSchema assembles the addition circuit over the test layout.
func buildAdditionSchema[E field.Element[E]]() *air.ConstraintSet[E] {
	schema := air.NewConstraintSet[E]()
	//
	EvalAdd(schema,
		air.WordOfColumns[E](colA),
		air.WordOfColumns[E](colB),
		AddOperation[air.Expr[E]]{
			Value: air.WordOfColumns[E](colValue),
			Carry: [3]air.Expr[E]{
				air.NewColumnAccess[E](colCarry),
				air.NewColumnAccess[E](colCarry + 1),
				air.NewColumnAccess[E](colCarry + 2),
			},
		},
		air.NewColumnAccess[E](colIsReal),
	)
	//
	return schema
}

// populateRow populates a fresh witness row for a + b and lays it out as a
// full (active) register assignment.
func populateRow[E field.Element[E]](t *testing.T, a, b uint32) []E {
	t.Helper()
	//
	var (
		segment = trace.NewSegment()
		cols    AddOperation[E]
		row     = make([]E, numCols)
		aWord   = air.WordFromUint32[E](a)
		bWord   = air.WordFromUint32[E](b)
	)
	//
	cols.Populate(segment, a, b)
	//
	for i := range air.WordSize {
		row[colA+i] = aWord[i]
		row[colB+i] = bWord[i]
		row[colValue+i] = cols.Value[i]
	}
	//
	for i, carry := range cols.Carry {
		row[colCarry+i] = carry
	}
	//
	row[colIsReal] = field.One[E]()
	//
	return row
}
