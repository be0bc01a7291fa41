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

// Package operations provides the per-instruction column layouts of the
// machine's ALU, together with their witness populators and constraint
// evaluators.  Each operation is arithmetised twice over the same layout:
// once concretely (witness generation) and once symbolically (constraint
// generation), and the two must agree on every row.
package operations

import (
	"encoding/binary"

	"github.com/consensys/go-zkvm/internal/debug"
	"github.com/consensys/go-zkvm/pkg/air"
	"github.com/consensys/go-zkvm/pkg/bytes"
	"github.com/consensys/go-zkvm/pkg/trace"
	"github.com/consensys/go-zkvm/pkg/util/field"
)

// base is the radix of the limb decomposition.
const base = 256

// AddOperation is the set of columns needed to prove the addition of two
// machine words: the wrapped sum plus one carry bit per inter-limb boundary.
// An instance is fresh per row and written exactly once, during witness
// generation.
type AddOperation[T air.Scalar[T]] struct {
	// Value holds the little-endian limbs of a + b (mod 2³²).
	Value air.Word[T]
	// Carry holds the carry bit out of each of the three lowest limbs.  The
	// carry out of the top limb is never materialised: discarding it is what
	// makes the addition wrap.
	Carry [3]T
}

// Populate assigns the witness columns for a + b (mod 2³²), records every
// limb of a, b and the sum for byte range checking, and returns the wrapped
// sum.  Addition never fails: every pair of 32-bit values is valid, and
// overflow is defined wraparound.
func (p *AddOperation[T]) Populate(segment *trace.Segment, a, b uint32) uint32 {
	var (
		expected = a + b
		aBytes   = leBytes(a)
		bBytes   = leBytes(b)
		sumBytes = leBytes(expected)
	)
	//
	for i := range p.Value {
		p.Value[i] = p.Value[i].SetUint64(uint64(sumBytes[i]))
	}
	//
	var carry [3]uint32
	//
	if uint32(aBytes[0])+uint32(bBytes[0]) > base-1 {
		carry[0] = 1
		p.Carry[0] = p.Carry[0].SetUint64(1)
	}

	if uint32(aBytes[1])+uint32(bBytes[1])+carry[0] > base-1 {
		carry[1] = 1
		p.Carry[1] = p.Carry[1].SetUint64(1)
	}

	if uint32(aBytes[2])+uint32(bBytes[2])+carry[1] > base-1 {
		carry[2] = 1
		p.Carry[2] = p.Carry[2].SetUint64(1)
	}
	// The low-limb overflow must be exactly 0 or the base.  Anything else
	// indicates a defect in the decomposition above, not bad input.
	overflow := uint32(aBytes[0]) + uint32(bBytes[0]) - uint32(sumBytes[0])
	debug.Assert(overflow*(overflow-base) == 0, "add witness: low-limb overflow neither 0 nor 256")
	// Register every limb for range checking, two bytes per event.
	limbs := make([]uint8, 0, 3*air.WordSize)
	limbs = append(limbs, aBytes[:]...)
	limbs = append(limbs, bBytes[:]...)
	limbs = append(limbs, sumBytes[:]...)
	//
	for i := 0; i < len(limbs); i += 2 {
		segment.AddByteRangeChecks(limbs[i], limbs[i+1])
	}
	//
	return expected
}

// EvalAdd emits the constraints forcing cols to be a valid addition witness
// for a + b, all guarded by isReal so that padding rows impose no
// requirement.  For each limb, the difference between the carried and
// non-carried result must be either zero or the base, the carry bit must
// match which of the two it is, and every limb must pass a byte range check.
func EvalAdd[F field.Element[F]](builder air.Builder[F], a, b air.Word[air.Expr[F]],
	cols AddOperation[air.Expr[F]], isReal air.Expr[F]) {
	//
	var (
		one      = air.Const[F](1)
		radix    = air.Const[F](base)
		whenReal = builder.When(isReal)
	)
	// For each limb, the difference between the carried result and the
	// non-carried result is either zero or the base.
	overflow := [air.WordSize]air.Expr[F]{
		a[0].Add(b[0]).Sub(cols.Value[0]),
		a[1].Add(b[1]).Sub(cols.Value[1]).Add(cols.Carry[0]),
		a[2].Add(b[2]).Sub(cols.Value[2]).Add(cols.Carry[1]),
		a[3].Add(b[3]).Sub(cols.Value[3]).Add(cols.Carry[2]),
	}
	//
	for i := range overflow {
		whenReal.AssertZero(overflow[i].Mul(overflow[i].Sub(radix)))
	}
	// Tie each carry bit to its limb's overflow.  Both directions are
	// needed: with only the quadratic constraint above, a witness could
	// report carry = 0 against an overflow of the base (or vice versa) and
	// still pass.
	for i, carry := range cols.Carry {
		// If the carry is one, the overflow must be the base.
		whenReal.AssertZero(carry.Mul(overflow[i].Sub(radix)))
		// If the carry is not one, the overflow must be zero.
		whenReal.AssertZero(carry.Sub(one).Mul(overflow[i]))
		// The carry is either zero or one.
		whenReal.AssertBool(carry)
	}
	//
	whenReal.AssertBool(isReal)
	// Range check each limb, two per query, in the same order Populate
	// records them.  Multiplicity is the activation flag itself, so
	// inactive rows contribute nothing to the table's accounting.
	var (
		zero  = field.Zero[F]()
		limbs = make([]air.Expr[F], 0, 3*air.WordSize)
	)
	//
	limbs = append(limbs, a[:]...)
	limbs = append(limbs, b[:]...)
	limbs = append(limbs, cols.Value[:]...)
	//
	for i := 0; i < len(limbs); i += 2 {
		builder.SendBytePair(bytes.Range, zero, zero, limbs[i], limbs[i+1], isReal)
	}
	// Degree-3 identity required by the proving backend's minimum
	// constraint degree.  It carries no logical content.
	builder.AssertZero(a[0].Mul(b[0]).Mul(cols.Value[0]).Sub(a[0].Mul(b[0]).Mul(cols.Value[0])))
}

func leBytes(value uint32) [air.WordSize]uint8 {
	var bs [air.WordSize]uint8
	//
	binary.LittleEndian.PutUint32(bs[:], value)
	//
	return bs
}
