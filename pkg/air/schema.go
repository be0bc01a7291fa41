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
package air

import (
	"fmt"

	"github.com/consensys/go-zkvm/pkg/bytes"
	"github.com/consensys/go-zkvm/pkg/util/field"
)

// Constraint pairs a zero assertion with a handle identifying it in failure
// reports.
type Constraint[F field.Element[F]] struct {
	// Handle identifying this constraint.
	Handle string
	// Term asserted to vanish on every row.
	Term Expr[F]
}

// ByteLookup is one recorded byte-table query: the fixed four-slot tuple,
// plus a multiplicity expression determining how many times a given row
// demands the tuple.
type ByteLookup[F field.Element[F]] struct {
	// Opcode of the table relation queried.
	Opcode bytes.Opcode
	// Aux1 and Aux2 fill the output slots (zero for range checks).
	Aux1, Aux2 F
	// B and C are the queried values.
	B, C Expr[F]
	// Multiplicity of the query.
	Multiplicity Expr[F]
}

// ConstraintSet is a concrete Builder which accumulates every emitted
// assertion and byte lookup, and can subsequently check them against concrete
// rows.  It is the reference discharge mechanism for this repository; a
// proving backend would instead lower the same constraints into committed
// polynomials.
type ConstraintSet[F field.Element[F]] struct {
	constraints []Constraint[F]
	lookups     []ByteLookup[F]
}

// NewConstraintSet constructs an empty constraint set.
func NewConstraintSet[F field.Element[F]]() *ConstraintSet[F] {
	return &ConstraintSet[F]{}
}

// AssertZero implementation for the Builder interface.
func (p *ConstraintSet[F]) AssertZero(e Expr[F]) {
	handle := fmt.Sprintf("c%d", len(p.constraints))
	p.constraints = append(p.constraints, Constraint[F]{handle, e})
}

// AssertBool implementation for the Builder interface.
func (p *ConstraintSet[F]) AssertBool(e Expr[F]) {
	p.AssertZero(e.Mul(e.Sub(Const[F](1))))
}

// When implementation for the Builder interface.
func (p *ConstraintSet[F]) When(condition Expr[F]) Builder[F] {
	return &filtered[F]{p, condition}
}

// SendBytePair implementation for the Builder interface.
func (p *ConstraintSet[F]) SendBytePair(op bytes.Opcode, aux1, aux2 F, b, c Expr[F], multiplicity Expr[F]) {
	p.lookups = append(p.lookups, ByteLookup[F]{op, aux1, aux2, b, c, multiplicity})
}

// Constraints returns the accumulated zero assertions.
func (p *ConstraintSet[F]) Constraints() []Constraint[F] {
	return p.constraints
}

// Lookups returns the accumulated byte-table queries, in emission order.
func (p *ConstraintSet[F]) Lookups() []ByteLookup[F] {
	return p.lookups
}

// Accepts checks whether every assertion vanishes on the given row, returning
// a failure for the first one which does not (or nil otherwise).
func (p *ConstraintSet[F]) Accepts(row []F) Failure {
	for _, c := range p.constraints {
		if val := c.Term.EvalAt(row); !val.IsZero() {
			return &VanishingFailure[F]{c.Handle, c.Term.String(), val}
		}
	}
	//
	return nil
}

// LookupCounts evaluates every byte lookup at the given row and returns the
// multiset of events the row demands from the shared byte table.  Lookups
// whose multiplicity vanishes on the row contribute nothing.
func (p *ConstraintSet[F]) LookupCounts(row []F) map[bytes.Event]uint {
	counts := make(map[bytes.Event]uint)
	//
	for _, l := range p.lookups {
		multiplicity := l.Multiplicity.EvalAt(row)
		if multiplicity.IsZero() {
			continue
		}
		//
		event := bytes.Event{
			Opcode: l.Opcode,
			A1:     uint8(l.Aux1.Uint64()),
			A2:     uint8(l.Aux2.Uint64()),
			B:      uint8(l.B.EvalAt(row).Uint64()),
			C:      uint8(l.C.EvalAt(row).Uint64()),
		}
		counts[event] += uint(multiplicity.Uint64())
	}
	//
	return counts
}
