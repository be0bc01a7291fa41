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
	"github.com/consensys/go-zkvm/pkg/bytes"
	"github.com/consensys/go-zkvm/pkg/util/field"
)

// Builder is the constraint-emission surface offered to operation circuits.
// Operations construct expressions over their columns and hand them to the
// builder; they never inspect or discharge constraints themselves.
type Builder[F field.Element[F]] interface {
	// AssertZero asserts that the given expression vanishes on every row.
	AssertZero(e Expr[F])
	// AssertBool asserts that the given expression is 0 or 1 on every row.
	AssertBool(e Expr[F])
	// When returns a builder which multiplies every emitted assertion (and
	// every lookup multiplicity) by the given condition, so that rows where
	// the condition is zero impose no requirement.
	When(condition Expr[F]) Builder[F]
	// SendBytePair emits one query of a byte-table relation, covering two
	// values at once.  The aux slots carry the relation's outputs and are
	// zero for range checks.  A row contributes the query multiplicity
	// times; a zero multiplicity contributes nothing.
	SendBytePair(op bytes.Opcode, aux1, aux2 F, b, c Expr[F], multiplicity Expr[F])
}

// filtered wraps a builder such that every assertion passing through it is
// multiplied by a fixed condition first.  This is the guarded-constraint
// idiom: the wrapped assertion is unconditionally well-formed, but only
// meaningful on rows where the condition is non-zero.
type filtered[F field.Element[F]] struct {
	parent    Builder[F]
	condition Expr[F]
}

// AssertZero implementation for the Builder interface.
func (p *filtered[F]) AssertZero(e Expr[F]) {
	p.parent.AssertZero(p.condition.Mul(e))
}

// AssertBool implementation for the Builder interface.
func (p *filtered[F]) AssertBool(e Expr[F]) {
	p.AssertZero(e.Mul(e.Sub(Const[F](1))))
}

// When implementation for the Builder interface.  Nested conditions compose
// multiplicatively.
func (p *filtered[F]) When(condition Expr[F]) Builder[F] {
	return &filtered[F]{p, condition}
}

// SendBytePair implementation for the Builder interface.
func (p *filtered[F]) SendBytePair(op bytes.Opcode, aux1, aux2 F, b, c Expr[F], multiplicity Expr[F]) {
	p.parent.SendBytePair(op, aux1, aux2, b, c, p.condition.Mul(multiplicity))
}
