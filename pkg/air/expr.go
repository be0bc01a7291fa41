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

	"github.com/consensys/go-zkvm/pkg/util/collection/array"
	"github.com/consensys/go-zkvm/pkg/util/field"
)

// Expr represents an expression in the Arithmetic Intermediate Representation
// (AIR), generic over the underlying field.  Any expression in this form can
// be lowered into a polynomial over the trace columns.  Expr satisfies
// Scalar[Expr[F]], making it the symbolic counterpart of a field element.
type Expr[F field.Element[F]] interface {
	// Add two expressions together, producing a third.
	Add(y Expr[F]) Expr[F]
	// Subtract one expression from another.
	Sub(y Expr[F]) Expr[F]
	// Multiply two expressions together, producing a third.
	Mul(y Expr[F]) Expr[F]
	// SetUint64 returns the constant expression for the given value.
	SetUint64(val uint64) Expr[F]
	// EvalAt evaluates this expression against a concrete register
	// assignment.
	EvalAt(row []F) F
	// String returns a lisp-style rendering of this expression.
	String() string
}

// ============================================================================
// Addition
// ============================================================================

// Add represents the sum over zero or more expressions.
type Add[F field.Element[F]] struct{ Args []Expr[F] }

// Sum zero or more expressions together.
func Sum[F field.Element[F]](terms ...Expr[F]) Expr[F] {
	// Flatten any nested sums
	terms = array.Flatten(terms, flattenAdd[F])
	// Remove any zeros
	terms = array.RemoveMatching(terms, isZero[F])
	// Final simplifications
	switch len(terms) {
	case 0:
		return Const[F](0)
	case 1:
		return terms[0]
	default:
		return &Add[F]{terms}
	}
}

// Add two expressions together, producing a third.
func (p *Add[F]) Add(other Expr[F]) Expr[F] { return Sum[F](p, other) }

// Sub (subtract) one expression from another.
func (p *Add[F]) Sub(other Expr[F]) Expr[F] { return Subtract[F](p, other) }

// Mul (multiply) two expressions together, producing a third.
func (p *Add[F]) Mul(other Expr[F]) Expr[F] { return Product[F](p, other) }

// SetUint64 returns the constant expression for the given value.
func (p *Add[F]) SetUint64(val uint64) Expr[F] { return Const[F](val) }

// EvalAt implementation for the Expr interface.
func (p *Add[F]) EvalAt(row []F) F {
	// Evaluate first argument
	val := p.Args[0].EvalAt(row)
	// Continue evaluating the rest
	for i := 1; i < len(p.Args); i++ {
		val = val.Add(p.Args[i].EvalAt(row))
	}
	// Done
	return val
}

func (p *Add[F]) String() string { return naryString("+", p.Args) }

// ============================================================================
// Subtraction
// ============================================================================

// Sub represents the subtraction of zero or more expressions from the first.
type Sub[F field.Element[F]] struct{ Args []Expr[F] }

// Subtract zero or more expressions from a given expression.
func Subtract[F field.Element[F]](head Expr[F], tail ...Expr[F]) Expr[F] {
	// Remove any zeros
	tail = array.RemoveMatching(tail, isZero[F])
	//
	if len(tail) == 0 {
		return head
	}
	//
	return &Sub[F]{append([]Expr[F]{head}, tail...)}
}

// Add two expressions together, producing a third.
func (p *Sub[F]) Add(other Expr[F]) Expr[F] { return Sum[F](p, other) }

// Sub (subtract) one expression from another.
func (p *Sub[F]) Sub(other Expr[F]) Expr[F] { return Subtract[F](p, other) }

// Mul (multiply) two expressions together, producing a third.
func (p *Sub[F]) Mul(other Expr[F]) Expr[F] { return Product[F](p, other) }

// SetUint64 returns the constant expression for the given value.
func (p *Sub[F]) SetUint64(val uint64) Expr[F] { return Const[F](val) }

// EvalAt implementation for the Expr interface.
func (p *Sub[F]) EvalAt(row []F) F {
	// Evaluate first argument
	val := p.Args[0].EvalAt(row)
	// Continue evaluating the rest
	for i := 1; i < len(p.Args); i++ {
		val = val.Sub(p.Args[i].EvalAt(row))
	}
	// Done
	return val
}

func (p *Sub[F]) String() string { return naryString("-", p.Args) }

// ============================================================================
// Multiplication
// ============================================================================

// Mul represents the product over zero or more expressions.
type Mul[F field.Element[F]] struct{ Args []Expr[F] }

// Product of zero or more expressions.
func Product[F field.Element[F]](terms ...Expr[F]) Expr[F] {
	// Flatten any nested products
	terms = array.Flatten(terms, flattenMul[F])
	// Remove any ones
	terms = array.RemoveMatching(terms, isOne[F])
	// Short-circuit on zero
	for _, term := range terms {
		if isZero(term) {
			return Const[F](0)
		}
	}
	// Final simplifications
	switch len(terms) {
	case 0:
		return Const[F](1)
	case 1:
		return terms[0]
	default:
		return &Mul[F]{terms}
	}
}

// Add two expressions together, producing a third.
func (p *Mul[F]) Add(other Expr[F]) Expr[F] { return Sum[F](p, other) }

// Sub (subtract) one expression from another.
func (p *Mul[F]) Sub(other Expr[F]) Expr[F] { return Subtract[F](p, other) }

// Mul (multiply) two expressions together, producing a third.
func (p *Mul[F]) Mul(other Expr[F]) Expr[F] { return Product[F](p, other) }

// SetUint64 returns the constant expression for the given value.
func (p *Mul[F]) SetUint64(val uint64) Expr[F] { return Const[F](val) }

// EvalAt implementation for the Expr interface.
func (p *Mul[F]) EvalAt(row []F) F {
	// Evaluate first argument
	val := p.Args[0].EvalAt(row)
	// Continue evaluating the rest
	for i := 1; i < len(p.Args); i++ {
		// Can short-circuit evaluation?
		if val.IsZero() {
			break
		}
		//
		val = val.Mul(p.Args[i].EvalAt(row))
	}
	// Done
	return val
}

func (p *Mul[F]) String() string { return naryString("*", p.Args) }

// ============================================================================
// Constant
// ============================================================================

// Constant represents a constant value within an expression.
type Constant[F field.Element[F]] struct{ Value F }

// Const constructs the constant expression for a given uint64.
func Const[F field.Element[F]](val uint64) Expr[F] {
	return &Constant[F]{field.Uint64[F](val)}
}

// NewConstant constructs the constant expression for a given field element.
func NewConstant[F field.Element[F]](value F) Expr[F] {
	return &Constant[F]{value}
}

// Add two expressions together, producing a third.
func (p *Constant[F]) Add(other Expr[F]) Expr[F] { return Sum[F](p, other) }

// Sub (subtract) one expression from another.
func (p *Constant[F]) Sub(other Expr[F]) Expr[F] { return Subtract[F](p, other) }

// Mul (multiply) two expressions together, producing a third.
func (p *Constant[F]) Mul(other Expr[F]) Expr[F] { return Product[F](p, other) }

// SetUint64 returns the constant expression for the given value.
func (p *Constant[F]) SetUint64(val uint64) Expr[F] { return Const[F](val) }

// EvalAt implementation for the Expr interface.
func (p *Constant[F]) EvalAt(row []F) F { return p.Value }

func (p *Constant[F]) String() string { return p.Value.String() }

// ============================================================================
// ColumnAccess
// ============================================================================

// ColumnAccess represents reading the value of a given trace column on the
// current row.
type ColumnAccess[F field.Element[F]] struct{ Column uint }

// NewColumnAccess constructs an access of the given column.
func NewColumnAccess[F field.Element[F]](column uint) Expr[F] {
	return &ColumnAccess[F]{column}
}

// Add two expressions together, producing a third.
func (p *ColumnAccess[F]) Add(other Expr[F]) Expr[F] { return Sum[F](p, other) }

// Sub (subtract) one expression from another.
func (p *ColumnAccess[F]) Sub(other Expr[F]) Expr[F] { return Subtract[F](p, other) }

// Mul (multiply) two expressions together, producing a third.
func (p *ColumnAccess[F]) Mul(other Expr[F]) Expr[F] { return Product[F](p, other) }

// SetUint64 returns the constant expression for the given value.
func (p *ColumnAccess[F]) SetUint64(val uint64) Expr[F] { return Const[F](val) }

// EvalAt implementation for the Expr interface.
func (p *ColumnAccess[F]) EvalAt(row []F) F { return row[p.Column] }

func (p *ColumnAccess[F]) String() string { return fmt.Sprintf("r%d", p.Column) }

// ============================================================================
// Helpers
// ============================================================================

func isZero[F field.Element[F]](term Expr[F]) bool {
	c, ok := term.(*Constant[F])
	//
	return ok && c.Value.IsZero()
}

func isOne[F field.Element[F]](term Expr[F]) bool {
	c, ok := term.(*Constant[F])
	//
	return ok && c.Value.IsOne()
}

func flattenAdd[F field.Element[F]](term Expr[F]) []Expr[F] {
	if t, ok := term.(*Add[F]); ok {
		return t.Args
	}
	//
	return nil
}

func flattenMul[F field.Element[F]](term Expr[F]) []Expr[F] {
	if t, ok := term.(*Mul[F]); ok {
		return t.Args
	}
	//
	return nil
}

func naryString[F field.Element[F]](operator string, exprs []Expr[F]) string {
	var rs string
	//
	for _, e := range exprs {
		rs = fmt.Sprintf("%s %s", rs, e.String())
	}
	//
	return fmt.Sprintf("(%s%s)", operator, rs)
}
