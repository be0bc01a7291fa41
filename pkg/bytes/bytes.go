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

// Package bytes defines the vocabulary of the shared byte lookup table: the
// opcodes identifying which relation a query targets, and the events recording
// individual queries against it.
package bytes

import (
	"cmp"
	"fmt"
)

// Opcode identifies which relation of the shared byte table a lookup targets.
type Opcode uint8

const (
	// And is the bitwise conjunction of two bytes.
	And Opcode = iota
	// Or is the bitwise disjunction of two bytes.
	Or
	// Xor is the bitwise exclusive disjunction of two bytes.
	Xor
	// Range asserts that a pair of values are both bytes.  Unlike the
	// bitwise relations, it has no outputs.
	Range
)

func (op Opcode) String() string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	case Range:
		return "range"
	default:
		return fmt.Sprintf("opcode(%d)", uint8(op))
	}
}

// Event records one query against the byte table.  Every query has the same
// shape: an opcode, two output slots and two input slots.  Queries which need
// fewer slots leave the rest at zero.
type Event struct {
	// Opcode of the table relation queried.
	Opcode Opcode
	// A1 and A2 are the output slots (unused for range checks).
	A1, A2 uint8
	// B and C are the input slots.
	B, C uint8
}

// RangeCheck constructs the event declaring that b and c are both bytes.
func RangeCheck(b, c uint8) Event {
	return Event{Opcode: Range, B: b, C: c}
}

// Cmp provides a total ordering of events, allowing deterministic iteration
// over an event multiset.
func (e Event) Cmp(other Event) int {
	if c := cmp.Compare(e.Opcode, other.Opcode); c != 0 {
		return c
	}

	if c := cmp.Compare(e.A1, other.A1); c != 0 {
		return c
	}

	if c := cmp.Compare(e.A2, other.A2); c != 0 {
		return c
	}

	if c := cmp.Compare(e.B, other.B); c != 0 {
		return c
	}

	return cmp.Compare(e.C, other.C)
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d, %d, %d, %d)", e.Opcode, e.A1, e.A2, e.B, e.C)
}
