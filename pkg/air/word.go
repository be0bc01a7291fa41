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
	"github.com/consensys/go-zkvm/pkg/util/field"
)

// WordSize is the number of byte limbs making up a machine word.
const WordSize = 4

// Word is the 4-limb little-endian decomposition of a 32-bit machine word.
// Each limb lives in its own trace column, which keeps every limb eligible
// for byte range checking.  A Word does not enforce that its limbs are bytes;
// that is the job of the byte table lookups.
type Word[T Scalar[T]] [WordSize]T

// WordFromUint32 decomposes a 32-bit value into its little-endian limbs.
func WordFromUint32[F field.Element[F]](value uint32) Word[F] {
	var word Word[F]
	//
	for i := range word {
		word[i] = field.Uint64[F](uint64(value >> (8 * i) & 0xff))
	}
	//
	return word
}

// WordToUint32 recomposes the 32-bit value held by a word of concrete limbs.
// Limbs are assumed to be in byte range.
func WordToUint32[F field.Element[F]](word Word[F]) uint32 {
	var value uint32
	//
	for i := range word {
		value |= uint32(word[i].Uint64()) << (8 * i)
	}
	//
	return value
}

// WordOfColumns constructs the symbolic word whose limbs are accesses of
// consecutive columns starting at the given one.
func WordOfColumns[F field.Element[F]](first uint) Word[Expr[F]] {
	var word Word[Expr[F]]
	//
	for i := range word {
		word[i] = NewColumnAccess[F](first + uint(i))
	}
	//
	return word
}
