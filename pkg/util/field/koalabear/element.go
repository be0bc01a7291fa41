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
package koalabear

import (
	"cmp"
	"math/big"
	"strconv"
)

// Modulus of the KoalaBear field, 2³¹ - 2²⁴ + 1.
const Modulus uint32 = 2130706433

// Element of the KoalaBear field, represented in Montgomery form (R = 2³²) to
// speed up multiplications.  Defined as an array to prevent mistaken use of
// arithmetic operators, or naive assignments.
type Element [1]uint32

// negModulusInvModR is -Modulus⁻¹ (mod 2³²), needed for Montgomery reduction.
var negModulusInvModR uint32

// one is the field element 1 in Montgomery form.
var one Element

func init() {
	m := big.NewInt(int64(Modulus))
	m.ModInverse(m, big.NewInt(1<<32))
	//
	negModulusInvModR = uint32(1<<32 - m.Uint64())
	one = Element{}.SetUint64(1)
}

// Add x + y
func (x Element) Add(y Element) Element {
	res := Element{x[0] + y[0]}
	if res[0] >= Modulus {
		res[0] -= Modulus
	}

	return res
}

// Sub x - y
func (x Element) Sub(y Element) Element {
	const negMask uint32 = 1 << 31

	res := Element{x[0] - y[0]}
	if res[0]&negMask != 0 {
		res[0] += Modulus
	}

	return res
}

// Mul x * y
func (x Element) Mul(y Element) Element {
	return montgomeryReduce(uint64(x[0]) * uint64(y[0]))
}

// Cmp compares the numerical values of x and y.
func (x Element) Cmp(y Element) int {
	return cmp.Compare(x.Uint64(), y.Uint64())
}

// IsZero implementation for the Element interface
func (x Element) IsZero() bool {
	return x[0] == 0
}

// IsOne implementation for the Element interface
func (x Element) IsOne() bool {
	return x == one
}

// SetUint64 implementation for the Element interface.
func (x Element) SetUint64(val uint64) Element {
	reduced := uint64(uint32(val % uint64(Modulus)))
	// Shift into Montgomery form
	return Element{uint32(reduced << 32 % uint64(Modulus))}
}

// Uint64 returns the numerical (non-Montgomery) value of x.
func (x Element) Uint64() uint64 {
	return uint64(montgomeryReduce(uint64(x[0]))[0])
}

func (x Element) String() string {
	return strconv.FormatUint(x.Uint64(), 10)
}

// montgomeryReduce x -> x.R⁻¹ (mod m)
func montgomeryReduce(x uint64) Element {
	// textbook Montgomery reduction
	const R = 1 << 32
	m := (x * uint64(negModulusInvModR)) % R // m = x * (-modulus⁻¹) (mod R)

	res := Element{uint32((x + m*uint64(Modulus)) / R)}

	if res[0] >= Modulus {
		res[0] -= Modulus
	}

	return res
}
