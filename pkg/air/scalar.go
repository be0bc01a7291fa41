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

// Scalar captures the arithmetic shared by the two representations a trace
// column can hold: concrete field elements (witness generation) and symbolic
// expressions (constraint generation).  Anything laid out over Scalar, such
// as a Word, can be instantiated for either side without duplication.
type Scalar[T any] interface {
	// Add x + y
	Add(y T) T
	// Compute x - y
	Sub(y T) T
	// Compute x * y
	Mul(y T) T
	// SetUint64 returns the scalar representing the given value.
	SetUint64(val uint64) T
}
