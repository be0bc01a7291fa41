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
package bytes

import (
	"testing"

	"github.com/consensys/go-zkvm/pkg/util/assert"
)

func TestEventOrdering(t *testing.T) {
	assert.Equal(t, 0, RangeCheck(1, 2).Cmp(RangeCheck(1, 2)))
	assert.True(t, RangeCheck(1, 2).Cmp(RangeCheck(1, 3)) < 0)
	assert.True(t, RangeCheck(2, 0).Cmp(RangeCheck(1, 255)) > 0)
	// opcode dominates operands
	and := Event{Opcode: And, B: 0, C: 0}
	assert.True(t, and.Cmp(RangeCheck(0, 0)) < 0)
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "range(0, 0, 7, 255)", RangeCheck(7, 255).String())
	assert.Equal(t, "range", Range.String())
	assert.Equal(t, "and", And.String())
}
