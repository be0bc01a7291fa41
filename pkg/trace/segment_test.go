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
package trace

import (
	"testing"

	"github.com/consensys/go-zkvm/pkg/bytes"
	"github.com/consensys/go-zkvm/pkg/util/assert"
)

func TestSegmentCounting(t *testing.T) {
	segment := NewSegment()
	//
	segment.AddByteRangeChecks(1, 2)
	segment.AddByteRangeChecks(1, 2)
	segment.AddByteRangeChecks(3, 4)
	//
	assert.Equal(t, uint(2), segment.Count(bytes.RangeCheck(1, 2)))
	assert.Equal(t, uint(1), segment.Count(bytes.RangeCheck(3, 4)))
	assert.Equal(t, uint(0), segment.Count(bytes.RangeCheck(5, 6)))
	assert.Equal(t, 2, len(segment.Events()))
}

func TestSegmentMerge(t *testing.T) {
	var (
		left  = NewSegment()
		right = NewSegment()
	)
	//
	left.AddByteRangeChecks(1, 2)
	right.AddByteRangeChecks(1, 2)
	right.AddByteRangeChecks(3, 4)
	//
	left.Merge(right)
	//
	assert.Equal(t, uint(2), left.Count(bytes.RangeCheck(1, 2)))
	assert.Equal(t, uint(1), left.Count(bytes.RangeCheck(3, 4)))
}

// Events are reported in a deterministic order, regardless of insertion
// order.
func TestSegmentEventOrder(t *testing.T) {
	segment := NewSegment()
	//
	segment.AddByteRangeChecks(9, 9)
	segment.AddByteRangeChecks(1, 2)
	segment.AddByteRangeChecks(1, 1)
	//
	events := segment.Events()
	//
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i-1].Cmp(events[i]) < 0)
	}
}

func TestSegmentPopulateRows(t *testing.T) {
	const n = 1000
	//
	segment := NewSegment()
	//
	err := segment.PopulateRows(n, func(row int, shard *Segment) error {
		shard.AddByteRangeChecks(uint8(row%7), uint8(row%5))
		return nil
	})
	//
	assert.Equal(t, nil, err)
	// All n events must have landed, partitioned across at most 35
	// distinct pairs.
	var total uint
	for _, count := range segment.Counts() {
		total += count
	}
	//
	assert.Equal(t, uint(n), total)
	// Spot check one pair: rows where row%7 == 0 and row%5 == 0.
	assert.Equal(t, uint(n/35+1), segment.Count(bytes.RangeCheck(0, 0)))
}

func TestSegmentPopulateRowsEmpty(t *testing.T) {
	segment := NewSegment()
	//
	err := segment.PopulateRows(0, func(int, *Segment) error {
		t.Fatal("populator called for empty trace")
		return nil
	})
	//
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(segment.Events()))
}
