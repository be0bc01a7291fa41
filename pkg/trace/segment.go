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

// Package trace provides the execution segment: the trace-wide accumulator
// which witness generation records byte-table events into.  The segment owns
// the required-count accounting for the shared byte lookup table.
package trace

import (
	"runtime"
	"slices"
	"sync"

	"github.com/consensys/go-zkvm/pkg/bytes"
	"golang.org/x/sync/errgroup"
)

// Segment accumulates the byte-table events demanded by every row populated
// into it.  Events form a multiset: recording the same event twice means the
// table must account for it twice.  A segment is safe for concurrent append,
// so rows can be populated in parallel; alternatively, use one shard per
// worker and Merge.
type Segment struct {
	mu          sync.Mutex
	byteLookups map[bytes.Event]uint
}

// NewSegment constructs an empty segment.
func NewSegment() *Segment {
	return &Segment{byteLookups: make(map[bytes.Event]uint)}
}

// AddByteLookupEvent records one byte-table event.
func (p *Segment) AddByteLookupEvent(event bytes.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	p.byteLookups[event]++
}

// AddByteRangeChecks records that the given pair of values must both appear
// in the byte range table.  Checking two bytes per event amortises one table
// query across both.
func (p *Segment) AddByteRangeChecks(b, c uint8) {
	p.AddByteLookupEvent(bytes.RangeCheck(b, c))
}

// Count returns how many times the given event has been recorded.
func (p *Segment) Count(event bytes.Event) uint {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	return p.byteLookups[event]
}

// Counts returns a snapshot of the full event multiset.
func (p *Segment) Counts() map[bytes.Event]uint {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	counts := make(map[bytes.Event]uint, len(p.byteLookups))
	for event, count := range p.byteLookups {
		counts[event] = count
	}
	//
	return counts
}

// Events returns the distinct recorded events in a deterministic order.
func (p *Segment) Events() []bytes.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	events := make([]bytes.Event, 0, len(p.byteLookups))
	for event := range p.byteLookups {
		events = append(events, event)
	}
	//
	slices.SortFunc(events, bytes.Event.Cmp)
	//
	return events
}

// Merge folds all events recorded in another segment into this one.
func (p *Segment) Merge(other *Segment) {
	counts := other.Counts()
	//
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	for event, count := range counts {
		p.byteLookups[event] += count
	}
}

// PopulateRows runs the given populator for every row index in [0, n),
// spreading rows across workers.  Each worker records into its own shard
// segment, and the shards are merged into this segment once all workers have
// finished.  Rows are mutually independent, so no ordering is imposed among
// them.
func (p *Segment) PopulateRows(n int, populate func(row int, segment *Segment) error) error {
	if n == 0 {
		return nil
	}
	//
	var (
		group    errgroup.Group
		nworkers = min(runtime.NumCPU(), n)
		shards   = make([]*Segment, nworkers)
	)
	//
	for w := range nworkers {
		var (
			shard = NewSegment()
			first = w
		)
		//
		shards[w] = shard
		//
		group.Go(func() error {
			for row := first; row < n; row += nworkers {
				if err := populate(row, shard); err != nil {
					return err
				}
			}
			//
			return nil
		})
	}
	//
	if err := group.Wait(); err != nil {
		return err
	}
	//
	for _, shard := range shards {
		p.Merge(shard)
	}
	//
	return nil
}
