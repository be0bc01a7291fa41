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
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/consensys/go-zkvm/pkg/air"
	"github.com/consensys/go-zkvm/pkg/bytes"
	"github.com/consensys/go-zkvm/pkg/operations"
	"github.com/consensys/go-zkvm/pkg/trace"
	"github.com/consensys/go-zkvm/pkg/util/field"
	"github.com/consensys/go-zkvm/pkg/util/field/bls12_377"
	"github.com/consensys/go-zkvm/pkg/util/field/koalabear"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Column layout of one addition row.
const (
	colA      = 0
	colB      = colA + air.WordSize
	colValue  = colB + air.WordSize
	colCarry  = colValue + air.WordSize
	colIsReal = colCarry + 3
	numCols   = colIsReal + 1
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] sum(s)",
	Short: "check additions against the addition circuit.",
	Long: `Populate one witness row per given sum (e.g. "100+200"), assemble the
	 addition circuit's AIR, and check that every row satisfies every constraint
	 and that the byte-table accounting of the two passes agrees.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		if len(args) == 0 {
			fmt.Println("no sums given")
			os.Exit(2)
		}
		// Parse sums
		pairs := make([][2]uint32, len(args))
		for i, arg := range args {
			pair, err := parseSum(arg)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			pairs[i] = pair
		}
		// Dispatch on field
		var err error
		//
		switch name := GetString(cmd, "field"); name {
		case "bls12-377":
			err = runCheck[bls12_377.Element](pairs)
		case "koalabear":
			err = runCheck[koalabear.Element](pairs)
		default:
			fmt.Printf("unknown field \"%s\"\n", name)
			os.Exit(2)
		}
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// runCheck populates one row per pair, then checks every row against the
// addition circuit and reconciles the byte-table accounting between the
// witness pass and the constraint pass.
func runCheck[F field.Element[F]](pairs [][2]uint32) error {
	var (
		schema  = air.NewConstraintSet[F]()
		segment = trace.NewSegment()
		rows    = make([][]F, len(pairs))
	)
	// Assemble the addition circuit over the column layout.
	operations.EvalAdd(schema,
		air.WordOfColumns[F](colA),
		air.WordOfColumns[F](colB),
		operations.AddOperation[air.Expr[F]]{
			Value: air.WordOfColumns[F](colValue),
			Carry: [3]air.Expr[F]{
				air.NewColumnAccess[F](colCarry),
				air.NewColumnAccess[F](colCarry + 1),
				air.NewColumnAccess[F](colCarry + 2),
			},
		},
		air.NewColumnAccess[F](colIsReal),
	)
	// Populate one witness row per sum, in parallel.
	err := segment.PopulateRows(len(pairs), func(row int, shard *trace.Segment) error {
		var cols operations.AddOperation[F]
		//
		sum := cols.Populate(shard, pairs[row][0], pairs[row][1])
		rows[row] = rowOf(cols, pairs[row][0], pairs[row][1])
		//
		log.Debugf("row %d: %d + %d = %d (mod 2^32)", row, pairs[row][0], pairs[row][1], sum)
		//
		return nil
	})
	//
	if err != nil {
		return err
	}
	// Check every row, accumulating the byte-table demand.
	required := make(map[bytes.Event]uint)
	//
	for i, row := range rows {
		if failure := schema.Accepts(row); failure != nil {
			return fmt.Errorf("row %d: %s", i, failure.Message())
		}
		//
		for event, count := range schema.LookupCounts(row) {
			required[event] += count
		}
	}
	// The witness pass must have recorded exactly what the constraints
	// demand.
	recorded := segment.Counts()
	//
	for event, count := range required {
		if recorded[event] != count {
			return fmt.Errorf("byte table: %s demanded %d times but recorded %d", event, count, recorded[event])
		}
	}
	//
	for event, count := range recorded {
		if required[event] != count {
			return fmt.Errorf("byte table: %s recorded %d times but demanded %d", event, count, required[event])
		}
	}
	//
	log.Infof("checked %d additions (%d distinct byte-table events)", len(rows), len(recorded))
	//
	return nil
}

// rowOf lays out the full register assignment of one active addition row.
func rowOf[F field.Element[F]](cols operations.AddOperation[F], a, b uint32) []F {
	var (
		row   = make([]F, numCols)
		aWord = air.WordFromUint32[F](a)
		bWord = air.WordFromUint32[F](b)
	)
	//
	for i := range air.WordSize {
		row[colA+i] = aWord[i]
		row[colB+i] = bWord[i]
		row[colValue+i] = cols.Value[i]
	}
	//
	for i, carry := range cols.Carry {
		row[colCarry+i] = carry
	}
	//
	row[colIsReal] = field.One[F]()
	//
	return row
}

func parseSum(arg string) ([2]uint32, error) {
	parts := strings.Split(arg, "+")
	if len(parts) != 2 {
		return [2]uint32{}, fmt.Errorf("malformed sum \"%s\" (expected a+b)", arg)
	}
	//
	a, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 0, 32)
	if err != nil {
		return [2]uint32{}, err
	}
	//
	b, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 0, 32)
	if err != nil {
		return [2]uint32{}, err
	}
	//
	return [2]uint32{uint32(a), uint32(b)}, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
