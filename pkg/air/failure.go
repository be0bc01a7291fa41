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

	"github.com/consensys/go-zkvm/pkg/util/field"
)

// Failure provides structural information about a failing constraint.
type Failure interface {
	// Message provides a suitable error message.
	Message() string
	//
	String() string
}

// VanishingFailure reports a zero assertion which did not vanish on some row.
type VanishingFailure[F field.Element[F]] struct {
	// Handle of the failing constraint.
	Handle string
	// Constraint expression which did not vanish.
	Constraint string
	// Value the constraint evaluated to.
	Value F
}

// Message provides a suitable error message
func (p *VanishingFailure[F]) Message() string {
	return fmt.Sprintf("constraint \"%s\" does not vanish: %s = %s", p.Handle, p.Constraint, p.Value.String())
}

func (p *VanishingFailure[F]) String() string {
	return p.Message()
}
