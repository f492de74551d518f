/*
Copyright © 2024 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package types

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/ccx-calculator/types

// CliFlags represents structure holding all command line arguments/flags.
type CliFlags struct {
	ShowVersion       bool
	ShowAuthors       bool
	ShowConfiguration bool
	Verbose           bool
	Expression        string
}

// Operator represents one of binary arithmetic operators
type Operator byte

// All supported operators
const (
	OperatorAdd      Operator = '+'
	OperatorSubtract Operator = '-'
	OperatorMultiply Operator = '*'
	OperatorDivide   Operator = '/'
)

// IsValid checks whether the operator is one of the supported ones
func (o Operator) IsValid() bool {
	switch o {
	case OperatorAdd, OperatorSubtract, OperatorMultiply, OperatorDivide:
		return true
	}
	return false
}

// Event represents one symbol event emitted by an input source. The set of
// events is closed, only types from this file implement it.
type Event interface {
	// String returns keypad label of the event
	String() string
	event()
}

// DeleteEvent removes the last symbol from the expression
type DeleteEvent struct{}

// ClearEvent resets the whole expression
type ClearEvent struct{}

// DigitEvent appends one decimal digit. Value is in range '0'..'9'.
type DigitEvent struct {
	Value byte
}

// PointEvent appends decimal point
type PointEvent struct{}

// OperatorEvent appends binary operator or unary minus
type OperatorEvent struct {
	Operator Operator
}

// OpenBracketEvent appends opening bracket
type OpenBracketEvent struct{}

// CloseBracketEvent appends closing bracket
type CloseBracketEvent struct{}

// EqualsEvent evaluates the expression
type EqualsEvent struct{}

func (DeleteEvent) event() {}
func (ClearEvent) event() {}
func (DigitEvent) event() {}
func (PointEvent) event() {}
func (OperatorEvent) event() {}
func (OpenBracketEvent) event() {}
func (CloseBracketEvent) event() {}
func (EqualsEvent) event() {}

func (DeleteEvent) String() string { return "Del" }
func (ClearEvent) String() string { return "C" }
func (e DigitEvent) String() string { return string(rune(e.Value)) }
func (PointEvent) String() string { return "." }
func (e OperatorEvent) String() string { return string(rune(e.Operator)) }
func (OpenBracketEvent) String() string { return "(" }
func (CloseBracketEvent) String() string { return ")" }
func (EqualsEvent) String() string { return "=" }
