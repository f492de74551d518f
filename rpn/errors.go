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

package rpn

import "fmt"

// UnknownOperatorError is raised when postfix evaluation meets a token that
// is neither a number nor one of the four supported operators
type UnknownOperatorError struct {
	Operator string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("UnknownOperator: %q is not a supported operator", e.Operator)
}

// DivisionByZeroError is reported when right operand of division is zero
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string {
	return "DivisionByZero"
}

// MalformedExpressionError is reported when an expression can not be
// reduced to exactly one value
type MalformedExpressionError struct {
	Msg string
}

func (e *MalformedExpressionError) Error() string {
	return "MalformedExpression: " + e.Msg
}
