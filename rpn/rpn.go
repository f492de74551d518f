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

// Package rpn converts infix arithmetic expressions into postfix form
// (Reverse Polish Notation) using the shunting-yard algorithm and evaluates
// them. Supported are decimal numbers, binary operators + - * /, unary minus
// and round brackets.
package rpn

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/ccx-calculator/rpn

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/ccx-calculator/stack"
)

// NaN is the value returned by Calculate for expressions that can not be
// evaluated, for example due to division by zero
var NaN = math.NaN()

// separator placed between tokens in textual postfix form
const separator = " "

// negation marks unary minus on the operator stack. It binds tighter than
// any binary operator and is emitted as subtraction from 0.
const negation = '~'

// Postfix converts a balanced infix expression into textual postfix form,
// tokens are separated by one space.
func Postfix(infix string) (string, error) {
	tokens, err := toPostfix(infix)
	if err != nil {
		return "", err
	}
	return strings.Join(tokens, separator), nil
}

// Calculate evaluates a balanced infix expression. NaN is returned when the
// expression contains division by zero or is malformed.
func Calculate(infix string) float64 {
	result, err := Evaluate(infix)
	if err != nil {
		log.Debug().Str("expression", infix).Err(err).Msg("Expression can not be evaluated")
		return NaN
	}
	return result
}

// Evaluate evaluates a balanced infix expression and returns its value or
// the reason why it could not be computed.
func Evaluate(infix string) (float64, error) {
	tokens, err := toPostfix(infix)
	if err != nil {
		return NaN, err
	}

	log.Debug().
		Str("infix", infix).
		Str("postfix", strings.Join(tokens, separator)).
		Msg("Converted to postfix")

	return evaluatePostfix(tokens)
}

// EvaluatePostfix evaluates an expression already converted into textual
// postfix form.
func EvaluatePostfix(postfix string) (float64, error) {
	return evaluatePostfix(strings.Fields(postfix))
}

// toPostfix is an implementation of the shunting-yard algorithm
func toPostfix(infix string) ([]string, error) {
	output := []string{}
	operators := stack.New[byte]()

	for i := 0; i < len(infix); i++ {
		symbol := infix[i]

		switch {
		case isNumeric(symbol):
			end := scanNumber(infix, i)
			output = append(output, infix[i:end])
			i = end - 1

		case symbol == '(':
			operators.Push(symbol)

		case symbol == ')':
			for !operators.IsEmpty() && operators.Peek() != '(' {
				output = append(output, operatorToken(operators.Pop()))
			}
			if operators.IsEmpty() {
				return nil, &MalformedExpressionError{Msg: "unmatched closing bracket"}
			}
			// the opening bracket is not part of the output
			operators.Pop()

		case symbol == '-' && isUnaryMinus(infix, i):
			if i+1 < len(infix) && isNumeric(infix[i+1]) {
				// sign is glued to the number
				end := scanNumber(infix, i+1)
				output = append(output, infix[i:end])
				i = end - 1
				continue
			}
			// negation of bracketed expression is computed as 0-(...),
			// prefix operator does not pop anything
			output = append(output, "0")
			operators.Push(negation)

		default:
			output = pushOperator(operators, symbol, output)
		}
	}

	for !operators.IsEmpty() {
		operator := operators.Pop()
		if operator == '(' {
			return nil, &MalformedExpressionError{Msg: "unmatched opening bracket"}
		}
		output = append(output, operatorToken(operator))
	}

	return output, nil
}

// pushOperator moves operators with the same or higher priority into the
// output and then stores the new operator on the stack. All operators are
// left associative.
func pushOperator(operators *stack.Stack[byte], operator byte, output []string) []string {
	for !operators.IsEmpty() && priority(operators.Peek()) >= priority(operator) {
		output = append(output, operatorToken(operators.Pop()))
	}
	operators.Push(operator)
	return output
}

// operatorToken returns postfix form of stacked operator
func operatorToken(operator byte) string {
	if operator == negation {
		return "-"
	}
	return string(rune(operator))
}

func evaluatePostfix(tokens []string) (float64, error) {
	values := stack.New[float64]()

	for _, token := range tokens {
		if isNumberToken(token) {
			value, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return NaN, &MalformedExpressionError{Msg: "bad number " + token}
			}
			values.Push(value)
			continue
		}

		if values.Size() < 2 {
			return NaN, &MalformedExpressionError{Msg: "missing operand for " + token}
		}

		// right operand has been pushed last
		right := values.Pop()
		left := values.Pop()

		result, err := applyOperator(token, left, right)
		if err != nil {
			return NaN, err
		}
		values.Push(result)
	}

	if values.Size() != 1 {
		return NaN, &MalformedExpressionError{
			Msg: "expression reduced to " + strconv.Itoa(values.Size()) + " values",
		}
	}

	return values.Pop(), nil
}

func applyOperator(operator string, left, right float64) (float64, error) {
	switch operator {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return NaN, &DivisionByZeroError{}
		}
		return left / right, nil
	default:
		// only the four operators above can get into postfix form
		panic(&UnknownOperatorError{Operator: operator})
	}
}

// priority returns 1 for + and -, 2 for * and /, 3 for negation and -1 for
// anything else (including the opening bracket)
func priority(operator byte) int {
	switch operator {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	case negation:
		return 3
	default:
		return -1
	}
}

// isUnaryMinus checks whether minus at given position is a sign and not
// binary subtraction
func isUnaryMinus(infix string, position int) bool {
	if position == 0 {
		return true
	}
	previous := infix[position-1]
	return !isDigit(previous) && previous != ')'
}

// scanNumber returns index just after the number literal starting at given
// position
func scanNumber(infix string, start int) int {
	end := start
	for end < len(infix) && isNumeric(infix[end]) {
		end++
	}
	return end
}

// isNumberToken checks whether postfix token is a number literal, possibly
// with glued sign
func isNumberToken(token string) bool {
	if len(token) > 1 && token[0] == '-' {
		return isNumeric(token[1])
	}
	return token != "" && isNumeric(token[0])
}

func isDigit(symbol byte) bool {
	return symbol >= '0' && symbol <= '9'
}

func isNumeric(symbol byte) bool {
	return isDigit(symbol) || symbol == '.'
}
