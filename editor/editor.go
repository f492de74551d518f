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

// Package editor contains the expression editing state machine. The editor
// consumes symbol events, keeps the infix expression syntactically valid,
// evaluates it on request and reports every change to a display.
package editor

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/ccx-calculator/editor

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/ccx-calculator/conf"
	"github.com/RedHatInsights/ccx-calculator/rpn"
	"github.com/RedHatInsights/ccx-calculator/stack"
	"github.com/RedHatInsights/ccx-calculator/types"
)

// NaNToken is shown instead of result of expression that can not be
// evaluated. Any following event clears it.
const NaNToken = "NaN"

// noSymbol is returned by lastSymbol for empty buffer, it does not match
// any symbol handled by the editor
const noSymbol = '&'

const operators = "+-*/"

// Messages
const (
	sessionKey   = "session"
	eventKey     = "event"
	bufferKey    = "buffer"
	eventHandled = "Event handled"
	editRejected = "Edit rejected"
)

// Display represents any sink that renders current expression or result.
// The text is opaque and has to be rendered verbatim.
type Display interface {
	Render(text string)
}

// Memory holds result of the last evaluation together with the trailing
// operation that produced it. Empty strings mean that nothing is stored.
type Memory struct {
	LastAnswer    string
	LastOperation string
}

// Session is the state of one edited expression. It is always replaced as
// a whole on clear and on evaluation.
type Session struct {
	buffer     string
	brackets   *stack.Stack[byte]
	pointFlags *stack.Stack[bool]
}

// newSession returns a session with empty expression
func newSession(capacity int) Session {
	session := Session{
		buffer:     "",
		brackets:   stack.NewWithCapacity[byte](capacity),
		pointFlags: stack.NewWithCapacity[bool](capacity),
	}
	session.pointFlags.Push(false)
	return session
}

// sessionFromResult returns a session whose expression is the formatted
// result of previous evaluation, so the user can continue editing it. A
// leading minus sign owns its own number slot, same as unary minus typed by
// the user.
func sessionFromResult(result string, capacity int) Session {
	session := Session{
		buffer:     result,
		brackets:   stack.NewWithCapacity[byte](capacity),
		pointFlags: stack.NewWithCapacity[bool](capacity),
	}
	if strings.HasPrefix(result, "-") {
		session.pointFlags.Push(false)
	}
	session.pointFlags.Push(strings.Contains(result, "."))
	return session
}

// Editor is the expression editing state machine. It is not safe for
// concurrent use, events have to be handled one after another.
type Editor struct {
	id            uuid.UUID
	display       Display
	session       Session
	memory        Memory
	capacity      int
	repeatEnabled bool
}

// New constructs an editor that reports to the given display
func New(display Display, configuration conf.EditorConfiguration) *Editor {
	capacity := configuration.StackCapacity
	if capacity < stack.MinimalCapacity {
		capacity = stack.DefaultCapacity
	}

	editor := &Editor{
		id:            uuid.New(),
		display:       display,
		capacity:      capacity,
		repeatEnabled: !configuration.DisableRepeat,
	}
	editor.session = newSession(capacity)

	log.Debug().Str(sessionKey, editor.id.String()).Msg("New editing session")
	return editor
}

// ID returns identifier of the editing session used in logs
func (e *Editor) ID() uuid.UUID {
	return e.id
}

// Buffer returns the current expression
func (e *Editor) Buffer() string {
	return e.session.buffer
}

// OpenBrackets returns the number of brackets that are not closed yet
func (e *Editor) OpenBrackets() int {
	return e.session.brackets.Size()
}

// PointFlags returns one flag per number slot, the last one belongs to the
// number being typed
func (e *Editor) PointFlags() []bool {
	return e.session.pointFlags.Items()
}

// Memory returns the last answer and the last operation
func (e *Editor) Memory() Memory {
	return e.memory
}

// Handle processes one event. The display is notified about the new
// expression after every event except Equals that has nothing to evaluate.
func (e *Editor) Handle(event types.Event) {
	EventsHandled.Inc()

	if e.session.buffer == NaNToken {
		AutoResets.Inc()
		e.reset()
	}

	var accepted bool

	switch ev := event.(type) {
	case types.DeleteEvent:
		accepted = e.deleteLastSymbol()
	case types.ClearEvent:
		e.reset()
		accepted = true
	case types.DigitEvent:
		accepted = e.handleDigit(ev.Value)
	case types.PointEvent:
		accepted = e.handlePoint()
	case types.OperatorEvent:
		accepted = e.handleOperator(ev.Operator)
	case types.OpenBracketEvent:
		accepted = e.handleOpenBracket()
	case types.CloseBracketEvent:
		accepted = e.handleCloseBracket()
	case types.EqualsEvent:
		e.calculateAndUpdate()
		return
	default:
		log.Error().Str(sessionKey, e.id.String()).Msgf("Unsupported event %T", event)
		return
	}

	if accepted {
		log.Debug().
			Str(sessionKey, e.id.String()).
			Str(eventKey, event.String()).
			Str(bufferKey, e.session.buffer).
			Msg(eventHandled)
	} else {
		EditsRejected.Inc()
		log.Debug().
			Str(sessionKey, e.id.String()).
			Str(eventKey, event.String()).
			Str(bufferKey, e.session.buffer).
			Msg(editRejected)
	}

	e.display.Render(e.session.buffer)
}

// reset replaces the whole session by an empty one
func (e *Editor) reset() {
	e.session = newSession(e.capacity)
}

func (e *Editor) lastSymbol() byte {
	return symbolAt(e.session.buffer, len(e.session.buffer)-1)
}

func (e *Editor) appendText(text string) {
	e.session.buffer += text
}

// deleteLastSymbol removes the last symbol and rolls back the bookkeeping
// the symbol caused
func (e *Editor) deleteLastSymbol() bool {
	if e.session.buffer == "" {
		return false
	}

	switch last := e.lastSymbol(); {
	case isOperator(last):
		e.session.pointFlags.Pop()
	case last == '(':
		e.session.brackets.Pop()
	case last == ')':
		e.session.brackets.Push('(')
	case last == '.':
		e.setPointFlag(false)
	}

	e.session.buffer = e.session.buffer[:len(e.session.buffer)-1]
	return true
}

func (e *Editor) handleDigit(digit byte) bool {
	if !isDigit(digit) {
		return false
	}

	switch {
	case e.lastSymbol() == ')':
		// number right after closed bracket means multiplication
		e.appendText("*" + string(rune(digit)))
		e.session.pointFlags.Push(false)
	case e.session.buffer == "0" && digit == '0':
		// second leading zero is absorbed
		return false
	default:
		e.appendText(string(rune(digit)))
	}
	return true
}

func (e *Editor) handleOperator(operator types.Operator) bool {
	if !operator.IsValid() {
		return false
	}
	symbol := string(rune(operator))
	last := e.lastSymbol()

	switch {
	case e.session.buffer == "" && operator == types.OperatorSubtract:
		// leading unary minus
		e.appendText(symbol)
	case isOperator(last):
		// the trailing operator is replaced, unary minus can only be
		// replaced by another minus
		beforeLast := symbolAt(e.session.buffer, len(e.session.buffer)-2)
		if !isDigit(beforeLast) && beforeLast != ')' && operator != types.OperatorSubtract {
			return false
		}
		e.deleteLastSymbol()
		e.appendText(symbol)
	case last == '(' && operator == types.OperatorSubtract:
		e.appendText(symbol)
	case isDigit(last) || last == ')':
		e.appendText(symbol)
	default:
		return false
	}

	// new number slot starts after the operator
	e.session.pointFlags.Push(false)
	return true
}

func (e *Editor) handleOpenBracket() bool {
	switch last := e.lastSymbol(); {
	case isDigit(last) || last == ')':
		e.appendText("*(")
		e.session.brackets.Push('(')
		e.session.pointFlags.Push(false)
	case last != '.':
		e.appendText("(")
		e.session.brackets.Push('(')
	default:
		return false
	}
	return true
}

func (e *Editor) handleCloseBracket() bool {
	last := e.lastSymbol()
	if !isDigit(last) && last != ')' {
		return false
	}
	if e.session.brackets.IsEmpty() {
		return false
	}
	e.appendText(")")
	e.session.brackets.Pop()
	return true
}

func (e *Editor) handlePoint() bool {
	if e.session.pointFlags.Peek() {
		// at most one decimal point per number
		return false
	}

	switch last := e.lastSymbol(); {
	case e.session.buffer == "" || strings.IndexByte("("+operators, last) != -1:
		e.appendText("0.")
	case isDigit(last):
		e.appendText(".")
	default:
		// fraction can not follow closed bracket
		return false
	}
	e.setPointFlag(true)
	return true
}

func (e *Editor) setPointFlag(value bool) {
	e.session.pointFlags.Pop()
	e.session.pointFlags.Push(value)
}

// closeAllBrackets appends closing bracket for every unmatched opening one
func (e *Editor) closeAllBrackets() {
	for !e.session.brackets.IsEmpty() {
		e.session.brackets.Pop()
		e.appendText(")")
	}
}

// calculateAndUpdate implements the Equals event
func (e *Editor) calculateAndUpdate() {
	e.closeAllBrackets()

	// pressing Equals on unchanged result repeats the last operation, a
	// negative result already contains an operator and is evaluated as is
	if e.repeatEnabled && e.memory.LastAnswer != "" &&
		e.session.buffer == e.memory.LastAnswer && !needsEvaluation(e.session.buffer) {
		e.appendText(e.memory.LastOperation)
	}

	expression := e.session.buffer
	if !needsEvaluation(expression) {
		log.Debug().
			Str(sessionKey, e.id.String()).
			Str(bufferKey, expression).
			Msg("Nothing to evaluate")
		return
	}

	operation := lastOperation(expression)
	value := rpn.Calculate(expression)
	result := FormatResult(value)

	Evaluations.Inc()
	if result == NaNToken {
		EvaluationErrors.Inc()
	}

	log.Info().
		Str(sessionKey, e.id.String()).
		Str("expression", expression).
		Str("operation", operation).
		Str("result", result).
		Msg("Expression evaluated")

	e.memory = Memory{
		LastAnswer:    result,
		LastOperation: operation,
	}
	e.session = sessionFromResult(result, e.capacity)
	e.display.Render(result)
}

// FormatResult renders value of expression in the form that can be edited
// further. Integral values have no decimal point, values that are not
// finite are rendered as NaNToken.
func FormatResult(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NaNToken
	}
	if value == 0 {
		// get rid of negative zero
		value = 0
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// needsEvaluation checks whether the expression contains any operator or
// bracket. Leading minus sign counts as an operator too.
func needsEvaluation(expression string) bool {
	return strings.ContainsAny(expression, operators+"()")
}

// lastOperation returns the trailing operator together with its right
// operand. Only operators outside of brackets are taken into account so
// the returned suffix is always balanced. Empty string is returned when
// there is no such operator.
func lastOperation(expression string) string {
	depth := 0
	for i := len(expression) - 1; i >= 0; i-- {
		switch symbol := expression[i]; {
		case symbol == ')':
			depth++
		case symbol == '(':
			depth--
		case depth == 0 && isOperator(symbol):
			return expression[i:]
		}
	}
	return ""
}

func symbolAt(buffer string, index int) byte {
	if index < 0 || index >= len(buffer) {
		return noSymbol
	}
	return buffer[index]
}

func isDigit(symbol byte) bool {
	return symbol >= '0' && symbol <= '9'
}

func isOperator(symbol byte) bool {
	return strings.IndexByte(operators, symbol) != -1
}
