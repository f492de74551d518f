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

package keypad_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/ccx-calculator/keypad"
	"github.com/RedHatInsights/ccx-calculator/types"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// eventRecorder is a handler that remembers all events
type eventRecorder struct {
	events []types.Event
}

func (r *eventRecorder) Handle(event types.Event) {
	r.events = append(r.events, event)
}

func TestParse(t *testing.T) {
	var testScenarios = []struct {
		label    string
		expected types.Event
	}{
		{"Del", types.DeleteEvent{}},
		{"⌫", types.DeleteEvent{}},
		{"C", types.ClearEvent{}},
		{"Div", types.OperatorEvent{Operator: types.OperatorDivide}},
		{"÷", types.OperatorEvent{Operator: types.OperatorDivide}},
		{"/", types.OperatorEvent{Operator: types.OperatorDivide}},
		{"*", types.OperatorEvent{Operator: types.OperatorMultiply}},
		{"×", types.OperatorEvent{Operator: types.OperatorMultiply}},
		{"+", types.OperatorEvent{Operator: types.OperatorAdd}},
		{"-", types.OperatorEvent{Operator: types.OperatorSubtract}},
		{"(", types.OpenBracketEvent{}},
		{")", types.CloseBracketEvent{}},
		{".", types.PointEvent{}},
		{"=", types.EqualsEvent{}},
		{"0", types.DigitEvent{Value: '0'}},
		{"9", types.DigitEvent{Value: '9'}},
	}

	for _, scenario := range testScenarios {
		event, err := keypad.Parse(scenario.label)
		helpers.FailOnError(t, err)
		assert.Equal(t, scenario.expected, event, "label: "+scenario.label)
	}
}

func TestParseUnknownLabel(t *testing.T) {
	for _, label := range []string{"", "x", "10", "sin", "%", "c"} {
		event, err := keypad.Parse(label)
		assert.Nil(t, event)
		assert.IsType(t, &keypad.UnknownLabelError{}, err)
	}

	_, err := keypad.Parse("%")
	assert.EqualError(t, err, `UnknownLabel: "%" is not a keypad label`)
}

func TestParseExpression(t *testing.T) {
	events, err := keypad.ParseExpression("(1 + 2)3=")
	helpers.FailOnError(t, err)

	assert.Equal(t, []types.Event{
		types.OpenBracketEvent{},
		types.DigitEvent{Value: '1'},
		types.OperatorEvent{Operator: types.OperatorAdd},
		types.DigitEvent{Value: '2'},
		types.CloseBracketEvent{},
		types.DigitEvent{Value: '3'},
		types.EqualsEvent{},
	}, events)
}

func TestParseExpressionUnknownSymbol(t *testing.T) {
	events, err := keypad.ParseExpression("2^3")
	assert.Nil(t, events)
	assert.EqualError(t, err, `UnknownLabel: "^" is not a keypad label`)
}

func TestKeypadPress(t *testing.T) {
	recorder := &eventRecorder{}
	k := keypad.New(recorder, true)

	helpers.FailOnError(t, k.Press("7"))
	assert.Error(t, k.Press("seven"))

	assert.Equal(t, []types.Event{types.DigitEvent{Value: '7'}}, recorder.events)
}

func TestKeypadType(t *testing.T) {
	recorder := &eventRecorder{}
	k := keypad.New(recorder, false)

	helpers.FailOnError(t, k.Type("5.."))
	assert.Len(t, recorder.events, 3)

	// nothing is dispatched when the text contains unknown symbol
	assert.Error(t, k.Type("5x"))
	assert.Len(t, recorder.events, 3)
}

func TestKeypadConsume(t *testing.T) {
	recorder := &eventRecorder{}
	k := keypad.New(recorder, false)

	input := "2 + 3\n=\n\nfoo Del\n"
	pressed, skipped, err := k.Consume(strings.NewReader(input))
	helpers.FailOnError(t, err)

	assert.Equal(t, 5, pressed)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []types.Event{
		types.DigitEvent{Value: '2'},
		types.OperatorEvent{Operator: types.OperatorAdd},
		types.DigitEvent{Value: '3'},
		types.EqualsEvent{},
		types.DeleteEvent{},
	}, recorder.events)
}

// TestKeypadConsumeLongLine checks lines longer than default scanner token
func TestKeypadConsumeLongLine(t *testing.T) {
	recorder := &eventRecorder{}
	k := keypad.New(recorder, false)

	const count = 50000
	input := strings.Repeat("1 ", count) + "\n="

	pressed, skipped, err := k.Consume(strings.NewReader(input))
	helpers.FailOnError(t, err)

	assert.Equal(t, count+1, pressed)
	assert.Equal(t, 0, skipped)
}

// TestKeypadConsumeTooLongLine checks that line limit is reported
func TestKeypadConsumeTooLongLine(t *testing.T) {
	recorder := &eventRecorder{}
	k := keypad.New(recorder, false)

	input := strings.Repeat("1", keypad.MaxLineLength+1)

	_, _, err := k.Consume(strings.NewReader(input))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Empty(t, recorder.events)
}
