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

// Package keypad is an input source for the expression editor. It maps
// labels of calculator keys and raw expression text into symbol events.
package keypad

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/ccx-calculator/types"
)

// Labels of keys that are not digits
const (
	LabelDelete       = "Del"
	LabelClear        = "C"
	LabelDivide       = "Div"
	LabelMultiply     = "*"
	LabelAdd          = "+"
	LabelSubtract     = "-"
	LabelOpenBracket  = "("
	LabelCloseBracket = ")"
	LabelPoint        = "."
	LabelEquals       = "="
)

// MaxLineLength is the longest input line accepted by Consume
const MaxLineLength = 1024 * 1024

// glyphs shown on the keys, they are accepted as labels as well
var glyphs = map[string]string{
	"÷": LabelDivide,
	"×": LabelMultiply,
	"⌫": LabelDelete,
	"/": LabelDivide,
}

// Parse maps one keypad label into an event
func Parse(label string) (types.Event, error) {
	if alias, found := glyphs[label]; found {
		label = alias
	}

	switch label {
	case LabelDelete:
		return types.DeleteEvent{}, nil
	case LabelClear:
		return types.ClearEvent{}, nil
	case LabelDivide:
		return types.OperatorEvent{Operator: types.OperatorDivide}, nil
	case LabelMultiply:
		return types.OperatorEvent{Operator: types.OperatorMultiply}, nil
	case LabelAdd:
		return types.OperatorEvent{Operator: types.OperatorAdd}, nil
	case LabelSubtract:
		return types.OperatorEvent{Operator: types.OperatorSubtract}, nil
	case LabelOpenBracket:
		return types.OpenBracketEvent{}, nil
	case LabelCloseBracket:
		return types.CloseBracketEvent{}, nil
	case LabelPoint:
		return types.PointEvent{}, nil
	case LabelEquals:
		return types.EqualsEvent{}, nil
	}

	if len(label) == 1 && label[0] >= '0' && label[0] <= '9' {
		return types.DigitEvent{Value: label[0]}, nil
	}

	return nil, &UnknownLabelError{Label: label}
}

// ParseExpression maps expression text into events, one event per
// character. Whitespace is skipped.
func ParseExpression(expression string) ([]types.Event, error) {
	events := []types.Event{}

	for _, r := range expression {
		if unicode.IsSpace(r) {
			continue
		}
		event, err := Parse(string(r))
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// Handler consumes events produced by the keypad
type Handler interface {
	Handle(event types.Event)
}

// Keypad reads whitespace separated labels and dispatches them one by one
// to a handler
type Keypad struct {
	handler Handler
	echo    bool
}

// New constructs keypad that dispatches events to handler
func New(handler Handler, echo bool) *Keypad {
	return &Keypad{
		handler: handler,
		echo:    echo,
	}
}

// Press dispatches one label. Unknown labels are skipped and reported.
func (k *Keypad) Press(label string) error {
	event, err := Parse(label)
	if err != nil {
		log.Warn().Str("label", label).Msg("Unknown keypad label skipped")
		return err
	}

	if k.echo {
		log.Info().Str("label", label).Msg("Key pressed")
	}

	k.handler.Handle(event)
	return nil
}

// Type dispatches events for all characters of the expression text
func (k *Keypad) Type(expression string) error {
	events, err := ParseExpression(expression)
	if err != nil {
		return err
	}

	for _, event := range events {
		if k.echo {
			log.Info().Str("label", event.String()).Msg("Key pressed")
		}
		k.handler.Handle(event)
	}
	return nil
}

// Consume reads labels from the reader until EOF and dispatches them. It
// returns the number of dispatched and skipped labels. Lines longer than
// MaxLineLength stop the reading with bufio.ErrTooLong.
func (k *Keypad) Consume(reader io.Reader) (pressed, skipped int, err error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineLength)
	for scanner.Scan() {
		for _, label := range strings.Fields(scanner.Text()) {
			if k.Press(label) != nil {
				skipped++
				continue
			}
			pressed++
		}
	}
	return pressed, skipped, scanner.Err()
}
