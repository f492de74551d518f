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

// Package calculator wires the keypad input source, the expression editor
// and the console display together.
package calculator

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/ccx-calculator/calculator

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/ccx-calculator/conf"
	"github.com/RedHatInsights/ccx-calculator/display"
	"github.com/RedHatInsights/ccx-calculator/editor"
	"github.com/RedHatInsights/ccx-calculator/keypad"
	"github.com/RedHatInsights/ccx-calculator/types"
)

// Exit codes
const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = iota
	// ExitStatusConfiguration is an error code related to program configuration
	ExitStatusConfiguration
	// ExitStatusInputError is returned when input can not be read or parsed
	ExitStatusInputError
	// ExitStatusMetricsError is returned when metrics can not be pushed
	ExitStatusMetricsError
)

// Messages
const (
	operationFailedMessage = "Operation failed"
	sessionKey             = "session"
)

// Run starts the calculator reading keypad labels from standard input and
// rendering to standard output. It returns the exit code.
func Run(config conf.ConfigStruct, cliFlags types.CliFlags) int {
	return RunWith(config, cliFlags, os.Stdin, os.Stdout)
}

// RunWith starts the calculator with the given input and output
func RunWith(config conf.ConfigStruct, cliFlags types.CliFlags, in io.Reader, out io.Writer) int {
	metricsConfig := conf.GetMetricsConfiguration(&config)
	if metricsConfig.Namespace != "" {
		editor.AddMetricsWithNamespace(metricsConfig.Namespace)
	}

	recorder := &display.Recorder{}
	sink := display.Tee{display.NewConsole(out), recorder}

	ed := editor.New(sink, conf.GetEditorConfiguration(&config))
	kp := keypad.New(ed, conf.GetKeypadConfiguration(&config).Echo)

	log.Info().Str(sessionKey, ed.ID().String()).Msg("Calculator started")

	if cliFlags.Expression != "" {
		err := kp.Type(cliFlags.Expression)
		if err != nil {
			log.Err(err).Str("expression", cliFlags.Expression).Msg(operationFailedMessage)
			return ExitStatusInputError
		}
	} else {
		pressed, skipped, err := kp.Consume(in)
		log.Info().
			Str(sessionKey, ed.ID().String()).
			Int("pressed", pressed).
			Int("skipped", skipped).
			Msg("Input consumed")
		if err != nil {
			log.Err(err).Msg(operationFailedMessage)
			return ExitStatusInputError
		}
	}

	log.Info().
		Str(sessionKey, ed.ID().String()).
		Str("display", recorder.Last()).
		Str("last answer", ed.Memory().LastAnswer).
		Msg("Calculator finished")

	if metricsConfig.GatewayURL != "" {
		err := editor.PushMetrics(metricsConfig)
		if err != nil {
			log.Err(err).Msg(operationFailedMessage)
			return ExitStatusMetricsError
		}
	}

	return ExitStatusOK
}
