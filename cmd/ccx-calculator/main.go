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

// Entry point to the calculator.
//
// The calculator is an interactive arithmetic expression editor. It reads
// keypad labels (digits, operators, brackets, ".", "Del", "C" and "=") from
// standard input or an expression given on command line, keeps the edited
// infix expression syntactically valid and prints the expression after every
// key. Pressing "=" converts the expression into postfix form, evaluates it
// and prints the result.
package main

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/ccx-calculator/

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/ccx-calculator/calculator"
	"github.com/RedHatInsights/ccx-calculator/conf"
)

// Configuration-related constants
const (
	loadConfigurationMessage = "Load configuration"
)

func main() {
	cliFlags := setupCliFlags()
	checkArgs(&cliFlags)

	// config has exactly the same structure as *.toml file
	config, err := conf.LoadConfiguration(conf.ConfigFileEnvVariableName, conf.DefaultConfigFileName)
	if err != nil {
		log.Err(err).Msg(loadConfigurationMessage)
		os.Exit(ExitStatusConfiguration)
	}

	loggingConfig := conf.GetLoggingConfiguration(&config)
	if loggingConfig.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// set log level
	logLevel := convertLogLevel(loggingConfig.LogLevel)
	zerolog.SetGlobalLevel(logLevel)
	log.Debug().
		Str("configured", loggingConfig.LogLevel).
		Int("internal", int(logLevel)).
		Msg("Log level")

	// configuration is loaded, so it would be possible to display it if
	// asked by user
	if cliFlags.ShowConfiguration {
		showConfiguration(&config)
		os.Exit(ExitStatusOK)
	}

	if cliFlags.Verbose {
		showConfiguration(&config)
	}

	os.Exit(calculator.Run(config, cliFlags))
}
