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

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/ccx-calculator/calculator"
	"github.com/RedHatInsights/ccx-calculator/conf"
	"github.com/RedHatInsights/ccx-calculator/types"
)

const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = calculator.ExitStatusOK
	// ExitStatusConfiguration is an error code related to program configuration
	ExitStatusConfiguration = calculator.ExitStatusConfiguration
)

const (
	versionMessage = "Calculator version 1.0"
	authorsMessage = "Red Hat Inc."
)

// showVersion function displays version information.
func showVersion() {
	fmt.Println(versionMessage)
}

// showAuthors function displays information about authors.
func showAuthors() {
	fmt.Println(authorsMessage)
}

// setupCliFlags defines and parses all command line options
func setupCliFlags() types.CliFlags {
	return parseCliFlags(flag.CommandLine, os.Args[1:])
}

// parseCliFlags defines all command line options in the given flag set and
// parses arguments
func parseCliFlags(flags *flag.FlagSet, arguments []string) types.CliFlags {
	var cliFlags types.CliFlags
	flags.BoolVar(&cliFlags.ShowVersion, "show-version", false, "show version and exit")
	flags.BoolVar(&cliFlags.ShowAuthors, "show-authors", false, "show authors and exit")
	flags.BoolVar(&cliFlags.ShowConfiguration, "show-configuration", false, "show configuration and exit")
	flags.BoolVar(&cliFlags.Verbose, "verbose", false, "verbose logs")
	flags.StringVar(&cliFlags.Expression, "expression", "", "expression to type instead of reading keys from standard input")
	// errors are handled by the flag set itself
	_ = flags.Parse(arguments)
	return cliFlags
}

// showConfiguration function displays actual configuration.
func showConfiguration(config *conf.ConfigStruct) {
	loggingConfig := conf.GetLoggingConfiguration(config)
	log.Info().
		Str("Level", loggingConfig.LogLevel).
		Bool("Pretty colored debug logging", loggingConfig.Debug).
		Msg("Logging configuration")

	editorConfig := conf.GetEditorConfiguration(config)
	log.Info().
		Int("Stack capacity", editorConfig.StackCapacity).
		Bool("Repeat disabled", editorConfig.DisableRepeat).
		Msg("Editor configuration")

	keypadConfig := conf.GetKeypadConfiguration(config)
	log.Info().
		Bool("Echo", keypadConfig.Echo).
		Msg("Keypad configuration")

	metricsConfig := conf.GetMetricsConfiguration(config)

	// Authentication token is omitted on purpose
	log.Info().
		Str("Job", metricsConfig.Job).
		Str("Namespace", metricsConfig.Namespace).
		Str("Push Gateway", metricsConfig.GatewayURL).
		Int("Retries", metricsConfig.Retries).
		Str("Retry after", metricsConfig.RetryAfter.String()).
		Msg("Metrics configuration")
}

// checkArgs function handles command line options passed to the process
func checkArgs(args *types.CliFlags) {
	switch {
	case args.ShowVersion:
		showVersion()
		os.Exit(ExitStatusOK)
	case args.ShowAuthors:
		showAuthors()
		os.Exit(ExitStatusOK)
	default:
	}
}

func convertLogLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	}

	return zerolog.DebugLevel
}
