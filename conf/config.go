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

package conf

// This source file contains definition of data type named ConfigStruct that
// represents configuration of the calculator. This source file also contains
// function named LoadConfiguration that can be used to load configuration
// from provided configuration file and/or from environment variables.
// Additionally several specific functions named GetLoggingConfiguration,
// GetEditorConfiguration, GetKeypadConfiguration and GetMetricsConfiguration
// are to be used to return specific configuration options.

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/ccx-calculator/conf

// Default name of configuration file is config.toml
// It can be changed via environment variable CCX_CALCULATOR_CONFIG_FILE

// An example of configuration file that can be used in devel environment:
//
// [logging]
// debug = true
// log_level = "info"
//
// [editor]
// stack_capacity = 32
// disable_repeat = false
//
// [keypad]
// echo = false
//
// [metrics]
// job_name = "ccx_calculator"
// namespace = "ccx_calculator"
// gateway_url = ""
// retries = 3
// retry_after = "1s"
//
// Environment variables that can be used to override configuration file
// settings have prefix CCX_CALCULATOR_, for example
// CCX_CALCULATOR__EDITOR__STACK_CAPACITY.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	clowder "github.com/redhatinsights/app-common-go/pkg/api/v1"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Common constants used by the CLI and tests
const (
	// ConfigFileEnvVariableName is name of environment variable that
	// contains name of configuration file
	ConfigFileEnvVariableName = "CCX_CALCULATOR_CONFIG_FILE"

	// DefaultConfigFileName is default name of configuration file
	DefaultConfigFileName = "config"

	envPrefix = "CCX_CALCULATOR_"
)

// ConfigStruct is a structure holding the whole calculator configuration
type ConfigStruct struct {
	Logging LoggingConfiguration `mapstructure:"logging" toml:"logging"`
	Editor  EditorConfiguration  `mapstructure:"editor"  toml:"editor"`
	Keypad  KeypadConfiguration  `mapstructure:"keypad"  toml:"keypad"`
	Metrics MetricsConfiguration `mapstructure:"metrics" toml:"metrics"`
}

// LoggingConfiguration represents configuration for logging in general
type LoggingConfiguration struct {
	// Debug enables pretty colored logging
	Debug bool `mapstructure:"debug" toml:"debug"`

	// LogLevel sets logging level to show. Possible values are:
	// "debug"
	// "info"
	// "warn", "warning"
	// "error"
	// "fatal"
	//
	// logging level won't be changed if value is not one of listed above
	LogLevel string `mapstructure:"log_level" toml:"log_level"`
}

// EditorConfiguration represents configuration of the expression editor
type EditorConfiguration struct {
	// StackCapacity is initial capacity of bracket and point flag
	// stacks, values below 16 are replaced by default capacity
	StackCapacity int `mapstructure:"stack_capacity" toml:"stack_capacity"`

	// DisableRepeat switches off repeating of the last operation when
	// Equals is pressed on unchanged result
	DisableRepeat bool `mapstructure:"disable_repeat" toml:"disable_repeat"`
}

// KeypadConfiguration represents configuration of the input source
type KeypadConfiguration struct {
	// Echo logs every accepted keypad label
	Echo bool `mapstructure:"echo" toml:"echo"`
}

// MetricsConfiguration holds metrics related configuration
type MetricsConfiguration struct {
	Job              string        `mapstructure:"job_name"           toml:"job_name"`
	Namespace        string        `mapstructure:"namespace"          toml:"namespace"`
	GatewayURL       string        `mapstructure:"gateway_url"        toml:"gateway_url"`
	GatewayAuthToken string        `mapstructure:"gateway_auth_token" toml:"gateway_auth_token"`
	Retries          int           `mapstructure:"retries"            toml:"retries"`
	RetryAfter       time.Duration `mapstructure:"retry_after"        toml:"retry_after"`
}

// LoadConfiguration loads configuration from defaultConfigFile, file set in
// configFileEnvVariableName or from env
func LoadConfiguration(configFileEnvVariableName, defaultConfigFile string) (ConfigStruct, error) {
	var config ConfigStruct

	// viper is global, forget everything from previous calls
	viper.Reset()

	// env. variable holding name of configuration file
	configFile, specified := os.LookupEnv(configFileEnvVariableName)
	if specified {
		// we need to separate the directory name and filename without
		// extension
		directory, basename := filepath.Split(configFile)
		file := strings.TrimSuffix(basename, filepath.Ext(basename))
		// parse the configuration
		viper.SetConfigName(file)
		viper.AddConfigPath(directory)
	} else {
		log.Info().Str("filename", defaultConfigFile).Msg("Parsing configuration file")
		// parse the configuration
		viper.SetConfigName(defaultConfigFile)
		viper.AddConfigPath(".")
	}

	// try to read the whole configuration
	err := viper.ReadInConfig()
	if _, isNotFoundError := err.(viper.ConfigFileNotFoundError); !specified && isNotFoundError {
		// If config file is not present (which might be correct in
		// some environment) we need to read configuration from
		// environment variables The problem is that Viper is not smart
		// enough to understand the structure of config by itself, so
		// we need to read fake config file
		fakeTomlConfigWriter := new(bytes.Buffer)

		err := toml.NewEncoder(fakeTomlConfigWriter).Encode(config)
		if err != nil {
			return config, err
		}

		fakeTomlConfig := fakeTomlConfigWriter.String()

		viper.SetConfigType("toml")

		err = viper.ReadConfig(strings.NewReader(fakeTomlConfig))
		if err != nil {
			return config, err
		}
	} else if err != nil {
		// error is processed on caller side
		return config, fmt.Errorf("fatal error config file: %s", err)
	}

	// override config from env if there's variable in env
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "__"))

	err = viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if clowder.IsClowderEnabled() {
		// can not use Zerolog at this moment!
		fmt.Println("Clowder is enabled")
	} else {
		// can not use Zerolog at this moment!
		fmt.Println("Clowder is disabled")
	}

	// everything's should be ok
	return config, nil
}

// GetLoggingConfiguration returns logging configuration
func GetLoggingConfiguration(config *ConfigStruct) LoggingConfiguration {
	return config.Logging
}

// GetEditorConfiguration returns editor configuration
func GetEditorConfiguration(config *ConfigStruct) EditorConfiguration {
	return config.Editor
}

// GetKeypadConfiguration returns keypad configuration
func GetKeypadConfiguration(config *ConfigStruct) KeypadConfiguration {
	return config.Keypad
}

// GetMetricsConfiguration returns metrics configuration
func GetMetricsConfiguration(config *ConfigStruct) MetricsConfiguration {
	return config.Metrics
}
