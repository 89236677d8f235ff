// Copyright 2016-2024, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// defaultConfigName is the file, without extension, looked up in the working directory when --config is not given.
const defaultConfigName = "sdkgen"

// config holds the settings of a generate or validate run. Values come from flags, then the configuration file,
// then flag defaults.
type config struct {
	Schema      string   `mapstructure:"schema"`
	Languages   []string `mapstructure:"languages"`
	Out         string   `mapstructure:"out"`
	Overlays    string   `mapstructure:"overlays"`
	Deps        string   `mapstructure:"deps"`
	Strict      bool     `mapstructure:"strict"`
	Check       bool     `mapstructure:"check"`
	Preserve    []string `mapstructure:"preserve"`
	Parallelism int      `mapstructure:"parallelism"`
}

// flagKeys maps flag names to configuration keys where the two differ.
var flagKeys = map[string]string{
	"language": "languages",
}

// loadConfig merges the configuration file at path, or sdkgen.yaml in the working directory if path is empty, with
// the flags that were set explicitly.
func loadConfig(fs afero.Fs, path string, flags *pflag.FlagSet) (config, error) {
	v := viper.New()
	v.SetFs(fs)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("reading configuration: %w", err)
		}
	}

	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			key = f.Name
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return config{}, bindErr
	}

	var cfg config
	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}
