/*
   Copyright 2025 The DIRPX Authors.

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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/patchx"
	"dirpx.dev/patchx/apis"
	"dirpx.dev/patchx/config"
)

var rootCmd = &cobra.Command{
	Use:          "patchx",
	Short:        "Replay and inspect reversible property patches",
	Long:         "patchx builds an object and a set of patches from a scenario file, replays apply/revert steps and shows the object's descriptors after each one.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupEngine()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .patchx.yaml)")
	pf.BoolP("verbose", "v", false, "debug logging to stderr")
	pf.String("color", "auto", "colorize output: auto, always, never")
	pf.Bool("enumerable", config.DefaultEnumerable, "default enumerability of plain payload values")
	pf.Bool("configurable", config.DefaultConfigurable, "default configurability of plain payload values")
	pf.Bool("writable", config.DefaultWritable, "default writability of plain payload values")
	pf.Bool("strict-shapes", config.DefaultStrictShapes, "reject descriptor-like maps that do not classify")
	_ = viper.BindPFlags(pf)
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".patchx")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PATCHX")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// engineConfig builds the normalization config from flags, env and file.
func engineConfig() apis.Config {
	return config.NewConfig(
		config.WithEnumerable(viper.GetBool("enumerable")),
		config.WithConfigurable(viper.GetBool("configurable")),
		config.WithWritable(viper.GetBool("writable")),
		config.WithStrictShapes(viper.GetBool("strict-shapes")),
	)
}

func setupEngine() {
	if viper.GetBool("verbose") {
		patchx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	patchx.SetConfig(engineConfig())
}
