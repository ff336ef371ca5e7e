/*
 * Copyright (c) 2024 Yunshan Networks
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ctl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepflowio/apm-analytics/analytics/config"
	"github.com/deepflowio/apm-analytics/libs/logger"
)

func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:              "analytics-ctl",
		Short:            "apm analytics tool",
		Version:          version,
		TraverseChildren: true,
		SilenceUsage:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")
			if logFile != "" {
				return logger.InitLog(logFile, level)
			}
			return logger.InitConsoleLog(level)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "analytics config file")
	root.PersistentFlags().String("log-level", "warning", "log level")
	root.PersistentFlags().String("log-file", "", "also write logs to this file, rotated daily")

	root.AddCommand(RegisterCalcCommand())
	root.AddCommand(RegisterCallGraphCommand())
	root.AddCommand(RegisterTendencyCommand())
	return root
}

func Execute(version string) {
	root := NewRootCommand(version)
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return cfg, nil
	}
	if err := cfg.Load(path); err != nil {
		return nil, fmt.Errorf("load config %s: %v", path, err)
	}
	return cfg, nil
}

func prefixLogger(name string) *logger.PrefixLogger {
	l, err := logger.GetPrefixLogger("ctl", "["+name+"]")
	if err != nil {
		panic(err)
	}
	return l
}
