/**
 * Licensed to the Apache Software Foundation (ASF) under one
 * or more contributor license agreements.  See the NOTICE file
 * distributed with this work for additional information
 * regarding copyright ownership.  The ASF licenses this file
 * to you under the Apache License, Version 2.0 (the
 * "License"); you may not use this file except in compliance
 * with the License.  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Command bootctl is the outer shell around the bootloader core: it
// exercises storage, artifact/image and upgrade/status from the command
// line, against the in-memory simulator, for inspection and testing.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mynewt.apache.org/secureboot/util"
)

var logLevelStr string

func bootctlUsage(cmd *cobra.Command, err error) {
	if err != nil {
		if nerr, ok := err.(*util.NewtError); ok {
			log.Debugf("%s", nerr.StackTrace)
			fmt.Fprintln(os.Stderr, "Error:", nerr.Text)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	if cmd != nil {
		cmd.Usage()
	}
	os.Exit(1)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bootctl",
		Short: "bootctl inspects and exercises a secure bootloader core",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, err := log.ParseLevel(logLevelStr)
			if err != nil {
				bootctlUsage(nil, util.ChildNewtError(err))
			}
			if err := util.Init(level, "", util.VERBOSITY_DEFAULT); err != nil {
				bootctlUsage(nil, err)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	root.PersistentFlags().StringVarP(&logLevelStr, "loglevel", "l", "WARN",
		"Log level (DEBUG, INFO, WARN, ERROR)")

	root.AddCommand(newInstallCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newSwapPlanCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
