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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mynewt.apache.org/secureboot/upgrade/status"
)

func newStatusCmd() *cobra.Command {
	var profileName string
	var mapPath string
	var stateDir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "derive the upgrade state from both slots' status tails",
		Run: func(cmd *cobra.Command, args []string) {
			main, upgrade, err := loadOrBuildSlots(profileName, mapPath, stateDir)
			if err != nil {
				bootctlUsage(cmd, err)
			}

			mainInfo := status.FromData(main.Capacity(), main)
			upgradeInfo := status.FromData(upgrade.Capacity(), upgrade)
			layout := mainInfo.StatusLayout(upgradeInfo)

			mainStatus, err := status.ReadTailStatus(main, layout)
			if err != nil {
				bootctlUsage(cmd, err)
			}
			upgradeStatus, err := status.ReadTailStatus(upgrade, layout)
			if err != nil {
				bootctlUsage(cmd, err)
			}

			state, action := status.Decide(mainStatus, upgradeStatus)
			fmt.Printf("state:  %s\n", state)
			fmt.Printf("action: %s\n", action)
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "named simulator profile")
	cmd.Flags().StringVar(&mapPath, "map", "", "path to a YAML flash-map file")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "directory a prior install persisted the simulated flashes to")

	return cmd
}
