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
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mynewt.apache.org/secureboot/upgrade/status"
)

func newLayoutCmd() *cobra.Command {
	var profileName string
	var mapPath string
	var stateDir string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "print the computed status-tail layout for a pair of slots",
		Run: func(cmd *cobra.Command, args []string) {
			main, upgrade, err := loadOrBuildSlots(profileName, mapPath, stateDir)
			if err != nil {
				bootctlUsage(cmd, err)
			}

			mainInfo := status.FromData(main.Capacity(), main)
			upgradeInfo := status.FromData(upgrade.Capacity(), upgrade)
			layout := mainInfo.StatusLayout(upgradeInfo)

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetTitle("Status layout")
			t.AppendHeader(table.Row{"Field", "Value"})
			t.AppendRow(table.Row{"Style", layout.Style})
			t.AppendRow(table.Row{"EraseSize", layout.EraseSize})
			t.AppendRow(table.Row{"WriteSize", layout.WriteSize})
			t.AppendRow(table.Row{"ImageSectors[main]", layout.ImageSectors[0]})
			t.AppendRow(table.Row{"ImageSectors[upgrade]", layout.ImageSectors[1]})
			t.AppendRow(table.Row{"TailPos", layout.TailPos})
			if layout.OverwriteFlags != nil {
				t.AppendRow(table.Row{"MoveDoneAt", layout.OverwriteFlags[0]})
				t.AppendRow(table.Row{"CopyDoneAt", layout.OverwriteFlags[1]})
				t.AppendRow(table.Row{"ImageOkAt", layout.OverwriteFlags[2]})
			}
			t.AppendRow(table.Row{"InlineHashes", layout.InlineHashes})
			t.AppendRow(table.Row{"HashPages", fmt.Sprint(layout.HashPages)})
			t.Render()
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "named simulator profile")
	cmd.Flags().StringVar(&mapPath, "map", "", "path to a YAML flash-map file")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "directory a prior install persisted the simulated flashes to")

	return cmd
}
