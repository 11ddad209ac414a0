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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mynewt.apache.org/secureboot/artifact/image"
	log "github.com/sirupsen/logrus"
)

func newInstallCmd() *cobra.Command {
	var profileName string
	var mapPath string
	var stateDir string
	var slot string
	var bodySize int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "install",
		Short: "build a signed fixture image and install it into a slot",
		Run: func(cmd *cobra.Command, args []string) {
			main, upgrade, err := loadOrBuildSlots(profileName, mapPath, stateDir)
			if err != nil {
				bootctlUsage(cmd, err)
			}

			creator := image.NewCreator()
			if bodySize > 0 {
				creator.BodySize = bodySize
			}
			if seed > 0 {
				creator.Seed = seed
			}

			fixture := creator.Build()
			log.Infof("built fixture image: %s", humanize.Bytes(uint64(len(fixture))))

			target := main
			if slot == "upgrade" {
				target = upgrade
			}
			if err := target.Install(fixture, 0); err != nil {
				bootctlUsage(cmd, err)
			}

			if err := saveSlots(stateDir, main, upgrade); err != nil {
				bootctlUsage(cmd, err)
			}

			fmt.Printf("installed %s fixture image into %s slot\n",
				humanize.Bytes(uint64(len(fixture))), slot)
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "named simulator profile (stm32f, k64, ext, lpc, stm32h)")
	cmd.Flags().StringVar(&mapPath, "map", "", "path to a YAML flash-map file")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "directory to persist the simulated flashes between invocations")
	cmd.Flags().StringVar(&slot, "slot", "main", "slot to install into (main or upgrade)")
	cmd.Flags().IntVar(&bodySize, "body-size", 0, "fixture body size in bytes (default Creator value)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "fixture PRNG seed (default Creator value)")

	return cmd
}
