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

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"mynewt.apache.org/secureboot/artifact/image"
	"mynewt.apache.org/secureboot/storage"
)

// validateSlot runs image.FromFlash and Validate against a single slot,
// prefixing any failure with the slot's name so it reads sensibly inside
// an aggregated multierror.Error from --all.
func validateSlot(name string, flash storage.ReadFlash) error {
	img, err := image.FromFlash(flash)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := img.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func newValidateCmd() *cobra.Command {
	var profileName string
	var mapPath string
	var stateDir string
	var slot string
	var all bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "validate an installed image's header, TLVs and hash",
		Run: func(cmd *cobra.Command, args []string) {
			main, upgrade, err := loadOrBuildSlots(profileName, mapPath, stateDir)
			if err != nil {
				bootctlUsage(cmd, err)
			}

			if all {
				var result *multierror.Error
				if err := validateSlot("main", main); err != nil {
					result = multierror.Append(result, err)
				}
				if err := validateSlot("upgrade", upgrade); err != nil {
					result = multierror.Append(result, err)
				}
				if result.ErrorOrNil() != nil {
					fmt.Println("FAIL:")
					fmt.Println(result)
					os.Exit(1)
				}
				fmt.Println("PASS")
				return
			}

			flash := storage.ReadFlash(main)
			if slot == "upgrade" {
				flash = upgrade
			}

			if err := validateSlot(slot, flash); err != nil {
				fmt.Println("FAIL:", err)
				os.Exit(1)
			}

			fmt.Println("PASS")
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "named simulator profile")
	cmd.Flags().StringVar(&mapPath, "map", "", "path to a YAML flash-map file")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "directory a prior install persisted the simulated flashes to")
	cmd.Flags().StringVar(&slot, "slot", "main", "slot to validate (main or upgrade)")
	cmd.Flags().BoolVar(&all, "all", false, "validate both slots and report every failure")

	return cmd
}
