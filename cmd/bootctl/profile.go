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
	"os"
	"path/filepath"

	"mynewt.apache.org/secureboot/config"
	"mynewt.apache.org/secureboot/storage/simflash"
	"mynewt.apache.org/secureboot/util"
)

// buildSlots resolves either a named simulator profile or a YAML flash-map
// file into a pair of simulated main/upgrade flashes. profileName takes
// priority when both are given.
func buildSlots(profileName, mapPath string) (*simflash.SimFlash, *simflash.SimFlash, error) {
	if profileName != "" {
		for _, p := range simflash.AllProfiles {
			if p.Name == profileName {
				main, upgrade := p.Build()
				return main, upgrade, nil
			}
		}
		return nil, nil, util.FmtNewtError("unknown profile %q", profileName)
	}

	if mapPath == "" {
		return nil, nil, util.NewNewtError("one of --profile or --map is required")
	}

	dm, err := config.Load(mapPath)
	if err != nil {
		return nil, nil, err
	}
	if len(dm.Overlaps) > 0 || len(dm.IdConflicts) > 0 {
		return nil, nil, util.NewNewtError(dm.ErrorText())
	}

	main := dm.Main.AreaLayout().Build()
	upgrade := dm.Upgrade.AreaLayout().Build()
	return main, upgrade, nil
}

func statePaths(stateDir string) (mainPath, upgradePath string) {
	return filepath.Join(stateDir, "main.bin"), filepath.Join(stateDir, "upgrade.bin")
}

// loadOrBuildSlots loads a previously-saved pair of simulated flashes from
// stateDir if both files are present, falling back to a fresh build from
// profileName/mapPath otherwise. This is how separate bootctl invocations
// (install, then inspect or validate) share a simulated device.
func loadOrBuildSlots(profileName, mapPath, stateDir string) (*simflash.SimFlash, *simflash.SimFlash, error) {
	if stateDir != "" {
		mainPath, upgradePath := statePaths(stateDir)
		mainFile, mainErr := os.Open(mainPath)
		upgradeFile, upgradeErr := os.Open(upgradePath)
		if mainErr == nil && upgradeErr == nil {
			defer mainFile.Close()
			defer upgradeFile.Close()

			main, err := simflash.Load(mainFile)
			if err != nil {
				return nil, nil, err
			}
			upgrade, err := simflash.Load(upgradeFile)
			if err != nil {
				return nil, nil, err
			}
			return main, upgrade, nil
		}
	}

	return buildSlots(profileName, mapPath)
}

// saveSlots persists a pair of simulated flashes to stateDir, creating it
// if necessary. A no-op when stateDir is empty.
func saveSlots(stateDir string, main, upgrade *simflash.SimFlash) error {
	if stateDir == "" {
		return nil
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return err
	}

	mainPath, upgradePath := statePaths(stateDir)

	mainFile, err := os.Create(mainPath)
	if err != nil {
		return err
	}
	defer mainFile.Close()
	if err := main.Dump(mainFile); err != nil {
		return err
	}

	upgradeFile, err := os.Create(upgradePath)
	if err != nil {
		return err
	}
	defer upgradeFile.Close()
	return upgrade.Dump(upgradeFile)
}
