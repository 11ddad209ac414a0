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

// Package config loads a device's two-slot flash description from YAML:
// each slot's offset/size on its device plus its read/write/erase
// geometry, the same fields storage.simflash.AreaLayout models for the
// simulator.
package config

import (
	"strings"

	"github.com/spf13/cast"

	"mynewt.apache.org/secureboot/artifact/flash"
	"mynewt.apache.org/secureboot/util"
)

// SlotGeometry is one slot's area plus its device's read/write/erase
// granules, everything needed to build a storage.Flash or a status.SlotInfo
// for it.
type SlotGeometry struct {
	Area      flash.Area
	ReadSize  int
	WriteSize int
	EraseSize int
}

// DeviceMap is a fully parsed two-slot flash description.
type DeviceMap struct {
	Main    SlotGeometry
	Upgrade SlotGeometry

	Overlaps    [][]flash.Area
	IdConflicts [][]flash.Area
}

func slotErr(name string, format string, args ...interface{}) error {
	return util.FmtNewtError("slot %q: "+format, append([]interface{}{name}, args...)...)
}

func parseSize(val string) (int, error) {
	lower := strings.ToLower(val)

	multiplier := 1
	if strings.HasSuffix(lower, "kb") {
		multiplier = 1024
		lower = strings.TrimSuffix(lower, "kb")
	} else if strings.HasSuffix(lower, "mb") {
		multiplier = 1024 * 1024
		lower = strings.TrimSuffix(lower, "mb")
	}

	num, err := util.AtoiNoOct(lower)
	if err != nil {
		return 0, err
	}
	return num * multiplier, nil
}

func parseSlot(name string, id int, ymlFields map[string]interface{}) (SlotGeometry, error) {
	var geom SlotGeometry
	geom.Area.Name = name
	geom.Area.Id = id

	fields := cast.ToStringMapString(ymlFields)

	required := map[string]*int{
		"device":     &geom.Area.Device,
		"offset":     &geom.Area.Offset,
		"size":       &geom.Area.Size,
		"read_size":  &geom.ReadSize,
		"write_size": &geom.WriteSize,
		"erase_size": &geom.EraseSize,
	}

	seen := map[string]bool{}
	for k, v := range fields {
		dst, ok := required[k]
		if !ok {
			util.StatusMessage(util.VERBOSITY_QUIET,
				"Warning: slot %q contains unrecognized field: %s\n", name, k)
			continue
		}

		var val int
		var err error
		if k == "size" {
			val, err = parseSize(v)
		} else {
			val, err = util.AtoiNoOct(v)
		}
		if err != nil {
			return geom, slotErr(name, "invalid %s: %s", k, v)
		}

		*dst = val
		seen[k] = true
	}

	for field := range required {
		if !seen[field] {
			return geom, slotErr(name, "required field %q missing", field)
		}
	}

	return geom, nil
}

// ReadDeviceMap parses a decoded YAML document (as produced by
// yaml.Unmarshal) into a DeviceMap, and records any overlap or Id conflict
// between the two slots in Overlaps/IdConflicts. Neither is returned as an
// error; callers check those fields.
func ReadDeviceMap(doc map[string]interface{}) (DeviceMap, error) {
	var dm DeviceMap

	slots := cast.ToStringMap(doc["slots"])
	if slots == nil {
		return dm, util.NewNewtError("\"slots\" mapping missing from flash map definition")
	}

	mainYml, ok := slots[flash.AreaNameMain]
	if !ok {
		return dm, util.NewNewtError("flash map is missing the \"main\" slot")
	}
	upgradeYml, ok := slots[flash.AreaNameUpgrade]
	if !ok {
		return dm, util.NewNewtError("flash map is missing the \"upgrade\" slot")
	}

	main, err := parseSlot(flash.AreaNameMain, 0, cast.ToStringMap(mainYml))
	if err != nil {
		return dm, err
	}
	upgrade, err := parseSlot(flash.AreaNameUpgrade, 1, cast.ToStringMap(upgradeYml))
	if err != nil {
		return dm, err
	}

	dm.Main = main
	dm.Upgrade = upgrade
	dm.Overlaps, dm.IdConflicts = flash.DetectErrors([]flash.Area{main.Area, upgrade.Area})

	return dm, nil
}

// ErrorText renders any overlap/conflict errors found during ReadDeviceMap,
// in the same format cmd/bootctl's "validate" subcommand prints.
func (dm DeviceMap) ErrorText() string {
	return flash.ErrorText(dm.Overlaps, dm.IdConflicts)
}
