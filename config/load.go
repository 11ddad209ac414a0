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

package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"mynewt.apache.org/secureboot/storage/simflash"
	"mynewt.apache.org/secureboot/util"
)

// Load reads and parses a device's flash-map YAML file at path.
func Load(path string) (DeviceMap, error) {
	var dm DeviceMap

	data, err := os.ReadFile(path)
	if err != nil {
		return dm, util.FmtNewtError("failed to read flash map %s: %s", path, err)
	}

	doc := map[string]interface{}{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return dm, util.FmtNewtError("failed to parse flash map %s: %s", path, err)
	}

	return ReadDeviceMap(doc)
}

// AreaLayout returns the simflash.AreaLayout implied by a slot's parsed
// geometry, so a board-less "install"/"validate" run can simulate a
// device described entirely by YAML.
func (g SlotGeometry) AreaLayout() simflash.AreaLayout {
	sectors := 1
	if g.EraseSize > 0 {
		sectors = g.Area.Size / g.EraseSize
	}
	return simflash.AreaLayout{
		ReadSize:  g.ReadSize,
		WriteSize: g.WriteSize,
		EraseSize: g.EraseSize,
		Sectors:   sectors,
	}
}
