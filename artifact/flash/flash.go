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

// Package flash describes the named slots of a device's flash map --
// main and upgrade -- as plain offset/size records, independent of any
// particular storage.Flash implementation. It is the layer config reads
// a device's YAML description into, and that DetectErrors validates
// before a board driver ever opens a slot.
package flash

import (
	"fmt"
	"sort"
)

// Slot names a deployment's two areas. A supported device exposes exactly
// these two; they may share a device index as long as they do not overlap.
const (
	AreaNameMain    = "main"
	AreaNameUpgrade = "upgrade"
)

// Area is one named, offset-addressed region of a device's flash map.
type Area struct {
	Name   string
	Id     int
	Device int
	Offset int
	Size   int
}

type areaOffSorter struct {
	areas []Area
}

func (s areaOffSorter) Len() int { return len(s.areas) }
func (s areaOffSorter) Swap(i, j int) {
	s.areas[i], s.areas[j] = s.areas[j], s.areas[i]
}
func (s areaOffSorter) Less(i, j int) bool {
	ai := s.areas[i]
	aj := s.areas[j]

	if ai.Device != aj.Device {
		return ai.Device < aj.Device
	}
	return ai.Offset < aj.Offset
}

// SortByDevOff returns areas ordered by (device, offset).
func SortByDevOff(areas []Area) []Area {
	sorter := areaOffSorter{areas: make([]Area, len(areas))}
	copy(sorter.areas, areas)
	sort.Sort(sorter)
	return sorter.areas
}

// SortById returns areas ordered by Id.
func SortById(areas []Area) []Area {
	idMap := make(map[int]Area, len(areas))
	ids := make([]int, 0, len(areas))
	for _, area := range areas {
		idMap[area.Id] = area
		ids = append(ids, area.Id)
	}
	sort.Ints(ids)

	sorted := make([]Area, len(ids))
	for i, id := range ids {
		sorted[i] = idMap[id]
	}
	return sorted
}

func areasDistinct(a, b Area) bool {
	var lo, hi Area
	if a.Offset < b.Offset {
		lo, hi = a, b
	} else {
		lo, hi = b, a
	}
	return lo.Device != hi.Device || lo.Offset+lo.Size <= hi.Offset
}

// DetectErrors reports any pair of overlapping areas and any pair sharing
// an Id, across devices. A valid two-slot map has neither.
func DetectErrors(areas []Area) (overlaps [][]Area, conflicts [][]Area) {
	for i := 0; i < len(areas)-1; i++ {
		iarea := areas[i]
		for j := i + 1; j < len(areas); j++ {
			jarea := areas[j]

			if !areasDistinct(iarea, jarea) {
				overlaps = append(overlaps, []Area{iarea, jarea})
			}
			if iarea.Id == jarea.Id {
				conflicts = append(conflicts, []Area{iarea, jarea})
			}
		}
	}
	return overlaps, conflicts
}

// ErrorText renders DetectErrors' output as a multi-line diagnostic, in
// the same shape the CLI prints validation failures in.
func ErrorText(overlaps [][]Area, conflicts [][]Area) string {
	str := ""

	if len(conflicts) > 0 {
		str += "Conflicting area IDs detected:\n"
		for _, pair := range conflicts {
			str += fmt.Sprintf("    %s =/= %s\n", pair[0].Name, pair[1].Name)
		}
	}

	if len(overlaps) > 0 {
		str += "Overlapping flash areas detected:\n"
		for _, pair := range overlaps {
			str += fmt.Sprintf("    %s =/= %s\n", pair[0].Name, pair[1].Name)
		}
	}

	return str
}
