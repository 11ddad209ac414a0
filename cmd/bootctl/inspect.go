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

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mynewt.apache.org/secureboot/artifact/image"
)

func tlvKindName(kind uint16) string {
	switch kind {
	case image.TlvSHA256:
		return "SHA256"
	default:
		return fmt.Sprintf("0x%02x", kind)
	}
}

func newInspectCmd() *cobra.Command {
	var profileName string
	var mapPath string
	var stateDir string
	var slot string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "print an installed image's header and TLV chain",
		Run: func(cmd *cobra.Command, args []string) {
			main, upgrade, err := loadOrBuildSlots(profileName, mapPath, stateDir)
			if err != nil {
				bootctlUsage(cmd, err)
			}

			flash := main
			if slot == "upgrade" {
				flash = upgrade
			}

			img, err := image.FromFlash(flash)
			if err != nil {
				bootctlUsage(cmd, err)
			}

			h := img.Header()
			hdr := table.NewWriter()
			hdr.SetOutputMirror(os.Stdout)
			hdr.SetTitle("Header")
			hdr.AppendHeader(table.Row{"Field", "Value"})
			hdr.AppendRow(table.Row{"Magic", fmt.Sprintf("0x%08x", h.Magic)})
			hdr.AppendRow(table.Row{"LoadAddr", fmt.Sprintf("0x%08x", h.LoadAddr)})
			hdr.AppendRow(table.Row{"HdrSize", h.HdrSize})
			hdr.AppendRow(table.Row{"ImgSize", humanize.Bytes(uint64(h.ImgSize))})
			hdr.AppendRow(table.Row{"Version", fmt.Sprintf("%d.%d.%d+%d",
				h.Version.Major, h.Version.Minor, h.Version.Revision, h.Version.Build)})
			hdr.AppendRow(table.Row{"FullImageSize", humanize.Bytes(uint64(img.FullImageSize()))})
			hdr.Render()

			it, err := img.Tlvs()
			if err != nil {
				bootctlUsage(cmd, err)
			}

			tlvs := table.NewWriter()
			tlvs.SetOutputMirror(os.Stdout)
			tlvs.SetTitle("TLVs")
			tlvs.AppendHeader(table.Row{"Kind", "Length"})
			for {
				entry, ok, err := it.Next()
				if err != nil {
					bootctlUsage(cmd, err)
				}
				if !ok {
					break
				}
				tlvs.AppendRow(table.Row{tlvKindName(entry.Kind), entry.PayloadLen})
			}
			tlvs.Render()
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "named simulator profile")
	cmd.Flags().StringVar(&mapPath, "map", "", "path to a YAML flash-map file")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "directory a prior install persisted the simulated flashes to")
	cmd.Flags().StringVar(&slot, "slot", "main", "slot to inspect (main or upgrade)")

	return cmd
}
