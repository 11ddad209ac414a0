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

// newSwapPlanCmd lets a caller ask what the state machine decides for an
// arbitrary pair of tail flags, without building or reading any actual
// flash -- useful for walking the state table row by row.
func newSwapPlanCmd() *cobra.Command {
	var mainMagic, mainMeta, mainMoveDone, mainCopyDone, mainImageOk bool
	var upgradeMagic, upgradeMeta, upgradeMoveDone bool

	cmd := &cobra.Command{
		Use:   "swap-plan",
		Short: "derive the upgrade state from an arbitrary pair of synthetic tail flags",
		Run: func(cmd *cobra.Command, args []string) {
			main := status.TailStatus{
				Magic:    mainMagic,
				Meta:     mainMeta,
				MoveDone: mainMoveDone,
				CopyDone: mainCopyDone,
				ImageOk:  mainImageOk,
			}
			upgrade := status.TailStatus{
				Magic:    upgradeMagic,
				Meta:     upgradeMeta,
				MoveDone: upgradeMoveDone,
			}

			state, action := status.Decide(main, upgrade)
			fmt.Printf("state:  %s\n", state)
			fmt.Printf("action: %s\n", action)
		},
	}

	cmd.Flags().BoolVar(&mainMagic, "main-magic", false, "main slot tail has its magic written")
	cmd.Flags().BoolVar(&mainMeta, "main-meta", false, "main slot tail size/hash-seed fields are populated")
	cmd.Flags().BoolVar(&mainMoveDone, "main-move-done", false, "main slot move_done flag is set")
	cmd.Flags().BoolVar(&mainCopyDone, "main-copy-done", false, "main slot copy_done flag is set")
	cmd.Flags().BoolVar(&mainImageOk, "main-image-ok", false, "main slot image_ok flag is set")
	cmd.Flags().BoolVar(&upgradeMagic, "upgrade-magic", false, "upgrade slot tail has its magic written")
	cmd.Flags().BoolVar(&upgradeMeta, "upgrade-meta", false, "upgrade slot tail size/hash-seed fields are populated")
	cmd.Flags().BoolVar(&upgradeMoveDone, "upgrade-move-done", false, "upgrade slot move_done flag is set")

	return cmd
}
