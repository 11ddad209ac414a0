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

package image

import (
	"fmt"

	"mynewt.apache.org/secureboot/storage"
)

// Error is the image package's error type: either a wrapped flash fault or
// a structural violation of the image format. Hash mismatches, duplicate
// or missing TLVs, bad magic, and offset overflow are all InvalidImage --
// never Flash, even when the underlying cause is a malformed size field
// that happens to look like a flash error.
type Error struct {
	flash   storage.Error
	invalid bool
}

// ErrInvalidImage is any structural violation of the image format.
var ErrInvalidImage = Error{invalid: true}

// Flash wraps an underlying storage error.
func Flash(err storage.Error) error {
	return Error{flash: err}
}

func (e Error) Error() string {
	if e.invalid {
		return "image: invalid image"
	}
	return fmt.Sprintf("image: flash error: %s", e.flash)
}

// Unwrap exposes the wrapped storage.Error, if any, for errors.As/Is.
func (e Error) Unwrap() error {
	if e.invalid {
		return nil
	}
	return e.flash
}

// liftFlash converts a raw flash read error into this package's Error,
// lifting any storage error to Error{flash: ...}.
func liftFlash(err error) error {
	if err == nil {
		return nil
	}
	if serr, ok := err.(storage.Error); ok {
		return Flash(serr)
	}
	return err
}
