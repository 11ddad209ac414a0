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
	"bytes"
	"encoding/binary"

	"mynewt.apache.org/secureboot/storage"
)

// TlvInfoMagic is the magic value of the 4-byte TlvInfo header that opens
// the TLV region.
const TlvInfoMagic uint16 = 0x6907

// TlvInfoSize is the on-flash size of the TlvInfo header.
const TlvInfoSize = 4

// tlvEntryHeaderSize is the on-flash size of a single TLV entry's
// {kind, len} header, preceding its payload.
const tlvEntryHeaderSize = 4

// TlvSHA256 is the recognized SHA-256 digest TLV kind. Its payload is
// always 32 bytes.
const TlvSHA256 uint16 = 0x10

// TlvInfo is the 4-byte record that opens the TLV region.
type TlvInfo struct {
	Magic uint16
	Len   uint16 // total size of the TLV region, including this header
}

func unmarshalTlvInfo(raw []byte) (TlvInfo, error) {
	var info TlvInfo
	if len(raw) != TlvInfoSize {
		return info, ErrInvalidImage
	}
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &info); err != nil {
		return info, ErrInvalidImage
	}
	return info, nil
}

type tlvEntryHeader struct {
	Kind uint16
	Len  uint16
}

// TlvEntry describes one TLV record without buffering its payload. Callers
// fetch the payload with ReadData.
type TlvEntry struct {
	Kind       uint16
	PayloadLen int

	flash      storage.ReadFlash
	payloadPos int
}

// ReadData reads this entry's payload into buf, which must have length
// exactly PayloadLen.
func (e TlvEntry) ReadData(buf []byte) error {
	if len(buf) != e.PayloadLen {
		return ErrInvalidImage
	}
	if err := e.flash.Read(e.payloadPos, buf); err != nil {
		return liftFlash(err)
	}
	return nil
}

// TlvIter lazily walks the TLV chain one entry at a time. It never
// pre-materializes the whole chain, and a structural overflow or
// out-of-range cursor surfaces as an error from Next rather than being
// swallowed by silent termination.
type TlvIter struct {
	flash   storage.ReadFlash
	tlvBase int
	limit   int
	pos     int
	done    bool
}

// Next advances the iterator. It returns (entry, true, nil) for a valid
// next entry, (zero, false, nil) at the end of the chain, or (zero, false,
// err) on a flash fault or structural violation.
func (it *TlvIter) Next() (TlvEntry, bool, error) {
	if it.done {
		return TlvEntry{}, false, nil
	}
	if it.pos >= it.limit {
		it.done = true
		return TlvEntry{}, false, nil
	}

	hdrPos, ok := addOverflow(it.tlvBase, it.pos)
	if !ok {
		it.done = true
		return TlvEntry{}, false, ErrInvalidImage
	}

	raw := make([]byte, tlvEntryHeaderSize)
	if err := it.flash.Read(hdrPos, raw); err != nil {
		it.done = true
		return TlvEntry{}, false, liftFlash(err)
	}
	var hdr tlvEntryHeader
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &hdr); err != nil {
		it.done = true
		return TlvEntry{}, false, ErrInvalidImage
	}

	payloadPos, ok := addOverflow(hdrPos, tlvEntryHeaderSize)
	if !ok {
		it.done = true
		return TlvEntry{}, false, ErrInvalidImage
	}
	next, ok := addOverflow(payloadPos, int(hdr.Len))
	if !ok {
		it.done = true
		return TlvEntry{}, false, ErrInvalidImage
	}
	if next-it.tlvBase > it.limit {
		it.done = true
		return TlvEntry{}, false, ErrInvalidImage
	}

	entry := TlvEntry{
		Kind:       hdr.Kind,
		PayloadLen: int(hdr.Len),
		flash:      it.flash,
		payloadPos: payloadPos,
	}
	it.pos = next - it.tlvBase
	return entry, true, nil
}

// addOverflow returns a+b and false if the addition overflowed a usable
// non-negative int.
func addOverflow(a, b int) (int, bool) {
	sum := a + b
	if sum < a || sum < b {
		return 0, false
	}
	return sum, true
}
