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
	"crypto/sha256"

	"mynewt.apache.org/secureboot/storage"
)

// hashChunkSize bounds the streaming hash buffer: Validate never holds more
// than this many bytes of image body in memory at once.
const hashChunkSize = 128

// Image borrows a flash handle and reads through it on demand; it never
// copies the image body into memory. FromFlash only validates the header
// and the TlvInfo record -- it does not walk or verify the TLV chain, so
// size queries are available immediately on an image whose TLVs have not
// yet been checked.
type Image struct {
	flash   storage.ReadFlash
	header  Header
	tlvBase int
	tlvSize int
}

// FromFlash reads the header from offset 0 of flash and locates the TLV
// region. It returns ErrInvalidImage if the header magic or TlvInfo magic
// is wrong, or if the header/TLV offset arithmetic overflows or places the
// TlvInfo record past the end of flash.
func FromFlash(flash storage.ReadFlash) (*Image, error) {
	raw := make([]byte, HeaderSize)
	if err := flash.Read(0, raw); err != nil {
		return nil, liftFlash(err)
	}
	header, err := unmarshalHeader(raw)
	if err != nil {
		return nil, err
	}
	if header.Magic != Magic {
		return nil, ErrInvalidImage
	}

	tlvBase, ok := addOverflow(int(header.HdrSize), int(header.ImgSize))
	if !ok || tlvBase > flash.Capacity()-TlvInfoSize {
		return nil, ErrInvalidImage
	}

	infoRaw := make([]byte, TlvInfoSize)
	if err := flash.Read(tlvBase, infoRaw); err != nil {
		return nil, liftFlash(err)
	}
	info, err := unmarshalTlvInfo(infoRaw)
	if err != nil {
		return nil, err
	}
	if info.Magic != TlvInfoMagic {
		return nil, ErrInvalidImage
	}

	return &Image{
		flash:   flash,
		header:  header,
		tlvBase: tlvBase,
		tlvSize: int(info.Len),
	}, nil
}

// Header returns the parsed image header.
func (img *Image) Header() Header { return img.header }

// FullImageSize is hdr_size + img_size + tlv_size: the total on-flash
// footprint of the image, header through the end of its TLV region.
func (img *Image) FullImageSize() int {
	return img.tlvBase + img.tlvSize
}

// ImageBase returns the address at which the image body begins on a
// memory-mapped flash: the flash's mapped base plus the header size.
func (img *Image) ImageBase(flash storage.MappedFlash) int {
	return flash.GetBase() + int(img.header.HdrSize)
}

// Tlvs returns a lazy iterator over this image's TLV chain.
func (img *Image) Tlvs() (*TlvIter, error) {
	raw := make([]byte, TlvInfoSize)
	if err := img.flash.Read(img.tlvBase, raw); err != nil {
		return nil, liftFlash(err)
	}
	info, err := unmarshalTlvInfo(raw)
	if err != nil {
		return nil, err
	}
	if info.Magic != TlvInfoMagic {
		return nil, ErrInvalidImage
	}

	return &TlvIter{
		flash:   img.flash,
		tlvBase: img.tlvBase,
		limit:   int(info.Len),
		pos:     TlvInfoSize,
	}, nil
}

// Validate walks every TLV, requires exactly one SHA-256 entry and no
// unrecognized kinds, and verifies that entry's digest against a streaming
// SHA-256 of bytes [0, tlv_base) -- header, header padding and image body,
// but not the TLV region itself. Validation is read-only and idempotent.
func (img *Image) Validate() error {
	it, err := img.Tlvs()
	if err != nil {
		return err
	}

	var shaEntry *TlvEntry
	for {
		entry, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		switch entry.Kind {
		case TlvSHA256:
			if shaEntry != nil {
				return ErrInvalidImage
			}
			e := entry
			shaEntry = &e
		default:
			return ErrInvalidImage
		}
	}

	if shaEntry == nil {
		return ErrInvalidImage
	}
	if shaEntry.PayloadLen != sha256.Size {
		return ErrInvalidImage
	}

	want := make([]byte, sha256.Size)
	if err := shaEntry.ReadData(want); err != nil {
		return err
	}

	got, err := img.hashBody()
	if err != nil {
		return err
	}

	if !bytes.Equal(want, got) {
		return ErrInvalidImage
	}
	return nil
}

// hashBody computes the SHA-256 digest of [0, tlv_base) by streaming reads
// from flash in fixed-size chunks, never materializing the whole image
// body in memory.
func (img *Image) hashBody() ([]byte, error) {
	h := sha256.New()
	buf := make([]byte, hashChunkSize)

	remaining := img.tlvBase
	offset := 0
	for remaining > 0 {
		n := hashChunkSize
		if remaining < n {
			n = remaining
		}
		if err := img.flash.Read(offset, buf[:n]); err != nil {
			return nil, liftFlash(err)
		}
		h.Write(buf[:n])
		offset += n
		remaining -= n
	}

	return h.Sum(nil), nil
}
