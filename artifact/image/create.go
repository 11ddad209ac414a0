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
	"encoding/binary"
	"math/rand/v2"
)

// Creator assembles a fixture image in memory: a header zero-padded out to
// HeaderSize bytes, a PRNG-filled body, and a trailing TLV region carrying a single SHA-256
// digest over the header and body. It does not touch flash; callers pass
// the result to a flash's Install method.
type Creator struct {
	HeaderSize int
	BodySize   int
	Seed       uint64
	Version    Version
}

// NewCreator returns a Creator with the teacher corpus's conventional
// defaults: a 32-byte header and a seed of 1.
func NewCreator() Creator {
	return Creator{
		HeaderSize: HeaderSize,
		BodySize:   4096,
		Seed:       1,
	}
}

// Build assembles the fixture and returns its raw on-flash bytes.
func (c Creator) Build() []byte {
	body := make([]byte, c.BodySize)
	rng := rand.New(rand.NewPCG(c.Seed, c.Seed))
	for i := range body {
		body[i] = byte(rng.Uint32())
	}

	hdrPad := c.HeaderSize - HeaderSize
	if hdrPad < 0 {
		hdrPad = 0
	}

	header := Header{
		Magic:            Magic,
		LoadAddr:         0,
		HdrSize:          uint16(c.HeaderSize),
		ProtectedTlvSize: 0,
		ImgSize:          uint32(len(body)),
		Flags:            0,
		Version:          c.Version,
	}

	buf := new(bytes.Buffer)
	buf.Write(header.marshal())
	buf.Write(make([]byte, hdrPad))
	buf.Write(body)

	sum := sha256.Sum256(buf.Bytes())

	info := TlvInfo{
		Magic: TlvInfoMagic,
		Len:   uint16(TlvInfoSize + tlvEntryHeaderSize + len(sum)),
	}
	// binary.Write never errors against a bytes.Buffer.
	_ = binary.Write(buf, binary.LittleEndian, info)
	_ = binary.Write(buf, binary.LittleEndian, tlvEntryHeader{
		Kind: TlvSHA256,
		Len:  uint16(len(sum)),
	})
	buf.Write(sum[:])

	return buf.Bytes()
}
