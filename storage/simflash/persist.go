package simflash

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Dump writes this simulator's full state -- geometry, byte contents and
// per-write-unit page state -- to w, so a CLI invocation can hand the
// flash image to a later, separate invocation. This is a local on-disk
// format for this repository's own tooling, not an interchange format.
func (f *SimFlash) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	header := []int32{
		int32(f.readSize), int32(f.writeSize), int32(f.eraseSize), int32(len(f.data)),
	}
	for _, v := range header {
		if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	if _, err := bw.Write(f.data); err != nil {
		return err
	}

	pages := make([]byte, len(f.pages))
	for i, p := range f.pages {
		pages[i] = byte(p)
	}
	if _, err := bw.Write(pages); err != nil {
		return err
	}

	return bw.Flush()
}

// Load reconstructs a SimFlash previously written with Dump.
func Load(r io.Reader) (*SimFlash, error) {
	br := bufio.NewReader(r)

	var readSize, writeSize, eraseSize, dataLen int32
	for _, v := range []*int32{&readSize, &writeSize, &eraseSize, &dataLen} {
		if err := binary.Read(br, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	data := make([]byte, dataLen)
	if _, err := io.ReadFull(br, data); err != nil {
		return nil, err
	}

	pagesPerSector := int(eraseSize) / int(writeSize)
	sectors := int(dataLen) / int(eraseSize)
	pageBytes := make([]byte, sectors*pagesPerSector)
	if _, err := io.ReadFull(br, pageBytes); err != nil {
		return nil, err
	}

	pages := make([]PageState, len(pageBytes))
	for i, b := range pageBytes {
		pages[i] = PageState(b)
	}

	return &SimFlash{
		readSize:  int(readSize),
		writeSize: int(writeSize),
		eraseSize: int(eraseSize),
		data:      data,
		pages:     pages,
	}, nil
}
