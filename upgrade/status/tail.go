package status

import (
	"bytes"
	"encoding/binary"

	"mynewt.apache.org/secureboot/storage"
)

// StatusTailSize is the on-flash size of StatusTail.
const StatusTailSize = 48

// tailMagic is the fixed 16-byte sentinel that marks a written tail.
var tailMagic = [16]byte{
	0x77, 0xc2, 0x95, 0xf3, 0x60, 0xd2, 0xef, 0x7f,
	0x35, 0x52, 0x50, 0x0f, 0x2c, 0xb6, 0x79, 0x80,
}

// overwriteAge marks a tail as overwrite-style rather than paged.
const overwriteAge = 0xff

// Paged-mode flag bits packed into StatusTail.Flags.
const (
	flagMoveDone = 1 << 0
	flagCopyDone = 1 << 1
	flagImageOk  = 1 << 2
)

// StatusTail is the fixed 48-byte record placed at the very end of a slot.
// Field order is wire-authoritative.
type StatusTail struct {
	EncKey      [16]byte
	MainSize    uint32
	UpgradeSize uint32
	HashSeed    uint32
	WriteLog    uint8
	EraseLog    uint8
	Flags       uint8
	Age         uint8
	Magic       [16]byte
}

// IsOverwrite reports whether Age marks this tail as overwrite-style.
func (t StatusTail) IsOverwrite() bool { return t.Age == overwriteAge }

// HasMagic reports whether the tail's magic field matches the expected
// sentinel -- a tail that fails this check is blank (or garbage) and is
// treated as blank for state-derivation purposes.
func (t StatusTail) HasMagic() bool { return t.Magic == tailMagic }

func unmarshalStatusTail(raw []byte) (StatusTail, error) {
	var t StatusTail
	if len(raw) != StatusTailSize {
		return t, storage.OutOfBounds
	}
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &t); err != nil {
		return t, err
	}
	return t, nil
}

func (t StatusTail) marshal() []byte {
	buf := new(bytes.Buffer)
	buf.Grow(StatusTailSize)
	_ = binary.Write(buf, binary.LittleEndian, t)
	return buf.Bytes()
}

// ReadTail reads the tail of the final erase unit of flash, at the offset
// described by layout.TailPos within that unit. A tail that reads back as
// storage.NotWritten is blank, not an error -- the caller gets a zero
// StatusTail with HasMagic() false.
func ReadTail(flash storage.ReadFlash, layout StatusLayout) (StatusTail, error) {
	lastSector := (flash.Capacity()/layout.EraseSize - 1) * layout.EraseSize
	pos := lastSector + layout.TailPos

	raw := make([]byte, StatusTailSize)
	if err := flash.Read(pos, raw); err != nil {
		if err == storage.NotWritten {
			return StatusTail{}, nil
		}
		return StatusTail{}, err
	}
	return unmarshalStatusTail(raw)
}

// readOverwriteFlag reads a single overwrite-mode flag cell. An erased
// (0xff) cell means the flag is unset; any other byte means it is set, per
// the rule that a flag write is a single non-0xff byte and never erases.
func readOverwriteFlag(flash storage.ReadFlash, lastSector, pos int) (bool, error) {
	buf := make([]byte, 1)
	if err := flash.Read(lastSector+pos, buf); err != nil {
		if err == storage.NotWritten {
			return false, nil
		}
		return false, err
	}
	return buf[0] != 0xff, nil
}
