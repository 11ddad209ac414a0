package status

import (
	"mynewt.apache.org/secureboot/storage"
)

// State is one of the derived upgrade states. It is never stored directly
// on flash -- it is always recomputed from the pair of slot tails.
type State int

const (
	None State = iota
	Request
	Started
	MoveDone
	CopyDone
	ImageOk
	RevertStarted
	RevertMoveDone
)

func (s State) String() string {
	switch s {
	case None:
		return "none"
	case Request:
		return "request"
	case Started:
		return "started"
	case MoveDone:
		return "move-done"
	case CopyDone:
		return "copy-done"
	case ImageOk:
		return "image-ok"
	case RevertStarted:
		return "revert-started"
	case RevertMoveDone:
		return "revert-move-done"
	default:
		return "unknown"
	}
}

// TailStatus is the set of boolean facts read out of one slot's tail that
// the state machine actually discriminates on. Meta is true once the
// tail's size/hash-seed fields have been populated -- a plain magic write
// with those fields still zero is an earlier, distinct stage.
type TailStatus struct {
	Magic    bool
	Meta     bool
	MoveDone bool
	CopyDone bool
	ImageOk  bool
}

// lastSectorOffset returns the byte offset of the start of the final erase
// unit, per the layout's effective erase size.
func lastSectorOffset(flash storage.ReadFlash, layout StatusLayout) int {
	return (flash.Capacity()/layout.EraseSize - 1) * layout.EraseSize
}

// ReadTailStatus reads a slot's tail and, for a non-blank tail, its
// move_done/copy_done/image_ok flags -- from the tail's own Flags byte in
// Paged style, or from the three independent flag cells in OverWrite
// style. A tail that reads as blank (no magic) yields the zero TailStatus,
// not an error.
func ReadTailStatus(flash storage.ReadFlash, layout StatusLayout) (TailStatus, error) {
	tail, err := ReadTail(flash, layout)
	if err != nil {
		return TailStatus{}, err
	}
	if !tail.HasMagic() {
		return TailStatus{}, nil
	}

	ts := TailStatus{
		Magic: true,
		Meta:  tail.MainSize != 0 || tail.UpgradeSize != 0 || tail.HashSeed != 0,
	}

	if layout.Style == Paged {
		ts.MoveDone = tail.Flags&flagMoveDone != 0
		ts.CopyDone = tail.Flags&flagCopyDone != 0
		ts.ImageOk = tail.Flags&flagImageOk != 0
		return ts, nil
	}

	lastSector := lastSectorOffset(flash, layout)
	moveDone, err := readOverwriteFlag(flash, lastSector, layout.OverwriteFlags[0])
	if err != nil {
		return TailStatus{}, err
	}
	copyDone, err := readOverwriteFlag(flash, lastSector, layout.OverwriteFlags[1])
	if err != nil {
		return TailStatus{}, err
	}
	imageOk, err := readOverwriteFlag(flash, lastSector, layout.OverwriteFlags[2])
	if err != nil {
		return TailStatus{}, err
	}
	ts.MoveDone = moveDone
	ts.CopyDone = copyDone
	ts.ImageOk = imageOk
	return ts, nil
}

// Decide derives the upgrade state and a human-readable next action from
// both slots' tail status, per the state table. main.ImageOk is terminal:
// any upgrade-side tail alongside it still resolves to ImageOk, never
// re-arming a revert.
func Decide(main, upgrade TailStatus) (State, string) {
	mainSwapping := main.Magic && main.Meta && main.MoveDone && main.CopyDone

	switch {
	case mainSwapping && main.ImageOk:
		return ImageOk, "boot main, no further changes"

	case mainSwapping && upgrade.Magic && upgrade.Meta && upgrade.MoveDone:
		return RevertMoveDone, "undo: copy reverse"

	case mainSwapping && upgrade.Magic && upgrade.Meta && !upgrade.MoveDone:
		return RevertStarted, "undo: move reverse"

	case mainSwapping && upgrade.Magic && !upgrade.Meta:
		return CopyDone, "if ok absent and reverts enabled, arm revert"

	case main.Magic && main.Meta && main.MoveDone && !main.CopyDone && upgrade.Magic:
		return MoveDone, "resume copy"

	case main.Magic && main.Meta && !main.MoveDone && upgrade.Magic:
		return Started, "resume move"

	case upgrade.Magic:
		return Request, "begin swap"

	default:
		return None, "boot main"
	}
}
