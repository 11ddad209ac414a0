package status

// StatusLayout is a pure descriptor of where a slot's status data lives,
// computed from both slots' geometry and image sizes. It holds no flash
// handle and no buffers.
type StatusLayout struct {
	Style        StatusStyle
	EraseSize    int
	WriteSize    int
	ImageSectors [2]int // [main, upgrade]

	// TailPos is the offset of the StatusTail within the slot's final
	// erase unit.
	TailPos int

	// OverwriteFlags holds the offsets, within the final erase unit, of
	// the move_done, copy_done and image_ok flag cells, highest address
	// first. Nil in Paged style, where the tail's Flags byte carries them
	// instead.
	OverwriteFlags []int

	// InlineHashes is the count of sector hashes that fit in the space
	// between the flags (or tail) and the erase-unit boundary below them.
	InlineHashes int

	// HashPages is the sequence of per-sector hash counts for any
	// additional erase units needed below the final one.
	HashPages []int
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// StatusLayout computes the status layout for this slot, given the other
// slot's geometry and image size. Style is derived from this slot's own
// write granule.
func (s SlotInfo) StatusLayout(upgrade SlotInfo) StatusLayout {
	eraseSize := s.EraseSize
	if upgrade.EraseSize > eraseSize {
		eraseSize = upgrade.EraseSize
	}

	imageSectors := [2]int{
		ceilDiv(s.ImageSize, eraseSize),
		ceilDiv(upgrade.ImageSize, eraseSize),
	}
	style := s.Style()

	pos := eraseSize
	pos -= StatusTailSize
	tailPos := pos

	var flags []int
	if style == OverWrite {
		pos &^= s.WriteSize - 1

		pos -= s.WriteSize
		moveDone := pos

		pos -= s.WriteSize
		copyDone := pos

		pos -= s.WriteSize
		imageOk := pos

		flags = []int{moveDone, copyDone, imageOk}
	}

	endHashes := pos
	pos &^= eraseSize - 1

	totalSectors := imageSectors[0] + imageSectors[1]
	inlineHashes := (endHashes - pos) / 4
	if inlineHashes > totalSectors {
		inlineHashes = totalSectors
	}

	var hashPages []int
	remaining := totalSectors - inlineHashes
	for remaining > 0 {
		n := eraseSize / 4
		if remaining < n {
			n = remaining
		}
		hashPages = append(hashPages, n)
		remaining -= n
	}

	return StatusLayout{
		Style:          style,
		EraseSize:      eraseSize,
		WriteSize:      s.WriteSize,
		ImageSectors:   imageSectors,
		TailPos:        tailPos,
		OverwriteFlags: flags,
		InlineHashes:   inlineHashes,
		HashPages:      hashPages,
	}
}
