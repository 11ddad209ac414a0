package storage

// MappedPartition is a Partition whose parent is also execute-in-place
// mapped; it additionally implements MappedFlash. A plain Partition over a
// non-mapped parent deliberately does NOT implement MappedFlash -- only
// slots that are genuinely XIP expose GetBase, so callers that
// type-assert for it get an honest answer.
type MappedPartition struct {
	*Partition
	base int
}

// NewMappedPartition constructs a partition view over a mapped parent,
// translating the parent's mapped base by this partition's offset.
func NewMappedPartition(parent interface {
	ReadFlash
	MappedFlash
}, base, length int) (*MappedPartition, error) {
	p, err := NewPartition(parent, base, length)
	if err != nil {
		return nil, err
	}
	return &MappedPartition{Partition: p, base: parent.GetBase() + base}, nil
}

// GetBase implements MappedFlash.
func (m *MappedPartition) GetBase() int { return m.base }
