package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mynewt.apache.org/secureboot/storage"
	"mynewt.apache.org/secureboot/storage/simflash"
)

func TestPartitionTranslatesOffsets(t *testing.T) {
	parent := simflash.New(1, 4, 16, 4)
	require.NoError(t, parent.Install(make([]byte, 16), 16))

	part, err := storage.NewPartition(parent, 16, 16)
	require.NoError(t, err)
	require.Equal(t, 16, part.Capacity())

	buf := make([]byte, 4)
	require.NoError(t, part.Read(0, buf))
}

func TestPartitionRejectsEscapingRange(t *testing.T) {
	parent := simflash.New(1, 4, 16, 4)

	_, err := storage.NewPartition(parent, 48, 32)
	require.Equal(t, storage.OutOfBounds, err)

	_, err = storage.NewPartition(parent, 0, 0)
	require.Equal(t, storage.OutOfBounds, err)
}

type mappedSim struct {
	*simflash.SimFlash
	base int
}

func (m mappedSim) GetBase() int { return m.base }

func TestMappedPartitionTranslatesBase(t *testing.T) {
	parent := mappedSim{SimFlash: simflash.New(1, 4, 16, 4), base: 0x08000000}

	part, err := storage.NewMappedPartition(parent, 16, 16)
	require.NoError(t, err)
	require.Equal(t, 0x08000000+16, part.GetBase())
}
