package simflash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mynewt.apache.org/secureboot/storage"
	"mynewt.apache.org/secureboot/storage/simflash"
)

func TestReadBeforeWriteIsNotWritten(t *testing.T) {
	f := simflash.New(1, 4, 16, 2)

	buf := make([]byte, 4)
	err := f.Read(0, buf)
	assert.Equal(t, storage.NotWritten, err)
}

func TestWriteRequiresErase(t *testing.T) {
	f := simflash.New(1, 4, 16, 2)

	err := f.Write(0, []byte{1, 2, 3, 4})
	assert.Equal(t, storage.NotErased, err)

	require.NoError(t, f.Erase(0, 16))
	require.NoError(t, f.Write(0, []byte{1, 2, 3, 4}))

	buf := make([]byte, 4)
	require.NoError(t, f.Read(0, buf))
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
}

func TestEraseThenWriteSecondTimeFailsWithoutReErase(t *testing.T) {
	f := simflash.New(1, 4, 16, 2)

	require.NoError(t, f.Erase(0, 16))
	require.NoError(t, f.Write(0, []byte{1, 2, 3, 4}))

	err := f.Write(0, []byte{5, 6, 7, 8})
	assert.Equal(t, storage.NotErased, err)
}

func TestInstallErasesAndPads(t *testing.T) {
	f := simflash.New(1, 4, 16, 4)

	image := make([]byte, 16+3)
	for i := range image {
		image[i] = byte(i + 1)
	}

	require.NoError(t, f.Install(image, 16))

	buf := make([]byte, len(image))
	require.NoError(t, f.Read(16, buf))
	assert.Equal(t, image, buf)

	// The write unit past the last full one was padded with 0xff, not left
	// unwritten.
	pad := make([]byte, 1)
	require.NoError(t, f.Read(16+19, pad))
	assert.Equal(t, byte(0xff), pad[0])
}

func TestInstallRejectsUnalignedOffset(t *testing.T) {
	f := simflash.New(1, 4, 16, 2)
	err := f.Install([]byte{1, 2, 3, 4}, 3)
	assert.Equal(t, storage.NotAligned, err)
}

func TestAllProfilesHaveDistinctGeometry(t *testing.T) {
	seen := map[string]bool{}
	seenGeom := map[[2]simflash.AreaLayout]bool{}
	for _, p := range simflash.AllProfiles {
		assert.False(t, seen[p.Name], "duplicate profile name %s", p.Name)
		seen[p.Name] = true

		geom := [2]simflash.AreaLayout{p.Main, p.Upgrade}
		assert.False(t, seenGeom[geom], "profile %s duplicates another profile's geometry", p.Name)
		seenGeom[geom] = true

		main, upgrade := p.Build()
		assert.Greater(t, main.Capacity(), 0)
		assert.Greater(t, upgrade.Capacity(), 0)
	}
}
