package simflash_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"mynewt.apache.org/secureboot/storage/simflash"
)

func TestDumpLoadRoundTrip(t *testing.T) {
	orig := simflash.New(1, 8, 128*1024, 2)

	gen := simflash.DefaultGenBuilder()
	require.NoError(t, gen.Install(orig, 0))

	var buf bytes.Buffer
	require.NoError(t, orig.Dump(&buf))

	loaded, err := simflash.Load(&buf)
	require.NoError(t, err)

	require.Equal(t, orig.ReadSize(), loaded.ReadSize())
	require.Equal(t, orig.WriteSize(), loaded.WriteSize())
	require.Equal(t, orig.EraseSize(), loaded.EraseSize())
	require.Equal(t, orig.Capacity(), loaded.Capacity())

	origBytes := make([]byte, orig.Capacity())
	loadedBytes := make([]byte, loaded.Capacity())

	// Only the written prefix is readable; read just the fixture's length
	// to stay within what Install actually wrote.
	fixture := gen.Build()
	n := len(fixture)
	require.NoError(t, orig.Read(0, origBytes[:n]))
	require.NoError(t, loaded.Read(0, loadedBytes[:n]))
	require.Equal(t, origBytes[:n], loadedBytes[:n])
}
