package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mynewt.apache.org/secureboot/storage"
	"mynewt.apache.org/secureboot/storage/simflash"
)

func simFlash(t *testing.T) *simflash.SimFlash {
	t.Helper()
	return simflash.New(1, 4, 16, 4)
}

type fakeFlash struct {
	readSize int
	capacity int
}

func (f fakeFlash) ReadSize() int { return f.readSize }
func (f fakeFlash) Capacity() int { return f.capacity }
func (f fakeFlash) Read(offset int, buf []byte) error { return nil }

func TestCheckReadBoundsBeforeAlignment(t *testing.T) {
	f := fakeFlash{readSize: 4, capacity: 16}

	// Out of bounds AND misaligned: bounds must win.
	err := storage.CheckRead(f, 15, 5)
	assert.Equal(t, storage.OutOfBounds, err)
}

func TestCheckReadAlignment(t *testing.T) {
	f := fakeFlash{readSize: 4, capacity: 16}

	assert.NoError(t, storage.CheckRead(f, 0, 4))
	assert.Equal(t, storage.NotAligned, storage.CheckRead(f, 1, 4))
	assert.Equal(t, storage.NotAligned, storage.CheckRead(f, 0, 3))
}

func TestCheckEraseOrdering(t *testing.T) {
	flash := simFlash(t)

	assert.Equal(t, storage.OutOfBounds, storage.CheckErase(flash, 8, 4))
	assert.Equal(t, storage.OutOfBounds, storage.CheckErase(flash, 0, flash.Capacity()+1))
	assert.Equal(t, storage.NotAligned, storage.CheckErase(flash, 1, 4))
}

func TestErrorStrings(t *testing.T) {
	cases := map[storage.Error]string{
		storage.NotAligned: "storage: not aligned",
		storage.OutOfBounds: "storage: out of bounds",
		storage.NotWritten: "storage: not written",
		storage.NotErased: "storage: not erased",
	}
	for err, want := range cases {
		assert.Equal(t, want, err.Error())
	}
}
