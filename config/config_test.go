package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mynewt.apache.org/secureboot/artifact/flash"
	"mynewt.apache.org/secureboot/config"
)

func slotDoc(mainOffset, mainSize, upgradeOffset, upgradeSize int) map[string]interface{} {
	slot := func(device, offset, size int) map[string]interface{} {
		return map[string]interface{}{
			"device":     device,
			"offset":     offset,
			"size":       size,
			"read_size":  1,
			"write_size": 8,
			"erase_size": 4096,
		}
	}
	return map[string]interface{}{
		"slots": map[string]interface{}{
			"main":    slot(0, mainOffset, mainSize),
			"upgrade": slot(0, upgradeOffset, upgradeSize),
		},
	}
}

func TestReadDeviceMapHappyPath(t *testing.T) {
	doc := slotDoc(0, 128*1024, 128*1024, 128*1024)

	dm, err := config.ReadDeviceMap(doc)
	require.NoError(t, err)
	assert.Empty(t, dm.Overlaps)
	assert.Empty(t, dm.IdConflicts)
	assert.Equal(t, flash.AreaNameMain, dm.Main.Area.Name)
	assert.Equal(t, 128*1024, dm.Main.Area.Size)
	assert.Equal(t, 8, dm.Upgrade.WriteSize)
}

func TestReadDeviceMapDetectsOverlap(t *testing.T) {
	doc := slotDoc(0, 128*1024, 64*1024, 128*1024)

	dm, err := config.ReadDeviceMap(doc)
	require.NoError(t, err)
	assert.Len(t, dm.Overlaps, 1)
	assert.Contains(t, dm.ErrorText(), "Overlapping flash areas")
}

func TestReadDeviceMapRejectsMissingSlot(t *testing.T) {
	doc := map[string]interface{}{
		"slots": map[string]interface{}{
			"main": map[string]interface{}{
				"device": 0, "offset": 0, "size": 1024,
				"read_size": 1, "write_size": 8, "erase_size": 4096,
			},
		},
	}

	_, err := config.ReadDeviceMap(doc)
	assert.Error(t, err)
}

func TestReadDeviceMapRejectsMissingField(t *testing.T) {
	doc := map[string]interface{}{
		"slots": map[string]interface{}{
			"main": map[string]interface{}{
				"device": 0, "offset": 0, "size": 1024, "read_size": 1, "write_size": 8,
				// erase_size omitted
			},
			"upgrade": map[string]interface{}{
				"device": 0, "offset": 1024, "size": 1024,
				"read_size": 1, "write_size": 8, "erase_size": 4096,
			},
		},
	}

	_, err := config.ReadDeviceMap(doc)
	assert.Error(t, err)
}

func TestSlotGeometryAreaLayoutDerivesSectorCount(t *testing.T) {
	doc := slotDoc(0, 4*4096, 4*4096, 2*4096)

	dm, err := config.ReadDeviceMap(doc)
	require.NoError(t, err)

	layout := dm.Main.AreaLayout()
	assert.Equal(t, 4, layout.Sectors)
	assert.Equal(t, 4096, layout.EraseSize)
}
