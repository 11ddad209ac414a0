package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mynewt.apache.org/secureboot/storage/simflash"
	"mynewt.apache.org/secureboot/upgrade/status"
)

func TestStyleSelection(t *testing.T) {
	cases := []struct {
		name  string
		info  status.SlotInfo
		style status.StatusStyle
	}{
		{"narrow write granule is overwrite", status.SlotInfo{WriteSize: 8, EraseSize: 128 * 1024}, status.OverWrite},
		{"boundary write size is overwrite", status.SlotInfo{WriteSize: 32, EraseSize: 128 * 1024}, status.OverWrite},
		{"wide write, small erase is paged", status.SlotInfo{WriteSize: 256, EraseSize: 4 * 1024}, status.Paged},
	}
	for _, c := range cases {
		assert.Equal(t, c.style, c.info.Style(), c.name)
	}
}

func TestStylePanicsOnUnsupportedGeometry(t *testing.T) {
	info := status.SlotInfo{WriteSize: 256, EraseSize: 128 * 1024}
	assert.Panics(t, func() { info.Style() })
}

func TestStatusLayoutOverwriteReservesThreeFlags(t *testing.T) {
	main, upgrade := simflash.STM32H.Build()
	mainInfo := status.FromData(main.Capacity(), main)
	upgradeInfo := status.FromData(upgrade.Capacity(), upgrade)

	layout := mainInfo.StatusLayout(upgradeInfo)
	require.Equal(t, status.OverWrite, layout.Style)
	require.Len(t, layout.OverwriteFlags, 3)

	// move_done, copy_done, image_ok sit below the tail, each on its own
	// write-unit, descending.
	assert.Less(t, layout.OverwriteFlags[0], layout.TailPos)
	assert.Less(t, layout.OverwriteFlags[1], layout.OverwriteFlags[0])
	assert.Less(t, layout.OverwriteFlags[2], layout.OverwriteFlags[1])
}

func TestStatusLayoutPagedHasNoOverwriteFlags(t *testing.T) {
	main, upgrade := simflash.LPC.Build()
	mainInfo := status.FromData(main.Capacity(), main)
	upgradeInfo := status.FromData(upgrade.Capacity(), upgrade)

	layout := mainInfo.StatusLayout(upgradeInfo)
	require.Equal(t, status.Paged, layout.Style)
	assert.Nil(t, layout.OverwriteFlags)
}

// installTailRegion erases the slot's final erase unit so its tail reads
// back as blank, for the blank-flash ReadTailStatus test below.
func installTailRegion(t *testing.T, flash *simflash.SimFlash, layout status.StatusLayout) {
	t.Helper()
	last := flash.Capacity() - layout.EraseSize
	require.NoError(t, flash.Erase(last, last+layout.EraseSize))
}

func TestDecideNoneWhenBothSlotsBlank(t *testing.T) {
	main := status.TailStatus{}
	upgrade := status.TailStatus{}

	state, _ := status.Decide(main, upgrade)
	assert.Equal(t, status.None, state)
}

func TestDecideRequestWhenUpgradeMagicOnly(t *testing.T) {
	main := status.TailStatus{}
	upgrade := status.TailStatus{Magic: true}

	state, _ := status.Decide(main, upgrade)
	assert.Equal(t, status.Request, state)
}

func TestDecideStartedWhenMainMetaNotMoveDone(t *testing.T) {
	main := status.TailStatus{Magic: true, Meta: true}
	upgrade := status.TailStatus{Magic: true}

	state, _ := status.Decide(main, upgrade)
	assert.Equal(t, status.Started, state)
}

func TestDecideMoveDoneWhenCopyNotDone(t *testing.T) {
	main := status.TailStatus{Magic: true, Meta: true, MoveDone: true}
	upgrade := status.TailStatus{Magic: true}

	state, _ := status.Decide(main, upgrade)
	assert.Equal(t, status.MoveDone, state)
}

func TestDecideCopyDoneWhenMainSwappingAndUpgradeMagicNoMeta(t *testing.T) {
	main := status.TailStatus{Magic: true, Meta: true, MoveDone: true, CopyDone: true}
	upgrade := status.TailStatus{Magic: true, Meta: false}

	state, _ := status.Decide(main, upgrade)
	assert.Equal(t, status.CopyDone, state)
}

func TestDecideRevertStartedWhenUpgradeMetaNotMoveDone(t *testing.T) {
	main := status.TailStatus{Magic: true, Meta: true, MoveDone: true, CopyDone: true}
	upgrade := status.TailStatus{Magic: true, Meta: true, MoveDone: false}

	state, _ := status.Decide(main, upgrade)
	assert.Equal(t, status.RevertStarted, state)
}

func TestDecideRevertMoveDoneWhenUpgradeMoveDone(t *testing.T) {
	main := status.TailStatus{Magic: true, Meta: true, MoveDone: true, CopyDone: true}
	upgrade := status.TailStatus{Magic: true, Meta: true, MoveDone: true}

	state, _ := status.Decide(main, upgrade)
	assert.Equal(t, status.RevertMoveDone, state)
}

func TestDecideImageOkIsTerminalRegardlessOfUpgradeSide(t *testing.T) {
	main := status.TailStatus{Magic: true, Meta: true, MoveDone: true, CopyDone: true, ImageOk: true}

	for _, upgrade := range []status.TailStatus{
		{},
		{Magic: true, Meta: true, MoveDone: true},
		{Magic: true, Meta: true, MoveDone: false},
	} {
		state, _ := status.Decide(main, upgrade)
		assert.Equal(t, status.ImageOk, state)
	}
}

func TestStateStringsAreStable(t *testing.T) {
	cases := map[status.State]string{
		status.None:           "none",
		status.Request:        "request",
		status.Started:        "started",
		status.MoveDone:       "move-done",
		status.CopyDone:       "copy-done",
		status.ImageOk:        "image-ok",
		status.RevertStarted:  "revert-started",
		status.RevertMoveDone: "revert-move-done",
	}
	for state, want := range cases {
		assert.Equal(t, want, state.String())
	}
}

func TestReadTailStatusOnBlankFlashIsZeroValue(t *testing.T) {
	main, upgrade := simflash.STM32H.Build()
	mainInfo := status.FromData(main.Capacity(), main)
	upgradeInfo := status.FromData(upgrade.Capacity(), upgrade)
	layout := mainInfo.StatusLayout(upgradeInfo)

	installTailRegion(t, main, layout)

	ts, err := status.ReadTailStatus(main, layout)
	require.NoError(t, err)
	assert.Equal(t, status.TailStatus{}, ts)
}
