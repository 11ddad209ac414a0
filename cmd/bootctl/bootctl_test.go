package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runBootctl(t *testing.T, args ...string) string {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestInstallThenInspectRoundTripsThroughStateDir(t *testing.T) {
	stateDir := t.TempDir()

	runBootctl(t, "install", "--profile", "lpc", "--state-dir", stateDir)

	mainPath, upgradePath := statePaths(stateDir)
	require.FileExists(t, mainPath)
	require.FileExists(t, upgradePath)

	runBootctl(t, "inspect", "--state-dir", stateDir)
}

func TestValidatePassesAfterInstall(t *testing.T) {
	stateDir := t.TempDir()

	runBootctl(t, "install", "--profile", "stm32f", "--state-dir", stateDir)

	main, _, err := loadOrBuildSlots("", "", stateDir)
	require.NoError(t, err)
	require.Greater(t, main.Capacity(), 0)
	require.NoError(t, validateSlot("main", main))
}

func TestSwapPlanRunsCleanlyOnBareUpgradeMagic(t *testing.T) {
	runBootctl(t, "swap-plan", "--upgrade-magic")
}

func TestStatePathsAreDistinct(t *testing.T) {
	mainPath, upgradePath := statePaths(filepath.Join(t.TempDir()))
	require.NotEqual(t, mainPath, upgradePath)
}
