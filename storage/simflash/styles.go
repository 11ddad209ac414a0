package simflash

// AreaLayout describes the geometry of one named device profile's slot.
type AreaLayout struct {
	ReadSize  int
	WriteSize int
	EraseSize int
	Sectors   int
}

// Build constructs a SimFlash matching this profile.
func (a AreaLayout) Build() *SimFlash {
	return New(a.ReadSize, a.WriteSize, a.EraseSize, a.Sectors)
}

// Profile pairs a main and upgrade slot layout, as a real deployment
// always exposes exactly two slots of matching style.
type Profile struct {
	Name    string
	Main    AreaLayout
	Upgrade AreaLayout
}

// STM32F-style: a small number of large sectors. Stresses the minimum
// case -- image plus status tail must fit in a single upgrade sector.
var STM32F = Profile{
	Name:    "stm32f",
	Main:    AreaLayout{ReadSize: 1, WriteSize: 8, EraseSize: 128 * 1024, Sectors: 2},
	Upgrade: AreaLayout{ReadSize: 1, WriteSize: 8, EraseSize: 128 * 1024, Sectors: 1},
}

// K64-style: small uniform sectors. Its 8-byte write granule selects
// overwrite status mode.
var K64 = Profile{
	Name:    "k64",
	Main:    AreaLayout{ReadSize: 1, WriteSize: 8, EraseSize: 4 * 1024, Sectors: 128/4 + 1},
	Upgrade: AreaLayout{ReadSize: 1, WriteSize: 8, EraseSize: 4 * 1024, Sectors: 128/4 + 1},
}

// EXT-style: external flash with a wide upgrade-side write alignment.
var EXT = Profile{
	Name:    "ext",
	Main:    AreaLayout{ReadSize: 1, WriteSize: 4, EraseSize: 4 * 1024, Sectors: 128 / 4},
	Upgrade: AreaLayout{ReadSize: 1, WriteSize: 256, EraseSize: 4 * 1024, Sectors: 128 / 4},
}

// LPC-style: page-oriented device based on the LPC55S69, write size equal
// to erase size.
var LPC = Profile{
	Name:    "lpc",
	Main:    AreaLayout{ReadSize: 1, WriteSize: 512, EraseSize: 512, Sectors: 128 * 2},
	Upgrade: AreaLayout{ReadSize: 1, WriteSize: 512, EraseSize: 512, Sectors: 128 * 2},
}

// STM32H-style: large write granule, based on the STM32H745.
var STM32H = Profile{
	Name:    "stm32h",
	Main:    AreaLayout{ReadSize: 1, WriteSize: 32, EraseSize: 128 * 1024, Sectors: 4},
	Upgrade: AreaLayout{ReadSize: 1, WriteSize: 32, EraseSize: 128 * 1024, Sectors: 3},
}

// AllProfiles lists every named device profile, for table-driven tests and
// the bootctl CLI's --profile flag.
var AllProfiles = []Profile{STM32F, K64, EXT, LPC, STM32H}

// Build constructs the pair of simulated flashes for this profile.
func (p Profile) Build() (*SimFlash, *SimFlash) {
	return p.Main.Build(), p.Upgrade.Build()
}
