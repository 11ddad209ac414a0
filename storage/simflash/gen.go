package simflash

import (
	"mynewt.apache.org/secureboot/artifact/image"
)

// GenBuilder assembles a signed fixture image and installs it into a
// caller-supplied simulator, for tests. It owns no state beyond its build
// parameters; call Build each time a fresh fixture is needed.
type GenBuilder struct {
	HeaderSize int
	BodySize   int
	Seed       uint64
	Version    image.Version
}

// DefaultGenBuilder matches the corpus fixture's conventional parameters:
// a 32-byte header, a 76137-byte body, and seed 1.
func DefaultGenBuilder() GenBuilder {
	return GenBuilder{
		HeaderSize: image.HeaderSize,
		BodySize:   76137,
		Seed:       1,
		Version:    image.Version{Major: 0, Minor: 1, Revision: 0},
	}
}

// Build assembles a signed fixture image and returns its raw bytes,
// without installing it anywhere.
func (g GenBuilder) Build() []byte {
	creator := image.Creator{
		HeaderSize: g.HeaderSize,
		BodySize:   g.BodySize,
		Seed:       g.Seed,
		Version:    g.Version,
	}
	return creator.Build()
}

// Install builds a signed fixture and installs it into flash at the
// given offset, the one-call path most tests use.
func (g GenBuilder) Install(flash *SimFlash, offset int) error {
	return flash.Install(g.Build(), offset)
}
