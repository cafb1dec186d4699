package sim

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// nondeterministicSeed draws an engine seed from the operating system's
// entropy source. Used when the caller leaves Options.Seed unset.
func nondeterministicSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// rand.Read does not fail on supported platforms
		// https://pkg.go.dev/crypto/rand#Read
		panic(fmt.Sprintf("sim: reading random seed: %v", err))
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
