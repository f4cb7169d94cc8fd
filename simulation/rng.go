// SPDX-License-Identifier: MIT

package simulation

import "math/rand"

// defaultSeed is used when neither WithSeed nor WithRand is given, so an
// unconfigured Simulation is still reproducible.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed==0 maps to defaultSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}
