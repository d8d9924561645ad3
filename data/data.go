// Package data holds static tuning tables consulted by callers that want
// to bias movement behavior by scenario context — the movement engine
// itself has no opinion on these, they're a convenience for a caller
// layering scenario scripting on top (e.g. a mission script deciding how
// aggressively idle units should go looking for a fight).
package data

// SeekEnemiesBias scales how readily an idle (ARRIVED) unit is switched
// into SEEK_ENEMIES, keyed by a coarse "threat level" a mission script
// assigns to the current scenario phase. Indexes beyond the table's
// length should be treated as the last entry's value.
var SeekEnemiesBias = [5]float64{
	0.0, // calm: never auto-seek
	0.1,
	0.3,
	0.6,
	1.0, // overrun: always auto-seek
}

// DefaultFlockSizeByUnitCount buckets a selection's size into a suggested
// maximum flock size, so a very large selection gets split into several
// flocks converging on the same destination rather than one enormous one
// whose cohesion force never settles. Index 0 covers 1 unit, and so on;
// selections larger than the table covers use the last entry.
var DefaultFlockSizeByUnitCount = []int{
	1, 2, 4, 8, 8, 16, 16, 16, 24, 24, 32,
}

// FlockSizeFor returns the suggested flock size for a selection of n
// units, from DefaultFlockSizeByUnitCount.
func FlockSizeFor(n int) int {
	if n <= 0 {
		return 0
	}
	idx := n - 1
	if idx >= len(DefaultFlockSizeByUnitCount) {
		idx = len(DefaultFlockSizeByUnitCount) - 1
	}
	return DefaultFlockSizeByUnitCount[idx]
}
