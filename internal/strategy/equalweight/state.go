package equalweight

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// State is the equal-weight strategy state for one trading date. States are
// immutable once produced: Step builds fresh maps every hop and nothing
// mutates a stored state in place.
type State struct {
	// Returns maps each asset to its return for the period.
	Returns map[string]float64
	// PortfolioReturn is the weighted sum of asset returns.
	PortfolioReturn float64
	// IndexLevel is the index value on this date.
	IndexLevel float64
	// Weights maps each asset to its portfolio weight after this date.
	Weights map[string]float64
}

// Fingerprint returns an xxhash digest over a canonical encoding of the
// state. Two states are bit-identical iff their fingerprints match, which is
// how recomputation idempotence is verified.
func (s State) Fingerprint() uint64 {
	d := xxhash.New()
	writeFloat(d, s.PortfolioReturn)
	writeFloat(d, s.IndexLevel)
	writeMap(d, s.Returns)
	writeMap(d, s.Weights)
	return d.Sum64()
}

func writeFloat(d *xxhash.Digest, v float64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	_, _ = d.Write(buf[:])
}

func writeMap(d *xxhash.Digest, m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = d.WriteString(k)
		writeFloat(d, m[k])
	}
}
