package sector

// P+Q parity (ECMA-130 Annex A) and scrambling (Annex B) for raw CD
// sectors. Both are genuine Reed-Solomon cross-interleave / LFSR math that
// this port does not reimplement (spec.md Non-goals: "ECMA-130
// Reed-Solomon/scrambling leaf math beyond a documented stub"). Both are
// no-ops so callers get a sector of the right shape and size without a
// from-scratch reimplementation of the ECMA-130 annexes.

// WriteParity fills the P and Q parity bytes (sector offsets 2076..2351)
// of a full 2352-byte raw sector. No-op stub; see package doc.
func WriteParity(sector []byte) {
	_ = sector
}

// Scramble applies the ECMA-130 Annex B scrambling sequence to a sector's
// post-sync bytes. No-op stub; see package doc. It is documented as its
// own inverse so callers may apply it unconditionally on both write and
// read paths once implemented.
func Scramble(data []byte) {
	_ = data
}
