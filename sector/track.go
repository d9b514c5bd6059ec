package sector

import burnerrors "github.com/burnshell/burn/errors"

// Source is the polymorphic track-data producer contract from §4.4: Read
// returns the number of bytes actually read and whether it hit end of
// input (a short, non-error read at EOF is expected, not an error).
// Subchannel data is optional: a Source that carries it also implements
// SubSource.
type Source interface {
	Read(buf []byte) (n int, eof bool)
}

// SubSource is implemented by a Source that also carries its own raw
// subchannel data, in place of the Q channel that SubcodeUser fabricates.
type SubSource interface {
	ReadSub(buf []byte) (n int, eof bool)
}

// PrematureEOIPolicy is the Track.EndOnPrematureEOI tri-state, matching the
// source's field of the same name: 0 = pad with zeros on a short read,
// 1 = fail on a short read with ErrPrematureEOI, 2 = that failure has been
// raised (FillPayload replaces 1 with 2 when it fails).
type PrematureEOIPolicy int

const (
	PrematureEOIPad PrematureEOIPolicy = iota
	PrematureEOIFail
	PrematureEOIFailed
)

// Track carries one track's source and bookkeeping state through the
// sector encoder (§4.4).
type Track struct {
	Source Source
	Mode   Mode

	Offset      int64 // prepended zero bytes
	OffsetCount int64 // how many have been emitted so far
	Tail        int64 // trailing zero bytes
	TailCount   int64

	SourceCount    int64
	WriteCount     int64
	WrittenSectors int64

	OpenEnded         bool
	EndOnPrematureEOI PrematureEOIPolicy
	Eos               bool
	TrackDataDone     bool

	CdxaConversion  int // 1: drop first 8 bytes per sector
	SwapSourceBytes bool
}

// FillPayload reads one sector's worth of payload bytes (Mode.Length(),
// minus 8 if CdxaConversion) from the track, honoring the offset/tail
// zero-padding and premature-EOI policy from §4.4.
func (t *Track) FillPayload(dst []byte) burnerrors.DriverError {
	want := t.Mode.Length()
	if t.CdxaConversion == 1 {
		want -= 8
	}
	if len(dst) < want {
		return burnerrors.ErrBufferTooSmall
	}

	if t.OffsetCount < t.Offset {
		n := t.Offset - t.OffsetCount
		if n > int64(want) {
			n = int64(want)
		}
		for i := int64(0); i < n; i++ {
			dst[i] = 0
		}
		t.OffsetCount += n
		if n == int64(want) {
			return nil
		}
		dst = dst[n:]
		want -= int(n)
	}

	if !t.TrackDataDone {
		n, eof := t.Source.Read(dst[:want])
		t.SourceCount += int64(n)
		if t.SwapSourceBytes {
			swapBytePairs(dst[:n])
		}
		if n < want {
			t.TrackDataDone = true
			t.Eos = eof
			if !t.OpenEnded {
				if t.EndOnPrematureEOI == PrematureEOIFail {
					t.EndOnPrematureEOI = PrematureEOIFailed
					return burnerrors.ErrPrematureEOI
				}
			}
			for i := n; i < want; i++ {
				dst[i] = 0
			}
		}
		return nil
	}

	for i := range dst[:want] {
		dst[i] = 0
	}
	t.TailCount += int64(want)
	return nil
}

func swapBytePairs(b []byte) {
	for i := 0; i+1 < len(b); i += 2 {
		b[i], b[i+1] = b[i+1], b[i]
	}
}
