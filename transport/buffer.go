// Package transport implements the command-level primitives shared by every
// MMC/SBC operation: the fixed-size transfer buffer, the command descriptor,
// sense decoding, and the big-endian integer packing every multi-byte CDB
// field needs. It corresponds to C1 in the design.
package transport

import (
	"io"

	"github.com/noxer/bytewriter"

	burnerrors "github.com/burnshell/burn/errors"
)

// DefaultPayloadSize is the platform-defined payload size used by most
// drivers: 32 KiB, enough for the largest single MMC data-in transfer this
// layer issues in one go.
const DefaultPayloadSize = 32 * 1024

// OverrunSlack is appended to every Buffer's capacity so that commands which
// (mis)report slightly more data than expected don't write past the backing
// slice. Capacity() includes it, and SetUsed and Writer accept byte counts
// that reach into it.
const OverrunSlack = 4 * 1024

// Buffer is a fixed-size byte container passed by exclusive reference to
// command functions. It tracks how much of its capacity is actually in use,
// both in bytes and in whole sectors, mirroring §3.1 of the design.
type Buffer struct {
	data         []byte
	usedBytes    int
	usedSectors  int
	sectorLength int
}

// NewBuffer allocates a Buffer with the default payload size and overrun
// slack, addressed in sectorLength-byte sectors (2048 for Mode-1 data, 2352
// for raw CD sectors, etc.)
func NewBuffer(sectorLength int) *Buffer {
	return NewBufferSize(DefaultPayloadSize, sectorLength)
}

// NewBufferSize allocates a Buffer with an explicit payload capacity (before
// overrun slack is added).
func NewBufferSize(payloadSize, sectorLength int) *Buffer {
	return &Buffer{
		data:         make([]byte, payloadSize+OverrunSlack),
		sectorLength: sectorLength,
	}
}

// Bytes returns the full backing slice, including unused overrun slack.
// Callers that need only the in-use portion should use Used().
func (b *Buffer) Bytes() []byte { return b.data }

// Used returns the slice of the buffer actually holding valid data.
func (b *Buffer) Used() []byte { return b.data[:b.usedBytes] }

// Capacity returns the total number of bytes available, including overrun
// slack.
func (b *Buffer) Capacity() int { return len(b.data) }

// UsedBytes returns the number of bytes currently considered valid.
func (b *Buffer) UsedBytes() int { return b.usedBytes }

// UsedSectors returns the number of whole sectors currently considered valid.
func (b *Buffer) UsedSectors() int { return b.usedSectors }

// SetUsed records how much of the buffer holds valid data, recomputing the
// sector count from sectorLength. It returns ErrBufferTooSmall if n exceeds
// the buffer's capacity.
func (b *Buffer) SetUsed(n int) burnerrors.DriverError {
	if n > len(b.data) {
		return burnerrors.ErrBufferTooSmall.WithMessage("SetUsed exceeds capacity")
	}
	b.usedBytes = n
	if b.sectorLength > 0 {
		b.usedSectors = n / b.sectorLength
	}
	return nil
}

// Reset marks the buffer as empty without touching its backing storage.
func (b *Buffer) Reset() {
	b.usedBytes = 0
	b.usedSectors = 0
}

// Writer returns an io.Writer over the buffer's backing storage, starting
// at offset 0 (this layer always fills buffers from the start), and
// advances UsedBytes/UsedSectors as data is written to it.
// This is how the sector encoder (C4) assembles a sector in place instead of
// manual index arithmetic, following the teacher's noxer/bytewriter idiom.
func (b *Buffer) Writer() *bufferWriter {
	return &bufferWriter{buf: b, w: bytewriter.New(b.data)}
}

type bufferWriter struct {
	buf *Buffer
	w   io.Writer
	pos int
}

func (bw *bufferWriter) Write(p []byte) (int, error) {
	n, err := bw.w.Write(p)
	bw.pos += n
	if bw.pos > bw.buf.usedBytes {
		bw.buf.usedBytes = bw.pos
		if bw.buf.sectorLength > 0 {
			bw.buf.usedSectors = bw.pos / bw.buf.sectorLength
		}
	}
	return n, err
}
